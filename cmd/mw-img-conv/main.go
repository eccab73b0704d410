package main

import (
	"fmt"
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/bigbag/mw-img-conv/internal/serial"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	verboseFlag    bool
	progressFlag   bool
	portFlag       string
	baudFlag       int
	blockDelayFlag int
)

// app carries what the commands share: the filesystem, the output stream
// and the logger.
type app struct {
	fs     afero.Fs
	out    io.Writer
	errOut io.Writer
	base   log.Logger
	logger log.Logger
}

func main() {
	a := &app{
		fs:     afero.NewOsFs(),
		out:    os.Stdout,
		errOut: os.Stderr,
		base:   log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr)),
	}

	if err := newRootCmd(a).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mw-img-conv",
		Short: "Convert firmware and flash layouts to MW320 flash images",
		Long: `mw-img-conv converts MCU firmware, WLAN firmware and partition layout
descriptions into the binary images the MW320 boot2 flash loader expects.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.logger = a.base
			if verboseFlag {
				a.logger = level.NewFilter(a.logger, level.AllowDebug())
			} else {
				a.logger = level.NewFilter(a.logger, level.AllowInfo())
			}
		},
	}
	rootCmd.SetOut(a.out)
	rootCmd.SetErr(a.errOut)
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&progressFlag, "progress", false, "Show a progress bar while writing")

	// Layout command
	layoutCmd := &cobra.Command{
		Use:   "layout <layout.txt> <layout.bin>",
		Short: "Convert a layout description to a partition table image",
		Long: `Convert a flash layout description to a partition table image.

Each non-comment line of the description holds five fields:
  <type> <start> <size> <device> <name>

for example:
  FC_COMP_FW  0x10000  0xA0000  0  mcufw

At most 16 partitions are read.`,
		Args: cobra.ExactArgs(2),
		RunE: a.runLayout,
	}

	// MCU firmware command
	mcufwCmd := &cobra.Command{
		Use:   "mcufw <firmware.bin> <mcufw.bin> <load-address>",
		Short: "Convert an MCU firmware binary to an MCU flash image",
		Long: `Wrap an MCU firmware binary with an image header and a segment header.

The load address accepts 0x, 0o and 0b prefixes, e.g. 0x1F010000.`,
		Args: cobra.ExactArgs(3),
		RunE: a.runMCUFirmware,
	}

	// WLAN firmware command
	wififwCmd := &cobra.Command{
		Use:   "wififw <wlan.bin> <wififw.bin>",
		Short: "Convert a WLAN firmware binary to a WLAN flash image",
		Args:  cobra.ExactArgs(2),
		RunE:  a.runWLANFirmware,
	}

	// Inspect command
	inspectCmd := &cobra.Command{
		Use:   "inspect <image>...",
		Short: "Decode and verify flash images",
		Args:  cobra.MinimumNArgs(1),
		RunE:  a.runInspect,
	}

	// Template command
	templateCmd := &cobra.Command{
		Use:   "template [<layout.txt>]",
		Short: "Write the default MW320 layout description",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.runTemplate,
	}

	// Push command
	pushCmd := &cobra.Command{
		Use:   "push <image>...",
		Short: "Stream flash images to a UART loader",
		Long: `Verify flash images and stream them, in order, to a UART flash loader.

Images are sent as raw bytes in 1KB blocks.`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runPush,
	}
	pushCmd.Flags().StringVarP(&portFlag, "port", "p", "", "Serial port (used if it is the only one when not specified)")
	pushCmd.Flags().IntVarP(&baudFlag, "baud", "b", serial.DefaultBaudRate, "Baud rate")
	pushCmd.Flags().IntVar(&blockDelayFlag, "block-delay", 0, "Pause between blocks in milliseconds")

	// Version command
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version info",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.out, "mw-img-conv %s\n", version)
			fmt.Fprintf(a.out, "  commit: %s\n", commit)
			fmt.Fprintf(a.out, "  built:  %s\n", date)
		},
	}

	// Ports command
	portsCmd := &cobra.Command{
		Use:   "ports",
		Short: "List available serial ports",
		RunE:  a.runPorts,
	}

	rootCmd.AddCommand(layoutCmd, mcufwCmd, wififwCmd, inspectCmd, templateCmd, pushCmd, versionCmd, portsCmd)
	return rootCmd
}
