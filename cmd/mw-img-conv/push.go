package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log/level"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/bigbag/mw-img-conv/internal/flasher"
	"github.com/bigbag/mw-img-conv/internal/inspect"
	"github.com/bigbag/mw-img-conv/internal/serial"
)

// loadRegions reads and verifies the images to push.
func (a *app) loadRegions(paths []string) ([]flasher.Region, error) {
	var regions []flasher.Region
	for _, path := range paths {
		data, err := afero.ReadFile(a.fs, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read image: %w", err)
		}

		report, err := inspect.Inspect(data)
		if err != nil {
			return nil, fmt.Errorf("refusing to push %s: %w", path, err)
		}

		fmt.Fprintf(a.out, "Image: %s (%s, %s)\n", path, report.Kind, humanize.IBytes(uint64(len(data))))
		regions = append(regions, flasher.Region{Name: path, Data: data})
	}
	return regions, nil
}

func (a *app) runPush(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	regions, err := a.loadRegions(args)
	if err != nil {
		return err
	}

	portName := portFlag
	if portName == "" {
		ports, err := serial.ListPorts()
		if err != nil {
			return fmt.Errorf("failed to list ports: %w", err)
		}
		if len(ports) != 1 {
			return fmt.Errorf("found %d serial ports, pick one with --port", len(ports))
		}
		portName = ports[0]
	}

	port, err := serial.Open(portName, baudFlag)
	if err != nil {
		return err
	}
	defer port.Close()

	fmt.Fprintf(a.out, "Port: %s @ %d baud\n", port.PortName(), port.BaudRate())
	if err := port.Flush(); err != nil {
		level.Warn(a.logger).Log("msg", "failed to flush port", "err", err)
	}

	f := flasher.New(port)
	f.SetBlockDelay(time.Duration(blockDelayFlag) * time.Millisecond)

	totalBlocks := 0
	for _, r := range regions {
		totalBlocks += flasher.CalculateBlocks(len(r.Data))
	}

	bar := progressbar.NewOptions(totalBlocks,
		progressbar.OptionSetWriter(a.errOut),
		progressbar.OptionSetDescription("Pushing"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionThrottle(100),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	f.SetProgressCallback(func(current, total int) {
		bar.Set(current)
	})

	if err := f.UploadMultiple(regions); err != nil {
		return err
	}
	bar.Finish()

	level.Info(a.logger).Log("msg", "images pushed", "port", portName, "images", len(regions), "blocks", totalBlocks)
	fmt.Fprintln(a.out, "Done!")
	return nil
}

func (a *app) runPorts(cmd *cobra.Command, args []string) error {
	ports, err := serial.ListPorts()
	if err != nil {
		return err
	}

	if len(ports) == 0 {
		fmt.Fprintln(a.out, "No serial ports found")
		return nil
	}

	fmt.Fprintln(a.out, "Available serial ports:")
	for _, p := range ports {
		fmt.Fprintf(a.out, "  %s\n", p)
	}

	return nil
}
