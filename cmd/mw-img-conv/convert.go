package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log/level"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/bigbag/mw-img-conv/embedded"
	"github.com/bigbag/mw-img-conv/internal/convert"
)

type converterFunc func(r io.Reader, w io.Writer) error

func (a *app) runLayout(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return a.convertFile(args[0], args[1], func(r io.Reader, w io.Writer) error {
		return convert.Layout(r, w, convert.WithLogger(a.logger))
	})
}

func (a *app) runMCUFirmware(cmd *cobra.Command, args []string) error {
	laddr, err := convert.ParseAddress(args[2])
	if err != nil {
		return fmt.Errorf("invalid load address: %w", err)
	}
	cmd.SilenceUsage = true

	fmt.Fprintf(a.out, "Convert MCU firmware with load address 0x%x\n", laddr)
	return a.convertFile(args[0], args[1], func(r io.Reader, w io.Writer) error {
		return convert.MCUFirmware(r, w, laddr, convert.WithLogger(a.logger))
	})
}

func (a *app) runWLANFirmware(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return a.convertFile(args[0], args[1], func(r io.Reader, w io.Writer) error {
		return convert.WLANFirmware(r, w, convert.WithLogger(a.logger))
	})
}

// convertFile runs conv over the input file and writes the output file only
// once the conversion has succeeded.
func (a *app) convertFile(inPath, outPath string, conv converterFunc) error {
	in, err := a.fs.Open(inPath)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer in.Close()

	var buf bytes.Buffer
	if err := conv(in, &buf); err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}

	size := buf.Len()
	if err := a.writeFile(outPath, &buf); err != nil {
		return err
	}

	level.Info(a.logger).Log("msg", "image written", "input", inPath, "output", outPath, "bytes", size)
	fmt.Fprintf(a.out, "Wrote %s (%s)\n", outPath, humanize.IBytes(uint64(size)))
	return nil
}

func (a *app) writeFile(path string, buf *bytes.Buffer) error {
	out, err := a.fs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}

	var w io.Writer = out
	var bar *progressbar.ProgressBar
	if progressFlag {
		bar = progressbar.NewOptions64(int64(buf.Len()),
			progressbar.OptionSetWriter(a.errOut),
			progressbar.OptionSetDescription("Writing"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowBytes(true),
			progressbar.OptionThrottle(100),
			progressbar.OptionClearOnFinish(),
		)
		w = io.MultiWriter(out, bar)
	}

	if _, err := io.Copy(w, buf); err != nil {
		out.Close()
		return fmt.Errorf("failed to write output: %w", err)
	}
	if bar != nil {
		bar.Finish()
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (a *app) runTemplate(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	layout := embedded.Layout()

	if len(args) == 0 {
		_, err := a.out.Write(layout)
		return err
	}

	if err := a.writeFile(args[0], bytes.NewBuffer(append([]byte{}, layout...))); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Wrote %s\n", args[0])
	return nil
}
