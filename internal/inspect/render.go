package inspect

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/bigbag/mw-img-conv/internal/detect"
	"github.com/bigbag/mw-img-conv/internal/image"
)

// Render prints a human readable summary of the report to w.
func Render(w io.Writer, r *Report) {
	fmt.Fprintf(w, "Image:  %s (%s)\n", r.Kind, humanize.IBytes(uint64(r.Size)))

	switch r.Kind {
	case detect.Layout:
		renderLayout(w, r)
	case detect.MCUFirmware:
		renderMCUFirmware(w, r)
	case detect.WLANFirmware:
		fmt.Fprintf(w, "Length: %d bytes\n", r.Wlan.Length)
	}
}

func renderLayout(w io.Writer, r *Report) {
	fmt.Fprintf(w, "Version: %d\n", r.Table.Version)
	fmt.Fprintf(w, "Table CRC: 0x%08X\n", r.TableCRC)
	fmt.Fprintf(w, "Entries CRC: 0x%08X\n\n", r.EntriesCRC)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Type", "Name", "Device", "Start", "Size", "Gen"})
	table.SetAutoWrapText(false)
	for i, e := range r.Entries {
		table.Append([]string{
			fmt.Sprint(i),
			image.ComponentName(e.Type),
			e.Name,
			fmt.Sprint(e.Device),
			fmt.Sprintf("0x%08X", e.Start),
			fmt.Sprintf("0x%X (%s)", e.Size, humanize.IBytes(uint64(e.Size))),
			fmt.Sprint(e.GenLevel),
		})
	}
	table.Render()
}

func renderMCUFirmware(w io.Writer, r *Report) {
	built := time.Unix(int64(r.Image.Time), 0).UTC()
	fmt.Fprintf(w, "Built:  %s (%s)\n", built.Format(time.RFC3339), humanize.Time(built))
	fmt.Fprintf(w, "Entry:  0x%08X\n\n", r.Image.Entry)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Segment", "Type", "Offset", "Length", "Load Address", "CRC"})
	table.SetAutoWrapText(false)
	table.Append([]string{
		"0",
		fmt.Sprint(r.Segment.Type),
		fmt.Sprintf("0x%X", r.Segment.Offset),
		humanize.IBytes(uint64(r.Segment.Len)),
		fmt.Sprintf("0x%08X", r.Segment.LoadAddr),
		fmt.Sprintf("0x%08X", r.Segment.CRC),
	})
	table.Render()
}
