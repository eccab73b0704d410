package inspect

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/bigbag/mw-img-conv/internal/checksum"
	"github.com/bigbag/mw-img-conv/internal/detect"
	"github.com/bigbag/mw-img-conv/internal/image"
)

var (
	ErrChecksum = errors.New("checksum mismatch")
	ErrSize     = errors.New("size mismatch")
	ErrHeader   = errors.New("invalid header")
)

// Report is the decoded content of a flash image.
type Report struct {
	Kind detect.Kind
	Size int

	// Layout images
	Table      *image.PartitionTable
	TableCRC   uint32
	Entries    []image.PartitionEntry
	EntriesCRC uint32

	// MCU firmware images
	Image   *image.ImageHeader
	Segment *image.SegmentHeader

	// WLAN firmware images
	Wlan *image.WlanFwHeader
}

// Inspect decodes a flash image and verifies it the way the bootloader and
// the firmware updater do before accepting it.
func Inspect(data []byte) (*Report, error) {
	result, err := detect.Detect(data)
	if err != nil {
		return nil, err
	}

	report := &Report{Kind: result.Kind, Size: len(data)}

	switch result.Kind {
	case detect.Layout:
		err = inspectLayout(data, report)
	case detect.MCUFirmware:
		err = inspectMCUFirmware(data, report)
	case detect.WLANFirmware:
		err = inspectWLANFirmware(data, report)
	}
	if err != nil {
		return nil, err
	}

	return report, nil
}

func inspectLayout(data []byte, r *Report) error {
	table, err := image.DecodePartitionTable(data)
	if err != nil {
		return err
	}

	hdrEnd := image.PartitionTableSize + checksum.Size
	if len(data) < hdrEnd {
		return fmt.Errorf("partition table: %w: %d bytes", image.ErrShortBuffer, len(data))
	}
	r.TableCRC = binary.LittleEndian.Uint32(data[image.PartitionTableSize:hdrEnd])
	if checksum.Residue(data[:image.PartitionTableSize], r.TableCRC) != 0 {
		return fmt.Errorf("partition table: %w", ErrChecksum)
	}
	if table.Version != image.PartitionTableVersion {
		return fmt.Errorf("partition table: %w: version %d", ErrHeader, table.Version)
	}
	if table.Entries > image.MaxPartitions {
		return fmt.Errorf("partition table: %w: %d entries, max %d", ErrHeader, table.Entries, image.MaxPartitions)
	}

	entriesEnd := hdrEnd + int(table.Entries)*image.PartitionEntrySize
	if len(data) < entriesEnd+checksum.Size {
		return fmt.Errorf("partition entries: %w: %d bytes", image.ErrShortBuffer, len(data))
	}

	r.Table = table
	r.EntriesCRC = binary.LittleEndian.Uint32(data[entriesEnd:])
	if checksum.Checksum(data[hdrEnd:entriesEnd], 0) != r.EntriesCRC {
		return fmt.Errorf("partition entries: %w", ErrChecksum)
	}

	for off := hdrEnd; off < entriesEnd; off += image.PartitionEntrySize {
		e, err := image.DecodePartitionEntry(data[off:])
		if err != nil {
			return err
		}
		r.Entries = append(r.Entries, *e)
	}

	return nil
}

func inspectMCUFirmware(data []byte, r *Report) error {
	ih, err := image.DecodeImageHeader(data)
	if err != nil {
		return err
	}
	if ih.Signature != image.ImageSignature {
		return fmt.Errorf("image header: %w: signature 0x%08X", ErrHeader, ih.Signature)
	}
	if ih.SegmentCount != 1 {
		return fmt.Errorf("image header: %w: %d segments", ErrHeader, ih.SegmentCount)
	}

	seg, err := image.DecodeSegmentHeader(data[image.ImageHeaderSize:])
	if err != nil {
		return err
	}
	if seg.Type != image.SegmentTypeCode {
		return fmt.Errorf("segment header: %w: type %d", ErrHeader, seg.Type)
	}
	// The image must end exactly where the segment does.
	if uint64(seg.Offset)+uint64(seg.Len) != uint64(len(data)) {
		return fmt.Errorf("segment: %w: offset 0x%X + len %d != %d bytes", ErrSize, seg.Offset, seg.Len, len(data))
	}
	if seg.Offset < image.ImageHeaderSize+image.SegmentHeaderSize {
		return fmt.Errorf("segment header: %w: offset 0x%X overlaps headers", ErrHeader, seg.Offset)
	}
	if sum := checksum.Checksum(data[seg.Offset:], 0); sum != seg.CRC {
		return fmt.Errorf("segment: %w: stored 0x%08X, computed 0x%08X", ErrChecksum, seg.CRC, sum)
	}

	r.Image = ih
	r.Segment = seg
	return nil
}

func inspectWLANFirmware(data []byte, r *Report) error {
	hdr, err := image.DecodeWlanFwHeader(data)
	if err != nil {
		return err
	}
	if int64(hdr.Length) != int64(len(data)-image.WlanFwHeaderSize) {
		return fmt.Errorf("wlan firmware: %w: header says %d, payload is %d bytes",
			ErrSize, hdr.Length, len(data)-image.WlanFwHeaderSize)
	}

	r.Wlan = hdr
	return nil
}
