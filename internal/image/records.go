package image

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

var (
	ErrShortBuffer = errors.New("record too short")
	ErrBadMagic    = errors.New("bad magic")
)

// PartitionTable is the header of a partition layout image.
type PartitionTable struct {
	Version  uint16
	Entries  uint16
	GenLevel uint32
}

// PartitionEntry describes one flash partition.
type PartitionEntry struct {
	Type     uint8
	Device   uint8
	Name     string
	Start    uint32
	Size     uint32
	GenLevel uint32
}

// ImageHeader is the header of an MCU firmware image.
type ImageHeader struct {
	Signature    uint32
	Time         uint32
	SegmentCount uint32
	Entry        uint32
}

// SegmentHeader describes the single executable segment of an MCU image.
type SegmentHeader struct {
	Type     uint32
	Offset   uint32
	Len      uint32
	LoadAddr uint32
	CRC      uint32
}

// WlanFwHeader prefixes a WLAN firmware image.
type WlanFwHeader struct {
	Length uint32
}

// NewPartitionTable creates a table header for n entries.
func NewPartitionTable(n int) *PartitionTable {
	return &PartitionTable{
		Version: PartitionTableVersion,
		Entries: uint16(n),
	}
}

// Encode serializes the table header.
func (t *PartitionTable) Encode() []byte {
	// 0-3: magic
	// 4-5: version
	// 6-7: number of entries
	// 8-11: generation level
	data := make([]byte, PartitionTableSize)
	copy(data[0:4], PartitionTableMagic)
	binary.LittleEndian.PutUint16(data[4:6], t.Version)
	binary.LittleEndian.PutUint16(data[6:8], t.Entries)
	binary.LittleEndian.PutUint32(data[8:12], t.GenLevel)
	return data
}

// DecodePartitionTable parses a table header.
func DecodePartitionTable(data []byte) (*PartitionTable, error) {
	if len(data) < PartitionTableSize {
		return nil, fmt.Errorf("partition table: %w: %d bytes", ErrShortBuffer, len(data))
	}
	if string(data[0:4]) != PartitionTableMagic {
		return nil, fmt.Errorf("partition table: %w: %q", ErrBadMagic, data[0:4])
	}
	return &PartitionTable{
		Version:  binary.LittleEndian.Uint16(data[4:6]),
		Entries:  binary.LittleEndian.Uint16(data[6:8]),
		GenLevel: binary.LittleEndian.Uint32(data[8:12]),
	}, nil
}

// Encode serializes the entry. The name field is always PartitionNameSize
// bytes; at most PartitionNameMax of them carry the name.
func (e *PartitionEntry) Encode() []byte {
	data := make([]byte, PartitionEntrySize)
	data[0] = e.Type
	data[1] = e.Device
	copy(data[2:2+PartitionNameSize], encodeName(e.Name))
	binary.LittleEndian.PutUint32(data[12:16], e.Start)
	binary.LittleEndian.PutUint32(data[16:20], e.Size)
	binary.LittleEndian.PutUint32(data[20:24], e.GenLevel)
	return data
}

// encodeName truncates name to PartitionNameMax bytes without splitting a rune.
func encodeName(name string) []byte {
	b := []byte(name)
	if len(b) <= PartitionNameMax {
		return b
	}
	b = b[:PartitionNameMax]
	for len(b) > 0 && !utf8.Valid(b) {
		b = b[:len(b)-1]
	}
	return b
}

// DecodePartitionEntry parses one entry.
func DecodePartitionEntry(data []byte) (*PartitionEntry, error) {
	if len(data) < PartitionEntrySize {
		return nil, fmt.Errorf("partition entry: %w: %d bytes", ErrShortBuffer, len(data))
	}
	return &PartitionEntry{
		Type:     data[0],
		Device:   data[1],
		Name:     string(bytes.TrimRight(data[2:2+PartitionNameSize], "\x00")),
		Start:    binary.LittleEndian.Uint32(data[12:16]),
		Size:     binary.LittleEndian.Uint32(data[16:20]),
		GenLevel: binary.LittleEndian.Uint32(data[20:24]),
	}, nil
}

// NewImageHeader creates a single-segment image header.
func NewImageHeader(entry uint32, now time.Time) *ImageHeader {
	return &ImageHeader{
		Signature:    ImageSignature,
		Time:         uint32(now.Unix()),
		SegmentCount: 1,
		Entry:        entry,
	}
}

// Encode serializes the image header.
func (h *ImageHeader) Encode() []byte {
	data := make([]byte, ImageHeaderSize)
	copy(data[0:4], ImageMagic)
	binary.LittleEndian.PutUint32(data[4:8], h.Signature)
	binary.LittleEndian.PutUint32(data[8:12], h.Time)
	binary.LittleEndian.PutUint32(data[12:16], h.SegmentCount)
	binary.LittleEndian.PutUint32(data[16:20], h.Entry)
	return data
}

// DecodeImageHeader parses an image header.
func DecodeImageHeader(data []byte) (*ImageHeader, error) {
	if len(data) < ImageHeaderSize {
		return nil, fmt.Errorf("image header: %w: %d bytes", ErrShortBuffer, len(data))
	}
	if string(data[0:4]) != ImageMagic {
		return nil, fmt.Errorf("image header: %w: %q", ErrBadMagic, data[0:4])
	}
	return &ImageHeader{
		Signature:    binary.LittleEndian.Uint32(data[4:8]),
		Time:         binary.LittleEndian.Uint32(data[8:12]),
		SegmentCount: binary.LittleEndian.Uint32(data[12:16]),
		Entry:        binary.LittleEndian.Uint32(data[16:20]),
	}, nil
}

// NewSegmentHeader creates a header for an executable segment loaded at laddr.
// Len and CRC are filled in once the payload is known.
func NewSegmentHeader(laddr uint32) *SegmentHeader {
	return &SegmentHeader{
		Type:     SegmentTypeCode,
		Offset:   MCUFirmwareOffset,
		LoadAddr: laddr,
	}
}

// Encode serializes the segment header followed by the 0xFF filler that
// pads the header region up to the payload offset.
func (s *SegmentHeader) Encode() []byte {
	data := make([]byte, SegmentHeaderSize+SegmentFillerSize)
	binary.LittleEndian.PutUint32(data[0:4], s.Type)
	binary.LittleEndian.PutUint32(data[4:8], s.Offset)
	binary.LittleEndian.PutUint32(data[8:12], s.Len)
	binary.LittleEndian.PutUint32(data[12:16], s.LoadAddr)
	binary.LittleEndian.PutUint32(data[16:20], s.CRC)
	for i := SegmentHeaderSize; i < len(data); i++ {
		data[i] = FillByte
	}
	return data
}

// DecodeSegmentHeader parses a segment header. The filler is not checked.
func DecodeSegmentHeader(data []byte) (*SegmentHeader, error) {
	if len(data) < SegmentHeaderSize {
		return nil, fmt.Errorf("segment header: %w: %d bytes", ErrShortBuffer, len(data))
	}
	return &SegmentHeader{
		Type:     binary.LittleEndian.Uint32(data[0:4]),
		Offset:   binary.LittleEndian.Uint32(data[4:8]),
		Len:      binary.LittleEndian.Uint32(data[8:12]),
		LoadAddr: binary.LittleEndian.Uint32(data[12:16]),
		CRC:      binary.LittleEndian.Uint32(data[16:20]),
	}, nil
}

// Encode serializes the WLAN firmware header.
func (h *WlanFwHeader) Encode() []byte {
	data := make([]byte, WlanFwHeaderSize)
	copy(data[0:4], WlanFwMagic)
	binary.LittleEndian.PutUint32(data[4:8], h.Length)
	return data
}

// DecodeWlanFwHeader parses a WLAN firmware header.
func DecodeWlanFwHeader(data []byte) (*WlanFwHeader, error) {
	if len(data) < WlanFwHeaderSize {
		return nil, fmt.Errorf("wlan header: %w: %d bytes", ErrShortBuffer, len(data))
	}
	if string(data[0:4]) != WlanFwMagic {
		return nil, fmt.Errorf("wlan header: %w: %q", ErrBadMagic, data[0:4])
	}
	return &WlanFwHeader{Length: binary.LittleEndian.Uint32(data[4:8])}, nil
}

// PadPayload appends FillByte to data until its length is a multiple of
// PayloadAlign. It returns data unchanged when already aligned.
func PadPayload(data []byte) []byte {
	pad := (PayloadAlign - len(data)%PayloadAlign) % PayloadAlign
	for i := 0; i < pad; i++ {
		data = append(data, FillByte)
	}
	return data
}
