package convert

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-kit/log/level"

	"github.com/bigbag/mw-img-conv/internal/checksum"
	"github.com/bigbag/mw-img-conv/internal/image"
)

// layoutFields is the number of fields in a layout record:
// type, start, size, device, name.
const layoutFields = 5

var (
	ErrFieldCount = errors.New("invalid record (should be 5 items per line)")
	ErrBadNumber  = errors.New("invalid number")
	ErrBadText    = errors.New("invalid UTF-8 text")
)

// RecordError reports a malformed layout line.
type RecordError struct {
	Line int
	Text string
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// ParseLayout reads partition records from a layout description.
//
// Each record line holds five whitespace separated fields:
//
//	FC_COMP_FW  0x10000  0xA0000  0  mcufw
//
// Lines starting with '#' and empty lines are skipped; a line holding only
// "\r\n" counts as empty. Lines must be valid UTF-8. Reading stops after
// image.MaxPartitions records; anything after that is not read.
func ParseLayout(r io.Reader, opts ...Option) ([]image.PartitionEntry, error) {
	cfg := newConfig(opts)
	br := bufio.NewReader(r)

	var entries []image.PartitionEntry
	lineNum := 0
	for len(entries) < image.MaxPartitions {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to read layout: %w", err)
		}
		if line == "" && err == io.EOF {
			break
		}
		lineNum++

		if !utf8.ValidString(line) {
			return nil, &RecordError{Line: lineNum, Text: strings.TrimRight(line, "\r\n"), Err: ErrBadText}
		}
		if !isLayoutComment(line) {
			entry, perr := parseRecord(line)
			if perr != nil {
				return nil, &RecordError{Line: lineNum, Text: strings.TrimRight(line, "\r\n"), Err: perr}
			}
			level.Debug(cfg.logger).Log("msg", "parsed partition", "line", lineNum,
				"type", image.ComponentName(entry.Type), "name", entry.Name,
				"start", fmt.Sprintf("0x%X", entry.Start), "size", fmt.Sprintf("0x%X", entry.Size),
				"device", entry.Device)
			entries = append(entries, entry)
		}

		if err == io.EOF {
			break
		}
	}

	return entries, nil
}

func isLayoutComment(line string) bool {
	return strings.HasPrefix(line, "#") || strings.TrimRight(line, "\r\n") == ""
}

func parseRecord(line string) (image.PartitionEntry, error) {
	fields := strings.Fields(line)
	if len(fields) != layoutFields {
		return image.PartitionEntry{}, ErrFieldCount
	}

	comp, err := image.LookupComponent(fields[0])
	if err != nil {
		return image.PartitionEntry{}, err
	}
	start, err := parseNumber(fields[1], 32)
	if err != nil {
		return image.PartitionEntry{}, err
	}
	size, err := parseNumber(fields[2], 32)
	if err != nil {
		return image.PartitionEntry{}, err
	}
	device, err := parseNumber(fields[3], 8)
	if err != nil {
		return image.PartitionEntry{}, err
	}

	return image.PartitionEntry{
		Type:     comp,
		Device:   uint8(device),
		Name:     fields[4],
		Start:    uint32(start),
		Size:     uint32(size),
		GenLevel: image.LayoutGenLevel,
	}, nil
}

// parseNumber parses an unsigned integer honoring 0x, 0o and 0b prefixes.
// Unprefixed numbers are decimal; a non-zero one may not start with 0.
func parseNumber(s string, bitSize int) (uint64, error) {
	if isLegacyOctal(s) {
		return 0, fmt.Errorf("%w %q", ErrBadNumber, s)
	}
	v, err := strconv.ParseUint(s, 0, bitSize)
	if err != nil {
		return 0, fmt.Errorf("%w %q", ErrBadNumber, s)
	}
	return v, nil
}

func isLegacyOctal(s string) bool {
	if len(s) < 2 || s[0] != '0' {
		return false
	}
	switch s[1] {
	case 'x', 'X', 'o', 'O', 'b', 'B':
		return false
	}
	return strings.Trim(s, "0_") != ""
}

// Layout converts a layout description into a partition table image:
//
//	[table][crc(table)][entry 0]...[entry n-1][crc(entries)]
//
// Nothing is written when the description is malformed.
func Layout(r io.Reader, w io.Writer, opts ...Option) error {
	cfg := newConfig(opts)

	entries, err := ParseLayout(r, opts...)
	if err != nil {
		return err
	}

	iw := newImageWriter(w)

	table := image.NewPartitionTable(len(entries)).Encode()
	iw.write(table)
	iw.writeUint32(checksum.Checksum(table, 0))

	var crc uint32
	for i := range entries {
		b := entries[i].Encode()
		crc = checksum.Checksum(b, crc)
		iw.write(b)
	}
	iw.writeUint32(crc)

	if iw.err != nil {
		return fmt.Errorf("failed to write layout image: %w", iw.err)
	}

	level.Debug(cfg.logger).Log("msg", "layout image written", "entries", len(entries),
		"bytes", iw.n, "crc", fmt.Sprintf("0x%08X", crc))
	return nil
}
