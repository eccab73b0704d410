package convert

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-kit/log/level"

	"github.com/bigbag/mw-img-conv/internal/checksum"
	"github.com/bigbag/mw-img-conv/internal/image"
)

// minFirmwareSize covers the vector table words up to the entry point.
const minFirmwareSize = 8

var ErrFirmwareTooSmall = errors.New("mcufw file too small")

// ParseAddress parses a load address such as 0x1F010000.
func ParseAddress(s string) (uint32, error) {
	v, err := parseNumber(s, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// MCUFirmware wraps a raw MCU firmware binary into a bootable image loaded
// at laddr. The entry point is taken from the second word of the firmware
// (the reset vector). Nothing is written when the firmware is too small.
func MCUFirmware(r io.Reader, w io.Writer, laddr uint32, opts ...Option) error {
	cfg := newConfig(opts)

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read firmware: %w", err)
	}
	if len(data) < minFirmwareSize {
		return fmt.Errorf("%w: %d bytes", ErrFirmwareTooSmall, len(data))
	}

	entry := binary.LittleEndian.Uint32(data[4:8])
	ih := image.NewImageHeader(entry, cfg.now())
	sh := image.NewSegmentHeader(laddr)

	payload := image.PadPayload(data)
	sh.Len = uint32(len(payload))
	sh.CRC = checksum.Checksum(payload, 0)

	level.Debug(cfg.logger).Log("msg", "mcu firmware segment",
		"entry", fmt.Sprintf("0x%08X", entry), "laddr", fmt.Sprintf("0x%08X", laddr),
		"size", len(data), "padding", len(payload)-len(data), "crc", fmt.Sprintf("0x%08X", sh.CRC))

	iw := newImageWriter(w)
	iw.write(ih.Encode())
	iw.write(sh.Encode())
	iw.write(payload)
	if iw.err != nil {
		return fmt.Errorf("failed to write firmware image: %w", iw.err)
	}
	return nil
}
