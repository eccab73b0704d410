package convert

import (
	"fmt"
	"io"

	"github.com/go-kit/log/level"

	"github.com/bigbag/mw-img-conv/internal/image"
)

// WLANFirmware prefixes a WLAN firmware binary with its length header.
// The firmware bytes are copied unchanged.
func WLANFirmware(r io.Reader, w io.Writer, opts ...Option) error {
	cfg := newConfig(opts)

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read firmware: %w", err)
	}

	hdr := &image.WlanFwHeader{Length: uint32(len(data))}

	iw := newImageWriter(w)
	iw.write(hdr.Encode())
	iw.write(data)
	if iw.err != nil {
		return fmt.Errorf("failed to write firmware image: %w", iw.err)
	}

	level.Debug(cfg.logger).Log("msg", "wlan firmware image written", "length", hdr.Length)
	return nil
}
