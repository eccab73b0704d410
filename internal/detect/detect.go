package detect

import (
	"fmt"

	"github.com/bigbag/mw-img-conv/internal/image"
)

// Kind identifies the type of a flash image.
type Kind int

const (
	Unknown Kind = iota
	Layout
	MCUFirmware
	WLANFirmware
)

// String returns the command verb that produces the kind.
func (k Kind) String() string {
	switch k {
	case Layout:
		return "layout"
	case MCUFirmware:
		return "mcufw"
	case WLANFirmware:
		return "wififw"
	default:
		return "unknown"
	}
}

// Result represents a detected image.
type Result struct {
	Kind  Kind
	Magic string
	Size  int
}

// Detect classifies a flash image by its magic tag.
func Detect(data []byte) (*Result, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("image too short: %d bytes", len(data))
	}

	magic := string(data[0:4])
	result := &Result{Magic: magic, Size: len(data)}

	switch magic {
	case image.PartitionTableMagic:
		result.Kind = Layout
	case image.ImageMagic:
		result.Kind = MCUFirmware
	case image.WlanFwMagic:
		result.Kind = WLANFirmware
	default:
		return nil, fmt.Errorf("no known image magic (found %q)", magic)
	}

	return result, nil
}
