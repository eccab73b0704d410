package image

import "errors"

// ErrUnknownComponent is returned when a component type name is not known.
var ErrUnknownComponent = errors.New("unknown component type")

// Flash component types, as stored in a partition entry.
const (
	CompBoot2   = 0
	CompFW      = 1
	CompWlanFW  = 2
	CompFTFS    = 3
	CompPSM     = 4
	CompUserApp = 5
	CompBTFW    = 6
)

// componentNames maps layout type names to their component codes.
var componentNames = map[string]uint8{
	"FC_COMP_BOOT2":    CompBoot2,
	"FC_COMP_FW":       CompFW,
	"FC_COMP_WLAN_FW":  CompWlanFW,
	"FC_COMP_FTFS":     CompFTFS,
	"FC_COMP_PSM":      CompPSM,
	"FC_COMP_USER_APP": CompUserApp,
	"FC_COMP_BT_FW":    CompBTFW,
}

// LookupComponent returns the component code for a layout type name.
func LookupComponent(name string) (uint8, error) {
	code, ok := componentNames[name]
	if !ok {
		return 0, ErrUnknownComponent
	}
	return code, nil
}

// ComponentName returns the layout type name for a component code.
func ComponentName(code uint8) string {
	switch code {
	case CompBoot2:
		return "FC_COMP_BOOT2"
	case CompFW:
		return "FC_COMP_FW"
	case CompWlanFW:
		return "FC_COMP_WLAN_FW"
	case CompFTFS:
		return "FC_COMP_FTFS"
	case CompPSM:
		return "FC_COMP_PSM"
	case CompUserApp:
		return "FC_COMP_USER_APP"
	case CompBTFW:
		return "FC_COMP_BT_FW"
	default:
		return "unknown"
	}
}
