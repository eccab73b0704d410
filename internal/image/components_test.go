package image

import (
	"errors"
	"testing"
)

func TestLookupComponent_Known(t *testing.T) {
	tests := []struct {
		name     string
		expected uint8
	}{
		{"FC_COMP_BOOT2", 0},
		{"FC_COMP_FW", 1},
		{"FC_COMP_WLAN_FW", 2},
		{"FC_COMP_FTFS", 3},
		{"FC_COMP_PSM", 4},
		{"FC_COMP_USER_APP", 5},
		{"FC_COMP_BT_FW", 6},
	}

	for _, tc := range tests {
		code, err := LookupComponent(tc.name)
		if err != nil {
			t.Fatalf("LookupComponent(%q) error = %v", tc.name, err)
		}
		if code != tc.expected {
			t.Errorf("LookupComponent(%q) = %d, want %d", tc.name, code, tc.expected)
		}
		if back := ComponentName(code); back != tc.name {
			t.Errorf("ComponentName(%d) = %q, want %q", code, back, tc.name)
		}
	}
}

func TestLookupComponent_Unknown(t *testing.T) {
	for _, name := range []string{"", "FC_COMP", "fc_comp_fw", "FC_COMP_FW "} {
		if _, err := LookupComponent(name); !errors.Is(err, ErrUnknownComponent) {
			t.Errorf("LookupComponent(%q) error = %v, want ErrUnknownComponent", name, err)
		}
	}
}

func TestComponentName_Unknown(t *testing.T) {
	for _, code := range []uint8{7, 0x80, 0xFF} {
		if name := ComponentName(code); name != "unknown" {
			t.Errorf("ComponentName(%d) = %q, want %q", code, name, "unknown")
		}
	}
}

func TestHeaderRegion_HoldsSegmentSlots(t *testing.T) {
	if MCUFirmwareOffset-ImageHeaderSize < SegmentHeaderSize*SegmentSlots {
		t.Errorf("header region %d bytes, want at least %d", MCUFirmwareOffset-ImageHeaderSize, SegmentHeaderSize*SegmentSlots)
	}
	if SegmentFillerSize != MCUFirmwareOffset-40 {
		t.Errorf("SegmentFillerSize = %d, want %d", SegmentFillerSize, MCUFirmwareOffset-40)
	}
}
