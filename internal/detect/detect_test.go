package detect

import (
	"testing"
)

func TestDetect_KnownImages(t *testing.T) {
	tests := []struct {
		data     []byte
		expected Kind
		verb     string
	}{
		{[]byte("WMPT\x01\x00"), Layout, "layout"},
		{[]byte("MRVL\x7b\xf1\x9c\x2e"), MCUFirmware, "mcufw"},
		{[]byte("WLFW"), WLANFirmware, "wififw"},
	}

	for _, tc := range tests {
		result, err := Detect(tc.data)
		if err != nil {
			t.Fatalf("Detect(%q) error = %v", tc.data, err)
		}
		if result.Kind != tc.expected {
			t.Errorf("Detect(%q) kind = %v, want %v", tc.data, result.Kind, tc.expected)
		}
		if result.Kind.String() != tc.verb {
			t.Errorf("Kind.String() = %q, want %q", result.Kind.String(), tc.verb)
		}
		if result.Size != len(tc.data) {
			t.Errorf("Detect(%q) size = %d, want %d", tc.data, result.Size, len(tc.data))
		}
	}
}

func TestDetect_Errors(t *testing.T) {
	inputs := [][]byte{
		nil,
		{},
		[]byte("WMP"),
		[]byte("wmpt"),
		{0xFF, 0xFF, 0xFF, 0xFF},
	}

	for _, data := range inputs {
		if _, err := Detect(data); err == nil {
			t.Errorf("Detect(%v) expected error, got nil", data)
		}
	}
}

func TestKind_StringUnknown(t *testing.T) {
	if s := Unknown.String(); s != "unknown" {
		t.Errorf("Unknown.String() = %q, want %q", s, "unknown")
	}
}
