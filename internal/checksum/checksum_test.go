package checksum

import (
	"encoding/binary"
	"testing"
)

func TestChecksum_Empty(t *testing.T) {
	if got := Checksum(nil, 0); got != 0 {
		t.Errorf("Checksum(nil, 0) = 0x%08X, want 0", got)
	}
	if got := Checksum([]byte{}, 0x12345678); got != 0x12345678 {
		t.Errorf("Checksum([], seed) = 0x%08X, want seed unchanged", got)
	}
}

func TestChecksum_KnownValues(t *testing.T) {
	tests := []struct {
		data     []byte
		expected uint32
	}{
		{[]byte{0x00}, 0x00000000},
		{[]byte{0x01}, 0x77073096},
		{[]byte{0x02}, 0xEE0E612C},
		{[]byte("123456789"), 0x2DFD2D88},
		{make([]byte, 64), 0x00000000},
	}

	for _, tc := range tests {
		got := Checksum(tc.data, 0)
		if got != tc.expected {
			t.Errorf("Checksum(%q, 0) = 0x%08X, want 0x%08X", tc.data, got, tc.expected)
		}
	}
}

func TestChecksum_Chaining(t *testing.T) {
	data := make([]byte, 300)
	for i := range data {
		data[i] = byte(i * 7)
	}
	whole := Checksum(data, 0)

	for _, k := range []int{0, 1, 4, 24, 150, 299, 300} {
		got := Checksum(data[k:], Checksum(data[:k], 0))
		if got != whole {
			t.Errorf("split at %d: chained = 0x%08X, want 0x%08X", k, got, whole)
		}
	}
}

func TestResidue_SelfChecking(t *testing.T) {
	data := []byte("WMPT\x01\x00\x03\x00\x00\x00\x00\x00")
	sum := Checksum(data, 0)

	if r := Residue(data, sum); r != 0 {
		t.Errorf("Residue(data, sum) = 0x%08X, want 0", r)
	}
	if r := Residue(data, sum^1); r == 0 {
		t.Error("Residue with corrupted checksum = 0, want nonzero")
	}

	// Same thing the bootloader does: one pass over data and stored checksum.
	buf := binary.LittleEndian.AppendUint32(append([]byte{}, data...), sum)
	if r := Checksum(buf, 0); r != 0 {
		t.Errorf("Checksum(data||sum) = 0x%08X, want 0", r)
	}
}
