package convert

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWLANFirmware_Header(t *testing.T) {
	input := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01}

	var out bytes.Buffer
	require.NoError(t, WLANFirmware(bytes.NewReader(input), &out))

	expected := append([]byte{'W', 'L', 'F', 'W', 0x05, 0x00, 0x00, 0x00}, input...)
	assert.Equal(t, expected, out.Bytes())
}

func TestWLANFirmware_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WLANFirmware(bytes.NewReader(nil), &out))
	assert.Equal(t, []byte("WLFW\x00\x00\x00\x00"), out.Bytes())
}

func TestWLANFirmware_LargeUnaligned(t *testing.T) {
	input := firmware(70001)

	var out bytes.Buffer
	require.NoError(t, WLANFirmware(bytes.NewReader(input), &out))

	data := out.Bytes()
	require.Len(t, data, 8+len(input))
	assert.Equal(t, []byte{0x71, 0x11, 0x01, 0x00}, data[4:8])
	assert.Equal(t, input, data[8:])
}

func TestWLANFirmware_WriteError(t *testing.T) {
	err := WLANFirmware(bytes.NewReader([]byte{1}), failingWriter{})
	require.Error(t, err)
}
