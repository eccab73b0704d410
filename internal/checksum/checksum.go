package checksum

import (
	"encoding/binary"
	"hash/crc32"
)

// Size is the encoded size of a checksum in an image.
const Size = 4

// Checksum computes the boot2 flavour of CRC-32 over data.
//
// It uses the IEEE (zlib) polynomial but without the usual pre/post
// inversion, so seed 0 over an empty buffer yields 0 and a previous result
// can be passed as seed to continue over the next buffer.
func Checksum(data []byte, seed uint32) uint32 {
	return ^crc32.Update(^seed, crc32.IEEETable, data)
}

// Residue returns the checksum of data followed by its stored checksum.
// A buffer ending in its own checksum has a residue of 0, which is how the
// bootloader validates the partition table header.
func Residue(data []byte, stored uint32) uint32 {
	var b [Size]byte
	binary.LittleEndian.PutUint32(b[:], stored)
	return Checksum(b[:], Checksum(data, 0))
}
