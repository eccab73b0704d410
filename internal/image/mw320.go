package image

// Magic tags at the start of each image kind.
const (
	PartitionTableMagic = "WMPT"
	ImageMagic          = "MRVL"
	WlanFwMagic         = "WLFW"
)

// ImageSignature follows ImageMagic in an MCU firmware image.
const ImageSignature = 0x2E9CF17B

// Partition table parameters
const (
	PartitionTableVersion = 1
	MaxPartitions         = 16 // MAX_FL_COMP in boot2
	PartitionNameSize     = 10
	PartitionNameMax      = 8
	LayoutGenLevel        = 1 // gen_level of entries built from layout text
)

// MCU firmware image parameters
const (
	SegmentTypeCode   = 2     // executable segment
	MCUFirmwareOffset = 0x100 // payload offset from image start
	SegmentSlots      = 9     // segment headers the header region must be able to hold
	PayloadAlign      = 4
	FillByte          = 0xFF
)

// Encoded record sizes
const (
	PartitionTableSize = 12
	PartitionEntrySize = 24
	ImageHeaderSize    = 20
	SegmentHeaderSize  = 20
	WlanFwHeaderSize   = 8

	// SegmentFillerSize is the 0xFF run after the segment header so the
	// payload lands at MCUFirmwareOffset.
	SegmentFillerSize = MCUFirmwareOffset - ImageHeaderSize - SegmentHeaderSize
)

// The header region must hold SegmentSlots segment headers. A negative
// difference overflows uint and fails the build.
const _ uint = MCUFirmwareOffset - ImageHeaderSize - SegmentHeaderSize*SegmentSlots
