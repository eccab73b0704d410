package flasher

import (
	"fmt"
	"io"
	"time"
)

// BlockSize is the chunk size written to the loader at a time.
const BlockSize = 0x400

// ProgressCallback is called to report upload progress in blocks.
type ProgressCallback func(current, total int)

// Flasher streams flash images to a UART loader.
type Flasher struct {
	port     io.Writer
	progress ProgressCallback
	delay    time.Duration
}

// New creates a new Flasher writing to port.
func New(port io.Writer) *Flasher {
	return &Flasher{port: port}
}

// SetProgressCallback sets the progress callback function.
func (f *Flasher) SetProgressCallback(cb ProgressCallback) {
	f.progress = cb
}

// SetBlockDelay sets a pause between blocks for loaders without flow control.
func (f *Flasher) SetBlockDelay(d time.Duration) {
	f.delay = d
}

// reportProgress calls the progress callback if set.
func (f *Flasher) reportProgress(current, total int) {
	if f.progress != nil {
		f.progress(current, total)
	}
}

// CalculateBlocks returns the number of blocks needed for size bytes.
func CalculateBlocks(size int) int {
	return (size + BlockSize - 1) / BlockSize
}

// Upload writes an image to the port block by block. The last block is
// sent short, the loader takes the length from the image header.
func (f *Flasher) Upload(data []byte) error {
	totalBlocks := CalculateBlocks(len(data))

	for seq := 0; seq < totalBlocks; seq++ {
		start := seq * BlockSize
		end := start + BlockSize
		if end > len(data) {
			end = len(data)
		}

		if _, err := f.port.Write(data[start:end]); err != nil {
			return fmt.Errorf("write block %d failed: %w", seq, err)
		}

		f.reportProgress(seq+1, totalBlocks)

		if f.delay > 0 && seq+1 < totalBlocks {
			time.Sleep(f.delay)
		}
	}

	return nil
}

// Region is a named image to upload.
type Region struct {
	Name string
	Data []byte
}

// UploadMultiple uploads several images in sequence, reporting progress
// across all of them.
func (f *Flasher) UploadMultiple(regions []Region) error {
	totalBlocks := 0
	for _, r := range regions {
		totalBlocks += CalculateBlocks(len(r.Data))
	}

	outer := f.progress
	defer func() { f.progress = outer }()

	done := 0
	for _, region := range regions {
		f.progress = func(current, _ int) {
			if outer != nil {
				outer(done+current, totalBlocks)
			}
		}

		if err := f.Upload(region.Data); err != nil {
			return fmt.Errorf("failed to upload %s: %w", region.Name, err)
		}

		done += CalculateBlocks(len(region.Data))
	}

	return nil
}
