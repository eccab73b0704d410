package convert

import (
	"encoding/binary"
	"io"
)

// imageWriter writes image parts in order. The first error sticks and
// turns later writes into no-ops.
type imageWriter struct {
	w   io.Writer
	n   int64
	err error
}

func newImageWriter(w io.Writer) *imageWriter {
	return &imageWriter{w: w}
}

func (iw *imageWriter) write(b []byte) {
	if iw.err != nil {
		return
	}
	n, err := iw.w.Write(b)
	iw.n += int64(n)
	iw.err = err
}

func (iw *imageWriter) writeUint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	iw.write(b[:])
}
