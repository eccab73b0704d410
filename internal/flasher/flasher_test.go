package flasher

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

type recordingPort struct {
	writes [][]byte
	failAt int
}

func (p *recordingPort) Write(data []byte) (int, error) {
	if p.failAt > 0 && len(p.writes)+1 == p.failAt {
		return 0, errors.New("port gone")
	}
	p.writes = append(p.writes, append([]byte{}, data...))
	return len(data), nil
}

func TestCalculateBlocks(t *testing.T) {
	tests := []struct {
		size     int
		expected int
	}{
		{0, 0},
		{1, 1},
		{BlockSize, 1},
		{BlockSize + 1, 2},
		{3 * BlockSize, 3},
	}

	for _, tc := range tests {
		if got := CalculateBlocks(tc.size); got != tc.expected {
			t.Errorf("CalculateBlocks(%d) = %d, want %d", tc.size, got, tc.expected)
		}
	}
}

func TestUpload_Blocks(t *testing.T) {
	data := make([]byte, 2*BlockSize+10)
	for i := range data {
		data[i] = byte(i)
	}

	port := &recordingPort{}
	f := New(port)

	var progress []int
	f.SetProgressCallback(func(current, total int) {
		if total != 3 {
			t.Errorf("progress total = %d, want 3", total)
		}
		progress = append(progress, current)
	})

	if err := f.Upload(data); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	if len(port.writes) != 3 {
		t.Fatalf("Upload() wrote %d blocks, want 3", len(port.writes))
	}
	if len(port.writes[2]) != 10 {
		t.Errorf("last block length = %d, want 10", len(port.writes[2]))
	}
	if got := bytes.Join(port.writes, nil); !bytes.Equal(got, data) {
		t.Error("Upload() data mismatch")
	}
	if len(progress) != 3 || progress[2] != 3 {
		t.Errorf("progress = %v, want [1 2 3]", progress)
	}
}

func TestUpload_WriteError(t *testing.T) {
	port := &recordingPort{failAt: 2}
	err := New(port).Upload(make([]byte, 3*BlockSize))
	if err == nil {
		t.Fatal("Upload() expected error, got nil")
	}
	if !strings.Contains(err.Error(), "block 1") {
		t.Errorf("Upload() error = %v, want error naming block 1", err)
	}
}

func TestUploadMultiple_Progress(t *testing.T) {
	port := &recordingPort{}
	f := New(port)

	var last, total int
	f.SetProgressCallback(func(c, n int) {
		last, total = c, n
	})

	regions := []Region{
		{Name: "layout", Data: make([]byte, 100)},
		{Name: "mcufw", Data: make([]byte, 2*BlockSize)},
	}
	if err := f.UploadMultiple(regions); err != nil {
		t.Fatalf("UploadMultiple() error = %v", err)
	}

	if last != 3 || total != 3 {
		t.Errorf("final progress = %d/%d, want 3/3", last, total)
	}
	if len(port.writes) != 3 {
		t.Errorf("UploadMultiple() wrote %d blocks, want 3", len(port.writes))
	}
}

func TestUploadMultiple_NamesFailedRegion(t *testing.T) {
	port := &recordingPort{failAt: 2}
	regions := []Region{
		{Name: "layout", Data: make([]byte, 10)},
		{Name: "mcufw", Data: make([]byte, 10)},
	}
	err := New(port).UploadMultiple(regions)
	if err == nil || !strings.Contains(err.Error(), "mcufw") {
		t.Errorf("UploadMultiple() error = %v, want error naming mcufw", err)
	}
}
