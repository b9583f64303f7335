package typedstream

import (
	"bytes"
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// mmapCloser bundles an mmap.MMap with the *os.File it was mapped from, so
// that Close unmaps and then closes the descriptor.
type mmapCloser struct {
	data mmap.MMap
	file *os.File
}

func (m *mmapCloser) Close() error {
	unmapErr := m.data.Unmap()
	closeErr := m.file.Close()
	if unmapErr != nil {
		return unmapErr
	}
	return closeErr
}

// Open memory-maps the file at path and wraps it in an [Unarchiver]. Closing
// the returned Unarchiver unmaps the file and closes the descriptor.
func Open(path string) (*Unarchiver, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	r, err := NewReader(bytes.NewReader(data), withCloser(&mmapCloser{data: data, file: f}))
	if err != nil {
		data.Unmap()
		f.Close()
		return nil, err
	}

	return NewUnarchiver(r), nil
}

// NewUnarchiverFromBytes wraps an in-memory byte slice in an [Unarchiver].
func NewUnarchiverFromBytes(data []byte) (*Unarchiver, error) {
	r, err := NewReaderFromBytes(data)
	if err != nil {
		return nil, err
	}
	return NewUnarchiver(r), nil
}
