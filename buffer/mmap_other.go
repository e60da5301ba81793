//go:build !unix

package buffer

import (
	"errors"
	"os"
)

// Mapping holds a file read into memory on platforms without mmap.
// Writes through Exclusive are not reflected in the file.
type Mapping struct {
	data     []byte
	writable bool
}

// Map reads the whole of the named file.
func Map(path string, writable bool) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Mapping{data: data, writable: writable}, nil
}

// Close releases the buffer.
func (m *Mapping) Close() error {
	m.data = nil
	return nil
}

// Shared returns the file bytes as a read-only buffer.
func (m *Mapping) Shared() Shared { return Shared(m.data) }

// Exclusive returns the file bytes as a writable buffer. It fails on a
// read-only mapping.
func (m *Mapping) Exclusive() (Exclusive, error) {
	if !m.writable {
		return nil, errors.New("buffer: mapping is read-only")
	}
	return Exclusive(m.data), nil
}

// Len returns the buffer length.
func (m *Mapping) Len() int { return len(m.data) }
