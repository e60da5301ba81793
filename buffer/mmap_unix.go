//go:build unix

package buffer

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Mapping is a file mapped into memory. The mapped address never moves
// until Close, so views cast from it stay valid until then.
type Mapping struct {
	data     []byte
	writable bool
}

// Map maps the whole of the named file. With writable set the mapping is
// shared with the file; otherwise it is read-only.
func Map(path string, writable bool) (*Mapping, error) {
	flag, prot := os.O_RDONLY, unix.PROT_READ
	if writable {
		flag, prot = os.O_RDWR, unix.PROT_READ|unix.PROT_WRITE
	}
	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := fi.Size()
	if size == 0 {
		return &Mapping{writable: writable}, nil
	}
	if int64(int(size)) != size {
		return nil, fmt.Errorf("buffer: %s too large to map (%d bytes)", path, size)
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), prot, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("buffer: mmap %s: %w", path, err)
	}
	return &Mapping{data: data, writable: writable}, nil
}

// Close unmaps the file. Views cast from the mapping must not be used
// afterwards.
func (m *Mapping) Close() error {
	if m.data == nil {
		return nil
	}
	data := m.data
	m.data = nil
	return unix.Munmap(data)
}

// Shared returns the mapped bytes as a read-only buffer.
func (m *Mapping) Shared() Shared { return Shared(m.data) }

// Exclusive returns the mapped bytes as a writable buffer. It fails on a
// read-only mapping.
func (m *Mapping) Exclusive() (Exclusive, error) {
	if !m.writable {
		return nil, errors.New("buffer: mapping is read-only")
	}
	return Exclusive(m.data), nil
}

// Len returns the mapped length.
func (m *Mapping) Len() int { return len(m.data) }
