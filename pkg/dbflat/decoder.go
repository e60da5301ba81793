package dbflat

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/rawbytedev/zerocast"
	"github.com/rawbytedev/zerocast/buffer"
)

var (
	ErrCorrupt     = errors.New("dbflat: corrupt record")
	ErrTagNotFound = errors.New("dbflat: tag not found")
	ErrNotHot      = errors.New("dbflat: tag is not a hot field")
)

// Record is a parsed record. The header and vtable are views into the
// buffer given to ParseRecord; nothing is copied.
type Record struct {
	view zerocast.Slice[buffer.Shared, Header, VTableSlot]
	data []byte
}

// ParseRecord views buf as a header followed by its vtable. buf must be
// 8-byte aligned. Errors from the cast are returned unchanged, so
// zerocast.ErrSize, ErrAlignment and ErrValidity (bad magic or unknown
// flags) can be told apart; inconsistent offsets yield ErrCorrupt.
func ParseRecord(buf []byte) (*Record, error) {
	h, _, err := zerocast.FromPrefix[Header](buffer.Shared(buf))
	if err != nil {
		return nil, err
	}
	hdr := h.Get()
	if hdr.VTableOff != HeaderSize {
		return nil, fmt.Errorf("%w: vtable at %d, want %d", ErrCorrupt, hdr.VTableOff, HeaderSize)
	}

	view, rest, err := zerocast.SliceFromPrefixElems[Header, VTableSlot](buffer.Shared(buf), int(hdr.VTableSlots))
	if err != nil {
		return nil, err
	}
	dataStart := len(buf) - len(rest)
	if int(hdr.DataOffset) != dataStart {
		return nil, fmt.Errorf("%w: data at %d, want %d", ErrCorrupt, hdr.DataOffset, dataStart)
	}

	r := &Record{view: view, data: rest}
	for i := range view.Len() {
		s := view.At(i)
		if int(s.Offset) > len(rest) {
			return nil, fmt.Errorf("%w: tag %d points past the data section", ErrCorrupt, s.Tag)
		}
		// Lookup binary-searches the slots.
		if i > 0 && view.At(i-1).Tag >= s.Tag {
			return nil, fmt.Errorf("%w: tag %d out of order after %d", ErrCorrupt, s.Tag, view.At(i-1).Tag)
		}
	}
	return r, nil
}

// Header returns the record header.
func (r *Record) Header() Header { return r.view.Header() }

// Len returns the number of vtable slots.
func (r *Record) Len() int { return r.view.Len() }

// Slot returns vtable slot i.
func (r *Record) Slot(i int) VTableSlot { return r.view.At(i) }

// Slots copies the vtable out.
func (r *Record) Slots() []VTableSlot { return r.view.AppendTo(nil) }

// Field returns the payload of tag without copying.
func (r *Record) Field(tag uint16) ([]byte, error) {
	i, ok := r.Lookup(tag)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrTagNotFound, tag)
	}
	return r.payload(i)
}

func (r *Record) payload(i int) ([]byte, error) {
	s := r.view.At(i)
	ptr := int(s.Offset)
	if s.CompFlags&ArrayMask != 0 {
		size, n := binary.Uvarint(r.data[ptr:])
		if n <= 0 || size > uint64(len(r.data)-ptr-n) {
			return nil, fmt.Errorf("%w: bad length for tag %d", ErrCorrupt, s.Tag)
		}
		ptr += n
		return r.data[ptr : ptr+int(size)], nil
	}
	end := len(r.data)
	if i+1 < r.view.Len() {
		end = int(r.view.At(i + 1).Offset)
	}
	if end < ptr {
		return nil, fmt.Errorf("%w: payloads of tag %d out of order", ErrCorrupt, s.Tag)
	}
	return r.data[ptr:end], nil
}
