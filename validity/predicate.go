package validity

import (
	"encoding/binary"
	"fmt"
)

// Predicate reports whether b holds a legal bit pattern. b is already known
// to have the right size and alignment and must only be read.
type Predicate func(b []byte) bool

// BitValidator is implemented by types that define their own bit validity.
// IsBitValid is called on the zero value with the candidate bytes.
type BitValidator interface {
	IsBitValid(b []byte) bool
}

// Bool accepts a single byte holding 0 or 1.
func Bool() Predicate {
	return func(b []byte) bool { return b[0] <= 1 }
}

// OneOf accepts an unsigned integer of the given width, read in host byte
// order, when it equals one of values.
func OneOf(size uintptr, values ...uint64) Predicate {
	allowed := make(map[uint64]struct{}, len(values))
	for _, v := range values {
		allowed[v] = struct{}{}
	}
	load := loader(size)
	return func(b []byte) bool {
		_, ok := allowed[load(b)]
		return ok
	}
}

func loader(size uintptr) func([]byte) uint64 {
	switch size {
	case 1:
		return func(b []byte) uint64 { return uint64(b[0]) }
	case 2:
		return func(b []byte) uint64 { return uint64(binary.NativeEndian.Uint16(b)) }
	case 4:
		return func(b []byte) uint64 { return uint64(binary.NativeEndian.Uint32(b)) }
	case 8:
		return binary.NativeEndian.Uint64
	default:
		panic(fmt.Sprintf("validity: unsupported integer width %d", size))
	}
}

// Field places a predicate at an offset inside an aggregate.
type Field struct {
	Offset uintptr
	Size   uintptr
	Pred   Predicate
}

// Struct accepts a region when every field predicate accepts its slice.
// Fields without a predicate are skipped; if none remain Struct returns
// nil, meaning every bit pattern is valid.
func Struct(fields ...Field) Predicate {
	var checked []Field
	for _, f := range fields {
		if f.Pred != nil {
			checked = append(checked, f)
		}
	}
	if len(checked) == 0 {
		return nil
	}
	return func(b []byte) bool {
		for _, f := range checked {
			if !f.Pred(b[f.Offset : f.Offset+f.Size]) {
				return false
			}
		}
		return true
	}
}

// Array accepts n consecutive elements when elem accepts each of them. A
// nil elem yields nil.
func Array(elem Predicate, elemSize uintptr, n int) Predicate {
	if elem == nil || n == 0 {
		return nil
	}
	return func(b []byte) bool {
		for i := range n {
			off := uintptr(i) * elemSize
			if !elem(b[off : off+elemSize]) {
				return false
			}
		}
		return true
	}
}
