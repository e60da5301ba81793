package zerocast

import (
	"fmt"
	"unsafe"

	"github.com/rawbytedev/zerocast/buffer"
	"github.com/rawbytedev/zerocast/internal/common"
	"github.com/rawbytedev/zerocast/layout"
)

// Slice is a read-only view of an H header followed by a run of E values,
// the Go rendition of a type whose last field is a slice.
type Slice[B buffer.ByteSlice, H, E any] struct {
	buf B
	n   int
}

// Len returns the number of trailing elements.
func (s Slice[B, H, E]) Len() int { return s.n }

// Header loads the header.
func (s Slice[B, H, E]) Header() H {
	b := trailing[H, E](s.buf.Bytes(), s.n)
	var h H
	if unsafe.Sizeof(h) == 0 {
		return h
	}
	return *(*H)(unsafe.Pointer(unsafe.SliceData(b)))
}

// At loads element i. It panics if i is out of range.
func (s Slice[B, H, E]) At(i int) E {
	return elems[H, E](s.buf.Bytes(), s.n)[i]
}

// AppendTo appends a copy of the elements to dst.
func (s Slice[B, H, E]) AppendTo(dst []E) []E {
	return append(dst, elems[H, E](s.buf.Bytes(), s.n)...)
}

// Bytes returns the bytes the view covers, padding included.
func (s Slice[B, H, E]) Bytes() []byte { return s.buf.Bytes() }

// Buffer returns the underlying buffer, ending the view.
func (s Slice[B, H, E]) Buffer() B { return s.buf }

func (s Slice[B, H, E]) String() string {
	return fmt.Sprintf("Slice(%v, %v)", s.Header(), elems[H, E](s.buf.Bytes(), s.n))
}

// SliceMut is the writable counterpart of Slice.
type SliceMut[B buffer.ByteSliceMut, H, E any] struct {
	buf B
	n   int
}

// Len returns the number of trailing elements.
func (s SliceMut[B, H, E]) Len() int { return s.n }

// Header returns a pointer to the header inside the buffer.
func (s SliceMut[B, H, E]) Header() *H {
	b := trailing[H, E](s.buf.BytesMut(), s.n)
	var h H
	if unsafe.Sizeof(h) == 0 {
		return new(H)
	}
	return (*H)(unsafe.Pointer(unsafe.SliceData(b)))
}

// Elems returns the trailing elements as a slice aliasing the buffer.
func (s SliceMut[B, H, E]) Elems() []E {
	return elems[H, E](s.buf.BytesMut(), s.n)
}

// Bytes returns the bytes the view covers. The result is a copy when H or
// E restricts its bit patterns.
func (s SliceMut[B, H, E]) Bytes() []byte {
	return readOnly(s.buf.Bytes(), SliceTargetOf[H, E]().Plan.AllValid())
}

// BytesMut returns the covered bytes for writing. It panics unless every
// bit pattern of H and E is valid.
func (s SliceMut[B, H, E]) BytesMut() []byte {
	t := SliceTargetOf[H, E]()
	if !t.Plan.AllValid() {
		panic("zerocast: BytesMut on " + t.Name + ", which restricts its bit patterns")
	}
	return s.buf.BytesMut()
}

// Buffer returns the underlying buffer, ending the view.
func (s SliceMut[B, H, E]) Buffer() B { return s.buf }

// AsSlice turns a writable view into a read-only one.
func AsSlice[B buffer.ByteSliceMut, H, E any](s SliceMut[B, H, E]) Slice[B, H, E] {
	return Slice[B, H, E]{buf: s.buf, n: s.n}
}

// trailingLayout is the layout of H followed by []E computed from the
// compiler's own numbers, without touching the registry.
func trailingLayout[H, E any]() layout.Layout {
	return layout.Of[H]().Extend(layout.ForSliceOf[E](), 0)
}

// trailing checks that b still has the size and alignment the cast saw for
// n elements and returns it.
func trailing[H, E any](b []byte, n int) []byte {
	l := trailingLayout[H, E]()
	size, ok := layout.Count(n).SizeFor(l)
	if !ok || uintptr(len(b)) != size || !common.Aligned(b, l.Align) {
		panic(fmt.Sprintf("zerocast: buffer changed under a view (len %d, addr %#x, want %d elements of %s)",
			len(b), common.Addr(b), n, l))
	}
	return b
}

func elems[H, E any](b []byte, n int) []E {
	b = trailing[H, E](b, n)
	var e E
	if unsafe.Sizeof(e) == 0 {
		return make([]E, n)
	}
	off := trailingLayout[H, E]().SizeInfo.Offset
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*E)(unsafe.Pointer(&b[off])), n)
}
