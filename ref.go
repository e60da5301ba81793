package zerocast

import (
	"fmt"
	"slices"
	"unsafe"

	"github.com/rawbytedev/zerocast/buffer"
	"github.com/rawbytedev/zerocast/internal/common"
)

// Ref is a read-only typed view of a buffer holding a valid T. It is only
// built by the From constructors, so every access can skip validation.
type Ref[B buffer.ByteSlice, T any] struct {
	buf B
}

// Get loads the T the buffer holds.
func (r Ref[B, T]) Get() T {
	return *pointer[T](r.buf.Bytes())
}

// Read copies the T out of the buffer byte by byte.
func (r Ref[B, T]) Read() T {
	var v T
	copy(bytesOf(&v), r.buf.Bytes())
	return v
}

// Bytes returns the bytes the view covers.
func (r Ref[B, T]) Bytes() []byte { return r.buf.Bytes() }

// Buffer returns the underlying buffer, ending the view.
func (r Ref[B, T]) Buffer() B { return r.buf }

func (r Ref[B, T]) String() string {
	return fmt.Sprintf("Ref(%v)", r.Get())
}

// Equal reports whether two views hold equal values.
func Equal[B1, B2 buffer.ByteSlice, T comparable](a Ref[B1, T], b Ref[B2, T]) bool {
	return a.Get() == b.Get()
}

// Mut is a writable typed view of an exclusively held buffer.
type Mut[B buffer.ByteSliceMut, T any] struct {
	buf B
}

// Get returns a pointer into the buffer. It stays valid as long as the
// buffer does.
func (m Mut[B, T]) Get() *T {
	return pointer[T](m.buf.BytesMut())
}

// Read copies the T out of the buffer.
func (m Mut[B, T]) Read() T {
	var v T
	copy(bytesOf(&v), m.buf.Bytes())
	return v
}

// Write stores v into the buffer.
func (m Mut[B, T]) Write(v T) {
	*m.Get() = v
}

// Bytes returns the bytes the view covers. For a T that restricts its bit
// patterns the result is a copy, so it cannot be used to write an invalid
// value; use Write or Get instead.
func (m Mut[B, T]) Bytes() []byte {
	return readOnly(m.buf.Bytes(), TargetOf[T]().Plan.AllValid())
}

// BytesMut returns the covered bytes for writing. Writing arbitrary bytes
// could break T's validity, so BytesMut panics unless every bit pattern is
// a valid T.
func (m Mut[B, T]) BytesMut() []byte {
	t := TargetOf[T]()
	if !t.Plan.AllValid() {
		panic("zerocast: BytesMut on " + t.Name + ", which restricts its bit patterns")
	}
	return m.buf.BytesMut()
}

// Buffer returns the underlying buffer, ending the view.
func (m Mut[B, T]) Buffer() B { return m.buf }

// AsRef turns a writable view into a read-only one over the same buffer.
func AsRef[B buffer.ByteSliceMut, T any](m Mut[B, T]) Ref[B, T] {
	return Ref[B, T]{buf: m.buf}
}

func (m Mut[B, T]) String() string {
	return fmt.Sprintf("Mut(%v)", *m.Get())
}

// pointer re-derives the typed pointer from b. The cast already checked
// size and alignment; seeing anything else means the buffer moved or
// shrank, which breaks the ByteSlice contract.
func pointer[T any](b []byte) *T {
	var zero T
	size, align := unsafe.Sizeof(zero), unsafe.Alignof(zero)
	if uintptr(len(b)) != size || !common.Aligned(b, align) {
		panic(fmt.Sprintf("zerocast: buffer changed under a view (len %d, addr %#x, want size %d align %d)",
			len(b), common.Addr(b), size, align))
	}
	if size == 0 {
		return new(T)
	}
	return (*T)(unsafe.Pointer(unsafe.SliceData(b)))
}

// readOnly returns b itself when any bytes written through it still form a
// valid value, and a copy otherwise.
func readOnly(b []byte, allValid bool) []byte {
	if allValid {
		return b
	}
	return slices.Clone(b)
}

func bytesOf[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}
