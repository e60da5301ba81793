// Package buffer defines the byte-buffer abstraction the cast engine works
// on. A buffer hands out the same address and length every time it is
// asked, which is what lets a typed view re-derive its pointer on each
// access without re-validating.
package buffer

// ByteSlice is a read-only view of a stable byte region.
type ByteSlice interface {
	Bytes() []byte
}

// ByteSliceMut is a ByteSlice that also grants write access.
type ByteSliceMut interface {
	ByteSlice
	BytesMut() []byte
}

// SplitByteSlice is a ByteSlice that can be cut in two without copying.
// Both halves keep the stability guarantee of the original.
type SplitByteSlice[B any] interface {
	ByteSlice
	SplitAt(mid int) (B, B)
}

// SplitByteSliceMut is a splittable, writable buffer.
type SplitByteSliceMut[B any] interface {
	ByteSliceMut
	SplitAt(mid int) (B, B)
}

// Shared is a byte slice reached through an alias that other readers may
// hold. It exposes no write access.
type Shared []byte

// Bytes returns the underlying slice.
func (s Shared) Bytes() []byte { return s }

// SplitAt cuts s at mid. It panics if mid is out of range.
func (s Shared) SplitAt(mid int) (Shared, Shared) {
	return s[:mid:mid], s[mid:]
}

// Exclusive is a byte slice the holder is the only one to reference.
type Exclusive []byte

// Bytes returns the underlying slice.
func (e Exclusive) Bytes() []byte { return e }

// BytesMut returns the underlying slice for writing.
func (e Exclusive) BytesMut() []byte { return e }

// SplitAt cuts e at mid. It panics if mid is out of range.
func (e Exclusive) SplitAt(mid int) (Exclusive, Exclusive) {
	return e[:mid:mid], e[mid:]
}
