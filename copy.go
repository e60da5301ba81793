package zerocast

import (
	"github.com/rawbytedev/zerocast/validity"
	"github.com/rawbytedev/zerocast/zc"
)

// ReadFrom copies b into a new T. Alignment does not matter. b must be
// exactly T's size and hold a valid T.
func ReadFrom[T any](b []byte) (T, error) {
	return readAt[T](b, zc.Exact)
}

// ReadFromPrefix copies a T out of the start of b and returns the rest.
func ReadFromPrefix[T any](b []byte) (T, []byte, error) {
	v, err := readAt[T](b, zc.Prefix)
	if err != nil {
		return v, nil, err
	}
	return v, b[sizeOf[T]():], nil
}

// ReadFromSuffix copies a T out of the end of b and returns what precedes
// it.
func ReadFromSuffix[T any](b []byte) ([]byte, T, error) {
	v, err := readAt[T](b, zc.Suffix)
	if err != nil {
		return nil, v, err
	}
	return b[:len(b)-sizeOf[T]()], v, nil
}

func readAt[T any](b []byte, mode zc.Mode) (T, error) {
	var v T
	t := TargetOf[T]()
	size := sizeOf[T]()
	if len(b) < size || (mode == zc.Exact && len(b) != size) {
		return v, copyError(zc.KindSize, b, t, mode)
	}

	start := 0
	if mode == zc.Suffix {
		start = len(b) - size
	}
	local := bytesOf(&v)
	copy(local, b[start:start+size])

	// The copy is ours alone, so any type may be checked on it.
	if !t.Plan.CheckExclusive(validity.ExclusiveRegion(local, 0)) {
		var zero T
		return zero, copyError(zc.KindValidity, b, t, mode)
	}
	return v, nil
}

// WriteTo copies the bytes of v into dst, which must be exactly T's size.
// It panics if T has padding bytes.
func WriteTo[T any](dst []byte, v T) error {
	return writeAt(dst, v, zc.Exact)
}

// WriteToPrefix copies the bytes of v into the start of dst.
func WriteToPrefix[T any](dst []byte, v T) error {
	return writeAt(dst, v, zc.Prefix)
}

// WriteToSuffix copies the bytes of v into the end of dst.
func WriteToSuffix[T any](dst []byte, v T) error {
	return writeAt(dst, v, zc.Suffix)
}

func writeAt[T any](dst []byte, v T, mode zc.Mode) error {
	src := AsBytes(&v)
	size := len(src)
	if len(dst) < size || (mode == zc.Exact && len(dst) != size) {
		return copyError(zc.KindSize, dst, TargetOf[T](), mode)
	}
	start := 0
	if mode == zc.Suffix {
		start = len(dst) - size
	}
	copy(dst[start:], src)
	return nil
}

// AsBytes returns the bytes of *v without copying. Writing through the
// result is only sound when every bit pattern is a valid T. It panics if T
// has padding bytes, whose contents are not part of the value.
func AsBytes[T any](v *T) []byte {
	t := TargetOf[T]()
	if t.Plan.Padded() {
		panic("zerocast: " + t.Name + " has padding bytes and cannot be exposed as bytes")
	}
	return bytesOf(v)
}

func sizeOf[T any]() int {
	return int(TargetOf[T]().Layout.Size())
}

func copyError(kind zc.Kind, b []byte, t *zc.Target, mode zc.Mode) error {
	return &zc.Error[[]byte]{
		Kind:   kind,
		Src:    b,
		Target: t.Name,
		Layout: t.Layout,
		Mode:   mode,
		Len:    len(b),
		Want:   t.Layout.Size(),
		Elems:  -1,
	}
}
