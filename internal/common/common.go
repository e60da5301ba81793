package common

import (
	"reflect"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// IsFixedKind reports whether k is a pointer-free scalar kind whose
// storage can be reinterpreted from raw bytes.
func IsFixedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	default:
		return false
	}
}

// FixedSize returns the byte width for fixed-size scalar kinds, or -1.
func FixedSize(k reflect.Kind) int {
	switch k {
	case reflect.Bool, reflect.Int8, reflect.Uint8:
		return 1
	case reflect.Int16, reflect.Uint16:
		return 2
	case reflect.Int32, reflect.Uint32, reflect.Float32:
		return 4
	case reflect.Int64, reflect.Uint64, reflect.Float64, reflect.Complex64:
		return 8
	case reflect.Complex128:
		return 16
	case reflect.Int, reflect.Uint, reflect.Uintptr:
		return int(unsafe.Sizeof(uintptr(0)))
	default:
		return -1
	}
}

// IsPowerOfTwo reports whether n is a non-zero power of two.
func IsPowerOfTwo[T constraints.Unsigned](n T) bool {
	return n != 0 && n&(n-1) == 0
}

// CheckedAdd returns a+b, or false if the sum overflows T.
func CheckedAdd[T constraints.Unsigned](a, b T) (T, bool) {
	c := a + b
	if c < a {
		return 0, false
	}
	return c, true
}

// CheckedMul returns a*b, or false if the product overflows T.
func CheckedMul[T constraints.Unsigned](a, b T) (T, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if c/b != a {
		return 0, false
	}
	return c, true
}

// AlignUp rounds n up to the next multiple of align, which must be a power
// of two. It reports false if the result does not fit in T.
func AlignUp[T constraints.Unsigned](n, align T) (T, bool) {
	mask := align - 1
	m, ok := CheckedAdd(n, mask)
	if !ok {
		return 0, false
	}
	return m &^ mask, true
}

// AlignDown rounds n down to a multiple of align (a power of two).
func AlignDown[T constraints.Unsigned](n, align T) T {
	return n &^ (align - 1)
}

// Padding returns the smallest p such that (n+p) is a multiple of align.
func Padding[T constraints.Unsigned](n, align T) T {
	return (align - n%align) % align
}

// Addr returns the address of the first byte of b.
func Addr(b []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}

// Aligned reports whether the first byte of b sits on an align boundary.
func Aligned(b []byte, align uintptr) bool {
	return Addr(b)&(align-1) == 0
}
