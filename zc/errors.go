package zc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rawbytedev/zerocast/layout"
)

// Kind categorizes a cast failure.
type Kind uint8

const (
	KindSize Kind = iota + 1
	KindAlignment
	KindValidity
)

func (k Kind) String() string {
	switch k {
	case KindSize:
		return "size"
	case KindAlignment:
		return "alignment"
	case KindValidity:
		return "validity"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

var (
	ErrSize      = errors.New("zc: size mismatch")
	ErrAlignment = errors.New("zc: misaligned")
	ErrValidity  = errors.New("zc: invalid bit pattern")
)

// Error is returned by every failed cast. It hands the rejected buffer
// back to the caller in Src.
type Error[B any] struct {
	Kind   Kind
	Src    B
	Target string
	Layout layout.Layout
	Mode   Mode
	// Len is the length of the buffer the cast started from.
	Len int
	// Want is the size the cast needed. Meaningless when NoSize is set.
	Want uintptr
	// NoSize is set when no required size exists: an explicit element
	// count overflows, or the buffer cannot hold the fixed part of a
	// trailing-slice layout.
	NoSize bool
	// Elems is the explicit element count, or -1 when it was inferred.
	Elems int
	// Addr is the candidate address that failed the alignment check.
	Addr uintptr
}

func (e *Error[B]) Error() string {
	var b strings.Builder
	b.WriteString("zc: ")
	b.WriteString(e.Kind.String())
	b.WriteString(" error casting to ")
	b.WriteString(e.Target)
	switch e.Kind {
	case KindSize:
		switch {
		case e.NoSize && e.Elems >= 0:
			fmt.Fprintf(&b, ": %d elements overflow the address space", e.Elems)
		case e.NoSize:
			fmt.Fprintf(&b, ": %d bytes cannot hold %s", e.Len, e.Layout)
		default:
			fmt.Fprintf(&b, ": %s cast of %d bytes needs %d", e.Mode, e.Len, e.Want)
		}
	case KindAlignment:
		fmt.Fprintf(&b, ": address %#x is not %d-byte aligned", e.Addr, e.Layout.Align)
	case KindValidity:
		b.WriteString(": bytes do not hold a valid value")
	}
	return b.String()
}

// Unwrap returns the sentinel of the error's kind.
func (e *Error[B]) Unwrap() error {
	switch e.Kind {
	case KindSize:
		return ErrSize
	case KindAlignment:
		return ErrAlignment
	case KindValidity:
		return ErrValidity
	}
	return nil
}

// Source recovers the rejected buffer from a cast error.
func Source[B any](err error) (B, bool) {
	var e *Error[B]
	if errors.As(err, &e) {
		return e.Src, true
	}
	var zero B
	return zero, false
}

// KindOf returns the kind of a cast error of any buffer type, or 0.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrSize):
		return KindSize
	case errors.Is(err, ErrAlignment):
		return KindAlignment
	case errors.Is(err, ErrValidity):
		return KindValidity
	}
	return 0
}
