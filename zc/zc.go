// Package zc (zero-copy) is the cast engine. It decides whether a byte
// buffer can be reinterpreted as a value of a described layout, picks the
// sub-region the value occupies, and hands back the split buffer. It works
// on type-erased Targets; the typed API in the root package builds on it.
//
// A cast runs in a fixed order: required size, size check, candidate
// region, alignment check, split. Bit validity is a separate step
// (ValidateShared or ValidateExclusive) because the access mode decides
// whether a predicate may run at all.
package zc

import (
	"fmt"

	"github.com/rawbytedev/zerocast/layout"
	"github.com/rawbytedev/zerocast/validity"
)

// Mode selects which part of the buffer a cast consumes.
type Mode uint8

const (
	// Exact requires the buffer to be exactly the value's size.
	Exact Mode = iota
	// Prefix takes the value from the start of the buffer.
	Prefix
	// Suffix takes the value from the end of the buffer.
	Suffix
)

func (m Mode) String() string {
	switch m {
	case Exact:
		return "exact"
	case Prefix:
		return "prefix"
	case Suffix:
		return "suffix"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Target describes what a buffer is cast to.
type Target struct {
	// Name is used in error messages only.
	Name   string
	Layout layout.Layout
	// Plan checks bit validity; nil accepts every bit pattern.
	Plan *validity.Plan
}

// Match is the outcome of a successful cast. Region has the right size and
// alignment but has not been checked for bit validity yet.
type Match[B any] struct {
	Region B
	Rest   B
	// Elems is the trailing element count, 0 for sized targets.
	Elems int

	src B
}

// Source returns the buffer the cast started from.
func (m Match[B]) Source() B { return m.src }
