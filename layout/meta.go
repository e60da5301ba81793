package layout

import (
	"fmt"

	"github.com/rawbytedev/zerocast/internal/common"
)

// Metadata is the runtime information needed, together with a Layout, to
// know the byte size of a value: nothing for fixed-size types, an element
// count for types with a trailing run.
type Metadata struct {
	elems   uintptr
	dynamic bool
}

// Unit is the metadata of every fixed-size type.
var Unit = Metadata{}

// Count returns element-count metadata. It panics if n is negative.
func Count(n int) Metadata {
	if n < 0 {
		panic(fmt.Sprintf("layout: negative element count %d", n))
	}
	return Metadata{elems: uintptr(n), dynamic: true}
}

// IsUnit reports whether m carries no element count.
func (m Metadata) IsUnit() bool { return !m.dynamic }

// Elems returns the element count, or 0 for Unit.
func (m Metadata) Elems() int { return int(m.elems) }

// SizeFor returns the size in bytes of a value with layout l and metadata
// m. The second result is false when the size overflows uintptr.
//
// Unit must be paired with a Sized layout and Count with a SliceDst
// layout; any other pairing is a programming error and panics.
func (m Metadata) SizeFor(l Layout) (uintptr, bool) {
	if !m.dynamic {
		if !l.IsSized() {
			panic("layout: Unit metadata used with dynamically sized layout " + l.String())
		}
		return l.SizeInfo.Size, true
	}
	if l.IsSized() {
		panic("layout: element count used with fixed-size layout " + l.String())
	}

	trailing, ok := common.CheckedMul(l.SizeInfo.ElemSize, m.elems)
	if !ok {
		return 0, false
	}
	unpadded, ok := common.CheckedAdd(l.SizeInfo.Offset, trailing)
	if !ok {
		return 0, false
	}
	return common.AlignUp(unpadded, l.Align)
}

func (m Metadata) String() string {
	if !m.dynamic {
		return "Unit"
	}
	return fmt.Sprintf("Count(%d)", m.elems)
}
