package layout

import (
	"fmt"
	"unsafe"

	"github.com/rawbytedev/zerocast/internal/common"
)

// Kind selects the active variant of a SizeInfo.
type Kind uint8

const (
	// KindSized is a fixed-size type.
	KindSized Kind = iota
	// KindSliceDst is a type ending in a variable-length element run.
	KindSliceDst
)

func (k Kind) String() string {
	switch k {
	case KindSized:
		return "Sized"
	case KindSliceDst:
		return "SliceDst"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// SizeInfo describes how large a value of a type is.
//
// For KindSized only Size is meaningful. For KindSliceDst, Offset is the
// byte position of the trailing run and ElemSize the size of one element.
type SizeInfo struct {
	Kind     Kind
	Size     uintptr
	Offset   uintptr
	ElemSize uintptr
}

func (s SizeInfo) String() string {
	if s.Kind == KindSliceDst {
		return fmt.Sprintf("SliceDst{offset: %d, elem_size: %d}", s.Offset, s.ElemSize)
	}
	return fmt.Sprintf("Sized{size: %d}", s.Size)
}

// Layout is the alignment and size information of a type.
type Layout struct {
	Align    uintptr
	SizeInfo SizeInfo
}

// Sized returns the layout of a fixed-size type.
func Sized(size, align uintptr) Layout {
	mustAlign(align)
	return Layout{Align: align, SizeInfo: SizeInfo{Kind: KindSized, Size: size}}
}

// ForSlice returns the layout of a bare run of elements with the given
// element size and alignment.
func ForSlice(elemSize, elemAlign uintptr) Layout {
	mustAlign(elemAlign)
	return Layout{
		Align:    elemAlign,
		SizeInfo: SizeInfo{Kind: KindSliceDst, Offset: 0, ElemSize: elemSize},
	}
}

// ForSliceOf returns the layout of []E viewed as a run of elements.
func ForSliceOf[E any]() Layout {
	var z E
	return ForSlice(unsafe.Sizeof(z), unsafe.Alignof(z))
}

// Of returns the compiler layout of T.
func Of[T any]() Layout {
	var z T
	return Sized(unsafe.Sizeof(z), unsafe.Alignof(z))
}

// IsSized reports whether l describes a fixed-size type.
func (l Layout) IsSized() bool {
	return l.SizeInfo.Kind == KindSized
}

// Size returns the size of a fixed-size layout. It panics for SliceDst.
func (l Layout) Size() uintptr {
	if !l.IsSized() {
		panic("layout: Size called on dynamically sized layout " + l.String())
	}
	return l.SizeInfo.Size
}

// Extend returns the layout of an aggregate whose fields are those of l
// followed by field. maxFieldAlign caps the field's alignment, as a packing
// attribute does; zero means no cap.
//
// Extend panics if l is dynamically sized: a trailing run may only be the
// last field.
func (l Layout) Extend(field Layout, maxFieldAlign uintptr) Layout {
	out, _ := l.ExtendAt(field, maxFieldAlign)
	return out
}

// ExtendAt is Extend that also returns the offset at which field was placed.
// It panics if the aggregate's size overflows.
func (l Layout) ExtendAt(field Layout, maxFieldAlign uintptr) (Layout, uintptr) {
	out, offset, ok := l.TryExtendAt(field, maxFieldAlign)
	if !ok {
		panic("layout: aggregate size overflows extending " + l.String() + " with " + field.String())
	}
	return out, offset
}

// TryExtendAt is ExtendAt for layouts built from untrusted input: it
// reports false instead of panicking when the aggregate's size overflows.
// Contract violations still panic.
func (l Layout) TryExtendAt(field Layout, maxFieldAlign uintptr) (Layout, uintptr, bool) {
	if !l.IsSized() {
		panic("layout: cannot extend dynamically sized layout " + l.String())
	}

	fieldAlign := field.Align
	if maxFieldAlign != 0 {
		mustAlign(maxFieldAlign)
		fieldAlign = min(fieldAlign, maxFieldAlign)
	}
	align := max(l.Align, fieldAlign)

	offset, ok := common.CheckedAdd(l.SizeInfo.Size, common.Padding(l.SizeInfo.Size, fieldAlign))
	if !ok {
		return Layout{}, 0, false
	}

	switch field.SizeInfo.Kind {
	case KindSized:
		size, ok := common.CheckedAdd(offset, field.SizeInfo.Size)
		if !ok {
			return Layout{}, 0, false
		}
		return Layout{Align: align, SizeInfo: SizeInfo{Kind: KindSized, Size: size}}, offset, true
	case KindSliceDst:
		trailing, ok := common.CheckedAdd(offset, field.SizeInfo.Offset)
		if !ok {
			return Layout{}, 0, false
		}
		return Layout{
			Align: align,
			SizeInfo: SizeInfo{
				Kind:     KindSliceDst,
				Offset:   trailing,
				ElemSize: field.SizeInfo.ElemSize,
			},
		}, offset, true
	default:
		panic("layout: unknown size kind " + field.SizeInfo.Kind.String())
	}
}

// PadToAlign rounds a Sized layout up to a multiple of its alignment.
// SliceDst layouts are returned unchanged; their padding depends on the
// element count and is applied when a size is computed.
func (l Layout) PadToAlign() Layout {
	out, ok := l.TryPadToAlign()
	if !ok {
		panic("layout: padded size overflows")
	}
	return out
}

// TryPadToAlign is PadToAlign reporting false on overflow.
func (l Layout) TryPadToAlign() (Layout, bool) {
	if !l.IsSized() {
		return l, true
	}
	size, ok := common.AlignUp(l.SizeInfo.Size, l.Align)
	if !ok {
		return Layout{}, false
	}
	l.SizeInfo.Size = size
	return l, true
}

// WithMinAlign raises the alignment of l to at least align. It never lowers
// it. Callers finishing a Sized layout should call PadToAlign afterwards.
func (l Layout) WithMinAlign(align uintptr) Layout {
	mustAlign(align)
	l.Align = max(l.Align, align)
	return l
}

func (l Layout) String() string {
	return fmt.Sprintf("Layout{align: %d, %s}", l.Align, l.SizeInfo)
}

func mustAlign(align uintptr) {
	if !common.IsPowerOfTwo(align) {
		panic(fmt.Sprintf("layout: alignment %d is not a power of two", align))
	}
}
