package layout

import (
	"fmt"
	"reflect"

	"github.com/rawbytedev/zerocast/internal/common"
)

// OfType derives the layout of t structurally: arrays from their element,
// structs by extending field after field. The derived size and every field
// offset must agree with the compiler; a disagreement means the model is
// wrong for this platform and OfType panics.
func OfType(t reflect.Type) Layout {
	switch t.Kind() {
	case reflect.Struct:
		return structLayout(t)
	case reflect.Array:
		elem := OfType(t.Elem())
		size, ok := common.CheckedMul(elem.Size(), uintptr(t.Len()))
		if !ok {
			panic("layout: array size overflows for " + t.String())
		}
		return check(t, Sized(size, elem.Align))
	default:
		return Sized(t.Size(), uintptr(t.Align()))
	}
}

func structLayout(t reflect.Type) Layout {
	l := Sized(0, 1)
	n := t.NumField()
	var last Layout
	for i := range n {
		f := t.Field(i)
		last = OfType(f.Type)
		var off uintptr
		l, off = l.ExtendAt(last, 0)
		if off != f.Offset {
			panic(fmt.Sprintf("layout: derived offset %d of %s.%s disagrees with compiler offset %d",
				off, t, f.Name, f.Offset))
		}
	}
	// A non-empty struct ending in a zero-size field gets one byte so the
	// field's address cannot point past the object.
	if n > 0 && l.Size() > 0 && last.IsSized() && last.Size() == 0 {
		l = Sized(l.Size()+1, l.Align)
	}
	// The compiler may raise alignment beyond the fields' (atomic 64-bit
	// values on 32-bit platforms).
	l = l.WithMinAlign(uintptr(t.Align())).PadToAlign()
	return check(t, l)
}

func check(t reflect.Type, l Layout) Layout {
	if l.Size() != t.Size() || l.Align != uintptr(t.Align()) {
		panic(fmt.Sprintf("layout: derived %s for %s disagrees with compiler size %d align %d",
			l, t, t.Size(), t.Align()))
	}
	return l
}
