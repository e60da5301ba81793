package validity

import (
	"fmt"
	"reflect"

	"github.com/rawbytedev/zerocast/internal/common"
)

// Plan is the compiled validity check for one type. A nil *Plan accepts
// every bit pattern.
type Plan struct {
	head     Predicate
	headSize uintptr

	elem     Predicate
	offset   uintptr
	elemSize uintptr

	interior bool
	padded   bool
}

// New returns a plan for a fixed-size region checked by pred. A nil pred
// accepts every bit pattern.
func New(pred Predicate, size uintptr) *Plan {
	return &Plan{head: pred, headSize: size}
}

// NewTrailing returns a plan for a region made of a header of headSize
// bytes followed, at offset, by a run of elements of elemSize bytes.
func NewTrailing(head Predicate, headSize uintptr, elem Predicate, offset, elemSize uintptr) *Plan {
	return &Plan{head: head, headSize: headSize, elem: elem, offset: offset, elemSize: elemSize}
}

// WithInterior marks the plan's type as possibly interior-mutable.
func (p *Plan) WithInterior(interior bool) *Plan {
	p.interior = interior
	return p
}

// For compiles the plan of t. It panics if t holds anything that cannot be
// reinterpreted from bytes.
func For(t reflect.Type) *Plan {
	s := derive(t)
	return &Plan{head: s.pred, headSize: t.Size(), interior: s.interior, padded: s.padded}
}

// ForTrailing compiles the plan of a header type followed, at offset, by a
// run of elem values.
func ForTrailing(head, elem reflect.Type, offset uintptr) *Plan {
	h, e := derive(head), derive(elem)
	return &Plan{
		head:     h.pred,
		headSize: head.Size(),
		elem:     e.pred,
		offset:   offset,
		elemSize: elem.Size(),
		interior: h.interior || e.interior,
		padded:   h.padded || e.padded || offset != head.Size(),
	}
}

// AllValid reports whether every bit pattern is a legal value, in which
// case no predicate ever needs to run.
func (p *Plan) AllValid() bool {
	return p == nil || (p.head == nil && p.elem == nil)
}

// Interior reports whether the type may have interior mutability.
func (p *Plan) Interior() bool {
	return p != nil && p.interior
}

// Padded reports whether the type has padding bytes, whose contents are
// not part of its value.
func (p *Plan) Padded() bool {
	return p != nil && p.padded
}

// CheckShared runs the plan over a region reached through shared access.
// Running a predicate over an interior-mutable type this way is a
// programming error and panics.
func (p *Plan) CheckShared(r Shared) bool {
	if p.AllValid() {
		return true
	}
	if p.interior {
		panic("validity: interior-mutable type checked through shared access")
	}
	return p.check(r.b, r.elems)
}

// CheckExclusive runs the plan over a region reached through exclusive
// access.
func (p *Plan) CheckExclusive(r Exclusive) bool {
	if p.AllValid() {
		return true
	}
	return p.check(r.b, r.elems)
}

func (p *Plan) check(b []byte, elems int) bool {
	if p.head != nil && !p.head(b[:p.headSize]) {
		return false
	}
	if p.elem == nil {
		return true
	}
	for i := range elems {
		off := p.offset + uintptr(i)*p.elemSize
		if !p.elem(b[off : off+p.elemSize]) {
			return false
		}
	}
	return true
}

var validatorType = reflect.TypeFor[BitValidator]()

type shape struct {
	pred     Predicate
	interior bool
	padded   bool
}

func derive(t reflect.Type) shape {
	var s shape
	switch k := t.Kind(); {
	case k == reflect.Bool:
		s.pred = Bool()
	case common.IsFixedKind(k):
	case k == reflect.Array:
		e := derive(t.Elem())
		s = shape{
			pred:     Array(e.pred, t.Elem().Size(), t.Len()),
			interior: e.interior,
			padded:   e.padded,
		}
	case k == reflect.Struct:
		s = deriveStruct(t)
	default:
		panic(fmt.Sprintf("validity: %s cannot be reinterpreted from bytes (holds %s)", t, k))
	}

	switch t.PkgPath() {
	case "sync", "sync/atomic":
		s.interior = true
	}
	if t.Implements(validatorType) {
		s.pred = reflect.Zero(t).Interface().(BitValidator).IsBitValid
	}
	return s
}

func deriveStruct(t reflect.Type) shape {
	var (
		s      shape
		fields []Field
		used   uintptr
	)
	for i := range t.NumField() {
		f := t.Field(i)
		fs := derive(f.Type)
		s.interior = s.interior || fs.interior
		s.padded = s.padded || fs.padded
		used += f.Type.Size()
		fields = append(fields, Field{Offset: f.Offset, Size: f.Type.Size(), Pred: fs.pred})
	}
	s.padded = s.padded || used != t.Size()
	s.pred = Struct(fields...)
	return s
}
