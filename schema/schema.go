// Package schema describes binary layouts in YAML and compiles them into
// cast targets, for data whose shape is only known at run time.
package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/zerocast"
	"github.com/rawbytedev/zerocast/buffer"
	"github.com/rawbytedev/zerocast/internal/common"
	"github.com/rawbytedev/zerocast/layout"
	"github.com/rawbytedev/zerocast/validity"
	"github.com/rawbytedev/zerocast/zc"
)

var (
	ErrUnknownType  = errors.New("schema: unknown field type")
	ErrBadAlign     = errors.New("schema: alignment must be a power of two")
	ErrBadValues    = errors.New("schema: allowed values do not fit the field type")
	ErrEmptySchema  = errors.New("schema: no fields and no tail")
	ErrDuplicate    = errors.New("schema: duplicate field name")
	ErrNegativeSize = errors.New("schema: negative count")
	ErrTooLarge     = errors.New("schema: layout size overflows the address space")
)

// Schema is the YAML form of a layout.
type Schema struct {
	Name string `yaml:"name"`
	// Align is a minimum alignment for the whole value; 0 leaves it to the
	// fields.
	Align uintptr `yaml:"align"`
	// Packed caps each field's alignment; 0 means no cap.
	Packed uintptr  `yaml:"packed"`
	Fields []Field  `yaml:"fields"`
	Tail   *Element `yaml:"tail"`
}

// Field is one named member of a Schema.
type Field struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	// Count turns the field into a fixed array of Count values.
	Count *int `yaml:"count"`
	// Values, when set, are the only accepted values.
	Values []int64 `yaml:"values"`
}

// Element is the type of the trailing run of a dynamically sized layout.
type Element struct {
	Type   string  `yaml:"type"`
	Values []int64 `yaml:"values"`
}

// Parse decodes a YAML schema. Unknown keys are rejected.
func Parse(data []byte) (*Schema, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a YAML schema from r.
func Decode(r io.Reader) (*Schema, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var s Schema
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("schema: decode: %w", err)
	}
	return &s, nil
}

// Load reads and decodes the schema file at path.
func Load(path string) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Compiled is a schema turned into a cast target plus what is needed to
// decode the fields of a matched region.
type Compiled struct {
	Target *zc.Target
	Fields []FieldLayout
	Tail   *ElementLayout
}

// FieldLayout places a field inside the value.
type FieldLayout struct {
	Name   string
	Type   string
	Offset uintptr
	// Count is the array length of an array field.
	Count int

	scalar scalar
	array  bool
}

// ElementLayout places the trailing run.
type ElementLayout struct {
	Type   string
	Offset uintptr
	Size   uintptr

	scalar scalar
}

// Compile folds the schema's fields through the layout model and builds
// its validity plan.
func (s *Schema) Compile() (*Compiled, error) {
	if len(s.Fields) == 0 && s.Tail == nil {
		return nil, fmt.Errorf("%q: %w", s.Name, ErrEmptySchema)
	}
	for _, a := range []uintptr{s.Align, s.Packed} {
		if a != 0 && !common.IsPowerOfTwo(a) {
			return nil, fmt.Errorf("%q: %d: %w", s.Name, a, ErrBadAlign)
		}
	}

	var (
		c      = &Compiled{}
		l      = layout.Sized(0, 1)
		preds  []validity.Field
		seen   = make(map[string]bool, len(s.Fields))
		header uintptr
	)
	for _, f := range s.Fields {
		if seen[f.Name] {
			return nil, fmt.Errorf("%q: field %q: %w", s.Name, f.Name, ErrDuplicate)
		}
		seen[f.Name] = true

		sc, ok := scalars[f.Type]
		if !ok {
			return nil, fmt.Errorf("%q: field %q: %q: %w", s.Name, f.Name, f.Type, ErrUnknownType)
		}
		n, fl := 1, layout.Sized(sc.size, sc.size)
		count := 0
		if f.Count != nil {
			if *f.Count < 0 {
				return nil, fmt.Errorf("%q: field %q: %w", s.Name, f.Name, ErrNegativeSize)
			}
			n, count = *f.Count, *f.Count
			size, ok := common.CheckedMul(sc.size, uintptr(n))
			if !ok {
				return nil, fmt.Errorf("%q: field %q: %d x %s: %w", s.Name, f.Name, n, f.Type, ErrTooLarge)
			}
			fl = layout.Sized(size, sc.size)
		}
		pred, err := predicate(sc, f.Values)
		if err != nil {
			return nil, fmt.Errorf("%q: field %q: %w", s.Name, f.Name, err)
		}

		next, off, ok := l.TryExtendAt(fl, s.Packed)
		if !ok {
			return nil, fmt.Errorf("%q: field %q: %w", s.Name, f.Name, ErrTooLarge)
		}
		l = next
		c.Fields = append(c.Fields, FieldLayout{Name: f.Name, Type: f.Type, Offset: off, Count: count, scalar: sc, array: f.Count != nil})
		preds = append(preds, validity.Field{Offset: off, Size: fl.Size(), Pred: validity.Array(pred, sc.size, n)})
		header = l.Size()
	}
	head := validity.Struct(preds...)

	var plan *validity.Plan
	if s.Tail != nil {
		sc, ok := scalars[s.Tail.Type]
		if !ok {
			return nil, fmt.Errorf("%q: tail: %q: %w", s.Name, s.Tail.Type, ErrUnknownType)
		}
		pred, err := predicate(sc, s.Tail.Values)
		if err != nil {
			return nil, fmt.Errorf("%q: tail: %w", s.Name, err)
		}
		next, _, ok := l.TryExtendAt(layout.ForSlice(sc.size, sc.size), s.Packed)
		if !ok {
			return nil, fmt.Errorf("%q: tail: %w", s.Name, ErrTooLarge)
		}
		l = next
		if s.Align != 0 {
			l = l.WithMinAlign(s.Align)
		}
		c.Tail = &ElementLayout{Type: s.Tail.Type, Offset: l.SizeInfo.Offset, Size: sc.size, scalar: sc}
		plan = validity.NewTrailing(head, header, pred, l.SizeInfo.Offset, sc.size)
	} else {
		if s.Align != 0 {
			l = l.WithMinAlign(s.Align)
		}
		padded, ok := l.TryPadToAlign()
		if !ok {
			return nil, fmt.Errorf("%q: %w", s.Name, ErrTooLarge)
		}
		l = padded
		plan = validity.New(head, header)
	}
	if plan.AllValid() {
		plan = nil
	}

	c.Target = &zc.Target{Name: s.Name, Layout: l, Plan: plan}
	zerocast.Logger().Debug("compiled schema",
		zap.String("schema", s.Name),
		zap.Stringer("layout", l),
		zap.Int("fields", len(c.Fields)),
		zap.Bool("all_valid", plan.AllValid()),
	)
	return c, nil
}

func predicate(sc scalar, values []int64) (validity.Predicate, error) {
	if len(values) == 0 {
		if sc.class == classBool {
			return validity.Bool(), nil
		}
		return nil, nil
	}
	allowed := make([]uint64, 0, len(values))
	for _, v := range values {
		bits, ok := sc.bits(v)
		if !ok {
			return nil, fmt.Errorf("%s value %d: %w", sc.name, v, ErrBadValues)
		}
		allowed = append(allowed, bits)
	}
	return validity.OneOf(sc.size, allowed...), nil
}

// Cast fits the compiled layout into b and validates it. elems < 0 infers
// the trailing element count.
func (c *Compiled) Cast(b buffer.Shared, mode zc.Mode, elems int) (zc.Match[buffer.Shared], error) {
	var (
		m   zc.Match[buffer.Shared]
		err error
	)
	if elems < 0 || c.Tail == nil {
		m, err = zc.Cast(b, c.Target, mode)
	} else {
		m, err = zc.CastElems(b, c.Target, elems, mode)
	}
	if err != nil {
		return m, err
	}
	return m, zc.ValidateShared(m, c.Target)
}
