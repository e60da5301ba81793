package schema

import (
	"fmt"

	"github.com/rawbytedev/zerocast/layout"
)

// Value is one decoded field. Value holds uint64, int64, float32, float64
// or bool, or a slice of them for array fields.
type Value struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// View is the decoded content of a matched region.
type View struct {
	Schema string  `json:"schema"`
	Size   int     `json:"size"`
	Fields []Value `json:"fields"`
	Tail   []any   `json:"tail,omitempty"`
}

// Decode reads every field out of region, which must come from a
// successful Cast of this schema with elems trailing elements. Values are
// read in host byte order.
func (c *Compiled) Decode(region []byte, elems int) (*View, error) {
	want, ok := c.size(elems)
	if !ok || uintptr(len(region)) != want {
		return nil, fmt.Errorf("schema %q: region of %d bytes does not hold %d elements", c.Target.Name, len(region), elems)
	}

	v := &View{Schema: c.Target.Name, Size: len(region)}
	for _, f := range c.Fields {
		val := Value{Name: f.Name, Type: f.Type}
		if !f.array {
			val.Value = f.scalar.decode(region[f.Offset:])
		} else {
			arr := make([]any, f.Count)
			for i := range arr {
				arr[i] = f.scalar.decode(region[f.Offset+uintptr(i)*f.scalar.size:])
			}
			val.Value = arr
		}
		v.Fields = append(v.Fields, val)
	}
	if c.Tail != nil {
		v.Tail = make([]any, elems)
		for i := range v.Tail {
			v.Tail[i] = c.Tail.scalar.decode(region[c.Tail.Offset+uintptr(i)*c.Tail.Size:])
		}
	}
	return v, nil
}

func (c *Compiled) size(elems int) (uintptr, bool) {
	l := c.Target.Layout
	if l.IsSized() {
		return l.Size(), elems == 0
	}
	if elems < 0 {
		return 0, false
	}
	return layout.Count(elems).SizeFor(l)
}
