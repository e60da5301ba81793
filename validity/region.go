package validity

// Shared is a candidate region reached through an alias that other readers
// may hold at the same time.
type Shared struct {
	b     []byte
	elems int
}

// Exclusive is a candidate region reached through the only live alias.
type Exclusive struct {
	b     []byte
	elems int
}

// SharedRegion wraps b, holding elems trailing elements (0 for fixed-size
// types).
func SharedRegion(b []byte, elems int) Shared {
	return Shared{b: b, elems: elems}
}

// ExclusiveRegion wraps b, holding elems trailing elements (0 for
// fixed-size types).
func ExclusiveRegion(b []byte, elems int) Exclusive {
	return Exclusive{b: b, elems: elems}
}

// Len returns the region length in bytes.
func (r Shared) Len() int { return len(r.b) }

// Len returns the region length in bytes.
func (r Exclusive) Len() int { return len(r.b) }
