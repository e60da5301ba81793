package zc

import (
	"github.com/rawbytedev/zerocast/buffer"
	"github.com/rawbytedev/zerocast/internal/common"
	"github.com/rawbytedev/zerocast/layout"
	"github.com/rawbytedev/zerocast/validity"
)

const inferred = -1

// Cast fits t into b. For a sized target the value takes Layout.Size bytes;
// for a trailing-slice target it takes the largest element count that fits.
func Cast[B buffer.SplitByteSlice[B]](b B, t *Target, mode Mode) (Match[B], error) {
	return cast(b, t, inferred, mode)
}

// CastElems fits t into b with exactly n trailing elements. t must have a
// trailing-slice layout.
func CastElems[B buffer.SplitByteSlice[B]](b B, t *Target, n int, mode Mode) (Match[B], error) {
	if n < 0 {
		panic("zc: negative element count")
	}
	return cast(b, t, n, mode)
}

// CastWhole fits t into the whole of b. It serves buffers that cannot be
// split, such as lock guards; Match.Rest is the zero value.
func CastWhole[B buffer.ByteSlice](b B, t *Target) (Match[B], error) {
	return castWhole(b, t, inferred)
}

// CastWholeElems is CastWhole with an explicit element count.
func CastWholeElems[B buffer.ByteSlice](b B, t *Target, n int) (Match[B], error) {
	if n < 0 {
		panic("zc: negative element count")
	}
	return castWhole(b, t, n)
}

func cast[B buffer.SplitByteSlice[B]](b B, t *Target, elems int, mode Mode) (Match[B], error) {
	raw := b.Bytes()
	n := len(raw)

	size, count, ok := required(t.Layout, n, elems, mode)
	if !ok || !fits(size, n, mode) {
		return Match[B]{}, sizeError(b, t, mode, size, elems, ok)
	}

	var start int
	if mode == Suffix {
		start = n - int(size)
	}
	candidate := raw[start : start+int(size)]
	if !common.Aligned(candidate, t.Layout.Align) {
		return Match[B]{}, alignError(b, t, mode, candidate, elems)
	}

	m := Match[B]{Elems: count, src: b}
	switch mode {
	case Suffix:
		m.Rest, m.Region = b.SplitAt(start)
	default:
		m.Region, m.Rest = b.SplitAt(int(size))
	}
	return m, nil
}

func castWhole[B buffer.ByteSlice](b B, t *Target, elems int) (Match[B], error) {
	raw := b.Bytes()
	size, count, ok := required(t.Layout, len(raw), elems, Exact)
	if !ok || !fits(size, len(raw), Exact) {
		return Match[B]{}, sizeError(b, t, Exact, size, elems, ok)
	}
	if !common.Aligned(raw, t.Layout.Align) {
		return Match[B]{}, alignError(b, t, Exact, raw, elems)
	}
	return Match[B]{Region: b, Elems: count, src: b}, nil
}

// required computes the byte size a cast of an n-byte buffer needs, and the
// element count it implies. ok is false when no size can be produced: the
// explicit count overflows, or the buffer cannot even hold the fixed part
// of a trailing-slice layout.
func required(l layout.Layout, n, elems int, mode Mode) (size uintptr, count int, ok bool) {
	if l.IsSized() {
		if elems != inferred {
			panic("zc: element count given for a sized target")
		}
		return l.Size(), 0, true
	}

	if elems != inferred {
		size, ok = layout.Count(elems).SizeFor(l)
		return size, elems, ok
	}

	info := l.SizeInfo
	if info.ElemSize == 0 {
		panic("zc: element count cannot be inferred for zero-sized elements")
	}
	avail := uintptr(n)
	if mode != Exact {
		avail = common.AlignDown(avail, l.Align)
	}
	if avail < info.Offset {
		return 0, 0, false
	}
	count = int((avail - info.Offset) / info.ElemSize)
	size, ok = layout.Count(count).SizeFor(l)
	return size, count, ok
}

func fits(size uintptr, n int, mode Mode) bool {
	if mode == Exact {
		return size == uintptr(n)
	}
	return size <= uintptr(n)
}

func sizeError[B buffer.ByteSlice](b B, t *Target, mode Mode, size uintptr, elems int, ok bool) error {
	if !ok {
		size = 0
	}
	return &Error[B]{
		Kind:   KindSize,
		Src:    b,
		Target: t.Name,
		Layout: t.Layout,
		Mode:   mode,
		Len:    len(b.Bytes()),
		Want:   size,
		NoSize: !ok,
		Elems:  elems,
	}
}

func alignError[B buffer.ByteSlice](b B, t *Target, mode Mode, candidate []byte, elems int) error {
	return &Error[B]{
		Kind:   KindAlignment,
		Src:    b,
		Target: t.Name,
		Layout: t.Layout,
		Mode:   mode,
		Len:    len(b.Bytes()),
		Elems:  elems,
		Addr:   common.Addr(candidate),
	}
}

// ValidateShared checks the matched region's bit validity through shared
// access. On failure the original buffer is returned inside the error. It
// panics if the target is interior-mutable and needs a predicate to run.
func ValidateShared[B buffer.ByteSlice](m Match[B], t *Target) error {
	if t.Plan.CheckShared(validity.SharedRegion(m.Region.Bytes(), m.Elems)) {
		return nil
	}
	return validityError(m, t)
}

// ValidateExclusive checks the matched region's bit validity through
// exclusive access. Any target may be checked this way.
func ValidateExclusive[B buffer.ByteSliceMut](m Match[B], t *Target) error {
	if t.Plan.CheckExclusive(validity.ExclusiveRegion(m.Region.BytesMut(), m.Elems)) {
		return nil
	}
	return validityError(m, t)
}

func validityError[B buffer.ByteSlice](m Match[B], t *Target) error {
	return &Error[B]{
		Kind:   KindValidity,
		Src:    m.src,
		Target: t.Name,
		Layout: t.Layout,
		Len:    len(m.src.Bytes()),
		Want:   uintptr(len(m.Region.Bytes())),
		Elems:  m.Elems,
		Addr:   common.Addr(m.Region.Bytes()),
	}
}
