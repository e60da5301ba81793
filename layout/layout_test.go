package layout

import (
	"math"
	"reflect"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtendAdditivity(t *testing.T) {
	base := Sized(0, 1)

	l, off := base.ExtendAt(Of[uint16](), 0)
	require.Equal(t, uintptr(0), off)
	require.Equal(t, uintptr(2), l.Size())
	require.Equal(t, uintptr(2), l.Align)

	l, off = l.ExtendAt(Of[uint8](), 0)
	require.Equal(t, uintptr(2), off)
	require.Equal(t, uintptr(3), l.Size())
	require.Equal(t, uintptr(2), l.Align)

	l = l.PadToAlign()
	require.Equal(t, uintptr(4), l.Size())
	require.Equal(t, uintptr(2), l.Align)
}

func TestExtendPadding(t *testing.T) {
	tests := []struct {
		name      string
		fields    []Layout
		packed    uintptr
		wantSize  uintptr
		wantAlign uintptr
		wantOffs  []uintptr
	}{
		{"u8_u32_u8", []Layout{Sized(1, 1), Sized(4, 4), Sized(1, 1)}, 0, 12, 4, []uintptr{0, 4, 8}},
		{"u8_u64", []Layout{Sized(1, 1), Sized(8, 8)}, 0, 16, 8, []uintptr{0, 8}},
		{"packed1", []Layout{Sized(1, 1), Sized(4, 4), Sized(1, 1)}, 1, 6, 1, []uintptr{0, 1, 5}},
		{"packed2", []Layout{Sized(1, 1), Sized(8, 8)}, 2, 10, 2, []uintptr{0, 2}},
		{"zero_sized", []Layout{Sized(0, 1), Sized(0, 4)}, 0, 0, 4, []uintptr{0, 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := Sized(0, 1)
			var offs []uintptr
			for _, f := range tc.fields {
				var off uintptr
				l, off = l.ExtendAt(f, tc.packed)
				offs = append(offs, off)
			}
			l = l.PadToAlign()
			assert.Equal(t, tc.wantOffs, offs)
			assert.Equal(t, tc.wantSize, l.Size())
			assert.Equal(t, tc.wantAlign, l.Align)
		})
	}
}

func TestExtendTrailingSlice(t *testing.T) {
	l := Of[uint16]().Extend(ForSliceOf[uint8](), 0)
	require.False(t, l.IsSized())
	assert.Equal(t, uintptr(2), l.Align)
	assert.Equal(t, uintptr(2), l.SizeInfo.Offset)
	assert.Equal(t, uintptr(1), l.SizeInfo.ElemSize)

	// The element alignment pushes the run past the header.
	l = Sized(3, 1).Extend(ForSliceOf[uint32](), 0)
	assert.Equal(t, uintptr(4), l.SizeInfo.Offset)
	assert.Equal(t, uintptr(4), l.Align)

	assert.Equal(t, l, l.PadToAlign())
}

func TestExtendDynamicBasePanics(t *testing.T) {
	dst := ForSliceOf[uint8]()
	require.Panics(t, func() { dst.Extend(Of[uint8](), 0) })
}

func TestMinAlign(t *testing.T) {
	l := Sized(0, 1).Extend(Of[uint8](), 0).WithMinAlign(8).PadToAlign()
	assert.Equal(t, uintptr(8), l.Align)
	assert.Equal(t, uintptr(8), l.Size())

	// Never lowers.
	l = Of[uint64]().WithMinAlign(2)
	assert.Equal(t, uintptr(8), l.Align)
}

func TestNonPowerOfTwoPanics(t *testing.T) {
	require.Panics(t, func() { Sized(4, 3) })
	require.Panics(t, func() { Sized(0, 1).Extend(Of[uint8](), 6) })
	require.Panics(t, func() { Of[uint8]().WithMinAlign(0) })
}

func TestSizeForMetadata(t *testing.T) {
	dst := Layout{Align: 2, SizeInfo: SizeInfo{Kind: KindSliceDst, Offset: 2, ElemSize: 1}}

	size, ok := Count(8).SizeFor(dst)
	require.True(t, ok)
	assert.Equal(t, uintptr(10), size)

	size, ok = Count(9).SizeFor(dst)
	require.True(t, ok)
	assert.Equal(t, uintptr(12), size)

	size, ok = Count(0).SizeFor(dst)
	require.True(t, ok)
	assert.Equal(t, uintptr(2), size)

	size, ok = Unit.SizeFor(Of[uint64]())
	require.True(t, ok)
	assert.Equal(t, uintptr(8), size)
}

func TestSizeForOverflow(t *testing.T) {
	dst := ForSliceOf[uint64]()
	_, ok := Count(math.MaxInt).SizeFor(dst)
	assert.False(t, ok)

	// Addition overflow with a large offset.
	big := Layout{Align: 1, SizeInfo: SizeInfo{Kind: KindSliceDst, Offset: math.MaxUint - 1, ElemSize: 1}}
	_, ok = Count(2).SizeFor(big)
	assert.False(t, ok)

	// Rounding overflow.
	round := Layout{Align: 8, SizeInfo: SizeInfo{Kind: KindSliceDst, Offset: math.MaxUint - 2, ElemSize: 1}}
	_, ok = Count(0).SizeFor(round)
	assert.False(t, ok)
}

func TestTryExtendOverflow(t *testing.T) {
	big := Sized(math.MaxUint-3, 1)

	_, _, ok := big.TryExtendAt(Sized(8, 8), 0)
	assert.False(t, ok, "padding the offset overflows")
	_, _, ok = big.TryExtendAt(Sized(4, 1), 0)
	assert.False(t, ok, "adding the field overflows")
	_, _, ok = big.TryExtendAt(Layout{Align: 1, SizeInfo: SizeInfo{Kind: KindSliceDst, Offset: 8, ElemSize: 1}}, 0)
	assert.False(t, ok, "trailing offset overflows")

	l, off, ok := big.TryExtendAt(Sized(3, 1), 0)
	require.True(t, ok)
	assert.Equal(t, uintptr(math.MaxUint-3), off)
	assert.Equal(t, uintptr(math.MaxUint), l.Size())

	_, ok = Sized(math.MaxUint-1, 4).TryPadToAlign()
	assert.False(t, ok)

	require.Panics(t, func() { big.ExtendAt(Sized(4, 1), 0) })
	require.Panics(t, func() { Sized(math.MaxUint-1, 4).PadToAlign() })
}

func TestSizeForContractViolations(t *testing.T) {
	require.Panics(t, func() { Unit.SizeFor(ForSliceOf[uint8]()) })
	require.Panics(t, func() { Count(1).SizeFor(Of[uint8]()) })
	require.Panics(t, func() { Count(-1) })
	require.Panics(t, func() { ForSliceOf[uint8]().Size() })
}

func TestOfTypeMatchesCompiler(t *testing.T) {
	type inner struct {
		A uint32
		B uint64
	}
	type outer struct {
		Inner inner
		Flag  bool
		Tags  [3]uint16
	}
	type trailingZero struct {
		A uint32
		Z struct{}
	}
	type counters struct {
		Hits atomic.Uint32
		Last atomic.Int64
	}

	tests := []struct {
		name string
		typ  reflect.Type
	}{
		{"u8", reflect.TypeFor[uint8]()},
		{"complex128", reflect.TypeFor[complex128]()},
		{"inner", reflect.TypeFor[inner]()},
		{"outer", reflect.TypeFor[outer]()},
		{"array_of_struct", reflect.TypeFor[[4]inner]()},
		{"empty_array", reflect.TypeFor[[0]uint64]()},
		{"trailing_zero", reflect.TypeFor[trailingZero]()},
		{"atomics", reflect.TypeFor[counters]()},
		{"empty", reflect.TypeFor[struct{}]()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := OfType(tc.typ)
			assert.Equal(t, tc.typ.Size(), l.Size())
			assert.Equal(t, uintptr(tc.typ.Align()), l.Align)
		})
	}
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "Layout{align: 2, Sized{size: 4}}", Sized(4, 2).String())
	assert.Equal(t, "Layout{align: 4, SliceDst{offset: 0, elem_size: 4}}", ForSliceOf[uint32]().String())
	assert.Equal(t, "Unit", Unit.String())
	assert.Equal(t, "Count(3)", Count(3).String())
}
