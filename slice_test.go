package zerocast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawbytedev/zerocast/buffer"
)

// Two-byte header and byte elements: offset 2, element size 1, align 2.
type frame struct {
	Len uint16
}

func TestSliceExactCounts(t *testing.T) {
	raw := alignedBuf(10)

	s, err := SliceFromElems[frame, uint8](buffer.Shared(raw), 8)
	require.NoError(t, err)
	assert.Equal(t, 8, s.Len())

	_, err = SliceFromElems[frame, uint8](buffer.Shared(raw), 9)
	require.ErrorIs(t, err, ErrSize)

	s, err = SliceFrom[frame, uint8](buffer.Shared(raw))
	require.NoError(t, err)
	assert.Equal(t, 8, s.Len())

	// 11 bytes: 9 elements would round up to 12.
	_, err = SliceFrom[frame, uint8](buffer.Shared(alignedBuf(11)))
	require.ErrorIs(t, err, ErrSize)
}

func TestSliceHeaderAndElems(t *testing.T) {
	raw := alignedBuf(8)
	m, err := SliceMutFrom[frame, uint8](buffer.Exclusive(raw))
	require.NoError(t, err)
	require.Equal(t, 6, m.Len())

	m.Header().Len = 6
	copy(m.Elems(), "abcdef")

	s := AsSlice(m)
	assert.Equal(t, frame{Len: 6}, s.Header())
	assert.Equal(t, byte('c'), s.At(2))
	assert.Equal(t, []byte("abcdef"), s.AppendTo(nil))
	assert.Panics(t, func() { s.At(6) })
	assert.Equal(t, raw, m.BytesMut())
}

func TestSlicePrefixSuffix(t *testing.T) {
	raw := alignedBuf(16)

	s, rest, err := SliceFromPrefix[frame, uint16](buffer.Shared(raw[:15]))
	require.NoError(t, err)
	assert.Equal(t, 6, s.Len())
	assert.Len(t, rest, 1)

	s, rest, err = SliceFromPrefixElems[frame, uint16](buffer.Shared(raw), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
	assert.Len(t, rest, 8)

	rest, s, err = SliceFromSuffixElems[frame, uint16](buffer.Shared(raw), 2)
	require.NoError(t, err)
	assert.Len(t, s.Bytes(), 6)
	assert.Len(t, rest, 10)

	rest, s, err = SliceFromSuffix[frame, uint16](buffer.Shared(raw))
	require.NoError(t, err)
	assert.Equal(t, 7, s.Len())
	assert.Empty(t, rest)

	_, _, err = SliceFromPrefixElems[frame, uint16](buffer.Shared(raw), math.MaxInt)
	require.ErrorIs(t, err, ErrSize)
}

func TestSliceMutPrefixSuffix(t *testing.T) {
	raw := alignedBuf(12)

	m, rest, err := SliceMutFromPrefixElems[NoHeader, uint32](buffer.Exclusive(raw), 2)
	require.NoError(t, err)
	m.Elems()[1] = 7
	assert.Len(t, rest, 4)

	rest, tail, err := SliceMutFromSuffixElems[NoHeader, uint32](buffer.Exclusive(raw), 1)
	require.NoError(t, err)
	tail.Elems()[0] = 9
	assert.Len(t, rest, 8)

	all, err := SliceMutFromElems[NoHeader, uint32](buffer.Exclusive(raw), 3)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 7, 9}, all.Elems())

	mp, _, err := SliceMutFromPrefix[NoHeader, uint32](buffer.Exclusive(raw))
	require.NoError(t, err)
	assert.Equal(t, 3, mp.Len())

	_, ms, err := SliceMutFromSuffix[NoHeader, uint32](buffer.Exclusive(raw[2:]))
	require.NoError(t, err)
	assert.Equal(t, 2, ms.Len())
}

func TestSliceOfBools(t *testing.T) {
	_, err := SliceFrom[NoHeader, bool](buffer.Shared{1, 0, 2})
	require.ErrorIs(t, err, ErrValidity)

	s, err := SliceFrom[NoHeader, bool](buffer.Shared{1, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true}, s.AppendTo(nil))

	m, err := SliceMutFrom[NoHeader, bool](buffer.Exclusive{0})
	require.NoError(t, err)
	assert.Panics(t, func() { m.BytesMut() })
}

func TestSliceTargetNames(t *testing.T) {
	assert.Equal(t, "[]uint32", SliceTargetOf[NoHeader, uint32]().Name)
	assert.Equal(t, "zerocast.frame+[]uint8", SliceTargetOf[frame, uint8]().Name)
	assert.Equal(t, "Slice({3}, [1 2])", mustSlice(t, []byte{3, 0, 1, 2}).String())
}

func mustSlice(t *testing.T, b []byte) Slice[buffer.Shared, frame, uint8] {
	raw := alignedBuf(len(b))
	copy(raw, b)
	s, err := SliceFrom[frame, uint8](buffer.Shared(raw))
	require.NoError(t, err)
	return s
}
