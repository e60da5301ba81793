package zerocast

import (
	"github.com/rawbytedev/zerocast/buffer"
	"github.com/rawbytedev/zerocast/zc"
)

const inferElems = -1

// From views the whole of b as a T. b must be exactly T's size and
// aligned for T. Buffers that cannot be split, such as lock guards, are
// accepted.
func From[T any, B buffer.ByteSlice](b B) (Ref[B, T], error) {
	t := TargetOf[T]()
	m, err := zc.CastWhole(b, t)
	if err == nil {
		err = zc.ValidateShared(m, t)
	}
	if err != nil {
		return Ref[B, T]{}, err
	}
	return Ref[B, T]{buf: m.Region}, nil
}

// FromPrefix views the first bytes of b as a T and returns the rest.
func FromPrefix[T any, B buffer.SplitByteSlice[B]](b B) (Ref[B, T], B, error) {
	m, err := castShared(b, TargetOf[T](), inferElems, zc.Prefix)
	if err != nil {
		var zero B
		return Ref[B, T]{}, zero, err
	}
	return Ref[B, T]{buf: m.Region}, m.Rest, nil
}

// FromSuffix views the last bytes of b as a T and returns what precedes
// them.
func FromSuffix[T any, B buffer.SplitByteSlice[B]](b B) (B, Ref[B, T], error) {
	m, err := castShared(b, TargetOf[T](), inferElems, zc.Suffix)
	if err != nil {
		var zero B
		return zero, Ref[B, T]{}, err
	}
	return m.Rest, Ref[B, T]{buf: m.Region}, nil
}

// MutFrom views the whole of b as a writable T.
func MutFrom[T any, B buffer.ByteSliceMut](b B) (Mut[B, T], error) {
	t := TargetOf[T]()
	m, err := zc.CastWhole(b, t)
	if err == nil {
		err = zc.ValidateExclusive(m, t)
	}
	if err != nil {
		return Mut[B, T]{}, err
	}
	return Mut[B, T]{buf: m.Region}, nil
}

// MutFromPrefix views the first bytes of b as a writable T.
func MutFromPrefix[T any, B buffer.SplitByteSliceMut[B]](b B) (Mut[B, T], B, error) {
	m, err := castExclusive(b, TargetOf[T](), inferElems, zc.Prefix)
	if err != nil {
		var zero B
		return Mut[B, T]{}, zero, err
	}
	return Mut[B, T]{buf: m.Region}, m.Rest, nil
}

// MutFromSuffix views the last bytes of b as a writable T.
func MutFromSuffix[T any, B buffer.SplitByteSliceMut[B]](b B) (B, Mut[B, T], error) {
	m, err := castExclusive(b, TargetOf[T](), inferElems, zc.Suffix)
	if err != nil {
		var zero B
		return zero, Mut[B, T]{}, err
	}
	return m.Rest, Mut[B, T]{buf: m.Region}, nil
}

// SliceFrom views the whole of b as an H header followed by as many E as
// fill it.
func SliceFrom[H, E any, B buffer.SplitByteSlice[B]](b B) (Slice[B, H, E], error) {
	return sliceExact[H, E](b, inferElems)
}

// SliceFromElems is SliceFrom with exactly n elements.
func SliceFromElems[H, E any, B buffer.SplitByteSlice[B]](b B, n int) (Slice[B, H, E], error) {
	return sliceExact[H, E](b, checkCount(n))
}

// SliceFromPrefix views the start of b as an H header followed by as many
// E as fit, and returns the rest.
func SliceFromPrefix[H, E any, B buffer.SplitByteSlice[B]](b B) (Slice[B, H, E], B, error) {
	return slicePrefix[H, E](b, inferElems)
}

// SliceFromPrefixElems is SliceFromPrefix with exactly n elements.
func SliceFromPrefixElems[H, E any, B buffer.SplitByteSlice[B]](b B, n int) (Slice[B, H, E], B, error) {
	return slicePrefix[H, E](b, checkCount(n))
}

// SliceFromSuffix views the end of b as an H header followed by as many E
// as fit, and returns what precedes it.
func SliceFromSuffix[H, E any, B buffer.SplitByteSlice[B]](b B) (B, Slice[B, H, E], error) {
	return sliceSuffix[H, E](b, inferElems)
}

// SliceFromSuffixElems is SliceFromSuffix with exactly n elements.
func SliceFromSuffixElems[H, E any, B buffer.SplitByteSlice[B]](b B, n int) (B, Slice[B, H, E], error) {
	return sliceSuffix[H, E](b, checkCount(n))
}

// SliceMutFrom is the writable counterpart of SliceFrom.
func SliceMutFrom[H, E any, B buffer.SplitByteSliceMut[B]](b B) (SliceMut[B, H, E], error) {
	return sliceMutExact[H, E](b, inferElems)
}

// SliceMutFromElems is the writable counterpart of SliceFromElems.
func SliceMutFromElems[H, E any, B buffer.SplitByteSliceMut[B]](b B, n int) (SliceMut[B, H, E], error) {
	return sliceMutExact[H, E](b, checkCount(n))
}

// SliceMutFromPrefix is the writable counterpart of SliceFromPrefix.
func SliceMutFromPrefix[H, E any, B buffer.SplitByteSliceMut[B]](b B) (SliceMut[B, H, E], B, error) {
	return sliceMutPrefix[H, E](b, inferElems)
}

// SliceMutFromPrefixElems is the writable counterpart of
// SliceFromPrefixElems.
func SliceMutFromPrefixElems[H, E any, B buffer.SplitByteSliceMut[B]](b B, n int) (SliceMut[B, H, E], B, error) {
	return sliceMutPrefix[H, E](b, checkCount(n))
}

// SliceMutFromSuffix is the writable counterpart of SliceFromSuffix.
func SliceMutFromSuffix[H, E any, B buffer.SplitByteSliceMut[B]](b B) (B, SliceMut[B, H, E], error) {
	return sliceMutSuffix[H, E](b, inferElems)
}

// SliceMutFromSuffixElems is the writable counterpart of
// SliceFromSuffixElems.
func SliceMutFromSuffixElems[H, E any, B buffer.SplitByteSliceMut[B]](b B, n int) (B, SliceMut[B, H, E], error) {
	return sliceMutSuffix[H, E](b, checkCount(n))
}

func checkCount(n int) int {
	if n < 0 {
		panic("zerocast: negative element count")
	}
	return n
}

func sliceExact[H, E any, B buffer.SplitByteSlice[B]](b B, n int) (Slice[B, H, E], error) {
	m, err := castShared(b, SliceTargetOf[H, E](), n, zc.Exact)
	if err != nil {
		return Slice[B, H, E]{}, err
	}
	return Slice[B, H, E]{buf: m.Region, n: m.Elems}, nil
}

func slicePrefix[H, E any, B buffer.SplitByteSlice[B]](b B, n int) (Slice[B, H, E], B, error) {
	m, err := castShared(b, SliceTargetOf[H, E](), n, zc.Prefix)
	if err != nil {
		var zero B
		return Slice[B, H, E]{}, zero, err
	}
	return Slice[B, H, E]{buf: m.Region, n: m.Elems}, m.Rest, nil
}

func sliceSuffix[H, E any, B buffer.SplitByteSlice[B]](b B, n int) (B, Slice[B, H, E], error) {
	m, err := castShared(b, SliceTargetOf[H, E](), n, zc.Suffix)
	if err != nil {
		var zero B
		return zero, Slice[B, H, E]{}, err
	}
	return m.Rest, Slice[B, H, E]{buf: m.Region, n: m.Elems}, nil
}

func sliceMutExact[H, E any, B buffer.SplitByteSliceMut[B]](b B, n int) (SliceMut[B, H, E], error) {
	m, err := castExclusive(b, SliceTargetOf[H, E](), n, zc.Exact)
	if err != nil {
		return SliceMut[B, H, E]{}, err
	}
	return SliceMut[B, H, E]{buf: m.Region, n: m.Elems}, nil
}

func sliceMutPrefix[H, E any, B buffer.SplitByteSliceMut[B]](b B, n int) (SliceMut[B, H, E], B, error) {
	m, err := castExclusive(b, SliceTargetOf[H, E](), n, zc.Prefix)
	if err != nil {
		var zero B
		return SliceMut[B, H, E]{}, zero, err
	}
	return SliceMut[B, H, E]{buf: m.Region, n: m.Elems}, m.Rest, nil
}

func sliceMutSuffix[H, E any, B buffer.SplitByteSliceMut[B]](b B, n int) (B, SliceMut[B, H, E], error) {
	m, err := castExclusive(b, SliceTargetOf[H, E](), n, zc.Suffix)
	if err != nil {
		var zero B
		return zero, SliceMut[B, H, E]{}, err
	}
	return m.Rest, SliceMut[B, H, E]{buf: m.Region, n: m.Elems}, nil
}

func castShared[B buffer.SplitByteSlice[B]](b B, t *zc.Target, n int, mode zc.Mode) (zc.Match[B], error) {
	var (
		m   zc.Match[B]
		err error
	)
	if n == inferElems {
		m, err = zc.Cast(b, t, mode)
	} else {
		m, err = zc.CastElems(b, t, n, mode)
	}
	if err != nil {
		return m, err
	}
	return m, zc.ValidateShared(m, t)
}

func castExclusive[B buffer.SplitByteSliceMut[B]](b B, t *zc.Target, n int, mode zc.Mode) (zc.Match[B], error) {
	var (
		m   zc.Match[B]
		err error
	)
	if n == inferElems {
		m, err = zc.Cast(b, t, mode)
	} else {
		m, err = zc.CastElems(b, t, n, mode)
	}
	if err != nil {
		return m, err
	}
	return m, zc.ValidateExclusive(m, t)
}
