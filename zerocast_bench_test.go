package zerocast

import (
	"testing"

	"github.com/rawbytedev/zerocast/buffer"
)

func BenchmarkFromZeroAllocs(b *testing.B) {
	raw := buffer.Shared(alignedBuf(16))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		r, _ := From[record](raw)
		_ = r.Get()
	}
}

func BenchmarkFromPrefixValidated(b *testing.B) {
	raw := buffer.Shared(alignedBuf(64))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _, _ = FromPrefix[[32]bool](raw)
	}
}

func BenchmarkSliceFrom(b *testing.B) {
	raw := buffer.Shared(alignedBuf(1026))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s, _ := SliceFrom[frame, uint8](raw)
		_ = s.At(s.Len() - 1)
	}
}

func BenchmarkReadFrom(b *testing.B) {
	raw := misalignedBuf(16)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = ReadFrom[record](raw)
	}
}

func BenchmarkWriteTo(b *testing.B) {
	dst := make([]byte, 16)
	v := record{ID: 1, Kind: 2}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = WriteTo(dst, v)
	}
}
