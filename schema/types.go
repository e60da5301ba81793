package schema

import (
	"encoding/binary"
	"math"
)

type class uint8

const (
	classUnsigned class = iota
	classSigned
	classFloat
	classBool
)

// scalar is one of the field types a schema may name.
type scalar struct {
	name  string
	size  uintptr
	class class
}

var scalars = map[string]scalar{
	"u8":   {"u8", 1, classUnsigned},
	"u16":  {"u16", 2, classUnsigned},
	"u32":  {"u32", 4, classUnsigned},
	"u64":  {"u64", 8, classUnsigned},
	"i8":   {"i8", 1, classSigned},
	"i16":  {"i16", 2, classSigned},
	"i32":  {"i32", 4, classSigned},
	"i64":  {"i64", 8, classSigned},
	"f32":  {"f32", 4, classFloat},
	"f64":  {"f64", 8, classFloat},
	"bool": {"bool", 1, classBool},
}

// raw loads the value's bits in host byte order.
func (s scalar) raw(b []byte) uint64 {
	switch s.size {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.NativeEndian.Uint16(b))
	case 4:
		return uint64(binary.NativeEndian.Uint32(b))
	default:
		return binary.NativeEndian.Uint64(b)
	}
}

func (s scalar) decode(b []byte) any {
	v := s.raw(b)
	switch s.class {
	case classBool:
		return v != 0
	case classFloat:
		if s.size == 4 {
			return math.Float32frombits(uint32(v))
		}
		return math.Float64frombits(v)
	case classSigned:
		switch s.size {
		case 1:
			return int64(int8(v))
		case 2:
			return int64(int16(v))
		case 4:
			return int64(int32(v))
		}
		return int64(v)
	default:
		return v
	}
}

// bits returns the host-order bit pattern of an allowed value, or false if
// it does not fit the type.
func (s scalar) bits(v int64) (uint64, bool) {
	switch s.class {
	case classUnsigned:
		if v < 0 || (s.size < 8 && uint64(v) >= 1<<(8*s.size)) {
			return 0, false
		}
		return uint64(v), true
	case classSigned:
		lim := int64(1) << (8*s.size - 1)
		if s.size < 8 && (v < -lim || v >= lim) {
			return 0, false
		}
		mask := uint64(math.MaxUint64)
		if s.size < 8 {
			mask = 1<<(8*s.size) - 1
		}
		return uint64(v) & mask, true
	case classBool:
		return uint64(v), v == 0 || v == 1
	default:
		return 0, false
	}
}
