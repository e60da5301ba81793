package dbflat

import "encoding/binary"

const (
	MagicV1   = 0x44424633 // "DBF3"
	VersionV1 = 1

	// compFlags & 0x000F == compressor ID; only CompRaw is produced here.
	CompressionMask = 0x000F
	CompRaw         = 0x0000
	ArrayMask       = 0x8000 // MSB signals a length-prefixed payload
	HeaderSize      = 40
	SlotSize        = 8
)

const (
	FlagPadding       Flags = 0x0001 // payloads start on 8-byte boundaries
	FlagNoSchemaID    Flags = 0x0002 // SchemaID is unused
	FlagModeHotVtable Flags = 0x0004 // vtable lists hot fields only
	FlagModeNoVtable  Flags = 0x0008
	FlagModeTagWalk   Flags = 0x0010

	knownFlags = FlagPadding | FlagNoSchemaID | FlagModeHotVtable | FlagModeNoVtable | FlagModeTagWalk
)

// Flags are the header flag bits. Unknown bits make a header invalid.
type Flags uint16

func (Flags) IsBitValid(b []byte) bool {
	return Flags(binary.NativeEndian.Uint16(b))&^knownFlags == 0
}

// Magic identifies a dbflat record. Any other value makes a header
// invalid.
type Magic uint32

func (Magic) IsBitValid(b []byte) bool {
	return binary.NativeEndian.Uint32(b) == MagicV1
}

// Header is the fixed 40-byte record header, stored in host byte order so
// it can be viewed in place.
type Header struct {
	Magic       Magic   // 4B
	Version     uint16  // 2B
	Flags       Flags   // 2B
	SchemaID    uint64  // 8B
	HotBitmap   byte    // 1B: presence map for tags 1-8
	VTableSlots byte    // number of slots in the vtable
	DataOffset  uint16  // offset to start of data section (from header start) 2B
	VTableOff   uint32  // offset to start of vtable (from header start) 4B
	_           [16]byte // reserved for upgrade
}

// VTableSlot is 8B and locates one field's payload.
type VTableSlot struct {
	Tag       uint16 // 2B
	CompFlags uint16 // 2B
	Offset    uint32 // 4B, from the start of the data section
}

// FieldValue is a field handed to AppendRecord.
type FieldValue struct {
	Tag       uint16
	CompFlags uint16
	Payload   []byte
}
