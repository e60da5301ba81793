package dbflat

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/rawbytedev/zerocast"
	"github.com/rawbytedev/zerocast/buffer"
)

// buildHotBitmap for tags 1-8
func buildHotBitmap(tags []uint16) byte {
	var bm byte
	for _, t := range tags {
		if t >= 1 && t <= 8 {
			bm |= 1 << (t - 1)
		}
	}
	return bm
}

// AppendRecord appends a record holding fields to dst. Fields are sorted
// by tag; payloads with ArrayMask set get a uvarint length prefix.
func AppendRecord(dst []byte, schemaID uint64, hotTags []uint16, fields []FieldValue) ([]byte, error) {
	if len(fields) > 0xff {
		return nil, fmt.Errorf("dbflat: %d fields exceed the vtable limit", len(fields))
	}
	for _, h := range hotTags {
		if h == 0 || h > 8 {
			return nil, fmt.Errorf("dbflat: invalid hot field tag: %d", h)
		}
	}
	sorted := slices.Clone(fields)
	slices.SortStableFunc(sorted, func(a, b FieldValue) int { return int(a.Tag) - int(b.Tag) })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Tag == sorted[i-1].Tag {
			return nil, fmt.Errorf("dbflat: duplicate tag %d", sorted[i].Tag)
		}
	}

	vtSize := len(sorted) * SlotSize
	dataOff := HeaderSize + vtSize
	if dataOff > 0xffff {
		return nil, fmt.Errorf("dbflat: vtable too large")
	}
	start := len(dst)
	dst = append(dst, make([]byte, dataOff)...)

	slots := make([]VTableSlot, len(sorted))
	for i, f := range sorted {
		if f.CompFlags&CompressionMask != CompRaw {
			return nil, fmt.Errorf("dbflat: tag %d: compressed payloads are not supported", f.Tag)
		}
		slots[i] = VTableSlot{Tag: f.Tag, CompFlags: f.CompFlags, Offset: uint32(len(dst) - start - dataOff)}
		if f.CompFlags&ArrayMask != 0 {
			dst = binary.AppendUvarint(dst, uint64(len(f.Payload)))
		}
		dst = append(dst, f.Payload...)
	}

	rec := dst[start:]
	err := zerocast.WriteToPrefix(rec, Header{
		Magic:       MagicV1,
		Version:     VersionV1,
		SchemaID:    schemaID,
		HotBitmap:   buildHotBitmap(hotTags),
		VTableSlots: byte(len(sorted)),
		DataOffset:  uint16(dataOff),
		VTableOff:   HeaderSize,
	})
	if err != nil {
		return nil, err
	}
	for i, s := range slots {
		off := HeaderSize + i*SlotSize
		if err := zerocast.WriteTo(rec[off:off+SlotSize], s); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// StampSchema rewrites the schema ID of the record at the start of buf in
// place.
func StampSchema(buf []byte, schemaID uint64) error {
	h, _, err := zerocast.MutFromPrefix[Header](buffer.Exclusive(buf))
	if err != nil {
		return err
	}
	hdr := h.Get()
	hdr.SchemaID = schemaID
	hdr.Flags &^= FlagNoSchemaID
	return nil
}
