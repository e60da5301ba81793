package dbflat

import "fmt"

// Lookup returns the vtable index of tag. Slots are sorted by tag.
func (r *Record) Lookup(tag uint16) (int, bool) {
	lo, hi := 0, r.view.Len()
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if r.view.At(mid).Tag < tag {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < r.view.Len() && r.view.At(lo).Tag == tag {
		return lo, true
	}
	return 0, false
}

// IsHot reports whether tag is marked in the hot bitmap.
func (r *Record) IsHot(tag uint16) bool {
	if tag == 0 || tag > 8 {
		return false
	}
	return (r.Header().HotBitmap>>(tag-1))&1 != 0
}

// HotField returns the payload of a hot tag.
func (r *Record) HotField(tag uint16) ([]byte, error) {
	if !r.IsHot(tag) {
		return nil, fmt.Errorf("%w: %d", ErrNotHot, tag)
	}
	return r.Field(tag)
}
