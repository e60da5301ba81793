// Package zerocast reinterprets byte buffers as typed Go values without
// copying.
//
// A cast succeeds only when the buffer has the size the type needs, starts
// on the type's alignment, and holds a bit pattern the type accepts (a bool
// must be 0 or 1, a type implementing validity.BitValidator must accept
// it). The result is a typed view over the caller's buffer:
//
//	ref, rest, err := zerocast.FromPrefix[Header](buffer.Shared(pkt))
//	if err != nil {
//		return err
//	}
//	h := ref.Get()
//
// Types must be pointer-free: scalars, arrays and structs of them. Layout
// and validity information is derived from the type on first use and
// cached. Using a type that holds pointers, strings, slices, maps or
// interfaces panics.
//
// Views come in two flavors. Ref and Slice are read-only and validate
// through shared access, which refuses to run a validity check over types
// from sync or sync/atomic. Mut and SliceMut need an exclusive buffer and
// allow writes.
package zerocast
