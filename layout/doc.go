// Package layout models the in-memory shape of types that can be
// reinterpreted from raw bytes.
//
// A Layout is an alignment plus a SizeInfo. Fixed-size types carry a
// Sized size; types that end in a variable-length run of identical
// elements carry a SliceDst offset (where the run begins) and the size of
// one element. The total size of such a type is only known once an element
// count is supplied through Metadata.
//
// # Layout Rules
//
// Composite layouts are built field by field with Extend:
//   - the field alignment is capped by the packing limit, if any
//   - padding is inserted so the field starts on its (capped) alignment
//   - the composite alignment is the largest field alignment seen
//   - a SliceDst field turns the composite into a SliceDst
//
// PadToAlign rounds a finished Sized layout up to its alignment, and
// WithMinAlign raises the alignment to an explicit floor.
//
// # Usage
//
//	l := layout.Sized(0, 1).
//		Extend(layout.Of[uint16](), 0).
//		Extend(layout.Of[uint8](), 0).
//		PadToAlign()
//	// l.Align == 2, l.Size() == 4
//
// OfType derives the same information for a Go type by folding Extend over
// its fields and cross-checks the result against the compiler.
package layout
