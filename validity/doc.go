// Package validity decides whether a byte region holds a legal value of a
// type.
//
// A Plan is compiled once per type from its structure: integers and floats
// accept every bit pattern, bool accepts only 0 and 1, arrays require every
// element to be valid and structs every field at its offset. A type may
// replace the structural predicate with its own by implementing
// BitValidator. Types holding pointers, strings, slices, maps, channels,
// functions or interfaces cannot be reinterpreted from bytes at all.
//
// Plans also record whether a type may have interior mutability (it holds
// values from package sync or sync/atomic). A predicate over such a type
// may only run through an Exclusive region: a concurrent writer reaching
// the bytes through a shared alias could make two reads of the "same"
// region disagree.
package validity
