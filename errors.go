package zerocast

import "github.com/rawbytedev/zerocast/zc"

// Sentinels matched by every error a cast returns.
var (
	ErrSize      = zc.ErrSize
	ErrAlignment = zc.ErrAlignment
	ErrValidity  = zc.ErrValidity
)

// Source recovers the buffer a failed cast was given. B must be the buffer
// type passed to the constructor; copy operations use []byte.
func Source[B any](err error) (B, bool) {
	return zc.Source[B](err)
}
