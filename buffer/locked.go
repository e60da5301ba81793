package buffer

import "sync"

// Locked is a byte region guarded by a read/write lock. Its guards are
// buffers in their own right; they are not splittable, so they can only be
// cast as a whole.
type Locked struct {
	mu  sync.RWMutex
	buf []byte
}

// NewLocked wraps b. The caller must stop using b directly.
func NewLocked(b []byte) *Locked {
	return &Locked{buf: b}
}

// RLock takes the read lock and returns a guard that releases it on
// Release.
func (l *Locked) RLock() *ReadGuard {
	l.mu.RLock()
	return &ReadGuard{l: l}
}

// Lock takes the write lock and returns a guard that releases it on
// Release.
func (l *Locked) Lock() *WriteGuard {
	l.mu.Lock()
	return &WriteGuard{l: l}
}

// ReadGuard grants shared access to a Locked region until released.
type ReadGuard struct {
	l *Locked
}

// Bytes returns the guarded region.
func (g *ReadGuard) Bytes() []byte {
	if g.l == nil {
		panic("buffer: use of released read guard")
	}
	return g.l.buf
}

// Release drops the read lock. Releasing twice panics.
func (g *ReadGuard) Release() {
	if g.l == nil {
		panic("buffer: read guard released twice")
	}
	l := g.l
	g.l = nil
	l.mu.RUnlock()
}

// WriteGuard grants exclusive access to a Locked region until released.
type WriteGuard struct {
	l *Locked
}

// Bytes returns the guarded region.
func (g *WriteGuard) Bytes() []byte {
	if g.l == nil {
		panic("buffer: use of released write guard")
	}
	return g.l.buf
}

// BytesMut returns the guarded region for writing.
func (g *WriteGuard) BytesMut() []byte { return g.Bytes() }

// Release drops the write lock. Releasing twice panics.
func (g *WriteGuard) Release() {
	if g.l == nil {
		panic("buffer: write guard released twice")
	}
	l := g.l
	g.l = nil
	l.mu.Unlock()
}
