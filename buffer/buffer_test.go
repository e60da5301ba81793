package buffer

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitKeepsHalvesApart(t *testing.T) {
	b := Exclusive([]byte{1, 2, 3, 4, 5})
	l, r := b.SplitAt(2)
	require.Equal(t, []byte{1, 2}, l.Bytes())
	require.Equal(t, []byte{3, 4, 5}, r.Bytes())
	assert.Equal(t, 2, cap(l))

	// Appending to the left half must not write into the right one.
	l = append(l, 9)
	assert.Equal(t, []byte{3, 4, 5}, r.Bytes())
	assert.Equal(t, []byte{1, 2, 9}, []byte(l))
}

func TestSplitStableAddress(t *testing.T) {
	s := Shared(make([]byte, 8))
	l, r := s.SplitAt(3)
	assert.Same(t, &s[0], &l.Bytes()[0])
	assert.Same(t, &s[3], &r.Bytes()[0])

	_, empty := s.SplitAt(8)
	assert.Empty(t, empty.Bytes())
	assert.Panics(t, func() { s.SplitAt(9) })
}

func TestLockedGuards(t *testing.T) {
	l := NewLocked(make([]byte, 4))

	w := l.Lock()
	w.BytesMut()[0] = 7
	w.Release()
	assert.Panics(t, w.Release)
	assert.Panics(t, func() { w.Bytes() })

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g := l.RLock()
			defer g.Release()
			assert.Equal(t, byte(7), g.Bytes()[0])
		}()
	}
	wg.Wait()
}

func TestMapFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob.bin")
	require.NoError(t, os.WriteFile(path, []byte{0xde, 0xad, 0xbe, 0xef}, 0o644))

	m, err := Map(path, false)
	require.NoError(t, err)
	assert.Equal(t, 4, m.Len())
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, m.Shared().Bytes())
	_, err = m.Exclusive()
	assert.Error(t, err)
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	empty := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	m, err = Map(empty, false)
	require.NoError(t, err)
	assert.Zero(t, m.Len())
	require.NoError(t, m.Close())

	_, err = Map(filepath.Join(t.TempDir(), "missing"), false)
	assert.Error(t, err)
}

func TestMapWritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rw.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 8), 0o644))

	m, err := Map(path, true)
	require.NoError(t, err)
	ex, err := m.Exclusive()
	require.NoError(t, err)
	ex.BytesMut()[1] = 0x42
	assert.Equal(t, byte(0x42), m.Shared().Bytes()[1])
	require.NoError(t, m.Close())
}
