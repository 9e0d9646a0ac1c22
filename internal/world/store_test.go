package world

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "world.sng")
	store, err := NewStore(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreGetChunkSynthesizesEmpty(t *testing.T) {
	store := openStore(t)

	chunk, err := store.GetChunk(Pos{X: 5, Y: 5, Z: 5})
	require.NoError(t, err)
	assert.Equal(t, Pos{X: 5, Y: 5, Z: 5}, chunk.Pos)
}

func TestStoreLoadThenGetReturnsSameChunk(t *testing.T) {
	store := openStore(t)

	loaded, err := store.LoadChunk(Pos{X: 0, Y: 0, Z: 0})
	require.NoError(t, err)
	loaded.Put(0, 0, 0, Block(1))

	got, err := store.GetChunk(Pos{X: 0, Y: 0, Z: 0})
	require.NoError(t, err)
	assert.Equal(t, Block(1), got.Get(0, 0, 0))
}

func TestStoreGetPutBlockProjectsWorldCoordinates(t *testing.T) {
	store := openStore(t)

	require.NoError(t, store.PutBlock(17, 1, 1, Block(9)))
	b, err := store.GetBlock(17, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, Block(9), b)

	chunk, err := store.GetChunk(Pos{X: 1, Y: 0, Z: 0})
	require.NoError(t, err)
	assert.Equal(t, Block(9), chunk.Get(1, 1, 1))
}

func TestStoreSaveThenFindAll(t *testing.T) {
	store := openStore(t)

	chunk, err := store.LoadChunk(Pos{X: 2, Y: 0, Z: 0})
	require.NoError(t, err)
	require.NoError(t, store.Save(chunk))

	assert.ElementsMatch(t, []Pos{{X: 2, Y: 0, Z: 0}}, store.FindAll())
}
