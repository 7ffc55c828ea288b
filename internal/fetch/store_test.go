package fetch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKey(t *testing.T) {
	url := "https://www.example.com/api?datum=2022-01-01"

	// Identical URL, identical key
	assert.Equal(t, CacheKey(url), CacheKey(url))

	// One character difference, different key
	assert.NotEqual(t, CacheKey(url), CacheKey(url+"x"))

	// 128-bit hash as hex
	assert.Len(t, CacheKey(url), 32)
}

func TestDirStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	store := NewDirStore(dir)

	// Absent key
	_, ok := store.Get("deadbeef")
	assert.False(t, ok)

	// Put creates the directory on first use
	require.NoError(t, store.Put("deadbeef", []byte(`{"a":1}`)))
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("expected cache dir to exist: %v", err)
	}

	data, ok := store.Get("deadbeef")
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, string(data))

	// No temp file left behind
	_, err := os.Stat(store.Path("deadbeef") + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestDirStoreOverwrite(t *testing.T) {
	store := NewDirStore(t.TempDir())

	require.NoError(t, store.Put("k", []byte("one")))
	require.NoError(t, store.Put("k", []byte("two")))

	data, ok := store.Get("k")
	require.True(t, ok)
	assert.Equal(t, "two", string(data))
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	_, ok := store.Get("k")
	assert.False(t, ok)

	require.NoError(t, store.Put("k", []byte("v")))
	data, ok := store.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", string(data))

	// Returned slice is a copy
	data[0] = 'x'
	data2, _ := store.Get("k")
	assert.Equal(t, "v", string(data2))
}
