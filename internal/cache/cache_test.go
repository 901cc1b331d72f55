// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestPutGet(t *testing.T) {
	c := openTestCache(t)

	require.NoError(t, c.Put(APIKeyEntry, "key-1"))
	got, err := c.Get(APIKeyEntry)
	require.NoError(t, err)
	assert.Equal(t, "key-1", got)
}

func TestGetAbsentKey(t *testing.T) {
	c := openTestCache(t)

	got, err := c.Get("never-set")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPutOverwrites(t *testing.T) {
	c := openTestCache(t)

	require.NoError(t, c.Put(APIKeyEntry, "old"))
	require.NoError(t, c.Put(APIKeyEntry, "new"))
	got, err := c.Get(APIKeyEntry)
	require.NoError(t, err)
	assert.Equal(t, "new", got)
}

func TestDelete(t *testing.T) {
	c := openTestCache(t)

	require.NoError(t, c.Put(APIKeyEntry, "key-1"))
	require.NoError(t, c.Delete(APIKeyEntry))
	got, err := c.Get(APIKeyEntry)
	require.NoError(t, err)
	assert.Empty(t, got)

	// dropping an absent key is fine
	require.NoError(t, c.Delete(APIKeyEntry))
}

func TestReopenPersists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")

	c, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, c.Put(APIKeyEntry, "durable"))
	require.NoError(t, c.Close())

	c, err = Open(dir)
	require.NoError(t, err)
	defer c.Close()
	got, err := c.Get(APIKeyEntry)
	require.NoError(t, err)
	assert.Equal(t, "durable", got)
}
