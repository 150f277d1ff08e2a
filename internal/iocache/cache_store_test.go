package iocache

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"podpulse/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheStore_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewCacheStore("test_cache", schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	ts := time.Now().Unix()

	// Set then Get round-trips value, version and timestamp
	err = store.Set("key-a", []byte("payload"), 1, ts)
	require.NoError(t, err)

	value, version, gotTs, err := store.Get("key-a")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), value)
	assert.Equal(t, 1, version)
	assert.Equal(t, ts, gotTs)

	// Set on an existing key replaces the entry
	err = store.Set("key-a", []byte("payload-v2"), 2, ts+10)
	require.NoError(t, err)

	value, version, gotTs, err = store.Get("key-a")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload-v2"), value)
	assert.Equal(t, 2, version)
	assert.Equal(t, ts+10, gotTs)

	// Get on a missing key returns sql.ErrNoRows
	_, _, _, err = store.Get("missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestCacheStore_Delete(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewCacheStore("test_cache", schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Set("key-a", []byte("payload"), 1, time.Now().Unix()))

	require.NoError(t, store.Delete("key-a"))
	_, _, _, err = store.Get("key-a")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	// Deleting an absent key is not an error
	assert.NoError(t, store.Delete("never-existed"))
}

func TestCacheStore_GetStatus(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewCacheStore("test_cache", schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// Empty store
	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, schema.SQLiteBackend, status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, int64(0), status.TotalEntries)

	// With entries
	now := time.Now().Unix()
	require.NoError(t, store.Set("key-a", []byte("a"), 1, now-100))
	require.NoError(t, store.Set("key-b", []byte("b"), 1, now))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(2), status.TotalEntries)
	assert.Equal(t, time.Unix(now, 0), status.LastEntryTime)
	assert.Equal(t, time.Unix(now-100, 0), status.OldestEntryTime)
	assert.Greater(t, status.TableSizeBytes, int64(0))
}

func TestCacheStore_NoneBackend(t *testing.T) {
	store, err := NewCacheStore("test_cache", schema.NoneBackend, "")
	require.NoError(t, err)

	// Get always misses
	_, _, _, err = store.Get("key-a")
	assert.Error(t, err)

	// Set, Delete and Close are no-ops
	assert.NoError(t, store.Set("key-a", []byte("a"), 1, time.Now().Unix()))
	assert.NoError(t, store.Delete("key-a"))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Close())
}

func TestCacheStore_InvalidTableName(t *testing.T) {
	tests := []string{"", "bad-name", "1starts_with_digit", "semi;colon", "spa ce"}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewCacheStore(name, schema.SQLiteBackend, ":memory:")
			assert.Error(t, err)
		})
	}
}

func TestCacheStore_UnsupportedBackend(t *testing.T) {
	_, err := NewCacheStore("test_cache", schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`my_table`", quoteTableName("my_table", schema.MySQLBackend))
	assert.Equal(t, `"my_table"`, quoteTableName("my_table", schema.PostgreSQLBackend))
	assert.Equal(t, `"my_table"`, quoteTableName("my_table", schema.SQLiteBackend))
}
