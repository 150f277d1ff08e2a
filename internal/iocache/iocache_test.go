package iocache

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"podpulse/schema"

	"github.com/stretchr/testify/assert"
)

func TestInitStores(t *testing.T) {
	t.Run("single setup", func(t *testing.T) {
		dir := t.TempDir()
		cachePath := filepath.Join(dir, "cache.db")
		snapshotPath := filepath.Join(dir, "snapshots.db")
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		err := InitStores(schema.SQLiteBackend, cachePath, schema.SQLiteBackend, snapshotPath)
		assert.NoError(t, err, "Failed to initialize stores")

		assert.NotNil(t, Manager, "Manager should not be nil")
		assert.NotNil(t, Manager.GetDeliverableStore(), "Deliverable store should not be nil")
		assert.NotNil(t, Manager.GetSnapshotStore(), "Snapshot store should not be nil")

		CloseStores()

		// Verify database files were created
		_, err = os.Stat(cachePath)
		assert.False(t, os.IsNotExist(err), "Cache database file should be created")
		_, err = os.Stat(snapshotPath)
		assert.False(t, os.IsNotExist(err), "Snapshot database file should be created")
	})

	t.Run("idempotent setup", func(t *testing.T) {
		dir := t.TempDir()
		cachePath := filepath.Join(dir, "cache.db")
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		// Multiple initializations should be safe (sync.Once)
		err1 := InitStores(schema.SQLiteBackend, cachePath, "", "")
		err2 := InitStores(schema.SQLiteBackend, cachePath, "", "")
		err3 := InitStores(schema.SQLiteBackend, cachePath, "", "")

		assert.NoError(t, err1, "First init should not fail")
		assert.NoError(t, err2, "Second init should not fail")
		assert.NoError(t, err3, "Third init should not fail")

		// Multiple closes should be safe (sync.Once)
		CloseStores()
		CloseStores()
		CloseStores()
	})

	t.Run("none backend", func(t *testing.T) {
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		err := InitStores(schema.NoneBackend, "", schema.NoneBackend, "")
		assert.NoError(t, err, "Failed to initialize stores with none backend")

		assert.NotNil(t, Manager.GetDeliverableStore(), "Deliverable store should not be nil")
		assert.NotNil(t, Manager.GetSnapshotStore(), "Snapshot store should not be nil")

		CloseStores()
	})

	t.Run("disabled stores", func(t *testing.T) {
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		// Empty backends skip initialization entirely
		err := InitStores("", "", "", "")
		assert.NoError(t, err)
		assert.Nil(t, Manager.GetDeliverableStore())
		assert.Nil(t, Manager.GetSnapshotStore())

		CloseStores()
	})
}

func TestClearCacheSQLite(t *testing.T) {
	dir := t.TempDir()
	cachePath := filepath.Join(dir, "cache.db")

	store, err := NewCacheStore(deliverableTable, schema.SQLiteBackend, cachePath)
	assert.NoError(t, err)
	assert.NoError(t, store.Close())

	assert.NoError(t, ClearCache(schema.SQLiteBackend, cachePath, ""))
	_, err = os.Stat(cachePath)
	assert.True(t, os.IsNotExist(err), "Database file should be removed")

	// Clearing again is a no-op
	assert.NoError(t, ClearCache(schema.SQLiteBackend, cachePath, ""))

	// Empty file path is rejected
	assert.Error(t, ClearCache(schema.SQLiteBackend, "", ""))

	// None backend is a no-op
	assert.NoError(t, ClearCache(schema.NoneBackend, "", ""))
}

func TestClearSnapshotsSQLite(t *testing.T) {
	dir := t.TempDir()
	snapshotPath := filepath.Join(dir, "snapshots.db")

	store, err := NewSnapshotStore(schema.SQLiteBackend, snapshotPath)
	assert.NoError(t, err)
	assert.NoError(t, store.Close())

	assert.NoError(t, ClearSnapshots(schema.SQLiteBackend, snapshotPath, ""))
	_, err = os.Stat(snapshotPath)
	assert.True(t, os.IsNotExist(err), "Database file should be removed")

	assert.Error(t, ClearSnapshots(schema.SQLiteBackend, "", ""))
	assert.NoError(t, ClearSnapshots(schema.NoneBackend, "", ""))
}
