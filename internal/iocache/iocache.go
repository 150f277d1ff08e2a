// Package iocache is for durable storage of tracker fetches and KPI snapshots.
package iocache

import (
	"sync"

	"podpulse/internal/contract"
)

// CacheStoreManager manages multiple store instances.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	deliverable  contract.CacheStore
	snapshot     contract.SnapshotStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetDeliverableStore returns the deliverable CacheStore.
func (mgr *CacheStoreManager) GetDeliverableStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.deliverable
}

// GetSnapshotStore returns the SnapshotStore.
func (mgr *CacheStoreManager) GetSnapshotStore() contract.SnapshotStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.snapshot
}
