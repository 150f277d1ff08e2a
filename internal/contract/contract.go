// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"podpulse/schema"
)

// TrackerClient defines the necessary operations against the project-tracking
// backend. This allows the core aggregation logic to be tested without a real
// tracker endpoint.
type TrackerClient interface {
	// ListDeliverables returns every work item for the team that carries the
	// given label, following pagination until the backend reports no more pages.
	ListDeliverables(ctx context.Context, teamID, labelID string) ([]schema.WorkItem, error)

	// ListProjects returns every project under the given initiative.
	ListProjects(ctx context.Context, initiativeID string) ([]schema.Project, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetDeliverableStore() CacheStore
	GetSnapshotStore() SnapshotStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	Delete(key string) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// SnapshotStore defines the interface for tracking KPI snapshot runs and
// storing their per-(pod, cycle) rows.
type SnapshotStore interface {
	// BeginSnapshot creates a new snapshot run and returns its unique ID
	BeginSnapshot(startTime time.Time, configParams map[string]any) (int64, error)

	// EndSnapshot updates the snapshot run with completion data
	EndSnapshot(snapshotID int64, endTime time.Time, totalPods int, currentCycle schema.CycleKey) error

	// RecordCycleRows stores the computed KPI rows for a snapshot run
	RecordCycleRows(snapshotID int64, rows []schema.CycleKpiRow, computedAt time.Time) error

	// GetStatus returns status information about the snapshot store
	GetStatus() (schema.SnapshotStatus, error)

	// GetAllSnapshotRuns retrieves every stored snapshot run, for export
	GetAllSnapshotRuns() ([]schema.SnapshotRunRecord, error)

	// GetAllSnapshotRows retrieves every stored KPI row, for export
	GetAllSnapshotRows() ([]schema.SnapshotRowRecord, error)

	// Close closes the underlying connection
	Close() error
}
