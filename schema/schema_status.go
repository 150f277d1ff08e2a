package schema

import "time"

// CacheStatus holds status information about a cache store.
type CacheStatus struct {
	Backend         DatabaseBackend
	Connected       bool
	TotalEntries    int64
	LastEntryTime   time.Time
	OldestEntryTime time.Time
	TableSizeBytes  int64
}

// SnapshotStatus holds status information about the KPI snapshot store.
type SnapshotStatus struct {
	Backend            DatabaseBackend
	Connected          bool
	TotalSnapshots     int64
	LastSnapshotID     int64
	LastSnapshotTime   time.Time
	OldestSnapshotTime time.Time
	TotalRowsRecorded  int64
	TableSizes         map[string]int64
}
