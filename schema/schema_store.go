package schema

// SnapshotRunRecord represents a snapshot run record retrieved from the store.
// Nullable columns use pointers since a run may still be in progress.
type SnapshotRunRecord struct {
	SnapshotID    int64
	StartTime     string
	EndTime       *string
	RunDurationMs *int64
	TotalPods     int
	CurrentCycle  *string
	ConfigParams  *string
}

// SnapshotRowRecord represents one stored (pod, cycle) KPI row.
type SnapshotRowRecord struct {
	SnapshotID  int64
	Pod         string
	Cycle       string
	Committed   int
	Completed   int
	DeliveryPct string
	Spillover   int
	RowStatus   string
	ComputedAt  string
}
