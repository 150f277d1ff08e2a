// Package parquet provides data structures and functions for exporting KPI
// snapshot data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"podpulse/schema"

	"github.com/parquet-go/parquet-go"
)

// SnapshotRun represents a single KPI snapshot run with metadata.
// This struct maps to the podpulse_snapshot_runs database table.
// Times are RFC 3339 strings, matching how the store persists them.
type SnapshotRun struct {
	// SnapshotID is the unique identifier for this snapshot run
	SnapshotID int64 `parquet:"snapshot_id,snappy"`

	// StartTime is when the snapshot began
	StartTime string `parquet:"start_time,snappy"`

	// EndTime is when the snapshot completed (nullable)
	EndTime *string `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the snapshot run in milliseconds (nullable)
	RunDurationMs *int64 `parquet:"run_duration_ms,optional,snappy"`

	// TotalPods is the number of pods covered by this snapshot
	TotalPods int32 `parquet:"total_pods,snappy"`

	// CurrentCycle is the headline cycle at snapshot time (nullable)
	CurrentCycle *string `parquet:"current_cycle,optional,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// CycleKpiRecord represents one (pod, cycle) KPI row from a snapshot.
// This struct maps to the podpulse_cycle_rows database table.
type CycleKpiRecord struct {
	// SnapshotID references the parent snapshot run
	SnapshotID int64 `parquet:"snapshot_id,snappy"`

	// Pod is the pod name
	Pod string `parquet:"pod,snappy"`

	// Cycle is the cycle key (C1..C6)
	Cycle string `parquet:"cycle,snappy"`

	// Committed is the number of committed deliverables
	Committed int32 `parquet:"committed,snappy"`

	// Completed is the number of completed deliverables
	Completed int32 `parquet:"completed,snappy"`

	// DeliveryPct is the rendered delivery percentage, e.g. "75%"
	DeliveryPct string `parquet:"delivery_pct,snappy"`

	// Spillover is the number of committed items that missed a closed cycle
	Spillover int32 `parquet:"spillover,snappy"`

	// RowStatus records whether the row is real data or a fetch failure marker
	RowStatus string `parquet:"row_status,snappy"`

	// ComputedAt is when this row was computed
	ComputedAt string `parquet:"computed_at,snappy"`
}

// WriteSnapshotRunsParquet writes a slice of SnapshotRun structs to a Parquet file.
func WriteSnapshotRunsParquet(data []SnapshotRun, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the SnapshotRun struct tags
	writer := parquet.NewGenericWriter[SnapshotRun](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteSnapshotRowsParquet writes a slice of CycleKpiRecord structs to a Parquet file.
func WriteSnapshotRowsParquet(data []CycleKpiRecord, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the CycleKpiRecord struct tags
	writer := parquet.NewGenericWriter[CycleKpiRecord](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// MockFetchSnapshotRuns generates sample SnapshotRun data for demonstration.
func MockFetchSnapshotRuns() []SnapshotRun {
	now := time.Now().UTC()
	startTime1 := now.Add(-2 * time.Hour).Format(time.RFC3339Nano)
	endTime1 := now.Add(-2*time.Hour + 3*time.Second).Format(time.RFC3339Nano)
	durationMs1 := int64(3000)
	currentCycle1 := "C2"
	configParams1 := `{"quarter":"Q1-26","policy_cycle":"C2","pods":4}`

	startTime2 := now.Add(-10 * time.Minute).Format(time.RFC3339Nano)
	// Note: run 2 leaves the completion fields nil to demonstrate nullable fields

	return []SnapshotRun{
		{
			SnapshotID:    1,
			StartTime:     startTime1,
			EndTime:       &endTime1,
			RunDurationMs: &durationMs1,
			TotalPods:     4,
			CurrentCycle:  &currentCycle1,
			ConfigParams:  &configParams1,
		},
		{
			SnapshotID:    2,
			StartTime:     startTime2,
			EndTime:       nil, // Still running - nullable field
			RunDurationMs: nil, // Not yet calculated - nullable field
			TotalPods:     0,
			CurrentCycle:  nil,
			ConfigParams:  nil, // No config stored - nullable field
		},
	}
}

// MockFetchCycleKpiRecords generates sample CycleKpiRecord data for demonstration.
func MockFetchCycleKpiRecords() []CycleKpiRecord {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	return []CycleKpiRecord{
		{
			SnapshotID:  1,
			Pod:         "atlas",
			Cycle:       "C1",
			Committed:   8,
			Completed:   6,
			DeliveryPct: "75%",
			Spillover:   2,
			RowStatus:   "OK",
			ComputedAt:  now,
		},
		{
			SnapshotID:  1,
			Pod:         "atlas",
			Cycle:       "C2",
			Committed:   5,
			Completed:   2,
			DeliveryPct: "40%",
			Spillover:   0,
			RowStatus:   "OK",
			ComputedAt:  now,
		},
		{
			SnapshotID:  1,
			Pod:         "nimbus",
			Cycle:       "C1",
			Committed:   0,
			Completed:   0,
			DeliveryPct: "0%",
			Spillover:   0,
			RowStatus:   "FETCH_FAILED",
			ComputedAt:  now,
		},
	}
}

// ConvertSnapshotRunRecords converts schema.SnapshotRunRecord to SnapshotRun for Parquet export.
func ConvertSnapshotRunRecords(records []schema.SnapshotRunRecord) []SnapshotRun {
	result := make([]SnapshotRun, len(records))
	for i, record := range records {
		result[i] = SnapshotRun{
			SnapshotID:    record.SnapshotID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalPods:     int32(record.TotalPods),
			CurrentCycle:  record.CurrentCycle,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertSnapshotRowRecords converts schema.SnapshotRowRecord to CycleKpiRecord for Parquet export.
func ConvertSnapshotRowRecords(records []schema.SnapshotRowRecord) []CycleKpiRecord {
	result := make([]CycleKpiRecord, len(records))
	for i, record := range records {
		result[i] = CycleKpiRecord{
			SnapshotID:  record.SnapshotID,
			Pod:         record.Pod,
			Cycle:       record.Cycle,
			Committed:   int32(record.Committed),
			Completed:   int32(record.Completed),
			DeliveryPct: record.DeliveryPct,
			Spillover:   int32(record.Spillover),
			RowStatus:   record.RowStatus,
			ComputedAt:  record.ComputedAt,
		}
	}
	return result
}
