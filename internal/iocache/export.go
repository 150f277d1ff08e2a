package iocache

import (
	"errors"
	"fmt"

	"podpulse/internal/parquet"
)

// ExecuteSnapshotExport performs the actual export of snapshot data to Parquet files.
func ExecuteSnapshotExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the snapshot store
	store := Manager.GetSnapshotStore()
	if store == nil {
		return errors.New("snapshot store is not configured")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get snapshot status: %w", err)
	}

	if status.TotalSnapshots == 0 {
		return errors.New("no snapshot data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total snapshot runs: %d\n", status.TotalSnapshots)
	fmt.Printf("Total KPI rows: %d\n", status.TotalRowsRecorded)

	// Retrieve all snapshot runs
	snapshotRuns, err := store.GetAllSnapshotRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve snapshot runs: %w", err)
	}

	// Retrieve all stored KPI rows
	kpiRows, err := store.GetAllSnapshotRows()
	if err != nil {
		return fmt.Errorf("failed to retrieve snapshot rows: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertSnapshotRunRecords(snapshotRuns)
	parquetRows := parquet.ConvertSnapshotRowRecords(kpiRows)

	// Write snapshot runs to Parquet
	runsFile := outputFile + ".snapshot_runs.parquet"
	if err := parquet.WriteSnapshotRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write snapshot runs: %w", err)
	}
	fmt.Printf("Exported %d snapshot runs to: %s\n", len(parquetRuns), runsFile)

	// Write KPI rows to Parquet
	rowsFile := outputFile + ".cycle_rows.parquet"
	if err := parquet.WriteSnapshotRowsParquet(parquetRows, rowsFile); err != nil {
		return fmt.Errorf("failed to write cycle rows: %w", err)
	}
	fmt.Printf("Exported %d KPI rows to: %s\n", len(parquetRows), rowsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
