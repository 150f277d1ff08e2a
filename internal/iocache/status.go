package iocache

import (
	"fmt"

	"podpulse/schema"
)

// PrintCacheStatus prints cache status information.
func PrintCacheStatus(status schema.CacheStatus) {
	fmt.Printf("Cache Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Entries: %d\n", status.TotalEntries)
	if status.TotalEntries > 0 {
		fmt.Printf("Last Entry: %s\n", status.LastEntryTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("Oldest Entry: %s\n", status.OldestEntryTime.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("Table Size: %d bytes\n", status.TableSizeBytes)
}

// PrintSnapshotStatus prints snapshot status information.
func PrintSnapshotStatus(status schema.SnapshotStatus) {
	fmt.Printf("Snapshot Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Snapshots: %d\n", status.TotalSnapshots)
	if status.TotalSnapshots > 0 {
		fmt.Printf("Last Snapshot ID: %d\n", status.LastSnapshotID)
		fmt.Printf("Last Snapshot: %s\n", status.LastSnapshotTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("Oldest Snapshot: %s\n", status.OldestSnapshotTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("Total Rows Recorded: %d\n", status.TotalRowsRecorded)
	}
	fmt.Println("Table Sizes:")
	for table, size := range status.TableSizes {
		fmt.Printf("  %s: %d rows\n", table, size)
	}
}
