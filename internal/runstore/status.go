package runstore

import (
	"fmt"

	"github.com/relicworks/archeologist/schema"
)

// PrintStoreStatus prints scan-history store status information.
func PrintStoreStatus(status schema.StoreStatus) {
	fmt.Printf("Store Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		fmt.Printf("Last Run ID: %d\n", status.LastRunID)
		fmt.Printf("Last Run: %s\n", status.LastRunTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("Oldest Run: %s\n", status.OldestRunTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("Total Files Scanned: %d\n", status.TotalFilesSeen)
	}
	fmt.Println("Table Sizes:")
	for table, size := range status.TableSizes {
		fmt.Printf("  %s: %d rows\n", table, size)
	}
}

// PrintScanRuns prints one line per persisted scan run.
func PrintScanRuns(runs []schema.ScanRunRecord) {
	if len(runs) == 0 {
		fmt.Println("No scan runs recorded.")
		return
	}
	for _, run := range runs {
		fmt.Printf("Run %d: %s  %s  %d files, %d findings, %dms\n",
			run.RunID, run.ScanTime.Format("2006-01-02 15:04:05"), run.ProjectRoot,
			run.TotalFiles, run.TotalAntiPatterns, run.DurationMs)
	}
}
