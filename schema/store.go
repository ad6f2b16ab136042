package schema

import "time"

// StoreStatus summarizes the state of the scan-history store.
type StoreStatus struct {
	Backend        string
	Connected      bool
	TotalRuns      int64
	LastRunID      int64
	LastRunTime    time.Time
	OldestRunTime  time.Time
	TotalFilesSeen int64
	TableSizes     map[string]int64
}

// ScanRunRecord is one persisted scan run.
type ScanRunRecord struct {
	RunID             int64
	ScanTime          time.Time
	DurationMs        int64
	ProjectRoot       string
	TotalFiles        int
	TotalAntiPatterns int
}
