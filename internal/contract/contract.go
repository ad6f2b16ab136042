// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/relicworks/archeologist/schema"
)

// GitClient defines the necessary operations for churn analysis.
// This allows the core analysis logic to be tested without needing a real git executable.
type GitClient interface {
	// --- Availability ---

	// IsRepository reports whether the given path is inside a Git work tree.
	// A false result degrades churn data only; it never blocks static analysis.
	IsRepository(ctx context.Context, repoPath string) bool

	// --- Activity / Churn Logs ---

	// RecentCommitLog returns the raw commit log output for the most recent
	// 'limit' commits restricted to pathspec (empty means the whole tree).
	// The format is one "--<hash>|<subject>|<ISO date>" header line per
	// commit followed by the names of the files it touched.
	RecentCommitLog(ctx context.Context, repoPath string, limit int, pathspec string) ([]byte, error)

	// --- Per-File Queries ---

	// CountFileAuthors returns the number of distinct authors that touched
	// the given file.
	CountFileAuthors(ctx context.Context, repoPath string, path string) (int, error)

	// FileLastModified returns the commit time of the most recent change to
	// the given file.
	FileLastModified(ctx context.Context, repoPath string, path string) (time.Time, error)
}

// ScanStore defines the interface for persisting scan runs and their backlogs.
type ScanStore interface {
	// RecordScan persists a completed report and returns its run ID
	RecordScan(report *schema.ArcheologistAnalysis) (int64, error)

	// Runs retrieves all persisted scan runs in insertion order
	Runs() ([]schema.ScanRunRecord, error)

	// GetStatus returns status information about the store
	GetStatus() (schema.StoreStatus, error)

	// Clear removes all persisted runs and backlog rows
	Clear() error

	// Close closes the underlying connection
	Close() error
}
