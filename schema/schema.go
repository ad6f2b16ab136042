// Package schema has configs, models and report shapes for all parts of archeologist.
package schema

import "time"

// AntiPatternHit represents one flagged occurrence of a known problematic
// code pattern in a single source file. Identity is structural (category,
// file, line and message); ID exists only so UIs can key rows and is unique
// within one report, not across reports.
type AntiPatternHit struct {
	ID         int      `json:"id"`                   // Report-local identifier, assigned at assembly time
	Category   Category `json:"category"`             // Which detector produced the hit
	Severity   Severity `json:"severity"`             // Critical, warning or info
	File       string   `json:"file"`                 // Repo-relative path, forward-slash normalized
	Line       int      `json:"line,omitempty"`       // 1-based line number, 0 when not line-addressable
	Message    string   `json:"message"`              // Human-readable description of the occurrence
	Suggestion string   `json:"suggestion,omitempty"` // Recommended remediation
}

// FileChurn represents the modification frequency of a single file within
// the bounded recent history window.
type FileChurn struct {
	File         string    `json:"file"`         // Repo-relative path as reported by version control
	Commits      int       `json:"commits"`      // Commits touching the file in the window
	Authors      int       `json:"authors"`      // Distinct authors who touched the file
	LastModified time.Time `json:"lastModified"` // Commit time of the most recent change
}

// ShotgunSurgery represents a historical commit whose file-change count
// exceeded the configured threshold, signaling poor modularity.
type ShotgunSurgery struct {
	Commit       string    `json:"commit"`       // Abbreviated or full commit hash
	Message      string    `json:"message"`      // First line of the commit message
	FilesChanged int       `json:"filesChanged"` // Number of files touched by the commit
	Date         time.Time `json:"date"`         // Commit time
}

// RefactoringItem is one entry of the ranked refactoring backlog.
// Invariant: Score == AntiPatterns * max(Churn, 1).
type RefactoringItem struct {
	File         string   `json:"file"`         // Repo-relative path
	Score        int      `json:"score"`        // AntiPatterns x churn value
	Churn        int      `json:"churn"`        // Commit count, 1 when the file has no churn record
	AntiPatterns int      `json:"antiPatterns"` // Number of hits attributed to the file
	TopCategory  Category `json:"topCategory"`  // Category of the highest-severity hit (first seen wins ties)
	TopSeverity  Severity `json:"topSeverity"`  // Highest severity seen for the file
}

// ArcheologistAnalysis is the complete, immutable scan report. Every entity
// inside it is created fresh within a single invocation; nothing persists
// in memory between invocations.
type ArcheologistAnalysis struct {
	ScanTime           time.Time        `json:"scanTime"`
	DurationMs         int64            `json:"durationMs"`
	ProjectRoot        string           `json:"projectRoot"`
	TotalFiles         int              `json:"totalFiles"`
	TotalAntiPatterns  int              `json:"totalAntiPatterns"`
	BySeverity         map[Severity]int `json:"bySeverity"`
	ByCategory         map[Category]int `json:"byCategory"`
	AntiPatterns       []AntiPatternHit `json:"antiPatterns"`
	Churn              []FileChurn      `json:"churn"`
	ShotgunSurgeries   []ShotgunSurgery `json:"shotgunSurgeries"`
	RefactoringBacklog []RefactoringItem `json:"refactoringBacklog"`
}

// IncludeGraph maps a header basename to the ordered list of basenames it
// directly includes via quoted include directives. Keying by basename only
// is a deliberate precision/simplicity trade-off: duplicate-named headers
// in different directories are merged into one node, which can produce
// spurious or missed cycles.
type IncludeGraph map[string][]string
