// Package parquet exports scan results to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/relicworks/archeologist/schema"
)

// BacklogRow is the columnar form of one refactoring backlog entry.
type BacklogRow struct {
	// ScanTime is when the scan producing this row started
	ScanTime time.Time `parquet:"scan_time,snappy"`

	// Rank is the 1-based position of the file in the backlog
	Rank int32 `parquet:"rank,snappy"`

	// FilePath is the path relative to the project root
	FilePath string `parquet:"file_path,snappy"`

	// Score is the anti-pattern count multiplied by commit churn
	Score int32 `parquet:"score,snappy"`

	// AntiPatterns is the number of findings in the file
	AntiPatterns int32 `parquet:"anti_patterns,snappy"`

	// Churn is the recent commit count for the file
	Churn int32 `parquet:"churn,snappy"`

	// TopCategory is the category of the most severe finding
	TopCategory string `parquet:"top_category,snappy"`

	// TopSeverity is the highest severity present in the file
	TopSeverity string `parquet:"top_severity,snappy"`
}

// HitRow is the columnar form of one anti-pattern finding.
type HitRow struct {
	// ScanTime is when the scan producing this row started
	ScanTime time.Time `parquet:"scan_time,snappy"`

	// HitID is the finding identifier, unique within one scan
	HitID int32 `parquet:"hit_id,snappy"`

	// Category names the anti-pattern detected
	Category string `parquet:"category,snappy"`

	// Severity is critical, warning or info
	Severity string `parquet:"severity,snappy"`

	// FilePath is the path relative to the project root
	FilePath string `parquet:"file_path,snappy"`

	// Line is the 1-based line number, 0 for file-level findings
	Line int32 `parquet:"line,snappy"`

	// Message describes the finding
	Message string `parquet:"message,snappy"`

	// Suggestion describes the remediation
	Suggestion string `parquet:"suggestion,snappy"`
}

// BacklogRows converts a report's refactoring backlog to Parquet rows.
func BacklogRows(report *schema.ArcheologistAnalysis) []BacklogRow {
	rows := make([]BacklogRow, 0, len(report.RefactoringBacklog))
	for i, item := range report.RefactoringBacklog {
		rows = append(rows, BacklogRow{
			ScanTime:     report.ScanTime,
			Rank:         int32(i + 1),
			FilePath:     item.File,
			Score:        int32(item.Score),
			AntiPatterns: int32(item.AntiPatterns),
			Churn:        int32(item.Churn),
			TopCategory:  string(item.TopCategory),
			TopSeverity:  string(item.TopSeverity),
		})
	}
	return rows
}

// HitRows converts a report's anti-pattern findings to Parquet rows.
func HitRows(report *schema.ArcheologistAnalysis) []HitRow {
	rows := make([]HitRow, 0, len(report.AntiPatterns))
	for _, h := range report.AntiPatterns {
		rows = append(rows, HitRow{
			ScanTime:   report.ScanTime,
			HitID:      int32(h.ID),
			Category:   string(h.Category),
			Severity:   string(h.Severity),
			FilePath:   h.File,
			Line:       int32(h.Line),
			Message:    h.Message,
			Suggestion: h.Suggestion,
		})
	}
	return rows
}

// WriteBacklog writes the refactoring backlog to a Parquet file.
func WriteBacklog(report *schema.ArcheologistAnalysis, outputPath string) error {
	return writeRows(BacklogRows(report), outputPath)
}

// WriteHits writes the anti-pattern findings to a Parquet file.
func WriteHits(report *schema.ArcheologistAnalysis, outputPath string) error {
	return writeRows(HitRows(report), outputPath)
}

// writeRows writes any row slice to a Parquet file using struct schema inference.
func writeRows[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}
