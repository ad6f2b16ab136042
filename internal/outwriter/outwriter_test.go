package outwriter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/relicworks/archeologist/internal/contract"
	"github.com/relicworks/archeologist/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportConfig() *contract.Config {
	return &contract.Config{
		ResultLimit: contract.DefaultResultLimit,
		Width:       120,
	}
}

func sampleReport() *schema.ArcheologistAnalysis {
	return &schema.ArcheologistAnalysis{
		ScanTime:          time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		DurationMs:        42,
		ProjectRoot:       "/proj",
		TotalFiles:        3,
		TotalAntiPatterns: 2,
		BySeverity: map[schema.Severity]int{
			schema.SeverityCritical: 1,
			schema.SeverityWarning:  0,
			schema.SeverityInfo:     1,
		},
		ByCategory: map[schema.Category]int{
			schema.CategoryGodClass:      1,
			schema.CategoryDeprecatedAPI: 1,
		},
		AntiPatterns: []schema.AntiPatternHit{
			{ID: 1, Category: schema.CategoryGodClass, Severity: schema.SeverityCritical, File: "Source/Boss.h", Message: "class ABoss has 1400 lines"},
			{ID: 2, Category: schema.CategoryDeprecatedAPI, Severity: schema.SeverityInfo, File: "Source/Boss.h", Line: 9, Message: "GWorld is deprecated"},
		},
		RefactoringBacklog: []schema.RefactoringItem{
			{File: "Source/Boss.h", Score: 20, Churn: 10, AntiPatterns: 2, TopCategory: schema.CategoryGodClass, TopSeverity: schema.SeverityCritical},
		},
	}
}

func TestWriteReportTable(t *testing.T) {
	t.Run("renders summary and backlog rows", func(t *testing.T) {
		var buf bytes.Buffer
		err := writeReportTable(&buf, sampleReport(), reportConfig())
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "Scanned 3 files in 42ms: 2 findings")
		assert.Contains(t, out, "Source/Boss.h")
		assert.Contains(t, out, "god-class")
		assert.Contains(t, out, "Critical")
		assert.Contains(t, out, "Showing top 1 of 1 backlog entries")
	})

	t.Run("empty backlog prints a notice, not a table", func(t *testing.T) {
		report := sampleReport()
		report.RefactoringBacklog = nil

		var buf bytes.Buffer
		err := writeReportTable(&buf, report, reportConfig())
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Refactoring backlog is empty.")
	})

	t.Run("respects the result limit", func(t *testing.T) {
		report := sampleReport()
		report.RefactoringBacklog = nil
		for i := range 30 {
			report.RefactoringBacklog = append(report.RefactoringBacklog, schema.RefactoringItem{
				File:        "Source/F" + string(rune('a'+i%26)) + ".h",
				Score:       30 - i,
				Churn:       1,
				TopCategory: schema.CategoryDeprecatedAPI,
				TopSeverity: schema.SeverityInfo,
			})
		}
		cfg := reportConfig()
		cfg.ResultLimit = 5

		var buf bytes.Buffer
		require.NoError(t, writeReportTable(&buf, report, cfg))
		assert.Contains(t, buf.String(), "Showing top 5 of 30 backlog entries")
	})
}

func TestWriteReportJSON(t *testing.T) {
	var buf bytes.Buffer
	err := writeReportJSON(&buf, sampleReport())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, float64(3), decoded["totalFiles"])
	assert.Equal(t, float64(2), decoded["totalAntiPatterns"])

	hits, ok := decoded["antiPatterns"].([]any)
	require.True(t, ok)
	require.Len(t, hits, 2)
}

func TestWriteReportCSV(t *testing.T) {
	var buf bytes.Buffer
	err := writeReportCSV(&buf, sampleReport())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2) // header + 1 row
	assert.Equal(t, "rank,file,score,anti_patterns,churn,top_category,top_severity", lines[0])
	assert.Equal(t, "1,Source/Boss.h,20,2,10,god-class,critical", lines[1])
}

func TestWriteReportDispatch(t *testing.T) {
	t.Run("parquet without an output file fails", func(t *testing.T) {
		cfg := reportConfig()
		cfg.Output = schema.ParquetOut
		assert.Error(t, WriteReport(sampleReport(), cfg))
	})
}

func TestGetMaxTablePathWidth(t *testing.T) {
	t.Run("override wins over detection", func(t *testing.T) {
		cfg := &contract.Config{Width: 200}
		assert.Equal(t, 70, GetMaxTablePathWidth(cfg), "caps at the maximum path width")
	})

	t.Run("narrow terminals floor at minimum", func(t *testing.T) {
		cfg := &contract.Config{Width: 40}
		assert.Equal(t, 15, GetMaxTablePathWidth(cfg))
	})

	t.Run("mid-range widths scale linearly", func(t *testing.T) {
		cfg := &contract.Config{Width: 120}
		assert.Equal(t, 60, GetMaxTablePathWidth(cfg))
	})
}

func TestHitsParquetPath(t *testing.T) {
	assert.Equal(t, "out-hits.parquet", hitsParquetPath("out.parquet"))
	assert.Equal(t, "scan-hits.parquet", hitsParquetPath("scan"))
}
