package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/relicworks/archeologist/internal/contract"
	"github.com/relicworks/archeologist/internal/parquet"
	"github.com/relicworks/archeologist/schema"
)

// writeReportTable generates the human-readable summary and backlog table.
func writeReportTable(w io.Writer, report *schema.ArcheologistAnalysis, cfg *contract.Config) error {
	if _, err := fmt.Fprintf(w, "Scanned %d files in %dms: %d findings (%d critical, %d warning, %d info)\n",
		report.TotalFiles, report.DurationMs, report.TotalAntiPatterns,
		report.BySeverity[schema.SeverityCritical],
		report.BySeverity[schema.SeverityWarning],
		report.BySeverity[schema.SeverityInfo]); err != nil {
		return err
	}
	if len(report.ShotgunSurgeries) > 0 {
		if _, err := fmt.Fprintf(w, "Shotgun-surgery commits in recent history: %d\n", len(report.ShotgunSurgeries)); err != nil {
			return err
		}
	}
	if len(report.RefactoringBacklog) == 0 {
		_, err := fmt.Fprintln(w, "Refactoring backlog is empty.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "File", "Score", "Hits", "Churn", "Top Category", "Label"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	limit := min(cfg.ResultLimit, len(report.RefactoringBacklog))
	var data [][]string
	for i, item := range report.RefactoringBacklog[:limit] {
		label := contract.GetPlainLabel(item.TopSeverity)
		if cfg.UseColors {
			label = contract.GetColorLabel(item.TopSeverity)
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(item.File, GetMaxTablePathWidth(cfg)),
			strconv.Itoa(item.Score),
			strconv.Itoa(item.AntiPatterns),
			strconv.Itoa(item.Churn),
			string(item.TopCategory),
			label,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Showing top %d of %d backlog entries\n", limit, len(report.RefactoringBacklog))
	return err
}

// writeReportJSON writes the full report as indented JSON.
func writeReportJSON(w io.Writer, report *schema.ArcheologistAnalysis) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// writeReportCSV writes the refactoring backlog in CSV format.
func writeReportCSV(w io.Writer, report *schema.ArcheologistAnalysis) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"rank", "file", "score", "anti_patterns", "churn", "top_category", "top_severity"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i, item := range report.RefactoringBacklog {
		row := []string{
			strconv.Itoa(i + 1),
			item.File,
			strconv.Itoa(item.Score),
			strconv.Itoa(item.AntiPatterns),
			strconv.Itoa(item.Churn),
			string(item.TopCategory),
			string(item.TopSeverity),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeReportParquet exports the backlog and hit list as Parquet files.
// Parquet is file-based, so an output path is required.
func writeReportParquet(report *schema.ArcheologistAnalysis, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	if err := parquet.WriteBacklog(report, cfg.OutputFile); err != nil {
		return fmt.Errorf("error writing backlog Parquet: %w", err)
	}
	hitsPath := hitsParquetPath(cfg.OutputFile)
	if err := parquet.WriteHits(report, hitsPath); err != nil {
		return fmt.Errorf("error writing findings Parquet: %w", err)
	}
	fmt.Printf("Wrote Parquet to %s and %s\n", cfg.OutputFile, hitsPath)
	return nil
}

// hitsParquetPath derives the findings file path from the backlog path.
func hitsParquetPath(backlogPath string) string {
	base := strings.TrimSuffix(backlogPath, ".parquet")
	return base + "-hits.parquet"
}
