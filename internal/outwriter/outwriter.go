// Package outwriter renders a scan report as a table, CSV, JSON or Parquet.
package outwriter

import (
	"fmt"
	"io"
	"os"

	"github.com/relicworks/archeologist/internal/contract"
	"github.com/relicworks/archeologist/schema"
)

// WriteReport outputs the analysis report, dispatching on the output
// format configured.
func WriteReport(report *schema.ArcheologistAnalysis, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportCSV(w, report)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeReportParquet(report, cfg)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportTable(w, report, cfg)
		}, "Wrote table")
	}
}

// writeWithFile runs the writer against stdout or the configured file,
// printing a confirmation when a file was written.
func writeWithFile(filePath string, write func(io.Writer) error, confirmation string) error {
	if filePath == "" {
		return write(os.Stdout)
	}
	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("could not create output file %q: %w", filePath, err)
	}
	defer func() { _ = f.Close() }()

	if err := write(f); err != nil {
		return err
	}
	fmt.Printf("%s to %s\n", confirmation, filePath)
	return nil
}
