package cmd

import (
	"github.com/relicworks/archeologist/core"
	"github.com/relicworks/archeologist/internal/contract"
	"github.com/relicworks/archeologist/internal/outwriter"
	"github.com/relicworks/archeologist/internal/runstore"
	"github.com/relicworks/archeologist/schema"
	"github.com/spf13/cobra"
)

// scanCmd performs the full anti-pattern scan and prints the report.
var scanCmd = &cobra.Command{
	Use:   "scan [project-root]",
	Short: "Scan a project's sources and rank files for refactoring.",
	Long: `Walk the project's native source directory, detect anti-patterns, fuse the
findings with recent Git churn, and print a ranked refactoring backlog.

Detected anti-patterns:
- Reflected types missing their generated-body macro
- Oversized classes with too many lines or methods
- Hard-coded asset paths baked into source
- Object construction without visible ownership
- Calls to deprecated engine APIs
- Circular header includes

Files that both accumulate findings and change often rank highest.

Examples:
  # Scan the current directory
  archeologist scan

  # Scan a specific project with a custom source directory
  archeologist scan ~/Projects/MyGame --source-dir Code

  # Export the full report as JSON
  archeologist scan --output json --output-file report.json

  # Skip scan-history tracking
  archeologist scan --store-backend none`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		client := contract.NewLocalGitClient()
		report, err := core.ScanProject(rootCtx, cfg, client)
		if err != nil {
			contract.LogFatal("Cannot scan project", err)
		}

		if err := outwriter.WriteReport(report, cfg); err != nil {
			contract.LogFatal("Cannot write report", err)
		}

		recordScan(report)
	},
}

// recordScan persists the report unless history tracking is disabled.
// Store failures never fail the scan itself.
func recordScan(report *schema.ArcheologistAnalysis) {
	if cfg.StoreBackend == schema.NoneBackend {
		return
	}
	store, err := runstore.NewStore(cfg.StoreBackend, cfg.StoreConnect)
	if err != nil {
		contract.LogWarn("Cannot open scan history store", err)
		return
	}
	defer func() { _ = store.Close() }()

	if _, err := store.RecordScan(report); err != nil {
		contract.LogWarn("Cannot record scan run", err)
	}
}
