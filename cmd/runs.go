package cmd

import (
	"fmt"
	"strings"

	"github.com/relicworks/archeologist/internal/contract"
	"github.com/relicworks/archeologist/internal/runstore"
	"github.com/relicworks/archeologist/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeSetup loads the minimal configuration needed for scan-history commands.
// These commands work without a project root, so full shared setup is skipped.
func storeSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.StoreBackend(strings.ToLower(viper.GetString("store-backend")))
	if _, ok := schema.ValidStoreBackends[backend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	connStr := viper.GetString("store-db-connect")
	if err := contract.ValidateStoreConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.StoreBackend = backend
	cfg.StoreConnect = connStr
	return nil
}

// openStore opens the configured scan-history store.
func openStore() (contract.ScanStore, error) {
	return runstore.NewStore(cfg.StoreBackend, cfg.StoreConnect)
}

// runsCmd groups scan-history operations.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect and manage the scan history store.",
	Long:  `View, clear, and migrate the database that records past scan runs and their refactoring backlogs.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// runsListCmd prints all recorded scan runs.
var runsListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List all recorded scan runs.",
	PreRunE: storeSetup,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := openStore()
		if err != nil {
			contract.LogFatal("Cannot open scan history store", err)
		}
		defer func() { _ = store.Close() }()

		runs, err := store.Runs()
		if err != nil {
			contract.LogFatal("Cannot list scan runs", err)
		}
		runstore.PrintScanRuns(runs)
	},
}

// runsStatusCmd prints store status information.
var runsStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show scan history store status.",
	PreRunE: storeSetup,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := openStore()
		if err != nil {
			contract.LogFatal("Cannot open scan history store", err)
		}
		defer func() { _ = store.Close() }()

		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Cannot get store status", err)
		}
		runstore.PrintStoreStatus(status)
	},
}

// runsClearCmd removes all recorded scan runs.
var runsClearCmd = &cobra.Command{
	Use:     "clear",
	Short:   "Delete all recorded scan runs.",
	PreRunE: storeSetup,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := openStore()
		if err != nil {
			contract.LogFatal("Cannot open scan history store", err)
		}
		defer func() { _ = store.Close() }()

		if err := store.Clear(); err != nil {
			contract.LogFatal("Cannot clear scan history", err)
		}
		fmt.Println("Scan history cleared.")
	},
}

// runsMigrateCmd runs schema migrations on the store.
var runsMigrateCmd = &cobra.Command{
	Use:     "migrate",
	Short:   "Run scan history store migrations.",
	Long:    `Apply or roll back schema migrations for the scan history database. Use --target-version to pin a version; -1 migrates to latest and 0 rolls everything back.`,
	PreRunE: storeSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := runstore.MigrateStore(cfg.StoreBackend, cfg.StoreConnect, targetVersion); err != nil {
			contract.LogFatal("Cannot migrate scan history store", err)
		}
	},
}
