// Package cmd defines the command-line interface for archeologist.
package cmd

import (
	"github.com/relicworks/archeologist/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("source-dir", contract.DefaultSourceDir, "Name of the native source directory under the project root")
	rootCmd.PersistentFlags().Int("max-depth", contract.DefaultMaxDepth, "Maximum directory recursion depth")
	rootCmd.PersistentFlags().Int("max-files", contract.DefaultMaxFiles, "Maximum number of source files to scan")
	rootCmd.PersistentFlags().Int("commit-window", contract.DefaultCommitWindow, "Number of recent commits considered for churn analysis")
	rootCmd.PersistentFlags().Int("shotgun-threshold", contract.DefaultShotgunThreshold, "Files changed in one commit to flag shotgun surgery")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of backlog rows to display")
	rootCmd.PersistentFlags().String("exclude", "", "Comma-separated list of extra directory names to skip")
	rootCmd.PersistentFlags().String("output", "text", "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("store-backend", "sqlite", "Scan history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
