package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/relicworks/archeologist/schema"
)

// Default values for configuration. The safety bounds exist to keep a scan
// of a pathological tree (symlink cycles, enormous vendored checkouts)
// predictable in time and memory.
const (
	DefaultSourceDir        = "Source"
	DefaultMaxDepth         = 8    // Max directory recursion depth
	DefaultMaxFiles         = 2000 // Collection safety cap
	DefaultReadBatchSize    = 20   // Concurrent file reads per batch
	DefaultCommitWindow     = 200  // Recent commits considered for churn
	DefaultChurnTopN        = 50   // Most-modified files kept for per-file queries
	DefaultShotgunThreshold = 10   // Files changed in one commit to flag shotgun surgery
	DefaultBacklogLimit     = 50   // Refactoring backlog cap
	DefaultResultLimit      = 25   // Rows displayed in table output
	MaxResultLimit          = 1000
)

// Config holds the runtime configuration for a scan.
// This struct remains the "final, validated" config.
type Config struct {
	ProjectRoot      string // Absolute path to the project root
	SourceDir        string // Name of the native source directory under the root
	MaxDepth         int
	MaxFiles         int
	ReadBatchSize    int
	CommitWindow     int
	ChurnTopN        int
	ShotgunThreshold int
	BacklogLimit     int
	ResultLimit      int
	Excludes         []string // Extra directory names to skip during collection

	Output     schema.OutputMode
	OutputFile string
	Width      int  // Terminal width override (0 = auto-detect)
	UseColors  bool // Enable colored labels in table output

	StoreBackend schema.StoreBackend
	StoreConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	ProjectRootStr string

	SourceDir        string `mapstructure:"source-dir"`
	MaxDepth         int    `mapstructure:"max-depth"`
	MaxFiles         int    `mapstructure:"max-files"`
	CommitWindow     int    `mapstructure:"commit-window"`
	ShotgunThreshold int    `mapstructure:"shotgun-threshold"`
	Limit            int    `mapstructure:"limit"`
	Exclude          string `mapstructure:"exclude"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	StoreBackend     string `mapstructure:"store-backend"`
	StoreConnect     string `mapstructure:"store-db-connect"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Excludes != nil {
		clone.Excludes = make([]string, len(c.Excludes))
		copy(clone.Excludes, c.Excludes)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := resolveProjectRoot(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 1. Bounds and Limits ---
	if input.MaxDepth <= 0 {
		return fmt.Errorf("max-depth must be greater than 0 (received %d)", input.MaxDepth)
	}
	cfg.MaxDepth = input.MaxDepth

	if input.MaxFiles <= 0 {
		return fmt.Errorf("max-files must be greater than 0 (received %d)", input.MaxFiles)
	}
	cfg.MaxFiles = input.MaxFiles

	if input.CommitWindow <= 0 {
		return fmt.Errorf("commit-window must be greater than 0 (received %d)", input.CommitWindow)
	}
	cfg.CommitWindow = input.CommitWindow

	if input.ShotgunThreshold <= 1 {
		return fmt.Errorf("shotgun-threshold must be greater than 1 (received %d)", input.ShotgunThreshold)
	}
	cfg.ShotgunThreshold = input.ShotgunThreshold

	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	cfg.ReadBatchSize = DefaultReadBatchSize
	cfg.ChurnTopN = DefaultChurnTopN
	cfg.BacklogLimit = DefaultBacklogLimit

	// --- 2. Source Directory ---
	cfg.SourceDir = strings.TrimSpace(input.SourceDir)
	if cfg.SourceDir == "" {
		cfg.SourceDir = DefaultSourceDir
	}

	// --- 3. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 4. Store Backend Validation ---
	cfg.StoreBackend = schema.StoreBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidStoreBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreConnect = input.StoreConnect
	if err := ValidateStoreConnectionString(cfg.StoreBackend, cfg.StoreConnect); err != nil {
		return err
	}

	// --- 5. Excludes Processing ---
	cfg.Excludes = nil
	if input.Exclude != "" {
		for p := range strings.SplitSeq(input.Exclude, ",") {
			trimmedP := strings.TrimSpace(p)
			if trimmedP != "" {
				cfg.Excludes = append(cfg.Excludes, trimmedP)
			}
		}
	}

	return nil
}

// ValidateStoreConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateStoreConnectionString(backend schema.StoreBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") && !strings.HasPrefix(connStr, "postgres://") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' or use the postgres:// scheme")
		}
	}
	return nil
}

// resolveProjectRoot resolves the project root to an absolute path.
// Existence is checked by the orchestrator so that the fatal-error contract
// lives in one place.
func resolveProjectRoot(cfg *Config, input *ConfigRawInput) error {
	searchPath := input.ProjectRootStr
	if searchPath == "" {
		searchPath = "."
	}
	absPath, err := filepath.Abs(searchPath)
	if err != nil {
		return err
	}
	cfg.ProjectRoot = filepath.Clean(absPath)
	return nil
}

// ParseBoolString parses human-friendly boolean strings (yes/no/true/false/1/0).
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "yes", "true", "1", "on":
		return true, nil
	case "no", "false", "0", "off":
		return false, nil
	default:
		return false, fmt.Errorf("expected yes/no/true/false/1/0, got %q", s)
	}
}

// DefaultStoreDBFilePath returns the default SQLite file path for the scan
// history store.
func DefaultStoreDBFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".archeologist-scans.db"
	}
	return filepath.Join(home, ".archeologist", "scans.db")
}
