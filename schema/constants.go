package schema

// Custom string types for type safety.
type (
	// Severity represents how serious an anti-pattern hit is.
	Severity string

	// Category identifies which detector produced a hit.
	Category string

	// OutputMode represents the format of the output.
	OutputMode string

	// StoreBackend represents the database backend for scan history.
	StoreBackend string
)

// All severities supported, from most to least serious.
const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// All hit categories supported.
const (
	CategoryMissingGeneratedBody Category = "missing-generated-body"
	CategoryCircularInclude      Category = "circular-include"
	CategoryHardCodedAssetPath   Category = "hard-coded-asset-path"
	CategoryUntrackedNewObject   Category = "untracked-newobject"
	CategoryDeprecatedAPI        Category = "deprecated-api"
	CategoryGodClass             Category = "god-class"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All scan-history backends supported.
const (
	SQLiteBackend     StoreBackend = "sqlite" // default
	MySQLBackend      StoreBackend = "mysql"
	PostgreSQLBackend StoreBackend = "postgresql"
	NoneBackend       StoreBackend = "none"
)

// AllCategories lists every category in a stable order for tallies.
var AllCategories = []Category{
	CategoryMissingGeneratedBody,
	CategoryCircularInclude,
	CategoryHardCodedAssetPath,
	CategoryUntrackedNewObject,
	CategoryDeprecatedAPI,
	CategoryGodClass,
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidStoreBackends lists all valid scan-history backends.
var ValidStoreBackends = map[StoreBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// severityRank orders severities for comparisons; higher is more serious.
var severityRank = map[Severity]int{
	SeverityCritical: 3,
	SeverityWarning:  2,
	SeverityInfo:     1,
}

// SeverityRank returns the comparison rank of a severity.
// Unknown severities rank below info.
func SeverityRank(s Severity) int {
	return severityRank[s]
}

// MoreSevere reports whether a is strictly more severe than b.
func MoreSevere(a, b Severity) bool {
	return severityRank[a] > severityRank[b]
}
