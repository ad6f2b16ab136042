package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/relicworks/archeologist/schema"
)

// Detection thresholds and bounds.
const (
	generatedBodyLookahead = 2000 // Chars scanned after a reflected declaration
	godClassLineLimit      = 1000 // Body lines before a class is flagged critical
	godClassMethodLimit    = 20   // Method-like signatures before a warning
	newObjectContextLines  = 5    // Lines inspected around a NewObject call
)

// detector is a pure function over one file's text. Detectors emit hits
// without IDs; the orchestrator numbers all hits once at assembly time.
// Running the same detector twice on the same input yields identical output.
type detector func(content, relPath string) []schema.AntiPatternHit

// textDetectors is the fixed set of independent pattern rules. Order
// between detectors is not significant; results are concatenated.
var textDetectors = []detector{
	detectMissingGeneratedBody,
	detectGodClass,
	detectHardCodedAssetPath,
	detectUntrackedNewObject,
	detectDeprecatedAPI,
}

// runTextDetectors applies every detector to one file and concatenates
// the results. Header-only detectors gate on extension themselves.
func runTextDetectors(content, relPath string) []schema.AntiPatternHit {
	var hits []schema.AntiPatternHit
	for _, d := range textDetectors {
		hits = append(hits, d(content, relPath)...)
	}
	return hits
}

// All detectors below are bounded regex heuristics over raw text, not AST
// analysis. That is intentional: they need zero build-system dependency and
// trade recall/precision for it. Each rule notes its known blind spots so
// nobody mistakes this for exact analysis.

var (
	// Matches a reflection macro followed by the class/struct it tags.
	// Misses declarations split by preprocessor conditionals between the
	// macro and the keyword, and matches commented-out declarations.
	reflectedDeclRe = regexp.MustCompile(`(?s)\b(UCLASS|USTRUCT|UINTERFACE)\s*\([^)]*\)\s*(?:class|struct)\s+(?:[A-Z0-9_]+_API\s+)?(\w+)`)

	generatedBodyRe = regexp.MustCompile(`GENERATED_(?:BODY|UCLASS_BODY|USTRUCT_BODY|IINTERFACE_BODY)\s*\(`)
)

// detectMissingGeneratedBody flags reflected type declarations with no
// body-generation macro within the lookahead window. Headers only.
func detectMissingGeneratedBody(content, relPath string) []schema.AntiPatternHit {
	if !isHeaderFile(relPath) {
		return nil
	}
	var hits []schema.AntiPatternHit
	for _, m := range reflectedDeclRe.FindAllStringSubmatchIndex(content, -1) {
		macro := content[m[2]:m[3]]
		typeName := content[m[4]:m[5]]
		window := content[m[1]:min(m[1]+generatedBodyLookahead, len(content))]
		if generatedBodyRe.MatchString(window) {
			continue
		}
		hits = append(hits, schema.AntiPatternHit{
			Category:   schema.CategoryMissingGeneratedBody,
			Severity:   schema.SeverityCritical,
			File:       relPath,
			Line:       lineOfIndex(content, m[0]),
			Message:    fmt.Sprintf("%s type '%s' is missing its GENERATED_BODY macro", macro, typeName),
			Suggestion: "Add GENERATED_BODY() as the first statement of the type body so the reflection boilerplate is generated",
		})
	}
	return hits
}

// Matches the opening of a class/struct body. Forward declarations end in
// ';' and are excluded by requiring a '{' before any ';'. Misses bodies
// whose opening brace sits behind a macro.
var classBodyRe = regexp.MustCompile(`(?m)^\s*(?:class|struct)\s+(?:[A-Z0-9_]+_API\s+)?(\w+)[^;{]*\{`)

// Rough method-signature shape: optional virtual/static, a return type
// blob, an identifier, an argument list, and a terminator. Counts some
// multi-line macros as methods; good enough for a size heuristic.
var methodSigRe = regexp.MustCompile(`(?m)^\s*(?:virtual\s+|static\s+)?[\w:<>,&*~\s]+?\b\w+\s*\([^;{}]*\)\s*(?:const\s*)?(?:override\s*)?(?:final\s*)?[;{]`)

// detectGodClass measures each declared class/struct body by depth-counted
// brace matching. More than godClassLineLimit lines is a critical god
// class; more than godClassMethodLimit methods (but within the line limit)
// is a warning. Headers only.
func detectGodClass(content, relPath string) []schema.AntiPatternHit {
	if !isHeaderFile(relPath) {
		return nil
	}
	var hits []schema.AntiPatternHit
	for _, m := range classBodyRe.FindAllStringSubmatchIndex(content, -1) {
		typeName := content[m[2]:m[3]]
		bodyStart := m[1] - 1 // Index of the opening brace
		body, ok := matchBracedBody(content, bodyStart)
		if !ok {
			continue
		}
		line := lineOfIndex(content, m[0])
		bodyLines := strings.Count(body, "\n") + 1
		if bodyLines > godClassLineLimit {
			hits = append(hits, schema.AntiPatternHit{
				Category:   schema.CategoryGodClass,
				Severity:   schema.SeverityCritical,
				File:       relPath,
				Line:       line,
				Message:    fmt.Sprintf("'%s' is a god class: %d lines", typeName, bodyLines),
				Suggestion: "Decompose into focused components; extract subsystems into their own types",
			})
			continue
		}
		if methods := len(methodSigRe.FindAllStringIndex(body, -1)); methods > godClassMethodLimit {
			hits = append(hits, schema.AntiPatternHit{
				Category:   schema.CategoryGodClass,
				Severity:   schema.SeverityWarning,
				File:       relPath,
				Line:       line,
				Message:    fmt.Sprintf("'%s' is approaching god class: %d methods", typeName, methods),
				Suggestion: "Split responsibilities before the type becomes unmanageable",
			})
		}
	}
	return hits
}

// matchBracedBody returns the text between the brace at openIdx and its
// matching close brace, found by depth counting. Braces inside string
// literals or comments are counted too, which can cut a body short.
func matchBracedBody(content string, openIdx int) (string, bool) {
	if openIdx < 0 || openIdx >= len(content) || content[openIdx] != '{' {
		return "", false
	}
	depth := 0
	for i := openIdx; i < len(content); i++ {
		switch content[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return content[openIdx+1 : i], true
			}
		}
	}
	return "", false
}

// Matches quoted in-engine virtual content paths. Misses paths assembled
// at runtime; matches paths inside comments.
var assetPathRe = regexp.MustCompile(`"(/Game/[^"\n]+)"`)

// detectHardCodedAssetPath flags string literals referencing an in-engine
// virtual content path, recommending a lazily-resolvable reference instead.
func detectHardCodedAssetPath(content, relPath string) []schema.AntiPatternHit {
	var hits []schema.AntiPatternHit
	for _, m := range assetPathRe.FindAllStringSubmatchIndex(content, -1) {
		path := content[m[2]:m[3]]
		hits = append(hits, schema.AntiPatternHit{
			Category:   schema.CategoryHardCodedAssetPath,
			Severity:   schema.SeverityWarning,
			File:       relPath,
			Line:       lineOfIndex(content, m[0]),
			Message:    fmt.Sprintf("Hard-coded asset path '%s'", path),
			Suggestion: "Reference the asset through TSoftObjectPtr or FSoftObjectPath so it resolves lazily and survives moves",
		})
	}
	return hits
}

var (
	newObjectRe = regexp.MustCompile(`\bNewObject\s*<`)

	// Ownership-registration signals: a reflected property, an explicit
	// root-set addition, or object flag setup near the allocation.
	ownershipRe = regexp.MustCompile(`UPROPERTY|AddToRoot|SetFlags\s*\(\s*RF_|RF_Standalone|RF_MarkAsRootSet`)
)

// detectUntrackedNewObject flags dynamic-object-creation calls whose
// surrounding lines show no ownership registration, signaling a potential
// garbage-collection lifetime leak. The nearby UPROPERTY may live in the
// header instead, so this rule over-reports on split declarations.
func detectUntrackedNewObject(content, relPath string) []schema.AntiPatternHit {
	lines := strings.Split(content, "\n")
	var hits []schema.AntiPatternHit
	for i, line := range lines {
		if !newObjectRe.MatchString(line) {
			continue
		}
		lo := max(0, i-newObjectContextLines/2)
		hi := min(len(lines), i+newObjectContextLines/2+1)
		context := strings.Join(lines[lo:hi], "\n")
		if ownershipRe.MatchString(context) {
			continue
		}
		hits = append(hits, schema.AntiPatternHit{
			Category:   schema.CategoryUntrackedNewObject,
			Severity:   schema.SeverityWarning,
			File:       relPath,
			Line:       i + 1,
			Message:    "NewObject call with no nearby ownership registration",
			Suggestion: "Store the result in a UPROPERTY field or call AddToRoot so the garbage collector keeps the object alive",
		})
	}
	return hits
}

// deprecatedAPIRule pairs a legacy usage pattern with its replacement.
type deprecatedAPIRule struct {
	re         *regexp.Regexp
	name       string
	suggestion string
}

// deprecatedAPIRules is the fixed table of known-legacy API patterns.
// Purely textual: a project-local symbol that happens to share a name
// with a legacy API will false-positive.
var deprecatedAPIRules = []deprecatedAPIRule{
	{regexp.MustCompile(`\bConstructObject\s*<`), "ConstructObject<T>", "Use NewObject<T> instead"},
	{regexp.MustCompile(`\bTAssetPtr\b`), "TAssetPtr", "Use TSoftObjectPtr instead"},
	{regexp.MustCompile(`\bFStringAssetReference\b`), "FStringAssetReference", "Use FSoftObjectPath instead"},
	{regexp.MustCompile(`\bFPaths::GameDir\s*\(`), "FPaths::GameDir()", "Use FPaths::ProjectDir() instead"},
	{regexp.MustCompile(`\bGWorld\b`), "GWorld", "Use the owning object's GetWorld() instead of the global"},
}

// detectDeprecatedAPI matches the fixed table of known-legacy API usage
// patterns, each with a specific suggested replacement.
func detectDeprecatedAPI(content, relPath string) []schema.AntiPatternHit {
	var hits []schema.AntiPatternHit
	for _, rule := range deprecatedAPIRules {
		for _, m := range rule.re.FindAllStringIndex(content, -1) {
			hits = append(hits, schema.AntiPatternHit{
				Category:   schema.CategoryDeprecatedAPI,
				Severity:   schema.SeverityInfo,
				File:       relPath,
				Line:       lineOfIndex(content, m[0]),
				Message:    fmt.Sprintf("Deprecated API usage: %s", rule.name),
				Suggestion: rule.suggestion,
			})
		}
	}
	return hits
}
