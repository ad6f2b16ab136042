// Package core implements the archeologist analysis pipeline: file
// collection, anti-pattern detection, include-graph cycle analysis, churn
// analysis and backlog synthesis. The pipeline is stateless; every scan
// builds a fresh report and shares nothing with concurrent scans.
package core

import (
	"path/filepath"
	"strings"
)

// sourceFile is a collected source file loaded once per scan; never mutated.
type sourceFile struct {
	absPath string // Absolute path on disk
	relPath string // Project-root-relative, forward-slash normalized
	content string
}

// sourceExtensions is the allowed set of header and implementation extensions.
var sourceExtensions = map[string]struct{}{
	".h":   {},
	".hpp": {},
	".inl": {},
	".c":   {},
	".cc":  {},
	".cpp": {},
}

// headerExtensions marks the subset of extensions treated as headers for
// the header-only detectors and the include graph.
var headerExtensions = map[string]struct{}{
	".h":   {},
	".hpp": {},
	".inl": {},
}

// excludedDirNames are build-artifact, VCS and tooling directories skipped
// at any depth during collection.
var excludedDirNames = map[string]struct{}{
	"Intermediate":     {},
	"Binaries":         {},
	"Saved":            {},
	"DerivedDataCache": {},
	"ThirdParty":       {},
	"Build":            {},
	".git":             {},
	".svn":             {},
	".vs":              {},
	".idea":            {},
	"node_modules":     {},
}

// isSourceFile reports whether the path carries an allowed extension.
func isSourceFile(path string) bool {
	_, ok := sourceExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// isHeaderFile reports whether the path carries a header extension.
func isHeaderFile(path string) bool {
	_, ok := headerExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// lineOfIndex returns the 1-based line number of a byte offset in content.
func lineOfIndex(content string, idx int) int {
	if idx > len(content) {
		idx = len(content)
	}
	return strings.Count(content[:idx], "\n") + 1
}
