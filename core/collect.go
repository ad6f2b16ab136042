package core

import (
	"os"
	"path/filepath"
)

// collectorBounds carries the safety bounds for one collection run.
type collectorBounds struct {
	maxDepth int
	maxFiles int
	excludes map[string]struct{}
}

// collectSourceFiles recursively enumerates candidate source files under
// root, applying exclusion and depth/size safety bounds. Unreadable
// directories are skipped silently; a single permission error must never
// abort collection.
func collectSourceFiles(root string, maxDepth, maxFiles int, extraExcludes []string) []string {
	excludes := make(map[string]struct{}, len(excludedDirNames)+len(extraExcludes))
	for name := range excludedDirNames {
		excludes[name] = struct{}{}
	}
	for _, name := range extraExcludes {
		excludes[name] = struct{}{}
	}

	bounds := &collectorBounds{maxDepth: maxDepth, maxFiles: maxFiles, excludes: excludes}
	var files []string
	collectDir(root, 0, bounds, &files)
	return files
}

// collectDir walks a single directory level. Depth is bounded to guard
// against symlink cycles or pathological trees, and the result size is
// capped to bound worst-case memory on huge trees.
func collectDir(dir string, depth int, bounds *collectorBounds, files *[]string) {
	if depth > bounds.maxDepth || len(*files) >= bounds.maxFiles {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return // Unreadable branch; skip silently
	}

	for _, entry := range entries {
		if len(*files) >= bounds.maxFiles {
			return
		}
		name := entry.Name()
		full := filepath.Join(dir, name)
		if entry.IsDir() {
			if _, skip := bounds.excludes[name]; skip {
				continue
			}
			collectDir(full, depth+1, bounds, files)
			continue
		}
		if isSourceFile(name) {
			*files = append(*files, full)
		}
	}
}
