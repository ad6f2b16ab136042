package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile creates a file with parent directories.
func writeFile(t *testing.T, root string, rel string, content string) string {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	return full
}

// TestCollectSourceFiles tests recursive enumeration with bounds.
func TestCollectSourceFiles(t *testing.T) {
	t.Run("filters by extension", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "Foo.h", "")
		writeFile(t, root, "Foo.cpp", "")
		writeFile(t, root, "Foo.uasset", "")
		writeFile(t, root, "readme.md", "")

		files := collectSourceFiles(root, 8, 2000, nil)
		assert.Len(t, files, 2)
	})

	t.Run("recurses into subdirectories", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "Sub/Deep/Bar.hpp", "")
		files := collectSourceFiles(root, 8, 2000, nil)
		assert.Len(t, files, 1)
	})

	t.Run("skips excluded directory names at any depth", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "Intermediate/Gen.h", "")
		writeFile(t, root, "Sub/Binaries/Gen.h", "")
		writeFile(t, root, "Sub/.git/hook.cpp", "")
		writeFile(t, root, "Sub/Keep.h", "")

		files := collectSourceFiles(root, 8, 2000, nil)
		require.Len(t, files, 1)
		assert.Contains(t, files[0], "Keep.h")
	})

	t.Run("honors extra excludes", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "Plugins/X.h", "")
		writeFile(t, root, "Y.h", "")
		files := collectSourceFiles(root, 8, 2000, []string{"Plugins"})
		assert.Len(t, files, 1)
	})

	t.Run("bounds recursion depth", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "a/b/c/Deep.h", "")
		writeFile(t, root, "Shallow.h", "")

		files := collectSourceFiles(root, 2, 2000, nil)
		require.Len(t, files, 1)
		assert.Contains(t, files[0], "Shallow.h")
	})

	t.Run("caps the result size", func(t *testing.T) {
		root := t.TempDir()
		for i := range 10 {
			writeFile(t, root, filepath.Join("m", string(rune('a'+i))+".h"), "")
		}
		files := collectSourceFiles(root, 8, 4, nil)
		assert.Len(t, files, 4)
	})

	t.Run("missing root yields empty list", func(t *testing.T) {
		files := collectSourceFiles(filepath.Join(t.TempDir(), "nope"), 8, 2000, nil)
		assert.Empty(t, files)
	})
}
