package walk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/gscan/internal/pathmatch"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
}

func TestCollectRecursesAndSortsDeterministically(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"b.txt":          "x",
		"a.txt":          "x",
		"sub/c.txt":      "x",
		"sub/deep/d.txt": "x",
	})

	files, err := Collect(Options{Root: root, Recurse: true})
	require.NoError(t, err)
	require.Len(t, files, 4)

	// Lexicographic order by path.
	for i := 1; i < len(files); i++ {
		assert.Less(t, files[i-1], files[i])
	}
}

func TestCollectNonRecursiveSkipsSubdirectories(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"top.txt":   "x",
		"sub/c.txt": "x",
	})

	files, err := Collect(Options{Root: root, Recurse: false})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Contains(t, files[0], "top.txt")
}

func TestCollectAppliesSearchTargetGlob(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.go":  "x",
		"a.txt": "x",
	})

	files, err := Collect(Options{Root: root, Recurse: true, SearchTarget: "*.go"})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Contains(t, files[0], "a.go")
}

func TestDirsMatchesCollectsRecursiveSubdirectories(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"top.txt":             "x",
		"sub/c.txt":           "x",
		"sub/deep/d.txt":      "x",
		"node_modules/dep.js": "x",
	})

	dirs, err := Dirs(Options{
		Root:        root,
		Recurse:     true,
		ExcludeDirs: pathmatch.ParseExcludeList("node_modules"),
	})
	require.NoError(t, err)
	require.Len(t, dirs, 3) // root, sub, sub/deep — node_modules excluded

	rootAbs, err := filepath.Abs(root)
	require.NoError(t, err)
	assert.Contains(t, dirs, rootAbs)
	assert.Contains(t, dirs, filepath.Join(rootAbs, "sub"))
	assert.Contains(t, dirs, filepath.Join(rootAbs, "sub", "deep"))
}

func TestDirsNonRecursiveReturnsOnlyRoot(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"top.txt":   "x",
		"sub/c.txt": "x",
	})

	dirs, err := Dirs(Options{Root: root, Recurse: false})
	require.NoError(t, err)
	require.Len(t, dirs, 1)
}

func TestCollectAppliesExcludeDirsAndFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"keep.txt":            "x",
		"node_modules/dep.js": "x",
		"skip.tmp":            "x",
	})

	files, err := Collect(Options{
		Root:         root,
		Recurse:      true,
		ExcludeDirs:  pathmatch.ParseExcludeList("node_modules"),
		ExcludeFiles: pathmatch.ParseExcludeList("*.tmp"),
	})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Contains(t, files[0], "keep.txt")
}
