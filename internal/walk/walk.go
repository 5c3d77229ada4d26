// Package walk provides the file-iterator collaborator referenced by
// §6.1: a finite, ordered sequence of absolute file paths. Directory
// traversal, glob inclusion, recursive descent, and the exclude-list
// filters are this collaborator's responsibility — the core pipeline
// (C1-C8) only ever consumes the resulting []string.
//
// This is intentionally the thin, out-of-core glue §1 calls out; the
// implementation here is a reasonable default so gscan is runnable
// standalone, not a subject of the specification itself.
package walk

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/standardbeagle/gscan/internal/pathmatch"
)

// Options controls directory enumeration.
type Options struct {
	Root         string
	Recurse      bool
	SearchTarget string // doublestar include glob, matched against the file's base name
	ExcludeDirs  pathmatch.ExcludeList
	ExcludeFiles pathmatch.ExcludeList
}

// Collect walks Root and returns an ordered, deduplicated list of
// absolute file paths matching opts. The order is deterministic
// (lexicographic by relative path) so that a reproducible input list
// produces a reproducible output order further down the pipeline
// (§8 "Determinism").
func Collect(opts Options) ([]string, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, err
	}

	var matches []string
	walkFn := func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // best-effort: skip unreadable entries
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}

		if d.IsDir() {
			if path != root && opts.ExcludeDirs.MatchesDir(d.Name()) {
				return filepath.SkipDir
			}
			if !opts.Recurse && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		if opts.ExcludeFiles.MatchesFile(path) {
			return nil
		}
		if opts.SearchTarget != "" && !matchTarget(opts.SearchTarget, rel) {
			return nil
		}
		abs, absErr := filepath.Abs(path)
		if absErr != nil {
			abs = path
		}
		matches = append(matches, abs)
		return nil
	}

	if err := filepath.WalkDir(root, walkFn); err != nil {
		return nil, err
	}

	sort.Strings(matches)
	return matches, nil
}

func matchTarget(target, rel string) bool {
	ok, err := doublestar.Match(target, filepath.Base(rel))
	return err == nil && ok
}

// MatchesTarget reports whether path's base name matches a SearchTarget
// glob, the same rule Collect applies during directory enumeration. It
// lets a caller re-apply the filter to a single path emitted outside
// Collect, e.g. a WatchIterator change event.
func MatchesTarget(target, path string) bool {
	return matchTarget(target, path)
}

// Dirs returns the set of directories Collect would have descended
// into for the same Root/Recurse/ExcludeDirs — the registration list
// for a WatchIterator, since fsnotify watches are per-directory and
// non-recursive on their own.
func Dirs(opts Options) ([]string, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, err
	}

	var dirs []string
	walkFn := func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && opts.ExcludeDirs.MatchesDir(d.Name()) {
			return filepath.SkipDir
		}
		dirs = append(dirs, path)
		if !opts.Recurse && path != root {
			return filepath.SkipDir
		}
		return nil
	}

	if err := filepath.WalkDir(root, walkFn); err != nil {
		return nil, err
	}
	return dirs, nil
}
