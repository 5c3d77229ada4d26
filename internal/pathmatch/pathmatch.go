// Package pathmatch implements the "filesystem-flavored globbing" used
// by the file-iterator collaborator's ExcludeDirs/ExcludeFiles lists
// (§6.1, §9): a semicolon-separated list of glob patterns, matched
// segment-wise for directories and against the whole leaf name for
// files.
package pathmatch

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ExcludeList parses a raw ";"-separated pattern list, trimming
// whitespace around each entry and dropping empty ones. An empty input
// (after trimming) means "no exclusions".
type ExcludeList struct {
	patterns []string
}

// ParseExcludeList splits raw on ';' and trims each pattern.
func ParseExcludeList(raw string) ExcludeList {
	var patterns []string
	for _, p := range strings.Split(raw, ";") {
		p = strings.TrimSpace(p)
		if p != "" {
			patterns = append(patterns, p)
		}
	}
	return ExcludeList{patterns: patterns}
}

// Empty reports whether the list has no patterns.
func (e ExcludeList) Empty() bool { return len(e.patterns) == 0 }

// MatchesDir reports whether any pattern matches the given path segment
// (a single directory name, not a full path).
func (e ExcludeList) MatchesDir(segment string) bool {
	return e.matchesAny(segment)
}

// MatchesFile reports whether any pattern matches the leaf file name of
// path.
func (e ExcludeList) MatchesFile(path string) bool {
	return e.matchesAny(filepath.Base(path))
}

func (e ExcludeList) matchesAny(name string) bool {
	for _, p := range e.patterns {
		if ok, err := doublestar.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}

// MatchesAnySegment reports whether any directory segment of a relative
// path matches the list — the full "descend into dir tree, exclude any
// matching directory name" semantics §9 describes for ExcludeDirs.
func (e ExcludeList) MatchesAnySegment(relPath string) bool {
	if e.Empty() {
		return false
	}
	for _, seg := range strings.Split(filepath.ToSlash(relPath), "/") {
		if seg == "" {
			continue
		}
		if e.MatchesDir(seg) {
			return true
		}
	}
	return false
}
