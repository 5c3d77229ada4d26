package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHeaderIncludesBlankLineAndAnnotations(t *testing.T) {
	lines := Header(HeaderOptions{
		Pattern:            "TODO",
		SearchTarget:       "*.go",
		Roots:              []string{"/src"},
		ExcludeDirs:        "node_modules;.git",
		Recurse:            true,
		TextOnly:           true,
		Word:               false,
		IgnoreCase:         true,
		CodePage:           "AUTO",
		RegexEngineVersion: "regexp (stdlib, go1.24.2)",
	})

	assert.Equal(t, "", lines[0])
	assert.Contains(t, lines, "Pattern: TODO")
	assert.Contains(t, lines, "Search target: *.go")
	assert.Contains(t, lines, "Root: /src")
	assert.Contains(t, lines, "Exclude dirs: node_modules;.git")
	assert.Contains(t, lines, "Recurse: on")
	assert.Contains(t, lines, "Text-only: on")
	assert.Contains(t, lines, "Word: off")
	assert.Contains(t, lines, "Case-sensitive: off")
	assert.Contains(t, lines, "Codepage: AUTO")
	assert.Contains(t, lines, "Regex engine: regexp (stdlib, go1.24.2)")
}

func TestHeaderOmitsExclusionsWhenEmpty(t *testing.T) {
	lines := Header(HeaderOptions{Pattern: "x", Roots: []string{"."}})
	for _, l := range lines {
		assert.NotContains(t, l, "Exclude")
	}
}

func TestTrailerFormatsCountAndElapsed(t *testing.T) {
	line := Trailer(42, 3*time.Hour+5*time.Minute+9*time.Second)
	assert.Equal(t, "42 items matched. - Elapsed: 03:05:09", line)
}

func TestFormatElapsedZeroPadsUnderAMinute(t *testing.T) {
	assert.Equal(t, "00:00:07", FormatElapsed(7*time.Second))
}
