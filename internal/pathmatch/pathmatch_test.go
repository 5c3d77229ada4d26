package pathmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseExcludeListTrimsAndDropsEmpty(t *testing.T) {
	list := ParseExcludeList(" node_modules ; *.tmp ;; .git ")
	assert.False(t, list.Empty())
	assert.True(t, list.MatchesDir("node_modules"))
	assert.True(t, list.MatchesDir(".git"))
	assert.True(t, list.MatchesFile("build/out.tmp"))
	assert.False(t, list.MatchesDir("src"))
}

func TestParseExcludeListEmptyWhenBlank(t *testing.T) {
	list := ParseExcludeList("   ")
	assert.True(t, list.Empty())
}

func TestMatchesAnySegmentDescendsPath(t *testing.T) {
	list := ParseExcludeList("vendor")
	assert.True(t, list.MatchesAnySegment("pkg/vendor/lib/file.go"))
	assert.False(t, list.MatchesAnySegment("pkg/lib/file.go"))
}
