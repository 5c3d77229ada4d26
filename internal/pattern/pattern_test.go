package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileLiteralEscapesMetacharacters(t *testing.T) {
	re, err := Compile("a.b(c)", Options{UseRegex: false})
	require.NoError(t, err)

	assert.True(t, re.MatchString("a.b(c)"))
	assert.False(t, re.MatchString("aXb(c)")) // '.' must not act as wildcard
}

func TestCompileRegexUsesMetacharacters(t *testing.T) {
	re, err := Compile("a.b", Options{UseRegex: true})
	require.NoError(t, err)
	assert.True(t, re.MatchString("aXb"))
}

func TestCompileWordWrapsBoundaries(t *testing.T) {
	re, err := Compile("cat", Options{Word: true})
	require.NoError(t, err)

	assert.True(t, re.MatchString("a cat sat"))
	assert.False(t, re.MatchString("category"))
}

func TestCompileIgnoreCase(t *testing.T) {
	re, err := Compile("ERROR", Options{IgnoreCase: true})
	require.NoError(t, err)
	assert.True(t, re.MatchString("an error occurred"))
}

func TestCompileInvalidRegexSurfacesPatternError(t *testing.T) {
	_, err := Compile("(unclosed", Options{UseRegex: true})
	require.Error(t, err)
}
