package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKDL_Defaults(t *testing.T) {
	cfg, err := parseKDL("")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "AUTO", cfg.Encoding.CodePage)
	assert.Equal(t, "gscan-results.txt", cfg.Output.ResultPath)
	assert.Equal(t, 0, cfg.Run.Parallelism)
}

func TestParseKDL_PatternBlock(t *testing.T) {
	kdlContent := `
pattern {
    raw "TODO"
    use_regex false
    ignore_case true
    word true
}
`
	cfg, err := parseKDL(kdlContent)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "TODO", cfg.Pattern.Raw)
	assert.False(t, cfg.Pattern.UseRegex)
	assert.True(t, cfg.Pattern.IgnoreCase)
	assert.True(t, cfg.Pattern.Word)
}

func TestParseKDL_FullConfig(t *testing.T) {
	kdlContent := `
pattern {
    raw "error"
    use_regex true
}

encoding {
    codepage "SJIS"
}

classify {
    text_only true
    signatures "sigs.json"
}

output {
    result_path "out.txt"
    quiet true
    first_match_only true
    output_matched_part true
}

run {
    parallelism 8
    debug true
}
`
	cfg, err := parseKDL(kdlContent)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "error", cfg.Pattern.Raw)
	assert.True(t, cfg.Pattern.UseRegex)
	assert.Equal(t, "SJIS", cfg.Encoding.CodePage)
	assert.True(t, cfg.Classify.TextOnly)
	assert.Equal(t, "sigs.json", cfg.Classify.SignaturesPath)
	assert.Equal(t, "out.txt", cfg.Output.ResultPath)
	assert.True(t, cfg.Output.Quiet)
	assert.True(t, cfg.Output.FirstMatchOnly)
	assert.True(t, cfg.Output.OutputMatchedPart)
	assert.Equal(t, 8, cfg.Run.Parallelism)
	assert.True(t, cfg.Run.Debug)
}

func TestParseKDL_PartialRunConfig(t *testing.T) {
	kdlContent := `
run {
    parallelism 4
}
`
	cfg, err := parseKDL(kdlContent)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 4, cfg.Run.Parallelism)
	assert.False(t, cfg.Run.Debug)
}

func TestLoadKDL_MissingFileReturnsNilWithoutError(t *testing.T) {
	cfg, err := LoadKDL(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, cfg)
}
