package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTOMLParsesLegacyProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.toml")
	content := `
[pattern]
raw = "TODO"
use_regex = false
ignore_case = true

[encoding]
codepage = "EUC"

[classify]
text_only = true

[output]
result_path = "legacy-out.txt"
quiet = true

[run]
parallelism = 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadTOML(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "TODO", cfg.Pattern.Raw)
	assert.True(t, cfg.Pattern.IgnoreCase)
	assert.Equal(t, "EUC", cfg.Encoding.CodePage)
	assert.True(t, cfg.Classify.TextOnly)
	assert.Equal(t, "legacy-out.txt", cfg.Output.ResultPath)
	assert.True(t, cfg.Output.Quiet)
	assert.Equal(t, 2, cfg.Run.Parallelism)
}

func TestLoadTOMLMissingFileReturnsNilWithoutError(t *testing.T) {
	cfg, err := LoadTOML(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg)
}
