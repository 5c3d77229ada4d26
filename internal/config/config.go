// Package config assembles the immutable types.ScanConfig broadcast to
// every worker from a grouped Config struct, loadable programmatically,
// from a `.gscan.kdl` file, or from a legacy `.toml` profile.
package config

import (
	"github.com/standardbeagle/gscan/internal/pattern"
	"github.com/standardbeagle/gscan/internal/types"
)

// PatternConfig holds the raw user pattern and the flags C5 compiles it
// with.
type PatternConfig struct {
	Raw        string
	UseRegex   bool
	IgnoreCase bool
	Word       bool
}

// EncodingConfig selects the codepage a run scans with.
type EncodingConfig struct {
	CodePage string // "AUTO" or an EncodingKey name
}

// ClassifyConfig controls the binary filter and an optional signature
// override file (§6.2).
type ClassifyConfig struct {
	TextOnly       bool
	SignaturesPath string // empty: use the built-in default table
}

// OutputConfig controls the result artifact and per-match formatting.
type OutputConfig struct {
	ResultPath        string
	Quiet             bool
	FirstMatchOnly    bool
	OutputMatchedPart bool
}

// RunConfig controls worker-pool sizing and debug logging.
type RunConfig struct {
	Parallelism int
	Debug       bool
}

// Config is the grouped, serializable configuration a run is built
// from. It mirrors the shape of the teacher's Config (Project, Index,
// Performance, Search groups) with groups renamed to this domain.
type Config struct {
	Pattern  PatternConfig
	Encoding EncodingConfig
	Classify ClassifyConfig
	Output   OutputConfig
	Run      RunConfig
}

// Default returns a Config with every field at its documented default.
// Parallelism is left at 0, meaning "auto" — ValidateAndSetDefaults
// resolves it against the host's CPU count.
func Default() *Config {
	return &Config{
		Encoding: EncodingConfig{CodePage: string(types.AutoCode)},
		Output: OutputConfig{
			ResultPath: "gscan-results.txt",
		},
		Run: RunConfig{
			Parallelism: 0,
		},
	}
}

// Build compiles the pattern and assembles the immutable ScanConfig
// workers receive. Call ValidateAndSetDefaults first.
func (c *Config) Build(signatures types.SignatureTable, startTime int64) (*types.ScanConfig, error) {
	re, err := pattern.Compile(c.Pattern.Raw, pattern.Options{
		UseRegex:   c.Pattern.UseRegex,
		IgnoreCase: c.Pattern.IgnoreCase,
		Word:       c.Pattern.Word,
	})
	if err != nil {
		return nil, err
	}

	return &types.ScanConfig{
		Regex:             re,
		TextOnly:          c.Classify.TextOnly,
		Signatures:        signatures,
		CodePage:          types.EncodingKey(c.Encoding.CodePage),
		FirstMatchOnly:    c.Output.FirstMatchOnly,
		OutputMatchedPart: c.Output.OutputMatchedPart,
		Parallelism:       c.Run.Parallelism,
		Quiet:             c.Output.Quiet,
		Debug:             c.Run.Debug,
		StartTime:         startTime,
	}, nil
}
