package config

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// tomlConfig mirrors Config but with lowercase TOML-friendly tags, for
// importing legacy `.toml` profiles the way the teacher's config
// package supports more than one serialization of the same structured
// config.
type tomlConfig struct {
	Pattern struct {
		Raw        string `toml:"raw"`
		UseRegex   bool   `toml:"use_regex"`
		IgnoreCase bool   `toml:"ignore_case"`
		Word       bool   `toml:"word"`
	} `toml:"pattern"`
	Encoding struct {
		CodePage string `toml:"codepage"`
	} `toml:"encoding"`
	Classify struct {
		TextOnly       bool   `toml:"text_only"`
		SignaturesPath string `toml:"signatures"`
	} `toml:"classify"`
	Output struct {
		ResultPath        string `toml:"result_path"`
		Quiet             bool   `toml:"quiet"`
		FirstMatchOnly    bool   `toml:"first_match_only"`
		OutputMatchedPart bool   `toml:"output_matched_part"`
	} `toml:"output"`
	Run struct {
		Parallelism int  `toml:"parallelism"`
		Debug       bool `toml:"debug"`
	} `toml:"run"`
}

// LoadTOML loads a legacy `.toml` profile from path. Returns (nil, nil)
// when the file does not exist.
func LoadTOML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var t tomlConfig
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse TOML config: %w", err)
	}

	cfg := Default()
	cfg.Pattern = PatternConfig(t.Pattern)
	cfg.Encoding = EncodingConfig(t.Encoding)
	cfg.Classify = ClassifyConfig(t.Classify)
	cfg.Output = OutputConfig(t.Output)
	cfg.Run = RunConfig(t.Run)
	return cfg, nil
}
