package config

import (
	"fmt"
	"runtime"
)

// Validator validates a Config and fills in smart defaults, mirroring
// the teacher's internal/config/validator.go shape.
type Validator struct{}

// NewValidator creates a new configuration validator.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAndSetDefaults validates cfg and applies smart defaults.
// Returns an error if validation fails after defaulting.
func (v *Validator) ValidateAndSetDefaults(cfg *Config) error {
	v.setSmartDefaults(cfg)

	if err := v.validatePattern(&cfg.Pattern); err != nil {
		return fmt.Errorf("pattern config: %w", err)
	}
	if err := v.validateRun(&cfg.Run); err != nil {
		return fmt.Errorf("run config: %w", err)
	}
	if err := v.validateOutput(&cfg.Output); err != nil {
		return fmt.Errorf("output config: %w", err)
	}
	return nil
}

func (v *Validator) validatePattern(p *PatternConfig) error {
	if p.Raw == "" {
		return fmt.Errorf("pattern cannot be empty")
	}
	if p.UseRegex && p.Word {
		// §4.4: mutually exclusive at the configuration boundary. The
		// compiler itself tolerates the combination; reject it here,
		// one layer up, where the rest of config validation lives.
		return fmt.Errorf("use_regex and word are mutually exclusive")
	}
	return nil
}

func (v *Validator) validateRun(r *RunConfig) error {
	if r.Parallelism <= 0 {
		return fmt.Errorf("parallelism must be positive, got %d", r.Parallelism)
	}
	return nil
}

func (v *Validator) validateOutput(o *OutputConfig) error {
	if o.ResultPath == "" {
		return fmt.Errorf("result path cannot be empty")
	}
	return nil
}

// setSmartDefaults fills fields left at their zero value with a
// reasonable default derived from the host, the way the teacher's
// Validator sizes MaxGoroutines/ParallelFileWorkers from runtime.NumCPU.
func (v *Validator) setSmartDefaults(cfg *Config) {
	if cfg.Run.Parallelism == 0 {
		cfg.Run.Parallelism = max(1, runtime.NumCPU()-1)
	}
	if cfg.Encoding.CodePage == "" {
		cfg.Encoding.CodePage = "AUTO"
	}
	if cfg.Output.ResultPath == "" {
		cfg.Output.ResultPath = "gscan-results.txt"
	}
}

// Validate is a convenience function for quick validation, mirroring
// the teacher's package-level ValidateConfig.
func Validate(cfg *Config) error {
	return NewValidator().ValidateAndSetDefaults(cfg)
}
