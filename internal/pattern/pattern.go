// Package pattern implements the pattern compiler (C5): it turns a user
// search string and a handful of boolean flags into a compiled regular
// expression, per §4.4.
package pattern

import (
	"regexp"

	gscanerrors "github.com/standardbeagle/gscan/internal/errors"
)

// Options controls how Compile builds the expression.
type Options struct {
	UseRegex   bool
	IgnoreCase bool
	Word       bool
}

// Compile builds a *regexp.Regexp from raw per Options. UseRegex and
// Word are mutually exclusive at the CLI boundary (§4.4); Compile itself
// does not reject the combination, it simply wraps whatever expression
// it is given in \b...\b when Word is set.
func Compile(raw string, opts Options) (*regexp.Regexp, error) {
	expr := raw
	if !opts.UseRegex {
		expr = regexp.QuoteMeta(expr)
	}
	if opts.Word {
		expr = `\b` + expr + `\b`
	}
	if opts.IgnoreCase {
		expr = `(?i)` + expr
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, gscanerrors.NewPatternError(raw, err)
	}
	// regexp.Compile already builds an automaton from the expression;
	// stdlib has no separate "optimized" compile step to request.
	return re, nil
}
