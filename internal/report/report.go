// Package report formats the result artifact's header and trailer
// (§6.3): a blank line and annotation block naming the active run
// options, and a final "<N> items matched." trailer with elapsed time.
package report

import (
	"fmt"
	"strings"
	"time"
)

// HeaderOptions names every run option §6.3 requires annotated: the
// pattern, search target glob, root path(s), exclusions, and one line
// per active flag.
type HeaderOptions struct {
	Pattern            string
	SearchTarget       string
	Roots              []string
	ExcludeDirs        string
	ExcludeFiles       string
	Recurse            bool
	TextOnly           bool
	Word               bool
	IgnoreCase         bool
	CodePage           string
	OutputMatchedPart  bool
	FirstMatchOnly     bool
	RegexEngineVersion string
}

// Header renders the leading blank line and annotation block as
// complete lines, ready to be appended to the sink in order.
func Header(opts HeaderOptions) []string {
	lines := make([]string, 0, 14)
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Pattern: %s", opts.Pattern))
	lines = append(lines, fmt.Sprintf("Search target: %s", opts.SearchTarget))
	lines = append(lines, fmt.Sprintf("Root: %s", strings.Join(opts.Roots, "; ")))

	if opts.ExcludeDirs != "" {
		lines = append(lines, fmt.Sprintf("Exclude dirs: %s", opts.ExcludeDirs))
	}
	if opts.ExcludeFiles != "" {
		lines = append(lines, fmt.Sprintf("Exclude files: %s", opts.ExcludeFiles))
	}

	lines = append(lines, fmt.Sprintf("Recurse: %s", flagLabel(opts.Recurse)))
	lines = append(lines, fmt.Sprintf("Text-only: %s", flagLabel(opts.TextOnly)))
	lines = append(lines, fmt.Sprintf("Word: %s", flagLabel(opts.Word)))
	lines = append(lines, fmt.Sprintf("Case-sensitive: %s", flagLabel(!opts.IgnoreCase)))
	lines = append(lines, fmt.Sprintf("Codepage: %s", opts.CodePage))
	lines = append(lines, fmt.Sprintf("Match-part only: %s", flagLabel(opts.OutputMatchedPart)))
	lines = append(lines, fmt.Sprintf("First-match-only: %s", flagLabel(opts.FirstMatchOnly)))
	lines = append(lines, fmt.Sprintf("Regex engine: %s", opts.RegexEngineVersion))

	return lines
}

func flagLabel(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// Trailer renders the final summary line: "<N> items matched. -
// Elapsed: HH:MM:SS".
func Trailer(matchCount int, elapsed time.Duration) string {
	return fmt.Sprintf("%d items matched. - Elapsed: %s", matchCount, FormatElapsed(elapsed))
}

// FormatElapsed renders a duration as zero-padded HH:MM:SS, truncating
// sub-second precision.
func FormatElapsed(d time.Duration) string {
	total := int64(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
