// Package scanner implements the per-file scanner (C6): the
// deterministic sequence existence → binary filter → encoding
// resolution → line-oriented regex match → formatted emission, run
// independently for one file against an immutable ScanConfig.
package scanner

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/standardbeagle/gscan/internal/chardet"
	"github.com/standardbeagle/gscan/internal/classify"
	"github.com/standardbeagle/gscan/internal/debug"
	"github.com/standardbeagle/gscan/internal/encoding"
	"github.com/standardbeagle/gscan/internal/types"
)

// Scanner runs the per-file pipeline against one path at a time. It
// holds no per-file state between calls, so a single Scanner can be
// reused by one worker across its whole job queue.
type Scanner struct {
	registry *encoding.Registry
}

// New builds a Scanner backed by the given encoding registry.
func New(registry *encoding.Registry) *Scanner {
	return &Scanner{registry: registry}
}

// Scan runs the full pipeline for one file and returns its match
// records in line order. A file that does not exist, is filtered as
// binary, or hits a recoverable I/O error yields no records and no
// error: the debug log (if enabled) already has the detail, and the run
// continues (§4.5, §7).
func (s *Scanner) Scan(cfg *types.ScanConfig, path string) ([]types.MatchRecord, error) {
	if _, err := os.Stat(path); err != nil {
		debug.LogScan("skip (not found): %s", path)
		return nil, nil
	}

	if cfg.TextOnly {
		name, isBinary, err := classify.Classify(path, cfg.Signatures)
		if err != nil {
			debug.LogScan("classify error for %s: %v", path, err)
			return nil, nil
		}
		if isBinary {
			debug.LogScan("skip (binary: %s): %s", name, path)
			return nil, nil
		}
	}

	key := cfg.CodePage
	if key == types.AutoCode {
		detected, err := chardet.Detect(path, chardet.DefaultSampleKB)
		if err != nil {
			debug.LogScan("encoding detect error for %s: %v", path, err)
			return nil, nil
		}
		key = detected
	}
	info := s.registry.Resolve(key)

	data, err := os.ReadFile(path)
	if err != nil {
		debug.LogScan("read error for %s: %v", path, err)
		return nil, nil
	}

	reader := encoding.NewLineReader(data, info.Key)

	var records []types.MatchRecord
	lineNo := 0
	for {
		line, ok := reader.Next()
		if !ok {
			break
		}
		lineNo++

		loc := cfg.Regex.FindStringIndex(line)
		if loc == nil {
			continue
		}

		column := utf8.RuneCountInString(line[:loc[0]]) + 1
		payload := line
		if cfg.OutputMatchedPart {
			payload = line[loc[0]:loc[1]]
		}

		records = append(records, types.MatchRecord{
			FilePath:            path,
			LineNumber:          lineNo,
			ColumnNumber:        column,
			EncodingDisplayName: info.DisplayName,
			Payload:             payload,
		})

		if cfg.FirstMatchOnly {
			break
		}
	}

	return records, nil
}

// Format renders a MatchRecord in the §4.5 output format:
// "<absPath>(<line>,<col>)  [<encDisplay>]: <payload>".
func Format(m types.MatchRecord) string {
	return fmt.Sprintf("%s(%d,%d)  [%s]: %s", m.FilePath, m.LineNumber, m.ColumnNumber, m.EncodingDisplayName, m.Payload)
}
