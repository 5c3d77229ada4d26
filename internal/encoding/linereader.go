package encoding

import "github.com/standardbeagle/gscan/internal/types"

// LineReader yields the lines of an already-decoded file, splitting on
// any of CR, LF, or CRLF with the terminator stripped, per §4.3.
type LineReader struct {
	lines []string
	pos   int
}

// NewLineReader decodes data with the given encoding key and prepares a
// LineReader over the result.
func NewLineReader(data []byte, key types.EncodingKey) *LineReader {
	decoded := Decode(data, key)
	return &LineReader{lines: splitLines(decoded)}
}

// Next returns the next line and true, or "" and false once exhausted.
func (lr *LineReader) Next() (string, bool) {
	if lr.pos >= len(lr.lines) {
		return "", false
	}
	line := lr.lines[lr.pos]
	lr.pos++
	return line, true
}

// splitLines splits on CR, LF, or CRLF, stripping the terminator. A
// trailing terminator does not produce a final empty line, matching the
// usual text-file convention (a file ending in "\n" has no phantom last
// line).
func splitLines(s string) []string {
	var lines []string
	runes := []rune(s)
	start := 0
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '\n':
			lines = append(lines, string(runes[start:i]))
			start = i + 1
		case '\r':
			lines = append(lines, string(runes[start:i]))
			if i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(runes) {
		lines = append(lines, string(runes[start:]))
	}
	return lines
}
