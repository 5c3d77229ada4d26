// Package chardet implements the multi-stage encoding auto-detector
// (C3): BOM sniffing, an ASCII fast path, JIS escape-sequence scanning,
// and statistical SJIS/EUC-JP/UTF-8 scoring, exactly as specified in
// §4.2 of the specification.
package chardet

import (
	"os"

	gscanerrors "github.com/standardbeagle/gscan/internal/errors"
	"github.com/standardbeagle/gscan/internal/types"
)

// DefaultSampleKB is the default sample size used by Detect.
const DefaultSampleKB = 4

// Detect runs the full detection pipeline against the file at path and
// returns the best-matching encoding key. It never returns an error for
// an empty or unreadable-beyond-open file; genuine I/O errors (e.g. a
// permission failure on open) are returned to the caller, which logs
// them and skips the file. An inconclusive result is not an error: it is
// the empty key (see DetectBytes).
func Detect(path string, sampleKB int) (types.EncodingKey, error) {
	if sampleKB <= 0 {
		sampleKB = DefaultSampleKB
	}

	f, err := os.Open(path)
	if err != nil {
		return "", gscanerrors.NewClassifyError(path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", gscanerrors.NewClassifyError(path, err)
	}
	size := info.Size()
	if size == 0 {
		return types.ASCII, nil
	}

	head := make([]byte, 4)
	n, _ := f.ReadAt(head, 0)
	head = head[:n]

	if key, ok := sniffBOM(head); ok {
		return key, nil
	}

	sample, err := assembleSample(f, size, sampleKB*1024)
	if err != nil {
		return "", gscanerrors.NewClassifyError(path, err)
	}

	return DetectBytes(sample), nil
}

// DetectBytes runs stages 4-7 of §4.2 against an already-assembled
// sample buffer (skips the empty-file and BOM-sniff stages, which need
// file size/offset information). Exposed so callers that have their own
// byte buffer — and the test suite — can exercise the scoring stages
// directly.
func DetectBytes(sample []byte) types.EncodingKey {
	if isASCII(sample) {
		return types.ASCII
	}
	if hasJISEscape(sample) {
		return types.JIS
	}

	sjis := scoreSJIS(sample)
	euc := scoreEUC(sample)
	utf8 := scoreUTF8(sample)

	if sjis > euc && sjis > utf8 {
		return types.SJIS
	}
	if euc > sjis && euc > utf8 {
		return types.EUC
	}
	if utf8 > sjis && utf8 > euc {
		return types.UTF8N
	}
	// No category strictly exceeds both others: return the empty
	// "inconclusive" key, which encoding.Registry.Resolve maps to the
	// default-flagged key (SJIS in the standard registry).
	return ""
}

// sniffBOM checks the first up-to-4 bytes against the BOM table in the
// strict precedence order specified by §4.2 step 2.
func sniffBOM(head []byte) (types.EncodingKey, bool) {
	switch {
	case hasPrefix(head, 0xEF, 0xBB, 0xBF):
		return types.UTF8BOM, true
	case hasPrefix(head, 0xFF, 0xFE, 0x00, 0x00):
		return types.UTF32LE, true
	case hasPrefix(head, 0x00, 0x00, 0xFE, 0xFF):
		return types.UTF32BE, true
	case hasPrefix(head, 0xFF, 0xFE):
		return types.UTF16LE, true
	case hasPrefix(head, 0xFE, 0xFF):
		return types.UTF16BE, true
	}
	return "", false
}

func hasPrefix(head []byte, want ...byte) bool {
	if len(head) < len(want) {
		return false
	}
	for i, b := range want {
		if head[i] != b {
			return false
		}
	}
	return true
}

// assembleSample reads up to min(fileSize, sampleBytes) bytes composed
// of three roughly equal thirds drawn from the head, middle, and tail of
// the file, per §4.2 step 3.
func assembleSample(f *os.File, fileSize int64, sampleBytes int) ([]byte, error) {
	total := int64(sampleBytes)
	if fileSize < total {
		total = fileSize
	}

	if fileSize <= total {
		buf := make([]byte, total)
		n, err := f.ReadAt(buf, 0)
		if err != nil && n == 0 {
			return nil, err
		}
		return buf[:n], nil
	}

	third := int(total) / 3
	if third == 0 {
		third = int(total)
	}

	var out []byte

	head := make([]byte, third)
	n, err := f.ReadAt(head, 0)
	if err != nil && n == 0 {
		return nil, err
	}
	out = append(out, head[:n]...)

	if sampleBytes > 2*1024 {
		mid := make([]byte, third)
		midOffset := fileSize/2 - int64(third)/2
		if midOffset < 0 {
			midOffset = 0
		}
		n, _ = f.ReadAt(mid, midOffset)
		out = append(out, mid[:n]...)
	}

	if sampleBytes > 1024 {
		tail := make([]byte, int(total)-len(out))
		if len(tail) > 0 {
			tailOffset := fileSize - int64(len(tail))
			if tailOffset < 0 {
				tailOffset = 0
			}
			n, _ = f.ReadAt(tail, tailOffset)
			out = append(out, tail[:n]...)
		}
	}

	return out, nil
}

// isASCII implements §4.2 step 4: true when no byte is ESC (0x1B) and no
// byte has the high bit set.
func isASCII(sample []byte) bool {
	for _, b := range sample {
		if b == 0x1B || b&0x80 != 0 {
			return false
		}
	}
	return true
}

var jisEscapes = [][]byte{
	{0x1B, 0x24, 0x40},             // ESC $ @
	{0x1B, 0x24, 0x42},             // ESC $ B
	{0x1B, 0x28, 0x42},             // ESC ( B
	{0x1B, 0x28, 0x4A},             // ESC ( J
	{0x1B, 0x28, 0x49},             // ESC ( I
	{0x1B, 0x24, 0x28, 0x44},       // ESC $ ( D
	{0x1B, 0x26, 0x40, 0x1B, 0x24, 0x42}, // ESC & @ ESC $ B
}

// hasJISEscape implements §4.2 step 5.
func hasJISEscape(sample []byte) bool {
	for i := range sample {
		if sample[i] != 0x1B {
			continue
		}
		for _, esc := range jisEscapes {
			if hasSubsequenceAt(sample, i, esc) {
				return true
			}
		}
	}
	return false
}

func hasSubsequenceAt(buf []byte, at int, seq []byte) bool {
	if at+len(seq) > len(buf) {
		return false
	}
	for i, b := range seq {
		if buf[at+i] != b {
			return false
		}
	}
	return true
}

// scoreSJIS implements the SJIS evidence rule of §4.2 step 6: lead
// [81..9F] or [E0..FC], trail [40..7E] or [80..FC] scores +2 and
// advances 2 bytes.
func scoreSJIS(sample []byte) int {
	score := 0
	for i := 0; i < len(sample); {
		if i+1 < len(sample) && isSJISLead(sample[i]) && isSJISTrail(sample[i+1]) {
			score += 2
			i += 2
			continue
		}
		i++
	}
	return score
}

func isSJISLead(b byte) bool { return (b >= 0x81 && b <= 0x9F) || (b >= 0xE0 && b <= 0xFC) }
func isSJISTrail(b byte) bool {
	return (b >= 0x40 && b <= 0x7E) || (b >= 0x80 && b <= 0xFC)
}

// scoreEUC implements the EUC-JP evidence rule of §4.2 step 6:
// [A1..FE][A1..FE] or 8E [A1..DF] score +2 advance 2; 8F [A1..FE][A1..FE]
// scores +3 advance 3.
func scoreEUC(sample []byte) int {
	score := 0
	for i := 0; i < len(sample); {
		b := sample[i]
		switch {
		case b == 0x8F && i+2 < len(sample) && inRange(sample[i+1], 0xA1, 0xFE) && inRange(sample[i+2], 0xA1, 0xFE):
			score += 3
			i += 3
		case b == 0x8E && i+1 < len(sample) && inRange(sample[i+1], 0xA1, 0xDF):
			score += 2
			i += 2
		case inRange(b, 0xA1, 0xFE) && i+1 < len(sample) && inRange(sample[i+1], 0xA1, 0xFE):
			score += 2
			i += 2
		default:
			i++
		}
	}
	return score
}

// scoreUTF8 implements the UTF-8 evidence rule of §4.2 step 6:
// [C0..DF][80..BF] scores +2 advance 2; [E0..EF][80..BF][80..BF] scores
// +3 advance 3.
func scoreUTF8(sample []byte) int {
	score := 0
	for i := 0; i < len(sample); {
		b := sample[i]
		switch {
		case inRange(b, 0xE0, 0xEF) && i+2 < len(sample) && inRange(sample[i+1], 0x80, 0xBF) && inRange(sample[i+2], 0x80, 0xBF):
			score += 3
			i += 3
		case inRange(b, 0xC0, 0xDF) && i+1 < len(sample) && inRange(sample[i+1], 0x80, 0xBF):
			score += 2
			i += 2
		default:
			i++
		}
	}
	return score
}

func inRange(b byte, lo, hi byte) bool { return b >= lo && b <= hi }
