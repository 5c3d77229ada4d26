package encoding

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/standardbeagle/gscan/internal/types"
)

// replacementChar is substituted for any malformed or unmapped sequence
// so decoding never aborts (§4.3).
const replacementChar = '�'

// Decode turns a raw byte buffer into a Go string, tolerant of malformed
// input for the given encoding key. BOM bytes, when the encoding has
// one, are stripped from the output.
func Decode(data []byte, key types.EncodingKey) string {
	switch key {
	case types.ASCII, types.UTF8N:
		return decodeUTF8(data)
	case types.UTF8BOM:
		return decodeUTF8(stripBOM(data, 0xEF, 0xBB, 0xBF))
	case types.UTF16LE:
		return decodeUTF16(stripBOM(data, 0xFF, 0xFE), false)
	case types.UTF16BE:
		return decodeUTF16(stripBOM(data, 0xFE, 0xFF), true)
	case types.UTF32LE:
		return decodeUTF32(stripBOM(data, 0xFF, 0xFE, 0x00, 0x00), false)
	case types.UTF32BE:
		return decodeUTF32(stripBOM(data, 0x00, 0x00, 0xFE, 0xFF), true)
	case types.SJIS:
		return decodeSJIS(data)
	case types.EUC:
		return decodeEUC(data)
	case types.JIS:
		return decodeJIS(data)
	default:
		return decodeUTF8(data)
	}
}

func stripBOM(data []byte, bom ...byte) []byte {
	if len(data) >= len(bom) {
		match := true
		for i, b := range bom {
			if data[i] != b {
				match = false
				break
			}
		}
		if match {
			return data[len(bom):]
		}
	}
	return data
}

// decodeUTF8 copies valid runs as-is and substitutes the replacement
// character for any invalid byte, advancing one byte at a time so a
// single bad byte cannot desynchronize the rest of a well-formed run.
func decodeUTF8(data []byte) string {
	var out []rune
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			out = append(out, replacementChar)
			i++
			continue
		}
		out = append(out, r)
		i += size
	}
	return string(out)
}

func decodeUTF16(data []byte, bigEndian bool) string {
	units := make([]uint16, 0, len(data)/2)
	i := 0
	for ; i+1 < len(data); i += 2 {
		if bigEndian {
			units = append(units, uint16(data[i])<<8|uint16(data[i+1]))
		} else {
			units = append(units, uint16(data[i+1])<<8|uint16(data[i]))
		}
	}
	if i < len(data) {
		// Trailing odd byte: malformed, emit the replacement char.
		units = append(units, uint16(replacementChar))
	}
	return string(utf16.Decode(units))
}

func decodeUTF32(data []byte, bigEndian bool) string {
	var out []rune
	for i := 0; i+3 < len(data); i += 4 {
		var v uint32
		if bigEndian {
			v = uint32(data[i])<<24 | uint32(data[i+1])<<16 | uint32(data[i+2])<<8 | uint32(data[i+3])
		} else {
			v = uint32(data[i+3])<<24 | uint32(data[i+2])<<16 | uint32(data[i+1])<<8 | uint32(data[i])
		}
		if v > utf8.MaxRune {
			out = append(out, replacementChar)
			continue
		}
		out = append(out, rune(v))
	}
	return string(out)
}

// Japanese double-byte codecs (SJIS/EUC/JIS) cover ASCII plus the
// hiragana block U+3041..U+3096, using the standard byte-offset
// relationship between the three encodings (EUC-JP bytes are the 7-bit
// JIS X0208 bytes with the high bit set; Shift-JIS uses its own lead
// byte with the same per-character trail offset). Any double-byte
// sequence outside that range decodes to the replacement character
// rather than aborting, per the malformed-tolerant contract.
const (
	hiraganaStart = 0x3041
	hiraganaEnd   = 0x3096

	sjisLead = 0x82
	sjisBase = 0x9F
	eucLead  = 0xA4
	eucBase  = 0xA1
	jisLead  = 0x24
	jisBase  = 0x21
)

func decodeSJIS(data []byte) string {
	var out []rune
	for i := 0; i < len(data); {
		b := data[i]
		if b < 0x80 {
			out = append(out, rune(b))
			i++
			continue
		}
		if b == sjisLead && i+1 < len(data) {
			trail := data[i+1]
			offset := int(trail) - sjisBase
			if offset >= 0 && hiraganaStart+offset <= hiraganaEnd {
				out = append(out, rune(hiraganaStart+offset))
				i += 2
				continue
			}
		}
		out = append(out, replacementChar)
		i++
	}
	return string(out)
}

func decodeEUC(data []byte) string {
	var out []rune
	for i := 0; i < len(data); {
		b := data[i]
		if b < 0x80 {
			out = append(out, rune(b))
			i++
			continue
		}
		if b == eucLead && i+1 < len(data) {
			trail := data[i+1]
			offset := int(trail) - eucBase
			if offset >= 0 && hiraganaStart+offset <= hiraganaEnd {
				out = append(out, rune(hiraganaStart+offset))
				i += 2
				continue
			}
		}
		out = append(out, replacementChar)
		i++
	}
	return string(out)
}

// decodeJIS implements a minimal ISO-2022-JP reader: ESC $ B (and the
// other JIS-mode escapes recognized by the detector) switches into
// double-byte JIS X0208 mode; ESC ( B / ESC ( J return to single-byte
// ASCII/JIS-Roman mode. Bytes inside an escape sequence are consumed,
// not emitted.
func decodeJIS(data []byte) string {
	var out []rune
	doubleByte := false
	for i := 0; i < len(data); {
		if data[i] == 0x1B {
			n, isDouble, ok := consumeJISEscape(data[i:])
			if ok {
				doubleByte = isDouble
				i += n
				continue
			}
		}
		if !doubleByte {
			out = append(out, rune(data[i]))
			i++
			continue
		}
		if i+1 < len(data) {
			lead := data[i]
			trail := data[i+1]
			if lead == jisLead {
				off := int(trail) - jisBase
				if off >= 0 && hiraganaStart+off <= hiraganaEnd {
					out = append(out, rune(hiraganaStart+off))
					i += 2
					continue
				}
			}
		}
		out = append(out, replacementChar)
		i++
	}
	return string(out)
}

// consumeJISEscape recognizes the escape sequences from §4.2 step 5 and
// reports how many bytes they consume and whether they enter (true) or
// leave (false) double-byte JIS mode. ok is false for an ESC byte that
// does not start a recognized sequence, in which case the caller handles
// the ESC like any other byte of the current mode (emitted as is in
// single-byte mode, replaced in double-byte mode).
func consumeJISEscape(buf []byte) (n int, doubleByte bool, ok bool) {
	type seq struct {
		bytes  []byte
		double bool
	}
	seqs := []seq{
		{[]byte{0x1B, 0x24, 0x40}, true},       // ESC $ @  (JIS 1978)
		{[]byte{0x1B, 0x24, 0x42}, true},       // ESC $ B  (JIS 1983)
		{[]byte{0x1B, 0x28, 0x42}, false},      // ESC ( B  (ASCII)
		{[]byte{0x1B, 0x28, 0x4A}, false},      // ESC ( J  (JIS-Roman)
		{[]byte{0x1B, 0x28, 0x49}, false},      // ESC ( I  (JIS half-width katakana, treated as single-byte here)
		{[]byte{0x1B, 0x24, 0x28, 0x44}, true}, // ESC $ ( D
		// ESC & @ ESC $ B  (JIS 1990)
		{[]byte{0x1B, 0x26, 0x40, 0x1B, 0x24, 0x42}, true},
	}
	for _, s := range seqs {
		if len(buf) >= len(s.bytes) && hasPrefix(buf, s.bytes) {
			return len(s.bytes), s.double, true
		}
	}
	return 0, false, false
}

func hasPrefix(buf, prefix []byte) bool {
	for i, b := range prefix {
		if buf[i] != b {
			return false
		}
	}
	return true
}
