package magic

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	gscanerrors "github.com/standardbeagle/gscan/internal/errors"
	"github.com/standardbeagle/gscan/internal/types"
)

// jsonEntry mirrors one entry of the §6.2 JSON signature map:
// {"Hex": "50 4B 03 04", "Offset": 0}.
type jsonEntry struct {
	Hex    string `json:"Hex"`
	Offset int    `json:"Offset"`
}

// LoadJSON parses a §6.2 signature map and converts each entry's Hex
// string into the internal byte/wildcard sequence. "??" denotes a
// wildcard token; every other token must be a two-character hex byte.
func LoadJSON(data []byte) ([]types.Signature, error) {
	var raw map[string]jsonEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode signature JSON: %w", err)
	}

	sigs := make([]types.Signature, 0, len(raw))
	for name, entry := range raw {
		bytes, err := parseHexTokens(entry.Hex)
		if err != nil {
			return nil, gscanerrors.NewSignatureError(name, err)
		}
		if len(bytes) == 0 {
			return nil, gscanerrors.NewSignatureError(name, fmt.Errorf("empty pattern"))
		}
		sigs = append(sigs, types.Signature{
			Name:   name,
			Bytes:  bytes,
			Offset: entry.Offset,
		})
	}
	return sigs, nil
}

// parseHexTokens converts a space-separated token string into the
// internal byte/wildcard sequence.
func parseHexTokens(hex string) ([]int, error) {
	fields := strings.Fields(hex)
	out := make([]int, 0, len(fields))
	for _, tok := range fields {
		if tok == "??" {
			out = append(out, types.WildcardByte)
			continue
		}
		v, err := strconv.ParseUint(tok, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid hex token %q: %w", tok, err)
		}
		out = append(out, int(v))
	}
	return out, nil
}
