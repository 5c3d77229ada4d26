// Package encoding is the encoding registry (C4): it maps each
// EncodingKey to its descriptive EncodingInfo and builds the decoder
// that turns a byte stream into a sequence of lines.
//
// This package previously held gscan's teacher's base63 ID-encoding
// helpers; those had no role in a text-search tool and are replaced
// here with the text-encoding registry the specification calls for.
package encoding

import "github.com/standardbeagle/gscan/internal/types"

// Registry is an immutable, shared-read-only mapping from EncodingKey to
// EncodingInfo, built once at startup.
type Registry struct {
	infos map[types.EncodingKey]types.EncodingInfo
}

// NewRegistry builds the standard registry. Code-page numbers follow the
// Windows convention the specification's host platform uses.
func NewRegistry() *Registry {
	entries := []types.EncodingInfo{
		{Key: types.ASCII, CodePage: 20127, HasBOM: false, DisplayName: "ASCII"},
		{Key: types.UTF8N, CodePage: 65001, HasBOM: false, DisplayName: "UTF-8"},
		{Key: types.UTF8BOM, CodePage: 65001, HasBOM: true, DisplayName: "UTF-8"},
		{Key: types.UTF16LE, CodePage: 1200, HasBOM: true, DisplayName: "UTF-16LE"},
		{Key: types.UTF16BE, CodePage: 1201, HasBOM: true, DisplayName: "UTF-16BE"},
		{Key: types.UTF32LE, CodePage: 12000, HasBOM: true, DisplayName: "UTF-32LE"},
		{Key: types.UTF32BE, CodePage: 12001, HasBOM: true, DisplayName: "UTF-32BE"},
		{Key: types.SJIS, CodePage: 932, HasBOM: false, DisplayName: "Shift-JIS", Default: true},
		{Key: types.JIS, CodePage: 50220, HasBOM: false, DisplayName: "JIS"},
		{Key: types.EUC, CodePage: 20932, HasBOM: false, DisplayName: "EUC-JP"},
	}

	infos := make(map[types.EncodingKey]types.EncodingInfo, len(entries))
	for _, e := range entries {
		infos[e.Key] = e
	}
	return &Registry{infos: infos}
}

// Lookup returns the EncodingInfo for key and whether it is registered.
func (r *Registry) Lookup(key types.EncodingKey) (types.EncodingInfo, bool) {
	info, ok := r.infos[key]
	return info, ok
}

// Default returns the registry's single default-flagged encoding, used
// when auto-detection is inconclusive (§3, §4.2 step 7).
func (r *Registry) Default() types.EncodingInfo {
	for _, info := range r.infos {
		if info.Default {
			return info
		}
	}
	// Unreachable for a correctly constructed registry: NewRegistry
	// always marks exactly one entry as default.
	return types.EncodingInfo{Key: types.SJIS, DisplayName: "Shift-JIS", Default: true}
}

// Resolve maps a possibly-empty detection result to a concrete,
// registered key: an empty key (the chardet "inconclusive" sentinel)
// falls back to the registry default.
func (r *Registry) Resolve(key types.EncodingKey) types.EncodingInfo {
	if key == "" {
		return r.Default()
	}
	if info, ok := r.infos[key]; ok {
		return info
	}
	return r.Default()
}
