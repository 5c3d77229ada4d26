// Package magic builds and holds the signature table used by the binary
// classifier (C1). Signatures are ordinary byte/wildcard patterns at a
// fixed offset; the table precomputes the longest prefix any signature
// in it reads, so the classifier knows how much of a file to sample.
package magic

import "github.com/standardbeagle/gscan/internal/types"

// DefaultSignatures returns a small built-in table covering common
// binary formats, so gscan is useful without an external JSON
// signature file. Callers needing more formats load one via LoadJSON
// (see jsonimport.go) and merge it with this table.
func DefaultSignatures() []types.Signature {
	w := types.WildcardByte
	return []types.Signature{
		{Name: "ZIP", Offset: 0, Bytes: []int{0x50, 0x4B, 0x03, 0x04}},
		{Name: "GZIP", Offset: 0, Bytes: []int{0x1F, 0x8B}},
		{Name: "PNG", Offset: 0, Bytes: []int{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
		{Name: "PDF", Offset: 0, Bytes: []int{0x25, 0x50, 0x44, 0x46}},
		{Name: "ELF", Offset: 0, Bytes: []int{0x7F, 0x45, 0x4C, 0x46}},
		{Name: "JPEG", Offset: 0, Bytes: []int{0xFF, 0xD8, 0xFF}},
		{Name: "CLASS", Offset: 0, Bytes: []int{0xCA, 0xFE, 0xBA, 0xBE}},
		// TAR: "ustar" magic sits at offset 257, exercising the table's
		// ability to recompute MaxPrefix from a single deep signature.
		{Name: "TAR", Offset: 257, Bytes: []int{0x75, 0x73, 0x74, 0x61, 0x72}},
		// Example wildcard usage: matches any RIFF container
		// (WAV/AVI/WEBP all share the RIFF header). The four bytes after
		// "RIFF" are the chunk size, which this entry wildcards; the
		// form-type bytes that follow them are not checked.
		{Name: "RIFF", Offset: 0, Bytes: []int{0x52, 0x49, 0x46, 0x46, w, w, w, w}},
	}
}

// NewDefaultTable builds a SignatureTable from DefaultSignatures.
func NewDefaultTable() types.SignatureTable {
	return types.NewSignatureTable(DefaultSignatures())
}
