// Package types holds the small, shared value types passed between the
// classifier, encoding detector, pattern compiler, scanner, and
// orchestrator. They are plain tagged structs rather than maps so that
// every field has a fixed name and type across the pipeline.
package types

import "regexp"

// WildcardByte marks a pattern position that matches any byte, including
// past end-of-file (where the virtual byte value is 0).
const WildcardByte = -1

// Signature is one entry of a SignatureTable: a magic-number pattern at a
// fixed offset. Bytes holds 0..255 for a concrete value or WildcardByte
// for a wildcard position.
type Signature struct {
	Name   string
	Bytes  []int
	Offset int
}

// SignatureTable is an immutable, shared-read-only set of signatures
// keyed by name, plus the precomputed maximum prefix length any
// signature in the table reads.
type SignatureTable struct {
	byName    map[string]Signature
	ordered   []Signature
	maxPrefix int
}

// NewSignatureTable builds a table from a set of signatures, computing
// MaxPrefix once. Later signatures with a duplicate name replace earlier
// ones, matching a map-literal's last-write-wins semantics.
func NewSignatureTable(sigs []Signature) SignatureTable {
	byName := make(map[string]Signature, len(sigs))
	ordered := make([]Signature, 0, len(sigs))
	maxPrefix := 0
	for _, s := range sigs {
		if _, exists := byName[s.Name]; !exists {
			ordered = append(ordered, s)
		} else {
			for i, o := range ordered {
				if o.Name == s.Name {
					ordered[i] = s
					break
				}
			}
		}
		byName[s.Name] = s
		if end := s.Offset + len(s.Bytes); end > maxPrefix {
			maxPrefix = end
		}
	}
	return SignatureTable{byName: byName, ordered: ordered, maxPrefix: maxPrefix}
}

// MaxPrefix is the number of bytes a classifier must read to test every
// signature in the table.
func (t SignatureTable) MaxPrefix() int { return t.maxPrefix }

// Signatures returns the table's entries in construction order. The
// order is otherwise unspecified by the classifier (first hit wins).
func (t SignatureTable) Signatures() []Signature { return t.ordered }

// Lookup returns a named signature and whether it exists.
func (t SignatureTable) Lookup(name string) (Signature, bool) {
	s, ok := t.byName[name]
	return s, ok
}

// Len reports the number of signatures in the table.
func (t SignatureTable) Len() int { return len(t.ordered) }

// EncodingKey is a closed enumeration of the character encodings the
// detector and registry understand.
type EncodingKey string

const (
	ASCII    EncodingKey = "ASCII"
	UTF8N    EncodingKey = "UTF8N"
	UTF8BOM  EncodingKey = "UTF8BOM"
	UTF16LE  EncodingKey = "UTF16LE"
	UTF16BE  EncodingKey = "UTF16BE"
	UTF32LE  EncodingKey = "UTF32LE"
	UTF32BE  EncodingKey = "UTF32BE"
	SJIS     EncodingKey = "SJIS"
	JIS      EncodingKey = "JIS"
	EUC      EncodingKey = "EUC"
	AutoCode EncodingKey = "AUTO"
)

// EncodingInfo is the registry record for one EncodingKey.
type EncodingInfo struct {
	Key         EncodingKey
	CodePage    int
	HasBOM      bool
	DisplayName string
	Default     bool
}

// ScanConfig is the immutable, per-run configuration broadcast
// read-only to every worker.
type ScanConfig struct {
	Regex             *regexp.Regexp
	TextOnly          bool
	Signatures        SignatureTable
	CodePage          EncodingKey // AutoCode or a specific key
	FirstMatchOnly    bool
	OutputMatchedPart bool
	Parallelism       int
	Quiet             bool
	Debug             bool
	StartTime         int64 // unix nanos; wall-clock origin for elapsed reporting
}

// MatchRecord is one formatted match emitted by the per-file scanner.
type MatchRecord struct {
	FilePath            string
	LineNumber          int // 1-based
	ColumnNumber        int // 1-based
	EncodingDisplayName string
	Payload             string
}

// Job is one unit of work dispatched to a worker: the input file and the
// two temp files the worker is allowed to write to.
type Job struct {
	InputPath      string
	TempOutputPath string
	TempLogPath    string
}
