// Package classify implements the binary classifier (C2): read a bounded
// prefix of a file and test it against a signature table, returning the
// name of the first signature that matches or "not binary".
package classify

import (
	"io"
	"os"

	gscanerrors "github.com/standardbeagle/gscan/internal/errors"
	"github.com/standardbeagle/gscan/internal/types"
)

// Classify reads up to table.MaxPrefix() bytes from path and tests them
// against every signature in the table. It returns the name of the
// first matching signature and true, or "" and false if none match.
//
// Bytes past end-of-file are treated as virtual zero, so a wildcard
// position always matches even on a short file, while a concrete
// non-zero pattern byte past EOF fails the match.
func Classify(path string, table types.SignatureTable) (string, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", false, gscanerrors.NewClassifyError(path, err)
	}
	defer f.Close()

	maxPrefix := table.MaxPrefix()
	if maxPrefix == 0 {
		return "", false, nil
	}

	buf := make([]byte, maxPrefix)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", false, gscanerrors.NewClassifyError(path, err)
	}

	for _, sig := range table.Signatures() {
		if matches(sig, buf, n) {
			return sig.Name, true, nil
		}
	}
	return "", false, nil
}

// matches tests one signature against the read prefix. bytesRead is how
// many real bytes were read into buf; positions at or past bytesRead are
// virtual zero.
func matches(sig types.Signature, buf []byte, bytesRead int) bool {
	for i, want := range sig.Bytes {
		if want == types.WildcardByte {
			continue
		}
		pos := sig.Offset + i
		var got int
		if pos < bytesRead {
			got = int(buf[pos])
		} else {
			got = 0
		}
		if got != want {
			return false
		}
	}
	return true
}
