// Package content classifies matched files and renders their text for the
// report: strip rules, optional compaction and line normalisation.
package content

import (
	"bytes"
	"io"
	"os"
)

// sniffSize is how much of a file IsText inspects.
const sniffSize = 1024

// IsText reports whether the file at path looks like text: it is empty or
// its first 1024 bytes contain no NUL byte. Files that cannot be opened are
// not text.
//
// This is a heuristic. UTF-16 text is reported as binary and binary files
// without a NUL in their first kilobyte are reported as text.
func IsText(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	buf := make([]byte, sniffSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false
	}
	return IsTextBytes(buf[:n])
}

// IsTextBytes applies the IsText heuristic to the first bytes of a file.
func IsTextBytes(head []byte) bool {
	if len(head) > sniffSize {
		head = head[:sniffSize]
	}
	return bytes.IndexByte(head, 0) < 0
}
