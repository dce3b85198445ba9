// File: pkg/carray/transcribe.go
package carray

import (
	"errors"
	"fmt"
	"io"
)

// ChunkSize is the size of the reads used while transcribing an input.
const ChunkSize = 8192

const hexDigits = "0123456789abcdef"

// Transcribe reads r to EOF and writes the body of a C array literal to w:
// a newline and indent, then one 0xhh token per byte separated by ", ".
// It returns the number of bytes transcribed.
func Transcribe(r io.Reader, w io.Writer) (int64, error) {
	if _, err := io.WriteString(w, "\n  "); err != nil {
		return 0, fmt.Errorf("failed to write array body: %w", err)
	}

	buf := make([]byte, ChunkSize)
	out := make([]byte, 0, ChunkSize*6)
	var n int64
	for {
		read, rerr := r.Read(buf)
		if read > 0 {
			out = out[:0]
			for _, b := range buf[:read] {
				if n > 0 {
					out = append(out, ',', ' ')
				}
				out = append(out, '0', 'x', hexDigits[b>>4], hexDigits[b&0x0f])
				n++
			}
			if _, err := w.Write(out); err != nil {
				return n, fmt.Errorf("failed to write array body: %w", err)
			}
		}
		if errors.Is(rerr, io.EOF) {
			return n, nil
		}
		if rerr != nil {
			return n, fmt.Errorf("failed to read input: %w", rerr)
		}
	}
}
