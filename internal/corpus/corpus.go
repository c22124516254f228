// Package corpus implements the file-reading and tokenization concerns that
// spec.md's Out-of-scope section reserves for external collaborators. It
// does not import pkg/hattrie at all; the commands pass the keys it yields
// to the Cell/Find/Cursor operations.
package corpus

import (
	"io"
	"iter"
	"os"

	"github.com/ordmap/hattrie/pkg/untrust"
	"github.com/ordmap/hattrie/pkg/zc"
)

// Load reads path whole into memory. path == "" or "-" reads stdin instead.
// The returned bytes are the source buffer every zc.View yielded by Lines is
// relative to; callers must keep it alive for as long as they dereference
// views into it.
func Load(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// Lines tokenizes data into newline-delimited, zero-copy views, trimming
// every trailing '\r' from each line and skipping blank lines.
//
// data is treated as untrusted external input: every cursor advance goes
// through untrust.Reader's bounds-checked ReadByte rather than hand-rolled
// index arithmetic, so a truncated or malformed corpus file can never walk
// the tokenizer past the end of the buffer.
func Lines(data []byte) iter.Seq[zc.View] {
	return func(yield func(zc.View) bool) {
		if len(data) == 0 {
			return
		}

		src := &data[0]
		r := untrust.NewReader(untrust.Input(data))
		start := 0
		pos := 0

		emit := func(end int) bool {
			for end > start && data[end-1] == '\r' {
				end--
			}
			if end <= start {
				return true
			}
			return yield(zc.New(src, &data[start], end-start))
		}

		for !r.AtEnd() {
			b, err := r.ReadByte()
			if err != nil {
				break
			}
			pos++

			if b == '\n' {
				if !emit(pos - 1) {
					return
				}
				start = pos
			}
		}

		emit(len(data))
	}
}
