package core

// streaming.go provides the reader the loader parses the source file through.
//
// SourceReader wraps an io.Reader to handle common spreadsheet export issues:
//
//   - Removes a leading UTF-8 BOM (0xEF 0xBB 0xBF) written by Windows programs
//   - Replaces invalid UTF-8 bytes with '?'
//   - Counts the bytes consumed from the underlying reader

import (
	"bufio"
	"io"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// SourceReader is an io.Reader that yields BOM-free, valid UTF-8 text.
type SourceReader struct {
	br         *bufio.Reader
	counter    *countingReader
	bomChecked bool
	pending    []byte // encoded rune bytes that did not fit the last read
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// NewSourceReader wraps r for CSV parsing.
func NewSourceReader(r io.Reader) *SourceReader {
	counter := &countingReader{r: r}
	return &SourceReader{
		br:      bufio.NewReader(counter),
		counter: counter,
	}
}

// BytesRead returns the number of bytes consumed from the underlying reader.
func (s *SourceReader) BytesRead() int64 {
	return s.counter.n
}

// Read implements io.Reader. On the first read, it checks for and skips the BOM.
func (s *SourceReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if !s.bomChecked {
		s.bomChecked = true
		if head, err := s.br.Peek(len(utf8BOM)); err == nil &&
			head[0] == utf8BOM[0] && head[1] == utf8BOM[1] && head[2] == utf8BOM[2] {
			if _, err := s.br.Discard(len(utf8BOM)); err != nil {
				return 0, err
			}
		}
	}

	n := 0
	if len(s.pending) > 0 {
		n = copy(p, s.pending)
		s.pending = s.pending[n:]
		if n == len(p) {
			return n, nil
		}
	}

	var buf [utf8.UTFMax]byte
	for n < len(p) {
		r, size, err := s.br.ReadRune()
		if err != nil {
			if n > 0 && err == io.EOF {
				return n, nil
			}
			return n, err
		}

		if r == utf8.RuneError && size == 1 {
			p[n] = '?'
			n++
			continue
		}

		// The tail of a rune that does not fit is returned on the next call.
		w := utf8.EncodeRune(buf[:], r)
		c := copy(p[n:], buf[:w])
		n += c
		if c < w {
			s.pending = append(s.pending[:0], buf[c:w]...)
			break
		}
	}

	return n, nil
}
