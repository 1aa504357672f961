// Package source provides ByteSource, the seekable buffered reader the
// parser reads a message through. It reads the underlying io.Reader in
// chunks on demand, retains everything read so far so that any previously
// observed offset can be seeked back to, and exposes line-oriented
// primitives so the header reader and boundary scanner never need to see
// the underlying io.Reader directly.
//
// Lines end at CR, LF, or CRLF; ReadLine and PeekLine return the line with
// its terminator attached, mirroring how the message itself is rendered so
// that re-emission can reproduce it byte for byte.
package source

import (
	"errors"
	"io"
)

// ErrNegativeOffset is returned by Seek when given an offset before the
// start of the source.
var ErrNegativeOffset = errors.New("source: negative seek offset")

// chunkSize is how many bytes are pulled from the underlying io.Reader at a
// time when the buffer needs to grow.
const chunkSize = 16_384

// ByteSource is a buffered, seekable view over an io.Reader. It never
// discards bytes it has read, which is what makes Seek to a previously
// observed offset possible; bytes beyond the read cursor are pulled from
// the underlying reader lazily, one chunk at a time, so a source is never
// forced to buffer more of the message than callers have actually visited.
type ByteSource struct {
	r         io.Reader
	buf       []byte
	pos       int64
	eof       bool
	rerr      error
	chunkSize int
}

// New wraps r in a ByteSource, positioned at offset 0, pulling chunkSize
// bytes from r at a time.
func New(r io.Reader) *ByteSource {
	return NewWithChunkSize(r, chunkSize)
}

// NewWithChunkSize behaves like New but reads n bytes from r at a time
// instead of the package default. A non-positive n falls back to the
// default.
func NewWithChunkSize(r io.Reader, n int) *ByteSource {
	if n <= 0 {
		n = chunkSize
	}
	return &ByteSource{r: r, buf: make([]byte, 0, n), chunkSize: n}
}

// Tell returns the current read cursor offset.
func (s *ByteSource) Tell() int64 {
	return s.pos
}

// Len returns the number of bytes read and buffered from the underlying
// reader so far. It grows as the source is read further; it is not the
// total length of the message unless the source has been fully drained.
func (s *ByteSource) Len() int64 {
	return int64(len(s.buf))
}

// Seek moves the read cursor to offset, which must not be negative. Seeking
// past the end of what has been buffered so far is allowed; it will cause
// the next read to pull in and skip over the intervening bytes.
func (s *ByteSource) Seek(offset int64) error {
	if offset < 0 {
		return ErrNegativeOffset
	}
	s.pos = offset
	return nil
}

// fill ensures at least n bytes are buffered past pos, reading further
// chunks from the underlying reader as needed. It returns io.EOF (and still
// fills as much as is available) once the underlying reader is exhausted.
func (s *ByteSource) fill(n int64) error {
	want := s.pos + n
	for int64(len(s.buf)) < want {
		if s.eof {
			if s.rerr != nil && !errors.Is(s.rerr, io.EOF) {
				return s.rerr
			}
			return io.EOF
		}

		chunk := make([]byte, s.chunkSize)
		rn, err := s.r.Read(chunk)
		if rn > 0 {
			s.buf = append(s.buf, chunk[:rn]...)
		}
		if err != nil {
			s.eof = true
			s.rerr = err
			if !errors.Is(err, io.EOF) {
				return err
			}
		}
	}
	return nil
}

// ReadLine reads one line, starting at the current cursor, and advances the
// cursor past it. The returned slice includes the line terminator (if any)
// and is only valid until the source reads more data; callers that need to
// retain it should copy it. Returns io.EOF with a nil slice once the cursor
// is at the end of the input and no characters remain.
func (s *ByteSource) ReadLine() ([]byte, error) {
	line, n, err := s.scanLine(s.pos)
	if err != nil {
		return nil, err
	}
	s.pos += int64(n)
	return line, nil
}

// PeekLine behaves like ReadLine but does not advance the cursor.
func (s *ByteSource) PeekLine() ([]byte, error) {
	line, _, err := s.scanLine(s.pos)
	if err != nil {
		return nil, err
	}
	return line, nil
}

// scanLine reads a single line starting at from, returning the line
// (including its terminator) and the number of bytes it spans.
func (s *ByteSource) scanLine(from int64) ([]byte, int, error) {
	i := from
	for {
		if err := s.fill(i - s.pos + 1); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, 0, err
		}
		if i >= int64(len(s.buf)) {
			break
		}

		c := s.buf[i]
		if c == '\n' {
			return s.buf[from : i+1], int(i + 1 - from), nil
		}
		if c == '\r' {
			// check for a following \n to treat CRLF as one terminator
			if err := s.fill(i - s.pos + 2); err != nil && !errors.Is(err, io.EOF) {
				return nil, 0, err
			}
			if int64(len(s.buf)) > i+1 && s.buf[i+1] == '\n' {
				return s.buf[from : i+2], int(i + 2 - from), nil
			}
			return s.buf[from : i+1], int(i + 1 - from), nil
		}
		i++
	}

	if i <= from {
		return nil, 0, io.EOF
	}
	return s.buf[from:i], int(i - from), nil
}

// ReadRange returns an io.Reader over the bytes in [from, to), filling the
// buffer as needed to cover the range. to may be -1 to mean "to EOF".
func (s *ByteSource) ReadRange(from, to int64) io.Reader {
	if to < 0 {
		_ = s.fill(1 << 40) // drain to EOF; fill stops growing once rerr is EOF
		to = int64(len(s.buf))
	} else if err := s.fillTo(to); err != nil && !errors.Is(err, io.EOF) {
		return errReader{err}
	}
	if from < 0 {
		from = 0
	}
	if from > int64(len(s.buf)) {
		from = int64(len(s.buf))
	}
	if to > int64(len(s.buf)) {
		to = int64(len(s.buf))
	}
	if to < from {
		to = from
	}
	return &sliceReader{buf: s.buf[from:to]}
}

// fillTo ensures the buffer contains bytes up to absolute offset to.
func (s *ByteSource) fillTo(to int64) error {
	n := to - int64(len(s.buf))
	if n <= 0 {
		return nil
	}
	saved := s.pos
	s.pos = int64(len(s.buf))
	err := s.fill(n)
	s.pos = saved
	return err
}

// AtEOF reports whether the underlying reader has been fully consumed and
// the cursor has reached the end of the buffered bytes.
func (s *ByteSource) AtEOF() bool {
	return s.eof && s.pos >= int64(len(s.buf))
}

type sliceReader struct {
	buf []byte
	pos int
}

func (r *sliceReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.buf) {
		return 0, io.EOF
	}
	n := copy(p, r.buf[r.pos:])
	r.pos += n
	return n, nil
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }
