package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/mimeforge/mimetree/message/header"
	"github.com/mimeforge/mimetree/source"
)

// trimEOL strips a trailing CR, LF, or CRLF from line.
func trimEOL(line []byte) []byte {
	line = bytes.TrimSuffix(line, []byte("\r\n"))
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	return line
}

// isBlankLine reports whether line, once its terminator is removed, has no
// content at all: the CRLF/LF/CR-only line that ends a header block.
func isBlankLine(line []byte) bool {
	return len(trimEOL(line)) == 0
}

// detectBreak guesses the line break style a line was terminated with, used
// to pick the Break a header block's fields will be split and rendered
// with. Defaults to CRLF if line carries no recognizable terminator (the
// final, unterminated line of a truncated input).
func detectBreak(line []byte) header.Break {
	switch {
	case bytes.HasSuffix(line, []byte("\r\n")):
		return header.CRLF
	case bytes.HasSuffix(line, []byte("\n")):
		return header.LF
	case bytes.HasSuffix(line, []byte("\r")):
		return header.CR
	default:
		return header.CRLF
	}
}

// trimBoundaryLine strips the line terminator and any tolerated trailing
// linear whitespace from a candidate boundary line, per the "leading and
// trailing whitespace on the boundary line is tolerated" rule.
func trimBoundaryLine(line []byte) string {
	t := trimEOL(line)
	t = bytes.TrimRight(t, " \t")
	return string(t)
}

func wrapIO(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrIoFailure, err)
}

// scanToBoundary advances src line by line until it finds a line matching
// "--boundary" or "--boundary--", without consuming that line, and returns
// the offset at which it starts. If isRoot is true there is no enclosing
// boundary to look for at all; the scan simply drains to EOF. If the
// enclosing boundary is never found, the returned offset is EOF and found
// is false, signaling truncation to the caller. maxLen caps the number of
// bytes scanned before giving up with ErrLargePart; <= 0 means unlimited.
func scanToBoundary(src *source.ByteSource, boundary string, isRoot bool, maxLen int) (int64, bool, error) {
	start := src.Tell()
	if isRoot {
		for {
			_, err := src.ReadLine()
			if errors.Is(err, io.EOF) {
				return src.Tell(), false, nil
			}
			if err != nil {
				return 0, false, wrapIO(err)
			}
			if maxLen > 0 && int(src.Tell()-start) > maxLen {
				return 0, false, ErrLargePart
			}
		}
	}

	sep := "--" + boundary
	term := sep + "--"
	for {
		lineStart := src.Tell()
		line, err := src.PeekLine()
		if errors.Is(err, io.EOF) {
			return lineStart, false, nil
		}
		if err != nil {
			return 0, false, wrapIO(err)
		}
		t := trimBoundaryLine(line)
		if t == sep || t == term {
			return lineStart, true, nil
		}
		if _, err := src.ReadLine(); err != nil && !errors.Is(err, io.EOF) {
			return 0, false, wrapIO(err)
		}
		if maxLen > 0 && int(src.Tell()-start) > maxLen {
			return 0, false, ErrLargePart
		}
	}
}

// scanPreamble reads from src's current position looking for the first line
// matching inner's separator or terminator, returning everything read
// before it as the preamble. If inner's boundary is never found before the
// enclosing boundary (or EOF, when isRootEnclosing) appears, found is false:
// the multipart part is malformed and has no children. The matched boundary
// line itself, or the enclosing boundary line that cut the search short, is
// never consumed; the cursor is left positioned at its start either way.
func scanPreamble(src *source.ByteSource, inner, enclosing string, isRootEnclosing bool, maxLen int) ([]byte, bool, error) {
	start := src.Tell()
	sep := "--" + inner
	term := sep + "--"

	var encSep, encTerm string
	if !isRootEnclosing {
		encSep = "--" + enclosing
		encTerm = encSep + "--"
	}

	for {
		lineStart := src.Tell()
		line, err := src.PeekLine()
		if errors.Is(err, io.EOF) {
			preamble, rerr := readAll(src, start, lineStart)
			return preamble, false, rerr
		}
		if err != nil {
			return nil, false, wrapIO(err)
		}

		t := trimBoundaryLine(line)
		if t == sep || t == term {
			preamble, rerr := readAll(src, start, lineStart)
			return preamble, true, rerr
		}
		if !isRootEnclosing && (t == encSep || t == encTerm) {
			preamble, rerr := readAll(src, start, lineStart)
			return preamble, false, rerr
		}

		if _, err := src.ReadLine(); err != nil && !errors.Is(err, io.EOF) {
			return nil, false, wrapIO(err)
		}
		if maxLen > 0 && int(src.Tell()-start) > maxLen {
			return nil, false, ErrLargePart
		}
	}
}

func readAll(src *source.ByteSource, from, to int64) ([]byte, error) {
	b, err := io.ReadAll(src.ReadRange(from, to))
	if err != nil {
		return nil, wrapIO(err)
	}
	return b, nil
}
