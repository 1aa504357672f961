package parser

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/mimeforge/mimetree/part"
	"github.com/mimeforge/mimetree/source"
)

// uuProxy is the part.Expander that scans a NonMimePart's already-bounded
// content range for "begin mode filename" ... "end" stanzas, surfacing each
// as a UUEncodedPart. The text between stanzas, and any leading text before
// the first one, is left out of the tree entirely: it is still present in
// the NonMimePart's own content bytes, just not given a node of its own.
type uuProxy struct {
	src    *source.ByteSource
	end    int64
	cursor int64
	done   bool
}

func newUUProxy(src *source.ByteSource, sc *part.StreamContainer) *uuProxy {
	return &uuProxy{src: src, end: sc.ContentEnd(), cursor: sc.ContentStart()}
}

// ResolveContent is a no-op: the NonMimePart's own content range is already
// fully known by the time a uuProxy is constructed (see core.buildPart).
func (px *uuProxy) ResolveContent() error { return nil }

func (px *uuProxy) ReadNextChild(lc *part.LazyChildren) (bool, error) {
	if px.done {
		return false, nil
	}

	if err := px.src.Seek(px.cursor); err != nil {
		return false, err
	}

	mode, filename, dataStart, found, err := px.findBegin()
	if err != nil {
		return false, err
	}
	if !found {
		px.done = true
		return false, nil
	}

	dataEnd, terminated, err := px.findEnd(dataStart)
	if err != nil {
		return false, err
	}

	stream := part.NewStreamContainer(px.src, dataStart, dataStart, dataEnd)
	child := part.NewUUEncodedPart(filename, mode, stream)
	if !terminated {
		child.SetTruncated()
	}
	lc.AddParsedChild(child)

	px.cursor = px.src.Tell()
	if px.cursor >= px.end {
		px.done = true
	}
	return true, nil
}

// findBegin scans forward from the current cursor, bounded by px.end, for a
// line of the form "begin MODE FILENAME", returning the offset just past
// that line (where the stanza's data lines start).
func (px *uuProxy) findBegin() (mode, filename string, dataStart int64, found bool, err error) {
	for px.src.Tell() < px.end {
		line, rerr := px.src.ReadLine()
		if errors.Is(rerr, io.EOF) {
			return "", "", 0, false, nil
		}
		if rerr != nil {
			return "", "", 0, false, wrapIO(rerr)
		}

		if m, f, ok := parseBeginLine(line); ok {
			return m, f, px.src.Tell(), true, nil
		}
	}
	return "", "", 0, false, nil
}

// findEnd scans forward from dataStart, bounded by px.end, for a line that
// is exactly "end", returning the offset at which that line starts (so the
// stanza's data does not include it) and leaving the cursor positioned just
// past it. If px.end or EOF is reached first, the stanza is truncated:
// dataEnd is wherever the scan stopped, and terminated is false.
func (px *uuProxy) findEnd(dataStart int64) (dataEnd int64, terminated bool, err error) {
	for px.src.Tell() < px.end {
		lineStart := px.src.Tell()
		line, rerr := px.src.ReadLine()
		if errors.Is(rerr, io.EOF) {
			return lineStart, false, nil
		}
		if rerr != nil {
			return 0, false, wrapIO(rerr)
		}
		if string(trimEOL(line)) == "end" {
			return lineStart, true, nil
		}
	}
	return px.end, false, nil
}

// parseBeginLine reports whether line (including its terminator) is a
// uuencode "begin" marker, and if so extracts its mode and filename fields.
func parseBeginLine(line []byte) (mode, filename string, ok bool) {
	s := string(trimEOL(line))
	if !strings.HasPrefix(s, "begin ") {
		return "", "", false
	}
	rest := strings.TrimSpace(s[len("begin "):])
	parts := strings.SplitN(rest, " ", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	mode, filename = parts[0], strings.TrimSpace(parts[1])
	if filename == "" {
		return "", "", false
	}
	if _, err := strconv.ParseUint(mode, 8, 32); err != nil {
		return "", "", false
	}
	return mode, filename, true
}
