package parser

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/mimeforge/mimetree/message/header"
	"github.com/mimeforge/mimetree/message/header/field"
	"github.com/mimeforge/mimetree/part"
	"github.com/mimeforge/mimetree/source"
)

// core holds the state shared by every Proxy bound to one parse: the
// ByteSource every Proxy reads through, and the options that parameterize
// header/part size limits and recursion depth. It has no exported surface;
// callers only ever see Parse and the Part tree it returns.
type core struct {
	src  *source.ByteSource
	opts options
}

// Parse reads a MIME or non-MIME message from r and returns its root part:
// a *part.Message if the input carries MIME headers (Content-type or
// Mime-version), or a *part.NonMimePart otherwise. Traversing the returned
// tree drives further reads from r on demand, per the lazy streaming
// contract described for ParsedPartChildrenContainer. For a MIME root, Parse
// itself reads only as far as the root's own header block; for a non-MIME
// root it also scans the body to EOF to fix the body's content range.
func Parse(ctx context.Context, r io.Reader, opts ...ParseOption) (part.Part, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := &core{src: source.NewWithChunkSize(r, o.chunkSize), opts: o}
	return c.buildPart(0, 0, "", true)
}

// readHeaderBlock reads lines from src, starting at the current cursor,
// until the blank line terminating a header block (or EOF, for a
// TruncatedMessage). It returns the accumulated raw bytes (not including
// the blank line itself) and the line break detected from the first line
// read, defaulting to CRLF if no line could be read at all.
func (c *core) readHeaderBlock(src *source.ByteSource) ([]byte, header.Break, error) {
	var buf bytes.Buffer
	var lb header.Break

	for {
		line, err := src.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, "", wrapIO(err)
		}

		if lb == "" {
			lb = detectBreak(line)
		}
		if isBlankLine(line) {
			break
		}

		buf.Write(line)
		if c.opts.maxHeaderLen > 0 && buf.Len() > c.opts.maxHeaderLen {
			return nil, "", ErrLargeHeader
		}
	}

	if lb == "" {
		lb = header.CRLF
	}
	return buf.Bytes(), lb, nil
}

// buildPart constructs the part starting at the source's current cursor
// (which must already be positioned at its header start), classifies it,
// and binds a fresh proxy/LazyChildren pair to it (a uuProxy for a non-MIME
// root). Leaves get one too: a leaf's proxy is what locates its content
// end. enclosing is the boundary string that terminates this
// part's region (ignored when isRootEnclosing is true, meaning "to EOF").
func (c *core) buildPart(headerStart int64, depth int, enclosing string, isRootEnclosing bool) (part.Part, error) {
	raw, lb, err := c.readHeaderBlock(c.src)
	if err != nil {
		return nil, err
	}

	h, perr := header.Parse(raw, lb)
	if perr != nil {
		var badStart *field.BadStartError
		if !errors.As(perr, &badStart) {
			return nil, perr
		}
		// MalformedHeader: recovered silently, never surfaced, per the
		// error propagation policy. The skipped bytes are not lost; they
		// were already attached by header.Parse to the sentinel field
		// named "", retrievable via h.Get("").
	}

	contentStart := c.src.Tell()
	sc := part.NewStreamContainer(c.src, headerStart, contentStart, contentStart)

	cls := classify(h, depth, &c.opts)

	px := &proxy{
		c:                 c,
		depth:             depth,
		kind:              cls.kind,
		innerBoundary:     cls.innerBoundary,
		enclosingBoundary: enclosing,
		isRootEnclosing:   isRootEnclosing,
	}

	var p part.Part
	switch {
	case depth == 0 && cls.isNonMime:
		np := part.NewNonMimePart(h, sc)
		end, _, err := scanToBoundary(c.src, "", true, c.opts.maxPartLen)
		if err != nil {
			return nil, err
		}
		sc.SetContentEnd(end)
		np.SetChildren(part.NewLazyChildren(np, newUUProxy(c.src, sc)))
		p = np

	case cls.kind == kindMessage:
		m := part.NewMessage(h, sc)
		m.SetEmbedsMessage(true)
		m.SetChildren(part.NewLazyChildren(m, px))
		px.bind(m)
		p = m

	case depth == 0:
		m := part.NewMessage(h, sc)
		if cls.kind == kindMultipart {
			m.SetMultipart(true)
			m.SetBoundary(cls.innerBoundary)
		}
		m.SetChildren(part.NewLazyChildren(m, px))
		px.bind(m)
		if cls.malformedBoundary {
			m.SetMalformedBoundary()
		}
		p = m

	default:
		mp := part.NewMimePart(h, sc)
		if cls.kind == kindMultipart {
			mp.SetMultipart(true)
			mp.SetBoundary(cls.innerBoundary)
		}
		mp.SetChildren(part.NewLazyChildren(mp, px))
		px.bind(mp)
		if cls.malformedBoundary {
			mp.SetMalformedBoundary()
		}
		p = mp
	}

	return p, nil
}
