package part

import (
	"fmt"
	"io"

	"github.com/mimeforge/mimetree/message/header"
)

// crlf is the line break WriteTo uses for the boundary lines of a multipart
// part, whatever line break the input used. No other output is normalized:
// the header block and the blank line after it use the header's own Break
// (detected from the input when parsed), and content is copied as it was
// read. Header fields that are unmodified since parsing reproduce their
// original raw bytes verbatim (see field.Field.Raw).
const crlf = "\r\n"

// MimePart is a part with MIME headers: either a leaf with content, or a
// multipart container with children separated by a boundary.
type MimePart struct {
	base

	boundary  string
	multipart bool
	children  ChildrenContainer

	// embedsMessage marks a part whose Content-type is message/rfc822: its
	// content is not boundary-delimited at all, just the header/body of a
	// single nested message written back verbatim via that child's own
	// WriteTo, so that mutations made to the nested message are reflected
	// without this part needing an override stream of its own.
	embedsMessage bool

	// preamble and epilogue hold the opaque bytes before the first
	// boundary and after the terminating boundary of a multipart part.
	// nil means none was observed at all (e.g. a malformed boundary, or a
	// leaf part); a non-nil empty slice means a zero-length one was seen.
	preamble []byte
	epilogue []byte
}

// NewMimePart returns a leaf MimePart (IsMultipart false) with an empty
// children container.
func NewMimePart(h *header.Header, stream *StreamContainer) *MimePart {
	p := &MimePart{base: base{headers: h, stream: stream}}
	p.children = NewEagerChildren(p)
	return p
}

func (p *MimePart) IsMultipart() bool               { return p.multipart }
func (p *MimePart) SetMultipart(b bool)             { p.multipart = b }
func (p *MimePart) Children() ChildrenContainer     { return p.children }
func (p *MimePart) SetChildren(c ChildrenContainer) { p.children = c }
func (p *MimePart) Boundary() string                { return p.boundary }
func (p *MimePart) SetBoundary(b string)             { p.boundary = b }
func (p *MimePart) Preamble() []byte                { return p.preamble }
func (p *MimePart) Epilogue() []byte                { return p.epilogue }
func (p *MimePart) SetPreamble(b []byte)            { p.preamble = b }
func (p *MimePart) SetEpilogue(b []byte)            { p.epilogue = b }

// EmbedsMessage reports whether this part is a message/rfc822 container:
// its content is exactly one nested message, written back via that child's
// own WriteTo rather than via this part's own stream range.
func (p *MimePart) EmbedsMessage() bool      { return p.embedsMessage }
func (p *MimePart) SetEmbedsMessage(b bool)  { p.embedsMessage = b }

// AddChild inserts child as a direct child of p, at position, or appended
// if position is negative.
func (p *MimePart) AddChild(child Part, position int) error {
	return p.children.AddChild(child, position)
}

// RemovePart removes the first occurrence of child found in p's subtree.
func (p *MimePart) RemovePart(child Part) (bool, error) {
	return p.children.RemovePart(child)
}

func (p *MimePart) resolveContent() error {
	if lc, ok := p.children.(*LazyChildren); ok {
		return lc.expander.ResolveContent()
	}
	return nil
}

func (p *MimePart) drainChildren() error {
	return p.children.Drain()
}

// ContentReader returns the part's decoded content, first letting the
// parser locate the end of that content if it has not done so yet.
func (p *MimePart) ContentReader(charset string) (io.Reader, error) {
	if err := p.resolveContent(); err != nil {
		return nil, err
	}
	if err := p.drainChildren(); err != nil {
		return nil, err
	}
	return p.base.ContentReader(charset)
}

// WriteTo re-emits the part: its headers (preserving unmutated fields'
// original bytes, per field.Field.Raw), the header/body blank line, and
// then either its content (the original range verbatim, or a re-encoded
// override) or, for a multipart part, its preamble, each child separated
// by a boundary line, the terminating boundary, and its epilogue.
func (p *MimePart) WriteTo(w io.Writer) (int64, error) {
	var total int64

	if err := p.resolveContent(); err != nil {
		return total, err
	}
	if err := p.drainChildren(); err != nil {
		return total, err
	}

	hn, err := w.Write(p.headers.Bytes())
	total += int64(hn)
	if err != nil {
		return total, err
	}

	if p.embedsMessage {
		ch, ok, err := p.children.DirectChildAt(0)
		if err != nil {
			return total, err
		}
		if !ok {
			return total, nil
		}
		cn, err := ch.WriteTo(w)
		total += cn
		return total, err
	}

	if !p.multipart {
		cn, err := p.stream.WriteContentTo(p.headers, w)
		total += cn
		return total, err
	}

	if p.preamble != nil {
		pn, err := w.Write(p.preamble)
		total += int64(pn)
		if err != nil {
			return total, err
		}
	}

	sep := []byte(fmt.Sprintf("--%s%s", p.boundary, crlf))
	term := []byte(fmt.Sprintf("--%s--%s", p.boundary, crlf))

	// A child's drained content already runs up to (but not past) the
	// byte where the next boundary line begins: scanToBoundary stops a
	// child's range at the start of that line, having already consumed
	// the child's own trailing line break. No separator bytes of our own
	// belong between a child and the sep/term that follows it.
	for i := 0; ; i++ {
		ch, ok, err := p.children.DirectChildAt(i)
		if err != nil {
			return total, err
		}
		if !ok {
			break
		}

		sn, err := w.Write(sep)
		total += int64(sn)
		if err != nil {
			return total, err
		}

		cn, err := ch.WriteTo(w)
		total += cn
		if err != nil {
			return total, err
		}
	}

	// The terminator line's own trailing CRLF is discarded at parse time
	// (readMultipartChild consumes it without recording it), so it must
	// always be reconstructed here. Write it whenever a terminator was
	// actually observed in the source (epilogue non-nil, even if empty)
	// or when the part was built programmatically via Buffer, which never
	// records a parsed epilogue at all. A part truncated before its
	// terminator was found gets neither, so nothing is fabricated for it.
	if p.multipart && (p.stream.IsOverridden() || p.epilogue != nil) {
		tn, err := w.Write(term)
		total += int64(tn)
		if err != nil {
			return total, err
		}
		en, err := w.Write(p.epilogue)
		total += int64(en)
		if err != nil {
			return total, err
		}
	}

	return total, nil
}
