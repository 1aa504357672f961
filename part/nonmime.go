package part

import (
	"io"

	"github.com/mimeforge/mimetree/message/header"
)

// NonMimePart is a part with ordinary headers (From, To, Subject, and so
// on) but no Content-type/Mime-version, the classic pre-MIME message
// shape. Its content is a single opaque body; uuencode stanzas discovered
// within that body surface as UUEncodedPart children purely as a read-side
// index into the same bytes, not as separately-owned storage; see
// Children's doc comment.
type NonMimePart struct {
	base

	children ChildrenContainer
}

// NewNonMimePart returns a NonMimePart with no uuencoded children yet
// attached.
func NewNonMimePart(h *header.Header, stream *StreamContainer) *NonMimePart {
	p := &NonMimePart{base: base{headers: h, stream: stream}}
	p.children = NewEagerChildren(p)
	return p
}

func (p *NonMimePart) IsMultipart() bool { return false }

// Children returns the uuencode stanzas discovered within this part's
// body, if any, at parse time. They are a navigational view: removing one
// does not change what WriteTo emits unless the caller also calls
// SetContentStream on this part directly, replacing the whole body.
// Structural uuencode mutation with byte-accurate re-stitching of the
// surrounding plain text was judged out of scope for a feature with no
// precedent in the part this package is grounded on.
func (p *NonMimePart) Children() ChildrenContainer { return p.children }

// SetChildren installs the uuencode stanzas found by the parser's scan of
// this part's body.
func (p *NonMimePart) SetChildren(c ChildrenContainer) { p.children = c }

func (p *NonMimePart) resolveContent() error { return nil }
func (p *NonMimePart) drainChildren() error  { return nil }

// WriteTo re-emits the part's headers and its content verbatim (or, if
// SetContentStream replaced the content, the override re-encoded). Any
// uuencode children discovered during parsing are not separately
// re-rendered; they describe stanzas already present in the content being
// written.
func (p *NonMimePart) WriteTo(w io.Writer) (int64, error) {
	var total int64

	hn, err := w.Write(p.headers.Bytes())
	total += int64(hn)
	if err != nil {
		return total, err
	}

	cn, err := p.stream.WriteContentTo(p.headers, w)
	total += cn
	return total, err
}
