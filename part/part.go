package part

import (
	"errors"
	"io"

	"github.com/mimeforge/mimetree/message/header"
)

// ErrInvalidMutation is returned when a caller attempts to add or remove
// children of a part that is currently mid-parse and cannot be drained,
// for example because an earlier read from the underlying source failed.
var ErrInvalidMutation = errors.New("part: mutation attempted on a part that cannot be drained")

// ErrMixedContentState is returned by SetContentStream when it is asked to
// override content on a part whose content has already been partially
// overridden in a way that would leave the stream container referencing
// both the source and an override simultaneously.
var ErrMixedContentState = errors.New("part: content stream is already in a mixed override state")

// Filter is a predicate over parts used during traversal. A nil Filter
// matches every part.
type Filter func(Part) bool

// And returns a Filter that matches only parts matching both f and g.
func (f Filter) And(g Filter) Filter {
	if f == nil {
		return g
	}
	if g == nil {
		return f
	}
	return func(p Part) bool { return f(p) && g(p) }
}

// Or returns a Filter that matches parts matching either f or g.
func (f Filter) Or(g Filter) Filter {
	if f == nil || g == nil {
		return nil
	}
	return func(p Part) bool { return f(p) || g(p) }
}

func matches(f Filter, p Part) bool {
	return f == nil || f(p)
}

// Part is the tree node type. It is a closed sum realized as an interface
// implemented only by *MimePart, *NonMimePart, *UUEncodedPart, and
// *Message, per the "runtime-tagged part variants" design note: callers
// that need variant-specific behavior are expected to type-switch rather
// than grow the interface.
type Part interface {
	io.WriterTo

	// Parent returns the enclosing part, or nil if p is the root of its
	// tree. The reference is non-owning and is never consulted to decide
	// when a part is destroyed.
	Parent() Part

	// Headers returns the part's header container. It is never nil, though
	// it may be nearly empty (a UUEncodedPart's holds only a synthesized
	// Content-disposition carrying its filename).
	Headers() *header.Header

	// Children returns the part's children container. It is never nil for
	// a part capable of having children (MimePart, NonMimePart, Message);
	// it returns an empty EagerChildren for a part incapable of having any
	// (UUEncodedPart).
	Children() ChildrenContainer

	// IsMultipart reports whether this part's content is understood as a
	// sequence of child parts rather than a single opaque body.
	IsMultipart() bool

	// ContentReader returns a reader over the part's content, decoded per
	// the pipeline described on StreamContainer: transfer decoding, then
	// (if charset is non-empty and the part is text) charset conversion.
	// It must not be called when IsMultipart is true.
	ContentReader(charset string) (io.Reader, error)

	// SetContentStream overrides the part's content range with r, read
	// eagerly into memory. Subsequent ContentReader/WriteTo calls return
	// these bytes rather than the original source range.
	SetContentStream(r io.Reader) error

	// OriginalReader returns a reader over the exact original bytes of the
	// part, including its header block and the blank line separator, but
	// excluding any override installed by SetContentStream.
	OriginalReader() (io.Reader, error)

	// Truncated reports whether parsing of this part ended at EOF before
	// an expected terminator was found.
	Truncated() bool

	// MalformedBoundary reports whether this part is a multipart part
	// whose declared boundary was never observed in its content.
	MalformedBoundary() bool

	// SetTruncated flags this part as having been cut off by EOF before
	// its expected terminator. Called by the parser, never by ordinary
	// mutation code.
	SetTruncated()

	// SetMalformedBoundary flags this part as a multipart part whose
	// declared boundary was never observed. Called by the parser.
	SetMalformedBoundary()

	// StreamContainer exposes the part's underlying byte ranges so the
	// parser can finalize the content end offset once it is known, and so
	// the writer can fall back to the raw range for an unmutated part.
	StreamContainer() *StreamContainer

	setParent(Part)
	resolveContent() error
	drainChildren() error
}

// base is embedded by every concrete Part implementation. It holds the
// attributes common to every variant: the non-owning parent reference, the
// header container, and the stream container tracking byte ranges.
type base struct {
	parent            Part
	headers           *header.Header
	stream            *StreamContainer
	truncated         bool
	malformedBoundary bool
}

func (b *base) Parent() Part                    { return b.parent }
func (b *base) setParent(p Part)                { b.parent = p }
func (b *base) Headers() *header.Header         { return b.headers }
func (b *base) Truncated() bool                 { return b.truncated }
func (b *base) MalformedBoundary() bool         { return b.malformedBoundary }
func (b *base) SetTruncated()                   { b.truncated = true }
func (b *base) SetMalformedBoundary()           { b.malformedBoundary = true }
func (b *base) StreamContainer() *StreamContainer { return b.stream }

func (b *base) ContentReader(charset string) (io.Reader, error) {
	return b.stream.ContentReader(b.headers, charset)
}

func (b *base) SetContentStream(r io.Reader) error {
	return b.stream.SetContentStream(r)
}

func (b *base) OriginalReader() (io.Reader, error) {
	return b.stream.OriginalReader()
}
