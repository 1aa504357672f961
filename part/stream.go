package part

import (
	"bytes"
	"io"

	"github.com/mimeforge/mimetree/charset"
	"github.com/mimeforge/mimetree/message/header"
	"github.com/mimeforge/mimetree/message/transfer"
	"github.com/mimeforge/mimetree/source"
)

// StreamContainer holds the byte ranges a part's original bytes occupy in
// the underlying source: headerStart..contentStart is the header block plus
// its blank-line separator, and contentStart..contentEnd is the part's
// content. Together they also give the "full" range (headerStart..contentEnd)
// used by OriginalReader. Once SetContentStream has been called, the
// content range is no longer consulted; override holds the replacement
// bytes instead. Mixing is not permitted: a StreamContainer is either
// entirely sourced from the ByteSource or has its content entirely
// overridden, never both.
type StreamContainer struct {
	src *source.ByteSource

	headerStart  int64
	contentStart int64
	contentEnd   int64

	hasOverride bool
	override    []byte
}

// NewStreamContainer builds a StreamContainer over a range of src.
func NewStreamContainer(src *source.ByteSource, headerStart, contentStart, contentEnd int64) *StreamContainer {
	return &StreamContainer{
		src:          src,
		headerStart:  headerStart,
		contentStart: contentStart,
		contentEnd:   contentEnd,
	}
}

// NewOverrideStreamContainer builds a StreamContainer with no backing
// source, entirely made of programmatically supplied content. Used by
// Buffer when constructing a new message from scratch.
func NewOverrideStreamContainer(content []byte) *StreamContainer {
	return &StreamContainer{hasOverride: true, override: content}
}

// IsOverridden reports whether SetContentStream has replaced the original
// content range.
func (sc *StreamContainer) IsOverridden() bool {
	return sc.hasOverride
}

// ContentStart and ContentEnd expose the original content range's bounds,
// primarily so the parser's sibling-boundary bookkeeping can compare
// offsets. They are meaningless once the container has been overridden.
func (sc *StreamContainer) ContentStart() int64 { return sc.contentStart }
func (sc *StreamContainer) ContentEnd() int64   { return sc.contentEnd }

// HeaderStart returns the offset of the first byte of the part's header
// block within the source.
func (sc *StreamContainer) HeaderStart() int64 { return sc.headerStart }

// SetContentEnd finalizes the content range's end offset once the parser
// has located the part's terminating boundary or reached EOF; the value is
// unknown at construction time for anything but a part with pre-known
// bounds.
func (sc *StreamContainer) SetContentEnd(end int64) { sc.contentEnd = end }

// Source returns the ByteSource this container reads from, or nil if it
// holds only an override.
func (sc *StreamContainer) Source() *source.ByteSource { return sc.src }

// ContentReader returns the part's content, decoded according to the
// Content-transfer-encoding header via package transfer, and then, if cs is
// non-empty and the part's Content-type is textual, converted out of cs
// into UTF-8 via package charset. Decoders are applied in that order,
// matching the pipeline documented on the core spec for part content
// streams.
//
// Once SetContentStream has installed an override, the override bytes are
// already in decoded form by the mutation contract (getContentStream after
// setContentStream(s) yields s back unchanged), so the transfer-decoding
// step is skipped for them; WriteTo re-applies the encoding on the way out
// instead.
func (sc *StreamContainer) ContentReader(h *header.Header, cs string) (io.Reader, error) {
	var r io.Reader
	if sc.hasOverride {
		r = bytes.NewReader(sc.override)
	} else {
		r = transfer.ApplyTransferDecoding(h, sc.src.ReadRange(sc.contentStart, sc.contentEnd))
	}

	if cs == "" {
		return r, nil
	}

	mt, err := h.GetMediaType()
	if err == nil && mt != "" && !isTextual(mt) {
		return r, nil
	}

	return &deferredErrorReader{open: func() (io.Reader, error) {
		return charset.Reader(cs, r)
	}}, nil
}

func isTextual(mediaType string) bool {
	return len(mediaType) >= 5 && mediaType[:5] == "text/"
}

// deferredErrorReader defers opening the wrapped reader (and thus surfacing
// any DecodingFailure) until the first Read call, per the error propagation
// policy: decoding failures are stream-read-time errors, not parse-time or
// construction-time errors.
type deferredErrorReader struct {
	open func() (io.Reader, error)
	r    io.Reader
	err  error
}

func (d *deferredErrorReader) Read(p []byte) (int, error) {
	if d.r == nil && d.err == nil {
		d.r, d.err = d.open()
	}
	if d.err != nil {
		return 0, d.err
	}
	return d.r.Read(p)
}

// SetContentStream reads r fully into memory and installs it as this
// container's content, replacing whatever the original source range held.
// Per the core invariant, a StreamContainer is never left referencing both
// the source and an override: once this is called, the original content
// range is no longer consulted.
func (sc *StreamContainer) SetContentStream(r io.Reader) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	sc.override = b
	sc.hasOverride = true
	return nil
}

// OriginalReader returns the exact original bytes of the part: header
// block, blank line, and content, all as they appeared in the source. It
// ignores any override installed by SetContentStream, since "original"
// specifically means the unmodified source bytes.
func (sc *StreamContainer) OriginalReader() (io.Reader, error) {
	if sc.src == nil {
		return bytes.NewReader(nil), nil
	}
	return sc.src.ReadRange(sc.headerStart, sc.contentEnd), nil
}

// WriteContentTo writes this container's content to w: the original source
// range verbatim if unmodified, or, if SetContentStream installed an
// override, the override re-encoded per h's Content-transfer-encoding,
// matching the supplemented transfer-encoding re-application behavior
// needed for mutation round-tripping.
func (sc *StreamContainer) WriteContentTo(h *header.Header, w io.Writer) (int64, error) {
	if !sc.hasOverride {
		if sc.src == nil {
			return 0, nil
		}
		return io.Copy(w, sc.src.ReadRange(sc.contentStart, sc.contentEnd))
	}

	tw := transfer.ApplyTransferEncoding(h, w)
	n, err := io.Copy(tw, bytes.NewReader(sc.override))
	if cerr := tw.Close(); err == nil {
		err = cerr
	}
	return n, err
}
