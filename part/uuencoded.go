package part

import (
	"bytes"
	"io"

	"github.com/mimeforge/mimetree/message/header"
	"github.com/mimeforge/mimetree/message/header/param"
	"github.com/mimeforge/mimetree/message/transfer"
)

// UUEncodedPart is a single "begin mode filename ... end" stanza found
// inside a NonMimePart's body. It carries no real header block from the
// source; Headers returns a synthesized one exposing only the filename
// (mode is kept as a separate accessor, since it has no natural header
// home).
type UUEncodedPart struct {
	base

	mode string
}

// NewUUEncodedPart returns a UUEncodedPart for one stanza, whose encoded
// data lines (excluding the begin/end marker lines themselves) occupy the
// content range described by stream.
func NewUUEncodedPart(filename, mode string, stream *StreamContainer) *UUEncodedPart {
	h := &header.Header{}
	h.SetContentDisposition(param.NewWithParams("attachment", map[string]string{
		param.Filename: filename,
	}))

	p := &UUEncodedPart{base: base{headers: h, stream: stream}, mode: mode}
	return p
}

// Mode returns the file mode recorded on the stanza's "begin" line (for
// example "644"), as text, since uuencode predates any notion of typed
// permission bits.
func (p *UUEncodedPart) Mode() string { return p.mode }

// Filename returns the filename recorded on the stanza's "begin" line.
func (p *UUEncodedPart) Filename() string {
	f, _ := p.headers.GetFilename()
	return f
}

func (p *UUEncodedPart) IsMultipart() bool             { return false }
func (p *UUEncodedPart) Children() ChildrenContainer   { return NewEagerChildren(p) }
func (p *UUEncodedPart) resolveContent() error         { return nil }
func (p *UUEncodedPart) drainChildren() error          { return nil }

// ContentReader overrides base.ContentReader: a stanza's content range
// holds the uuencoded text lines, not already-transfer-encoded MIME
// content, so decoding goes through the uuencode codec rather than the
// Content-transfer-encoding pipeline. The charset argument is ignored;
// uuencoded payloads are binary attachments, not text.
func (p *UUEncodedPart) ContentReader(_ string) (io.Reader, error) {
	sc := p.stream
	if sc.IsOverridden() {
		return bytes.NewReader(sc.override), nil
	}
	if sc.src == nil {
		return bytes.NewReader(nil), nil
	}
	return transfer.NewUUEncodeDecoder(sc.src.ReadRange(sc.ContentStart(), sc.ContentEnd())), nil
}

// WriteTo re-emits the stanza's original encoded text verbatim, without the
// "begin"/"end" marker lines: those lines are part of the surrounding
// NonMimePart's content, which NonMimePart.WriteTo writes verbatim.
func (p *UUEncodedPart) WriteTo(w io.Writer) (int64, error) {
	return p.stream.WriteContentTo(p.headers, w)
}
