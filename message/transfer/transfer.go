package transfer

import (
	"io"

	"github.com/mimeforge/mimetree/message/header"
)

// Content-transfer-encoding values recognized by Transcodings.
const (
	None            = ""                 // no encoding declared
	Bit7            = "7bit"             // bytes are left as-is
	Bit8            = "8bit"             // bytes are left as-is
	Binary          = "binary"           // bytes are left as-is
	QuotedPrintable = "quoted-printable" // bytes are transcoded to/from quoted-printable
	Base64          = "base64"           // bytes are transcoded to/from base64
)

// closeGuard adapts a plain io.Writer with no Close method of its own into
// an io.WriteCloser whose Close is a no-op, so the as-is transcoding (and
// the no-encoding-recognized fallback) can still satisfy Transcoding.Encoder's
// signature without pretending to close something it doesn't own.
type closeGuard struct{ io.Writer }

func (closeGuard) Close() error { return nil }

// Transcoding pairs the encoder and decoder for one Content-transfer-encoding.
type Transcoding struct {
	// Encoder wraps w: bytes written to the result are encoded, and the
	// encoded form is written to w. Close must be called on the result
	// once writing is done.
	Encoder func(io.Writer) io.WriteCloser

	// Decoder wraps r: reading from the result decodes the bytes read
	// from r.
	Decoder func(io.Reader) io.Reader
}

// AsIsTranscoder passes bytes through unchanged in both directions.
var AsIsTranscoder = Transcoding{NewAsIsEncoder, NewAsIsDecoder}

// Registry maps a Content-transfer-encoding value to the Transcoding that
// implements it.
type Registry map[string]Transcoding

// Lookup returns the Transcoding registered under name, if any.
func (r Registry) Lookup(name string) (Transcoding, bool) {
	tc, ok := r[name]
	return tc, ok
}

// Transcodings is the default registry of supported
// Content-transfer-encodings. Callers may add to it to register additional
// encodings globally. uuencode is not registered here: its decoder
// (NewUUEncodeDecoder) is applied by part.UUEncodedPart, since it applies
// to whole non-MIME stanzas discovered within a body
// rather than to bytes declared by a single Content-transfer-encoding
// field.
var Transcodings = Registry{
	None:            AsIsTranscoder,
	Bit7:            AsIsTranscoder,
	Bit8:            AsIsTranscoder,
	Binary:          AsIsTranscoder,
	QuotedPrintable: {NewQuotedPrintableEncoder, NewQuotedPrintableDecoder},
	Base64:          {NewBase64Encoder, NewBase64Decoder},
}

// ApplyTransferEncoding returns an io.WriteCloser that applies whatever
// transfer encoding h's Content-transfer-encoding field declares, writing
// the encoded bytes to w. If the field is unset or names an encoding
// Transcodings has no entry for, bytes pass through unmodified. Close must
// be called on the result once writing is done.
func ApplyTransferEncoding(h *header.Header, w io.Writer) io.WriteCloser {
	cte, err := h.GetTransferEncoding()
	if err != nil {
		return closeGuard{w}
	}

	if tc, ok := Transcodings.Lookup(cte); ok {
		return tc.Encoder(w)
	}

	return closeGuard{w}
}

// ApplyTransferDecoding returns an io.Reader that reverses whatever
// transfer encoding h's Content-transfer-encoding field declares, reading
// the encoded bytes from r. Bytes pass through unmodified if h's
// Content-type is multipart (a multipart container never carries a
// transfer encoding of its own), if the field is unset, or if it names an
// encoding Transcodings has no entry for.
func ApplyTransferDecoding(h *header.Header, r io.Reader) io.Reader {
	if ct, err := h.GetContentType(); err == nil && ct != nil && ct.Type() == "multipart" {
		return r
	}

	cte, err := h.GetTransferEncoding()
	if err != nil {
		return r
	}

	if tc, ok := Transcodings.Lookup(cte); ok {
		return tc.Decoder(r)
	}

	return r
}
