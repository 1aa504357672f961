package transfer

import (
	"io"
	"mime/quotedprintable"
)

// NewQuotedPrintableEncoder returns an io.WriteCloser that quoted-printable
// encodes bytes written to it and writes the result to w. quotedprintable.Writer
// already implements io.WriteCloser, so it is returned directly; Close
// flushes any soft line break pending at the end of the last line.
func NewQuotedPrintableEncoder(w io.Writer) io.WriteCloser {
	return quotedprintable.NewWriter(w)
}

// NewQuotedPrintableDecoder returns an io.Reader that quoted-printable
// decodes bytes read from r.
func NewQuotedPrintableDecoder(r io.Reader) io.Reader {
	return quotedprintable.NewReader(r)
}
