package transfer

import (
	"encoding/base64"
	"io"
)

const defaultBase64LineLength = 76

var defaultBase64LineBreak = []byte{'\n'}

// newlineWriter inserts lbr into the stream every `every` bytes written,
// tracking how many bytes of the current line have already gone out across
// calls to Write.
type newlineWriter struct {
	every int
	acc   int
	lbr   []byte
	w     io.Writer
}

func (nw *newlineWriter) Write(b []byte) (int, error) {
	ix, n := 0, 0
	for len(b[ix:])+nw.acc > nw.every {
		n := 0
		ln, err := nw.w.Write(b[ix : ix+(nw.every-nw.acc)])
		n += ln
		if err != nil {
			return n, err
		}

		if _, err = nw.w.Write(nw.lbr); err != nil {
			return n, err
		}

		ix += nw.every - nw.acc
		nw.acc = 0
	}

	ln, err := nw.w.Write(b[ix:])
	n += ln
	if err != nil {
		return n, err
	}

	nw.acc += len(b[ix:])

	return n, nil
}

// NewBase64Encoder returns an io.WriteCloser that base64-encodes bytes
// written to it, line-wrapped at defaultBase64LineLength characters, and
// writes the result to w. The standard library's base64.Encoder already
// satisfies io.WriteCloser, so no adapter is needed here; Close flushes any
// partial trailing group.
func NewBase64Encoder(w io.Writer) io.WriteCloser {
	return base64.NewEncoder(base64.StdEncoding, &newlineWriter{
		every: defaultBase64LineLength,
		lbr:   defaultBase64LineBreak,
		w:     w,
	})
}

// NewBase64Decoder returns an io.Reader that base64-decodes bytes read
// from r.
func NewBase64Decoder(r io.Reader) io.Reader {
	return base64.NewDecoder(base64.StdEncoding, r)
}
