// Package charset provides the charset conversion stream decorator that
// part.StreamContainer composes after transfer decoding, and installs an
// RFC 2047 charset codec in package field that understands the full IANA
// charset registry rather than just the handful built into the standard
// mime package (field.Decode uses its decoder; field.Encode always writes
// UTF-8 and does not use its encoder).
package charset

import (
	"fmt"
	"io"

	_ "golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/mimeforge/mimetree/message/header/field"
)

func init() {
	field.CharsetEncoder = Encode
	field.CharsetDecoder = Decode
}

// Encode transforms s from UTF-8 into the named charset, for use when
// rendering an RFC 2047 encoded word in some non-UTF-8 charset.
func Encode(name, s string) ([]byte, error) {
	e, err := ianaindex.MIME.Encoding(name)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("charset: no encoding found for %q", name)
	}

	es, err := e.NewEncoder().String(s)
	if err != nil {
		return nil, err
	}
	return []byte(es), nil
}

// Decode transforms b from the named charset into a UTF-8 string.
func Decode(name string, b []byte) (string, error) {
	e, err := ianaindex.MIME.Encoding(name)
	if err != nil {
		return "", err
	}
	if e == nil {
		return "", fmt.Errorf("charset: no encoding found for %q", name)
	}

	eb, err := e.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(eb), nil
}

// Reader wraps r, translating bytes out of the named charset into UTF-8 as
// they are read. This is the stream decorator part.StreamContainer.ContentReader
// composes after transfer decoding, per the pipeline ordering documented
// there: transfer decoding first, then charset conversion, and only when the
// part is text and a charset was actually requested.
func Reader(name string, r io.Reader) (io.Reader, error) {
	e, err := ianaindex.MIME.Encoding(name)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("charset: no encoding found for %q", name)
	}
	return e.NewDecoder().Reader(r), nil
}
