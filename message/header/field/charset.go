package field

import (
	"bytes"
	"io"
	"mime"
	"strings"
)

// CharsetEncoder and CharsetDecoder are hooks for charsets beyond those the
// standard mime package knows. Decode consults CharsetDecoder when it is
// set; when it is nil, Decode handles only the charsets the standard
// mime.WordDecoder understands (UTF-8, ISO-8859-1 and US-ASCII). Encode
// always writes UTF-8 and does not consult CharsetEncoder. The charset
// package in this module sets both to a golang.org/x/text-backed
// implementation that understands the full IANA charset registry.
var (
	CharsetEncoder func(charset, s string) ([]byte, error)
	CharsetDecoder func(charset string, b []byte) (string, error)
)

// Encode transforms a header field body, replacing any characters that are
// not permitted in a raw header into an RFC 2047 encoded word. It always
// produces b-encoding (base64) using UTF-8 as the charset.
func Encode(body string) string {
	return mime.BEncoding.Encode("utf-8", body)
}

// Decode scans a header field body for RFC 2047 encoded words and decodes
// them into native Go strings. If the body has no encoded words, it is
// returned unchanged.
func Decode(body string) (string, error) {
	if !strings.Contains(body, "=?") {
		return body, nil
	}

	dec := &mime.WordDecoder{}
	if CharsetDecoder != nil {
		decoder := CharsetDecoder
		dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
			b, err := io.ReadAll(input)
			if err != nil {
				return nil, err
			}

			s, err := decoder(charset, b)
			if err != nil {
				return nil, err
			}

			return bytes.NewReader([]byte(s)), nil
		}
	}

	return dec.DecodeHeader(body)
}
