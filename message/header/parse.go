package header

import (
	"bytes"
	"errors"

	"github.com/mimeforge/mimetree/message/header/field"
)

// Parse parses the given slice of bytes into a Header using the given line
// break. It assumes the entire slice given represents the header block, with
// no trailing body content.
//
// The header stores each field's original raw bytes, so writing it back out
// without modification reproduces the input exactly, including any already
// folded continuation lines. If the input starts with lines that don't look
// like header fields at all, Parse still returns a usable Header and a
// non-nil *field.BadStartError carrying the skipped text; the skipped text
// is not lost, it is concatenated onto a sentinel field with the empty name,
// retrievable via Get(""), so callers may treat the error as a recoverable
// warning rather than a fatal one.
func Parse(m []byte, lb Break) (*Header, error) {
	lines, err := field.ParseLines(m, lb.Bytes())

	var badStartErr *field.BadStartError
	var finalErr error
	if errors.As(err, &badStartErr) {
		finalErr = badStartErr
	} else if err != nil {
		return nil, err
	}

	fields := make([]*field.Field, 0, len(lines)+1)
	if badStartErr != nil {
		body := string(bytes.TrimRight(badStartErr.BadStart, string(lb.Bytes())))
		fields = append(fields, field.New("", body))
	}
	for _, line := range lines {
		fields = append(fields, field.Parse(line, lb.Bytes()))
	}

	h := &Header{
		Base: Base{
			lbr:    lb,
			fields: fields,
		},
	}

	return h, finalErr
}
