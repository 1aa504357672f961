package field

import "bytes"

// BadStartError is returned when the header begins with junk text that does
// not look like a header field at all (no colon, and not a folded
// continuation of anything). This text is preserved on the error rather than
// silently discarded, and the caller is expected to treat it as recoverable:
// it is concatenated onto the sentinel header field with the empty name.
type BadStartError struct {
	BadStart []byte // the text skipped at the start of the header
}

// Error returns the error message.
func (err *BadStartError) Error() string {
	return "header starts with text that does not appear to be a header"
}

// Line represents the unparsed content of a complete header field, including
// any folded continuation lines and their line breaks.
type Line []byte

// Lines represents the unparsed content of zero or more header fields.
type Lines []Line

// ParseLines splits the given input into Lines according to RFC 5322 folding
// rules, liberalized to accept input a strict parser would reject: any line
// that starts with a space/tab, or that contains no colon at all, is taken
// as a continuation of the field before it rather than as a new field.
//
// If the input begins with lines that look like folded continuations of
// nothing (i.e. they start with whitespace, or contain no colon, before any
// field has been started), those lines are not discarded. They are
// collected and returned via a BadStartError, so that the caller may
// attach them to a sentinel header field rather than lose them outright.
func ParseLines(m, lb []byte) (Lines, error) {
	h := make(Lines, 0, len(m)/80+1)
	var badStart *BadStartError
	for _, line := range bytes.SplitAfter(m, lb) {
		if len(line) == 0 {
			break
		}

		isContinuation := line[0] == '\t' || line[0] == ' ' || !bytes.Contains(line, []byte(":"))
		if isContinuation {
			if len(h) == 0 {
				if badStart != nil {
					badStart.BadStart = append(badStart.BadStart, line...)
				} else {
					badStart = &BadStartError{BadStart: line}
				}
				continue
			}
			h[len(h)-1] = append(h[len(h)-1], line...)
			continue
		}

		h = append(h, line)
	}

	if badStart != nil {
		return h, badStart
	}
	return h, nil
}

// Parse takes a single header field Line, including any folded continuation
// lines, and builds a Field from it, preserving the original raw bytes for
// round-tripping and decoding any RFC 2047 encoded words in the body.
func Parse(l Line, lb []byte) *Field {
	raw := bytes.TrimRight(l, string(lb))

	off := 1
	ix := bytes.IndexByte(raw, ':')
	if ix < 0 {
		ix = len(raw)
		off = 0
	}

	// unfolding doesn't depend on the fold width used, so it's always safe
	name := string(Unfold(raw[:ix]))
	body := string(bytes.TrimSpace(Unfold(raw[ix+off:])))
	if decoded, err := Decode(body); err == nil {
		body = decoded
	}

	cp := make([]byte, len(raw))
	copy(cp, raw)

	return &Field{
		Base: Base{name: name, body: body},
		Raw:  &Raw{original: cp, colon: ix},
	}
}
