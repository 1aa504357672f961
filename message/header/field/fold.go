package field

import "bytes"

// FoldWidth is the column at which newly rendered header fields are folded,
// per the output contract: 78 columns, breaking at whitespace boundaries.
const FoldWidth = 78

// Fold wraps a rendered "Name: Body" field at FoldWidth columns, breaking at
// whitespace and continuing folded lines with a single leading space, per
// RFC 5322 §2.2.3. lb is the line break to insert at each fold point; no
// line break is added at the end of the field.
func Fold(b []byte, lb []byte) []byte {
	if len(b) <= FoldWidth {
		return b
	}

	var out bytes.Buffer
	line := 0
	start := 0
	lastSpace := -1
	for i := 0; i < len(b); i++ {
		if b[i] == ' ' || b[i] == '\t' {
			lastSpace = i
		}
		line++
		if line >= FoldWidth && lastSpace > start {
			out.Write(b[start:lastSpace])
			out.Write(lb)
			start = lastSpace + 1
			// the continuation is introduced with a single space, which is
			// already present at lastSpace+1 if it was a space; otherwise add one
			if start < len(b) && b[start] != ' ' && b[start] != '\t' {
				out.WriteByte(' ')
			}
			line = i - lastSpace
			lastSpace = -1
		}
	}
	out.Write(b[start:])
	return out.Bytes()
}

// Unfold removes every CR and LF byte from a folded header field, collapsing
// it back to a single logical line while keeping the whitespace that
// introduced each continuation.
func Unfold(b []byte) []byte {
	var out bytes.Buffer
	for i := 0; i < len(b); i++ {
		switch b[i] {
		case '\r':
			continue
		case '\n':
			continue
		default:
			out.WriteByte(b[i])
		}
	}
	return out.Bytes()
}
