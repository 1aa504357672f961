package header

import (
	"bytes"
	"errors"
	"strings"

	"github.com/mimeforge/mimetree/message/header/field"
)

// ErrIndexOutOfRange is returned when an attempt is made to access a header
// field index that is too large or too small.
var ErrIndexOutOfRange = errors.New("header field index is out of range")

// Base is the low-level storage for an ordered list of header fields, with
// the ability to fold long field values during output. HeaderContainer
// (Header) embeds this and adds name-based convenience accessors.
type Base struct {
	lbr    Break
	fields []*field.Field
}

func (h *Base) initBase() {
	if h.lbr == "" {
		h.lbr = LF
	}
	if h.fields == nil {
		h.fields = make([]*field.Field, 0, 10)
	}
}

// Break returns the line break used to separate header fields and terminate
// the header block.
func (h *Base) Break() Break {
	if h.lbr == "" {
		h.lbr = LF
	}
	return h.lbr
}

// SetBreak changes the line break used with this header.
func (h *Base) SetBreak(lbr Break) {
	h.lbr = lbr
}

// GetField returns the nth field, or nil if n is out of range.
func (h *Base) GetField(n int) *field.Field {
	if n < 0 || n >= len(h.fields) {
		return nil
	}
	return h.fields[n]
}

// Size returns the number of header fields present.
func (h *Base) Size() int {
	return len(h.fields)
}

// Len is a synonym for Size, matching the convention of the higher-level
// Header accessors that use it as an insertion-point bound.
func (h *Base) Len() int {
	return len(h.fields)
}

// Clone returns a deep copy of the header field storage. Fields are cloned
// so that mutating the copy never affects the original.
func (h *Base) Clone() *Base {
	fields := make([]*field.Field, len(h.fields))
	for i, f := range h.fields {
		fields[i] = f.Clone()
	}
	return &Base{
		lbr:    h.lbr,
		fields: fields,
	}
}

// GetFieldNamed returns the nth (0-indexed) field with the given name, or
// nil if no such field is set.
func (h *Base) GetFieldNamed(name string, n int) *field.Field {
	for _, f := range h.fields {
		if strings.EqualFold(f.Name(), name) {
			if n == 0 {
				return f
			}
			n--
		}
	}
	return nil
}

// GetAllFieldsNamed returns every field with the given name, in header
// order, or an empty slice if none are set.
func (h *Base) GetAllFieldsNamed(name string) []*field.Field {
	fs := make([]*field.Field, 0, 4)
	for _, f := range h.fields {
		if strings.EqualFold(f.Name(), name) {
			fs = append(fs, f)
		}
	}
	return fs
}

// GetIndexesNamed returns the indexes of every field with the given name.
func (h *Base) GetIndexesNamed(name string) []int {
	is := make([]int, 0, 4)
	for i, f := range h.fields {
		if strings.EqualFold(f.Name(), name) {
			is = append(is, i)
		}
	}
	return is
}

// ListFields returns a copy of the field slice, in header order.
func (h *Base) ListFields() []*field.Field {
	fs := make([]*field.Field, len(h.fields))
	copy(fs, h.fields)
	return fs
}

// Bytes renders the header block, terminating it with a blank line. A field
// still holding its original raw bytes from parsing is written verbatim;
// any other field is folded when its rendered form exceeds field.FoldWidth
// columns.
func (h *Base) Bytes() []byte {
	var buf bytes.Buffer
	for _, f := range h.fields {
		out := f.Bytes()
		if f.Raw == nil {
			out = field.Fold(out, h.Break().Bytes())
		}
		buf.Write(out)
		buf.Write(h.Break().Bytes())
	}
	buf.Write(h.Break().Bytes())
	return buf.Bytes()
}

// String renders the header block. See Bytes.
func (h *Base) String() string {
	return string(h.Bytes())
}

// AppendField adds a field to the end of the header.
func (h *Base) AppendField(f *field.Field) {
	h.initBase()
	h.fields = append(h.fields, f)
}

// InsertBeforeField inserts a new field with the given name and body at
// index n, shifting every field at or after n down by one. n is clamped to
// the valid range.
func (h *Base) InsertBeforeField(n int, name, body string) {
	h.initBase()

	if n < 0 {
		n = 0
	}
	if n > len(h.fields) {
		n = len(h.fields)
	}

	f := field.New(name, body)

	h.fields = append(h.fields, nil)
	copy(h.fields[n+1:], h.fields[n:])
	h.fields[n] = f
}

// ClearFields removes every field from the header.
func (h *Base) ClearFields() {
	h.initBase()
	h.fields = h.fields[:0]
}

// DeleteField removes the nth field. Returns ErrIndexOutOfRange if n is out
// of bounds.
func (h *Base) DeleteField(n int) error {
	h.initBase()

	if n < 0 || n >= len(h.fields) {
		return ErrIndexOutOfRange
	}

	copy(h.fields[n:], h.fields[n+1:])
	h.fields = h.fields[:len(h.fields)-1]

	return nil
}
