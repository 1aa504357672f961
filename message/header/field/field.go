// Package field provides the low-level representation of a single email
// header field: a name, a body, and (when the field came from parsed input)
// the original raw bytes needed to round-trip it exactly.
package field

import "fmt"

// Base implements the minimal email header field: a name and a body, with no
// memory of how it was originally written. Fields built programmatically
// (rather than parsed) are always Base fields.
type Base struct {
	name string
	body string
}

// Name returns the name of the header field.
func (f *Base) Name() string { return f.name }

// SetName updates the name of the header field.
func (f *Base) SetName(name string) { f.name = name }

// Body returns the value of the header field as a string.
func (f *Base) Body() string { return f.body }

// SetBody updates the body of the header field.
func (f *Base) SetBody(body string) { f.body = body }

// String returns the complete header field as a string, with the body
// word-encoded if it contains characters that require it.
func (f *Base) String() string {
	return fmt.Sprintf("%s: %s", f.name, Encode(f.body))
}

// Bytes returns the complete header field as a slice of bytes.
func (f *Base) Bytes() []byte { return []byte(f.String()) }

// Raw preserves the original bytes of a field line (including any folding)
// as it was read from the input, along with the index of the colon that
// separates name from body. It is present only on fields obtained via Parse.
type Raw struct {
	original []byte
	colon    int
}

// Bytes returns the original raw bytes of the field, as read from the input,
// without re-encoding or re-folding.
func (r *Raw) Bytes() []byte { return r.original }

// Field is a single email header field. It behaves like Base, but if it was
// constructed via Parse, calling Bytes or String without having modified the
// name or body will return the original input bytes verbatim, preserving
// folding and any mildly malformed encoding in the input.
type Field struct {
	Base
	Raw *Raw
}

// New constructs a Field with no memory of original formatting.
func New(name, body string) *Field {
	return &Field{Base: Base{name: name, body: body}}
}

// SetName updates the name of the field. Once changed, the field forgets its
// original raw bytes and will always re-render from Name/Body.
func (f *Field) SetName(name string) {
	f.Raw = nil
	f.Base.SetName(name)
}

// SetBody updates the body of the field. Once changed, the field forgets its
// original raw bytes and will always re-render from Name/Body.
func (f *Field) SetBody(body string) {
	f.Raw = nil
	f.Base.SetBody(body)
}

// Clone returns a copy of the field, preserving any original raw bytes so
// the clone still round-trips byte-exact until it is itself mutated.
func (f *Field) Clone() *Field {
	nf := &Field{Base: f.Base}
	if f.Raw != nil {
		raw := &Raw{colon: f.Raw.colon}
		raw.original = make([]byte, len(f.Raw.original))
		copy(raw.original, f.Raw.original)
		nf.Raw = raw
	}
	return nf
}

// Bytes returns the field as a slice of bytes: the original raw bytes if
// unmodified since parsing, or a freshly rendered "Name: Body" otherwise.
func (f *Field) Bytes() []byte {
	if f.Raw != nil {
		return f.Raw.Bytes()
	}
	return f.Base.Bytes()
}

// String returns the field as a string, following the same rule as Bytes.
func (f *Field) String() string {
	return string(f.Bytes())
}
