package param

import (
	"fmt"
	"mime"
	"sort"
	"strings"
)

// Well-known parameter names used on the Content-type and
// Content-disposition headers.
const (
	// Charset is the name of the charset parameter that may be present in
	// the Content-type header.
	Charset = "charset"

	// Boundary is the name of the boundary parameter that may be present in
	// the Content-type header.
	Boundary = "boundary"

	// Filename is the name of the filename parameter that may be present in
	// the Content-disposition header.
	Filename = "filename"
)

// Value represents a parsed parameterized header field, such as is used in
// the Content-type and Content-disposition headers. A Value is immutable;
// use Modify to derive a changed copy.
type Value struct {
	v  string
	ps map[string]string
}

// Parse takes a header field body, parses it as a Value and returns it. If
// an error occurs in the process, it returns an error.
func Parse(v string) (*Value, error) {
	mt, ps, err := mime.ParseMediaType(v)
	if err != nil {
		return nil, err
	}

	return &Value{mt, ps}, nil
}

// New creates a new parameterized header field with no parameters.
func New(v string) *Value {
	return &Value{v, map[string]string{}}
}

// NewWithParams creates a new parameterized header field with the given
// parameters.
func NewWithParams(v string, ps map[string]string) *Value {
	return &Value{v, ps}
}

// Modifier is a modification to apply to a Value when calling Modify.
type Modifier func(*Value)

// Change is a Modifier that replaces the primary value of the Value.
func Change(value string) Modifier {
	return func(pv *Value) {
		pv.v = value
	}
}

// Set is a Modifier that sets a parameter with the given name on the Value.
func Set(name, value string) Modifier {
	return func(pv *Value) {
		pv.ps[name] = value
	}
}

// Delete is a Modifier that removes the parameter with the given name from
// the Value.
func Delete(name string) Modifier {
	return func(pv *Value) {
		delete(pv.ps, name)
	}
}

// Modify clones a Value, applies the given modifications, and returns the
// new Value.
//
//	v, _ := param.Parse("multipart/mixed; boundary=abc123; charset=latin1")
//	nv := param.Modify(v, param.Change("multipart/alternate"), param.Set("charset", "utf-8"))
func Modify(pv *Value, changes ...Modifier) *Value {
	c := pv.Clone()
	for _, change := range changes {
		change(c)
	}
	return c
}

// Value returns the primary value, the text before the first semicolon.
func (pv *Value) Value() string {
	return pv.v
}

// Disposition is a synonym for Value, for use with Content-disposition.
func (pv *Value) Disposition() string {
	return pv.v
}

// MediaType is a synonym for Value, for use with Content-type.
func (pv *Value) MediaType() string {
	return pv.v
}

// Type returns the portion of MediaType before the slash, e.g. "image" for
// "image/jpeg". Returns "" if there is no slash.
func (pv *Value) Type() string {
	if ix := strings.IndexRune(pv.v, '/'); ix >= 0 {
		return pv.v[:ix]
	}
	return ""
}

// Subtype returns the portion of MediaType after the slash, e.g. "html" for
// "text/html". Returns "" if there is no slash.
func (pv *Value) Subtype() string {
	if ix := strings.IndexRune(pv.v, '/'); ix >= 0 {
		return pv.v[ix+1:]
	}
	return ""
}

// Parameters returns the parameters on this Value. Do not modify the
// returned map; make a copy first if you need to.
func (pv *Value) Parameters() map[string]string {
	return pv.ps
}

// Parameter returns the value of the parameter with the given name.
func (pv *Value) Parameter(k string) string {
	return pv.ps[k]
}

// Filename returns the "filename" parameter, for use with
// Content-disposition.
func (pv *Value) Filename() string {
	return pv.ps[Filename]
}

// Charset returns the "charset" parameter, for use with Content-type.
func (pv *Value) Charset() string {
	return pv.ps[Charset]
}

// Boundary returns the "boundary" parameter, for use with Content-type.
func (pv *Value) Boundary() string {
	return pv.ps[Boundary]
}

// String renders the primary value and all parameters, with parameters
// sorted by name for deterministic output.
func (pv *Value) String() string {
	pks := make([]string, 0, len(pv.ps))
	for k := range pv.ps {
		pks = append(pks, k)
	}
	sort.Strings(pks)

	parts := make([]string, len(pv.ps)+1)
	parts[0] = pv.v

	for n, k := range pks {
		v := pv.ps[k]
		if strings.ContainsAny(v, `()<>@,;:\"/[]?= `) {
			parts[n+1] = fmt.Sprintf("%s=%q", k, v)
		} else {
			parts[n+1] = fmt.Sprintf("%s=%s", k, v)
		}
	}

	return strings.Join(parts, "; ")
}

// Bytes renders the Value. See String.
func (pv *Value) Bytes() []byte {
	return []byte(pv.String())
}

// Clone returns a deep copy of the Value.
func (pv *Value) Clone() *Value {
	c := Value{v: pv.v}
	c.ps = make(map[string]string, len(pv.ps))
	for k, v := range pv.ps {
		c.ps[k] = v
	}
	return &c
}
