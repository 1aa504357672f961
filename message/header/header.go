package header

import (
	"errors"
	"strings"

	"github.com/mimeforge/mimetree/message/header/param"
)

// Errors returned by various header methods and functions.
var (
	// ErrNoSuchField is returned when the named header field is not set.
	ErrNoSuchField = errors.New("no such header field")

	// ErrNoSuchFieldParameter is returned when the header field exists but
	// the requested sub-field (MIME parameter) is not set on it.
	ErrNoSuchFieldParameter = errors.New("no such header field parameter")

	// ErrManyFields is returned when an operation expecting a single field
	// finds more than one field with the given name.
	ErrManyFields = errors.New("many header fields found")

	// ErrWrongAddressType is returned by address setters when given
	// something other than a string or addr.Address.
	ErrWrongAddressType = errors.New("incorrect address type during write")
)

// These are standard headers defined in RFC 5322.
const (
	Bcc                     = "Bcc"
	Cc                      = "Cc"
	Comments                = "Comments"
	ContentDisposition      = "Content-disposition"
	ContentTransferEncoding = "Content-transfer-encoding"
	ContentType             = "Content-type"
	Date                    = "Date"
	From                    = "From"
	InReplyTo               = "In-reply-to"
	Keywords                = "Keywords"
	MessageID               = "Message-id"
	References              = "References"
	ReplyTo                 = "Reply-to"
	Sender                  = "Sender"
	Subject                 = "Subject"
	To                      = "To"
)

// fieldValueCache memoizes the semantic value parsed from a header field's
// body (a time.Time, an addr.AddressList, a param.Value, ...) keyed by the
// lower-cased field name. Set and SetAll drop the entry for the name they
// write, so the next typed getter parses the new body instead of returning
// a stale value.
//
// Cached values are handed to callers as stored, except that GetParamValue
// returns a copy of a cached *param.Value: a slice served from the cache (by
// GetAll, GetKeywordsList or GetAllAddressLists) is the cached slice itself.
type fieldValueCache struct {
	values map[string]any
}

func (c *fieldValueCache) get(name string) (any, bool) {
	if c.values == nil {
		return nil, false
	}
	v, found := c.values[strings.ToLower(name)]
	return v, found
}

func (c *fieldValueCache) set(name string, v any) {
	if c.values == nil {
		c.values = make(map[string]any, 8)
	}
	c.values[strings.ToLower(name)] = v
}

func (c fieldValueCache) clone() fieldValueCache {
	cp := make(map[string]any, len(c.values))
	for k, v := range c.values {
		cp[k] = v
	}
	return fieldValueCache{values: cp}
}

// Header wraps Base, which does the actual field storage, and layers on
// name-based convenience accessors plus a cache for values (dates,
// addresses, parameters) that are expensive to parse out of a field body.
//
// Getter methods return ErrNoSuchField if the field they look up has never
// been set.
type Header struct {
	Base

	cache fieldValueCache
}

// Clone returns a deep copy of the header fields. The cache map is copied,
// but the cached values themselves are shared by reference with the
// original.
func (h *Header) Clone() *Header {
	return &Header{
		Base:  *h.Base.Clone(),
		cache: h.cache.clone(),
	}
}

func (h *Header) getValue(name string) (any, bool) { return h.cache.get(name) }
func (h *Header) setValue(name string, value any)  { h.cache.set(name, value) }

// Get retrieves the string value of the named field.
//
// It returns ErrNoSuchField if the field is not set. If more than one field
// with that name exists, it returns the first one found along with
// ErrManyFields.
func (h *Header) Get(name string) (string, error) {
	ixs := h.GetIndexesNamed(name)
	if len(ixs) == 0 {
		return "", ErrNoSuchField
	}

	b := h.GetField(ixs[0]).Body()
	if len(ixs) > 1 {
		return b, ErrManyFields
	}

	return b, nil
}

// getAll fetches every field body for the given name, or ErrNoSuchField if
// none exist.
func (h *Header) getAll(name string) ([]string, error) {
	fs := h.GetAllFieldsNamed(name)
	if len(fs) == 0 {
		return nil, ErrNoSuchField
	}

	bs := make([]string, len(fs))
	for i, f := range fs {
		bs[i] = f.Body()
	}

	h.setValue(name, bs)

	return bs, nil
}

// GetAll fetches every field body set under the given name.
//
// It returns nil and ErrNoSuchField if no field by that name is set.
func (h *Header) GetAll(name string) ([]string, error) {
	v, found := h.getValue(name)
	if !found {
		return h.getAll(name)
	}

	ss, isStringSlice := v.([]string)
	if !isStringSlice {
		return h.getAll(name)
	}

	return ss, nil
}

// SetAll replaces every field with the given name so that, afterward, the
// name occurs exactly len(bodies) times, in order. Existing fields are
// reused and rewritten in place; extras are appended or deleted as needed.
func (h *Header) SetAll(name string, bodies ...string) {
	delete(h.cache.values, strings.ToLower(name))
	ixs := h.GetIndexesNamed(name)

	for i, b := range bodies {
		if i < len(ixs) {
			h.GetField(ixs[i]).SetBody(b)
			continue
		}
		h.InsertBeforeField(h.Len(), name, b)
	}

	for i := len(ixs) - 1; i >= len(bodies); i-- {
		_ = h.DeleteField(ixs[i])
	}
}

// Set replaces every existing field with the given name with a single
// field carrying the given body. If the field is not yet set, it is
// appended to the end of the header.
func (h *Header) Set(name, body string) {
	delete(h.cache.values, strings.ToLower(name))
	ixs := h.GetIndexesNamed(name)

	if len(ixs) == 0 {
		h.InsertBeforeField(h.Len(), name, body)
		return
	}

	for i := len(ixs) - 1; i > 0; i-- {
		_ = h.DeleteField(ixs[i])
	}

	f := h.GetField(ixs[0])
	f.SetName(name)
	f.SetBody(body)
}

// getParamValue parses the named field's body as a param.Value, or returns
// an error.
func (h *Header) getParamValue(name string) (*param.Value, error) {
	body, err := h.Get(name)
	if err != nil {
		return nil, err
	}

	pv, err := param.Parse(body)
	if err != nil {
		return nil, err
	}

	h.setValue(name, pv)

	return pv, nil
}

// GetParamValue returns the named field's body parsed as a param.Value.
//
// It returns ErrNoSuchField if the field is not set, ErrManyFields if it is
// set more than once, or a parse error if the body cannot be parsed.
func (h *Header) GetParamValue(name string) (*param.Value, error) {
	v, found := h.getValue(name)
	if !found {
		return h.getParamValue(name)
	}

	pv, isPV := v.(*param.Value)
	if !isPV {
		return h.getParamValue(name)
	}

	if pv == nil {
		return pv, nil
	}

	// return a copy so the caller cannot mutate the cached value
	return pv.Clone(), nil
}

// SetParamValue replaces every existing field with the given name with a
// single field carrying the given param.Value.
func (h *Header) SetParamValue(name string, body *param.Value) {
	h.setValue(name, body)
	h.Set(name, body.String())
}

func (h *Header) getParamValueValue(name string) (string, error) {
	pv, err := h.GetParamValue(name)
	if err != nil {
		return "", err
	}
	return pv.Value(), nil
}

func (h *Header) setParamValueValue(name, v string) {
	ixs := h.GetIndexesNamed(name)
	for i := len(ixs) - 1; i > 0; i-- {
		_ = h.DeleteField(ixs[i])
	}

	pv, err := h.GetParamValue(name)
	if err != nil {
		pv = param.New(v)
	} else {
		pv = param.Modify(pv, param.Change(v))
	}

	h.SetParamValue(name, pv)
}

func (h *Header) getParamValueParam(name, p string) (string, error) {
	pv, err := h.GetParamValue(name)
	if err != nil {
		return "", err
	}

	if v := pv.Parameter(p); v != "" {
		return v, nil
	}

	return "", ErrNoSuchFieldParameter
}

// setParamValueParam sets a parameter on an existing param.Value field.
// The field must already exist.
func (h *Header) setParamValueParam(name, p, v string) error {
	pv, err := h.GetParamValue(name)
	if err != nil {
		return err
	}

	h.SetParamValue(name, param.Modify(pv, param.Set(p, v)))

	return nil
}
