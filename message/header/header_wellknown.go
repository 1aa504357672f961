package header

import "strings"

// GetSubject returns the Subject field.
func (h *Header) GetSubject() (string, error) { return h.Get(Subject) }

// SetSubject replaces the Subject field with s.
func (h *Header) SetSubject(s string) { h.Set(Subject, s) }

func (h *Header) getKeywordsList(name string) ([]string, error) {
	bs, err := h.GetAll(name)
	if err != nil {
		return nil, err
	}

	allKs := make([]string, 0, len(bs)*2)
	for _, b := range bs {
		for _, k := range strings.Split(b, ",") {
			if k = strings.TrimSpace(k); k != "" {
				allKs = append(allKs, k)
			}
		}
	}

	h.setValue(name, allKs)

	return allKs, nil
}

// GetKeywordsList returns every comma-separated keyword from every field
// set under name, in order. This is generic over field name so it can also
// be used on headers other than Keywords that follow the same convention.
//
// It returns nil and ErrNoSuchField if the field is never set.
func (h *Header) GetKeywordsList(name string) ([]string, error) {
	v, found := h.getValue(name)
	if !found {
		return h.getKeywordsList(name)
	}

	ks, isStringSlice := v.([]string)
	if !isStringSlice {
		return h.getKeywordsList(name)
	}

	return ks, nil
}

// SetKeywordsList replaces every field set under name with a single field
// listing keywords, comma-separated.
func (h *Header) SetKeywordsList(name string, keywords ...string) {
	h.setValue(name, keywords)
	h.Set(name, strings.Join(keywords, ", "))
}

// GetKeywords returns every keyword set on the Keywords field(s).
func (h *Header) GetKeywords() ([]string, error) { return h.GetKeywordsList(Keywords) }

// SetKeywords replaces the Keywords field with ks.
func (h *Header) SetKeywords(ks ...string) { h.SetKeywordsList(Keywords, ks...) }

// GetComments returns the body of every Comments field set.
func (h *Header) GetComments() ([]string, error) { return h.GetAll(Comments) }

// SetComments replaces every Comments field with cs, one field per entry.
func (h *Header) SetComments(cs ...string) { h.SetAll(Comments, cs...) }

// GetReferences returns the body of the References field.
func (h *Header) GetReferences() (string, error) { return h.Get(References) }

// SetReferences replaces the References field with ref.
func (h *Header) SetReferences(ref string) { h.Set(References, ref) }

// GetInReplyTo returns the body of the In-reply-to field.
func (h *Header) GetInReplyTo() (string, error) { return h.Get(InReplyTo) }

// SetInReplyTo replaces the In-reply-to field with ref.
func (h *Header) SetInReplyTo(ref string) { h.Set(InReplyTo, ref) }

// GetMessageID returns the body of the Message-id field.
func (h *Header) GetMessageID() (string, error) { return h.Get(MessageID) }

// SetMessageID replaces the Message-id field with ref.
func (h *Header) SetMessageID(ref string) { h.Set(MessageID, ref) }

// TODO: resent-* blocks (Resent-From, Resent-Date, ...) are not modeled.

// TODO: trace fields (Return-Path, Received) are not modeled.
