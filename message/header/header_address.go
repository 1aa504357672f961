package header

import (
	"strings"

	"github.com/zostay/go-addr/pkg/addr"
)

// ParseAddressList parses a field body as an address list. It first tries a
// strict RFC 5322 parse; if that fails it falls back to parseEmailAddressList,
// which is forgiving enough to produce some kind of result for any input.
func ParseAddressList(body string) addr.AddressList {
	if al, err := addr.ParseEmailAddressList(body); err == nil {
		return al
	}
	return parseEmailAddressList(body)
}

func (h *Header) getAddressList(name string) (addr.AddressList, error) {
	body, err := h.Get(name)
	if err != nil {
		return nil, err
	}

	al := ParseAddressList(body)
	h.setValue(name, al)

	return al, nil
}

// GetAddressList parses the named field as an address list, falling back to
// a lenient parse on a badly formatted field rather than failing outright.
//
// It returns nil and ErrNoSuchField if the field is unset, or ErrManyFields
// if it is set more than once.
func (h *Header) GetAddressList(name string) (addr.AddressList, error) {
	v, found := h.getValue(name)
	if !found {
		return h.getAddressList(name)
	}

	al, isAddrList := v.(addr.AddressList)
	if !isAddrList {
		return h.getAddressList(name)
	}

	return al, nil
}

func (h *Header) getAllAddressLists(name string) ([]addr.AddressList, error) {
	bs, err := h.GetAll(name)
	if err != nil {
		return nil, err
	}

	allAl := make([]addr.AddressList, 0, len(bs))
	for _, b := range bs {
		allAl = append(allAl, ParseAddressList(b))
	}

	h.setValue(name, allAl)

	return allAl, nil
}

// GetAllAddressLists parses every field set under name as an address list.
//
// It returns nil and ErrNoSuchField if the field is never set.
func (h *Header) GetAllAddressLists(name string) ([]addr.AddressList, error) {
	v, found := h.getValue(name)
	if !found {
		return h.getAllAddressLists(name)
	}

	als, isAddrLists := v.([]addr.AddressList)
	if !isAddrLists {
		return h.getAllAddressLists(name)
	}

	return als, nil
}

// SetAddressList replaces the named field with a single field holding body.
func (h *Header) SetAddressList(name string, body ...addr.Address) {
	h.setValue(name, body)
	h.Set(name, addr.AddressList(body).String())
}

// SetAllAddressLists replaces every field under name with one field per
// entry in bodies.
func (h *Header) SetAllAddressLists(name string, bodies ...addr.AddressList) {
	h.setValue(name, bodies)
	strs := make([]string, len(bodies))
	for i, body := range bodies {
		strs[i] = body.String()
	}
	h.SetAll(name, strs...)
}

// setAddress accepts either strings or addr.Address values, parsing any
// strings strictly, and sets the named field from the combined list.
func (h *Header) setAddress(name string, as []any) error {
	var al addr.AddressList
	for _, a := range as {
		switch v := a.(type) {
		case string:
			add, err := addr.ParseEmailAddress(v)
			if err != nil {
				return err
			}
			al = append(al, add)
		case addr.Address:
			al = append(al, v)
		default:
			return ErrWrongAddressType
		}
	}
	h.SetAddressList(name, al...)
	return nil
}

// GetTo returns the To field as an addr.AddressList.
func (h *Header) GetTo() (addr.AddressList, error) { return h.GetAddressList(To) }

// SetTo sets the To field from strings or addr.Address values.
func (h *Header) SetTo(a ...any) error { return h.setAddress(To, a) }

// GetCc returns the Cc field as an addr.AddressList.
func (h *Header) GetCc() (addr.AddressList, error) { return h.GetAddressList(Cc) }

// SetCc sets the Cc field from strings or addr.Address values.
func (h *Header) SetCc(a ...any) error { return h.setAddress(Cc, a) }

// GetBcc returns the Bcc field as an addr.AddressList.
func (h *Header) GetBcc() (addr.AddressList, error) { return h.GetAddressList(Bcc) }

// SetBcc sets the Bcc field from strings or addr.Address values.
func (h *Header) SetBcc(a ...any) error { return h.setAddress(Bcc, a) }

// GetFrom returns the From field as an addr.AddressList.
func (h *Header) GetFrom() (addr.AddressList, error) { return h.GetAddressList(From) }

// SetFrom sets the From field from strings or addr.Address values.
func (h *Header) SetFrom(a ...any) error { return h.setAddress(From, a) }

// GetReplyTo returns the Reply-to field as an addr.AddressList.
func (h *Header) GetReplyTo() (addr.AddressList, error) { return h.GetAddressList(ReplyTo) }

// SetReplyTo sets the Reply-to field from strings or addr.Address values.
func (h *Header) SetReplyTo(a ...any) error { return h.setAddress(ReplyTo, a) }

// GetSender returns the Sender field as an addr.AddressList.
func (h *Header) GetSender() (addr.AddressList, error) { return h.GetAddressList(Sender) }

// SetSender sets the Sender field from strings or addr.Address values.
func (h *Header) SetSender(a ...any) error { return h.setAddress(Sender, a) }

// parseEmailAddressList is the lenient fallback used when addr's strict
// parser rejects a field body outright. Real-world mail is full of address
// fields that don't strictly conform, so this takes a best effort: split on
// commas, strip any parenthesized comment out of each entry, treat every
// word but the last as a display name and the last word as the address.
// Groups are not handled, since they are rare enough in the wild that this
// fallback is unlikely to ever see one.
func parseEmailAddressList(v string) addr.AddressList {
	mbs := strings.Split(v, ",")
	as := make(addr.AddressList, 0, len(mbs))
	for _, orig := range mbs {
		mb, com := splitAddressComment(orig)

		mb = strings.TrimSpace(mb)
		com = strings.TrimSpace(com)

		parts := strings.Fields(mb)

		var dn, email string
		switch {
		case len(parts) == 0:
			email = ""
		case len(parts) > 1:
			dn = strings.Join(parts[:len(parts)-1], " ")
			email = parts[len(parts)-1]
		default:
			email = parts[0]
		}

		if email == "" {
			continue
		}

		var addrSpec *addr.AddrSpec
		if i := strings.Index(email, "@"); i > -1 {
			addrSpec = addr.NewAddrSpecParsed(email[:i], email[i+1:], email)
		} else {
			addrSpec = addr.NewAddrSpecParsed(email, "", email)
		}

		mailbox, err := addr.NewMailboxParsed(dn, addrSpec, com, orig)
		if err != nil {
			mailbox, _ = addr.NewMailboxParsed(dn, addrSpec, "", orig)
		}

		as = append(as, mailbox)
	}

	return as
}

// splitAddressComment separates the parenthesized comment out of a mailbox
// entry, returning the entry with the comment removed and the comment text
// on its own (parentheses stripped). Nested parentheses are tracked so an
// unbalanced closing paren in the clean text doesn't throw off the count.
func splitAddressComment(s string) (clean, comment string) {
	var cleanB, commentB strings.Builder
	nestLevel := 0
	for _, c := range s {
		switch {
		case c == '(':
			nestLevel++
			if nestLevel > 1 {
				commentB.WriteRune(c)
			}
		case c == ')':
			nestLevel--
			switch {
			case nestLevel == 0:
				// closes the comment, drop it
			case nestLevel < 0:
				nestLevel = 0
				cleanB.WriteRune(c)
			default:
				commentB.WriteRune(c)
			}
		case nestLevel > 0:
			commentB.WriteRune(c)
		default:
			cleanB.WriteRune(c)
		}
	}

	return cleanB.String(), commentB.String()
}
