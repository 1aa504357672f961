package header

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/araddon/dateparse"
)

// UnixDateWithEarlyYear covers a date format seen in the wild that trips up
// the usual parsers: a four-digit year with no timezone offset digits.
const UnixDateWithEarlyYear = "Mon Jan 02 15:04:05 2006 MST"

// ParseTime parses a date field body. RFC 5322 format is tried first; on
// failure it falls back to a lenient general-purpose parser and then to
// UnixDateWithEarlyYear, returning whichever attempt succeeds.
func ParseTime(body string) (time.Time, error) {
	if t, err := mail.ParseDate(body); err == nil {
		return t, nil
	}

	if t, err := dateparse.ParseAny(body); err == nil {
		return t, nil
	}

	if t, err := time.Parse(UnixDateWithEarlyYear, body); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("time string %q cannot be parsed", body)
}

func (h *Header) getTime(name string) (time.Time, error) {
	body, err := h.Get(name)
	if err != nil {
		return time.Time{}, err
	}

	t, err := ParseTime(body)
	if err != nil {
		return t, err
	}

	h.setValue(name, t)

	return t, nil
}

// GetTime parses the named field as a date, trying every format ParseTime
// knows.
//
// It returns the zero value and ErrNoSuchField if the field is unset, or
// ErrManyFields if it is set more than once.
func (h *Header) GetTime(name string) (time.Time, error) {
	v, found := h.getValue(name)
	if !found {
		return h.getTime(name)
	}

	t, isTime := v.(time.Time)
	if !isTime {
		return h.getTime(name)
	}

	return t, nil
}

// SetTime replaces the named field with a single field holding t, formatted
// per time.RFC1123Z.
func (h *Header) SetTime(name string, t time.Time) {
	h.setValue(name, t)
	h.Set(name, t.Format(time.RFC1123Z))
}

// GetDate retrieves the Date header as a time.Time.
func (h *Header) GetDate() (time.Time, error) {
	return h.GetTime(Date)
}

// SetDate updates the Date header from t.
func (h *Header) SetDate(t time.Time) {
	h.SetTime(Date, t)
}
