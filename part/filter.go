package part

import "strings"

// PartFilter is a value object resolving a part against three criteria:
// content-type inclusion/exclusion, inline-vs-attachment disposition, and
// whether multipart container parts count as matches at all. Filters
// compose by conjunction: every configured criterion must pass.
type PartFilter struct {
	includeTypes     []string
	excludeTypes     []string
	disposition      string
	countMultipart   bool
	countMultipartOK bool
}

// NewPartFilter returns a PartFilter with no criteria configured; Matches
// returns true for every part until criteria are added.
func NewPartFilter() *PartFilter {
	return &PartFilter{}
}

// IncludeType restricts matches to parts whose media type equals mt, or
// whose type (the part before the slash) equals mt when mt contains no
// slash. Repeated calls accumulate as alternatives (OR).
func (pf *PartFilter) IncludeType(mt string) *PartFilter {
	pf.includeTypes = append(pf.includeTypes, strings.ToLower(mt))
	return pf
}

// ExcludeType excludes parts matching mt, using the same matching rule as
// IncludeType.
func (pf *PartFilter) ExcludeType(mt string) *PartFilter {
	pf.excludeTypes = append(pf.excludeTypes, strings.ToLower(mt))
	return pf
}

// Inline restricts matches to parts whose Content-disposition is "inline",
// or that have none.
func (pf *PartFilter) Inline() *PartFilter {
	pf.disposition = "inline"
	return pf
}

// Attachment restricts matches to parts with an "attachment"
// Content-disposition.
func (pf *PartFilter) Attachment() *PartFilter {
	pf.disposition = "attachment"
	return pf
}

// IncludeMultipartContainers controls whether a multipart part itself (as
// opposed to its leaf descendants) can satisfy the filter. Defaults to
// true: a multipart container counts unless this is called with false.
func (pf *PartFilter) IncludeMultipartContainers(b bool) *PartFilter {
	pf.countMultipart = b
	pf.countMultipartOK = true
	return pf
}

func typeMatches(mt, want string) bool {
	mt = strings.ToLower(mt)
	if strings.Contains(want, "/") {
		return mt == want
	}
	ty := mt
	if ix := strings.IndexByte(mt, '/'); ix >= 0 {
		ty = mt[:ix]
	}
	return ty == want
}

// Matches reports whether p satisfies every configured criterion. It is
// suitable for use directly as a Filter.
func (pf *PartFilter) Matches(p Part) bool {
	if pf.countMultipartOK && !pf.countMultipart && p.IsMultipart() {
		return false
	}

	mt, _ := p.Headers().GetMediaType()

	if len(pf.includeTypes) > 0 {
		ok := false
		for _, want := range pf.includeTypes {
			if typeMatches(mt, want) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}

	for _, skip := range pf.excludeTypes {
		if typeMatches(mt, skip) {
			return false
		}
	}

	if pf.disposition != "" {
		cd, err := p.Headers().GetContentDisposition()
		disposition := "inline"
		if err == nil && cd != nil && cd.Disposition() != "" {
			disposition = strings.ToLower(cd.Disposition())
		}
		if disposition != pf.disposition {
			return false
		}
	}

	return true
}

// AsFilter adapts pf to the Filter function type.
func (pf *PartFilter) AsFilter() Filter {
	return pf.Matches
}
