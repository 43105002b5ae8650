package query

import "strings"

// Address is a navigable location: a path plus its query.
type Address struct {
	Path  string
	Query Values
}

// ParseAddress splits a raw address such as "/dashboard?status=done#top".
// The fragment is discarded; it never carries filter state.
func ParseAddress(raw string) Address {
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}
	path, rawQuery, _ := strings.Cut(raw, "?")
	return Address{Path: path, Query: Parse(rawQuery)}
}

// String renders the address. An empty query produces no '?' at all.
func (a Address) String() string {
	encoded := a.Query.Encode()
	if encoded == "" {
		return a.Path
	}
	return a.Path + "?" + encoded
}

func (a Address) Equal(other Address) bool {
	return a.Path == other.Path && a.Query.Equal(other.Query)
}
