// Package query holds the flat, ordered key/value form of a dashboard address.
//
// url.Values is a map and loses the order in which keys were written, which
// would make every re-encode shuffle the address the user sees. Values keeps
// insertion order and behaves like a browser's URLSearchParams: Get returns
// the first occurrence, Set replaces in place, Del drops every occurrence.
package query

import (
	"net/url"
	"strings"
)

type pair struct {
	key   string
	value string
}

// Values is an ordered key/value mapping. The zero value is an empty query.
// Mutating methods never write into a slice shared with a copy.
type Values struct {
	pairs []pair
}

// FromPairs builds Values from alternating keys and values. A trailing key
// without a value gets the empty string.
func FromPairs(kv ...string) Values {
	var v Values
	for i := 0; i < len(kv); i += 2 {
		p := pair{key: kv[i]}
		if i+1 < len(kv) {
			p.value = kv[i+1]
		}
		v.pairs = append(v.pairs, p)
	}
	return v
}

// Parse reads a raw query string, with or without the leading '?'.
// Segments that cannot be unescaped are dropped; Parse never fails.
func Parse(raw string) Values {
	raw = strings.TrimPrefix(raw, "?")

	var v Values
	for _, segment := range strings.Split(raw, "&") {
		if segment == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(segment, "=")

		key, err := url.QueryUnescape(rawKey)
		if err != nil || key == "" {
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			continue
		}
		v.pairs = append(v.pairs, pair{key: key, value: value})
	}
	return v
}

func (v Values) Len() int {
	return len(v.pairs)
}

// Lookup returns the first value stored under key.
func (v Values) Lookup(key string) (string, bool) {
	for _, p := range v.pairs {
		if p.key == key {
			return p.value, true
		}
	}
	return "", false
}

func (v Values) Get(key string) string {
	value, _ := v.Lookup(key)
	return value
}

func (v Values) Has(key string) bool {
	_, ok := v.Lookup(key)
	return ok
}

// Keys returns each distinct key once, in order of first appearance.
func (v Values) Keys() []string {
	seen := make(map[string]struct{}, len(v.pairs))
	keys := make([]string, 0, len(v.pairs))
	for _, p := range v.pairs {
		if _, ok := seen[p.key]; ok {
			continue
		}
		seen[p.key] = struct{}{}
		keys = append(keys, p.key)
	}
	return keys
}

// Set stores value under key. The first occurrence keeps its position and
// later duplicates are removed; a new key is appended.
func (v *Values) Set(key, value string) {
	next := make([]pair, 0, len(v.pairs)+1)
	found := false
	for _, p := range v.pairs {
		if p.key != key {
			next = append(next, p)
			continue
		}
		if !found {
			next = append(next, pair{key: key, value: value})
			found = true
		}
	}
	if !found {
		next = append(next, pair{key: key, value: value})
	}
	v.pairs = next
}

// Del removes every occurrence of key.
func (v *Values) Del(key string) {
	next := make([]pair, 0, len(v.pairs))
	for _, p := range v.pairs {
		if p.key != key {
			next = append(next, p)
		}
	}
	v.pairs = next
}

func (v Values) Clone() Values {
	if v.pairs == nil {
		return Values{}
	}
	return Values{pairs: append([]pair(nil), v.pairs...)}
}

// Map flattens the query, keeping the first value of each key.
func (v Values) Map() map[string]string {
	m := make(map[string]string, len(v.pairs))
	for _, p := range v.pairs {
		if _, ok := m[p.key]; !ok {
			m[p.key] = p.value
		}
	}
	return m
}

// Equal reports whether both queries hold the same pairs in the same order.
func (v Values) Equal(other Values) bool {
	if len(v.pairs) != len(other.pairs) {
		return false
	}
	for i := range v.pairs {
		if v.pairs[i] != other.pairs[i] {
			return false
		}
	}
	return true
}

// Encode renders the query without the leading '?'. Commas stay literal so
// tag lists read as status=done,blocked.
func (v Values) Encode() string {
	var b strings.Builder
	for i, p := range v.pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(escape(p.key))
		b.WriteByte('=')
		b.WriteString(escape(p.value))
	}
	return b.String()
}

func (v Values) String() string {
	return v.Encode()
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "%2C", ",")
}
