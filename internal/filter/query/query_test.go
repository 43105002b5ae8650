package query_test

import (
	"testing"

	"taskDashboard/internal/filter/query"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want query.Values
	}{
		{"empty", "", query.Values{}},
		{"leading question mark", "?status=done", query.FromPairs("status", "done")},
		{"keeps order", "search=api&status=done", query.FromPairs("search", "api", "status", "done")},
		{"plus is space", "search=fix+login", query.FromPairs("search", "fix login")},
		{"escaped comma", "status=done%2Cblocked", query.FromPairs("status", "done,blocked")},
		{"key without value", "search", query.FromPairs("search", "")},
		{"skips empty segments", "&&status=done&", query.FromPairs("status", "done")},
		{"drops bad escapes", "search=%zz&status=done", query.FromPairs("status", "done")},
		{"keeps duplicates", "status=a&status=b", query.FromPairs("status", "a", "status", "b")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.Parse(tt.raw)
			assert.True(t, tt.want.Equal(got), "got %q", got.Encode())
		})
	}
}

func TestValues_GetFirstOccurrence(t *testing.T) {
	v := query.Parse("status=a&status=b")

	assert.Equal(t, "a", v.Get("status"))
	assert.Equal(t, []string{"status"}, v.Keys())

	_, ok := v.Lookup("priority")
	assert.False(t, ok)
}

func TestValues_SetKeepsPositionAndDropsDuplicates(t *testing.T) {
	v := query.Parse("status=a&search=x&status=b")
	v.Set("status", "c")

	assert.Equal(t, "status=c&search=x", v.Encode())

	v.Set("priority", "high")
	assert.Equal(t, "status=c&search=x&priority=high", v.Encode())
}

func TestValues_MutationDoesNotLeakIntoCopies(t *testing.T) {
	original := query.Parse("status=a&search=x")
	copied := original

	copied.Set("status", "b")
	copied.Del("search")

	assert.Equal(t, "status=a&search=x", original.Encode())
	assert.Equal(t, "status=b", copied.Encode())
}

func TestValues_Del(t *testing.T) {
	v := query.Parse("status=a&search=x&status=b")
	v.Del("status")

	assert.Equal(t, "search=x", v.Encode())
	assert.False(t, v.Has("status"))

	v.Del("missing")
	assert.Equal(t, 1, v.Len())
}

func TestValues_EncodeEscapes(t *testing.T) {
	v := query.FromPairs("search", "a&b=c d", "status", "done,blocked")

	encoded := v.Encode()
	assert.Equal(t, "search=a%26b%3Dc+d&status=done,blocked", encoded)
	assert.True(t, v.Equal(query.Parse(encoded)))
}

func TestParseAddress(t *testing.T) {
	addr := query.ParseAddress("/dashboard?status=done#list")

	assert.Equal(t, "/dashboard", addr.Path)
	assert.Equal(t, "done", addr.Query.Get("status"))
	assert.Equal(t, "/dashboard?status=done", addr.String())
}

func TestAddress_StringWithoutQuery(t *testing.T) {
	addr := query.Address{Path: "/dashboard"}
	assert.Equal(t, "/dashboard", addr.String())

	assert.True(t, addr.Equal(query.ParseAddress("/dashboard?")))
}
