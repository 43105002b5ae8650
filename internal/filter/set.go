package filter

import (
	"encoding/json"
	"strings"
)

// Set is a duplicate-free collection of tags that remembers insertion order.
// Order only matters for rendering; Equal ignores it.
type Set[T ~string] struct {
	items []T
}

// NewSet drops empty and repeated tags.
func NewSet[T ~string](items ...T) Set[T] {
	var s Set[T]
	for _, item := range items {
		if item == "" || s.Has(item) {
			continue
		}
		s.items = append(s.items, item)
	}
	return s
}

func splitSet[T ~string](raw string) Set[T] {
	if raw == "" {
		return Set[T]{}
	}
	parts := strings.Split(raw, listSeparator)
	items := make([]T, len(parts))
	for i, part := range parts {
		items[i] = T(part)
	}
	return NewSet(items...)
}

func (s Set[T]) Has(item T) bool {
	for _, existing := range s.items {
		if existing == item {
			return true
		}
	}
	return false
}

func (s Set[T]) Len() int {
	return len(s.items)
}

func (s Set[T]) Items() []T {
	return append([]T(nil), s.items...)
}

// Toggle returns the symmetric difference with {item}: a present tag is
// removed, an absent one is appended at the end.
func (s Set[T]) Toggle(item T) Set[T] {
	if s.Has(item) {
		next := make([]T, 0, len(s.items))
		for _, existing := range s.items {
			if existing != item {
				next = append(next, existing)
			}
		}
		return Set[T]{items: next}
	}
	return NewSet(append(s.Items(), item)...)
}

func (s Set[T]) Equal(other Set[T]) bool {
	if len(s.items) != len(other.items) {
		return false
	}
	for _, item := range s.items {
		if !other.Has(item) {
			return false
		}
	}
	return true
}

// Join renders the tags comma-separated, in insertion order.
func (s Set[T]) Join() string {
	parts := make([]string, len(s.items))
	for i, item := range s.items {
		parts[i] = string(item)
	}
	return strings.Join(parts, listSeparator)
}

func (s Set[T]) MarshalJSON() ([]byte, error) {
	if s.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.items)
}

func (s *Set[T]) UnmarshalJSON(data []byte) error {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*s = NewSet(items...)
	return nil
}
