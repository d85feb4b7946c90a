// Package filter holds the menu page filter state and its URL serialization.
package filter

import (
	"strconv"
	"strings"
)

const (
	// Param is the navigation query parameter carrying the selected tag ids.
	Param = "tags"
	// Delimiter separates tag ids inside Param.
	Delimiter = ","
)

// State is the user's tag selection plus free-text search.
// The zero value is an empty selection with no search.
//
// Selected keys are the textual tag ids in insertion order. Keys parsed from a
// URL that are not integers are preserved; they simply never match a tag.
type State struct {
	keys   []string
	Search string
}

// New returns a state selecting ids in the given order, duplicates dropped.
func New(ids ...int) State {
	var s State
	for _, id := range ids {
		s = s.with(strconv.Itoa(id))
	}
	return s
}

// Deserialize builds a state from the raw Param value. Empty input yields an empty selection.
func Deserialize(value string) State {
	var s State
	if value == "" {
		return s
	}
	for _, token := range strings.Split(value, Delimiter) {
		s = s.with(token)
	}
	return s
}

// Serialize renders the selection for Param. ok is false when nothing is selected,
// meaning the parameter must be omitted.
func Serialize(s State) (value string, ok bool) {
	if len(s.keys) == 0 {
		return "", false
	}
	return strings.Join(s.keys, Delimiter), true
}

// Toggle removes id from the selection when present and appends it otherwise,
// so an id toggled off and on again moves to the end of the serialized value.
// The input state is not modified.
func Toggle(s State, id int) State {
	key := strconv.Itoa(id)
	if s.has(key) {
		return s.without(key)
	}
	return s.with(key)
}

// Selected reports whether the tag id is part of the selection.
func (s State) Selected(id int) bool {
	return s.has(strconv.Itoa(id))
}

// Keys returns the selected keys in insertion order.
func (s State) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Len returns the number of selected keys.
func (s State) Len() int { return len(s.keys) }

// HasSelection reports whether any key is selected.
func (s State) HasSelection() bool { return len(s.keys) > 0 }

// Searching reports whether the search text is in effect.
func (s State) Searching() bool { return s.Search != "" }

// WithSearch returns a copy of s with the given search text; the selection is kept as is.
func (s State) WithSearch(text string) State {
	s.keys = append([]string(nil), s.keys...)
	s.Search = text
	return s
}

// Equal compares selections as sets along with the search text.
func (s State) Equal(other State) bool {
	if s.Search != other.Search || len(s.keys) != len(other.keys) {
		return false
	}
	for _, key := range s.keys {
		if !other.has(key) {
			return false
		}
	}
	return true
}

func (s State) has(key string) bool {
	for _, k := range s.keys {
		if k == key {
			return true
		}
	}
	return false
}

func (s State) with(key string) State {
	if s.has(key) {
		return s
	}
	keys := make([]string, 0, len(s.keys)+1)
	keys = append(keys, s.keys...)
	s.keys = append(keys, key)
	return s
}

func (s State) without(key string) State {
	keys := make([]string, 0, len(s.keys))
	for _, k := range s.keys {
		if k != key {
			keys = append(keys, k)
		}
	}
	s.keys = keys
	return s
}
