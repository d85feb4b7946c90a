// Package menu filters, sorts and groups catalog items for the menu page.
package menu

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Xnn511/kiwa/internal/catalog"
	"github.com/Xnn511/kiwa/internal/filter"
)

// Localizer is a total message lookup; untranslated keys come back unchanged.
type Localizer interface {
	T(lang, key string) string
}

// LocalizerFunc adapts ordinary functions to Localizer.
type LocalizerFunc func(lang, key string) string

// T calls f(lang, key).
func (f LocalizerFunc) T(lang, key string) string { return f(lang, key) }

// Comparer orders two localized names, returning <0, 0 or >0.
type Comparer func(a, b string) int

// Lexical compares with plain string ordering.
func Lexical(a, b string) int { return strings.Compare(a, b) }

// Collation returns a Comparer using the locale's collation rules.
// The returned Comparer is not safe for concurrent use.
func Collation(tag language.Tag) Comparer {
	c := collate.New(tag)
	return c.CompareString
}

type queryOptions struct {
	collate bool
}

// QueryOption customises a single Query run.
type QueryOption func(*queryOptions)

// WithCollation switches the sort from plain string ordering to locale collation.
func WithCollation(enabled bool) QueryOption {
	return func(o *queryOptions) {
		o.collate = enabled
	}
}

// Query returns the items visible for state in lang, sorted by localized name.
//
// A non-empty search text wins over the tag selection: items match when the
// lowercased search is a substring of the lowercased localized name or
// description. Otherwise, with tags selected, items match when any of their
// tags resolves to a selected id. With neither, every item is included.
// Equal names keep their input order.
func Query(items []catalog.MenuItem, state filter.State, resolver catalog.TagResolver, lang string, loc Localizer, opts ...QueryOption) []catalog.MenuItem {
	var o queryOptions
	for _, opt := range opts {
		opt(&o)
	}
	if loc == nil {
		loc = LocalizerFunc(func(_, key string) string { return key })
	}
	tag := languageTag(lang)

	type entry struct {
		item catalog.MenuItem
		name string
	}
	entries := make([]entry, 0, len(items))

	switch {
	case state.Searching():
		lower := cases.Lower(tag)
		needle := lower.String(state.Search)
		for _, item := range items {
			name := loc.T(lang, item.Name)
			desc := loc.T(lang, item.Description)
			if strings.Contains(lower.String(name), needle) || strings.Contains(lower.String(desc), needle) {
				entries = append(entries, entry{item: item, name: name})
			}
		}
	case state.HasSelection():
		for _, item := range items {
			if matchesSelection(item, state, resolver) {
				entries = append(entries, entry{item: item, name: loc.T(lang, item.Name)})
			}
		}
	default:
		for _, item := range items {
			entries = append(entries, entry{item: item, name: loc.T(lang, item.Name)})
		}
	}

	compare := Comparer(Lexical)
	if o.collate {
		compare = Collation(tag)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return compare(entries[i].name, entries[j].name) < 0
	})

	out := make([]catalog.MenuItem, len(entries))
	for i, e := range entries {
		out[i] = e.item
	}
	return out
}

func matchesSelection(item catalog.MenuItem, state filter.State, resolver catalog.TagResolver) bool {
	if resolver == nil {
		return false
	}
	for _, name := range item.Tags {
		tag, ok := resolver.ResolveTag(name)
		if !ok {
			continue
		}
		if state.Selected(tag.ID) {
			return true
		}
	}
	return false
}

func languageTag(lang string) language.Tag {
	if tag, err := language.Parse(lang); err == nil {
		return tag
	}
	return language.Und
}
