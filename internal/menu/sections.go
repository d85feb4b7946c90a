package menu

import "github.com/Xnn511/kiwa/internal/catalog"

// Section is one category block of the rendered result.
type Section struct {
	Category string
	Items    []catalog.MenuItem
}

// Sections groups result by categories in the given order. Categories without
// matching items are omitted, as are items whose category is not listed.
func Sections(result []catalog.MenuItem, categories []string) []Section {
	var out []Section
	for _, category := range categories {
		var items []catalog.MenuItem
		for _, item := range result {
			if item.Category == category {
				items = append(items, item)
			}
		}
		if len(items) == 0 {
			continue
		}
		out = append(out, Section{Category: category, Items: items})
	}
	return out
}

// TagGroup is one labelled block of the filter menu.
type TagGroup struct {
	Category string
	Tags     []catalog.Tag
}

// TagGroups lists the in-use tags per tag category for the filter menu.
func TagGroups(idx catalog.Index) []TagGroup {
	out := make([]TagGroup, 0, len(idx.TagCategories))
	for _, category := range idx.TagCategories {
		out = append(out, TagGroup{Category: category, Tags: idx.TagsInCategory(category)})
	}
	return out
}

// ItemTags resolves an item's tag references, dropping unknown names.
func ItemTags(item catalog.MenuItem, resolver catalog.TagResolver) []catalog.Tag {
	var out []catalog.Tag
	if resolver == nil {
		return out
	}
	for _, name := range item.Tags {
		if tag, ok := resolver.ResolveTag(name); ok {
			out = append(out, tag)
		}
	}
	return out
}

// UnknownLabel is shown for tags and categories without a translation.
const UnknownLabel = "Unknown"

type lookupLocalizer interface {
	Lookup(lang, key string) (string, bool)
}

// Label localizes a tag or category key, returning UnknownLabel when no translation exists.
func Label(loc Localizer, lang, key string) string {
	if l, ok := loc.(lookupLocalizer); ok {
		if v, found := l.Lookup(lang, key); found {
			return v
		}
		return UnknownLabel
	}
	if v := loc.T(lang, key); v != key {
		return v
	}
	return UnknownLabel
}
