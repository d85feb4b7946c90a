package catalog

// TagResolver resolves a tag reference by name. Callers treat a miss as "drop this reference".
type TagResolver interface {
	ResolveTag(name string) (Tag, bool)
}

// TagResolverFunc adapts ordinary functions to TagResolver.
type TagResolverFunc func(name string) (Tag, bool)

// ResolveTag calls f(name).
func (f TagResolverFunc) ResolveTag(name string) (Tag, bool) {
	return f(name)
}

// Index is the read-only view of which tags and categories the catalog actually uses.
type Index struct {
	// Tags referenced by at least one item, first-reference order, unique by name.
	Tags []Tag
	// Categories lists distinct non-empty item categories in first-seen order.
	Categories []string
	// TagCategories lists distinct categories of Tags in first-seen order.
	TagCategories []string
}

// ResolveTag finds the first tag named name in tags.
func ResolveTag(tags []Tag, name string) (Tag, bool) {
	for _, tag := range tags {
		if tag.Name == name {
			return tag, true
		}
	}
	return Tag{}, false
}

// ComputeIndex derives the tag index from items against the full tag list.
// Unknown tag names are dropped silently.
func ComputeIndex(items []MenuItem, tags []Tag) Index {
	var idx Index

	seenNames := map[string]struct{}{}
	for _, item := range items {
		for _, name := range item.Tags {
			if _, ok := seenNames[name]; ok {
				continue
			}
			seenNames[name] = struct{}{}
			if tag, ok := ResolveTag(tags, name); ok {
				idx.Tags = append(idx.Tags, tag)
			}
		}
	}

	seenCategories := map[string]struct{}{}
	for _, item := range items {
		if item.Category == "" {
			continue
		}
		if _, ok := seenCategories[item.Category]; ok {
			continue
		}
		seenCategories[item.Category] = struct{}{}
		idx.Categories = append(idx.Categories, item.Category)
	}

	seenTagCategories := map[string]struct{}{}
	for _, tag := range idx.Tags {
		if _, ok := seenTagCategories[tag.Category]; ok {
			continue
		}
		seenTagCategories[tag.Category] = struct{}{}
		idx.TagCategories = append(idx.TagCategories, tag.Category)
	}

	return idx
}

// TagsInCategory returns the in-use tags belonging to category, in index order.
func (idx Index) TagsInCategory(category string) []Tag {
	var out []Tag
	for _, tag := range idx.Tags {
		if tag.Category == category {
			out = append(out, tag)
		}
	}
	return out
}

func (idx Index) clone() Index {
	return Index{
		Tags:          append([]Tag(nil), idx.Tags...),
		Categories:    append([]string(nil), idx.Categories...),
		TagCategories: append([]string(nil), idx.TagCategories...),
	}
}
