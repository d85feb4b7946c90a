package catalog

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveTagFirstMatchWins(t *testing.T) {
	t.Parallel()

	tags := []Tag{{ID: 7, Name: "spicy"}, {ID: 8, Name: "spicy"}}
	tag, ok := ResolveTag(tags, "spicy")
	require.True(t, ok)
	require.Equal(t, 7, tag.ID)

	_, ok = ResolveTag(tags, "")
	require.False(t, ok)
	_, ok = ResolveTag(nil, "spicy")
	require.False(t, ok)
}

func TestComputeIndexEmpty(t *testing.T) {
	t.Parallel()

	idx := ComputeIndex(nil, sampleTags())
	require.Empty(t, idx.Tags)
	require.Empty(t, idx.Categories)
	require.Empty(t, idx.TagCategories)
}

func TestComputeIndexIsDuplicateFreeAndOrderStable(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	tags := make([]Tag, 0, 12)
	for i := 0; i < 12; i++ {
		tags = append(tags, Tag{ID: i + 1, Name: fmt.Sprintf("tag-%d", i), Category: fmt.Sprintf("cat-%d", i%4)})
	}

	for run := 0; run < 50; run++ {
		items := make([]MenuItem, 0, 20)
		for i := 0; i < 20; i++ {
			var refs []string
			for j := 0; j < rng.Intn(5); j++ {
				// index 12..14 produce unknown names
				refs = append(refs, fmt.Sprintf("tag-%d", rng.Intn(15)))
			}
			category := ""
			if rng.Intn(5) > 0 {
				category = fmt.Sprintf("section-%d", rng.Intn(6))
			}
			items = append(items, MenuItem{Name: fmt.Sprintf("item-%d", i), Category: category, Tags: refs})
		}

		first := ComputeIndex(items, tags)
		second := ComputeIndex(items, tags)
		require.Equal(t, first, second, "index must be deterministic")

		require.Equal(t, expectedTagNames(items, tags), tagNames(first.Tags))
		require.Equal(t, expectedCategories(items), first.Categories)

		var wantTagCategories []string
		seen := map[string]bool{}
		for _, tag := range first.Tags {
			if !seen[tag.Category] {
				seen[tag.Category] = true
				wantTagCategories = append(wantTagCategories, tag.Category)
			}
		}
		require.Equal(t, wantTagCategories, first.TagCategories)
	}
}

func TestIndexTagsInCategory(t *testing.T) {
	t.Parallel()

	idx := ComputeIndex(sampleItems(), sampleTags())
	require.Equal(t, []string{"spicy", "vegetarian"}, tagNames(idx.TagsInCategory("DIETARY")))
	require.Empty(t, idx.TagsInCategory("OTHER"))
}

func expectedTagNames(items []MenuItem, tags []Tag) []string {
	var out []string
	seen := map[string]bool{}
	for _, item := range items {
		for _, ref := range item.Tags {
			if seen[ref] {
				continue
			}
			seen[ref] = true
			if _, ok := ResolveTag(tags, ref); ok {
				out = append(out, ref)
			}
		}
	}
	return out
}

func expectedCategories(items []MenuItem) []string {
	var out []string
	seen := map[string]bool{}
	for _, item := range items {
		if item.Category == "" || seen[item.Category] {
			continue
		}
		seen[item.Category] = true
		out = append(out, item.Category)
	}
	return out
}

func tagNames(tags []Tag) []string {
	var out []string
	for _, tag := range tags {
		out = append(out, tag.Name)
	}
	return out
}
