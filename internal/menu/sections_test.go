package menu

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Xnn511/kiwa/internal/catalog"
)

func TestSectionsOmitEmptyCategories(t *testing.T) {
	t.Parallel()

	result := []catalog.MenuItem{
		{Name: "tiramisu", Category: "DESSERTS"},
		{Name: "soup", Category: "STARTERS"},
		{Name: "orphan", Category: ""},
		{Name: "cake", Category: "DESSERTS"},
	}
	got := Sections(result, []string{"STARTERS", "MAINS", "DESSERTS"})
	require.Len(t, got, 2)
	require.Equal(t, "STARTERS", got[0].Category)
	require.Equal(t, "DESSERTS", got[1].Category)
	require.Equal(t, []string{"tiramisu", "cake"}, names(got[1].Items))

	require.Empty(t, Sections(nil, []string{"MAINS"}))
}

func TestTagGroupsFollowIndexOrder(t *testing.T) {
	t.Parallel()

	store, err := catalog.New(
		[]catalog.MenuItem{
			{Name: "a", Category: "MAINS", Tags: []string{"gf", "spicy", "veg"}},
		},
		[]catalog.Tag{
			{ID: 1, Name: "spicy", Category: "HEAT"},
			{ID: 2, Name: "veg", Category: "DIETARY"},
			{ID: 3, Name: "gf", Category: "DIETARY"},
			{ID: 4, Name: "unused", Category: "OTHER"},
		},
	)
	require.NoError(t, err)

	groups := TagGroups(store.Index())
	require.Len(t, groups, 2)
	for _, g := range groups {
		require.NotEmpty(t, g.Tags)
		for _, tag := range g.Tags {
			require.Equal(t, g.Category, tag.Category)
			require.NotEqual(t, "unused", tag.Name)
		}
	}
}

func TestItemTags(t *testing.T) {
	t.Parallel()

	store := scenarioStore(t)
	got := ItemTags(catalog.MenuItem{Tags: []string{"spicy", "ghost"}}, store)
	require.Len(t, got, 1)
	require.Equal(t, 1, got[0].ID)

	require.Empty(t, ItemTags(catalog.MenuItem{Tags: []string{"spicy"}}, nil))
}

type lookupStub map[string]string

func (l lookupStub) T(_, key string) string {
	if v, ok := l[key]; ok {
		return v
	}
	return key
}

func (l lookupStub) Lookup(_, key string) (string, bool) {
	v, ok := l[key]
	return v, ok
}

func TestLabel(t *testing.T) {
	t.Parallel()

	loc := scenarioLocalizer()
	require.Equal(t, "Burger", Label(loc, "en", "BURGER"))
	require.Equal(t, UnknownLabel, Label(loc, "en", "DIETARY"))

	stub := lookupStub{"SAME": "SAME"}
	require.Equal(t, "SAME", Label(stub, "en", "SAME"), "identity translations count when Lookup is available")
	require.Equal(t, UnknownLabel, Label(stub, "en", "MISSING"))
}
