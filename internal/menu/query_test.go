package menu

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/Xnn511/kiwa/internal/catalog"
	"github.com/Xnn511/kiwa/internal/filter"
)

var scenarioMessages = map[string]map[string]string{
	"en": {
		"BURGER":      "Burger",
		"BURGER_DESC": "Beef patty with chili",
		"SALAD":       "Salad",
		"SALAD_DESC":  "Fresh greens",
	},
	"it": {
		"BURGER":      "Panino",
		"BURGER_DESC": "Manzo e peperoncino",
		"SALAD":       "Insalata",
		"SALAD_DESC":  "Verdure fresche",
	},
}

func scenarioLocalizer() Localizer {
	return LocalizerFunc(func(lang, key string) string {
		if v, ok := scenarioMessages[lang][key]; ok {
			return v
		}
		return key
	})
}

func scenarioStore(t *testing.T) *catalog.Store {
	t.Helper()

	store, err := catalog.New(
		[]catalog.MenuItem{
			{Name: "BURGER", Description: "BURGER_DESC", Category: "MAINS", Tags: []string{"spicy"}, Price: 9.5},
			{Name: "SALAD", Description: "SALAD_DESC", Category: "MAINS", Tags: []string{}, Price: 6.0},
		},
		[]catalog.Tag{{ID: 1, Name: "spicy", Category: "DIETARY"}},
	)
	require.NoError(t, err)
	return store
}

func names(items []catalog.MenuItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}

func TestQueryScenario(t *testing.T) {
	t.Parallel()

	store := scenarioStore(t)
	loc := scenarioLocalizer()

	got := Query(store.Items(), filter.New(1), store, "en", loc)
	require.Equal(t, []string{"BURGER"}, names(got))

	got = Query(store.Items(), filter.New(1).WithSearch("sal"), store, "en", loc)
	require.Equal(t, []string{"SALAD"}, names(got), "search ignores the tag selection")

	got = Query(store.Items(), filter.State{}, store, "en", loc)
	require.Equal(t, []string{"BURGER", "SALAD"}, names(got))
}

func TestQuerySearchMatchesDescriptionCaseInsensitive(t *testing.T) {
	t.Parallel()

	store := scenarioStore(t)
	got := Query(store.Items(), filter.State{Search: "CHILI"}, store, "en", scenarioLocalizer())
	require.Equal(t, []string{"BURGER"}, names(got))

	got = Query(store.Items(), filter.State{Search: " greens"}, store, "en", scenarioLocalizer())
	require.Equal(t, []string{"SALAD"}, names(got), "search text is not trimmed")

	got = Query(store.Items(), filter.State{Search: "  greens"}, store, "en", scenarioLocalizer())
	require.Empty(t, got)
}

func TestQueryLocaleChangesMatchesAndOrder(t *testing.T) {
	t.Parallel()

	store := scenarioStore(t)
	loc := scenarioLocalizer()

	require.Equal(t, []string{"SALAD"}, names(Query(store.Items(), filter.State{Search: "green"}, store, "en", loc)))
	require.Empty(t, Query(store.Items(), filter.State{Search: "green"}, store, "it", loc), "Verdure fresche has no green")
	require.Empty(t, Query(store.Items(), filter.State{Search: "insa"}, store, "en", loc))
	require.Equal(t, []string{"SALAD"}, names(Query(store.Items(), filter.State{Search: "insa"}, store, "it", loc)))

	// Insalata < Panino
	require.Equal(t, []string{"SALAD", "BURGER"}, names(Query(store.Items(), filter.State{}, store, "it", loc)))
}

func TestQueryUntranslatedKeysFallBackToKey(t *testing.T) {
	t.Parallel()

	store := scenarioStore(t)
	got := Query(store.Items(), filter.State{Search: "burger_"}, store, "de", scenarioLocalizer())
	require.Equal(t, []string{"BURGER"}, names(got), "description key BURGER_DESC is searched")

	got = Query(store.Items(), filter.State{}, store, "de", nil)
	require.Equal(t, []string{"BURGER", "SALAD"}, names(got))
}

func TestQueryUnknownTagsAndMalformedKeysNeverMatch(t *testing.T) {
	t.Parallel()

	store, err := catalog.New(
		[]catalog.MenuItem{
			{Name: "A", Tags: []string{"ghost"}},
			{Name: "B", Tags: []string{"veg", "ghost"}},
			{Name: "C"},
		},
		[]catalog.Tag{{ID: 2, Name: "veg"}},
	)
	require.NoError(t, err)

	got := Query(store.Items(), filter.Deserialize("2"), store, "en", nil)
	require.Equal(t, []string{"B"}, names(got))

	got = Query(store.Items(), filter.Deserialize("abc,9"), store, "en", nil)
	require.Empty(t, got, "a selection that matches nothing yields an empty result")

	got = Query(store.Items(), filter.New(2), nil, "en", nil)
	require.Empty(t, got, "no resolver means nothing resolves")
}

func TestQuerySearchIndependentOfSelection(t *testing.T) {
	t.Parallel()

	items, tags := randomCatalog(rand.New(rand.NewSource(3)), 40)
	store, err := catalog.New(items, tags)
	require.NoError(t, err)
	loc := LocalizerFunc(func(_, key string) string { return key })

	for _, search := range []string{"a", "item-1", "X", "zz"} {
		base := Query(store.Items(), filter.State{Search: search}, store, "en", loc)
		for _, sel := range []filter.State{filter.New(1), filter.New(2, 3), filter.Deserialize("junk")} {
			got := Query(store.Items(), sel.WithSearch(search), store, "en", loc)
			require.Equal(t, names(base), names(got))
		}
	}
}

func TestQueryPassThroughReturnsAllSorted(t *testing.T) {
	t.Parallel()

	items, tags := randomCatalog(rand.New(rand.NewSource(11)), 40)
	store, err := catalog.New(items, tags)
	require.NoError(t, err)
	loc := LocalizerFunc(func(_, key string) string { return key })

	got := Query(store.Items(), filter.State{}, store, "en", loc)
	require.Len(t, got, len(items))
	for i := 1; i < len(got); i++ {
		require.LessOrEqual(t, got[i-1].Name, got[i].Name)
	}
}

func TestQuerySortIsStable(t *testing.T) {
	t.Parallel()

	items := []catalog.MenuItem{
		{Name: "K3", Description: "third"},
		{Name: "K1", Description: "first"},
		{Name: "K2", Description: "second"},
		{Name: "K0", Description: "zero"},
	}
	// K1, K2 and K3 share a display name
	loc := LocalizerFunc(func(_, key string) string {
		if key == "K0" {
			return "Alpha"
		}
		return "Same"
	})

	got := Query(items, filter.State{}, nil, "en", loc)
	require.Equal(t, []string{"K0", "K3", "K1", "K2"}, names(got))
}

func TestQueryCollation(t *testing.T) {
	t.Parallel()

	items := []catalog.MenuItem{{Name: "b"}, {Name: "Z"}, {Name: "a"}}
	loc := LocalizerFunc(func(_, key string) string { return key })

	require.Equal(t, []string{"Z", "a", "b"}, names(Query(items, filter.State{}, nil, "en", loc)))
	require.Equal(t, []string{"a", "b", "Z"}, names(Query(items, filter.State{}, nil, "en", loc, WithCollation(true))))
}

func TestCollationComparer(t *testing.T) {
	t.Parallel()

	cmp := Collation(language.Italian)
	require.Negative(t, cmp("pasta", "Pesce"))
	require.Positive(t, Lexical("pasta", "Pesce"))
	require.Zero(t, Lexical("x", "x"))
}

func TestQueryDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	items := []catalog.MenuItem{{Name: "b"}, {Name: "a"}}
	_ = Query(items, filter.State{}, nil, "en", nil)
	require.Equal(t, []string{"b", "a"}, names(items))
}

func randomCatalog(rng *rand.Rand, n int) ([]catalog.MenuItem, []catalog.Tag) {
	tags := []catalog.Tag{{ID: 1, Name: "t1", Category: "c"}, {ID: 2, Name: "t2", Category: "c"}, {ID: 3, Name: "t3", Category: "d"}}
	letters := []string{"a", "b", "X", "zz", "item"}
	items := make([]catalog.MenuItem, 0, n)
	for i := 0; i < n; i++ {
		var refs []string
		for j := 0; j < rng.Intn(3); j++ {
			refs = append(refs, tags[rng.Intn(len(tags))].Name)
		}
		items = append(items, catalog.MenuItem{
			Name:        fmt.Sprintf("%s-%d", letters[rng.Intn(len(letters))], i),
			Description: letters[rng.Intn(len(letters))],
			Category:    "MAINS",
			Tags:        refs,
		})
	}
	return items, tags
}
