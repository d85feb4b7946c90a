package handlers

import (
	"html/template"
	"net/url"
	"strconv"

	"github.com/Xnn511/kiwa/internal/catalog"
	"github.com/Xnn511/kiwa/internal/filter"
	"github.com/Xnn511/kiwa/internal/format"
	"github.com/Xnn511/kiwa/internal/menu"
	"github.com/Xnn511/kiwa/internal/richtext"
	"github.com/Xnn511/kiwa/internal/seo"
)

const (
	// MenuPath is the full menu page.
	MenuPath = "/menu"
	// ResultsPath answers htmx requests with the results fragment.
	ResultsPath = "/menu/results"
	// ToggleParam names the tag id to flip on a results request.
	ToggleParam = "toggle"
	// SearchParam carries the search text on results requests only.
	SearchParam = "q"
)

// MenuData is the view model of the menu page and its results fragment.
type MenuData struct {
	Search       string
	TagsParam    string
	HasSelection bool
	ClearURL     string
	Groups       []TagGroupView
	Sections     []SectionView
	Empty        bool
	Count        int
	// Fragment marks an htmx response; the filter menu is then swapped out of band.
	Fragment bool
}

// TagGroupView is a labelled block of filter entries.
type TagGroupView struct {
	Label string
	Tags  []TagView
}

// TagView is one filter entry. Href is the no-script fallback, ToggleURL the htmx request.
type TagView struct {
	ID        int
	Label     string
	Selected  bool
	Href      string
	ToggleURL string
}

// SectionView is one category block of results.
type SectionView struct {
	Key   string
	Label string
	Items []ItemView
}

// ItemView is one rendered dish.
type ItemView struct {
	Key         string
	Name        string
	Description template.HTML
	PlainText   string
	Image       string
	Price       float64
	PriceLabel  string
	Badges      []TagBadge
}

// TagBadge is a resolved tag shown on an item card.
type TagBadge struct {
	ID    int
	Label string
}

// MenuRenderer turns a session into MenuData.
type MenuRenderer struct {
	Text   *richtext.Renderer
	Prices format.Formatter
}

// Build renders the session's current results and filter menu.
func (m MenuRenderer) Build(s *menu.Session) MenuData {
	engine := s.Engine()
	loc := engine.Localizer()
	lang := s.Lang()
	state := s.State()

	data := MenuData{
		Search:       state.Search,
		HasSelection: state.HasSelection(),
		ClearURL:     MenuPath,
	}
	data.TagsParam, _ = filter.Serialize(state)

	for _, group := range menu.TagGroups(engine.Index()) {
		view := TagGroupView{Label: menu.Label(loc, lang, group.Category)}
		for _, tag := range group.Tags {
			toggled := filter.Toggle(state, tag.ID)
			view.Tags = append(view.Tags, TagView{
				ID:        tag.ID,
				Label:     menu.Label(loc, lang, tag.Name),
				Selected:  state.Selected(tag.ID),
				Href:      menu.StateURL(MenuPath, toggled),
				ToggleURL: toggleURL(data.TagsParam, tag.ID),
			})
		}
		data.Groups = append(data.Groups, view)
	}

	results := s.Results()
	data.Count = len(results)
	data.Empty = len(results) == 0
	for _, section := range s.Sections() {
		view := SectionView{Key: section.Category, Label: menu.Label(loc, lang, section.Category)}
		for _, item := range section.Items {
			view.Items = append(view.Items, m.item(item, engine, lang))
		}
		data.Sections = append(data.Sections, view)
	}
	return data
}

func (m MenuRenderer) item(item catalog.MenuItem, engine *menu.Engine, lang string) ItemView {
	loc := engine.Localizer()
	desc := loc.T(lang, item.Description)
	view := ItemView{
		Key:        item.Name,
		Name:       loc.T(lang, item.Name),
		Image:      item.Image,
		Price:      item.Price,
		PriceLabel: m.Prices.Format(item.Price, lang),
	}
	if m.Text != nil {
		view.Description = m.Text.Render(desc)
		view.PlainText = m.Text.Plain(desc)
	} else {
		view.Description = template.HTML(template.HTMLEscapeString(desc))
		view.PlainText = desc
	}
	for _, tag := range menu.ItemTags(item, engine.Resolver()) {
		view.Badges = append(view.Badges, TagBadge{ID: tag.ID, Label: menu.Label(loc, lang, tag.Name)})
	}
	return view
}

func toggleURL(tagsParam string, id int) string {
	q := url.Values{}
	if tagsParam != "" {
		q.Set(filter.Param, tagsParam)
	}
	q.Set(ToggleParam, strconv.Itoa(id))
	return ResultsPath + "?" + q.Encode()
}

// MenuJSONLD describes the visible sections as a schema.org Menu.
func MenuJSONLD(site Site, lang string, data MenuData) map[string]any {
	sections := make([]seo.MenuSection, 0, len(data.Sections))
	for _, s := range data.Sections {
		sec := seo.MenuSection{Name: s.Label}
		for _, it := range s.Items {
			sec.Entries = append(sec.Entries, seo.MenuEntry{
				Name:        it.Name,
				Description: it.PlainText,
				Price:       it.Price,
				Image:       absoluteURL(site.BaseURL, it.Image),
			})
		}
		sections = append(sections, sec)
	}
	return seo.Menu(site.Name, lang, site.Currency, sections)
}

func absoluteURL(base, ref string) string {
	if ref == "" || base == "" {
		return ref
	}
	b, err := url.Parse(base + "/")
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
