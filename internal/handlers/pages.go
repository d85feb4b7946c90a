// Package handlers builds the view models rendered by the page templates and the JSON API.
package handlers

import (
	"html/template"
	"net/url"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/Xnn511/kiwa/internal/menu"
	"github.com/Xnn511/kiwa/internal/nav"
	"github.com/Xnn511/kiwa/internal/seo"
)

// Site describes the restaurant shown on every page.
type Site struct {
	Name     string
	BaseURL  string
	Currency string
}

// LangLink is one entry of the language switcher.
type LangLink struct {
	Lang   string
	Label  string
	Href   string
	Active bool
}

// SEOData is the head metadata of a page.
type SEOData struct {
	seo.Meta
	JSONLD []template.JS
}

// FAQEntry is one question of the FAQ page.
type FAQEntry struct {
	Question string
	Answer   string
}

// PageData is the view model for every page using the shared layout.
type PageData struct {
	Title    string
	Lang     string
	SiteName string
	SEO      SEOData

	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	Langs       []LangLink

	// Optional per-page payloads
	Menu *MenuData
	FAQ  []FAQEntry

	loc menu.Localizer
}

// T translates key in the page language.
func (p PageData) T(key string) string {
	if p.loc == nil {
		return key
	}
	return p.loc.T(p.Lang, key)
}

// PageInput carries the request facts a page view model depends on.
type PageInput struct {
	Lang      string
	Path      string
	Query     url.Values
	Supported []string
}

// BuildPage fills the layout fields. The title is "<section> - <site>" or just
// the site name on the home page.
func BuildPage(site Site, loc menu.Localizer, in PageInput) PageData {
	p := PageData{
		Lang:        in.Lang,
		SiteName:    site.Name,
		Path:        in.Path,
		Nav:         nav.Build(in.Path),
		Breadcrumbs: nav.Breadcrumbs(in.Path),
		Langs:       languageLinks(in),
		loc:         loc,
	}

	p.Title = site.Name
	if section := nav.Section(in.Path); section != "" && in.Path != "/" {
		p.Title = p.T(section) + " - " + site.Name
	}

	p.SEO.Title = p.Title
	p.SEO.Description = p.T("META_DESCRIPTION")
	p.SEO.Canonical = site.BaseURL + in.Path
	p.SEO.OG = seo.OpenGraph{
		Title:       p.Title,
		Description: p.SEO.Description,
		Type:        "website",
		Locale:      in.Lang,
	}
	for _, l := range p.Langs {
		p.SEO.Alternates = append(p.SEO.Alternates, seo.Alternate{Lang: l.Lang, Href: site.BaseURL + l.Href})
	}
	p.AddJSONLD(seo.Restaurant(site.Name, site.BaseURL, site.BaseURL+"/menu", site.Currency))
	if len(p.Breadcrumbs) > 1 {
		items := make([]seo.BreadcrumbItem, 0, len(p.Breadcrumbs))
		for _, c := range p.Breadcrumbs {
			name := c.Label
			if c.LabelKey != "" {
				name = p.T(c.LabelKey)
			}
			items = append(items, seo.BreadcrumbItem{Name: name, Item: site.BaseURL + c.Href})
		}
		p.AddJSONLD(seo.BreadcrumbList(items))
	}
	return p
}

// AddJSONLD appends a schema.org payload to the page head.
func (p *PageData) AddJSONLD(v any) {
	if s := seo.JSON(v); s != "" {
		p.SEO.JSONLD = append(p.SEO.JSONLD, template.JS(s))
	}
}

// languageLinks keeps the current query (e.g. the tag selection) and swaps hl.
func languageLinks(in PageInput) []LangLink {
	out := make([]LangLink, 0, len(in.Supported))
	for _, lang := range in.Supported {
		q := url.Values{}
		for k, v := range in.Query {
			q[k] = append([]string(nil), v...)
		}
		q.Set("hl", lang)
		out = append(out, LangLink{
			Lang:   lang,
			Label:  nativeName(lang),
			Href:   in.Path + "?" + q.Encode(),
			Active: lang == in.Lang,
		})
	}
	return out
}

func nativeName(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return lang
	}
	name := display.Self.Name(tag)
	if name == "" {
		return lang
	}
	return cases.Title(tag, cases.NoLower).String(name)
}

const maxFAQEntries = 50

// BuildFAQ lists FAQ_Q<n>/FAQ_A<n> pairs until the first untranslated question.
func BuildFAQ(p PageData) []FAQEntry {
	var out []FAQEntry
	for i := 1; i <= maxFAQEntries; i++ {
		n := strconv.Itoa(i)
		q := p.T("FAQ_Q" + n)
		if q == "FAQ_Q"+n {
			break
		}
		out = append(out, FAQEntry{Question: q, Answer: p.T("FAQ_A" + n)})
	}
	return out
}
