package menu

import (
	"net/url"

	"github.com/Xnn511/kiwa/internal/catalog"
	"github.com/Xnn511/kiwa/internal/filter"
)

// Source is the read-only catalog view the engine needs.
type Source interface {
	catalog.TagResolver
	Items() []catalog.MenuItem
	Index() catalog.Index
}

// Engine binds a catalog and a localizer so page code only supplies filter state and language.
type Engine struct {
	source    Source
	items     []catalog.MenuItem
	index     catalog.Index
	loc       Localizer
	collation bool
}

// EngineOption customises an Engine.
type EngineOption func(*Engine)

// WithEngineCollation enables locale collation for every query of the engine.
func WithEngineCollation(enabled bool) EngineOption {
	return func(e *Engine) {
		e.collation = enabled
	}
}

// NewEngine snapshots the catalog once; the source must not change afterwards.
func NewEngine(source Source, loc Localizer, opts ...EngineOption) *Engine {
	e := &Engine{
		source: source,
		items:  source.Items(),
		index:  source.Index(),
		loc:    loc,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Query runs the filter/sort for state in lang.
func (e *Engine) Query(state filter.State, lang string) []catalog.MenuItem {
	return Query(e.items, state, e.source, lang, e.loc, WithCollation(e.collation))
}

// Index returns the derived tag index of the catalog.
func (e *Engine) Index() catalog.Index { return e.index }

// Localizer returns the message lookup the engine localizes with.
func (e *Engine) Localizer() Localizer { return e.loc }

// Resolver returns the tag resolver backing the engine.
func (e *Engine) Resolver() catalog.TagResolver { return e.source }

// Session is the page-owned filter state. It is hydrated from the URL once and
// recomputes results only after the selection, search or language changed.
// A Session must not be shared between goroutines.
type Session struct {
	engine *Engine
	state  filter.State
	lang   string

	result       []catalog.MenuItem
	stale        bool
	computations int
}

// NewSession hydrates a session from the raw tags parameter value.
func NewSession(engine *Engine, lang, tagsParam string) *Session {
	return &Session{
		engine: engine,
		state:  filter.Deserialize(tagsParam),
		lang:   lang,
		stale:  true,
	}
}

// Engine returns the engine the session queries.
func (s *Session) Engine() *Engine { return s.engine }

// State returns the current filter state.
func (s *Session) State() filter.State { return s.state }

// Lang returns the active language.
func (s *Session) Lang() string { return s.lang }

// ToggleTag flips id in the selection and returns the tags parameter projection
// the URL should now carry; ok is false when the parameter must be removed.
func (s *Session) ToggleTag(id int) (param string, ok bool) {
	s.state = filter.Toggle(s.state, id)
	s.stale = true
	return filter.Serialize(s.state)
}

// SetSearch replaces the search text. The URL is never updated for searches.
func (s *Session) SetSearch(text string) {
	if text == s.state.Search {
		return
	}
	s.state = s.state.WithSearch(text)
	s.stale = true
}

// SetLang switches the active language.
func (s *Session) SetLang(lang string) {
	if lang == s.lang {
		return
	}
	s.lang = lang
	s.stale = true
}

// Results returns the visible items, recomputing only when inputs changed.
func (s *Session) Results() []catalog.MenuItem {
	if s.stale {
		s.result = s.engine.Query(s.state, s.lang)
		s.stale = false
		s.computations++
	}
	return append([]catalog.MenuItem(nil), s.result...)
}

// Sections groups the current results by item category.
func (s *Session) Sections() []Section {
	return Sections(s.Results(), s.engine.index.Categories)
}

// URL projects the tag selection onto path. Search text is never part of it.
func (s *Session) URL(path string) string {
	return StateURL(path, s.state)
}

// StateURL renders path with the tags parameter for state, omitting it when empty.
func StateURL(path string, state filter.State) string {
	value, ok := filter.Serialize(state)
	if !ok {
		return path
	}
	q := url.Values{}
	q.Set(filter.Param, value)
	return path + "?" + q.Encode()
}
