package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/Xnn511/kiwa/internal/filter"
	"github.com/Xnn511/kiwa/internal/handlers"
	"github.com/Xnn511/kiwa/internal/i18n"
	"github.com/Xnn511/kiwa/internal/menu"
	custommw "github.com/Xnn511/kiwa/internal/middleware"
	"github.com/Xnn511/kiwa/internal/platform/httpx"
	"github.com/Xnn511/kiwa/internal/platform/observability"
)

type app struct {
	site    handlers.Site
	engine  *menu.Engine
	bundle  *i18n.Bundle
	pages   pages
	menu    handlers.MenuRenderer
	metrics *observability.MenuMetrics
}

func (a *app) page(r *http.Request) handlers.PageData {
	lang := custommw.Lang(r, a.bundle.Fallback())
	return handlers.BuildPage(a.site, a.bundle, handlers.PageInput{
		Lang:      lang,
		Path:      r.URL.Path,
		Query:     r.URL.Query(),
		Supported: a.bundle.Supported(),
	})
}

func (a *app) render(w http.ResponseWriter, r *http.Request, page, block string, data any) {
	if err := a.pages.render(w, http.StatusOK, page, block, data); err != nil {
		observability.FromContext(r.Context()).Error("render page", zap.String("page", page), zap.Error(err))
		httpx.WriteError(r.Context(), w, httpx.NewError("render_failed", "page could not be rendered", http.StatusInternalServerError))
	}
}

func (a *app) home(w http.ResponseWriter, r *http.Request) {
	p := a.page(r)
	a.render(w, r, "home", "base", &p)
}

func (a *app) reservation(w http.ResponseWriter, r *http.Request) {
	p := a.page(r)
	a.render(w, r, "reservation", "base", &p)
}

func (a *app) faq(w http.ResponseWriter, r *http.Request) {
	p := a.page(r)
	p.FAQ = handlers.BuildFAQ(p)
	a.render(w, r, "faq", "base", &p)
}

// menuPage hydrates the selection from ?tags= once; search always starts empty.
func (a *app) menuPage(w http.ResponseWriter, r *http.Request) {
	p := a.page(r)
	session := menu.NewSession(a.engine, p.Lang, r.URL.Query().Get(filter.Param))
	data := a.buildMenu(r, session)
	p.Menu = &data
	p.AddJSONLD(handlers.MenuJSONLD(a.site, p.Lang, data))
	a.render(w, r, "menu", "base", &p)
}

// menuResults answers htmx with the results fragment. A toggle updates the
// browser URL through HX-Push-Url; search text never does.
func (a *app) menuResults(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := a.page(r)
	session := menu.NewSession(a.engine, p.Lang, q.Get(filter.Param))

	if raw := q.Get(handlers.ToggleParam); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			httpx.WriteError(r.Context(), w, httpx.NewError("invalid_toggle", "toggle must be a tag id", http.StatusBadRequest))
			return
		}
		session.ToggleTag(id)
		custommw.PushURL(w, session.URL(handlers.MenuPath))
	}
	session.SetSearch(q.Get(handlers.SearchParam))

	data := a.buildMenu(r, session)
	data.Fragment = custommw.IsHTMX(r.Context())
	p.Menu = &data

	block := "base"
	if data.Fragment {
		block = "menu-fragment"
	}
	a.render(w, r, "menu", block, &p)
}

func (a *app) apiMenu(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lang := custommw.Lang(r, a.bundle.Fallback())
	session := menu.NewSession(a.engine, lang, q.Get(filter.Param))
	session.SetSearch(q.Get(handlers.SearchParam))

	data := a.buildMenu(r, session)
	httpx.WriteJSON(r.Context(), w, http.StatusOK, handlers.BuildMenuResponse(lang, data))
}

func (a *app) buildMenu(r *http.Request, session *menu.Session) handlers.MenuData {
	ctx, span := observability.Tracer().Start(r.Context(), "menu.query")
	defer span.End()

	started := time.Now()
	state := session.State()
	data := a.menu.Build(session)
	a.metrics.Record(ctx, observability.MenuQuery{
		Lang:      session.Lang(),
		Searching: state.Searching(),
		Selected:  state.Len(),
		Results:   data.Count,
		Duration:  time.Since(started),
	})
	span.SetAttributes(
		attribute.String("menu.lang", session.Lang()),
		attribute.Int("menu.selected_tags", state.Len()),
		attribute.Bool("menu.searching", state.Searching()),
		attribute.Int("menu.results", data.Count),
	)
	observability.FromContext(r.Context()).Debug("menu query",
		zap.String("tags", observability.SanitizeQuery(data.TagsParam)),
		zap.Int("search_len", len(state.Search)),
		zap.Int("results", data.Count),
	)
	return data
}
