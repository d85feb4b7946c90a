// Package httpserver assembles the chi router, middleware stack and page handlers.
package httpserver

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/Xnn511/kiwa/internal/format"
	"github.com/Xnn511/kiwa/internal/handlers"
	"github.com/Xnn511/kiwa/internal/i18n"
	"github.com/Xnn511/kiwa/internal/menu"
	custommw "github.com/Xnn511/kiwa/internal/middleware"
	"github.com/Xnn511/kiwa/internal/platform/httpx"
	"github.com/Xnn511/kiwa/internal/platform/observability"
	"github.com/Xnn511/kiwa/internal/richtext"
)

const (
	defaultRequestTimeout = 30 * time.Second
	apiPrefix             = "/api/v1"
)

// Config holds runtime options and collaborators for the HTTP server.
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	Site      handlers.Site
	Engine    *menu.Engine
	Bundle    *i18n.Bundle
	Templates fs.FS
	Static    fs.FS
	Logger    *zap.Logger
	ProjectID string
	// Meter overrides the global meter provider for menu metrics.
	Meter metric.Meter
}

// New constructs the HTTP server with the middleware stack and routes.
func New(cfg Config) (*http.Server, error) {
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, err
	}
	return &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       or(cfg.ReadTimeout, 15*time.Second),
		WriteTimeout:      or(cfg.WriteTimeout, 30*time.Second),
		IdleTimeout:       or(cfg.IdleTimeout, 120*time.Second),
	}, nil
}

// NewHandler builds the router on its own, for tests and embedding.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Engine == nil {
		return nil, errors.New("httpserver: menu engine is required")
	}
	if cfg.Bundle == nil {
		return nil, errors.New("httpserver: i18n bundle is required")
	}
	if cfg.Templates == nil {
		return nil, errors.New("httpserver: templates are required")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	tmpl, err := parseTemplates(cfg.Templates)
	if err != nil {
		return nil, err
	}

	app := &app{
		site:    cfg.Site,
		engine:  cfg.Engine,
		bundle:  cfg.Bundle,
		pages:   tmpl,
		metrics: observability.NewMenuMetrics(cfg.Meter, cfg.Logger),
		menu: handlers.MenuRenderer{
			Text:   richtext.New(),
			Prices: format.Formatter{Code: cfg.Site.Currency},
		},
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(observability.TraceMiddleware(cfg.ProjectID))
	r.Use(observability.InjectLoggerMiddleware(cfg.Logger))
	r.Use(custommw.Locale(cfg.Bundle))
	r.Use(observability.RequestLoggerMiddleware())
	r.Use(observability.RecoveryMiddleware(cfg.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(defaultRequestTimeout))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		httpx.WriteError(req.Context(), w, httpx.NewError("route_not_found", fmt.Sprintf("no route for %s", req.URL.Path), http.StatusNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		httpx.WriteError(req.Context(), w, httpx.NewError("method_not_allowed", fmt.Sprintf("method %s not allowed on %s", req.Method, req.URL.Path), http.StatusMethodNotAllowed))
	})

	r.Get("/healthz", healthz)
	if cfg.Static != nil {
		r.Handle("/assets/*", custommw.AssetsWithCache(cfg.Static, "/assets"))
	}

	r.Group(func(pg chi.Router) {
		pg.Use(custommw.VaryLocale)
		pg.Use(custommw.HTMX)
		pg.Get("/", app.home)
		pg.Get(handlers.MenuPath, app.menuPage)
		pg.Get(handlers.ResultsPath, app.menuResults)
		pg.Get("/reservation", app.reservation)
		pg.Get("/faq", app.faq)
	})

	r.Route(apiPrefix, func(api chi.Router) {
		api.Use(custommw.VaryLocale)
		api.Get("/menu", app.apiMenu)
	})

	return r, nil
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func or(d, fallback time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return fallback
}
