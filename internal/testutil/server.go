package testutil

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/Xnn511/kiwa/internal/bootstrap"
	"github.com/Xnn511/kiwa/internal/handlers"
	"github.com/Xnn511/kiwa/internal/httpserver"
	"github.com/Xnn511/kiwa/internal/platform/config"
)

// ServerOption customises the configuration the test server is built from.
type ServerOption func(*serverOptions)

type serverOptions struct {
	overrides map[string]any
	logger    *zap.Logger
}

// WithConfig sets config keys such as "menu.collation" before loading.
func WithConfig(key string, value any) ServerOption {
	return func(o *serverOptions) {
		o.overrides[key] = value
	}
}

// WithLogger routes server logs to logger.
func WithLogger(logger *zap.Logger) ServerOption {
	return func(o *serverOptions) {
		o.logger = logger
	}
}

// NewServer starts an httptest server running the full stack on the embedded content.
func NewServer(t testing.TB, opts ...ServerOption) *httptest.Server {
	t.Helper()

	o := serverOptions{overrides: map[string]any{}, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	cfg, err := config.Load(context.Background(), config.WithoutSystemEnv(), config.WithOverrides(o.overrides))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	c, err := bootstrap.Open(cfg)
	if err != nil {
		t.Fatalf("open content: %v", err)
	}
	handler, err := httpserver.NewHandler(httpserver.Config{
		Site:      handlers.Site{Name: cfg.Site.Name, BaseURL: cfg.Site.BaseURL, Currency: cfg.Site.Currency},
		Engine:    c.Engine,
		Bundle:    c.Bundle,
		Templates: c.Templates,
		Static:    c.Static,
		Logger:    o.logger,
	})
	if err != nil {
		t.Fatalf("build handler: %v", err)
	}

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts
}

// Get issues a GET with optional headers and returns the response and its body.
func Get(t testing.TB, ts *httptest.Server, path string, headers map[string]string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, body
}
