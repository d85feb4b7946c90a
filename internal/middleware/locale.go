// Package middleware holds the page-side HTTP middleware: language negotiation,
// htmx detection and static asset caching.
package middleware

import (
	"net/http"

	"github.com/Xnn511/kiwa/internal/i18n"
	"github.com/Xnn511/kiwa/internal/platform/requestctx"
)

// LangParam is the query parameter and cookie name carrying an explicit language choice.
const LangParam = "hl"

// Locale negotiates the page language: a supported `hl` query value wins and
// is remembered in the `hl` cookie, then the cookie, then Accept-Language.
// The result is stored with requestctx.WithLang and sent as Content-Language.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := ""
			if q := r.URL.Query().Get(LangParam); q != "" {
				if norm, ok := bundle.Normalize(q); ok {
					lang = norm
					http.SetCookie(w, &http.Cookie{
						Name:     LangParam,
						Value:    norm,
						Path:     "/",
						MaxAge:   365 * 24 * 60 * 60,
						HttpOnly: true,
						SameSite: http.SameSiteLaxMode,
					})
				}
			}
			if lang == "" {
				if c, err := r.Cookie(LangParam); err == nil {
					if norm, ok := bundle.Normalize(c.Value); ok {
						lang = norm
					}
				}
			}
			if lang == "" {
				lang = bundle.Resolve(r.Header.Get("Accept-Language"))
			}

			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(requestctx.WithLang(r.Context(), lang)))
		})
	}
}

// VaryLocale marks dynamic responses as varying by Accept-Language.
func VaryLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept-Language")
		next.ServeHTTP(w, r)
	})
}

// Lang returns the negotiated language for r, or fallback when Locale did not run.
func Lang(r *http.Request, fallback string) string {
	if lang := requestctx.Lang(r.Context()); lang != "" {
		return lang
	}
	return fallback
}
