package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/Xnn511/kiwa/internal/i18n"
)

func testBundle(t *testing.T) *i18n.Bundle {
	t.Helper()

	fsys := fstest.MapFS{
		"locales/en.yaml": {Data: []byte("MENU: Menu\n")},
		"locales/it.yaml": {Data: []byte("MENU: Menù\n")},
	}
	b, err := i18n.Load(fsys, "locales", "en", []string{"en", "it"})
	require.NoError(t, err)
	return b
}

func serveLocale(t *testing.T, req *http.Request) (string, *httptest.ResponseRecorder) {
	t.Helper()

	var got string
	h := Locale(testBundle(t))(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = Lang(r, "zz")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return got, rec
}

func TestLocalePrecedence(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		query  string
		cookie string
		accept string
		want   string
	}{
		{name: "default", want: "en"},
		{name: "accept language", accept: "it-IT,it;q=0.9,en;q=0.5", want: "it"},
		{name: "cookie beats header", cookie: "en", accept: "it", want: "en"},
		{name: "query beats cookie", query: "it", cookie: "en", want: "it"},
		{name: "query region stripped", query: "IT-ch", want: "it"},
		{name: "unsupported query ignored", query: "fr", cookie: "it", want: "it"},
		{name: "unsupported cookie ignored", cookie: "de", accept: "it", want: "it"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			target := "/menu"
			if tc.query != "" {
				target += "?hl=" + tc.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LangParam, Value: tc.cookie})
			}
			if tc.accept != "" {
				req.Header.Set("Accept-Language", tc.accept)
			}
			got, rec := serveLocale(t, req)
			require.Equal(t, tc.want, got)
			require.Equal(t, tc.want, rec.Header().Get("Content-Language"))
		})
	}
}

func TestLocaleQueryPersistsCookie(t *testing.T) {
	t.Parallel()

	_, rec := serveLocale(t, httptest.NewRequest(http.MethodGet, "/?hl=it", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, LangParam, cookies[0].Name)
	require.Equal(t, "it", cookies[0].Value)

	_, rec = serveLocale(t, httptest.NewRequest(http.MethodGet, "/?hl=xx", nil))
	require.Empty(t, rec.Result().Cookies())
}

func TestLangWithoutNegotiation(t *testing.T) {
	t.Parallel()

	require.Equal(t, "en", Lang(httptest.NewRequest(http.MethodGet, "/", nil), "en"))
}

func TestVaryLocaleAndHTMX(t *testing.T) {
	t.Parallel()

	var isHTMX bool
	h := VaryLocale(HTMX(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		isHTMX = IsHTMX(r.Context())
		PushURL(w, "/menu?tags=1")
	})))

	req := httptest.NewRequest(http.MethodGet, "/menu/results", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.True(t, isHTMX)
	require.Equal(t, []string{"Accept-Language", "HX-Request"}, rec.Header().Values("Vary"))
	require.Equal(t, "/menu?tags=1", rec.Header().Get("HX-Push-Url"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/menu/results", nil))
	require.False(t, isHTMX)
}

func TestAssetsWithCache(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"css/site.css": {Data: []byte("body{margin:0}")},
		"js/htmx.js":   {Data: []byte("// htmx")},
	}
	h := AssetsWithCache(fsys, "/assets")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/css/site.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "body{margin:0}", rec.Body.String())
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)
	require.Contains(t, rec.Header().Get("Cache-Control"), "max-age=604800")

	req := httptest.NewRequest(http.MethodGet, "/assets/css/site.css", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotModified, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/missing.css", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/", nil))
	require.Equal(t, http.StatusNotFound, rec.Code, "directory listings are not served")
}
