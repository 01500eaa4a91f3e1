package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"
)

func get(t *testing.T, h http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Pages(t *testing.T) {
	h := buildServer(t).Handler()

	cases := map[string]string{
		"/":              "Welcome to the LTU HTML Generator",
		"/about":         "Project Features",
		"/tabs":          "HTML5 Tabs Generator",
		"/tabs/advanced": "Advanced HTML5 Tabs Generator",
		"/escape-room":   "Coming Soon",
		"/coding-races":  "Coming Soon",
		"/court-room":    "Coming Soon",
	}
	for path, want := range cases {
		rec := get(t, h, path)
		require.Equal(t, http.StatusOK, rec.Code, path)
		require.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"), path)
		body := rec.Body.String()
		require.Contains(t, body, want, path)
		require.Contains(t, body, `aria-current="page"`, path)
		require.Contains(t, body, "22586489", path)
	}
}

func TestHandler_AboutShowsStudent(t *testing.T) {
	rec := get(t, buildServer(t).Handler(), "/about")
	body := rec.Body.String()
	require.Contains(t, body, `<div class="avatar">SKG</div>`)
	require.Contains(t, body, "CSE3CWA")
	require.Contains(t, body, "2025")
}

func TestHandler_UnknownVariant(t *testing.T) {
	rec := get(t, buildServer(t).Handler(), "/api/tabs/deluxe")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_BasicHasNoAdvancedRoutes(t *testing.T) {
	h := buildServer(t).Handler()
	for _, p := range []string{"/api/tabs/basic/download", "/api/tabs/basic/ws"} {
		rec := get(t, h, p)
		require.Equal(t, http.StatusNotFound, rec.Code, p)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/tabs/basic/undo", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_ServesStaticAssets(t *testing.T) {
	h := buildServer(t).Handler()
	rec := get(t, h, "/static/app.js")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "public, max-age=604800", rec.Header().Get("Cache-Control"))

	rec = get(t, h, "/static/missing.css")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStaticWithCache(t *testing.T) {
	files := fstest.MapFS{
		"site.css":     {Data: []byte("body{}")},
		"img/logo.svg": {Data: []byte("<svg/>")},
	}
	h := StaticWithCache(files, time.Hour)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/site.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))
	require.Equal(t, "body{}", rec.Body.String())

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/img", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/img/logo.svg", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestChangeTheme_Cycles(t *testing.T) {
	h := buildServer(t).Handler()
	want := []string{"dark", "auto", "light"}
	current := "light"
	for _, next := range want {
		req := httptest.NewRequest(http.MethodGet, "/theme", nil)
		req.Header.Set("Referer", "/about")
		req.AddCookie(&http.Cookie{Name: "theme", Value: current})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/about", rec.Header().Get("Location"))
		cookie := findCookie(rec, "theme")
		require.NotNil(t, cookie)
		require.Equal(t, next, cookie.Value)
		current = next
	}
}

func TestToggles_IgnoreForeignReferer(t *testing.T) {
	h := buildServer(t).Handler()
	for _, target := range []string{"/theme", "/lang?lang=en"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.Header.Set("Referer", "https://evil.test/login")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/", rec.Header().Get("Location"), target)
	}
}

func TestTheme_AppliedToDocument(t *testing.T) {
	rec := get(t, buildServer(t).Handler(), "/", &http.Cookie{Name: "theme", Value: "dark"})
	require.Contains(t, rec.Body.String(), `data-theme="dark"`)

	rec = get(t, buildServer(t).Handler(), "/", &http.Cookie{Name: "theme", Value: "neon"})
	require.Contains(t, rec.Body.String(), `data-theme="light"`)
}

func TestChangeLanguage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/lang?lang=pt-BR", nil)
	req.Header.Set("Referer", "/tabs")
	rec := httptest.NewRecorder()
	ChangeLanguage(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/tabs", rec.Header().Get("Location"))
	require.Equal(t, "pt-BR", findCookie(rec, "lang").Value)

	rec = get(t, buildServer(t).Handler(), "/", &http.Cookie{Name: "lang", Value: "pt-BR"})
	require.Contains(t, rec.Body.String(), "Início")
	require.Contains(t, rec.Body.String(), `lang="pt-BR"`)
}

func TestRememberPage(t *testing.T) {
	h := buildServer(t).Handler()
	rec := get(t, h, "/tabs/advanced")
	c := findCookie(rec, "activeTab")
	require.NotNil(t, c)
	require.Equal(t, "/tabs/advanced", c.Value)

	rec = get(t, h, "/api/tabs/basic")
	require.Nil(t, findCookie(rec, "activeTab"))

	rec = get(t, h, "/", c)
	require.Contains(t, rec.Body.String(), `href="/tabs/advanced">Continue where you left off`)
}

func TestPageAlert(t *testing.T) {
	h := buildServer(t).Handler()
	rec := get(t, h, "/tabs?alert=max_tabs")
	require.Contains(t, rec.Body.String(), `data-alert="Maximum of 15 tabs allowed"`)

	rec = get(t, h, "/tabs?alert=bogus")
	require.NotContains(t, rec.Body.String(), "page-alert")
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
