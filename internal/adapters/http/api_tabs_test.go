package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/OliveiraNt/ltu-generator/internal/application"
	"github.com/OliveiraNt/ltu-generator/internal/domain"
	"github.com/stretchr/testify/require"
)

func fetch(t *testing.T, h http.Handler, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Accept", "application/json")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) application.WorkspaceState {
	t.Helper()
	var st application.WorkspaceState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	return st
}

func TestAPIState_Defaults(t *testing.T) {
	rec := fetch(t, buildServer(t).Handler(), http.MethodGet, "/api/tabs/basic", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	st := decodeState(t, rec)
	require.Equal(t, domain.VariantBasic, st.Variant)
	require.Len(t, st.Tabs, 3)
	require.Equal(t, "1", st.ActiveID)
	require.Equal(t, 15, st.MaxTabs)
	require.False(t, st.HasOutput)
}

func TestAPIAddTab_CapsAtFifteen(t *testing.T) {
	h := buildServer(t).Handler()
	for i := 4; i <= 15; i++ {
		rec := fetch(t, h, http.MethodPost, "/api/tabs/basic/tabs", nil)
		require.Equal(t, http.StatusCreated, rec.Code)
		st := decodeState(t, rec)
		require.Len(t, st.Tabs, i)
		require.Equal(t, st.Tabs[i-1].ID, st.ActiveID)
		require.Equal(t, domain.DefaultHeading(i), st.Tabs[i-1].Heading)
	}

	rec := fetch(t, h, http.MethodPost, "/api/tabs/basic/tabs", nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "error", rec.Header().Get("X-Notification-Type"))
	require.Equal(t, "Maximum of 15 tabs allowed", rec.Header().Get("X-Notification"))
	require.NotEmpty(t, rec.Header().Get("X-Notification-Base64"))

	st := decodeState(t, fetch(t, h, http.MethodGet, "/api/tabs/basic", nil))
	require.Len(t, st.Tabs, 15)
}

func TestAPIRemoveTab_KeepsOne(t *testing.T) {
	h := buildServer(t).Handler()
	rec := fetch(t, h, http.MethodDelete, "/api/tabs/advanced/tabs/nope", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	require.Equal(t, http.StatusOK, fetch(t, h, http.MethodDelete, "/api/tabs/advanced/tabs/1", nil).Code)
	rec = fetch(t, h, http.MethodPost, "/api/tabs/advanced/tabs/2/delete", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	st := decodeState(t, rec)
	require.Len(t, st.Tabs, 1)
	require.Equal(t, "3", st.ActiveID)

	rec = fetch(t, h, http.MethodDelete, "/api/tabs/advanced/tabs/3", nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "At least one tab is required", rec.Header().Get("X-Notification"))
}

func TestAPIFormPost_RedirectsWithAlert(t *testing.T) {
	s := buildServer(t)
	h := s.Handler()

	req := httptest.NewRequest(http.MethodPost, "/api/tabs/basic/tabs", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/tabs", rec.Header().Get("Location"))

	ws, err := s.generator.Workspace(domain.VariantBasic)
	require.NoError(t, err)
	for _, tab := range ws.Store().Tabs()[1:] {
		require.NoError(t, ws.RemoveTab(req.Context(), tab.ID))
	}

	last := ws.Store().Tabs()[0].ID
	req = httptest.NewRequest(http.MethodPost, "/api/tabs/basic/tabs/"+last+"/delete", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/tabs?alert=min_tabs", rec.Header().Get("Location"))
}

func TestAPIUpdateTab(t *testing.T) {
	s := buildServer(t)
	h := s.Handler()

	rec := fetch(t, h, http.MethodPost, "/api/tabs/basic/tabs/2", url.Values{"heading": {"Intro"}})
	require.Equal(t, http.StatusOK, rec.Code)
	st := decodeState(t, rec)
	require.Equal(t, "Intro", st.Tabs[1].Heading)
	require.Equal(t, domain.DefaultContent(2), st.Tabs[1].Content)

	rec = fetch(t, h, http.MethodPost, "/api/tabs/basic/tabs/2", url.Values{"content": {""}})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "", decodeState(t, rec).Tabs[1].Content)

	req := httptest.NewRequest(http.MethodPost, "/api/tabs/basic/tabs/3", strings.NewReader(`{"heading":"<b>Bold</b>"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "<b>Bold</b>", decodeState(t, rec).Tabs[2].Heading)

	rec = fetch(t, h, http.MethodPost, "/api/tabs/basic/tabs/99", url.Values{"heading": {"x"}})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Tab not found", rec.Header().Get("X-Notification"))
}

func TestAPISelectTab_Direct(t *testing.T) {
	s := buildServer(t)
	req := withLocale(t, httptest.NewRequest(http.MethodPost, "/api/tabs/basic/tabs/3/select", nil))
	req.Header.Set("Accept", "application/json")
	req = req.WithContext(chiCtxWithParams(map[string]string{"variant": "basic", "id": "3"}, req))
	rec := httptest.NewRecorder()
	s.apiSelectTab(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "3", decodeState(t, rec).ActiveID)
}

func TestAPIGenerateAndOutput(t *testing.T) {
	h := buildServer(t).Handler()

	rec := fetch(t, h, http.MethodGet, "/api/tabs/basic/output", nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "Generate the HTML output first", rec.Header().Get("X-Notification"))

	rec = fetch(t, h, http.MethodPost, "/api/tabs/basic/generate", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	st := decodeState(t, rec)
	require.True(t, st.HasOutput)
	require.True(t, st.OutputVisible)
	require.True(t, strings.HasPrefix(st.Output, "<!DOCTYPE html>"))

	rec = fetch(t, h, http.MethodGet, "/api/tabs/basic/output", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Equal(t, st.Output, rec.Body.String())

	rec = fetch(t, h, http.MethodPost, "/api/tabs/basic/output/toggle", nil)
	require.False(t, decodeState(t, rec).OutputVisible)
	rec = fetch(t, h, http.MethodPost, "/api/tabs/basic/output/toggle", nil)
	require.True(t, decodeState(t, rec).OutputVisible)
}

func TestAPIDownload(t *testing.T) {
	h := buildServer(t).Handler()

	rec := fetch(t, h, http.MethodGet, "/api/tabs/advanced/download", nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	fetch(t, h, http.MethodPost, "/api/tabs/advanced/style", url.Values{"theme": {"Forest Green"}, "animation": {"2"}})
	fetch(t, h, http.MethodPost, "/api/tabs/advanced/generate", nil)

	rec = fetch(t, h, http.MethodGet, "/api/tabs/advanced/download", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "attachment; filename=tabs-forest-green.html", rec.Header().Get("Content-Disposition"))
	require.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), "#2e7d32")
	require.Contains(t, rec.Body.String(), "tabSlide")
}

func TestAPIStyle_Rejects(t *testing.T) {
	h := buildServer(t).Handler()
	rec := fetch(t, h, http.MethodPost, "/api/tabs/advanced/style", url.Values{"theme": {"9"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	rec = fetch(t, h, http.MethodPost, "/api/tabs/advanced/style", url.Values{"animation": {"Spin"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	st := decodeState(t, fetch(t, h, http.MethodGet, "/api/tabs/advanced", nil))
	require.Equal(t, 0, st.ThemeIndex)
	require.Equal(t, 0, st.AnimationIndex)
}

func TestAPIUndoRedo_AcrossThemes(t *testing.T) {
	h := buildServer(t).Handler()

	var outputs []string
	for i := 0; i < 3; i++ {
		fetch(t, h, http.MethodPost, "/api/tabs/advanced/style", url.Values{"theme": {string(rune('0' + i))}})
		st := decodeState(t, fetch(t, h, http.MethodPost, "/api/tabs/advanced/generate", nil))
		outputs = append(outputs, st.Output)
	}
	require.NotEqual(t, outputs[0], outputs[1])
	require.NotEqual(t, outputs[1], outputs[2])

	fetch(t, h, http.MethodPost, "/api/tabs/advanced/undo", nil)
	st := decodeState(t, fetch(t, h, http.MethodPost, "/api/tabs/advanced/undo", nil))
	require.Equal(t, outputs[0], st.Output)
	require.False(t, st.CanUndo)
	require.True(t, st.CanRedo)

	st = decodeState(t, fetch(t, h, http.MethodPost, "/api/tabs/advanced/undo", nil))
	require.Equal(t, outputs[0], st.Output)

	st = decodeState(t, fetch(t, h, http.MethodPost, "/api/tabs/advanced/redo", nil))
	require.Equal(t, outputs[1], st.Output)
}

func TestErrorStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
		key    string
	}{
		{application.ErrMaxTabs, http.StatusConflict, "max_tabs"},
		{application.ErrMinTabs, http.StatusConflict, "min_tabs"},
		{application.ErrNothingGenerated, http.StatusConflict, "nothing_generated"},
		{application.ErrTabNotFound, http.StatusNotFound, "not_found"},
		{application.ErrUnknownTheme, http.StatusBadRequest, ""},
		{http.ErrBodyNotAllowed, http.StatusInternalServerError, ""},
	}
	for _, c := range cases {
		status, key := errorStatus(c.err)
		require.Equal(t, c.status, status, c.err.Error())
		require.Equal(t, c.key, key, c.err.Error())
	}
}

func TestEditorPage_ReflectsState(t *testing.T) {
	h := buildServer(t).Handler()
	for i := 0; i < 12; i++ {
		fetch(t, h, http.MethodPost, "/api/tabs/basic/tabs", nil)
	}
	body := get(t, h, "/tabs").Body.String()
	require.Contains(t, body, "15/15")
	require.Contains(t, body, `class="btn btn-success btn-sm" disabled`)
	require.NotContains(t, body, "generated-output")

	fetch(t, h, http.MethodPost, "/api/tabs/advanced/generate", nil)
	body = get(t, h, "/tabs/advanced").Body.String()
	require.Contains(t, body, `id="generated-output"`)
	require.Contains(t, body, `data-ws="/api/tabs/advanced/ws"`)
	require.Contains(t, body, `href="/api/tabs/advanced/download"`)
	require.Contains(t, body, "Midnight Dark")
}

func TestEditorPage_AutosaveTargets(t *testing.T) {
	h := buildServer(t).Handler()
	body := get(t, h, "/tabs").Body.String()
	require.Equal(t, 2, strings.Count(body, `data-tab-id="1"`))
	require.Contains(t, body, `class="chip-btn active" data-tab-id="1"`)
	require.Contains(t, body, `class="preview-tab active" data-tab-id="1"`)
	require.Contains(t, body, `data-autosave action="/api/tabs/basic/tabs/1"`)

	rec := fetch(t, h, http.MethodPost, "/api/tabs/basic/tabs/1", url.Values{
		"heading": {"Intro"},
		"content": {"<b>hello</b>"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	st := decodeState(t, rec)
	require.Equal(t, "1", st.ActiveID)
	require.Equal(t, "Intro", st.Tabs[0].Heading)
	require.Equal(t, "<b>hello</b>", st.Tabs[0].Content)

	body = get(t, h, "/tabs").Body.String()
	require.Contains(t, body, `data-tab-id="1">Intro</button>`)
	require.Contains(t, body, `<div class="preview-body" data-preview-body>&lt;b&gt;hello&lt;/b&gt;</div>`)
}
