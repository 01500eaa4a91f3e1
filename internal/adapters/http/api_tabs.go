package httpserver

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/OliveiraNt/ltu-generator/internal/adapters/http/ui/pages"
	"github.com/OliveiraNt/ltu-generator/internal/application"
	"github.com/OliveiraNt/ltu-generator/internal/domain"
	"github.com/OliveiraNt/ltu-generator/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/invopop/ctxi18n/i18n"
)

// wantsJSON separates fetch calls from plain form posts. Forms get a
// redirect back to the editor, fetch calls get the workspace state.
func wantsJSON(r *http.Request) bool {
	if r.Method == http.MethodDelete {
		return true
	}
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

func notify(w http.ResponseWriter, kind, msg string) {
	w.Header().Set("X-Notification-Type", kind)
	w.Header().Set("X-Notification", msg)
	w.Header().Set("X-Notification-Base64", base64.StdEncoding.EncodeToString([]byte(msg)))
}

// errorStatus maps an application error to a status and an alert key.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, application.ErrMaxTabs):
		return http.StatusConflict, "max_tabs"
	case errors.Is(err, application.ErrMinTabs):
		return http.StatusConflict, "min_tabs"
	case errors.Is(err, application.ErrNothingGenerated):
		return http.StatusConflict, "nothing_generated"
	case errors.Is(err, application.ErrTabNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, application.ErrUnknownVariant):
		return http.StatusNotFound, ""
	case errors.Is(err, application.ErrUnknownTheme), errors.Is(err, application.ErrUnknownAnimation):
		return http.StatusBadRequest, ""
	}
	return http.StatusInternalServerError, ""
}

// fail reports err as notification headers to fetch callers and as an
// alert redirect to form posts.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, v domain.Variant, err error) {
	status, key := errorStatus(err)
	if key == "" || wantsJSON(r) {
		msg := err.Error()
		if key != "" {
			msg = i18n.T(r.Context(), "alerts."+key)
		}
		notify(w, "error", msg)
		http.Error(w, err.Error(), status)
		return
	}
	http.Redirect(w, r, pages.EditorPath(v)+"?alert="+key, http.StatusSeeOther)
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, ws *application.Workspace, status int) {
	if !wantsJSON(r) {
		http.Redirect(w, r, pages.EditorPath(ws.Variant()), http.StatusSeeOther)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ws.State()); err != nil {
		utils.Logger.Error("encode workspace state failed", "variant", ws.Variant(), "err", err)
	}
}

func (s *Server) workspace(w http.ResponseWriter, r *http.Request) (*application.Workspace, bool) {
	name := chi.URLParam(r, "variant")
	ws, err := s.generator.Lookup(name)
	if err != nil {
		utils.Logger.Warn("api unknown variant", "variant", name)
		http.Error(w, err.Error(), http.StatusNotFound)
		return nil, false
	}
	return ws, true
}

func (s *Server) advancedOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, ok := domain.ParseVariant(chi.URLParam(r, "variant"))
		if !ok || !v.Advanced() {
			http.NotFound(w, r)
			return
		}
		next(w, r)
	}
}

func (s *Server) apiState(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ws.State()); err != nil {
		utils.Logger.Error("encode workspace state failed", "variant", ws.Variant(), "err", err)
	}
}

func (s *Server) apiAddTab(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	if _, err := ws.AddTab(r.Context()); err != nil {
		utils.Logger.Warn("api add tab rejected", "variant", ws.Variant(), "err", err)
		s.fail(w, r, ws.Variant(), err)
		return
	}
	s.respond(w, r, ws, http.StatusCreated)
}

func (s *Server) apiUpdateTab(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	var body struct {
		Heading *string `json:"heading"`
		Content *string `json:"content"`
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			utils.Logger.Warn("api update tab bad request", "variant", ws.Variant(), "id", id, "err", err)
			notify(w, "error", err.Error())
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			utils.Logger.Warn("api update tab bad form", "variant", ws.Variant(), "id", id, "err", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if vals, ok := r.PostForm["heading"]; ok && len(vals) > 0 {
			body.Heading = &vals[0]
		}
		if vals, ok := r.PostForm["content"]; ok && len(vals) > 0 {
			body.Content = &vals[0]
		}
	}

	if err := ws.UpdateTab(r.Context(), id, body.Heading, body.Content); err != nil {
		utils.Logger.Warn("api update tab failed", "variant", ws.Variant(), "id", id, "err", err)
		s.fail(w, r, ws.Variant(), err)
		return
	}
	s.respond(w, r, ws, http.StatusOK)
}

func (s *Server) apiRemoveTab(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	if err := ws.RemoveTab(r.Context(), id); err != nil {
		utils.Logger.Warn("api remove tab rejected", "variant", ws.Variant(), "id", id, "err", err)
		s.fail(w, r, ws.Variant(), err)
		return
	}
	s.respond(w, r, ws, http.StatusOK)
}

func (s *Server) apiSelectTab(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	if err := ws.Select(id); err != nil {
		utils.Logger.Warn("api select tab failed", "variant", ws.Variant(), "id", id, "err", err)
		s.fail(w, r, ws.Variant(), err)
		return
	}
	s.respond(w, r, ws, http.StatusOK)
}

func (s *Server) apiGenerate(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	ws.Generate()
	s.respond(w, r, ws, http.StatusOK)
}

func (s *Server) apiToggleOutput(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	visible := ws.ToggleOutput()
	utils.Logger.Debug("output panel toggled", "variant", ws.Variant(), "visible", visible)
	s.respond(w, r, ws, http.StatusOK)
}

func (s *Server) apiOutput(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	out, err := ws.Output()
	if err != nil {
		status, _ := errorStatus(err)
		notify(w, "error", i18n.T(r.Context(), "alerts.nothing_generated"))
		http.Error(w, err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(out)); err != nil {
		utils.Logger.Error("write output failed", "variant", ws.Variant(), "err", err)
	}
}

// formIndex accepts either a table index or a display name.
func formIndex(raw string, lookup func(string) (int, bool)) (int, bool) {
	if i, err := strconv.Atoi(raw); err == nil {
		return i, true
	}
	return lookup(raw)
}

func (s *Server) apiStyle(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	st := ws.State()
	themeIdx, animIdx := st.ThemeIndex, st.AnimationIndex
	if raw := r.FormValue("theme"); raw != "" {
		i, found := formIndex(raw, domain.LookupTheme)
		if !found {
			s.fail(w, r, ws.Variant(), application.ErrUnknownTheme)
			return
		}
		themeIdx = i
	}
	if raw := r.FormValue("animation"); raw != "" {
		i, found := formIndex(raw, domain.LookupAnimation)
		if !found {
			s.fail(w, r, ws.Variant(), application.ErrUnknownAnimation)
			return
		}
		animIdx = i
	}
	if err := ws.SetStyle(themeIdx, animIdx); err != nil {
		utils.Logger.Warn("api set style rejected", "variant", ws.Variant(), "err", err)
		s.fail(w, r, ws.Variant(), err)
		return
	}
	s.respond(w, r, ws, http.StatusOK)
}

func (s *Server) apiUndo(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	if _, moved := ws.Undo(); !moved {
		utils.Logger.Debug("nothing to undo", "variant", ws.Variant())
	}
	s.respond(w, r, ws, http.StatusOK)
}

func (s *Server) apiRedo(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	if _, moved := ws.Redo(); !moved {
		utils.Logger.Debug("nothing to redo", "variant", ws.Variant())
	}
	s.respond(w, r, ws, http.StatusOK)
}

func (s *Server) apiDownload(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	out, err := ws.Output()
	if err != nil {
		utils.Logger.Warn("api download before generate", "variant", ws.Variant())
		s.fail(w, r, ws.Variant(), err)
		return
	}
	name := ws.DownloadName()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	if _, err := w.Write([]byte(out)); err != nil {
		utils.Logger.Error("write download failed", "variant", ws.Variant(), "err", err)
		return
	}
	utils.Logger.Info("html downloaded", "variant", ws.Variant(), "file", name)
}
