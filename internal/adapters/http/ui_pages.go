package httpserver

import (
	"net/http"

	"github.com/OliveiraNt/ltu-generator/internal/adapters/http/mid"
	"github.com/OliveiraNt/ltu-generator/internal/adapters/http/ui/pages"
	"github.com/OliveiraNt/ltu-generator/internal/domain"
	"github.com/OliveiraNt/ltu-generator/internal/utils"

	"github.com/a-h/templ"
	"github.com/invopop/ctxi18n/i18n"
)

// alertKeys are the notices a redirect may ask a page to show.
var alertKeys = map[string]bool{
	"max_tabs":          true,
	"min_tabs":          true,
	"not_found":         true,
	"nothing_generated": true,
}

func (s *Server) meta(r *http.Request, titleKey string) pages.Meta {
	m := pages.Meta{
		Path:  r.URL.Path,
		Theme: mid.SiteTheme(r.Context()),
		Lang:  mid.Lang(r),
		Site:  s.site.Site(),
		Now:   s.now(),
	}
	if titleKey != "" {
		m.Title = i18n.T(r.Context(), titleKey)
	}
	if key := r.URL.Query().Get("alert"); alertKeys[key] {
		m.Alert = i18n.T(r.Context(), "alerts."+key)
	}
	return m
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, titleKey string, body templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	ctx := templ.WithChildren(r.Context(), body)
	if err := pages.Layout(s.meta(r, titleKey)).Render(ctx, w); err != nil {
		utils.Logger.Error("render page failed", "path", r.URL.Path, "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (s *Server) uiHome(w http.ResponseWriter, r *http.Request) {
	utils.Logger.Debug("render home")
	resume := mid.LastPage(r)
	if resume == "/" {
		resume = ""
	}
	s.renderPage(w, r, "", pages.Home(resume))
}

func (s *Server) uiAbout(w http.ResponseWriter, r *http.Request) {
	utils.Logger.Debug("render about")
	s.renderPage(w, r, "nav.about", pages.About(s.site.Site(), s.now().Year(), s.features))
}

func (s *Server) uiComingSoon(titleKey string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderPage(w, r, titleKey, pages.ComingSoon(titleKey))
	}
}

func (s *Server) uiEditor(v domain.Variant) http.HandlerFunc {
	titleKey := "nav.tabs"
	if v.Advanced() {
		titleKey = "nav.advanced"
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := s.generator.Workspace(v)
		if err != nil {
			utils.Logger.Error("editor workspace missing", "variant", v, "err", err)
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		utils.Logger.Debug("render editor", "variant", v)
		var preview string
		if v.Advanced() {
			preview = ws.Preview()
		}
		s.renderPage(w, r, titleKey, pages.TabsEditor(ws.State(), preview))
	}
}
