// Package httpserver serves the coursework site and the tabs generator
// editor: HTML pages, the form/fetch editor API and the live preview
// websocket.
package httpserver

import (
	"bytes"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/OliveiraNt/ltu-generator/internal/adapters/http/mid"
	"github.com/OliveiraNt/ltu-generator/internal/adapters/http/ui"
	"github.com/OliveiraNt/ltu-generator/internal/application"
	"github.com/OliveiraNt/ltu-generator/internal/config"
	"github.com/OliveiraNt/ltu-generator/internal/domain"
	"github.com/OliveiraNt/ltu-generator/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// SiteSource provides the site facts shown in the shell and About page.
type SiteSource interface {
	Site() config.SiteConfig
}

// Server provides the Web UI and editor API endpoints.
type Server struct {
	generator *application.GeneratorService
	site      SiteSource
	features  string
	hub       *previewHub
	now       func() time.Time
}

// New creates a new HTTP server instance. featuresHTML is the rendered
// feature list of the About page.
func New(generator *application.GeneratorService, site SiteSource, featuresHTML string) *Server {
	s := &Server{
		generator: generator,
		site:      site,
		features:  featuresHTML,
		hub:       newPreviewHub(),
		now:       time.Now,
	}
	for _, v := range domain.Variants {
		ws, err := generator.Workspace(v)
		if err != nil {
			continue
		}
		ws.OnChange(func() {
			if s.hub.hasSubscribers(v) {
				s.hub.publish(v, ws.Preview())
			}
		})
	}
	return s
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(mid.I18n)
	r.Use(mid.Theme)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog)
	r.Use(mid.RememberPage)

	cacheDuration := 7 * 24 * time.Hour
	r.Handle("/static/*", http.StripPrefix("/static/", StaticWithCache(ui.StaticFiles(), cacheDuration)))

	r.Get("/lang", ChangeLanguage)
	r.Get("/theme", ChangeTheme)

	r.Get("/", s.uiHome)
	r.Get("/about", s.uiAbout)
	r.Get("/tabs", s.uiEditor(domain.VariantBasic))
	r.Get("/tabs/advanced", s.uiEditor(domain.VariantAdvanced))
	r.Get("/escape-room", s.uiComingSoon("nav.escape_room"))
	r.Get("/coding-races", s.uiComingSoon("nav.coding_races"))
	r.Get("/court-room", s.uiComingSoon("nav.court_room"))

	r.Route("/api/tabs/{variant}", func(r chi.Router) {
		r.Get("/", s.apiState)
		r.Post("/tabs", s.apiAddTab)
		r.Post("/tabs/{id}", s.apiUpdateTab)
		r.Post("/tabs/{id}/delete", s.apiRemoveTab)
		r.Delete("/tabs/{id}", s.apiRemoveTab)
		r.Post("/tabs/{id}/select", s.apiSelectTab)
		r.Post("/generate", s.apiGenerate)
		r.Post("/output/toggle", s.apiToggleOutput)
		r.Get("/output", s.apiOutput)

		r.Post("/style", s.advancedOnly(s.apiStyle))
		r.Post("/undo", s.advancedOnly(s.apiUndo))
		r.Post("/redo", s.advancedOnly(s.apiRedo))
		r.Get("/download", s.advancedOnly(s.apiDownload))
		r.Get("/ws", s.advancedOnly(s.wsPreview))
	})

	return r
}

// Run starts the HTTP server on the given address.
func (s *Server) Run(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	utils.Logger.Info("HTTP server listening", "addr", addr)
	return srv.ListenAndServe()
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		dur := time.Since(start)
		utils.Logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", dur.String(),
		)
	})
}

// StaticWithCache serves files from fsys applying a public max-age cache header.
func StaticWithCache(fsys fs.FS, maxAge time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		info, err := fs.Stat(fsys, name)
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(int(maxAge.Seconds())))

		// http.ServeFileFS needs Go 1.22; serve the same file via ServeContent.
		f, err := fsys.Open(name)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer f.Close()
		rs, ok := f.(io.ReadSeeker)
		if !ok {
			data, err := io.ReadAll(f)
			if err != nil {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			rs = bytes.NewReader(data)
		}
		http.ServeContent(w, r, name, info.ModTime(), rs)
	}
}

// ChangeLanguage changes the language preference via a query parameter and sets a cookie.
func ChangeLanguage(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "lang",
		Value:    lang,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   31536000,
	})

	http.Redirect(w, r, mid.ReturnPath(r), http.StatusSeeOther)
}

// ChangeTheme advances the site theme light → dark → auto and returns to
// the previous page.
func ChangeTheme(w http.ResponseWriter, r *http.Request) {
	next := mid.SiteTheme(r.Context()).Next()
	mid.SetTheme(w, next)
	utils.Logger.Debug("site theme changed", "theme", next)
	http.Redirect(w, r, mid.ReturnPath(r), http.StatusSeeOther)
}
