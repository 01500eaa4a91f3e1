package httpserver

import (
	"context"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/OliveiraNt/ltu-generator/internal/application"
	"github.com/OliveiraNt/ltu-generator/internal/config"
	"github.com/OliveiraNt/ltu-generator/internal/generator"
	"github.com/OliveiraNt/ltu-generator/internal/infrastructure/repository"
	"github.com/OliveiraNt/ltu-generator/internal/infrastructure/storage"
	"github.com/OliveiraNt/ltu-generator/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/invopop/ctxi18n"
)

var i18nOnce sync.Once

func TestMain(m *testing.M) {
	utils.InitLogger()
	utils.SetLogLevel("error")
	i18nOnce.Do(config.InitI18n)
	os.Exit(m.Run())
}

type staticSite struct{ site config.SiteConfig }

func (s staticSite) Site() config.SiteConfig { return s.site }

// buildServer builds a Server over in-memory storage with default tabs.
func buildServer(t *testing.T) *Server {
	t.Helper()
	repo := repository.NewTabRepository(storage.NewMemoryStore())
	svc := application.NewGeneratorService(repo, generator.New(generator.Options{}))
	svc.Load(context.Background())
	s := New(svc, staticSite{config.Default().Site}, "<h2>Project Features</h2>")
	s.now = func() time.Time { return time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC) }
	return s
}

// withLocale puts the English locale on req like the I18n middleware does.
func withLocale(t *testing.T, req *http.Request) *http.Request {
	t.Helper()
	ctx, err := ctxi18n.WithLocale(req.Context(), "en")
	if err != nil {
		t.Fatalf("locale: %v", err)
	}
	return req.WithContext(ctx)
}

// chiCtxWithParam adds a single URL param to request context for handler funcs using chi.URLParam
func chiCtxWithParam(key, val string, req *http.Request) context.Context {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, val)
	return context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
}

// chiCtxWithParams adds multiple URL params to request context
func chiCtxWithParams(params map[string]string, req *http.Request) context.Context {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
}
