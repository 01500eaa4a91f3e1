// Package mid provides HTTP middleware for request processing: locale
// detection, the site theme cookie and the navigation memory cookie.
package mid

import (
	"net/http"
	"time"

	"github.com/OliveiraNt/ltu-generator/internal/utils"
	"github.com/invopop/ctxi18n"
)

const (
	langCookie = "lang"
	cookieAge  = 365 * 24 * time.Hour
)

// I18n is middleware that sets the request context with a locale based on cookies, query parameters, or headers.
func I18n(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var lang string

		if c, err := r.Cookie(langCookie); err == nil {
			lang = c.Value
		}

		if lang == "" {
			lang = r.URL.Query().Get("lang")
		}

		if lang == "" {
			lang = r.Header.Get("Accept-Language")
		}

		ctx, err := ctxi18n.WithLocale(r.Context(), lang)
		if err != nil {
			utils.Logger.Debug("falling back to default locale", "lang", lang, "err", err)
			ctx, _ = ctxi18n.WithLocale(r.Context(), "en")
		}

		if r.URL.Query().Has("lang") {
			http.SetCookie(w, &http.Cookie{
				Name:     langCookie,
				Value:    ctxi18n.Locale(ctx).Code().String(),
				Path:     "/",
				SameSite: http.SameSiteLaxMode,
				MaxAge:   int(cookieAge.Seconds()),
			})
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Lang returns the code of the request's locale.
func Lang(r *http.Request) string {
	if l := ctxi18n.Locale(r.Context()); l != nil {
		return l.Code().String()
	}
	return "en"
}
