package mid

import (
	"context"
	"net/http"

	"github.com/OliveiraNt/ltu-generator/internal/domain"
)

// ThemeCookie holds the site theme preference.
const ThemeCookie = "theme"

type themeKey struct{}

// Theme reads the theme cookie into the request context.
func Theme(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t := domain.SiteThemeLight
		if c, err := r.Cookie(ThemeCookie); err == nil {
			t = domain.ParseSiteTheme(c.Value)
		}
		ctx := context.WithValue(r.Context(), themeKey{}, t)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SiteTheme returns the theme stored by Theme, or light.
func SiteTheme(ctx context.Context) domain.SiteTheme {
	if t, ok := ctx.Value(themeKey{}).(domain.SiteTheme); ok {
		return t
	}
	return domain.SiteThemeLight
}

// SetTheme writes the theme cookie.
func SetTheme(w http.ResponseWriter, t domain.SiteTheme) {
	http.SetCookie(w, &http.Cookie{
		Name:     ThemeCookie,
		Value:    string(t),
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(cookieAge.Seconds()),
	})
}
