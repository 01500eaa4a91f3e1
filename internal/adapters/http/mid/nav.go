package mid

import (
	"net/http"
	"net/url"
	"strings"
)

// NavCookie remembers the last page the visitor opened.
const NavCookie = "activeTab"

// RememberPage stores the path of every successful page view in NavCookie.
// API, static and toggle endpoints are not pages and are skipped.
func RememberPage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && isPage(r.URL.Path) {
			http.SetCookie(w, &http.Cookie{
				Name:     NavCookie,
				Value:    r.URL.Path,
				Path:     "/",
				SameSite: http.SameSiteLaxMode,
				MaxAge:   int(cookieAge.Seconds()),
			})
		}
		next.ServeHTTP(w, r)
	})
}

// LastPage returns the remembered path, or "" when none is set.
func LastPage(r *http.Request) string {
	c, err := r.Cookie(NavCookie)
	if err != nil || !isPage(c.Value) {
		return ""
	}
	return c.Value
}

// ReturnPath is where a toggle endpoint sends the visitor afterwards: the
// referring page when it is a page of this site, then the remembered page,
// then the home page. Referers from other hosts are ignored.
func ReturnPath(r *http.Request) string {
	if ref, err := url.Parse(r.Header.Get("Referer")); err == nil && ref.Path != "" {
		sameHost := ref.Host == "" || strings.EqualFold(ref.Host, r.Host)
		schemeOK := ref.Scheme == "" || ref.Scheme == "http" || ref.Scheme == "https"
		if sameHost && schemeOK && ref.User == nil && isPage(ref.Path) {
			if ref.RawQuery != "" {
				return ref.Path + "?" + ref.RawQuery
			}
			return ref.Path
		}
	}
	if p := LastPage(r); p != "" {
		return p
	}
	return "/"
}

func isPage(p string) bool {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.Contains(p, "\\") {
		return false
	}
	for _, prefix := range []string{"/api/", "/static/", "/theme", "/lang"} {
		if strings.HasPrefix(p, prefix) {
			return false
		}
	}
	return true
}
