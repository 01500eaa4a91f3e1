// Package generator renders a tab collection into a standalone HTML document
// with inline CSS and JavaScript, ready to paste into an LMS page.
//
// Tab text is interpolated verbatim unless Options.EscapeContent is set, so
// markup typed into a heading or body reaches the document unchanged.
package generator

import (
	"embed"
	"html"
	"strings"
	"sync/atomic"
	"text/template"

	"github.com/OliveiraNt/ltu-generator/internal/domain"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// Options tunes a Renderer.
type Options struct {
	// EscapeContent HTML-escapes tab ids, headings and bodies.
	EscapeContent bool
}

// Renderer turns tab collections into documents. It is safe for concurrent use.
type Renderer struct {
	basic    *template.Template
	advanced *template.Template
	escape   atomic.Bool
}

type basicData struct {
	Tabs []domain.Tab
}

type advancedData struct {
	Tabs      []domain.Tab
	Theme     domain.ColorTheme
	Animation domain.Animation
}

// New parses the embedded templates. It panics if they are malformed, which
// can only happen at build time.
func New(opts Options) *Renderer {
	r := &Renderer{}
	r.escape.Store(opts.EscapeContent)
	funcs := template.FuncMap{"text": r.text}
	r.basic = template.Must(template.New("basic.html.tmpl").Funcs(funcs).ParseFS(templateFS, "templates/basic.html.tmpl"))
	r.advanced = template.Must(template.New("advanced.html.tmpl").Funcs(funcs).ParseFS(templateFS, "templates/advanced.html.tmpl"))
	return r
}

// SetEscapeContent switches escaping for documents rendered afterwards.
func (r *Renderer) SetEscapeContent(on bool) {
	r.escape.Store(on)
}

// EscapeContent reports whether tab text is escaped.
func (r *Renderer) EscapeContent() bool {
	return r.escape.Load()
}

func (r *Renderer) text(s string) string {
	if r.escape.Load() {
		return html.EscapeString(s)
	}
	return s
}

// Basic renders the fixed-color document with a click-only tab switcher.
func (r *Renderer) Basic(tabs []domain.Tab) string {
	return execute(r.basic, basicData{Tabs: tabs})
}

// Advanced renders the themed, animated document with keyboard navigation
// and ARIA state.
func (r *Renderer) Advanced(tabs []domain.Tab, theme domain.ColorTheme, anim domain.Animation) string {
	return execute(r.advanced, advancedData{Tabs: tabs, Theme: theme, Animation: anim})
}

// Render dispatches on the variant. Theme and animation are ignored for the
// basic variant.
func (r *Renderer) Render(v domain.Variant, tabs []domain.Tab, theme domain.ColorTheme, anim domain.Animation) string {
	if v.Advanced() {
		return r.Advanced(tabs, theme, anim)
	}
	return r.Basic(tabs)
}

// DownloadName is the file name offered for a document rendered with theme.
func DownloadName(theme domain.ColorTheme) string {
	return "tabs-" + theme.Slug() + ".html"
}

// The templates only call a pure string func and write to a strings.Builder,
// so execution cannot fail once parsing succeeded.
func execute(t *template.Template, data any) string {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		panic("generator: " + err.Error())
	}
	return b.String()
}
