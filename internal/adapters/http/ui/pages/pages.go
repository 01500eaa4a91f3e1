package pages

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/OliveiraNt/ltu-generator/internal/application"
	"github.com/OliveiraNt/ltu-generator/internal/config"
	"github.com/OliveiraNt/ltu-generator/internal/domain"
)

//go:generate templ generate

// Meta carries what every page needs to draw the shell.
type Meta struct {
	Title string
	Path  string
	Theme domain.SiteTheme
	Lang  string
	Site  config.SiteConfig
	Now   time.Time
	Alert string
}

type navItem struct {
	key  string
	href string
}

var navigation = []navItem{
	{"nav.home", "/"},
	{"nav.about", "/about"},
	{"nav.tabs", "/tabs"},
	{"nav.advanced", "/tabs/advanced"},
	{"nav.escape_room", "/escape-room"},
	{"nav.coding_races", "/coding-races"},
	{"nav.court_room", "/court-room"},
}

var howToSteps = [][2]string{
	{"tabs.step_configure", "tabs.step_configure_text"},
	{"tabs.step_generate", "tabs.step_generate_text"},
	{"tabs.step_moodle", "tabs.step_moodle_text"},
}

func documentTitle(m Meta) string {
	if m.Title == "" {
		return m.Site.Title
	}
	return m.Title + " | " + m.Site.Title
}

func documentLang(m Meta) string {
	if m.Lang == "" {
		return "en"
	}
	return m.Lang
}

func themeIcon(t domain.SiteTheme) string {
	switch t {
	case domain.SiteThemeDark:
		return `<svg class="icon" fill="currentColor" viewBox="0 0 20 20"><path d="M17.293 13.293A8 8 0 016.707 2.707a8.001 8.001 0 1010.586 10.586z"/></svg>`
	case domain.SiteThemeAuto:
		return `<svg class="icon" fill="currentColor" viewBox="0 0 20 20"><path fill-rule="evenodd" d="M3 5a2 2 0 012-2h10a2 2 0 012 2v8a2 2 0 01-2 2h-2.22l.123.489.804.804A1 1 0 0113 18H7a1 1 0 01-.707-1.707l.804-.804L7.22 15H5a2 2 0 01-2-2V5zm5.771 7H5V5h10v7H8.771z" clip-rule="evenodd"/></svg>`
	}
	return `<svg class="icon" fill="currentColor" viewBox="0 0 20 20"><circle cx="10" cy="10" r="4"/><path d="M10 1v2M10 17v2M1 10h2M17 10h2M3.6 3.6l1.4 1.4M15 15l1.4 1.4M3.6 16.4 5 15M15 5l1.4-1.4" stroke="currentColor" stroke-width="1.5"/></svg>`
}

// Initials returns the first letter of every word in name.
func Initials(name string) string {
	var b strings.Builder
	for _, f := range strings.Fields(name) {
		for _, r := range f {
			b.WriteRune(r)
			break
		}
	}
	return b.String()
}

// APIBase is the editor endpoint prefix of a variant.
func APIBase(v domain.Variant) string {
	return "/api/tabs/" + string(v)
}

// EditorPath is the page that edits a variant.
func EditorPath(v domain.Variant) string {
	if v.Advanced() {
		return "/tabs/advanced"
	}
	return "/tabs"
}

func tabURL(v domain.Variant, id string, suffix string) string {
	return APIBase(v) + "/tabs/" + url.PathEscape(id) + suffix
}

func editorTitleKey(v domain.Variant) string {
	if v.Advanced() {
		return "tabs.advanced_title"
	}
	return "tabs.title"
}

func tabCounter(st application.WorkspaceState) string {
	return strconv.Itoa(len(st.Tabs)) + "/" + strconv.Itoa(st.MaxTabs)
}

func activeTab(st application.WorkspaceState) domain.Tab {
	for _, t := range st.Tabs {
		if t.ID == st.ActiveID {
			return t
		}
	}
	return domain.Tab{}
}
