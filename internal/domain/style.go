package domain

import "strings"

// ColorTheme is a named color preset for a generated document.
type ColorTheme struct {
	Name       string `json:"name"`
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

// Slug returns a lowercase, dash separated form of the theme name.
func (t ColorTheme) Slug() string {
	return slugify(t.Name)
}

// ColorThemes is the fixed table of color presets, selected by index.
var ColorThemes = [...]ColorTheme{
	{Name: "Classic Blue", Primary: "#007bff", Secondary: "#e7f1ff", Background: "#ffffff", Text: "#212529"},
	{Name: "Forest Green", Primary: "#2e7d32", Secondary: "#e8f5e9", Background: "#fbfdfb", Text: "#1b2e1c"},
	{Name: "Sunset Orange", Primary: "#e65100", Secondary: "#fff3e0", Background: "#fffaf5", Text: "#3e2723"},
	{Name: "Royal Purple", Primary: "#6a1b9a", Secondary: "#f3e5f5", Background: "#fdfaff", Text: "#2a1236"},
	{Name: "Midnight Dark", Primary: "#90caf9", Secondary: "#263238", Background: "#121212", Text: "#eceff1"},
}

// Animation is a named panel transition for a generated document. Keyframes
// holds the @keyframes block (empty for none) and Rule the declaration applied
// to the visible panel.
type Animation struct {
	Name      string `json:"name"`
	Keyframes string `json:"-"`
	Rule      string `json:"-"`
}

// Slug returns a lowercase, dash separated form of the animation name.
func (a Animation) Slug() string {
	return slugify(a.Name)
}

// Animations is the fixed table of animation presets, selected by index.
var Animations = [...]Animation{
	{Name: "None"},
	{
		Name:      "Fade",
		Keyframes: "@keyframes tabFade { from { opacity: 0; } to { opacity: 1; } }",
		Rule:      "animation: tabFade 0.4s ease;",
	},
	{
		Name:      "Slide",
		Keyframes: "@keyframes tabSlide { from { opacity: 0; transform: translateX(24px); } to { opacity: 1; transform: translateX(0); } }",
		Rule:      "animation: tabSlide 0.35s ease-out;",
	},
	{
		Name:      "Zoom",
		Keyframes: "@keyframes tabZoom { from { opacity: 0; transform: scale(0.95); } to { opacity: 1; transform: scale(1); } }",
		Rule:      "animation: tabZoom 0.3s ease-out;",
	},
	{
		Name:      "Bounce",
		Keyframes: "@keyframes tabBounce { 0% { transform: translateY(12px); opacity: 0; } 60% { transform: translateY(-4px); opacity: 1; } 100% { transform: translateY(0); } }",
		Rule:      "animation: tabBounce 0.5s ease;",
	},
}

// ThemeAt returns the color theme at index i.
func ThemeAt(i int) (ColorTheme, bool) {
	if i < 0 || i >= len(ColorThemes) {
		return ColorTheme{}, false
	}
	return ColorThemes[i], true
}

// AnimationAt returns the animation at index i.
func AnimationAt(i int) (Animation, bool) {
	if i < 0 || i >= len(Animations) {
		return Animation{}, false
	}
	return Animations[i], true
}

// LookupTheme finds a theme index by name or slug, case-insensitively.
func LookupTheme(name string) (int, bool) {
	for i, t := range ColorThemes {
		if strings.EqualFold(t.Name, name) || t.Slug() == slugify(name) {
			return i, true
		}
	}
	return 0, false
}

// LookupAnimation finds an animation index by name or slug, case-insensitively.
func LookupAnimation(name string) (int, bool) {
	for i, a := range Animations {
		if strings.EqualFold(a.Name, name) || a.Slug() == slugify(name) {
			return i, true
		}
	}
	return 0, false
}

func slugify(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}
