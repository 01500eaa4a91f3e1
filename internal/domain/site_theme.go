package domain

// SiteTheme is the display mode of the authoring tool itself. It is distinct
// from the ColorTheme of a generated document.
type SiteTheme string

const (
	SiteThemeLight SiteTheme = "light"
	SiteThemeDark  SiteTheme = "dark"
	SiteThemeAuto  SiteTheme = "auto"
)

// ParseSiteTheme maps a stored value to a SiteTheme, defaulting to light.
func ParseSiteTheme(s string) SiteTheme {
	switch SiteTheme(s) {
	case SiteThemeDark, SiteThemeAuto:
		return SiteTheme(s)
	}
	return SiteThemeLight
}

// Next cycles light -> dark -> auto -> light.
func (t SiteTheme) Next() SiteTheme {
	switch t {
	case SiteThemeLight:
		return SiteThemeDark
	case SiteThemeDark:
		return SiteThemeAuto
	}
	return SiteThemeLight
}
