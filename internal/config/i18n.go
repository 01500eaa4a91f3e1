package config

import (
	"github.com/OliveiraNt/ltu-generator/locales"
	"github.com/invopop/ctxi18n"
)

// InitI18n loads the embedded locales with English as the fallback.
func InitI18n() {
	err := ctxi18n.LoadWithDefault(locales.Content, "en")
	if err != nil {
		panic(err)
	}
}
