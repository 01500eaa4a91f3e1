// Package locales provides the embedded translation files (en, pt-BR) used by
// the site shell and the generator pages.
package locales

import "embed"

//go:embed en.yaml
//go:embed pt-BR.yaml

// Content is an embedded file system containing the locale YAML files.
var Content embed.FS
