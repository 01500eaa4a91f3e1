// Package ui provides the embedded static assets of the web interface: the
// site stylesheet and the small script that drives alerts, clipboard copy,
// autosave and the live preview.
package ui

import (
	"embed"
	"io/fs"
)

//go:embed static/*
var staticFiles embed.FS

// StaticFiles returns the assets rooted at the static directory.
func StaticFiles() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
