// Package web holds the embedded page templates and static assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed static
var staticFiles embed.FS

//go:embed templates
var templateFiles embed.FS

// StaticFS is the embedded static file system with the "static/" prefix stripped.
var StaticFS fs.FS

// Templates is the compiled template set for all views.
var Templates *template.Template

func init() {
	var err error

	StaticFS, err = fs.Sub(staticFiles, "static")
	if err != nil {
		panic("web: failed to create static FS: " + err.Error())
	}

	Templates, err = template.New("").ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		panic("web: failed to parse templates: " + err.Error())
	}
}
