// templates.go
package dashboard

import (
	"embed"
	"html/template"
	"io/fs"
)

const (
	pageTitle    = "Dash Viz"
	pageSubtitle = "A Transform 2020 Project"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var layoutTemplate = template.Must(template.New("layout.html").ParseFS(templateFS, "templates/layout.html"))

func staticFiles() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
