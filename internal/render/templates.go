package render

import (
	"embed"
	"html/template"
	"os"
	"path/filepath"
)

//go:embed templates
var templateFS embed.FS

// pageTemplate parses the shared layout plus one page template. Every page
// defines a "content" block rendered inside "base".
func pageTemplate(name string) *template.Template {
	return template.Must(template.ParseFS(templateFS,
		"templates/base.tmpl",
		"templates/pubentry.tmpl",
		"templates/"+name,
	))
}

var (
	indexTmpl        = pageTemplate("index.tmpl")
	publicationsTmpl = pageTemplate("publications.tmpl")
	membersTmpl      = pageTemplate("members.tmpl")
	projectsTmpl     = pageTemplate("projects.tmpl")
	galleryTmpl      = pageTemplate("gallery.tmpl")
)

// writeStylesheet emits the embedded default stylesheet into outDir.
func writeStylesheet(outDir string) error {
	css, err := templateFS.ReadFile("templates/style.css")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outDir, "style.css"), css, 0o644)
}
