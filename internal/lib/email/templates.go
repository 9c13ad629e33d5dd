package email

import (
	"embed"
	"html/template"
)

// Template is a string-based enum naming email templates.
type Template string

const (
	// TemplateOrphanageCreated corresponds to templates/orphanage_created.html
	TemplateOrphanageCreated Template = "orphanage_created"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

func (t Template) fileName() string {
	return string(t) + ".html"
}
