package http

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
)

const siteName = "BlueSky VHS"

// TemplateRenderer serves the parsed page templates through echo's
// Renderer interface. Templates are parsed once at startup.
type TemplateRenderer struct {
	templates *template.Template
}

func NewTemplateRenderer(dir string) (*TemplateRenderer, error) {
	t := template.New("").Funcs(template.FuncMap{
		"currentYear": func() int { return time.Now().Year() },
	})

	t, err := t.ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &TemplateRenderer{templates: t}, nil
}

func (r *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// pageTitle builds "Page | BlueSky VHS" the way the site has always
// titled its pages.
func pageTitle(page string) string {
	return fmt.Sprintf("%s | %s", page, siteName)
}
