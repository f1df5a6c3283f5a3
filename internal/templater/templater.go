// Package templater renders documentation pages from a rendering context.
// Built-in templates are embedded; a theme directory may override any of them
// by file name.
package templater

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"time"
)

//go:embed templates
var embeddedTemplates embed.FS

// PageTemplate is the layout every page is rendered with.
const PageTemplate = "page.html"

// ErrTemplateNotFound is returned by Execute for unknown template names.
var ErrTemplateNotFound = errors.New("template not found")

// Templater manages a collection of templates.
type Templater struct {
	set *template.Template
}

var funcs = template.FuncMap{
	"pageURL": pageURL,
	"date":    formatDate,
}

// NewTemplater loads the embedded templates and then any *.html file found in
// themeDir, which replaces the embedded template of the same name.
func NewTemplater(themeDir string) (*Templater, error) {
	set, err := template.New("").Funcs(funcs).ParseFS(embeddedTemplates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse embedded templates: %w", err)
	}

	if themeDir != "" {
		if _, err := os.Stat(themeDir); err != nil {
			return nil, fmt.Errorf("theme directory: %w", err)
		}

		matches, err := filepath.Glob(filepath.Join(themeDir, "*.html"))
		if err != nil {
			return nil, err
		}
		if len(matches) > 0 {
			if set, err = set.ParseFiles(matches...); err != nil {
				return nil, fmt.Errorf("parse theme templates: %w", err)
			}
		}
	}

	return &Templater{set: set}, nil
}

// Execute renders the named template with data.
func (t *Templater) Execute(name string, data any) (string, error) {
	tmpl := t.set.Lookup(name)
	if tmpl == nil {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

// Names lists the available templates.
func (t *Templater) Names() []string {
	var names []string
	for _, tmpl := range t.set.Templates() {
		if tmpl.Name() != "" {
			names = append(names, tmpl.Name())
		}
	}
	sort.Strings(names)
	return names
}

// pageURL joins the relative path to the site root with a canonical page URL.
func pageURL(root, url string) string {
	switch {
	case url == "":
		return root
	case root == "./":
		return url
	default:
		return root + url
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
