// Package site builds the page inventory of a documentation tree: one Page
// per markdown file, with its canonical URL, title and front matter.
package site

import (
	"net/url"
	"path"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/danodic-dev/mkdocs-backlinks/internal/linkgraph"
)

// Page is a markdown source file and the metadata needed to render it.
type Page struct {
	// SourcePath is slash separated and relative to the docs directory.
	SourcePath string
	URL        string
	Title      string
	Date       time.Time
	// RawDate keeps the front-matter date when it could not be parsed.
	RawDate string
	Meta    map[string]any
	Body    []byte
}

// Link returns the handle the backlink graph knows this page by.
func (p *Page) Link() linkgraph.Page {
	return linkgraph.Page{URL: p.URL, Title: p.Title}
}

// OutputPath is the slash-separated file the page is written to, relative to
// the site directory.
func (p *Page) OutputPath() string {
	return p.URL + "index.html"
}

// RootPath is the relative path from the page back to the site root.
func (p *Page) RootPath() string {
	depth := strings.Count(p.URL, "/")
	if depth == 0 {
		return "./"
	}
	return strings.Repeat("../", depth)
}

// URLFor maps a markdown source path to its directory-style page URL:
// "guide/setup.md" becomes "guide/setup/" and "guide/index.md" becomes
// "guide/". The top-level index maps to the site root, "".
func URLFor(sourcePath string) string {
	p := strings.ReplaceAll(sourcePath, "\\", "/")
	p = strings.TrimSuffix(p, path.Ext(p))

	dir, name := path.Split(p)
	if strings.EqualFold(name, "index") || strings.EqualFold(name, "readme") {
		p = dir
	}

	segments := strings.Split(p, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return linkgraph.Canonical(strings.Join(segments, "/"))
}

// titleFromPath derives a title from the file name: "getting-started.md"
// becomes "Getting started". The site root is titled "Home".
func titleFromPath(sourcePath string) string {
	p := strings.TrimSuffix(sourcePath, path.Ext(sourcePath))
	dir, name := path.Split(p)
	if strings.EqualFold(name, "index") || strings.EqualFold(name, "readme") {
		name = path.Base(strings.TrimSuffix(dir, "/"))
		if dir == "" {
			return "Home"
		}
	}

	name = strings.TrimSpace(strings.NewReplacer("-", " ", "_", " ").Replace(name))
	if name == "" {
		return "Home"
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}
