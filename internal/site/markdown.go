package site

import (
	"bytes"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/danodic-dev/mkdocs-backlinks/internal/linkgraph"
)

var sourcePathKey = parser.NewContextKey()

// Renderer converts page bodies to HTML. It is safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
				parser.WithASTTransformers(util.Prioritized(linkRewriter{}, 100)),
			),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Render returns the HTML of the page body. Links to other markdown files are
// rewritten to the root-absolute URL of the page they produce.
func (r *Renderer) Render(p *Page) (string, error) {
	pc := parser.NewContext()
	pc.Set(sourcePathKey, p.SourcePath)

	var buf bytes.Buffer
	if err := r.md.Convert(p.Body, &buf, parser.WithContext(pc)); err != nil {
		return "", fmt.Errorf("render %s: %w", p.SourcePath, err)
	}
	return buf.String(), nil
}

type linkRewriter struct{}

func (linkRewriter) Transform(doc *ast.Document, _ text.Reader, pc parser.Context) {
	source, _ := pc.Get(sourcePathKey).(string)

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if link, ok := n.(*ast.Link); ok {
			if dest, ok := rewriteDestination(source, string(link.Destination)); ok {
				link.Destination = []byte(dest)
			}
		}
		return ast.WalkContinue, nil
	})
}

func rewriteDestination(source, dest string) (string, bool) {
	dest = strings.TrimSpace(dest)
	if dest == "" || strings.HasPrefix(dest, "#") || linkgraph.IsExternal(dest) {
		return "", false
	}

	target, fragment := dest, ""
	if i := strings.Index(dest, "#"); i >= 0 {
		target, fragment = dest[:i], dest[i:]
	}
	if !IsMarkdown(target) {
		return "", false
	}
	if unescaped, err := url.PathUnescape(target); err == nil {
		target = unescaped
	}

	var resolved string
	if linkgraph.IsAbsolute(target) {
		resolved = strings.TrimPrefix(path.Clean(target), "/")
	} else {
		resolved = path.Join(path.Dir(source), target)
	}
	return "/" + URLFor(resolved) + fragment, true
}
