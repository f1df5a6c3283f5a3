// Package build runs a full documentation build: page inventory, backlink
// graph construction and page rendering.
package build

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/danodic-dev/mkdocs-backlinks/internal/cache"
	"github.com/danodic-dev/mkdocs-backlinks/internal/config"
	"github.com/danodic-dev/mkdocs-backlinks/internal/constants"
	"github.com/danodic-dev/mkdocs-backlinks/internal/linkgraph"
	"github.com/danodic-dev/mkdocs-backlinks/internal/site"
	"github.com/danodic-dev/mkdocs-backlinks/internal/templater"
)

// Builder owns the collaborators of a build. A Builder can run any number of
// builds; each one starts from an empty graph.
type Builder struct {
	cfg       *config.Config
	logger    *log.Logger
	renderer  *site.Renderer
	templater *templater.Templater
	rendered  *cache.LRUCache[cache.Key, string]
}

// Analysis is the outcome of the first two build phases.
type Analysis struct {
	Pages []*site.Page
	Graph *linkgraph.Graph
	// HTML holds the rendered body of every page, indexed like Pages.
	HTML []string
	// Cached counts the bodies reused from a previous build.
	Cached int
}

// Result summarises a completed build.
type Result struct {
	*Analysis
	Written int
}

func New(cfg *config.Config, logger *log.Logger, t *templater.Templater) *Builder {
	return &Builder{
		cfg:       cfg,
		logger:    logger,
		renderer:  site.NewRenderer(),
		templater: t,
		rendered:  cache.NewLRUCache[cache.Key, string](constants.RenderCacheSize),
	}
}

// Analyze loads the page inventory, renders every page body and records the
// links between pages. The returned graph is sealed.
func (b *Builder) Analyze(ctx context.Context) (*Analysis, error) {
	b.logger.Info("excluded pages for backlinking", "pages", b.cfg.Backlinks.IgnoredPages)

	pages, err := site.Load(b.cfg.DocsDir)
	if err != nil {
		return nil, err
	}

	links := make([]linkgraph.Page, 0, len(pages))
	seen := make(map[string]string, len(pages))
	for _, p := range pages {
		if prev, ok := seen[p.URL]; ok {
			b.logger.Warn("pages share a URL, keeping the later one", "url", p.URL, "previous", prev, "source", p.SourcePath)
		}
		seen[p.URL] = p.SourcePath
		if p.RawDate != "" {
			b.logger.Warn("unrecognised date in front matter", "source", p.SourcePath, "date", p.RawDate)
		}
		links = append(links, p.Link())
	}

	index := linkgraph.NewIndex(links)
	graph := linkgraph.NewGraph(index, linkgraph.Options{
		IgnoredPages:    b.cfg.Backlinks.IgnoredPages,
		IgnoreSelfLinks: b.cfg.Backlinks.IgnoreSelfLinks,
	})
	b.logger.Debug("page index built", "pages", index.Len())

	html, cached, err := b.renderBodies(ctx, pages)
	if err != nil {
		return nil, err
	}
	b.logger.Debug("page bodies rendered", "pages", len(pages), "cached", cached, "cache_size", b.rendered.Len())

	// Recording happens in inventory order so backlink order is stable
	// across runs.
	for i, p := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := graph.Record(p.Link(), html[i]); err != nil {
			return nil, err
		}
	}
	graph.Seal()

	b.logger.Info("backlink graph built", "pages", len(pages), "linked", len(graph.Destinations()), "backlinks", graph.Edges())
	return &Analysis{Pages: pages, Graph: graph, HTML: html, Cached: cached}, nil
}

func (b *Builder) renderBodies(ctx context.Context, pages []*site.Page) ([]string, int, error) {
	html := make([]string, len(pages))
	var cached atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.Workers)
	for i, p := range pages {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			key := cache.KeyOf(p.SourcePath, p.Body)
			if out, ok := b.rendered.Get(key); ok {
				html[i] = out
				cached.Add(1)
				return nil
			}

			out, err := b.renderer.Render(p)
			if err != nil {
				return err
			}
			b.rendered.Put(key, out)
			html[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return html, int(cached.Load()), nil
}

// Build runs a full build and writes every page below the site directory.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	if err := b.reloadTemplates(); err != nil {
		return nil, err
	}

	analysis, err := b.Analyze(ctx)
	if err != nil {
		return nil, err
	}

	nav := analysis.Graph.Index().Pages()
	result := &Result{Analysis: analysis}
	for i, p := range analysis.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pageCtx := linkgraph.Context{
			"site_name": b.cfg.SiteName,
			"page":      p,
			"root":      p.RootPath(),
			"content":   template.HTML(analysis.HTML[i]),
			"nav":       nav,
		}
		linkgraph.Publish(analysis.Graph, p.URL, pageCtx)

		out, err := b.templater.Execute(templater.PageTemplate, pageCtx)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", p.SourcePath, err)
		}
		if err := b.write(p, out); err != nil {
			return nil, err
		}
		result.Written++
		b.logger.Debug("page written", "url", p.URL, "backlinks", len(analysis.Graph.BacklinksOf(p.URL)))
	}

	b.logger.Info("site built", "dir", b.cfg.SiteDir, "pages", result.Written)
	return result, nil
}

// reloadTemplates parses the theme directory again so template edits made
// since the previous build are used.
func (b *Builder) reloadTemplates() error {
	if b.cfg.ThemeDir == "" {
		return nil
	}

	t, err := templater.NewTemplater(b.cfg.ThemeDir)
	if err != nil {
		return fmt.Errorf("failed to load theme: %w", err)
	}
	b.templater = t
	b.logger.Debug("theme loaded", "dir", b.cfg.ThemeDir, "templates", t.Names())
	return nil
}

func (b *Builder) write(p *site.Page, content string) error {
	path := filepath.Join(b.cfg.SiteDir, filepath.FromSlash(p.OutputPath()))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Clean removes the site directory.
func (b *Builder) Clean() error {
	if err := os.RemoveAll(b.cfg.SiteDir); err != nil {
		return fmt.Errorf("failed to clean site directory: %w", err)
	}
	return nil
}
