// Package linkgraph derives backlinks for a documentation site from the links
// found in the rendered HTML of its pages.
package linkgraph

import (
	"errors"
	"fmt"
	"sync"
)

// ErrSealed is returned by Record once the graph has been handed to the
// render phase.
var ErrSealed = errors.New("linkgraph: graph is sealed")

// Options configures a Graph.
type Options struct {
	// IgnoredPages holds page titles that never appear as a backlink source.
	IgnoredPages []string
	// IgnoreSelfLinks drops links from a page to itself.
	IgnoreSelfLinks bool
}

// Graph accumulates, for every destination page, the ordered list of distinct
// pages linking to it. Record is safe for concurrent use; insertion order is
// the order in which Record calls complete.
type Graph struct {
	mu      sync.RWMutex
	index   *Index
	ignored map[string]struct{}
	self    bool
	sealed  bool

	// backlinks maps a destination URL to its sources. A present key with an
	// empty slice means the page is linked only by excluded pages.
	backlinks map[string][]Page
	seen      map[string]map[string]struct{}
	order     []string
}

// NewGraph returns an empty graph resolving links against idx.
func NewGraph(idx *Index, opts Options) *Graph {
	ignored := make(map[string]struct{}, len(opts.IgnoredPages))
	for _, title := range opts.IgnoredPages {
		ignored[title] = struct{}{}
	}
	return &Graph{
		index:     idx,
		ignored:   ignored,
		self:      opts.IgnoreSelfLinks,
		backlinks: make(map[string][]Page),
		seen:      make(map[string]map[string]struct{}),
	}
}

// Index returns the page index the graph resolves against.
func (g *Graph) Index() *Index {
	return g.index
}

// Record scans markup, the rendered HTML of source, and records source as a
// backlink of every known page it links to. Links to unknown pages are
// ignored.
func (g *Graph) Record(source Page, markup string) error {
	links, err := ExtractCandidateLinks(markup)
	if err != nil {
		return fmt.Errorf("extract links from %q: %w", source.URL, err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.sealed {
		return ErrSealed
	}

	for _, href := range links {
		dest, ok := g.index.Lookup(Normalize(href, source.URL))
		if !ok {
			continue
		}
		g.add(dest.URL, source)
	}
	return nil
}

// add must be called with g.mu held.
func (g *Graph) add(dest string, source Page) {
	sources, ok := g.seen[dest]
	if !ok {
		sources = make(map[string]struct{})
		g.seen[dest] = sources
		g.backlinks[dest] = []Page{}
		g.order = append(g.order, dest)
	}

	if _, dup := sources[source.URL]; dup {
		return
	}
	if g.isExcluded(source) {
		return
	}
	if g.self && dest == source.URL {
		return
	}

	sources[source.URL] = struct{}{}
	g.backlinks[dest] = append(g.backlinks[dest], source)
}

func (g *Graph) isExcluded(p Page) bool {
	_, ok := g.ignored[p.Title]
	return ok
}

// Seal ends the recording phase. Further Record calls return ErrSealed.
func (g *Graph) Seal() {
	g.mu.Lock()
	g.sealed = true
	g.mu.Unlock()
}

// BacklinksOf returns the pages linking to url in first-seen order.
func (g *Graph) BacklinksOf(url string) []Page {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]Page{}, g.backlinks[url]...)
}

// HasBacklinks reports whether a backlink list exists for url. The list may
// be empty when every page linking to url is excluded.
func (g *Graph) HasBacklinks(url string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.backlinks[url]
	return ok
}

// Destinations returns every URL with a backlink list, in the order the lists
// were created.
func (g *Graph) Destinations() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]string(nil), g.order...)
}

// Edges returns the number of recorded backlinks.
func (g *Graph) Edges() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n := 0
	for _, sources := range g.backlinks {
		n += len(sources)
	}
	return n
}
