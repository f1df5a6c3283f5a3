package linkgraph

// ContextKey is the rendering context entry holding a page's backlinks.
const ContextKey = "backlinks"

// Context is the key/value store handed to the template engine.
type Context map[string]any

// Publish sets ctx[ContextKey] to the backlinks of the page at pageURL. The
// key is left unset when the page is unknown or nothing links to it.
func Publish(g *Graph, pageURL string, ctx Context) {
	if g == nil || ctx == nil {
		return
	}
	if _, ok := g.index.Lookup(pageURL); !ok {
		return
	}
	if !g.HasBacklinks(pageURL) {
		return
	}
	ctx[ContextKey] = g.BacklinksOf(pageURL)
}
