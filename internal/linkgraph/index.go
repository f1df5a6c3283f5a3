package linkgraph

// Page is the handle the build hands to the graph for every documentation
// page. URL must already be canonical (see Normalize).
type Page struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Index maps canonical page URLs to their pages. It is built once per build
// and is read-only afterwards.
type Index struct {
	pages map[string]Page
	order []string
}

// NewIndex builds the index from the complete page inventory. When two pages
// share a URL the later one wins.
func NewIndex(pages []Page) *Index {
	idx := &Index{pages: make(map[string]Page, len(pages))}
	for _, p := range pages {
		if _, ok := idx.pages[p.URL]; !ok {
			idx.order = append(idx.order, p.URL)
		}
		idx.pages[p.URL] = p
	}
	return idx
}

// Lookup resolves a canonical URL to its page.
func (idx *Index) Lookup(url string) (Page, bool) {
	if idx == nil {
		return Page{}, false
	}
	p, ok := idx.pages[url]
	return p, ok
}

// Len returns the number of distinct pages.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.pages)
}

// Pages returns the indexed pages in first-seen order.
func (idx *Index) Pages() []Page {
	if idx == nil {
		return nil
	}
	out := make([]Page, 0, len(idx.order))
	for _, url := range idx.order {
		out = append(out, idx.pages[url])
	}
	return out
}
