package fzf

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/muesli/termenv"

	"github.com/danodic-dev/mkdocs-backlinks/internal/linkgraph"
	"github.com/danodic-dev/mkdocs-backlinks/internal/report"
)

// ErrNoSelection is returned when the picker is closed without a choice.
var ErrNoSelection = errors.New("no page selected")

var find = fuzzyfinder.Find

// PagePicker lets the user fuzzy select a page of the graph, previewing the
// pages that link to it.
type PagePicker struct {
	Header  string
	entries []report.Entry
}

func NewPagePicker(g *linkgraph.Graph, header string) *PagePicker {
	return &PagePicker{Header: header, entries: report.Entries(g)}
}

// Pick opens the finder, pre-filled with query when it is not empty.
func (p *PagePicker) Pick(query string) (linkgraph.Page, error) {
	if len(p.entries) == 0 {
		return linkgraph.Page{}, ErrNoSelection
	}

	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(p.renderPreview),
	}
	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}
	if p.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(p.Header))
	}

	idx, err := find(p.entries, p.label, options...)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return linkgraph.Page{}, ErrNoSelection
		}
		return linkgraph.Page{}, fmt.Errorf("error selecting page: %w", err)
	}
	if idx < 0 || idx >= len(p.entries) {
		return linkgraph.Page{}, ErrNoSelection
	}

	return p.entries[idx].Page, nil
}

func (p *PagePicker) label(i int) string {
	e := p.entries[i]
	return fmt.Sprintf("%s %s [%d backlinks]", e.Page.Title, report.DisplayURL(e.Page.URL), len(e.Backlinks))
}

func (p *PagePicker) renderPreview(i, w, h int) string {
	if i < 0 || i >= len(p.entries) {
		return ""
	}

	r, _ := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(w),
		glamour.WithColorProfile(termenv.ANSI256),
	)

	markdown, err := r.Render(report.Markdown(p.entries[i : i+1]))
	if err != nil {
		return "Error rendering preview"
	}

	return markdown
}
