// Package report prints the backlink graph of a built site.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/danodic-dev/mkdocs-backlinks/internal/linkgraph"
)

type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Formats lists the accepted values of ParseFormat.
var Formats = []Format{FormatText, FormatJSON, FormatMarkdown}

func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want one of text, json, markdown)", s)
}

var (
	pageStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0AF"))

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888"))

	emptyStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#666"))
)

// Entry describes one page of the site. Backlinks is nil when no page links
// to it and empty when every referrer was excluded.
type Entry struct {
	Page      linkgraph.Page   `json:"page"`
	Backlinks []linkgraph.Page `json:"backlinks"`
}

// Entries returns one entry per indexed page, in index order.
func Entries(g *linkgraph.Graph) []Entry {
	pages := g.Index().Pages()
	entries := make([]Entry, 0, len(pages))
	for _, p := range pages {
		e := Entry{Page: p}
		if g.HasBacklinks(p.URL) {
			e.Backlinks = g.BacklinksOf(p.URL)
		}
		entries = append(entries, e)
	}
	return entries
}

// Options controls terminal styling. Styled output is meant for a terminal.
type Options struct {
	Styled bool
}

// Write prints the graph in the requested format.
func Write(w io.Writer, g *linkgraph.Graph, format Format, opts Options) error {
	entries := Entries(g)
	switch format {
	case FormatJSON:
		return writeJSON(w, entries)
	case FormatMarkdown:
		md := Markdown(entries)
		if opts.Styled {
			rendered, err := renderMarkdown(md)
			if err != nil {
				return err
			}
			md = rendered
		}
		_, err := io.WriteString(w, md)
		return err
	case FormatText, "":
		_, err := io.WriteString(w, Text(entries, opts.Styled))
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeJSON(w io.Writer, entries []Entry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Pages []Entry `json:"pages"`
	}{Pages: entries})
}

// Text renders a plain listing: each page followed by its referrers.
func Text(entries []Entry, styled bool) string {
	style := func(s lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return s.Render(text)
	}

	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %s\n", style(pageStyle, e.Page.Title), style(urlStyle, DisplayURL(e.Page.URL)))
		if len(e.Backlinks) == 0 {
			fmt.Fprintf(&b, "  %s\n", style(emptyStyle, "no backlinks"))
			continue
		}
		for _, src := range e.Backlinks {
			fmt.Fprintf(&b, "  <- %s %s\n", src.Title, style(urlStyle, DisplayURL(src.URL)))
		}
	}
	return b.String()
}

// Markdown renders the graph as a markdown document.
func Markdown(entries []Entry) string {
	var b strings.Builder
	b.WriteString("# Backlinks\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "\n## %s\n\n`%s`\n\n", e.Page.Title, DisplayURL(e.Page.URL))
		if len(e.Backlinks) == 0 {
			b.WriteString("_No backlinks._\n")
			continue
		}
		for _, src := range e.Backlinks {
			fmt.Fprintf(&b, "- [%s](%s)\n", src.Title, DisplayURL(src.URL))
		}
	}
	return b.String()
}

// DisplayURL returns the root-absolute form of a canonical page URL.
func DisplayURL(url string) string {
	return "/" + url
}

func renderMarkdown(md string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(100),
		glamour.WithColorProfile(termenv.ANSI256),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

// IsTerminal reports whether w writes to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}
