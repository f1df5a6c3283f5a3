package show

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/danodic-dev/mkdocs-backlinks/internal/fzf"
	"github.com/danodic-dev/mkdocs-backlinks/internal/linkgraph"
	"github.com/danodic-dev/mkdocs-backlinks/internal/report"
	"github.com/danodic-dev/mkdocs-backlinks/internal/state"
	cmdutil "github.com/danodic-dev/mkdocs-backlinks/pkg/cmd"
)

var (
	writeClipboard = clipboard.WriteAll
	pickPage       = func(g *linkgraph.Graph, query string) (linkgraph.Page, error) {
		return fzf.NewPagePicker(g, "Pages").Pick(query)
	}
)

func NewCmdShow(s *state.State) *cobra.Command {
	var (
		copyList bool
		query    string
	)

	cmd := &cobra.Command{
		Use:   "show [url]",
		Short: "Show the pages linking to one page",
		Long: heredoc.Doc(`
			Show prints the backlinks of a single page. Without a URL a fuzzy
			finder lists every page of the site.

			The page is given either by URL, with or without leading and trailing
			slashes, or by the path of its markdown source.
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analysis, err := s.Builder.Analyze(cmd.Context())
			if err != nil {
				return err
			}
			g := analysis.Graph

			var page linkgraph.Page
			if len(args) == 1 {
				url, err := cmdutil.ResolvePageURL(s, args[0])
				if err != nil {
					return err
				}
				p, ok := g.Index().Lookup(url)
				if !ok {
					return fmt.Errorf("no page at %s", report.DisplayURL(url))
				}
				page = p
			} else {
				page, err = pickPage(g, query)
				if errors.Is(err, fzf.ErrNoSelection) {
					fmt.Fprintln(cmd.OutOrStdout(), "No page selected")
					return nil
				}
				if err != nil {
					return err
				}
			}

			entry := report.Entry{Page: page}
			if g.HasBacklinks(page.URL) {
				entry.Backlinks = g.BacklinksOf(page.URL)
			}

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprint(out, report.Text([]report.Entry{entry}, report.IsTerminal(out))); err != nil {
				return err
			}

			if copyList {
				if err := writeClipboard(markdownList(entry.Backlinks)); err != nil {
					return fmt.Errorf("failed to copy to clipboard: %w", err)
				}
				fmt.Fprintf(out, "Copied %d backlinks to the clipboard\n", len(entry.Backlinks))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&copyList, "copy", false, "Copy the backlinks to the clipboard as a markdown list")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Initial query for the page finder")

	return cmd
}

func markdownList(pages []linkgraph.Page) string {
	var b strings.Builder
	for _, p := range pages {
		fmt.Fprintf(&b, "- [%s](%s)\n", p.Title, report.DisplayURL(p.URL))
	}
	return b.String()
}
