package graph

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/danodic-dev/mkdocs-backlinks/internal/report"
	"github.com/danodic-dev/mkdocs-backlinks/internal/state"
)

func NewCmdGraph(s *state.State) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print the backlinks of every page",
		Long: heredoc.Doc(`
			Graph analyses the docs directory without writing the site and prints,
			for every page, the pages that link to it.
		`),
		Example: heredoc.Doc(`
			$ backlinks graph
			$ backlinks graph --format json > backlinks.json
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			analysis, err := s.Builder.Analyze(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			return report.Write(out, analysis.Graph, f, report.Options{Styled: report.IsTerminal(out)})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(report.FormatText), "Output format (text, json, markdown)")

	return cmd
}
