package build

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/danodic-dev/mkdocs-backlinks/internal/state"
	"github.com/danodic-dev/mkdocs-backlinks/internal/watch"
)

var now = time.Now

func NewCmdBuild(s *state.State) *cobra.Command {
	var (
		watchMode bool
		clean     bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the site with backlinks",
		Long: heredoc.Doc(`
			Build renders every markdown page of the docs directory into the site
			directory. Each page lists the pages that link to it, except pages
			named in backlinks.ignored_pages.

			With --watch the site is rebuilt whenever a page or theme template
			changes, until interrupted.
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if clean {
				if err := s.Builder.Clean(); err != nil {
					return err
				}
			}

			if !watchMode {
				return runBuild(ctx, s, out)
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
			defer stop()

			if err := runBuild(ctx, s, out); err != nil {
				s.Logger.Error("build failed", "err", err)
			}

			w, err := watch.New(s.Logger, watch.DefaultDebounce, s.Config.DocsDir, s.Config.ThemeDir)
			if err != nil {
				return fmt.Errorf("failed to watch sources: %w", err)
			}
			defer w.Close()

			s.Logger.Info("watching for changes", "docs", s.Config.DocsDir)
			return w.Run(ctx, func(ctx context.Context) error {
				return runBuild(ctx, s, out)
			})
		},
	}

	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Rebuild when sources change")
	cmd.Flags().BoolVar(&clean, "clean", false, "Remove the site directory before building")

	return cmd
}

func runBuild(ctx context.Context, s *state.State, out io.Writer) error {
	result, err := s.Builder.Build(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, state.BuildStatus(result, now()))
	return err
}
