/*
Copyright © 2024 Ryan Painter paintersrp@gmail.com

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/danodic-dev/mkdocs-backlinks/internal/constants"
	"github.com/danodic-dev/mkdocs-backlinks/internal/state"
	"github.com/danodic-dev/mkdocs-backlinks/pkg/cmd/build"
	"github.com/danodic-dev/mkdocs-backlinks/pkg/cmd/graph"
	"github.com/danodic-dev/mkdocs-backlinks/pkg/cmd/show"
	"github.com/danodic-dev/mkdocs-backlinks/pkg/cmd/version"
)

func NewCmdRoot(s *state.State) (*cobra.Command, error) {
	var opts state.Options

	cmd := &cobra.Command{
		Use:   constants.AppName,
		Short: "Build a documentation site where every page lists the pages linking to it.",
		Long: heredoc.Doc(`
			Backlinks renders a folder of markdown pages into a static site and adds,
			to every page, the list of pages that link to it.

			Configuration is read from backlinks.yaml in the working directory, or
			from the file given with --config. Every key can be overridden with a
			BACKLINKS_ environment variable, for example BACKLINKS_SITE_DIR.
		`),
		Example: heredoc.Doc(`
			$ backlinks build
			$ backlinks build --watch
			$ backlinks graph --format markdown
			$ backlinks show guide/setup
		`),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.LogOutput = cmd.ErrOrStderr()
			return s.Load(opts)
		},
	}

	cmd.PersistentFlags().
		StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default is ./backlinks.yaml)")
	cmd.PersistentFlags().
		BoolVarP(&opts.Verbose, "verbose", "v", false, "Log debug output.")

	cmd.AddCommand(
		build.NewCmdBuild(s),
		graph.NewCmdGraph(s),
		show.NewCmdShow(s),
		version.NewCmdVersion(),
	)

	return cmd, nil
}
