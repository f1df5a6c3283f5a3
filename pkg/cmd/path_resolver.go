package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/danodic-dev/mkdocs-backlinks/internal/linkgraph"
	"github.com/danodic-dev/mkdocs-backlinks/internal/pathutil"
	"github.com/danodic-dev/mkdocs-backlinks/internal/site"
	"github.com/danodic-dev/mkdocs-backlinks/internal/state"
)

// ResolvePageURL turns a command argument into a canonical page URL. The
// argument is either a page URL or the path of a markdown source, absolute or
// relative to the docs directory.
func ResolvePageURL(s *state.State, arg string) (string, error) {
	if s == nil || s.Config == nil {
		return "", fmt.Errorf("state configuration is not initialized")
	}
	if !site.IsMarkdown(arg) {
		return linkgraph.Canonical(arg), nil
	}

	docsDir := filepath.Clean(s.Config.DocsDir)
	resolved := pathutil.NormalizePath(arg)
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(docsDir, resolved)
	}

	rel, err := pathutil.DocsRelative(docsDir, resolved)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %q relative to docs %q: %w", resolved, docsDir, err)
	}
	if !pathutil.Within(rel) {
		return "", fmt.Errorf("path %q is outside the docs directory %q", resolved, docsDir)
	}

	return site.URLFor(rel), nil
}
