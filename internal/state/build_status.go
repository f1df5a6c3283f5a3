package state

import (
	"fmt"
	"strings"
	"time"

	"github.com/danodic-dev/mkdocs-backlinks/internal/build"
)

// BuildStatus summarises a finished build on one line, for watch mode.
func BuildStatus(result *build.Result, at time.Time) string {
	if result == nil {
		return ""
	}

	parts := []string{fmt.Sprintf("built %d pages", result.Written)}
	if result.Analysis != nil && result.Graph != nil {
		parts = append(parts, fmt.Sprintf("%d backlinks", result.Graph.Edges()))
	}
	if !at.IsZero() {
		parts = append(parts, formatBuildTime(at))
	}

	return strings.Join(parts, " · ")
}

func formatBuildTime(t time.Time) string {
	return t.Format("15:04")
}
