package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/danodic-dev/mkdocs-backlinks/internal/config"
	"github.com/danodic-dev/mkdocs-backlinks/internal/state"
)

func TestResolvePageURL(t *testing.T) {
	docs := filepath.Join(t.TempDir(), "docs")
	s := &state.State{Config: &config.Config{DocsDir: docs}}

	cases := map[string]string{
		"guide/setup":                             "guide/setup/",
		"/guide/setup/":                           "guide/setup/",
		"/":                                       "",
		"guide/setup.md":                          "guide/setup/",
		`guide\index.md`:                          "guide/",
		filepath.Join(docs, "faq.md"):             "faq/",
		filepath.Join(docs, "guide", "README.md"): "guide/",
	}
	for arg, want := range cases {
		got, err := ResolvePageURL(s, arg)
		if err != nil {
			t.Fatalf("ResolvePageURL(%q) returned error: %v", arg, err)
		}
		if got != want {
			t.Fatalf("ResolvePageURL(%q) = %q, want %q", arg, got, want)
		}
	}
}

func TestResolvePageURLRejectsOutsideDocs(t *testing.T) {
	docs := filepath.Join(t.TempDir(), "docs")
	s := &state.State{Config: &config.Config{DocsDir: docs}}

	for _, arg := range []string{"../notes.md", filepath.Join(filepath.Dir(docs), "other.md")} {
		_, err := ResolvePageURL(s, arg)
		if err == nil || !strings.Contains(err.Error(), "outside the docs directory") {
			t.Fatalf("expected outside error for %q, got %v", arg, err)
		}
	}
}

func TestResolvePageURLRequiresState(t *testing.T) {
	if _, err := ResolvePageURL(nil, "index.md"); err == nil {
		t.Fatal("expected error without state")
	}
}
