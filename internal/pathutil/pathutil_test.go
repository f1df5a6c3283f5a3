package pathutil

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestDocsRelativeReturnsForwardSlashes(t *testing.T) {
	docsParts := []string{"home", "user", "docs"}
	fileParts := append(append([]string{}, docsParts...), "guide", "setup.md")

	posixDocs := filepath.Join(docsParts...)
	posixFile := filepath.Join(fileParts...)

	rel, err := DocsRelative(posixDocs, posixFile)
	if err != nil {
		t.Fatalf("DocsRelative returned error for POSIX paths: %v", err)
	}
	if rel != "guide/setup.md" {
		t.Fatalf("expected relative path 'guide/setup.md', got %q", rel)
	}

	windowsDocs := strings.ReplaceAll(posixDocs, string(filepath.Separator), "\\")
	windowsFile := strings.ReplaceAll(posixFile, string(filepath.Separator), "\\")

	rel, err = DocsRelative(windowsDocs, windowsFile)
	if err != nil {
		t.Fatalf("DocsRelative returned error for Windows paths: %v", err)
	}
	if rel != "guide/setup.md" {
		t.Fatalf("expected relative path 'guide/setup.md', got %q", rel)
	}
}

func TestNormalizePath(t *testing.T) {
	if got := NormalizePath(""); got != "" {
		t.Fatalf("expected empty path to stay empty, got %q", got)
	}

	want := filepath.Join("docs", "guide", "setup.md")
	if got := NormalizePath(`docs\guide\\.\setup.md`); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestIsHidden(t *testing.T) {
	cases := map[string]bool{
		"guide/setup.md":     false,
		".git/config":        true,
		"guide/.draft.md":    true,
		"../docs/index.md":   false,
		"./index.md":         false,
		"a/.obsidian/app.md": true,
	}
	for rel, want := range cases {
		if got := IsHidden(rel); got != want {
			t.Fatalf("IsHidden(%q) = %v, want %v", rel, got, want)
		}
	}
}

func TestWithin(t *testing.T) {
	cases := map[string]bool{
		"index.md":       true,
		"guide/setup.md": true,
		".":              false,
		"":               false,
		"..":             false,
		"../outside.md":  false,
		"..hidden.md":    true,
	}
	for rel, want := range cases {
		if got := Within(rel); got != want {
			t.Fatalf("Within(%q) = %v, want %v", rel, got, want)
		}
	}
}
