package templater

import (
	"errors"
	"html/template"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/danodic-dev/mkdocs-backlinks/internal/linkgraph"
)

type testPage struct {
	Title string
	URL   string
	Date  time.Time
}

func pageContext(backlinks ...linkgraph.Page) linkgraph.Context {
	ctx := linkgraph.Context{
		"site_name": "Docs",
		"root":      "../",
		"page":      testPage{Title: "Target", URL: "target/", Date: time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)},
		"content":   template.HTML("<p>body</p>"),
		"nav":       []linkgraph.Page{{URL: "", Title: "Home"}, {URL: "target/", Title: "Target"}},
	}
	if backlinks != nil {
		ctx[linkgraph.ContextKey] = backlinks
	}
	return ctx
}

func TestNewTemplaterLoadsEmbeddedTemplates(t *testing.T) {
	tmpl, err := NewTemplater("")
	if err != nil {
		t.Fatalf("NewTemplater returned error: %v", err)
	}

	names := tmpl.Names()
	for _, want := range []string{"backlinks.html", PageTemplate} {
		if !slices.Contains(names, want) {
			t.Fatalf("expected %s in %v", want, names)
		}
	}
}

func TestExecuteRendersBacklinks(t *testing.T) {
	tmpl, err := NewTemplater("")
	if err != nil {
		t.Fatalf("NewTemplater returned error: %v", err)
	}

	rendered, err := tmpl.Execute(PageTemplate, pageContext(linkgraph.Page{URL: "a/b/", Title: "Source <A>"}))
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	for _, want := range []string{
		"<title>Target - Docs</title>",
		"<p>body</p>",
		"2024-05-06",
		"Linked from",
		`<a href="../a/b/">Source &lt;A&gt;</a>`,
		`<a href="../">Home</a>`,
	} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("expected %q in rendered page:\n%s", want, rendered)
		}
	}
}

func TestExecuteOmitsAbsentAndEmptyBacklinks(t *testing.T) {
	tmpl, err := NewTemplater("")
	if err != nil {
		t.Fatalf("NewTemplater returned error: %v", err)
	}

	for name, ctx := range map[string]linkgraph.Context{
		"absent": pageContext(),
		"empty":  pageContext([]linkgraph.Page{}...),
	} {
		rendered, err := tmpl.Execute(PageTemplate, ctx)
		if err != nil {
			t.Fatalf("%s: Execute returned error: %v", name, err)
		}
		if strings.Contains(rendered, "Linked from") {
			t.Fatalf("%s: expected no backlinks section:\n%s", name, rendered)
		}
	}
}

func TestThemeDirOverridesTemplate(t *testing.T) {
	dir := t.TempDir()
	override := `{{range .backlinks}}[{{.Title}}]{{end}}`
	if err := os.WriteFile(filepath.Join(dir, "backlinks.html"), []byte(override), 0o644); err != nil {
		t.Fatalf("failed to write theme template: %v", err)
	}

	tmpl, err := NewTemplater(dir)
	if err != nil {
		t.Fatalf("NewTemplater returned error: %v", err)
	}

	rendered, err := tmpl.Execute(PageTemplate, pageContext(linkgraph.Page{URL: "a/", Title: "A"}))
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !strings.Contains(rendered, "[A]") || strings.Contains(rendered, "Linked from") {
		t.Fatalf("expected theme override to be used:\n%s", rendered)
	}
}

func TestNewTemplaterMissingThemeDir(t *testing.T) {
	if _, err := NewTemplater(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing theme directory")
	}
}

func TestExecuteMissingTemplate(t *testing.T) {
	tmpl, err := NewTemplater("")
	if err != nil {
		t.Fatalf("NewTemplater returned error: %v", err)
	}

	if _, err := tmpl.Execute("missing.html", nil); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestPageURL(t *testing.T) {
	cases := []struct{ root, url, want string }{
		{"./", "", "./"},
		{"./", "b/", "b/"},
		{"../../", "", "../../"},
		{"../../", "b/", "../../b/"},
	}
	for _, tc := range cases {
		if got := pageURL(tc.root, tc.url); got != tc.want {
			t.Fatalf("pageURL(%q, %q) = %q, want %q", tc.root, tc.url, got, tc.want)
		}
	}
}
