package fzf

import (
	"errors"
	"strings"
	"testing"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/danodic-dev/mkdocs-backlinks/internal/linkgraph"
)

func testGraph(t *testing.T) *linkgraph.Graph {
	t.Helper()
	index := linkgraph.NewIndex([]linkgraph.Page{
		{URL: "", Title: "Home"},
		{URL: "guide/", Title: "Guide"},
	})
	g := linkgraph.NewGraph(index, linkgraph.Options{})
	if err := g.Record(linkgraph.Page{URL: "", Title: "Home"}, `<a href="guide/">guide</a>`); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	return g
}

func stubFind(t *testing.T, fn func(slice any, itemFunc func(int) string, opts ...fuzzyfinder.Option) (int, error)) {
	t.Helper()
	orig := find
	find = fn
	t.Cleanup(func() { find = orig })
}

func TestPickReturnsSelectedPage(t *testing.T) {
	var labels []string
	stubFind(t, func(slice any, itemFunc func(int) string, _ ...fuzzyfinder.Option) (int, error) {
		for i := 0; i < 2; i++ {
			labels = append(labels, itemFunc(i))
		}
		return 1, nil
	})

	page, err := NewPagePicker(testGraph(t), "Pages").Pick("gui")
	if err != nil {
		t.Fatalf("Pick returned error: %v", err)
	}
	if page.URL != "guide/" {
		t.Fatalf("expected guide/, got %+v", page)
	}
	if labels[0] != "Home / [0 backlinks]" || labels[1] != "Guide /guide/ [1 backlinks]" {
		t.Fatalf("unexpected labels: %q", labels)
	}
}

func TestPickAbort(t *testing.T) {
	stubFind(t, func(any, func(int) string, ...fuzzyfinder.Option) (int, error) {
		return -1, fuzzyfinder.ErrAbort
	})

	if _, err := NewPagePicker(testGraph(t), "").Pick(""); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
}

func TestPickEmptyGraph(t *testing.T) {
	g := linkgraph.NewGraph(linkgraph.NewIndex(nil), linkgraph.Options{})
	if _, err := NewPagePicker(g, "").Pick(""); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
}

func TestRenderPreview(t *testing.T) {
	p := NewPagePicker(testGraph(t), "")
	if got := p.renderPreview(-1, 80, 20); got != "" {
		t.Fatalf("expected empty preview, got %q", got)
	}
	if got := p.renderPreview(1, 80, 20); !strings.Contains(got, "Home") {
		t.Fatalf("expected preview to list Home, got %q", got)
	}
}
