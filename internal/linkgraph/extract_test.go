package linkgraph

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractCandidateLinks(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		markup string
		want   []string
	}{
		{
			name:   "document order",
			markup: `<p><a href="/b">B</a> then <a href="../c/">C</a></p><a href="d">D</a>`,
			want:   []string{"/b", "../c/", "d"},
		},
		{
			name:   "missing href",
			markup: `<a name="top">top</a><a>bare</a>`,
			want:   nil,
		},
		{
			name:   "named anchors",
			markup: `<a href="#section">s</a><a href="  #padded">p</a>`,
			want:   nil,
		},
		{
			name:   "external links",
			markup: `<a href="http://example.com">e</a><a href="HTTPS://example.com/x">e</a><a href="mailto:me@example.com">m</a><a href="//cdn.example.com/a">p</a>`,
			want:   nil,
		},
		{
			name:   "scheme-like relative paths",
			markup: `<a href="httpfoo">h</a><a href="2024/notes">d</a><a href="page#a:b">c</a>`,
			want:   []string{"httpfoo", "2024/notes", "page#a:b"},
		},
		{
			name:   "trimmed and empty",
			markup: `<a href="  /b  ">b</a><a href="">self</a>`,
			want:   []string{"/b", ""},
		},
		{
			name:   "malformed markup",
			markup: `<div><p><a href="/b">unclosed <span></div>`,
			want:   []string{"/b"},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ExtractCandidateLinks(tc.markup)
			if err != nil {
				t.Fatalf("ExtractCandidateLinks returned error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("unexpected links (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHasScheme(t *testing.T) {
	t.Parallel()

	for href, want := range map[string]bool{
		"http://x":   true,
		"git+ssh://": true,
		"tel:123":    true,
		"a/b:c":      false,
		":nope":      false,
		"1abc:x":     false,
		"plain":      false,
	} {
		if got := hasScheme(href); got != want {
			t.Fatalf("hasScheme(%q) = %v, want %v", href, got, want)
		}
	}
}
