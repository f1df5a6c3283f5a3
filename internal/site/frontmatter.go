package site

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

var frontMatterRe = regexp.MustCompile(`(?s)\A---[ \t]*\r?\n(.*?)\r?\n---[ \t]*(?:\r?\n|\z)`)

func splitFrontMatter(data []byte) ([]byte, []byte) {
	loc := frontMatterRe.FindSubmatchIndex(data)
	if len(loc) < 4 {
		return nil, data
	}
	return data[loc[2]:loc[3]], data[loc[1]:]
}

func parseFrontMatter(fm []byte) (map[string]any, error) {
	meta := make(map[string]any)
	if len(strings.TrimSpace(string(fm))) == 0 {
		return meta, nil
	}
	if err := yaml.Unmarshal(fm, &meta); err != nil {
		return nil, err
	}
	return meta, nil
}

func metaString(meta map[string]any, key string) string {
	value, ok := meta[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

// metaDate reads the "date" key. yaml.v3 hands timestamps to interface values
// as strings, so anything dateparse understands is accepted.
func metaDate(meta map[string]any) (time.Time, string) {
	switch value := meta["date"].(type) {
	case time.Time:
		return value, ""
	case string:
		raw := strings.TrimSpace(value)
		if raw == "" {
			return time.Time{}, ""
		}
		parsed, err := dateparse.ParseAny(raw)
		if err != nil {
			return time.Time{}, raw
		}
		return parsed, ""
	default:
		return time.Time{}, ""
	}
}

// firstHeading returns the text of the first level-one heading in body.
func firstHeading(body []byte) string {
	doc := goldmark.DefaultParser().Parse(text.NewReader(body))

	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if heading, ok := n.(*ast.Heading); ok && heading.Level == 1 {
			title = strings.TrimSpace(string(heading.Text(body)))
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return title
}
