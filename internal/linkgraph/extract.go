package linkgraph

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractCandidateLinks returns the href of every anchor in markup that may
// point to another page of the site, in document order. Named anchors
// ("#section") and external links are skipped.
func ExtractCandidateLinks(markup string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}

	var links []string
	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		href = strings.TrimSpace(href)
		if isNamedAnchor(href) || IsExternal(href) {
			return
		}
		links = append(links, href)
	})
	return links, nil
}

func isNamedAnchor(href string) bool {
	return strings.HasPrefix(href, "#")
}

// IsExternal reports whether href leaves the site: it either carries a URI
// scheme (http:, mailto:, ...) or is protocol-relative.
func IsExternal(href string) bool {
	if strings.HasPrefix(href, "//") {
		return true
	}
	return hasScheme(href)
}

// hasScheme follows RFC 3986: ALPHA *( ALPHA / DIGIT / "+" / "-" / "." ) ":".
func hasScheme(href string) bool {
	for i := 0; i < len(href); i++ {
		c := href[i]
		switch {
		case 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' || c == '+' || c == '-' || c == '.':
			if i == 0 {
				return false
			}
		case c == ':':
			return i > 0
		default:
			return false
		}
	}
	return false
}
