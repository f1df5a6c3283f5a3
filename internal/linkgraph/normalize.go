package linkgraph

import "strings"

// Normalize turns an href found in the page at referrer into a canonical page
// URL. Canonical URLs are relative to the site root, use forward slashes and
// end with a trailing slash. The site root itself canonicalizes to "".
//
// Absolute hrefs ("/a/b") are resolved from the site root, anything else is
// joined onto referrer, which is treated as a directory. Fragments and query
// strings are dropped. ".." segments never climb above the site root.
func Normalize(href, referrer string) string {
	href = stripSuffixes(strings.TrimSpace(href))
	if IsAbsolute(href) {
		return canonical(href)
	}
	return canonical(referrer + "/" + href)
}

// IsAbsolute reports whether href is rooted at the site root.
func IsAbsolute(href string) bool {
	return strings.HasPrefix(href, "/")
}

// Canonical cleans an already site-relative path into its canonical form.
func Canonical(p string) string {
	return canonical(p)
}

func canonical(p string) string {
	parts := strings.Split(p, "/")
	segments := make([]string, 0, len(parts))
	for _, segment := range parts {
		switch segment {
		case "", ".":
			continue
		case "..":
			if len(segments) > 0 {
				segments = segments[:len(segments)-1]
			}
		default:
			segments = append(segments, segment)
		}
	}

	if len(segments) == 0 {
		return ""
	}
	return strings.Join(segments, "/") + "/"
}

func stripSuffixes(href string) string {
	if i := strings.IndexAny(href, "#?"); i >= 0 {
		return href[:i]
	}
	return href
}
