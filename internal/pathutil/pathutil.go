package pathutil

import (
	"path/filepath"
	"strings"
)

// NormalizePath converts Windows-style separators to the current platform's separator
// and cleans the resulting path.
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}

	replaced := strings.ReplaceAll(p, "\\", "/")
	return filepath.Clean(filepath.FromSlash(replaced))
}

// DocsRelative returns the path to target relative to the docs directory,
// always using forward slashes.
func DocsRelative(docsDir, target string) (string, error) {
	rel, err := filepath.Rel(NormalizePath(docsDir), NormalizePath(target))
	if err != nil {
		return "", err
	}

	return filepath.ToSlash(rel), nil
}

// IsHidden reports whether any segment of the slash separated relative path
// starts with a dot.
func IsHidden(rel string) bool {
	for _, segment := range strings.Split(rel, "/") {
		if segment != "." && segment != ".." && strings.HasPrefix(segment, ".") {
			return true
		}
	}
	return false
}

// Within reports whether the slash separated relative path stays inside its
// base directory.
func Within(rel string) bool {
	return rel != "" && rel != "." && rel != ".." && !strings.HasPrefix(rel, "../")
}
