package site

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/danodic-dev/mkdocs-backlinks/internal/pathutil"
)

// ErrNoPages is returned when the docs directory holds no markdown file.
var ErrNoPages = errors.New("site: no markdown pages found")

// Load walks docsDir and returns one page per markdown file in lexical path
// order. Hidden files and directories are skipped.
func Load(docsDir string) ([]*Page, error) {
	info, err := os.Stat(docsDir)
	if err != nil {
		return nil, fmt.Errorf("site: docs directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("site: docs directory %s is not a directory", docsDir)
	}

	var pages []*Page
	err = filepath.WalkDir(docsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != docsDir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !IsMarkdown(path) {
			return nil
		}

		rel, err := pathutil.DocsRelative(docsDir, path)
		if err != nil {
			return err
		}

		page, err := loadPage(path, rel)
		if err != nil {
			return fmt.Errorf("site: loading %s: %w", rel, err)
		}
		pages = append(pages, page)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(pages) == 0 {
		return nil, ErrNoPages
	}
	return pages, nil
}

// IsMarkdown reports whether path names a markdown source file.
func IsMarkdown(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".md")
}

func loadPage(path, rel string) (*Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	fm, body := splitFrontMatter(data)
	meta, err := parseFrontMatter(fm)
	if err != nil {
		return nil, fmt.Errorf("parse front matter: %w", err)
	}

	title := metaString(meta, "title")
	if title == "" {
		title = firstHeading(body)
	}
	if title == "" {
		title = titleFromPath(rel)
	}

	date, rawDate := metaDate(meta)

	return &Page{
		SourcePath: rel,
		URL:        URLFor(rel),
		Title:      title,
		Date:       date,
		RawDate:    rawDate,
		Meta:       meta,
		Body:       body,
	}, nil
}
