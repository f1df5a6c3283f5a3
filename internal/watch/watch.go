// Package watch triggers rebuilds when documentation sources change.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/danodic-dev/mkdocs-backlinks/internal/pathutil"
)

// DefaultDebounce is how long the watcher waits for the file system to
// settle before rebuilding.
const DefaultDebounce = 200 * time.Millisecond

var sourceExts = map[string]struct{}{
	".md":   {},
	".html": {},
}

// Watcher watches a set of directory trees and calls a rebuild function
// after each burst of relevant changes.
type Watcher struct {
	watcher  *fsnotify.Watcher
	roots    []string
	logger   *log.Logger
	debounce time.Duration
	done     chan struct{}
	once     sync.Once
}

// New watches every directory below each non-empty root.
func New(logger *log.Logger, debounce time.Duration, roots ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	watcher := &Watcher{
		watcher:  w,
		logger:   logger,
		debounce: debounce,
		done:     make(chan struct{}),
	}

	for _, root := range roots {
		normalized := pathutil.NormalizePath(root)
		if normalized == "" {
			continue
		}
		if err := watcher.addRecursive(normalized); err != nil {
			_ = watcher.Close()
			return nil, err
		}
		watcher.roots = append(watcher.roots, normalized)
	}
	if len(watcher.roots) == 0 {
		_ = watcher.Close()
		return nil, errors.New("watch: no directories to watch")
	}

	return watcher, nil
}

// Run blocks until ctx is cancelled or the watcher is closed. Errors from
// rebuild are logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context, rebuild func(context.Context) error) error {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	var changed []string
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.done:
			return nil
		case <-timer.C:
			w.logger.Info("sources changed, rebuilding", "files", changed)
			changed = changed[:0]
			if err := rebuild(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				w.logger.Error("rebuild failed", "err", err)
			}
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&fsnotify.Create != 0 && w.watchNewDir(event.Name) {
				continue
			}

			rel, ok := w.relevant(event)
			if !ok {
				continue
			}
			w.logger.Debug("source changed", "file", rel, "op", event.Op.String())
			changed = append(changed, rel)
			timer.Reset(w.debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			if err != nil {
				w.logger.Warn("watcher error", "err", err)
			}
		}
	}
}

func (w *Watcher) Close() error {
	if w == nil {
		return nil
	}

	var closeErr error
	w.once.Do(func() {
		close(w.done)
		closeErr = w.watcher.Close()
	})

	return closeErr
}

// watchNewDir adds a freshly created directory tree to the watch list and
// reports whether path was a directory. Hidden directories are skipped.
func (w *Watcher) watchNewDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	if strings.HasPrefix(filepath.Base(path), ".") {
		return true
	}

	if err := w.addRecursive(path); err != nil {
		w.logger.Warn("failed to watch new directory", "dir", path, "err", err)
	}
	return true
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return filepath.SkipDir
			}
			return err
		}

		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}

		return w.watcher.Add(path)
	})
}

// relevant reports whether event touches a source file and returns its path
// relative to the watched root it belongs to.
func (w *Watcher) relevant(event fsnotify.Event) (string, bool) {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return "", false
	}

	if _, ok := sourceExts[strings.ToLower(filepath.Ext(event.Name))]; !ok {
		return "", false
	}

	for _, root := range w.roots {
		rel, err := pathutil.DocsRelative(root, event.Name)
		if err != nil || !pathutil.Within(rel) || pathutil.IsHidden(rel) {
			continue
		}
		return rel, true
	}
	return "", false
}
