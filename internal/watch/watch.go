// Package watch regenerates the changelog when the repository's HEAD or
// branch refs change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

// DefaultDebounce is how long the watcher waits for ref updates to settle.
const DefaultDebounce = 500 * time.Millisecond

// Watcher observes a .git directory.
type Watcher struct {
	gitDir   string
	debounce time.Duration
	watcher  *fsnotify.Watcher

	// OnError receives regeneration errors. Watching continues after them.
	OnError func(error)
}

// GitDir returns the .git directory of the worktree rooted at root.
func GitDir(root string) (string, error) {
	dir := filepath.Join(root, ".git")
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("locating git directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("locating git directory: %s is not a directory", dir)
	}
	return dir, nil
}

// New creates a Watcher for gitDir. A non-positive debounce uses DefaultDebounce.
func New(gitDir string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	w := &Watcher{gitDir: gitDir, debounce: debounce, watcher: fw}
	if err := w.addWatches(); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

// addWatches watches the git directory and every directory under refs/heads.
func (w *Watcher) addWatches() error {
	if err := w.watcher.Add(w.gitDir); err != nil {
		return fmt.Errorf("watching %s: %w", w.gitDir, err)
	}

	heads := filepath.Join(w.gitDir, "refs", "heads")
	if _, err := os.Stat(heads); err != nil {
		return nil
	}
	return filepath.WalkDir(heads, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := w.watcher.Add(path); err != nil {
				return fmt.Errorf("watching %s: %w", path, err)
			}
		}
		return nil
	})
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Run calls regenerate after each settled burst of ref changes until ctx
// is cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context, regenerate func(context.Context) error) error {
	triggers := make(chan struct{}, 1)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return w.eventLoop(gctx, triggers)
	})
	g.Go(func() error {
		return w.debounceLoop(gctx, triggers, regenerate)
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// eventLoop forwards relevant fsnotify events as triggers.
func (w *Watcher) eventLoop(ctx context.Context, triggers chan<- struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			if event.Has(fsnotify.Create) {
				w.watchNewRefDir(event.Name)
			}
			if !IsRelevant(w.gitDir, event.Name) {
				continue
			}
			select {
			case triggers <- struct{}{}:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

// watchNewRefDir starts watching directories created under refs/heads,
// such as the "feature" in "feature/login".
func (w *Watcher) watchNewRefDir(path string) {
	if !strings.HasPrefix(path, filepath.Join(w.gitDir, "refs", "heads")) {
		return
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		_ = w.watcher.Add(path)
	}
}

// debounceLoop waits for triggers to go quiet before regenerating.
func (w *Watcher) debounceLoop(ctx context.Context, triggers <-chan struct{}, regenerate func(context.Context) error) error {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-triggers:
			timer.Reset(w.debounce)
		case <-timer.C:
			if err := regenerate(ctx); err != nil && w.OnError != nil {
				w.OnError(err)
			}
		}
	}
}

// IsRelevant reports whether a change to path can alter history reachable
// from HEAD. Lock files are ignored; git renames them into place.
func IsRelevant(gitDir, path string) bool {
	if strings.HasSuffix(path, ".lock") {
		return false
	}
	rel, err := filepath.Rel(gitDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	rel = filepath.ToSlash(rel)
	switch {
	case rel == "HEAD", rel == "packed-refs":
		return true
	case strings.HasPrefix(rel, "refs/heads/"):
		return true
	default:
		return false
	}
}
