package integrity

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	fsnotify "github.com/fsnotify/fsnotify"
	domain "github.com/inference-gateway/toolgate/internal/domain"
	logger "github.com/inference-gateway/toolgate/internal/logger"
)

// WatchTarget is one policy directory the watcher reloads on change
type WatchTarget struct {
	Scope      domain.PolicyScope
	Identifier string
	Dir        string
}

// ReloadFunc is called once per debounced change of a target
type ReloadFunc func(ctx context.Context, target WatchTarget)

// Watcher re-runs the integrity gate when a policy directory changes.
// Subdirectories are watched too, and a directory that does not exist yet is
// picked up once it is created. Bursts of events within the debounce window
// produce a single reload.
type Watcher struct {
	watcher  *fsnotify.Watcher
	targets  map[string]WatchTarget
	reload   ReloadFunc
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]time.Time
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// NewWatcher creates a watcher over targets. For a missing directory the
// nearest existing parent is watched until the directory appears.
func NewWatcher(targets []WatchTarget, debounce time.Duration, reload ReloadFunc) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	w := &Watcher{
		watcher:  fw,
		targets:  make(map[string]WatchTarget),
		reload:   reload,
		debounce: debounce,
		pending:  make(map[string]time.Time),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}

	for _, t := range targets {
		t.Dir = filepath.Clean(t.Dir)
		w.targets[t.Dir] = t
		w.watchTarget(t)
		logger.Debug("Watching policy directory", "scope", t.Scope, "dir", t.Dir)
	}

	return w, nil
}

// watchTarget adds the target tree, or its nearest existing parent when the
// target is missing. Adding a path twice is harmless.
func (w *Watcher) watchTarget(t WatchTarget) {
	for {
		if isDirectory(t.Dir) {
			w.addTree(t.Dir)
			return
		}

		parent := nearestParent(t.Dir)
		if parent == "" {
			logger.Warn("Policy directory not watched, no existing parent", "dir", t.Dir)
			return
		}
		if err := w.watcher.Add(parent); err != nil {
			logger.Warn("Policy directory not watched", "dir", t.Dir, "parent", parent, "error", err)
			return
		}
		// a directory created below parent before the watch was added sends no event
		if nearestParent(t.Dir) == parent && !isDirectory(t.Dir) {
			return
		}
	}
}

func nearestParent(dir string) string {
	for d := filepath.Dir(dir); ; d = filepath.Dir(d) {
		if isDirectory(d) {
			return d
		}
		if filepath.Dir(d) == d {
			return ""
		}
	}
}

func (w *Watcher) addTree(root string) {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			logger.Warn("Policy subdirectory not watched", "dir", path, "error", err)
		}
		return nil
	})
	if err != nil {
		logger.Warn("Failed to walk policy directory", "dir", root, "error", err)
	}
}

// LoaderReload returns a ReloadFunc that re-runs the manager's gate
func LoaderReload(m *Manager) ReloadFunc {
	return func(ctx context.Context, target WatchTarget) {
		result, err := m.LoadPolicies(ctx, target.Scope, target.Identifier, target.Dir)
		if err != nil {
			logger.Warn("Policy reload did not apply", "scope", target.Scope, "dir", target.Dir, "error", err)
			return
		}
		logger.Info("Policies reloaded", "scope", target.Scope, "dir", target.Dir, "rules", result.RuleCount)
	}
}

// Start runs the event loop in a goroutine
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	go w.run(ctx)
}

// Stop ends the event loop and closes the underlying watcher
func (w *Watcher) Stop() {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}
	if err := w.watcher.Close(); err != nil {
		logger.Error("Failed to close policy watcher", "error", err)
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := w.debounce / 5
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Error("Policy watcher error", "error", err)
		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	name := filepath.Clean(event.Name)
	removed := event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
	createdDir := event.Has(fsnotify.Create) && isDirectory(name)

	for dir, t := range w.targets {
		switch {
		case within(dir, name):
			if createdDir {
				w.addTree(name)
			}
			if createdDir || removed || IsPolicyFile(name) {
				w.markPending(dir)
			}
		case name == dir || within(name, dir):
			// the target itself or one of its parents appeared or went away
			if createdDir || removed {
				w.watchTarget(t)
				w.markPending(dir)
			}
		}
	}
}

func (w *Watcher) markPending(dir string) {
	w.mu.Lock()
	w.pending[dir] = time.Now()
	w.mu.Unlock()
}

// within reports whether path lies strictly below dir
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func isDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (w *Watcher) flush(ctx context.Context) {
	now := time.Now()
	var due []WatchTarget

	w.mu.Lock()
	for dir, last := range w.pending {
		if now.Sub(last) >= w.debounce {
			due = append(due, w.targets[dir])
			delete(w.pending, dir)
		}
	}
	w.mu.Unlock()

	for _, t := range due {
		w.reload(ctx, t)
	}
}
