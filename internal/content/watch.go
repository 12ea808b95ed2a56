package content

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long a burst of writes is collected before the
// changed locators are reported.
const DefaultDebounce = 100 * time.Millisecond

var watchedDirs = []string{"content", "components"}

// Watcher reports the locators of templates edited in an override directory.
type Watcher struct {
	root     string
	debounce time.Duration
	fsw      *fsnotify.Watcher
	log      *zap.Logger

	mu      sync.Mutex
	pending map[string]struct{}

	changes chan string
}

// NewWatcher watches dir/content and dir/components. Subdirectories created
// later are picked up through the watch on dir itself.
func NewWatcher(dir string, debounce time.Duration, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watcher: %w", err)
	}
	w := &Watcher{
		root:     dir,
		debounce: debounce,
		fsw:      fsw,
		log:      log,
		pending:  make(map[string]struct{}),
		changes:  make(chan string, 16),
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	for _, sub := range watchedDirs {
		w.addDir(filepath.Join(dir, sub))
	}
	return w, nil
}

// Changes yields one locator per debounced change, e.g. "content/about.md".
// It is closed when Run returns.
func (w *Watcher) Changes() <-chan string { return w.changes }

// Run processes file events until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.changes)
	defer w.fsw.Close()

	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch", zap.Error(err))
		case <-ticker.C:
			if !w.flush(ctx) {
				return
			}
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if ev.Op == fsnotify.Chmod {
		return
	}
	rel, err := filepath.Rel(w.root, ev.Name)
	if err != nil {
		return
	}
	rel = filepath.ToSlash(rel)
	if ev.Has(fsnotify.Create) {
		for _, sub := range watchedDirs {
			if rel == sub {
				w.addDir(ev.Name)
				return
			}
		}
	}
	dir, _ := filepath.Split(rel)
	if dir != "content/" && dir != "components/" {
		return
	}
	locator := markdownLocator(rel)
	if locator == "" {
		return
	}
	w.mu.Lock()
	w.pending[locator] = struct{}{}
	w.mu.Unlock()
	w.log.Debug("template changed", zap.String("locator", locator), zap.Stringer("op", ev.Op))
}

// flush reports the pending locators. It returns false when ctx ended first.
func (w *Watcher) flush(ctx context.Context) bool {
	w.mu.Lock()
	batch := make([]string, 0, len(w.pending))
	for l := range w.pending {
		batch = append(batch, l)
	}
	clear(w.pending)
	w.mu.Unlock()

	for _, l := range batch {
		select {
		case w.changes <- l:
		case <-ctx.Done():
			return false
		}
	}
	return true
}

func (w *Watcher) addDir(path string) {
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		return
	}
	if err := w.fsw.Add(path); err != nil {
		w.log.Warn("watch dir", zap.String("path", path), zap.Error(err))
	}
}
