// Package watch re-applies a rewrite to notes as they change on disk.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/ryotapoi/linkconv/internal/core"
	"github.com/ryotapoi/linkconv/internal/logger"
)

// DefaultDebounce is how long a note must stay quiet before it is handled.
const DefaultDebounce = 300 * time.Millisecond

// Change is a settled change to one note.
type Change struct {
	Path    string // vault-relative
	Removed bool   // removed or renamed away
}

// Handler processes one change. Handlers are never called concurrently.
type Handler func(ctx context.Context, c Change) error

// Watcher monitors the vault for note changes.
type Watcher struct {
	watcher  *fsnotify.Watcher
	root     string
	delay    time.Duration
	handle   Handler
	log      *logger.Logger
	ready    chan Change
	done     chan struct{}
	debounce map[string]*time.Timer
	mu       sync.Mutex
	once     sync.Once
}

// New watches root and every non-hidden directory below it.
func New(root string, delay time.Duration, handle Handler, log *logger.Logger) (*Watcher, error) {
	if log == nil {
		log = logger.Discard()
	}
	if delay <= 0 {
		delay = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create watcher")
	}

	w := &Watcher{
		watcher:  fw,
		root:     root,
		delay:    delay,
		handle:   handle,
		log:      log,
		ready:    make(chan Change, 64),
		done:     make(chan struct{}),
		debounce: make(map[string]*time.Timer),
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return fw.Add(path)
		}
		return nil
	})
	if err != nil {
		fw.Close()
		return nil, errors.Wrap(err, "watch vault")
	}
	return w, nil
}

// Run dispatches settled changes to the handler until ctx is done or the
// watcher is closed. Handler errors are logged and do not stop the loop.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.Close()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)

		case c := <-w.ready:
			if err := w.handle(ctx, c); err != nil {
				w.log.FileError(c.Path, err)
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return
	}
	rel = core.NormalizePath(rel)
	if hidden(rel) {
		return
	}

	if !strings.EqualFold(filepath.Ext(path), ".md") {
		// Watch new directories
		if event.Has(fsnotify.Create) {
			info, err := os.Stat(path)
			if err == nil && info.IsDir() {
				_ = w.watcher.Add(path)
			}
		}
		return
	}
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	removed := event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)

	w.mu.Lock()
	defer w.mu.Unlock()
	if timer, ok := w.debounce[rel]; ok {
		timer.Stop()
	}
	w.debounce[rel] = time.AfterFunc(w.delay, func() {
		w.mu.Lock()
		delete(w.debounce, rel)
		w.mu.Unlock()

		select {
		case w.ready <- Change{Path: rel, Removed: removed}:
		case <-w.done:
		}
	})
}

// hidden reports whether any element of the vault-relative path starts with a dot.
func hidden(rel string) bool {
	for _, part := range strings.Split(rel, "/") {
		if strings.HasPrefix(part, ".") && part != "." {
			return true
		}
	}
	return false
}

// Close stops the watcher and any pending timers.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		w.mu.Lock()
		for _, t := range w.debounce {
			t.Stop()
		}
		w.mu.Unlock()
		err = w.watcher.Close()
	})
	return err
}
