package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nao1215/treeverify/internal/fsscan"
)

// DefaultDebounce is how long the watcher waits for events to settle.
const DefaultDebounce = 500 * time.Millisecond

var (
	// ErrInvalidDebounce is returned for a debounce window that is not positive.
	ErrInvalidDebounce = errors.New("debounce must be positive")

	// ErrNotDirectory is returned when the watched root is not a directory.
	ErrNotDirectory = errors.New("watch root is not a directory")
)

// ChangeFunc receives the sorted, de-duplicated paths changed in one window.
type ChangeFunc func(ctx context.Context, changed []string)

// Watcher watches a directory tree recursively.
type Watcher struct {
	root     string
	debounce time.Duration
	logger   *slog.Logger
	fsw      *fsnotify.Watcher
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce window.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New creates a Watcher and registers every directory below root.
// Events are collected from the moment New returns.
func New(root string, opts ...Option) (*Watcher, error) {
	w := &Watcher{
		root:     filepath.Clean(root),
		debounce: DefaultDebounce,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.debounce <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDebounce, w.debounce)
	}
	if !fsscan.IsDir(w.root) {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, w.root)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	w.fsw = fsw

	if err := w.addTree(w.root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run calls fn after each burst of changes until ctx is cancelled.
// fn runs on the watcher goroutine; events arriving meanwhile are queued
// for the next window. Run returns nil when ctx is cancelled.
func (w *Watcher) Run(ctx context.Context, fn ChangeFunc) error {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	pending := make(map[string]struct{})
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("file event", "path", event.Name, "op", event.Op.String())
			if event.Has(fsnotify.Create) {
				if err := w.addTree(event.Name); err != nil {
					w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
				}
			}
			pending[event.Name] = struct{}{}
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			slices.Sort(changed)
			clear(pending)
			fn(ctx, changed)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

// addTree registers dir and its subdirectories. A path that is not a
// directory, or no longer exists, is ignored.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return fmt.Errorf("failed to walk %s: %w", path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}
