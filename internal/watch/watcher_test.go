package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

const testDebounce = 100 * time.Millisecond

// startWatcher runs a watcher on root and forwards every batch of changes.
func startWatcher(t *testing.T, root string) <-chan []string {
	t.Helper()

	w, err := New(root, WithDebounce(testDebounce))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	batches := make(chan []string, 16)
	go func() {
		_ = w.Run(ctx, func(_ context.Context, changed []string) {
			batches <- changed
		})
	}()
	return batches
}

func waitBatch(t *testing.T, batches <-chan []string) []string {
	t.Helper()
	select {
	case b := <-batches:
		return b
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
		return nil
	}
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("missing root", func(t *testing.T) {
		t.Parallel()

		_, err := New(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrNotDirectory) {
			t.Errorf("New() error = %v, want ErrNotDirectory", err)
		}
	})

	t.Run("invalid debounce", func(t *testing.T) {
		t.Parallel()

		_, err := New(t.TempDir(), WithDebounce(0))
		if !errors.Is(err, ErrInvalidDebounce) {
			t.Errorf("New() error = %v, want ErrInvalidDebounce", err)
		}
	})
}

func TestWatcherCoalescesBurst(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	batches := startWatcher(t, root)

	want := make([]string, 0, 5)
	for _, name := range []string{"a.py", "b.py", "c.py", "d.py", "e.py"} {
		path := filepath.Join(root, name)
		writeFile(t, path)
		want = append(want, path)
	}

	got := waitBatch(t, batches)
	for _, path := range want {
		if !slices.Contains(got, path) {
			t.Errorf("batch %v lacks %s", got, path)
		}
	}
	if !slices.IsSorted(got) {
		t.Errorf("batch %v is not sorted", got)
	}
}

func TestWatcherFollowsNewDirectories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	existing := filepath.Join(root, "existing")
	if err := os.Mkdir(existing, 0o750); err != nil {
		t.Fatal(err)
	}
	batches := startWatcher(t, root)

	nested := filepath.Join(existing, "main.py")
	writeFile(t, nested)
	if got := waitBatch(t, batches); !slices.Contains(got, nested) {
		t.Errorf("batch %v lacks %s", got, nested)
	}

	created := filepath.Join(root, "created")
	if err := os.Mkdir(created, 0o750); err != nil {
		t.Fatal(err)
	}
	if got := waitBatch(t, batches); !slices.Contains(got, created) {
		t.Errorf("batch %v lacks %s", got, created)
	}

	inner := filepath.Join(created, "README.md")
	writeFile(t, inner)
	if got := waitBatch(t, batches); !slices.Contains(got, inner) {
		t.Errorf("batch %v lacks %s", got, inner)
	}
}

func TestWatcherStopsOnCancel(t *testing.T) {
	t.Parallel()

	w, err := New(t.TempDir(), WithDebounce(testDebounce))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context, []string) {})
	}()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
