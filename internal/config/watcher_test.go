package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type watchedFile struct {
	Name  string `toml:"name"`
	Value int    `toml:"value"`
}

func loadWatchedFile(path string) (watchedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return watchedFile{}, err
	}
	var f watchedFile
	err = toml.Unmarshal(data, &f)
	return f, err
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// startWatcher starts a watcher on dir/watched.toml and stops it at cleanup.
func startWatcher(t *testing.T, debounce time.Duration, opts ...WatcherOption[watchedFile]) (*Watcher[watchedFile], string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "watched.toml")
	write(t, path, "name = \"initial\"\nvalue = 1\n")

	opts = append(opts, WithDebounce[watchedFile](debounce))
	w := NewConfigWatcher(path, loadWatchedFile, newTestLogger(), opts...)
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := w.Stop(); err != nil {
			t.Errorf("Stop() failed: %v", err)
		}
	})

	// Give the watcher time to register.
	time.Sleep(100 * time.Millisecond)
	return w, path
}

func TestWatcher_Reload(t *testing.T) {
	received := make(chan watchedFile, 1)
	w, path := startWatcher(t, 50*time.Millisecond)
	w.OnReload(func(f watchedFile) {
		received <- f
	})

	write(t, path, "name = \"updated\"\nvalue = 42\n")

	select {
	case f := <-received:
		if f.Name != "updated" || f.Value != 42 {
			t.Errorf("got %+v, want name=updated value=42", f)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for reload")
	}
}

func TestWatcher_AtomicReplace(t *testing.T) {
	received := make(chan watchedFile, 1)
	w, path := startWatcher(t, 50*time.Millisecond)
	w.OnReload(func(f watchedFile) {
		received <- f
	})

	tmp := path + ".tmp"
	write(t, tmp, "value = 7\n")
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}

	select {
	case f := <-received:
		if f.Value != 7 {
			t.Errorf("got value %d, want 7", f.Value)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for reload after rename")
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	var count atomic.Int32
	w, path := startWatcher(t, 50*time.Millisecond)
	w.OnReload(func(watchedFile) {
		count.Add(1)
	})

	write(t, filepath.Join(filepath.Dir(path), "other.toml"), "value = 3\n")
	time.Sleep(300 * time.Millisecond)

	if got := count.Load(); got != 0 {
		t.Errorf("handler called %d times for a sibling file, want 0", got)
	}
}

func TestWatcher_MultipleHandlersShareSnapshot(t *testing.T) {
	var mu sync.Mutex
	var got []watchedFile

	w, path := startWatcher(t, 50*time.Millisecond)
	for range 3 {
		w.OnReload(func(f watchedFile) {
			mu.Lock()
			got = append(got, f)
			mu.Unlock()
		})
	}

	write(t, path, "name = \"new\"\nvalue = 2\n")
	time.Sleep(300 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 3 {
		t.Fatalf("handlers called %d times, want 3", len(got))
	}
	for i, f := range got {
		if f.Name != "new" || f.Value != 2 {
			t.Errorf("handler %d got %+v", i, f)
		}
	}
}

func TestWatcher_Unsubscribe(t *testing.T) {
	var count1, count2 atomic.Int32
	w, path := startWatcher(t, 50*time.Millisecond)
	w.OnReload(func(watchedFile) { count1.Add(1) })
	unsub := w.OnReload(func(watchedFile) { count2.Add(1) })

	write(t, path, "value = 10\n")
	time.Sleep(300 * time.Millisecond)

	unsub()

	write(t, path, "value = 20\n")
	time.Sleep(300 * time.Millisecond)

	if got := count1.Load(); got != 2 {
		t.Errorf("handler1 calls = %d, want 2", got)
	}
	if got := count2.Load(); got != 1 {
		t.Errorf("handler2 calls = %d, want 1", got)
	}
}

func TestWatcher_ErrorHandler(t *testing.T) {
	errs := make(chan error, 1)
	reloads := make(chan watchedFile, 1)
	w, path := startWatcher(t, 50*time.Millisecond, WithErrorHandler[watchedFile](func(err error) {
		errs <- err
	}))
	w.OnReload(func(f watchedFile) {
		reloads <- f
	})

	write(t, path, "invalid toml [[[")

	select {
	case <-errs:
	case <-reloads:
		t.Fatal("reload handler called for an invalid file")
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for error handler")
	}
}

func TestWatcher_Debounce(t *testing.T) {
	var count, last atomic.Int32
	w, path := startWatcher(t, 200*time.Millisecond)
	w.OnReload(func(f watchedFile) {
		count.Add(1)
		last.Store(int32(f.Value))
	})

	for i := 1; i <= 5; i++ {
		write(t, path, fmt.Sprintf("value = %d\n", i))
		time.Sleep(50 * time.Millisecond)
	}
	time.Sleep(500 * time.Millisecond)

	if got := count.Load(); got != 1 {
		t.Errorf("handler calls = %d, want 1 debounced call", got)
	}
	if got := last.Load(); got != 5 {
		t.Errorf("last value = %d, want 5", got)
	}
}

func TestWatcher_StopSilencesHandlers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watched.toml")
	write(t, path, "value = 1\n")

	var count atomic.Int32
	w := NewConfigWatcher(path, loadWatchedFile, newTestLogger(), WithDebounce[watchedFile](50*time.Millisecond))
	w.OnReload(func(watchedFile) { count.Add(1) })

	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	time.Sleep(100 * time.Millisecond)
	if err := w.Stop(); err != nil {
		t.Fatal(err)
	}

	write(t, path, "value = 99\n")
	time.Sleep(200 * time.Millisecond)

	if got := count.Load(); got != 0 {
		t.Errorf("handler calls after Stop = %d, want 0", got)
	}
}

func TestWatcher_StartMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "watched.toml")
	w := NewConfigWatcher(path, loadWatchedFile, newTestLogger())
	if err := w.Start(); err == nil {
		w.Stop()
		t.Fatal("Start() should fail when the parent directory does not exist")
	}
}
