package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	mdwerror "github.com/msto63/cminus/foundation/core/error"
	mdwlog "github.com/msto63/cminus/foundation/core/log"
)

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New("/nonexistent/dir/prog.c-", func(string) {}, Options{})
	if !mdwerror.HasCode(err, mdwerror.CodeWatchError) {
		t.Errorf("New() error = %v, want WATCH_ERROR", err)
	}
}

func TestWatcher_DebouncedChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.c-")
	if err := os.WriteFile(path, []byte("int x;\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	changes := make(chan string, 10)
	w, err := New(path, func(p string) { changes <- p }, Options{
		Debounce: 50 * time.Millisecond,
		Logger:   mdwlog.Discard(),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// A burst of writes and an unrelated file
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("int x;\nint y;\n"), 0644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	select {
	case got := <-changes:
		if got != w.Path() {
			t.Errorf("handler path = %v, want %v", got, w.Path())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not called")
	}

	// The burst collapses into a single call
	select {
	case <-changes:
		t.Error("handler called more than once for one burst")
	case <-time.After(300 * time.Millisecond):
	}

	w.Stop()
	w.Stop()
	select {
	case <-w.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("watch loop did not stop")
	}
}

func TestWatcher_ContextCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.c-")
	w, err := New(path, func(string) {}, Options{Logger: mdwlog.Discard()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := w.Start(ctx); err != nil {
		t.Errorf("second Start() error = %v", err)
	}

	cancel()
	select {
	case <-w.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("watch loop did not stop after cancel")
	}
}
