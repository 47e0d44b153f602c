package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

const testDebounce = 20 * time.Millisecond

func waitForEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case ev := <-w.Events():
		return ev
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for watcher event")
		return Event{}
	}
}

func TestWatcherReportsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[popup]\nwidth = 30\n"), 0o644); err != nil {
		t.Fatalf("seed write: %v", err)
	}

	w, err := New(path, testDebounce)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[popup]\nwidth = 44\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	ev := waitForEvent(t, w)
	if ev.Path != w.Path() {
		t.Errorf("event path = %q, want %q", ev.Path, w.Path())
	}
	if ev.Op != OpWrite && ev.Op != OpCreate {
		t.Errorf("event op = %v, want write or create", ev.Op)
	}
}

func TestWatcherDebouncesBurst(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	w, err := New(path, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("[popup]\n"), 0o644); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	waitForEvent(t, w)

	// The burst fell inside one debounce window; no second event
	// should follow.
	select {
	case ev := <-w.Events():
		t.Errorf("unexpected second event %+v after burst", ev)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	w, err := New(path, testDebounce)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(other, []byte("unrelated"), 0o644); err != nil {
		t.Fatalf("write sibling: %v", err)
	}

	select {
	case ev := <-w.Events():
		t.Errorf("got event %+v for sibling file", ev)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcherSurvivesRenameReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[popup]\nwidth = 30\n"), 0o644); err != nil {
		t.Fatalf("seed write: %v", err)
	}

	w, err := New(path, testDebounce)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	// Save the way editors do: write a temp file, rename it over.
	tmp := filepath.Join(dir, ".config.toml.tmp")
	if err := os.WriteFile(tmp, []byte("[popup]\nwidth = 44\n"), 0o644); err != nil {
		t.Fatalf("temp write: %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("rename: %v", err)
	}

	ev := waitForEvent(t, w)
	if ev.Op != OpCreate && ev.Op != OpWrite {
		t.Errorf("event op = %v, want create or write after rename-over", ev.Op)
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	w, err := New(filepath.Join(dir, "config.toml"), testDebounce)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	if _, ok := <-w.Events(); ok {
		t.Errorf("events channel still open after Close")
	}
}

func TestConvertOp(t *testing.T) {
	tests := []struct {
		in   fsnotify.Op
		want Op
	}{
		{fsnotify.Write, OpWrite},
		{fsnotify.Create, OpCreate},
		{fsnotify.Remove, OpRemove},
		{fsnotify.Rename, OpRemove},
		{fsnotify.Chmod, opNone},
		{fsnotify.Create | fsnotify.Write, OpCreate},
	}
	for _, tt := range tests {
		if got := convertOp(tt.in); got != tt.want {
			t.Errorf("convertOp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
