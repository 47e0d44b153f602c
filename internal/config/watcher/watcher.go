// Package watcher reports changes to the configuration file so the
// editor can reload settings while running.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits after the last
// filesystem event before reporting a change. Editors that save with
// a temp-file rename emit several events per write; debouncing folds
// them into one reload.
const DefaultDebounce = 100 * time.Millisecond

// Op describes what happened to the watched file.
type Op int

const (
	opNone Op = iota
	// OpWrite means the file content changed.
	OpWrite
	// OpCreate means the file appeared, including rename-over saves.
	OpCreate
	// OpRemove means the file was deleted or renamed away.
	OpRemove
)

// String returns a human-readable name for the operation.
func (o Op) String() string {
	switch o {
	case OpWrite:
		return "write"
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	default:
		return "none"
	}
}

// Event is a debounced change notification for the watched file.
type Event struct {
	Path string
	Op   Op
}

// Watcher watches a single configuration file. It watches the parent
// directory rather than the file itself so saves that replace the file
// by rename keep being observed.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	debounce time.Duration

	events chan Event
	errors chan error

	closeCh   chan struct{}
	closeOnce sync.Once
	closedWg  sync.WaitGroup
}

// New creates a watcher for the file at path. A zero debounce uses
// DefaultDebounce.
func New(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving watch path %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		fsw:      fsw,
		path:     abs,
		debounce: debounce,
		events:   make(chan Event, 16),
		errors:   make(chan error, 4),
		closeCh:  make(chan struct{}),
	}

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Events returns the channel of debounced change notifications.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel of watcher errors.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher and waits for its goroutine to exit.
// Closing twice is safe.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.closeCh)
		err = w.fsw.Close()
		w.closedWg.Wait()
		close(w.events)
		close(w.errors)
	})
	return err
}

func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	var (
		pending Op
		timer   *time.Timer
		timerC  <-chan time.Time
	)

	for {
		select {
		case <-w.closeCh:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			op := convertOp(ev.Op)
			if op == opNone {
				continue
			}
			pending = op
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			w.sendEvent(Event{Path: w.path, Op: pending})
			pending = opNone

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		}
	}
}

// convertOp folds fsnotify operations into the watcher's coarser set.
// Chmod-only events are ignored.
func convertOp(op fsnotify.Op) Op {
	switch {
	case op.Has(fsnotify.Create):
		return OpCreate
	case op.Has(fsnotify.Write):
		return OpWrite
	case op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		return OpRemove
	default:
		return opNone
	}
}

// sendEvent delivers without blocking; a full channel drops the event.
// The consumer reloads the whole file, so a dropped notification is
// recovered by the next change.
func (w *Watcher) sendEvent(ev Event) {
	select {
	case w.events <- ev:
	case <-w.closeCh:
	default:
	}
}

func (w *Watcher) sendError(err error) {
	select {
	case w.errors <- err:
	case <-w.closeCh:
	default:
	}
}
