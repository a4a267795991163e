package backend

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Kind represents the type of change emitted by the vault watcher.
type Kind int

const (
	KindCreated Kind = iota
	KindRemoved
)

func (k Kind) String() string {
	switch k {
	case KindCreated:
		return "created"
	case KindRemoved:
		return "removed"
	}
	return "unknown"
}

// Event conveys a vault-relative path that appeared or disappeared, or an
// error from the underlying watcher.
type Event struct {
	Kind Kind
	Path string
	Err  error
}

const errorInterval = time.Second

// Watcher follows file creation and removal below a vault root and
// publishes events. Hidden directories are not watched.
type Watcher struct {
	root    string
	fs      *fsnotify.Watcher
	errGate *throttle

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts watching root and every visible directory below it.
func NewWatcher(root string) (*Watcher, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := addDirsRecursive(fw, abs); err != nil {
		_ = fw.Close()
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		root:    abs,
		fs:      fw,
		errGate: newThrottle(errorInterval),
		ctx:     ctx,
		cancel:  cancel,
		events:  make(chan Event, 16),
	}

	w.wg.Add(1)
	go w.loop()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w, nil
}

// Events returns a channel of vault events. It is closed after Stop.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the watch loop has exited and the events channel is
// closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	defer w.fs.Close()

	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.handle(ev) {
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			if !w.errGate.allow() {
				continue
			}
			if !w.emit(Event{Err: err}) {
				return
			}
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) bool {
	rel, ok := w.rel(ev.Name)
	if !ok {
		return true
	}
	switch {
	case ev.Op&fsnotify.Create != 0:
		info, err := os.Stat(ev.Name)
		if err != nil {
			return true
		}
		if !info.IsDir() {
			return w.emit(Event{Kind: KindCreated, Path: rel})
		}
		if err := addDirsRecursive(w.fs, ev.Name); err != nil && w.errGate.allow() {
			if !w.emit(Event{Err: err}) {
				return false
			}
		}
		return w.emitFilesUnder(ev.Name)
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		return w.emit(Event{Kind: KindRemoved, Path: rel})
	}
	return true
}

// emitFilesUnder reports files already present in a directory that was
// created (or moved in) after watching started.
func (w *Watcher) emitFilesUnder(dir string) bool {
	var found []string
	_ = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if hidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			if rel, ok := w.rel(p); ok {
				found = append(found, rel)
			}
		}
		return nil
	})
	for _, rel := range found {
		if !w.emit(Event{Kind: KindCreated, Path: rel}) {
			return false
		}
	}
	return true
}

func (w *Watcher) emit(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}

// rel converts an absolute event path to a vault-relative slash path,
// rejecting anything hidden or outside the root.
func (w *Watcher) rel(abs string) (string, bool) {
	rel, err := filepath.Rel(w.root, abs)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if hidden(part) {
			return "", false
		}
	}
	return filepath.ToSlash(rel), true
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

func addDirsRecursive(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && hidden(d.Name()) {
			return filepath.SkipDir
		}
		return fw.Add(p)
	})
}
