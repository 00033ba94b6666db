package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the config file when it changes on disk and hands
// the result to a callback. Editors save configs with write-then-rename
// as often as in-place writes, so the watcher monitors the parent
// directory and filters for the file, debouncing bursts.
type Watcher struct {
	path     string
	onChange func(Config)

	fsw    *fsnotify.Watcher
	closed chan struct{}
	once   sync.Once
}

// Watch starts watching the config file at path. The callback runs on
// the watcher goroutine with each successfully reloaded config; parse
// failures are ignored so a half-saved file never clobbers a session.
func Watch(path string, onChange func(Config)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}
	w := &Watcher{
		path:     path,
		onChange: onChange,
		fsw:      fsw,
		closed:   make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	var pending <-chan time.Time
	for {
		select {
		case <-w.closed:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(100 * time.Millisecond)
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		case <-pending:
			pending = nil
			cfg, err := Load(w.path)
			if err != nil {
				continue
			}
			w.onChange(cfg)
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.once.Do(func() { close(w.closed) })
	return w.fsw.Close()
}
