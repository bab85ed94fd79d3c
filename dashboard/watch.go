package dashboard

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watcher turns filesystem events on one file into debounced change
// notifications. It watches the file's directory rather than the file itself
// so the file is still caught through delete and recreate cycles.
type watcher struct {
	fsn      *fsnotify.Watcher
	base     string
	debounce time.Duration

	changes chan struct{}
	errs    chan error

	mu    sync.Mutex
	timer *time.Timer
}

func newWatcher(path string, debounce time.Duration) (*watcher, error) {
	fsn, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsn.Add(filepath.Dir(path)); err != nil {
		fsn.Close()
		return nil, err
	}
	w := &watcher{
		fsn:      fsn,
		base:     filepath.Base(path),
		debounce: debounce,
		changes:  make(chan struct{}, 1),
		errs:     make(chan error, 1),
	}
	go w.loop()
	return w, nil
}

func (w *watcher) loop() {
	for {
		select {
		case event, ok := <-w.fsn.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != w.base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			// Editors and download tools write in bursts; restart the timer
			// so one burst becomes one notification.
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.timer = time.AfterFunc(w.debounce, w.fire)
			w.mu.Unlock()
		case err, ok := <-w.fsn.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		}
	}
}

func (w *watcher) fire() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

func (w *watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.fsn.Close()
}
