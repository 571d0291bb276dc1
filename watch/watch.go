// Package watch reports changes to a single file, debounced.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/andareed/siftly-obsmap/logging"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when New is given a non-positive delay.
const DefaultDebounce = 200 * time.Millisecond

// Watcher sends the watched path on Events after writes to it settle.
type Watcher struct {
	path     string
	debounce time.Duration
	fs       *fsnotify.Watcher
	events   chan string
	errs     chan error
	done     chan struct{}
	once     sync.Once
	wg       sync.WaitGroup
}

// New starts watching path. Its parent directory is watched so editors that
// replace the file on save are still seen.
func New(path string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch directory: %w", err)
	}

	w := &Watcher{
		path:     path,
		debounce: debounce,
		fs:       fw,
		events:   make(chan string, 1),
		errs:     make(chan error, 1),
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Events delivers the path once per settled burst of changes.
func (w *Watcher) Events() <-chan string { return w.events }

// Errors delivers watcher errors. Errors are dropped while one is pending.
func (w *Watcher) Errors() <-chan error { return w.errs }

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	base := filepath.Base(w.path)

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logging.Debugf("watch: %s %s", ev.Op, ev.Name)
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, w.fire)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logging.Warnf("watch: %v", err)
			select {
			case w.errs <- err:
			default:
			}
		}
	}
}

func (w *Watcher) fire() {
	select {
	case <-w.done:
		return
	default:
	}
	// one pending event is enough; the reader reloads the whole file
	select {
	case w.events <- w.path:
	default:
	}
}
