// Package watcher reports changes to settings files for live reload.
//
// Directories rather than files are handed to fsnotify so that editors which
// save by renaming a temporary file over the original keep being observed.
// Changes are debounced and delivered as one batch per quiet period: a
// settings file and the action files it lists reload together.
package watcher

import (
	"errors"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period before a batch is delivered.
const DefaultDebounce = 100 * time.Millisecond

// ErrClosed is returned by operations on a closed watcher.
var ErrClosed = errors.New("watcher closed")

// Change is one debounced batch of settings file changes.
type Change struct {
	// Files are the absolute paths that changed, sorted.
	Files []string

	// Removed reports that at least one file was last seen removed or
	// renamed away. Reloading will likely fail until it comes back.
	Removed bool

	// Time is when the batch was delivered.
	Time time.Time
}

// Handler is called with each batch.
type Handler func(change Change)

// Watcher watches settings files.
type Watcher struct {
	mu  sync.Mutex
	fsw *fsnotify.Watcher

	// files are the watched paths; dirs counts watched files per directory
	// registered with fsnotify.
	files map[string]bool
	dirs  map[string]int

	handlers []Handler
	logger   *zap.Logger
	debounce time.Duration

	// pending maps a changed path to whether it was last removed.
	pending map[string]bool

	done    chan struct{}
	wg      sync.WaitGroup
	running bool
	closed  bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period. Zero delivers every change at once.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger for watch errors.
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a stopped watcher.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		files:    make(map[string]bool),
		dirs:     make(map[string]int),
		logger:   zap.NewNop(),
		debounce: DefaultDebounce,
		pending:  make(map[string]bool),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Watch adds a file. The file may not exist yet, but its directory must.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if w.files[abs] {
		return nil
	}

	dir := filepath.Dir(abs)
	if w.dirs[dir] == 0 {
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[abs] = true
	return nil
}

// Unwatch removes a file. Changes already pending for it are still delivered.
func (w *Watcher) Unwatch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if !w.files[abs] {
		return nil
	}
	delete(w.files, abs)

	dir := filepath.Dir(abs)
	if w.dirs[dir]--; w.dirs[dir] > 0 {
		return nil
	}
	delete(w.dirs, dir)
	return w.fsw.Remove(dir)
}

// OnChange registers a handler. Handlers run on the watcher goroutine in
// registration order.
func (w *Watcher) OnChange(handler Handler) {
	if handler == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, handler)
}

// Start begins delivering changes. It does nothing on a running or closed
// watcher.
func (w *Watcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running || w.closed {
		return
	}
	w.done = make(chan struct{})
	w.running = true
	w.wg.Add(1)
	go w.loop()
}

// Close stops the watcher and releases the fsnotify handle. Pending changes
// are dropped. Calling Close more than once is safe.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.running {
		close(w.done)
		w.running = false
	}
	w.mu.Unlock()

	w.wg.Wait()
	return w.fsw.Close()
}

// IsRunning reports whether the watcher is delivering changes.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// WatchedFiles returns the watched files, sorted.
func (w *Watcher) WatchedFiles() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	files := make([]string, 0, len(w.files))
	for path := range w.files {
		files = append(files, path)
	}
	sort.Strings(files)
	return files
}

// loop records fsnotify events and flushes them once the debounce timer
// fires without further events.
func (w *Watcher) loop() {
	defer w.wg.Done()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.record(ev) {
				continue
			}
			if w.debounce == 0 {
				w.flush(time.Now())
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.flush(time.Now())

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("settings watcher error", zap.Error(err))
		}
	}
}

// record adds an event for a watched file to the pending batch. It reports
// whether the event was kept.
func (w *Watcher) record(ev fsnotify.Event) bool {
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) &&
		!ev.Op.Has(fsnotify.Remove) && !ev.Op.Has(fsnotify.Rename) {
		return false
	}
	path := filepath.Clean(ev.Name)

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.files[path] {
		return false
	}
	w.pending[path] = ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename)
	w.logger.Debug("settings file changed",
		zap.String("path", path),
		zap.Stringer("op", ev.Op))
	return true
}

// flush delivers the pending batch, if any.
func (w *Watcher) flush(now time.Time) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	change := Change{Time: now, Files: make([]string, 0, len(w.pending))}
	for path, removed := range w.pending {
		change.Files = append(change.Files, path)
		change.Removed = change.Removed || removed
	}
	clear(w.pending)
	handlers := append([]Handler(nil), w.handlers...)
	w.mu.Unlock()

	sort.Strings(change.Files)
	for _, h := range handlers {
		w.call(h, change)
	}
}

// call runs a handler, recovering from panics so the watcher survives.
func (w *Watcher) call(h Handler, change Change) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("settings reload handler panicked",
				zap.Strings("files", change.Files),
				zap.Any("panic", r))
		}
	}()
	h(change)
}
