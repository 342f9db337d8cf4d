package rules

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Reload is the outcome of re-reading a watched rule table.
type Reload struct {
	Result *LoadResult
	Err    error
	At     time.Time
}

// Watcher re-parses a rule table file whenever it changes on disk. The
// parent directory is watched so editors that replace files on save are
// still seen.
type Watcher struct {
	Path    string
	Reloads <-chan Reload

	reloads chan Reload
	stop    chan struct{}
	done    chan struct{}
	watcher *fsnotify.Watcher
	logger  *slog.Logger
}

func NewWatcher(path string, logger *slog.Logger) (*Watcher, error) {
	if _, err := FormatFromPath(path); err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, err
	}

	ch := make(chan Reload, 4)
	return &Watcher{
		Path:    abs,
		Reloads: ch,
		reloads: ch,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		watcher: fw,
		logger:  logger,
	}, nil
}

// Start watches the table's directory. If that fails the fsnotify watcher
// is released and Stop is still safe to call.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		w.watcher.Close()
		close(w.done)
		return fmt.Errorf("watching %s: %w", filepath.Dir(w.Path), err)
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and the Reloads channel.
func (w *Watcher) Stop() {
	close(w.stop)
	w.watcher.Close()
	<-w.done
	close(w.reloads)
}

func (w *Watcher) loop() {
	defer close(w.done)

	const debounce = 100 * time.Millisecond
	var pendingSince time.Time
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.Path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pendingSince = time.Now()
			}

		case <-ticker.C:
			if !pendingSince.IsZero() && time.Since(pendingSince) >= debounce {
				pendingSince = time.Time{}
				w.emit()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("rule table watch error", "path", w.Path, "error", err)

		case <-w.stop:
			return
		}
	}
}

func (w *Watcher) emit() {
	res, err := LoadFile(w.Path)
	r := Reload{Result: res, Err: err, At: time.Now()}
	if err != nil {
		w.logger.Warn("rule table reload failed", "path", w.Path, "error", err)
	} else {
		w.logger.Info("rule table reloaded", "path", w.Path, "species", res.Table.Len(), "warnings", len(res.Warnings))
	}
	select {
	case w.reloads <- r:
	case <-w.stop:
	}
}
