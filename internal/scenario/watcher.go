// Package scenario hot-loads an AppData file into the profile while the app
// runs, so a scenario can be prepared in an editor.
package scenario

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/matheus3301/mockmsg/internal/bus"
	"github.com/matheus3301/mockmsg/internal/mock"
	"go.uber.org/zap"
)

// Saver persists a loaded scenario.
type Saver interface {
	Save(d mock.AppData) error
}

// Watcher reloads a scenario file whenever it changes on disk.
type Watcher struct {
	path     string
	saver    Saver
	bus      *bus.Bus
	logger   *zap.Logger
	debounce time.Duration
	onLoad   func(mock.AppData)

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewWatcher creates a watcher for path. onLoad receives every successfully
// applied scenario.
func NewWatcher(path string, saver Saver, b *bus.Bus, logger *zap.Logger, onLoad func(mock.AppData)) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		path:     filepath.Clean(path),
		saver:    saver,
		bus:      b,
		logger:   logger,
		debounce: 200 * time.Millisecond,
		onLoad:   onLoad,
	}
}

// Apply reads, validates and saves the scenario file once.
func (w *Watcher) Apply() (mock.AppData, error) {
	b, err := os.ReadFile(w.path)
	if err != nil {
		return mock.AppData{}, fmt.Errorf("read scenario: %w", err)
	}
	d, err := mock.DecodeValid(b)
	if err != nil {
		return mock.AppData{}, err
	}
	if err := w.saver.Save(d); err != nil {
		return mock.AppData{}, fmt.Errorf("save scenario: %w", err)
	}
	w.bus.Emit(bus.DataReloaded, w.path)
	if w.onLoad != nil {
		w.onLoad(d)
	}
	return d, nil
}

// Start watches the directory of the scenario file. Editors often replace
// files by rename, so the file itself is not watched.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		_ = fw.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}

	ctx, cancel := context.WithCancel(ctx)
	w.mu.Lock()
	w.watcher = fw
	w.cancel = cancel
	w.done = make(chan struct{})
	w.mu.Unlock()

	go w.loop(ctx, fw)
	w.logger.Info("watching scenario file", zap.String("path", w.path))
	return nil
}

// Stop ends the watch and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel, fw, done := w.cancel, w.watcher, w.done
	w.cancel, w.watcher = nil, nil
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	_ = fw.Close()
	<-done
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher) {
	defer close(w.done)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case evt, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(evt.Name) != w.path {
				continue
			}
			if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("scenario watcher error", zap.Error(err))
		case <-fire:
			fire = nil
			if _, err := w.Apply(); err != nil {
				w.logger.Error("scenario rejected", zap.Error(err), zap.String("path", w.path))
				continue
			}
			w.logger.Info("scenario applied", zap.String("path", w.path))
		}
	}
}
