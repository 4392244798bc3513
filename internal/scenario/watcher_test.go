package scenario

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/matheus3301/mockmsg/internal/bus"
	"github.com/matheus3301/mockmsg/internal/mock"
)

type memSaver struct {
	mu    sync.Mutex
	saved []mock.AppData
}

func (m *memSaver) Save(d mock.AppData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, d)
	return nil
}

func (m *memSaver) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.saved)
}

func writeScenario(t *testing.T, path string, d mock.AppData) {
	t.Helper()
	b, err := mock.EncodeIndent(d)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, b, 0600); err != nil {
		t.Fatal(err)
	}
}

func TestApply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	d := mock.Default()
	d.SystemStatus.Time = "23:59"
	writeScenario(t, path, d)

	saver := &memSaver{}
	var loaded mock.AppData
	w := NewWatcher(path, saver, bus.New(), nil, func(d mock.AppData) { loaded = d })

	if _, err := w.Apply(); err != nil {
		t.Fatal(err)
	}
	if saver.count() != 1 || loaded.SystemStatus.Time != "23:59" {
		t.Errorf("saved %d, loaded time %q", saver.count(), loaded.SystemStatus.Time)
	}
}

func TestApplyRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	if err := os.WriteFile(path, []byte(`{"contacts":[],"chats":{"x":[]}}`), 0600); err != nil {
		t.Fatal(err)
	}
	saver := &memSaver{}
	w := NewWatcher(path, saver, nil, nil, nil)
	if _, err := w.Apply(); err == nil {
		t.Error("Apply() expected validation error")
	}
	if saver.count() != 0 {
		t.Error("invalid scenario was saved")
	}
}

func TestApplyMissingFile(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "none.json"), &memSaver{}, nil, nil, nil)
	if _, err := w.Apply(); err == nil {
		t.Error("Apply() expected error for missing file")
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.json")
	writeScenario(t, path, mock.Default())

	saver := &memSaver{}
	loaded := make(chan mock.AppData, 4)
	w := NewWatcher(path, saver, nil, nil, func(d mock.AppData) { loaded <- d })
	w.debounce = 20 * time.Millisecond
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	d := mock.Default()
	d.SystemStatus.Wifi = 1
	writeScenario(t, path, d)

	select {
	case got := <-loaded:
		if got.SystemStatus.Wifi != 1 {
			t.Errorf("wifi = %d, want 1", got.SystemStatus.Wifi)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for reload")
	}
}

func TestStopWithoutStart(t *testing.T) {
	w := NewWatcher("x.json", &memSaver{}, nil, nil, nil)
	w.Stop()
}
