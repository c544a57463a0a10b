package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func newWatcher(t *testing.T, opts ...Option) *Watcher {
	t.Helper()
	w, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = w.Stop() })
	return w
}

func TestNew(t *testing.T) {
	w := newWatcher(t)
	if w.debounce != 100*time.Millisecond {
		t.Errorf("default debounce = %v, expected 100ms", w.debounce)
	}

	w = newWatcher(t, WithDebounce(0))
	if w.debounce != 0 {
		t.Errorf("debounce = %v, expected 0", w.debounce)
	}
}

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, expected %q", tt.op, got, tt.want)
		}
	}
}

func TestConvertOp(t *testing.T) {
	tests := []struct {
		in     fsnotify.Op
		want   Operation
		wantOK bool
	}{
		{fsnotify.Write, OpWrite, true},
		{fsnotify.Create, OpCreate, true},
		{fsnotify.Create | fsnotify.Write, OpCreate, true},
		{fsnotify.Remove, OpRemove, true},
		{fsnotify.Rename, OpRename, true},
		{fsnotify.Chmod, 0, false},
	}

	for _, tt := range tests {
		got, ok := convertOp(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("convertOp(%v) = %v, %v; expected %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestWatcher_WatchUnwatch(t *testing.T) {
	tmpDir := t.TempDir()
	w := newWatcher(t)

	a := filepath.Join(tmpDir, "a.toml")
	b := filepath.Join(tmpDir, "not-yet.toml")
	if err := w.Watch(a); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	if err := w.Watch(b); err != nil {
		t.Fatalf("Watch() for missing file error = %v", err)
	}
	if err := w.Watch(a); err != nil {
		t.Errorf("second Watch() error = %v", err)
	}

	if got := len(w.WatchedFiles()); got != 2 {
		t.Errorf("WatchedFiles() = %d files, expected 2", got)
	}
	if w.dirs[tmpDir] != 2 {
		t.Errorf("directory refcount = %d, expected 2", w.dirs[tmpDir])
	}

	if err := w.Unwatch(a); err != nil {
		t.Errorf("Unwatch() error = %v", err)
	}
	if err := w.Unwatch(b); err != nil {
		t.Errorf("Unwatch() error = %v", err)
	}
	if len(w.WatchedFiles()) != 0 || len(w.dirs) != 0 {
		t.Errorf("watch lists not empty after Unwatch: %v %v", w.files, w.dirs)
	}
}

func TestWatcher_WatchMissingDir(t *testing.T) {
	w := newWatcher(t)
	if err := w.Watch(filepath.Join(t.TempDir(), "nope", "config.toml")); err == nil {
		t.Error("Watch() in a missing directory should fail")
	}
}

func TestWatcher_StartStop(t *testing.T) {
	w := newWatcher(t)

	if w.IsRunning() {
		t.Error("IsRunning() = true before Start()")
	}

	w.Start()
	w.Start()
	if !w.IsRunning() {
		t.Error("IsRunning() = false after Start()")
	}

	if err := w.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
	if w.IsRunning() {
		t.Error("IsRunning() = true after Stop()")
	}
	if err := w.Stop(); err != nil {
		t.Errorf("second Stop() error = %v", err)
	}

	w.Start()
	if w.IsRunning() {
		t.Error("stopped watcher restarted")
	}
	if err := w.Watch("x.toml"); !errors.Is(err, ErrStopped) {
		t.Errorf("Watch() after Stop = %v, expected ErrStopped", err)
	}
}

func waitForEvent(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("did not receive file change event")
		return Event{}
	}
}

func TestWatcher_DetectsWrite(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "config.toml")
	other := filepath.Join(tmpDir, "other.toml")
	if err := os.WriteFile(file, []byte("initial"), 0644); err != nil {
		t.Fatal(err)
	}

	w := newWatcher(t, WithDebounce(0))
	events := make(chan Event, 16)
	w.OnChange(func(ev Event) { events <- ev })

	if err := w.Watch(file); err != nil {
		t.Fatal(err)
	}
	w.Start()

	// Unwatched neighbours in the same directory are filtered out.
	if err := os.WriteFile(other, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(file, []byte("modified"), 0644); err != nil {
		t.Fatal(err)
	}

	ev := waitForEvent(t, events)
	if ev.Path != filepath.Clean(file) {
		t.Errorf("event.Path = %q, expected %q", ev.Path, file)
	}
	if ev.Op != OpWrite && ev.Op != OpCreate {
		t.Errorf("event.Op = %v, expected write", ev.Op)
	}
}

func TestWatcher_DetectsCreation(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "new.toml")

	w := newWatcher(t, WithDebounce(0))
	events := make(chan Event, 16)
	w.OnChange(func(ev Event) { events <- ev })

	if err := w.Watch(file); err != nil {
		t.Fatal(err)
	}
	w.Start()

	if err := os.WriteFile(file, []byte("created"), 0644); err != nil {
		t.Fatal(err)
	}

	if ev := waitForEvent(t, events); ev.Op != OpCreate {
		t.Errorf("event.Op = %v, expected create", ev.Op)
	}
}

func TestWatcher_Debounce(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(file, []byte("0"), 0644); err != nil {
		t.Fatal(err)
	}

	w := newWatcher(t, WithDebounce(50*time.Millisecond))

	var mu sync.Mutex
	var got []Event
	w.OnChange(func(ev Event) {
		mu.Lock()
		got = append(got, ev)
		mu.Unlock()
	})

	if err := w.Watch(file); err != nil {
		t.Fatal(err)
	}
	w.Start()

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(file, []byte{byte('1' + i)}, 0644); err != nil {
			t.Fatal(err)
		}
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		n := len(got)
		mu.Unlock()
		if n > 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	// Give a second burst time to show up if coalescing failed.
	time.Sleep(200 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 {
		t.Errorf("received %d events, expected the burst coalesced into 1", len(got))
	}
}

func TestQueueEvent_Coalesces(t *testing.T) {
	w := newWatcher(t)
	now := time.Now()

	w.queueEvent(Event{Path: "/a", Op: OpCreate, Time: now})
	w.queueEvent(Event{Path: "/a", Op: OpWrite, Time: now.Add(time.Millisecond)})
	if p := w.pendingFiles["/a"]; p.Op != OpCreate {
		t.Errorf("create + write = %v, expected create", p.Op)
	}

	w.queueEvent(Event{Path: "/a", Op: OpRemove, Time: now.Add(2 * time.Millisecond)})
	if p := w.pendingFiles["/a"]; p.Op != OpRemove {
		t.Errorf("create + write + remove = %v, expected remove", p.Op)
	}
}

func TestWatcher_PanickingHandler(t *testing.T) {
	w := newWatcher(t)
	called := false
	w.OnChange(func(Event) { panic("boom") })
	w.OnChange(func(Event) { called = true })

	w.emitEvent(Event{Path: "/a"})
	if !called {
		t.Error("handler after a panicking handler was not called")
	}
}
