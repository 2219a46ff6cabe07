package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/charle01ch/gerador-5-app/internal/db"
	"github.com/charle01ch/gerador-5-app/internal/state"
)

// fakeGenerator returns a canned document or error.
type fakeGenerator struct {
	mu    sync.Mutex
	calls int
	html  string
	err   error
	block chan struct{} // when set, Generate waits until closed
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.calls++
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	if f.err != nil {
		return "", f.err
	}
	return f.html, nil
}

func (f *fakeGenerator) Model() string { return "fake-model" }

func (f *fakeGenerator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeScheduler records scheduled writes immediately.
type fakeScheduler struct {
	mu     sync.Mutex
	writes map[string]string
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{writes: make(map[string]string)}
}

func (f *fakeScheduler) Set(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes[key] = value
}

func (f *fakeScheduler) get(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes[key]
}

const helloDoc = "<html><head></head><body><button>Hello</button></body></html>"

func TestSubmitSuccess(t *testing.T) {
	gen := &fakeGenerator{html: helloDoc}
	ctrl := New(gen, newFakeScheduler(), nil)

	html, err := ctrl.Submit(context.Background(), "A button that says Hello")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if html != helloDoc {
		t.Errorf("Submit returned %q", html)
	}

	snap := ctrl.Snapshot()
	if snap.HTML != helloDoc {
		t.Errorf("html = %q", snap.HTML)
	}
	if snap.Tab != TabCode {
		t.Errorf("tab = %q, want code", snap.Tab)
	}
	if snap.Status != StatusIdle {
		t.Errorf("status = %q, want idle", snap.Status)
	}
	if snap.Error != "" {
		t.Errorf("unexpected error message %q", snap.Error)
	}
	if snap.CSS != "" {
		t.Errorf("css should be cleared, got %q", snap.CSS)
	}
}

func TestSubmitEmptyPrompt(t *testing.T) {
	gen := &fakeGenerator{html: helloDoc}
	ctrl := New(gen, newFakeScheduler(), nil)

	for _, prompt := range []string{"", "   ", "\n\t"} {
		_, err := ctrl.Submit(context.Background(), prompt)
		if !errors.Is(err, ErrEmptyPrompt) {
			t.Errorf("Submit(%q) = %v, want ErrEmptyPrompt", prompt, err)
		}
	}

	if gen.callCount() != 0 {
		t.Errorf("validation error must not reach the generator, got %d calls", gen.callCount())
	}

	snap := ctrl.Snapshot()
	if snap.Error == "" {
		t.Error("expected inline validation message")
	}
}

func TestSubmitFailureSettlesIdle(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("upstream down")}
	ctrl := New(gen, newFakeScheduler(), nil)

	_, err := ctrl.Submit(context.Background(), "anything")
	if err == nil {
		t.Fatal("expected error")
	}

	snap := ctrl.Snapshot()
	if snap.Status != StatusIdle {
		t.Errorf("status = %q, busy flag must settle on failure", snap.Status)
	}
	if snap.HTML != "" {
		t.Errorf("html should stay empty on failure, got %q", snap.HTML)
	}
	if snap.Error != msgGenerationFailed {
		t.Errorf("error message = %q", snap.Error)
	}

	// Retry works immediately.
	gen.err = nil
	gen.html = helloDoc
	if _, err := ctrl.Submit(context.Background(), "again"); err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
}

func TestSubmitClearsPreviousDocument(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("boom")}
	ctrl := New(gen, newFakeScheduler(), nil)
	ctrl.EditHTML(helloDoc)
	ctrl.EditCSS("button{color:red}")

	ctrl.Submit(context.Background(), "new idea")

	snap := ctrl.Snapshot()
	if snap.HTML != "" || snap.CSS != "" {
		t.Errorf("submit must clear both texts, got html=%q css=%q", snap.HTML, snap.CSS)
	}
}

func TestSubmitBusyExclusion(t *testing.T) {
	gen := &fakeGenerator{html: helloDoc, block: make(chan struct{})}
	ctrl := New(gen, newFakeScheduler(), nil)

	done := make(chan error, 1)
	go func() {
		_, err := ctrl.Submit(context.Background(), "first")
		done <- err
	}()

	// Wait until the first submit has claimed the busy flag.
	deadline := time.After(2 * time.Second)
	for ctrl.Snapshot().Status != StatusGenerating {
		select {
		case <-deadline:
			t.Fatal("first submit never started generating")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	_, err := ctrl.Submit(context.Background(), "second")
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("second submit = %v, want ErrBusy", err)
	}

	close(gen.block)
	if err := <-done; err != nil {
		t.Fatalf("first submit: %v", err)
	}

	if gen.callCount() != 1 {
		t.Errorf("expected exactly 1 outbound call, got %d", gen.callCount())
	}

	// Once settled, a new submit is accepted again.
	gen.mu.Lock()
	gen.block = nil
	gen.mu.Unlock()
	if _, err := ctrl.Submit(context.Background(), "third"); err != nil {
		t.Fatalf("submit after settle: %v", err)
	}
}

func TestEditsScheduleDebouncedWrites(t *testing.T) {
	sched := newFakeScheduler()
	ctrl := New(&fakeGenerator{html: helloDoc}, sched, nil)

	ctrl.EditHTML("<p>edited</p>")
	ctrl.EditCSS("p{color:red}")

	if got := sched.get(state.KeyHTML); got != "<p>edited</p>" {
		t.Errorf("html write = %q", got)
	}
	if got := sched.get(state.KeyCSS); got != "p{color:red}" {
		t.Errorf("css write = %q", got)
	}
}

func TestEmptyEditNotPersisted(t *testing.T) {
	sched := newFakeScheduler()
	ctrl := New(&fakeGenerator{}, sched, nil)

	ctrl.EditHTML(helloDoc)
	ctrl.EditHTML("")

	// The cleared value keeps the previous stored value.
	if got := sched.get(state.KeyHTML); got != helloDoc {
		t.Errorf("stored html = %q, want previous value retained", got)
	}
}

func TestTabGuard(t *testing.T) {
	ctrl := New(&fakeGenerator{}, newFakeScheduler(), nil)

	if err := ctrl.SetTab(TabCode); !errors.Is(err, ErrTabLocked) {
		t.Errorf("SetTab(code) with empty document = %v, want ErrTabLocked", err)
	}
	if err := ctrl.SetTab(TabStyle); !errors.Is(err, ErrTabLocked) {
		t.Errorf("SetTab(style) with empty document = %v, want ErrTabLocked", err)
	}
	if err := ctrl.SetTab(TabPrompt); err != nil {
		t.Errorf("SetTab(prompt) = %v", err)
	}
	if err := ctrl.SetTab("bogus"); err == nil {
		t.Error("expected error for unknown tab")
	}

	ctrl.EditHTML(helloDoc)
	if err := ctrl.SetTab(TabStyle); err != nil {
		t.Errorf("SetTab(style) with document = %v", err)
	}
	if ctrl.Snapshot().Tab != TabStyle {
		t.Errorf("tab = %q, want style", ctrl.Snapshot().Tab)
	}
}

func TestComposeUsesCurrentState(t *testing.T) {
	ctrl := New(&fakeGenerator{}, newFakeScheduler(), nil)
	ctrl.EditHTML(helloDoc)
	ctrl.EditCSS("button{color:red}")

	got := ctrl.Compose()
	want := "<html><head><style>button{color:red}</style></head><body><button>Hello</button></body></html>"
	if got != want {
		t.Errorf("Compose() = %q, want %q", got, want)
	}
}

func TestComposeEmptyDocument(t *testing.T) {
	ctrl := New(&fakeGenerator{}, newFakeScheduler(), nil)
	ctrl.EditCSS("button{color:red}")

	if got := ctrl.Compose(); got != "" {
		t.Errorf("Compose() with empty html = %q, want empty", got)
	}
}

func TestExportGuards(t *testing.T) {
	gen := &fakeGenerator{html: helloDoc, block: make(chan struct{})}
	ctrl := New(gen, newFakeScheduler(), nil)

	if _, err := ctrl.Export(); !errors.Is(err, ErrNotReady) {
		t.Errorf("Export with empty document = %v, want ErrNotReady", err)
	}

	done := make(chan struct{})
	go func() {
		ctrl.Submit(context.Background(), "something")
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for ctrl.Snapshot().Status != StatusGenerating {
		select {
		case <-deadline:
			t.Fatal("submit never started generating")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	if _, err := ctrl.Export(); !errors.Is(err, ErrNotReady) {
		t.Errorf("Export while generating = %v, want ErrNotReady", err)
	}

	close(gen.block)
	<-done

	doc, err := ctrl.Export()
	if err != nil {
		t.Fatalf("Export after settle: %v", err)
	}
	if doc != helloDoc {
		t.Errorf("Export = %q", doc)
	}
}

func TestRestoreFromStore(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer database.Close()

	store := state.NewStore(database)
	if err := store.Save(state.KeyHTML, helloDoc); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(state.KeyCSS, "button{color:red}"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	ctrl := New(&fakeGenerator{}, newFakeScheduler(), nil)
	ctrl.Restore(store)

	snap := ctrl.Snapshot()
	if snap.HTML != helloDoc {
		t.Errorf("restored html = %q", snap.HTML)
	}
	if snap.CSS != "button{color:red}" {
		t.Errorf("restored css = %q", snap.CSS)
	}
	if snap.Tab != TabCode {
		t.Errorf("tab after restore = %q, want code", snap.Tab)
	}
}

func TestRestoreEmptyStore(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer database.Close()

	ctrl := New(&fakeGenerator{}, newFakeScheduler(), nil)
	ctrl.Restore(state.NewStore(database))

	snap := ctrl.Snapshot()
	if snap.HTML != "" || snap.CSS != "" {
		t.Errorf("expected empty defaults, got html=%q css=%q", snap.HTML, snap.CSS)
	}
	if snap.Tab != TabPrompt {
		t.Errorf("tab = %q, want prompt", snap.Tab)
	}
}

func TestOnChangeNotifications(t *testing.T) {
	ctrl := New(&fakeGenerator{html: helloDoc}, newFakeScheduler(), nil)

	var mu sync.Mutex
	count := 0
	ctrl.OnChange(func() {
		mu.Lock()
		count++
		mu.Unlock()
	})

	ctrl.EditHTML("<p>x</p>")
	ctrl.EditCSS("p{}")
	ctrl.Submit(context.Background(), "prompt")

	mu.Lock()
	defer mu.Unlock()
	// Two edits plus at least the start and settle of the submit.
	if count < 4 {
		t.Errorf("expected at least 4 notifications, got %d", count)
	}
}
