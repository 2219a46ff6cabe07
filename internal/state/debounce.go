package state

import (
	"log"
	"sync"
	"time"
)

// DebounceWindow is the quiet period after which a pending write commits.
const DebounceWindow = 500 * time.Millisecond

// persister is the write side of the Store, narrowed for testability.
type persister interface {
	Save(key, value string) error
}

type entry struct {
	value string
	timer *time.Timer
}

// Debouncer coalesces a burst of writes per key into a single physical write
// of the most recent value once the quiet period elapses. A new write to a
// key cancels and reschedules its still-pending predecessor, so a stale value
// is never committed after a fresher one. Write failures are logged and
// swallowed; persistence never blocks or breaks editing.
type Debouncer struct {
	mu      sync.Mutex
	store   persister
	window  time.Duration
	entries map[string]*entry
}

// NewDebouncer creates a Debouncer over the given store. A non-positive
// window falls back to DebounceWindow.
func NewDebouncer(store persister, window time.Duration) *Debouncer {
	if window <= 0 {
		window = DebounceWindow
	}
	return &Debouncer{
		store:   store,
		window:  window,
		entries: make(map[string]*entry),
	}
}

// Set schedules value to be written under key after the quiet period. Any
// write still pending for the same key is replaced.
func (d *Debouncer) Set(key, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if prev, ok := d.entries[key]; ok {
		prev.timer.Stop()
	}

	e := &entry{value: value}
	e.timer = time.AfterFunc(d.window, func() { d.commit(key, e) })
	d.entries[key] = e
}

// commit performs the physical write for e, unless a newer write for the same
// key has replaced it in the meantime.
func (d *Debouncer) commit(key string, e *entry) {
	d.mu.Lock()
	cur, ok := d.entries[key]
	if !ok || cur != e {
		d.mu.Unlock()
		return
	}
	delete(d.entries, key)
	d.mu.Unlock()

	if err := d.store.Save(key, e.value); err != nil {
		log.Printf("state: persisting %s: %v", key, err)
	}
}

// Flush commits every pending write immediately.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	pending := make(map[string]string, len(d.entries))
	for key, e := range d.entries {
		e.timer.Stop()
		pending[key] = e.value
		delete(d.entries, key)
	}
	d.mu.Unlock()

	for key, value := range pending {
		if err := d.store.Save(key, value); err != nil {
			log.Printf("state: persisting %s: %v", key, err)
		}
	}
}

// Close flushes pending writes. The Debouncer must not be used afterward.
func (d *Debouncer) Close() {
	d.Flush()
}
