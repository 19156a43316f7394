package timeline

import (
	"sync"
	"time"
)

// DefaultDebounceInterval is how long after the last content change an
// AUTO capture attempt fires.
const DefaultDebounceInterval = time.Second

// Debouncer is a single-slot pending timer. Trigger cancels and replaces
// any pending run, so only the most recent function fires, after the
// configured quiet period. This sits between keystroke events and the
// policy engine's AUTO gate.
type Debouncer struct {
	mu      sync.Mutex
	d       time.Duration
	timer   *time.Timer
	pending func()
}

// NewDebouncer creates a Debouncer. A non-positive interval selects the
// default.
func NewDebouncer(d time.Duration) *Debouncer {
	if d <= 0 {
		d = DefaultDebounceInterval
	}
	return &Debouncer{d: d}
}

// Trigger schedules fn to run after the quiet period, cancelling any
// previously scheduled function.
func (db *Debouncer) Trigger(fn func()) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.timer != nil {
		db.timer.Stop()
	}
	db.pending = fn
	db.timer = time.AfterFunc(db.d, func() {
		db.mu.Lock()
		run := db.pending
		db.pending = nil
		db.timer = nil
		db.mu.Unlock()
		if run != nil {
			run()
		}
	})
}

// Flush runs the pending function immediately, if any.
func (db *Debouncer) Flush() {
	db.mu.Lock()
	run := db.pending
	db.pending = nil
	if db.timer != nil {
		db.timer.Stop()
		db.timer = nil
	}
	db.mu.Unlock()
	if run != nil {
		run()
	}
}

// Stop cancels the pending function, if any.
func (db *Debouncer) Stop() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.pending = nil
	if db.timer != nil {
		db.timer.Stop()
		db.timer = nil
	}
}
