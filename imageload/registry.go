package imageload

import (
	"fmt"
	"sync"
	"time"
)

// Config holds the tuning knobs for the loading subsystem
type Config struct {
	MaxRetries      int           // whole-list retries before giving up
	BackoffBase     time.Duration // first retry delay; doubles per attempt
	ProximityMargin int           // pixels outside the viewport that still trigger loading
	VisibleFraction float64       // minimal visible share of a slot's area
}

// DefaultConfig returns the production settings: 3 retries at 1s/2s/4s, a
// 100px pre-trigger margin and a 1% visibility threshold.
func DefaultConfig() Config {
	return Config{
		MaxRetries:      3,
		BackoffBase:     1 * time.Second,
		ProximityMargin: 100,
		VisibleFraction: 0.01,
	}
}

// Registry owns every image slot of one page session. It is constructed at
// session start, injected where needed, and torn down with Close; there is
// no package-level shared state.
type Registry struct {
	cfg   Config
	probe Prober

	mu     sync.Mutex
	slots  map[string]*Slot
	timers map[string]*time.Timer
	closed bool
}

// NewRegistry creates an empty registry using the given prober
func NewRegistry(cfg Config, probe Prober) *Registry {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = time.Second
	}
	return &Registry{
		cfg:    cfg,
		probe:  probe,
		slots:  make(map[string]*Slot),
		timers: make(map[string]*time.Timer),
	}
}

// Add registers a slot with the session
func (r *Registry) Add(slot *Slot) error {
	if len(slot.Candidates) == 0 {
		return fmt.Errorf("slot %s has an empty candidate list", slot.ID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return fmt.Errorf("registry is closed")
	}
	if _, ok := r.slots[slot.ID]; ok {
		return fmt.Errorf("slot %s is already registered", slot.ID)
	}
	r.slots[slot.ID] = slot
	return nil
}

// Slot returns a registered slot by ID
func (r *Registry) Slot(id string) *Slot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.slots[id]
}

// Trigger begins loading a pending slot. The loading visual is applied
// immediately; the candidate pass runs in the background. Triggering a slot
// that has already left the pending state is a no-op.
func (r *Registry) Trigger(id string) {
	r.mu.Lock()
	slot := r.slots[id]
	closed := r.closed
	r.mu.Unlock()

	if slot == nil || closed {
		return
	}
	if !slot.beginLoading(StatePending) {
		return
	}
	slot.sink.SetLoading()
	go r.runPass(slot)
}

// Wait for in-flight passes is not offered: a slot whose owner disappears
// simply completes inertly, matching the page behavior this replaces.

// Close stops all pending retry timers and rejects further work
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	for id, t := range r.timers {
		t.Stop()
		delete(r.timers, id)
	}
}
