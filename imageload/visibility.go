package imageload

import (
	"image"
	"sync"
)

// TriggerFunc is invoked once per slot when it approaches the viewport
type TriggerFunc func(slotID string)

// Detector implements lazy loading: a slot is only triggered when its bounds
// come within the proximity margin of the viewport. Registration is explicit,
// so components that insert cards at runtime call Register instead of relying
// on page-wide observation; late registrations are evaluated against the
// current viewport immediately.
type Detector struct {
	margin     int
	minVisible float64
	trigger    TriggerFunc

	mu       sync.Mutex
	viewport image.Rectangle
	pending  map[string]image.Rectangle
}

// NewDetector creates a detector that calls trigger with fire-once semantics
func NewDetector(cfg Config, trigger TriggerFunc) *Detector {
	margin := cfg.ProximityMargin
	if margin < 0 {
		margin = 0
	}
	minVisible := cfg.VisibleFraction
	if minVisible <= 0 {
		minVisible = 0.01
	}
	return &Detector{
		margin:     margin,
		minVisible: minVisible,
		trigger:    trigger,
		pending:    make(map[string]image.Rectangle),
	}
}

// Register starts observing a slot at the given page-coordinate bounds.
// If the slot is already within range of the current viewport it fires
// right away.
func (d *Detector) Register(slotID string, bounds image.Rectangle) {
	d.mu.Lock()
	d.pending[slotID] = bounds
	fired := d.collectLocked()
	d.mu.Unlock()
	d.fire(fired)
}

// Deregister stops observing a slot that never fired (e.g. its card was
// removed before scrolling into view)
func (d *Detector) Deregister(slotID string) {
	d.mu.Lock()
	delete(d.pending, slotID)
	d.mu.Unlock()
}

// SetViewport updates the visible page rectangle, typically from scroll and
// resize events, and fires any slot that is now in range.
func (d *Detector) SetViewport(viewport image.Rectangle) {
	d.mu.Lock()
	d.viewport = viewport
	fired := d.collectLocked()
	d.mu.Unlock()
	d.fire(fired)
}

// Observing reports whether a slot is still pending observation
func (d *Detector) Observing(slotID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.pending[slotID]
	return ok
}

// collectLocked removes and returns every pending slot in range of the
// current viewport. Removal before firing gives fire-once semantics: a slot
// that scrolls out and back in is not triggered again.
func (d *Detector) collectLocked() []string {
	if d.viewport.Empty() {
		return nil
	}
	expanded := d.viewport.Inset(-d.margin)

	var fired []string
	for id, bounds := range d.pending {
		area := bounds.Dx() * bounds.Dy()
		if area <= 0 {
			continue
		}
		visible := bounds.Intersect(expanded)
		frac := float64(visible.Dx()*visible.Dy()) / float64(area)
		if frac >= d.minVisible {
			fired = append(fired, id)
			delete(d.pending, id)
		}
	}
	return fired
}

func (d *Detector) fire(ids []string) {
	for _, id := range ids {
		d.trigger(id)
	}
}
