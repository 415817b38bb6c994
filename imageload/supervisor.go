package imageload

import (
	"fmt"
	"log"
	"time"

	"portfolio/assets"
)

// scheduleRetry handles whole-list exhaustion: while retries remain the slot
// waits base, 2*base, 4*base before re-running the full candidate list; after
// the final retry it becomes terminal and receives its region placeholder.
// Retry accounting is per slot, so two slots sharing a broken legacy
// reference fail or recover independently.
func (r *Registry) scheduleRetry(slot *Slot) {
	attempt, ok := slot.scheduleRetry(r.cfg.MaxRetries)
	if !ok {
		r.failSlot(slot)
		return
	}

	delay := r.cfg.BackoffBase << (attempt - 1) // 1s, 2s, 4s at default base
	fmt.Printf("DEBUG: scheduling retry %d/%d for slot %s in %v\n",
		attempt, r.cfg.MaxRetries, slot.ID, delay)

	timer := time.AfterFunc(delay, func() {
		r.mu.Lock()
		delete(r.timers, slot.ID)
		closed := r.closed
		r.mu.Unlock()
		if closed {
			return
		}
		if !slot.beginLoading(StateRetryScheduled) {
			return
		}
		r.runPass(slot)
	})

	r.mu.Lock()
	if r.closed {
		timer.Stop()
	} else {
		r.timers[slot.ID] = timer
	}
	r.mu.Unlock()
}

// failSlot applies the terminal placeholder for the slot's page region
func (r *Registry) failSlot(slot *Slot) {
	if !slot.fail() {
		return
	}
	placeholder := assets.PlaceholderFor(slot.Region)
	log.Printf("image slot %s failed permanently after %d retries, using %s",
		slot.ID, slot.RetryCount(), placeholder)
	slot.sink.SetError(placeholder, assets.AltUnavailable)
}
