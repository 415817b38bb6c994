// Package imageload implements progressive image loading for the portfolio
// viewer: each image slot carries an ordered list of candidate sources that
// are probed off-screen until one decodes, with bounded exponential-backoff
// retries before a terminal placeholder is shown.
package imageload

import (
	"image"
	"sync"

	"portfolio/assets"
)

// State is the lifecycle state of an image slot
type State int

const (
	StatePending State = iota
	StateLoading
	StateLoaded
	StateRetryScheduled
	StateFailed
)

// String returns the state name used in logs
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateRetryScheduled:
		return "retry-scheduled"
	case StateFailed:
		return "error-terminal"
	default:
		return "unknown"
	}
}

// Sink receives the visual side effects of a slot's lifecycle. The UI layer
// implements it on the widget owning the image; tests implement it with a
// recorder. Sink methods are called off the slot's lock and may arrive from
// a background goroutine.
type Sink interface {
	// SetLoading is called once when loading begins, before any network
	// activity, so a shimmer placeholder shows with no added latency.
	SetLoading()
	// Commit delivers the single winning candidate. Implementations apply
	// the fade-in transition and clear the loading visual.
	Commit(source string, img image.Image)
	// SetError delivers the terminal placeholder after all retries are
	// exhausted.
	SetError(placeholder, altText string)
}

// Slot is one image placement on the page. Candidates are attempted strictly
// in order; state transitions are monotonic except for the bounded
// retry-scheduled -> loading loop.
type Slot struct {
	ID         string
	LegacyRef  string
	Candidates []string
	Region     assets.Region

	sink Sink

	mu        sync.Mutex
	state     State
	retries   int
	committed string
}

// NewSlot creates a pending slot. The candidate list must be non-empty;
// single-entry lists are handled the same as full triples.
func NewSlot(id, legacyRef string, candidates []string, region assets.Region, sink Sink) *Slot {
	return &Slot{
		ID:         id,
		LegacyRef:  legacyRef,
		Candidates: candidates,
		Region:     region,
		sink:       sink,
		state:      StatePending,
	}
}

// State returns the current lifecycle state
func (s *Slot) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// RetryCount returns how many whole-list retries have been scheduled
func (s *Slot) RetryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.retries
}

// CommittedSource returns the source committed on success, or "" before then
func (s *Slot) CommittedSource() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.committed
}

// beginLoading moves the slot into StateLoading if it currently sits in the
// given state. Repeated triggers on a loading or terminal slot are no-ops.
func (s *Slot) beginLoading(from State) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != from {
		return false
	}
	s.state = StateLoading
	return true
}

// commit records the winning candidate. Only the first commit wins.
func (s *Slot) commit(source string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateLoading {
		return false
	}
	s.state = StateLoaded
	s.committed = source
	return true
}

// scheduleRetry bumps the retry counter if any attempts remain and moves the
// slot to StateRetryScheduled. It returns the new attempt number (1-based).
func (s *Slot) scheduleRetry(maxRetries int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateLoading || s.retries >= maxRetries {
		return s.retries, false
	}
	s.retries++
	s.state = StateRetryScheduled
	return s.retries, true
}

// fail moves an exhausted slot to its terminal error state
func (s *Slot) fail() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateLoading {
		return false
	}
	s.state = StateFailed
	return true
}
