package imageload

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/assets"
)

func TestRetriesThenTerminalPlaceholder(t *testing.T) {
	prober := newFakeProber("a.webp", "a.jpg")
	sink := newRecorderSink()

	cfg := testConfig() // 3 retries, 20ms base
	reg := NewRegistry(cfg, prober)
	defer reg.Close()

	slot := NewSlot("s1", "legacy", []string{"a.webp", "a.jpg"}, assets.RegionCollection, sink)
	require.NoError(t, reg.Add(slot))

	start := time.Now()
	reg.Trigger("s1")
	sink.wait(t)
	elapsed := time.Since(start)

	// Initial pass plus three retries, each walking the full list
	assert.Len(t, prober.attempts(), 8)
	assert.Equal(t, 3, slot.RetryCount())
	assert.Equal(t, StateFailed, slot.State())
	assert.Empty(t, sink.committed())

	// Delays double: base, 2*base, 4*base
	assert.GreaterOrEqual(t, elapsed, 7*cfg.BackoffBase)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	assert.Equal(t, assets.PlaceholderFor(assets.RegionCollection), sink.placeholder)
	assert.Equal(t, assets.AltUnavailable, sink.altText)
}

func TestRetrySucceedsWhenCandidateRecovers(t *testing.T) {
	prober := newFakeProber("a.webp", "a.jpg")
	sink := newRecorderSink()
	reg := NewRegistry(testConfig(), prober)
	defer reg.Close()

	slot := NewSlot("s1", "legacy", []string{"a.webp", "a.jpg"}, assets.RegionGallery, sink)
	require.NoError(t, reg.Add(slot))

	reg.Trigger("s1")

	// Let the first pass exhaust, then clear the failure before the retry fires
	time.Sleep(10 * time.Millisecond)
	prober.mu.Lock()
	delete(prober.fail, "a.jpg")
	prober.mu.Unlock()

	sink.wait(t)

	assert.Equal(t, StateLoaded, slot.State())
	assert.Equal(t, "a.jpg", slot.CommittedSource())
	assert.Equal(t, 1, slot.RetryCount())
}

func TestSlotsSharingLegacyRefFailIndependently(t *testing.T) {
	prober := newFakeProber("broken.webp", "broken.jpg")
	sinkA := newRecorderSink()
	sinkB := newRecorderSink()
	reg := NewRegistry(testConfig(), prober)
	defer reg.Close()

	slotA := NewSlot("a", "shared-ref", []string{"broken.webp", "broken.jpg"}, assets.RegionGallery, sinkA)
	slotB := NewSlot("b", "shared-ref", []string{"fine.jpg"}, assets.RegionGallery, sinkB)
	require.NoError(t, reg.Add(slotA))
	require.NoError(t, reg.Add(slotB))

	reg.Trigger("a")
	reg.Trigger("b")
	sinkA.wait(t)
	sinkB.wait(t)

	assert.Equal(t, StateFailed, slotA.State())
	assert.Equal(t, 3, slotA.RetryCount())

	assert.Equal(t, StateLoaded, slotB.State())
	assert.Equal(t, 0, slotB.RetryCount())
	assert.Equal(t, []string{"fine.jpg"}, sinkB.committed())
}

func TestCloseCancelsScheduledRetries(t *testing.T) {
	prober := newFakeProber("a.webp")

	cfg := testConfig()
	cfg.BackoffBase = 100 * time.Millisecond
	sink := newRecorderSink()
	reg := NewRegistry(cfg, prober)

	slot := NewSlot("s1", "legacy", []string{"a.webp"}, assets.RegionGallery, sink)
	require.NoError(t, reg.Add(slot))

	reg.Trigger("s1")

	// Wait for the first pass to finish and a retry to be parked
	require.Eventually(t, func() bool {
		return slot.State() == StateRetryScheduled
	}, time.Second, 5*time.Millisecond)

	reg.Close()
	attemptsAtClose := len(prober.attempts())

	time.Sleep(3 * cfg.BackoffBase)
	assert.Len(t, prober.attempts(), attemptsAtClose)
}
