package imageload

import (
	"image"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type triggerRecorder struct {
	mu  sync.Mutex
	ids []string
}

func (r *triggerRecorder) record(id string) {
	r.mu.Lock()
	r.ids = append(r.ids, id)
	r.mu.Unlock()
}

func (r *triggerRecorder) fired() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ids...)
}

func detectorConfig() Config {
	return Config{ProximityMargin: 100, VisibleFraction: 0.01}
}

func TestSlotFarBelowViewportNotTriggered(t *testing.T) {
	rec := &triggerRecorder{}
	det := NewDetector(detectorConfig(), rec.record)

	det.SetViewport(image.Rect(0, 0, 500, 500))
	det.Register("below", image.Rect(0, 700, 100, 800))

	assert.Empty(t, rec.fired())
	assert.True(t, det.Observing("below"))
}

func TestSlotWithinMarginTriggeredBeforeFullyVisible(t *testing.T) {
	rec := &triggerRecorder{}
	det := NewDetector(detectorConfig(), rec.record)

	det.SetViewport(image.Rect(0, 0, 500, 500))

	// Bottom edge of the viewport is y=500; the 100px margin reaches to 600
	det.Register("near", image.Rect(0, 550, 100, 650))

	assert.Equal(t, []string{"near"}, rec.fired())
	assert.False(t, det.Observing("near"))
}

func TestScrollBringsSlotIntoRange(t *testing.T) {
	rec := &triggerRecorder{}
	det := NewDetector(detectorConfig(), rec.record)

	det.SetViewport(image.Rect(0, 0, 500, 500))
	det.Register("deep", image.Rect(0, 1200, 100, 1300))
	assert.Empty(t, rec.fired())

	det.SetViewport(image.Rect(0, 300, 500, 800))
	assert.Empty(t, rec.fired())

	det.SetViewport(image.Rect(0, 700, 500, 1200))
	assert.Equal(t, []string{"deep"}, rec.fired())
}

func TestFireOnceSemantics(t *testing.T) {
	rec := &triggerRecorder{}
	det := NewDetector(detectorConfig(), rec.record)

	det.SetViewport(image.Rect(0, 0, 500, 500))
	det.Register("once", image.Rect(0, 100, 100, 200))
	assert.Equal(t, []string{"once"}, rec.fired())

	// Scrolling away and back must not re-fire
	det.SetViewport(image.Rect(0, 2000, 500, 2500))
	det.SetViewport(image.Rect(0, 0, 500, 500))
	assert.Equal(t, []string{"once"}, rec.fired())
}

func TestLateRegistrationInsideViewportFiresImmediately(t *testing.T) {
	rec := &triggerRecorder{}
	det := NewDetector(detectorConfig(), rec.record)

	det.SetViewport(image.Rect(0, 0, 500, 500))

	// A card added at runtime, already on screen
	det.Register("late", image.Rect(50, 50, 250, 250))
	assert.Equal(t, []string{"late"}, rec.fired())
}

func TestZeroAreaBoundsNeverFire(t *testing.T) {
	rec := &triggerRecorder{}
	det := NewDetector(detectorConfig(), rec.record)

	det.SetViewport(image.Rect(0, 0, 500, 500))
	det.Register("flat", image.Rect(10, 10, 10, 10))

	assert.Empty(t, rec.fired())
	assert.True(t, det.Observing("flat"))
}

func TestDeregisterStopsObservation(t *testing.T) {
	rec := &triggerRecorder{}
	det := NewDetector(detectorConfig(), rec.record)

	det.Register("gone", image.Rect(0, 900, 100, 1000))
	det.Deregister("gone")
	det.SetViewport(image.Rect(0, 800, 500, 1300))

	assert.Empty(t, rec.fired())
	assert.False(t, det.Observing("gone"))
}

func TestVisibleFractionThreshold(t *testing.T) {
	rec := &triggerRecorder{}

	// No margin and a 50% threshold to make the fraction math observable
	det := NewDetector(Config{ProximityMargin: 0, VisibleFraction: 0.5}, rec.record)
	det.SetViewport(image.Rect(0, 0, 500, 500))

	// 100x100 slot with only 20px of height inside the viewport: 20% visible
	det.Register("sliver", image.Rect(0, 480, 100, 580))
	assert.Empty(t, rec.fired())

	// 100x100 slot with 80px inside: 80% visible
	det.Register("mostly", image.Rect(0, 420, 100, 520))
	assert.Equal(t, []string{"mostly"}, rec.fired())
}
