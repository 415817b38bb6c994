package ui

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// ShimmerMode selects the visual state of the placeholder box
type ShimmerMode int

const (
	ShimmerIdle ShimmerMode = iota
	ShimmerLoading
	ShimmerError
)

var (
	shimmerIdleColor    = color.NRGBA{R: 0xe8, G: 0xe8, B: 0xe8, A: 0xff}
	shimmerLoadingColor = color.NRGBA{R: 0xd4, G: 0xd4, B: 0xd4, A: 0xff}
	shimmerErrorColor   = color.NRGBA{R: 0xf2, G: 0xdd, B: 0xdd, A: 0xff}
)

// ShimmerBox is a custom widget shown underneath a card image: a neutral
// block before loading, a pulsing block while a load is in flight and a
// tinted block for terminal errors
type ShimmerBox struct {
	widget.BaseWidget
	mode      ShimmerMode
	bgRect    *canvas.Rectangle
	container *fyne.Container
	pulse     *fyne.Animation
}

// NewShimmerBox creates a new shimmer placeholder
func NewShimmerBox() *ShimmerBox {
	sb := &ShimmerBox{mode: ShimmerIdle}
	sb.ExtendBaseWidget(sb)
	return sb
}

// CreateRenderer implements fyne.Widget
func (sb *ShimmerBox) CreateRenderer() fyne.WidgetRenderer {
	sb.bgRect = canvas.NewRectangle(shimmerIdleColor)
	sb.container = container.NewStack(sb.bgRect)

	return &shimmerRenderer{
		box:       sb,
		container: sb.container,
		bgRect:    sb.bgRect,
	}
}

// SetMode switches the visual state and starts or stops the pulse
func (sb *ShimmerBox) SetMode(mode ShimmerMode) {
	sb.mode = mode

	if sb.pulse != nil {
		sb.pulse.Stop()
		sb.pulse = nil
	}

	if sb.bgRect == nil {
		return
	}

	switch mode {
	case ShimmerLoading:
		sb.bgRect.FillColor = shimmerLoadingColor
		sb.startPulse()
	case ShimmerError:
		sb.bgRect.FillColor = shimmerErrorColor
	default:
		sb.bgRect.FillColor = shimmerIdleColor
	}
	sb.bgRect.Refresh()
}

// Mode returns the current visual state
func (sb *ShimmerBox) Mode() ShimmerMode {
	return sb.mode
}

// startPulse runs the loading shimmer by oscillating the fill between the
// two neutral greys
func (sb *ShimmerBox) startPulse() {
	sb.pulse = fyne.NewAnimation(900*time.Millisecond, func(p float32) {
		if sb.mode != ShimmerLoading || sb.bgRect == nil {
			return
		}
		blend := func(a, b uint8) uint8 {
			return uint8(float32(a) + (float32(b)-float32(a))*p)
		}
		sb.bgRect.FillColor = color.NRGBA{
			R: blend(shimmerLoadingColor.R, shimmerIdleColor.R),
			G: blend(shimmerLoadingColor.G, shimmerIdleColor.G),
			B: blend(shimmerLoadingColor.B, shimmerIdleColor.B),
			A: 0xff,
		}
		canvas.Refresh(sb.bgRect)
	})
	sb.pulse.RepeatCount = fyne.AnimationRepeatForever
	sb.pulse.AutoReverse = true
	sb.pulse.Start()
}

// shimmerRenderer implements fyne.WidgetRenderer
type shimmerRenderer struct {
	box       *ShimmerBox
	container *fyne.Container
	bgRect    *canvas.Rectangle
}

func (r *shimmerRenderer) MinSize() fyne.Size {
	return r.container.MinSize()
}

func (r *shimmerRenderer) Layout(size fyne.Size) {
	r.container.Resize(size)
}

func (r *shimmerRenderer) Refresh() {
	r.bgRect.Refresh()
}

func (r *shimmerRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.container}
}

func (r *shimmerRenderer) Destroy() {
	if r.box.pulse != nil {
		r.box.pulse.Stop()
	}
}
