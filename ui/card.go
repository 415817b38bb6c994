package ui

import (
	"image"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"portfolio/imageload"
)

// artCard is a tappable card with a progressively loaded image above a
// caption. It is the Sink its image slot reports into.
type artCard struct {
	widget.BaseWidget
	image    *canvas.Image
	shimmer  *ShimmerBox
	caption  *widget.Label
	subtitle *widget.Label
	imgSize  fyne.Size
	onTapped func()
}

var _ imageload.Sink = (*artCard)(nil)

// newArtCard creates a card; the image area starts as an idle shimmer block
func newArtCard(title, subtitle string, imgSize fyne.Size, onTapped func()) *artCard {
	c := &artCard{
		imgSize:  imgSize,
		onTapped: onTapped,
	}

	c.image = &canvas.Image{FillMode: canvas.ImageFillContain}
	c.image.SetMinSize(imgSize)

	c.shimmer = NewShimmerBox()

	c.caption = widget.NewLabel(title)
	c.caption.TextStyle = fyne.TextStyle{Bold: true}
	c.caption.Truncation = fyne.TextTruncateEllipsis

	c.subtitle = widget.NewLabel(subtitle)
	c.subtitle.Truncation = fyne.TextTruncateEllipsis

	c.ExtendBaseWidget(c)
	return c
}

// CreateRenderer implements fyne.Widget
func (c *artCard) CreateRenderer() fyne.WidgetRenderer {
	imageStack := container.NewStack(c.shimmer, c.image)
	box := container.NewBorder(nil, container.NewVBox(c.caption, c.subtitle), nil, nil, imageStack)
	return widget.NewSimpleRenderer(box)
}

// Tapped implements fyne.Tappable
func (c *artCard) Tapped(_ *fyne.PointEvent) {
	if c.onTapped != nil {
		c.onTapped()
	}
}

// SetLoading implements imageload.Sink: the shimmer starts before any
// network activity happens
func (c *artCard) SetLoading() {
	c.shimmer.SetMode(ShimmerLoading)
}

// Commit implements imageload.Sink: the winning candidate fades in over the
// shimmer, which then goes idle
func (c *artCard) Commit(source string, img image.Image) {
	c.image.Image = img
	c.image.File = ""
	c.image.Translucency = 1
	c.image.Refresh()

	fade := fyne.NewAnimation(300*time.Millisecond, func(p float32) {
		c.image.Translucency = float64(1 - p)
		canvas.Refresh(c.image)
	})
	fade.Start()

	c.shimmer.SetMode(ShimmerIdle)
}

// SetError implements imageload.Sink: the terminal placeholder graphic is
// shown with the error tint, and the alt text replaces the subtitle
func (c *artCard) SetError(placeholder, altText string) {
	c.image.Image = nil
	c.image.File = placeholder
	c.image.Translucency = 0
	c.image.Refresh()

	c.shimmer.SetMode(ShimmerError)
	c.subtitle.SetText(altText)
}

// LoadedImage returns the committed image, or nil before a commit
func (c *artCard) LoadedImage() image.Image {
	return c.image.Image
}
