package ui

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/ncruces/zenity"

	"portfolio/browser"
	"portfolio/imageload"
)

// showLightbox opens the modal artwork viewer at the given gallery index,
// with previous/next navigation across the whole gallery
func (mw *MainWindow) showLightbox(index int) {
	mw.portfolioMutex.RLock()
	artworks := mw.portfolio.Artworks
	mw.portfolioMutex.RUnlock()

	if index < 0 || index >= len(artworks) {
		return
	}

	current := index

	img := &canvas.Image{FillMode: canvas.ImageFillContain}
	img.SetMinSize(fyne.NewSize(720, 480))

	title := widget.NewLabel("")
	title.TextStyle = fyne.TextStyle{Bold: true}
	detail := widget.NewLabel("")
	detail.Wrapping = fyne.TextWrapWord

	update := func() {
		art := artworks[current]
		title.SetText(fmt.Sprintf("%s (%d)", art.Title, art.Year))
		detail.SetText(art.Description)

		slotID := "artwork-" + art.ID
		cd := mw.cards[slotID]
		slot := mw.images.Slot(slotID)

		switch {
		case slot != nil && slot.State() == imageload.StateLoaded && cd != nil:
			img.Image = cd.card.LoadedImage()
			img.File = ""
		case slot != nil && slot.State() == imageload.StateFailed:
			img.Image = nil
			img.File = ""
		default:
			// Opening the lightbox counts as demand: skip the viewport wait
			if slot != nil && slot.State() == imageload.StatePending {
				mw.detector.Deregister(slotID)
				mw.images.Trigger(slotID)
			}
			img.Image = nil
			img.File = ""
		}
		img.Refresh()
	}
	update()

	prevBtn := widget.NewButton("Previous", func() {
		if current > 0 {
			current--
			update()
		}
	})
	nextBtn := widget.NewButton("Next", func() {
		if current < len(artworks)-1 {
			current++
			update()
		}
	})
	saveBtn := widget.NewButton("Save a Copy", func() {
		mw.saveImageCopy(artworks[current].Title, "artwork-"+artworks[current].ID)
	})
	sourceBtn := widget.NewButton("View Original Page", func() {
		art := artworks[current]
		pageURL := art.SourcePage
		if pageURL == "" {
			pageURL = art.LegacyURL
		}
		if err := browser.OpenURL(pageURL); err != nil {
			dialog.ShowError(err, mw.window)
		}
	})

	buttons := container.NewHBox(prevBtn, nextBtn, saveBtn, sourceBtn)
	content := container.NewBorder(title, container.NewVBox(detail, buttons), nil, nil, img)

	lb := dialog.NewCustom("Artwork", "Close", content, mw.window)
	lb.Resize(fyne.NewSize(820, 640))
	lb.Show()
}

// saveImageCopy exports the committed image of a slot through the native
// save dialog
func (mw *MainWindow) saveImageCopy(name, slotID string) {
	cd := mw.cards[slotID]
	slot := mw.images.Slot(slotID)
	if cd == nil || slot == nil || slot.State() != imageload.StateLoaded {
		dialog.ShowInformation("Not Loaded", "The image has not finished loading yet.", mw.window)
		return
	}

	defaultName := fmt.Sprintf("%s.png", name)
	filename, err := zenity.SelectFileSave(
		zenity.Title("Save Image Copy"),
		zenity.Filename(filepath.Join(mw.settings.LastUsedPath, defaultName)),
		zenity.ConfirmOverwrite(),
	)
	if err != nil {
		if err != zenity.ErrCanceled {
			dialog.ShowError(err, mw.window)
		}
		return
	}
	if filename == "" {
		return
	}

	outFile, err := os.Create(filename)
	if err != nil {
		dialog.ShowError(err, mw.window)
		return
	}
	defer outFile.Close()

	if err := png.Encode(outFile, cd.card.LoadedImage()); err != nil {
		dialog.ShowError(fmt.Errorf("failed to encode image: %w", err), mw.window)
		return
	}

	mw.settings.LastUsedPath = filepath.Dir(filename)
	mw.saveSettings()
}
