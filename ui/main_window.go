package ui

import (
	"fmt"
	"image"
	"os"
	"strconv"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"portfolio/assets"
	"portfolio/browser"
	"portfolio/contact"
	"portfolio/fetch"
	"portfolio/imageload"
	"portfolio/models"
	"portfolio/monitor"
	"portfolio/storage"
)

// cardDisplay ties a card to the section container it lives in, so its
// bounds can be expressed in page (scroll content) coordinates
type cardDisplay struct {
	card   *artCard
	parent fyne.CanvasObject
}

// bounds returns the card's rectangle in content coordinates. Before the
// first layout the size is empty and the detector ignores it.
func (cd *cardDisplay) bounds() image.Rectangle {
	pos := cd.card.Position()
	parent := cd.parent.Position()
	size := cd.card.Size()
	x := int(pos.X + parent.X)
	y := int(pos.Y + parent.Y)
	return image.Rect(x, y, x+int(size.Width), y+int(size.Height))
}

// MainWindow represents the main application window
type MainWindow struct {
	app           fyne.App
	window        fyne.Window
	store         *storage.Manager
	fetcher       *fetch.Manager
	sourceMonitor *monitor.SourceMonitor
	contactMgr    *contact.Manager

	images   *imageload.Registry
	detector *imageload.Detector

	portfolio      *models.Portfolio
	portfolioMutex sync.RWMutex
	settings       *models.Settings

	scroll        *container.Scroll
	content       *fyne.Container
	galleryGrid   *fyne.Container
	collectionRow *fyne.Container
	aboutBox      *fyne.Container
	cards         map[string]*cardDisplay

	refreshTimer *time.Timer
}

// NewMainWindow creates a new main window
func NewMainWindow() *MainWindow {
	myApp := app.New()
	myApp.SetIcon(theme.ColorPaletteIcon())

	window := myApp.NewWindow("Portfolio")
	window.Resize(fyne.NewSize(1000, 760))

	store := storage.NewManager()

	mw := &MainWindow{
		app:           myApp,
		window:        window,
		store:         store,
		fetcher:       fetch.NewManager(),
		sourceMonitor: monitor.NewSourceMonitor(),
		contactMgr:    contact.NewManager(store),
		images:        imageload.NewRegistry(imageload.DefaultConfig(), imageload.NewProbe()),
		cards:         make(map[string]*cardDisplay),
	}
	mw.detector = imageload.NewDetector(imageload.DefaultConfig(), mw.images.Trigger)

	mw.loadData()
	mw.setupUI()
	mw.startMonitorTimer()

	window.SetOnClosed(func() {
		// Teardown for the page session: pending retries die with it
		mw.images.Close()
		if mw.refreshTimer != nil {
			mw.refreshTimer.Stop()
		}
	})

	return mw
}

// ShowAndRun shows the window and runs the application
func (mw *MainWindow) ShowAndRun() {
	// The first visibility pass runs once the initial layout has settled
	time.AfterFunc(300*time.Millisecond, mw.updateViewport)
	mw.window.ShowAndRun()
}

// loadData loads portfolio content and settings from storage
func (mw *MainWindow) loadData() {
	var err error

	mw.portfolio, err = mw.store.LoadPortfolio()
	if err != nil {
		dialog.ShowError(err, mw.window)
		mw.portfolio = models.DefaultPortfolio()
	}

	mw.settings, err = mw.store.LoadSettings()
	if err != nil {
		dialog.ShowError(err, mw.window)
		mw.settings = models.DefaultSettings()
	}
}

// setupUI sets up the user interface
func (mw *MainWindow) setupUI() {
	toolbar := mw.createToolbar()

	header := mw.buildHeader()
	galleryLabel := sectionLabel("Gallery")
	mw.galleryGrid = mw.buildGallery()
	collectionsLabel := sectionLabel("Collections")
	mw.collectionRow = mw.buildCollections()
	aboutLabel := sectionLabel("About")
	mw.aboutBox = mw.buildAbout()
	contactBox := mw.buildContactSection()

	mw.content = container.NewVBox(
		header,
		galleryLabel,
		mw.galleryGrid,
		collectionsLabel,
		mw.collectionRow,
		aboutLabel,
		mw.aboutBox,
		contactBox,
	)

	mw.scroll = container.NewVScroll(mw.content)
	mw.scroll.OnScrolled = func(_ fyne.Position) {
		mw.updateViewport()
	}

	mw.window.SetContent(container.NewBorder(toolbar, nil, nil, nil, mw.scroll))
}

func sectionLabel(text string) *widget.Label {
	label := widget.NewLabel(text)
	label.TextStyle = fyne.TextStyle{Bold: true}
	return label
}

// buildHeader creates the artist name / tagline banner
func (mw *MainWindow) buildHeader() *fyne.Container {
	name := widget.NewLabel(mw.portfolio.Artist)
	name.TextStyle = fyne.TextStyle{Bold: true}
	tagline := widget.NewLabel(mw.portfolio.Tagline)
	return container.NewVBox(name, tagline)
}

// buildGallery creates the artwork grid and registers an image slot per card
func (mw *MainWindow) buildGallery() *fyne.Container {
	cols := mw.settings.GalleryColumns
	if cols < 1 {
		cols = 3
	}
	grid := container.NewGridWithColumns(cols)

	mw.portfolioMutex.RLock()
	artworks := mw.portfolio.Artworks
	mw.portfolioMutex.RUnlock()

	for i, art := range artworks {
		index := i
		subtitle := art.Medium
		if art.Year > 0 {
			subtitle = fmt.Sprintf("%s, %d", art.Medium, art.Year)
		}
		card := newArtCard(art.Title, subtitle, fyne.NewSize(280, 200), func() {
			mw.showLightbox(index)
		})
		grid.Add(card)

		mw.registerSlot("artwork-"+art.ID, art, assets.RegionGallery, card, grid)
	}
	return grid
}

// buildCollections creates the collection card row
func (mw *MainWindow) buildCollections() *fyne.Container {
	row := container.NewGridWithColumns(2)

	mw.portfolioMutex.RLock()
	collections := mw.portfolio.Collections
	mw.portfolioMutex.RUnlock()

	for _, col := range collections {
		mw.addCollectionCard(row, col)
	}
	return row
}

// addCollectionCard appends one collection card to the row. It also serves
// collections added at runtime: the new slot is registered explicitly with
// the detector, no page-wide rescan needed.
func (mw *MainWindow) addCollectionCard(row *fyne.Container, col *models.Collection) {
	subtitle := fmt.Sprintf("%d pieces", col.Pieces())
	colID := col.ID
	card := newArtCard(col.Name, subtitle, fyne.NewSize(420, 180), func() {
		mw.showCollection(colID)
	})
	row.Add(card)

	slotID := "collection-" + col.ID
	cover := models.NewArtwork(col.Name, col.CoverURL)
	mw.registerSlot(slotID, cover, assets.RegionCollection, card, row)
}

// buildAbout creates the avatar + bio section
func (mw *MainWindow) buildAbout() *fyne.Container {
	card := newArtCard(mw.portfolio.Artist, "", fyne.NewSize(180, 180), nil)

	avatar := models.NewArtwork(mw.portfolio.Artist, mw.portfolio.AvatarURL)
	bio := widget.NewLabel(mw.portfolio.Bio)
	bio.Wrapping = fyne.TextWrapWord

	box := container.NewBorder(nil, nil, card, nil, bio)
	mw.registerSlot("about-avatar", avatar, assets.RegionAbout, card, box)
	return box
}

// buildContactSection creates the footer that opens the contact form
func (mw *MainWindow) buildContactSection() *fyne.Container {
	email := widget.NewLabel(mw.portfolio.Email)
	btn := widget.NewButton("Get in touch", func() {
		mw.showContactForm()
	})
	links := container.NewHBox()
	for _, link := range mw.portfolio.Links {
		url := link
		links.Add(widget.NewButton(url, func() {
			if err := browser.OpenURL(url); err != nil {
				dialog.ShowError(err, mw.window)
			}
		}))
	}
	return container.NewVBox(email, btn, links)
}

// registerSlot creates an image slot for a card and hands it to the
// registry. A locally cached copy, when present, becomes the top candidate.
func (mw *MainWindow) registerSlot(slotID string, art *models.Artwork, region assets.Region, card *artCard, parent fyne.CanvasObject) {
	candidates := assets.Resolve(region, art.LegacyURL)
	if art.ImagePath != "" {
		if _, err := os.Stat(art.ImagePath); err == nil {
			candidates = append([]string{art.ImagePath}, candidates...)
		}
	}

	slot := imageload.NewSlot(slotID, art.LegacyURL, candidates, region, card)
	if err := mw.images.Add(slot); err != nil {
		fmt.Printf("DEBUG: could not register slot %s: %v\n", slotID, err)
		return
	}
	mw.cards[slotID] = &cardDisplay{card: card, parent: parent}
}

// updateViewport refreshes pending slot bounds and pushes the current
// viewport to the visibility detector. Cards only start loading when they
// come within the detector's proximity margin.
func (mw *MainWindow) updateViewport() {
	for id, cd := range mw.cards {
		slot := mw.images.Slot(id)
		if slot == nil || slot.State() != imageload.StatePending {
			continue
		}
		mw.detector.Register(id, cd.bounds())
	}

	off := mw.scroll.Offset
	size := mw.scroll.Size()
	mw.detector.SetViewport(image.Rect(
		int(off.X), int(off.Y),
		int(off.X+size.Width), int(off.Y+size.Height),
	))
}

// createToolbar creates the main toolbar
func (mw *MainWindow) createToolbar() *widget.Toolbar {
	return widget.NewToolbar(
		widget.NewToolbarAction(theme.HomeIcon(), func() {
			mw.scrollTo(0)
		}),
		widget.NewToolbarAction(theme.GridIcon(), func() {
			mw.scrollToSection(mw.galleryGrid)
		}),
		widget.NewToolbarAction(theme.FolderIcon(), func() {
			mw.scrollToSection(mw.collectionRow)
		}),
		widget.NewToolbarAction(theme.AccountIcon(), func() {
			mw.scrollToSection(mw.aboutBox)
		}),
		widget.NewToolbarAction(theme.MailComposeIcon(), func() {
			mw.showContactForm()
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentAddIcon(), func() {
			mw.addCollection()
		}),
		widget.NewToolbarAction(theme.DownloadIcon(), func() {
			mw.fetchMissingImages()
		}),
		widget.NewToolbarAction(theme.ViewRefreshIcon(), func() {
			mw.checkAllSources(false)
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.SettingsIcon(), func() {
			mw.showSettings()
		}),
	)
}

// scrollToSection scrolls the content so the given section is at the top
func (mw *MainWindow) scrollToSection(section fyne.CanvasObject) {
	mw.scrollTo(section.Position().Y)
}

func (mw *MainWindow) scrollTo(y float32) {
	mw.scroll.Offset = fyne.NewPos(0, y)
	mw.scroll.Refresh()
	mw.updateViewport()
}

// showCollection lists the pieces of one collection
func (mw *MainWindow) showCollection(collectionID string) {
	mw.portfolioMutex.RLock()
	col := mw.portfolio.CollectionByID(collectionID)
	mw.portfolioMutex.RUnlock()
	if col == nil {
		return
	}

	list := container.NewVBox()
	for _, artID := range col.ArtworkIDs {
		art := mw.portfolio.ArtworkByID(artID)
		if art == nil {
			continue
		}
		list.Add(widget.NewLabel(fmt.Sprintf("%s (%d) — %s", art.Title, art.Year, art.Medium)))
	}

	content := container.NewBorder(widget.NewLabel(col.Description), nil, nil, nil, list)
	dialog.ShowCustom(col.Name, "Close", content, mw.window)
}

// addCollection adds a collection at runtime; its card's image slot goes
// through the same lazy loading path as everything created at startup
func (mw *MainWindow) addCollection() {
	nameEntry := widget.NewEntry()
	descEntry := widget.NewEntry()
	coverEntry := widget.NewEntry()
	coverEntry.SetPlaceHolder("https://... (legacy image reference)")

	form := dialog.NewForm("Add Collection", "Add", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Description", descEntry),
			widget.NewFormItem("Cover URL", coverEntry),
		},
		func(confirm bool) {
			if !confirm {
				return
			}

			if nameEntry.Text == "" {
				dialog.ShowError(fmt.Errorf("name is required"), mw.window)
				return
			}

			col := models.NewCollection(nameEntry.Text, coverEntry.Text)
			col.Description = descEntry.Text

			mw.portfolioMutex.Lock()
			mw.portfolio.Collections = append(mw.portfolio.Collections, col)
			mw.portfolioMutex.Unlock()

			mw.savePortfolio()
			mw.addCollectionCard(mw.collectionRow, col)
			mw.collectionRow.Refresh()
			mw.updateViewport()
		},
		mw.window)

	form.Resize(fyne.NewSize(500, 260))
	form.Show()
}

// fetchMissingImages downloads local copies for artworks that have a legacy
// source but no cached image yet
func (mw *MainWindow) fetchMissingImages() {
	progress := dialog.NewProgress("Fetching Images", "Downloading images from legacy sources...", mw.window)
	progress.Show()

	go func() {
		defer progress.Hide()

		mw.portfolioMutex.RLock()
		artworks := make([]*models.Artwork, len(mw.portfolio.Artworks))
		copy(artworks, mw.portfolio.Artworks)
		mw.portfolioMutex.RUnlock()

		total := len(artworks)
		downloaded := 0
		failed := 0

		for i, art := range artworks {
			progress.SetValue(float64(i) / float64(total))

			if art.ImagePath != "" {
				if _, err := os.Stat(art.ImagePath); err == nil {
					fmt.Printf("DEBUG: Skipping %s - valid image exists: %s\n", art.Title, art.ImagePath)
					continue
				}
			}

			var localPath string
			var err error
			switch {
			case art.SourcePage != "":
				var res *fetch.Result
				res, err = mw.fetcher.FetchFromPage(art.SourcePage)
				if err == nil {
					localPath = res.ImagePath
				}
			case assets.IsDirectImageURL(art.LegacyURL):
				localPath, err = mw.fetcher.DownloadDirect(art.LegacyURL)
			default:
				fmt.Printf("DEBUG: Skipping %s - no fetchable source\n", art.Title)
				continue
			}

			if err != nil || localPath == "" {
				failed++
				fmt.Printf("DEBUG: Failed to fetch image for %s: %v\n", art.Title, err)
				continue
			}

			art.ImagePath = localPath
			downloaded++
			fmt.Printf("DEBUG: Fetched image for %s: %s\n", art.Title, localPath)
		}

		mw.savePortfolio()

		dialog.ShowInformation("Image Fetch Complete",
			fmt.Sprintf("Downloaded %d images, %d failed.\nFetched copies are preferred on the next load.", downloaded, failed), mw.window)
	}()
}

// checkAllSources sweeps the legacy sources; silent mode is used by the
// periodic timer
func (mw *MainWindow) checkAllSources(silent bool) {
	go func() {
		mw.portfolioMutex.RLock()
		artworks := make([]*models.Artwork, len(mw.portfolio.Artworks))
		copy(artworks, mw.portfolio.Artworks)
		mw.portfolioMutex.RUnlock()

		statuses := mw.sourceMonitor.CheckAll(artworks)

		unavailable := 0
		changed := 0
		for _, st := range statuses {
			if !st.Available {
				unavailable++
			} else if st.Changed {
				changed++
			}
		}

		if !silent {
			dialog.ShowInformation("Source Check Complete",
				fmt.Sprintf("Checked %d legacy sources: %d unavailable, %d moved.", len(statuses), unavailable, changed), mw.window)
			return
		}

		if mw.settings.Notifications && (unavailable > 0 || changed > 0) {
			mw.app.SendNotification(&fyne.Notification{
				Title:   "Legacy sources changed",
				Content: fmt.Sprintf("%d unavailable, %d moved", unavailable, changed),
			})
		}
	}()
}

// startMonitorTimer schedules the periodic legacy source sweep
func (mw *MainWindow) startMonitorTimer() {
	if !mw.settings.MonitorSources || mw.settings.CheckInterval <= 0 {
		return
	}
	mw.refreshTimer = time.AfterFunc(time.Duration(mw.settings.CheckInterval)*time.Second, func() {
		mw.checkAllSources(true)
		mw.startMonitorTimer()
	})
}

// showSettings shows the settings dialog
func (mw *MainWindow) showSettings() {
	intervalEntry := widget.NewEntry()
	intervalEntry.SetText(strconv.Itoa(mw.settings.CheckInterval))

	monitorCheck := widget.NewCheck("Check legacy sources periodically", nil)
	monitorCheck.SetChecked(mw.settings.MonitorSources)

	notifyCheck := widget.NewCheck("Show notifications", nil)
	notifyCheck.SetChecked(mw.settings.Notifications)

	columnsSelect := widget.NewSelect([]string{"2", "3", "4"}, nil)
	columnsSelect.SetSelected(strconv.Itoa(mw.settings.GalleryColumns))

	themeSelect := widget.NewSelect([]string{"light", "dark"}, nil)
	themeSelect.SetSelected(mw.settings.Theme)

	form := dialog.NewForm("Settings", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Check interval (seconds)", intervalEntry),
			widget.NewFormItem("", monitorCheck),
			widget.NewFormItem("", notifyCheck),
			widget.NewFormItem("Gallery columns", columnsSelect),
			widget.NewFormItem("Theme", themeSelect),
		},
		func(confirm bool) {
			if !confirm {
				return
			}

			if interval, err := strconv.Atoi(intervalEntry.Text); err == nil && interval > 0 {
				mw.settings.CheckInterval = interval
			}
			mw.settings.MonitorSources = monitorCheck.Checked
			mw.settings.Notifications = notifyCheck.Checked
			if cols, err := strconv.Atoi(columnsSelect.Selected); err == nil {
				mw.settings.GalleryColumns = cols
			}
			mw.settings.Theme = themeSelect.Selected

			mw.saveSettings()
			if mw.refreshTimer != nil {
				mw.refreshTimer.Stop()
			}
			mw.startMonitorTimer()

			dialog.ShowInformation("Settings Saved",
				"Gallery layout changes apply on the next start.", mw.window)
		},
		mw.window)

	form.Resize(fyne.NewSize(460, 320))
	form.Show()
}

// savePortfolio persists the content set
func (mw *MainWindow) savePortfolio() {
	mw.portfolioMutex.RLock()
	defer mw.portfolioMutex.RUnlock()
	if err := mw.store.SavePortfolio(mw.portfolio); err != nil {
		dialog.ShowError(err, mw.window)
	}
}

// saveSettings persists the settings
func (mw *MainWindow) saveSettings() {
	if err := mw.store.SaveSettings(mw.settings); err != nil {
		dialog.ShowError(err, mw.window)
	}
}
