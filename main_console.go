//go:build console
// +build console

package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"portfolio/contact"
	"portfolio/models"
	"portfolio/monitor"
	"portfolio/storage"

	_ "portfolio/plugins/webgallery"
)

// ConsoleApp represents the console-based portfolio browser
type ConsoleApp struct {
	store      *storage.Manager
	monitor    *monitor.SourceMonitor
	contactMgr *contact.Manager
	portfolio  *models.Portfolio
	settings   *models.Settings
	reader     *bufio.Reader
}

// NewConsoleApp creates a new console application
func NewConsoleApp() *ConsoleApp {
	store := storage.NewManager()
	return &ConsoleApp{
		store:      store,
		monitor:    monitor.NewSourceMonitor(),
		contactMgr: contact.NewManager(store),
		reader:     bufio.NewReader(os.Stdin),
	}
}

func main() {
	app := NewConsoleApp()
	app.Run()
}

// Run starts the console application
func (app *ConsoleApp) Run() {
	app.loadData()

	fmt.Printf("%s — %s\n", app.portfolio.Artist, app.portfolio.Tagline)

	for {
		app.showMenu()
		choice := app.getUserChoice()
		if !app.handleChoice(choice) {
			return
		}
	}
}

// loadData loads portfolio content and settings from storage
func (app *ConsoleApp) loadData() {
	var err error

	app.portfolio, err = app.store.LoadPortfolio()
	if err != nil {
		fmt.Printf("Error loading portfolio: %v\n", err)
		app.portfolio = models.DefaultPortfolio()
	}

	app.settings, err = app.store.LoadSettings()
	if err != nil {
		app.settings = models.DefaultSettings()
	}
}

// showMenu displays the main menu
func (app *ConsoleApp) showMenu() {
	fmt.Println()
	fmt.Println("1. List artworks")
	fmt.Println("2. Show artwork details")
	fmt.Println("3. List collections")
	fmt.Println("4. Check legacy sources")
	fmt.Println("5. Send a message")
	fmt.Println("6. Quit")
	fmt.Print("> ")
}

// getUserChoice reads a menu selection
func (app *ConsoleApp) getUserChoice() int {
	line, err := app.reader.ReadString('\n')
	if err != nil {
		return 6
	}
	choice, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0
	}
	return choice
}

// handleChoice dispatches a menu selection; returns false to quit
func (app *ConsoleApp) handleChoice(choice int) bool {
	switch choice {
	case 1:
		app.listArtworks()
	case 2:
		app.showArtwork()
	case 3:
		app.listCollections()
	case 4:
		app.checkSources()
	case 5:
		app.sendMessage()
	case 6:
		return false
	default:
		fmt.Println("Invalid choice.")
	}
	return true
}

// listArtworks lists all artworks
func (app *ConsoleApp) listArtworks() {
	if len(app.portfolio.Artworks) == 0 {
		fmt.Println("No artworks found.")
		return
	}
	for i, art := range app.portfolio.Artworks {
		fmt.Printf("%d. %s (%d) — %s\n", i+1, art.Title, art.Year, art.Medium)
	}
}

// showArtwork prints the details of one artwork
func (app *ConsoleApp) showArtwork() {
	fmt.Print("Artwork number: ")
	line, _ := app.reader.ReadString('\n')
	num, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || num < 1 || num > len(app.portfolio.Artworks) {
		fmt.Println("Invalid artwork number.")
		return
	}

	art := app.portfolio.Artworks[num-1]
	fmt.Printf("Title:       %s\n", art.Title)
	fmt.Printf("Year:        %d\n", art.Year)
	fmt.Printf("Medium:      %s\n", art.Medium)
	if art.Description != "" {
		fmt.Printf("Description: %s\n", art.Description)
	}
	fmt.Printf("Legacy URL:  %s\n", art.LegacyURL)
	if art.SourcePage != "" {
		fmt.Printf("Source page: %s\n", art.SourcePage)
	}
	if art.ImagePath != "" {
		fmt.Printf("Cached copy: %s\n", art.ImagePath)
	}
}

// listCollections lists all collections with their pieces
func (app *ConsoleApp) listCollections() {
	if len(app.portfolio.Collections) == 0 {
		fmt.Println("No collections found.")
		return
	}
	for _, col := range app.portfolio.Collections {
		fmt.Printf("%s (%d pieces) — %s\n", col.Name, col.Pieces(), col.Description)
		for _, id := range col.ArtworkIDs {
			if art := app.portfolio.ArtworkByID(id); art != nil {
				fmt.Printf("   - %s\n", art.Title)
			}
		}
	}
}

// checkSources sweeps the legacy hosting pages
func (app *ConsoleApp) checkSources() {
	fmt.Println("Checking legacy sources...")
	statuses := app.monitor.CheckAll(app.portfolio.Artworks)
	for _, art := range app.portfolio.Artworks {
		st, ok := statuses[art.ID]
		if !ok {
			continue
		}
		state := "unavailable"
		if st.Available {
			state = "available"
			if st.Changed {
				state = "moved"
			}
		}
		fmt.Printf("%-30s %s\n", art.Title, state)
	}
}

// sendMessage submits a contact message from the terminal
func (app *ConsoleApp) sendMessage() {
	readLine := func(prompt string) string {
		fmt.Print(prompt)
		line, _ := app.reader.ReadString('\n')
		return strings.TrimSpace(line)
	}

	name := readLine("Your name: ")
	email := readLine("Your email: ")
	subject := readLine("Subject: ")
	body := readLine("Message: ")

	msg := models.NewContactMessage(name, email, subject, body)
	if err := app.contactMgr.Submit(msg); err != nil {
		fmt.Printf("Could not send message: %v\n", err)
		return
	}
	fmt.Println("Message sent.")
}
