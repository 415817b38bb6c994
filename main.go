//go:build !console
// +build !console

package main

import (
	"fmt"
	"log"
	"os"

	"portfolio/assets"
	"portfolio/fetch"
	"portfolio/monitor"
	"portfolio/storage"
	"portfolio/ui"

	_ "portfolio/plugins/webgallery"
)

func main() {
	// Check for command-line arguments
	if len(os.Args) > 1 {
		handleCommandLineArgs()
		return
	}

	// Normal GUI mode
	log.Println("Starting Portfolio Viewer...")
	app := ui.NewMainWindow()
	app.ShowAndRun()
}

// handleCommandLineArgs processes command-line arguments
func handleCommandLineArgs() {
	args := os.Args[1:]

	if len(args) == 0 {
		showUsage()
		return
	}

	switch args[0] {
	case "-list", "--list":
		listArtworks()
	case "-check", "--check":
		checkAssets()
	case "-sources", "--sources":
		checkSources()
	case "-fetch", "--fetch":
		if len(args) < 2 {
			fmt.Println("Error: Artwork title or 'all' required")
			showUsage()
			return
		}
		fetchImages(args[1])
	case "-help", "--help", "-h", "--h":
		showUsage()
	default:
		fmt.Printf("Unknown option: %s\n", args[0])
		showUsage()
	}
}

// listArtworks lists all artworks in the portfolio
func listArtworks() {
	store := storage.NewManager()
	portfolio, err := store.LoadPortfolio()
	if err != nil {
		fmt.Printf("Error loading portfolio: %v\n", err)
		return
	}

	if len(portfolio.Artworks) == 0 {
		fmt.Println("No artworks found.")
		return
	}

	fmt.Printf("%s — %s\n", portfolio.Artist, portfolio.Tagline)
	fmt.Println("================================")
	for i, art := range portfolio.Artworks {
		fmt.Printf("%d. %s (%d)\n", i+1, art.Title, art.Year)
		fmt.Printf("   Medium: %s\n", art.Medium)
		fmt.Printf("   Legacy source: %s\n", art.LegacyURL)
		if art.ImagePath != "" {
			fmt.Printf("   Cached copy: %s\n", art.ImagePath)
		}
		fmt.Println()
	}
}

// checkAssets verifies that the local candidate files behind every artwork
// exist on disk
func checkAssets() {
	store := storage.NewManager()
	portfolio, err := store.LoadPortfolio()
	if err != nil {
		fmt.Printf("Error loading portfolio: %v\n", err)
		return
	}

	missing := 0
	for _, art := range portfolio.Artworks {
		candidates := assets.Resolve(assets.RegionGallery, art.LegacyURL)
		fmt.Printf("%s:\n", art.Title)
		for _, c := range candidates {
			if assets.IsDirectImageURL(c) {
				fmt.Printf("   [remote] %s\n", c)
				continue
			}
			if _, err := os.Stat(c); err == nil {
				fmt.Printf("   [ok]     %s\n", c)
			} else {
				fmt.Printf("   [missing] %s\n", c)
				missing++
			}
		}
	}

	if missing > 0 {
		fmt.Printf("\n%d candidate files missing; the loader will fall back or retry at runtime.\n", missing)
	} else {
		fmt.Println("\nAll local candidates present.")
	}
}

// checkSources sweeps the legacy hosting pages
func checkSources() {
	store := storage.NewManager()
	portfolio, err := store.LoadPortfolio()
	if err != nil {
		fmt.Printf("Error loading portfolio: %v\n", err)
		return
	}

	m := monitor.NewSourceMonitor()
	statuses := m.CheckAll(portfolio.Artworks)

	for _, art := range portfolio.Artworks {
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
		fmt.Printf("   %s\n", st.Detail)
	}
}

// fetchImages downloads local copies for one artwork or all of them
func fetchImages(target string) {
	store := storage.NewManager()
	portfolio, err := store.LoadPortfolio()
	if err != nil {
		fmt.Printf("Error loading portfolio: %v\n", err)
		return
	}

	fetcher := fetch.NewManager()
	fetched := 0

	for _, art := range portfolio.Artworks {
		if target != "all" && art.Title != target {
			continue
		}

		var localPath string
		switch {
		case art.SourcePage != "":
			var res *fetch.Result
			res, err = fetcher.FetchFromPage(art.SourcePage)
			if err == nil {
				localPath = res.ImagePath
			}
		case assets.IsDirectImageURL(art.LegacyURL):
			localPath, err = fetcher.DownloadDirect(art.LegacyURL)
		default:
			fmt.Printf("Skipping %s: no fetchable source\n", art.Title)
			continue
		}

		if err != nil || localPath == "" {
			fmt.Printf("Failed to fetch %s: %v\n", art.Title, err)
			continue
		}

		art.ImagePath = localPath
		fetched++
		fmt.Printf("Fetched %s -> %s\n", art.Title, localPath)
	}

	if fetched > 0 {
		if err := store.SavePortfolio(portfolio); err != nil {
			fmt.Printf("Error saving portfolio: %v\n", err)
		}
	}
	fmt.Printf("Fetched %d images.\n", fetched)
}

// showUsage displays command-line usage information
func showUsage() {
	fmt.Println("Portfolio Viewer - Command Line Usage")
	fmt.Println("=====================================")
	fmt.Println()
	fmt.Println("GUI Mode (default):")
	fmt.Println("  portfolio")
	fmt.Println()
	fmt.Println("Command Line Options:")
	fmt.Println("  -list              List all artworks")
	fmt.Println("  -check             Verify local image candidates exist")
	fmt.Println("  -sources           Check the legacy hosting pages")
	fmt.Println("  -fetch <title|all> Download images from legacy sources")
	fmt.Println("  -help              Show this help message")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  portfolio -list")
	fmt.Println("  portfolio -fetch all")
	fmt.Println("  portfolio -fetch \"Harbor at Dusk\"")
}
