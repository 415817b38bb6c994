package webgallery

import (
	"bytes"
	"fmt"
	"image"

	// Import decoders for common image formats
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	_ "image/png"

	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"portfolio/fetch"

	"github.com/gocolly/colly/v2"

	// Support for additional image formats
	_ "github.com/gen2brain/avif"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp"
)

// Service implements fetch.Plugin for generic web gallery pages: the legacy
// portfolio host, plus any page that exposes its artwork through an og:image
// meta tag or a lightbox wrapper.
type Service struct {
	httpClient *http.Client
	imageDir   string
	userAgent  string
}

var _ fetch.Plugin = (*Service)(nil)

func (s *Service) Name() string { return "webgallery" }

func NewService() *Service {
	home, _ := os.UserHomeDir()
	if home == "" {
		home = "."
	}
	imgDir := filepath.Join(home, ".portfolio", "images")
	_ = os.MkdirAll(imgDir, 0755)
	return &Service{
		httpClient: &http.Client{Timeout: 30 * time.Second}, // Scraping needs the longer timeout
		imageDir:   imgDir,
		userAgent:  "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	}
}

func init() { fetch.RegisterPlugin(NewService()) }

// ---------------- core methods ----------------

// ResolveImageURL uses a proper web scraper (Colly) to find the best image.
func (s *Service) ResolveImageURL(pageURL string) (string, error) {
	if pageURL == "" {
		return "", fmt.Errorf("page URL is empty")
	}

	c := colly.NewCollector(
		colly.UserAgent(s.userAgent),
	)
	c.SetRequestTimeout(30 * time.Second)

	var imageURL string
	found := false

	// og:image is the most reliable source when the page declares one.
	c.OnHTML(`meta[property="og:image"]`, func(e *colly.HTMLElement) {
		if found {
			return
		}
		if content := e.Attr("content"); content != "" {
			imageURL = e.Request.AbsoluteURL(content)
			fmt.Printf("DEBUG: Found PRIMARY image candidate via og:image: %s\n", imageURL)
			found = true
		}
	})

	// Lightbox wrappers carry the full-size source in data-src.
	c.OnHTML(`div.lightbox [data-src], a.lightbox[data-src]`, func(e *colly.HTMLElement) {
		if found {
			return
		}
		if src := e.Attr("data-src"); src != "" {
			imageURL = e.Request.AbsoluteURL(src)
			fmt.Printf("DEBUG: Found image candidate via lightbox data-src: %s\n", imageURL)
			found = true
		}
	})

	// Fallback to the first content image on the page.
	c.OnHTML("main img, article img", func(e *colly.HTMLElement) {
		if found {
			return
		}
		if src := e.Attr("src"); src != "" {
			imageURL = e.Request.AbsoluteURL(src)
			fmt.Printf("DEBUG: Found image candidate via first content img: %s\n", imageURL)
			found = true
		}
	})

	if err := c.Visit(pageURL); err != nil {
		return "", fmt.Errorf("failed to visit URL: %w", err)
	}
	c.Wait()

	if !found || imageURL == "" {
		return "", fmt.Errorf("no suitable image found on page")
	}

	// Thumbnail URLs on the legacy host point at the full-size variant
	// once the /thumb/ segment is dropped.
	fullSizeURL := strings.Replace(imageURL, "/thumb/", "/", 1)
	return fullSizeURL, nil
}

// DownloadImage downloads, validates and caches a direct image URL.
func (s *Service) DownloadImage(imageURL string) (string, error) {
	if imageURL == "" {
		return "", fmt.Errorf("empty image url")
	}

	fmt.Printf("DEBUG: DownloadImage called with: %s\n", imageURL)

	filename := filepath.Base(imageURL)
	if qIndex := strings.Index(filename, "?"); qIndex != -1 {
		filename = filename[:qIndex]
	}

	localPath := filepath.Join(s.imageDir, filename)

	if _, err := os.Stat(localPath); err == nil {
		fmt.Printf("DEBUG: File already exists, returning: %s\n", localPath)
		return localPath, nil
	}

	// Create request with proper headers to mimic a browser
	req, err := http.NewRequest("GET", imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "image/webp,image/apng,image/svg+xml,image/*,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bad status: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("DEBUG: Downloaded %d bytes\n", len(data))

	// Check if we got HTML instead of an image
	if len(data) > 0 {
		previewLen := 100
		if len(data) < previewLen {
			previewLen = len(data)
		}
		contentStart := string(data[:previewLen])
		if strings.Contains(strings.ToLower(contentStart), "<html") || strings.Contains(strings.ToLower(contentStart), "<!doctype") {
			return "", fmt.Errorf("received HTML page instead of image data")
		}
	}

	// Decode the image to validate and potentially convert format
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("image validation failed for %s (format detection): %w", imageURL, err)
	}

	bounds := img.Bounds()
	originalWidth := bounds.Dx()
	originalHeight := bounds.Dy()
	fmt.Printf("DEBUG: Image format %s, size %dx%d\n", format, originalWidth, originalHeight)

	// Resize if image is too large (optimize for UI performance)
	const maxWidth = 1600
	const maxHeight = 1600

	resizedImg := img
	needsResize := originalWidth > maxWidth || originalHeight > maxHeight

	if needsResize {
		var newWidth, newHeight uint
		if originalWidth > originalHeight {
			newWidth = maxWidth
			newHeight = 0 // auto-calculate to maintain aspect ratio
		} else {
			newWidth = 0
			newHeight = maxHeight
		}

		resizedImg = resize.Resize(newWidth, newHeight, img, resize.Lanczos3)
		newBounds := resizedImg.Bounds()
		fmt.Printf("DEBUG: Resized to: %dx%d\n", newBounds.Dx(), newBounds.Dy())
	}

	// Avif and webp downloads are re-encoded as PNG so the UI never has to
	// decode exotic formats at render time.
	if format == "avif" || format == "webp" || needsResize {
		if !strings.HasSuffix(localPath, ".png") {
			localPath = strings.TrimSuffix(localPath, filepath.Ext(localPath)) + ".png"
		}

		outFile, err := os.Create(localPath)
		if err != nil {
			return "", fmt.Errorf("failed to create PNG file: %w", err)
		}
		defer outFile.Close()

		if err := png.Encode(outFile, resizedImg); err != nil {
			return "", fmt.Errorf("failed to encode as PNG: %w", err)
		}

		fmt.Printf("DEBUG: Successfully optimized and saved as PNG: %s\n", localPath)
	} else {
		if err := os.WriteFile(localPath, data, 0666); err != nil {
			return "", fmt.Errorf("failed to write file to %s: %w", localPath, err)
		}

		fmt.Printf("DEBUG: Successfully wrote file to: %s\n", localPath)
	}
	return localPath, nil
}
