package imageload

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	// Import decoders for common image formats
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "github.com/gen2brain/avif"
	"github.com/nfnt/resize"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/webp"
)

// Prober attempts to fully decode a single candidate source without touching
// the live UI, so a failing candidate never flashes a broken image.
type Prober interface {
	Probe(source string) (image.Image, error)
}

// HTTPProbe loads candidates from local asset paths or over HTTP and decodes
// them in memory. Oversized rasters are downscaled before being handed to
// the UI.
type HTTPProbe struct {
	httpClient *http.Client
	userAgent  string
	maxWidth   int
	maxHeight  int
}

// NewProbe creates a probe with the client settings the rest of the app uses
func NewProbe() *HTTPProbe {
	return &HTTPProbe{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		userAgent:  "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
		maxWidth:   1600,
		maxHeight:  1600,
	}
}

// Probe fetches and fully decodes one candidate
func (p *HTTPProbe) Probe(source string) (image.Image, error) {
	var data []byte
	var err error

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		data, err = p.fetch(source)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty response for %s", source)
	}

	if looksLikeSVG(source, data) {
		return decodeSVG(data)
	}

	// Check if we got HTML instead of an image
	previewLen := 100
	if len(data) < previewLen {
		previewLen = len(data)
	}
	contentStart := strings.ToLower(string(data[:previewLen]))
	if strings.Contains(contentStart, "<html") || strings.Contains(contentStart, "<!doctype") {
		return nil, fmt.Errorf("received HTML page instead of image data from %s", source)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("image validation failed for %s (format detection): %w", source, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > p.maxWidth || bounds.Dy() > p.maxHeight {
		fmt.Printf("DEBUG: %s image %s is large (%dx%d), resizing\n", format, source, bounds.Dx(), bounds.Dy())
		if bounds.Dx() > bounds.Dy() {
			img = resize.Resize(uint(p.maxWidth), 0, img, resize.Lanczos3)
		} else {
			img = resize.Resize(0, uint(p.maxHeight), img, resize.Lanczos3)
		}
	}
	return img, nil
}

// fetch downloads a candidate with browser-like headers
func (p *HTTPProbe) fetch(source string) ([]byte, error) {
	req, err := http.NewRequest("GET", source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "image/webp,image/apng,image/svg+xml,image/*,*/*;q=0.8")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status for %s: %s", source, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// looksLikeSVG decides whether to route a candidate through the vector
// decoder, by extension first and content sniff second
func looksLikeSVG(source string, data []byte) bool {
	ext := strings.ToLower(path.Ext(source))
	if i := strings.IndexAny(ext, "?#"); i != -1 {
		ext = ext[:i]
	}
	if ext == ".svg" {
		return true
	}
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.Contains(head, []byte("<svg"))
}

// decodeSVG parses and rasterizes a vector candidate off-screen. A vector
// that fails to parse counts as a failed candidate like any other.
func decodeSVG(data []byte) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("svg parse failed: %w", err)
	}

	w := int(icon.ViewBox.W)
	h := int(icon.ViewBox.H)
	if w <= 0 || h <= 0 {
		w, h = 512, 512
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return rgba, nil
}
