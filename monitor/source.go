package monitor

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"portfolio/models"

	"github.com/PuerkitoBio/goquery"
)

// SourceMonitor checks the legacy hosting pages the portfolio migrated away
// from: whether they still respond, and whether the artwork image they serve
// has moved.
type SourceMonitor struct {
	client *http.Client
}

// NewSourceMonitor creates a new source monitor
func NewSourceMonitor() *SourceMonitor {
	return &SourceMonitor{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SourceStatus contains the result of checking one legacy source
type SourceStatus struct {
	Available bool
	ImageURL  string // Image URL the page currently serves, if any
	Changed   bool   // Whether it differs from the recorded legacy reference
	CheckedAt time.Time
	Detail    string
}

// CheckSource checks the legacy source backing one artwork
func (m *SourceMonitor) CheckSource(art *models.Artwork) (*SourceStatus, error) {
	pageURL := art.SourcePage
	if pageURL == "" {
		// Direct image references are checked with a plain HEAD request
		if art.LegacyURL == "" {
			return nil, fmt.Errorf("no legacy source configured")
		}
		return m.checkDirectImage(art.LegacyURL)
	}

	resp, err := m.client.Get(pageURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return &SourceStatus{
			Available: false,
			CheckedAt: time.Now(),
			Detail:    fmt.Sprintf("source returned status %d", resp.StatusCode),
		}, nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	imageURL := m.extractImageFromPage(doc, pageURL)

	return &SourceStatus{
		Available: true,
		ImageURL:  imageURL,
		Changed:   imageURL != "" && imageURL != art.LegacyURL,
		CheckedAt: time.Now(),
		Detail:    fmt.Sprintf("Recorded: %s, Found: %s", art.LegacyURL, imageURL),
	}, nil
}

// CheckAll checks every artwork that carries a legacy source and returns the
// statuses keyed by artwork ID. Failed checks are reported as unavailable
// rather than aborting the sweep.
func (m *SourceMonitor) CheckAll(artworks []*models.Artwork) map[string]*SourceStatus {
	statuses := make(map[string]*SourceStatus)
	for _, art := range artworks {
		if art.LegacyURL == "" && art.SourcePage == "" {
			continue
		}
		status, err := m.CheckSource(art)
		if err != nil {
			fmt.Printf("DEBUG: Source check failed for %s: %v\n", art.Title, err)
			status = &SourceStatus{
				Available: false,
				CheckedAt: time.Now(),
				Detail:    err.Error(),
			}
		}
		statuses[art.ID] = status
	}
	return statuses
}

// checkDirectImage verifies a direct legacy image URL still resolves
func (m *SourceMonitor) checkDirectImage(imageURL string) (*SourceStatus, error) {
	resp, err := m.client.Head(imageURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	available := resp.StatusCode == 200
	contentType := resp.Header.Get("Content-Type")
	if available && contentType != "" && !strings.HasPrefix(contentType, "image/") {
		available = false
	}

	return &SourceStatus{
		Available: available,
		ImageURL:  imageURL,
		CheckedAt: time.Now(),
		Detail:    fmt.Sprintf("status %d, content-type %s", resp.StatusCode, contentType),
	}, nil
}

// extractImageFromPage pulls the most likely artwork image URL out of a
// legacy hosting page
func (m *SourceMonitor) extractImageFromPage(doc *goquery.Document, pageURL string) string {
	// og:image first, it is the page's own declaration
	if content, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok && content != "" {
		return m.absoluteURL(pageURL, content)
	}

	// Then lightbox wrappers, which carry the full-size source
	if src, ok := doc.Find("[data-src]").First().Attr("data-src"); ok && src != "" {
		return m.absoluteURL(pageURL, src)
	}

	// Fall back to the first content image
	var found string
	doc.Find("main img, article img, img").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if src, ok := s.Attr("src"); ok && src != "" {
			found = m.absoluteURL(pageURL, src)
			return false
		}
		return true
	})
	return found
}

// absoluteURL resolves scheme-relative and path-relative image references
// against the page that served them
func (m *SourceMonitor) absoluteURL(pageURL, ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if strings.HasPrefix(ref, "//") {
		return "https:" + ref
	}
	base := pageURL
	if idx := strings.Index(base, "://"); idx != -1 {
		if slash := strings.Index(base[idx+3:], "/"); slash != -1 {
			base = base[:idx+3+slash]
		}
	}
	if strings.HasPrefix(ref, "/") {
		return base + ref
	}
	return base + "/" + ref
}
