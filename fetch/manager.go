package fetch

import "fmt"

// Plugin is implemented by any package that can resolve a legacy hosting
// page to its artwork image and download a local copy.
type Plugin interface {
	Name() string

	// ResolveImageURL attempts to scrape the artwork image URL from a
	// legacy hosting page.
	ResolveImageURL(pageURL string) (string, error)

	// DownloadImage downloads a direct image URL into the local cache and
	// returns the stored path.
	DownloadImage(imageURL string) (string, error)
}

// global registry that plugins populate from their init() functions.
var registeredPlugins []Plugin

// RegisterPlugin is called by a plugin's init() to make itself available.
func RegisterPlugin(p Plugin) {
	registeredPlugins = append(registeredPlugins, p)
}

// Manager is the façade the rest of the application talks to.  It forwards
// requests to all registered plugins until one of them succeeds.
type Manager struct {
	plugins []Plugin
}

// NewManager constructs a manager using the registered plugin list.
func NewManager() *Manager {
	return &Manager{plugins: registeredPlugins}
}

// FetchFromPage resolves a legacy hosting page and downloads its artwork
// image, returning the populated result.
func (m *Manager) FetchFromPage(pageURL string) (*Result, error) {
	for _, p := range m.plugins {
		imageURL, err := p.ResolveImageURL(pageURL)
		if err != nil || imageURL == "" {
			continue
		}
		localPath, err := p.DownloadImage(imageURL)
		if err != nil {
			fmt.Printf("DEBUG: plugin %s resolved %s but download failed: %v\n", p.Name(), imageURL, err)
			continue
		}
		return &Result{PageURL: pageURL, ImageURL: imageURL, ImagePath: localPath}, nil
	}
	return nil, fmt.Errorf("no plugin could fetch an image from %s", pageURL)
}

// DownloadDirect downloads a direct legacy image URL with the first plugin
// that succeeds.
func (m *Manager) DownloadDirect(imageURL string) (string, error) {
	for _, p := range m.plugins {
		if path, err := p.DownloadImage(imageURL); err == nil && path != "" {
			return path, nil
		}
	}
	return "", fmt.Errorf("no plugin succeeded downloading %s", imageURL)
}
