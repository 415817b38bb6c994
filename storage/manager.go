package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"portfolio/models"
)

// Manager handles data persistence
type Manager struct {
	dataPath string
}

// NewManager creates a storage manager rooted in the user's home directory
func NewManager() *Manager {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	dataPath := filepath.Join(homeDir, ".portfolio")
	if err := os.MkdirAll(dataPath, 0755); err != nil {
		// Fallback to current directory
		dataPath = "."
	}

	return &Manager{dataPath: dataPath}
}

// NewManagerAt creates a storage manager rooted at an explicit directory.
// Tests use it to stay out of the user's home.
func NewManagerAt(dataPath string) *Manager {
	_ = os.MkdirAll(dataPath, 0755)
	return &Manager{dataPath: dataPath}
}

// ImageCacheDir returns the directory fetched images are stored in
func (m *Manager) ImageCacheDir() string {
	dir := filepath.Join(m.dataPath, "images")
	_ = os.MkdirAll(dir, 0755)
	return dir
}

// SavePortfolio saves the portfolio content to disk
func (m *Manager) SavePortfolio(p *models.Portfolio) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	filePath := filepath.Join(m.dataPath, "portfolio.json")
	return os.WriteFile(filePath, data, 0644)
}

// LoadPortfolio loads the portfolio content from disk, seeding the default
// content on first run
func (m *Manager) LoadPortfolio() (*models.Portfolio, error) {
	filePath := filepath.Join(m.dataPath, "portfolio.json")

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Printf("DEBUG: Portfolio file does not exist, seeding defaults\n")
			p := models.DefaultPortfolio()
			if err := m.SavePortfolio(p); err != nil {
				return nil, err
			}
			return p, nil
		}
		return nil, err
	}

	var p models.Portfolio
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}

	// Clean up cached image paths for existing artworks
	for _, a := range p.Artworks {
		a.ImagePath = m.cleanPath(a.ImagePath)
	}

	return &p, nil
}

// SaveSettings saves the settings to disk
func (m *Manager) SaveSettings(settings *models.Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}

	filePath := filepath.Join(m.dataPath, "settings.json")
	return os.WriteFile(filePath, data, 0644)
}

// LoadSettings loads the settings from disk
func (m *Manager) LoadSettings() (*models.Settings, error) {
	filePath := filepath.Join(m.dataPath, "settings.json")

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.DefaultSettings(), nil
		}
		return nil, err
	}

	var settings models.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// AppendMessage appends a contact message to the local outbox
func (m *Manager) AppendMessage(msg *models.ContactMessage) error {
	messages, err := m.LoadMessages()
	if err != nil {
		return err
	}
	messages = append(messages, msg)

	data, err := json.MarshalIndent(messages, "", "  ")
	if err != nil {
		return err
	}

	filePath := filepath.Join(m.dataPath, "outbox.json")
	return os.WriteFile(filePath, data, 0644)
}

// LoadMessages loads the contact outbox from disk
func (m *Manager) LoadMessages() ([]*models.ContactMessage, error) {
	filePath := filepath.Join(m.dataPath, "outbox.json")

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []*models.ContactMessage{}, nil
		}
		return nil, err
	}

	var messages []*models.ContactMessage
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// cleanPath cleans and normalizes a file path
func (m *Manager) cleanPath(path string) string {
	if path == "" {
		return path
	}

	// Remove surrounding quotes
	path = strings.Trim(path, `"'`)

	// Normalize path separators
	path = filepath.Clean(path)

	return path
}
