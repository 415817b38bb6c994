package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/models"
)

func TestLoadPortfolioSeedsDefaultsOnFirstRun(t *testing.T) {
	dir := t.TempDir()
	mgr := NewManagerAt(dir)

	p, err := mgr.LoadPortfolio()
	require.NoError(t, err)
	assert.Equal(t, "Mara Lindqvist", p.Artist)
	assert.NotEmpty(t, p.Artworks)
	assert.NotEmpty(t, p.Collections)

	// The seed must have been written so the next load sees the same content
	_, err = os.Stat(filepath.Join(dir, "portfolio.json"))
	assert.NoError(t, err)

	again, err := mgr.LoadPortfolio()
	require.NoError(t, err)
	assert.Equal(t, p.Artworks[0].ID, again.Artworks[0].ID)
}

func TestPortfolioRoundTrip(t *testing.T) {
	mgr := NewManagerAt(t.TempDir())

	p := models.DefaultPortfolio()
	art := models.NewArtwork("New Piece", "https://images.oldportfolio.example/gallery/new-piece.jpg")
	art.Year = 2026
	art.ImagePath = `"/tmp/cache/new-piece.png"`
	p.Artworks = append(p.Artworks, art)

	require.NoError(t, mgr.SavePortfolio(p))

	loaded, err := mgr.LoadPortfolio()
	require.NoError(t, err)

	got := loaded.ArtworkByID(art.ID)
	require.NotNil(t, got)
	assert.Equal(t, "New Piece", got.Title)
	assert.Equal(t, 2026, got.Year)
	// Surrounding quotes are stripped on load
	assert.Equal(t, filepath.Clean("/tmp/cache/new-piece.png"), got.ImagePath)
}

func TestSettingsRoundTripAndDefaults(t *testing.T) {
	mgr := NewManagerAt(t.TempDir())

	s, err := mgr.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings().GalleryColumns, s.GalleryColumns)

	s.GalleryColumns = 4
	s.Theme = "dark"
	require.NoError(t, mgr.SaveSettings(s))

	loaded, err := mgr.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, 4, loaded.GalleryColumns)
	assert.Equal(t, "dark", loaded.Theme)
}

func TestMessageOutboxAppends(t *testing.T) {
	mgr := NewManagerAt(t.TempDir())

	first := models.NewContactMessage("A", "a@example.com", "hello", "first message body")
	second := models.NewContactMessage("B", "b@example.com", "hello", "second message body")
	require.NoError(t, mgr.AppendMessage(first))
	require.NoError(t, mgr.AppendMessage(second))

	messages, err := mgr.LoadMessages()
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, first.ID, messages[0].ID)
	assert.Equal(t, second.ID, messages[1].ID)
}

func TestImageCacheDirCreated(t *testing.T) {
	dir := t.TempDir()
	mgr := NewManagerAt(dir)

	cache := mgr.ImageCacheDir()
	info, err := os.Stat(cache)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, filepath.Join(dir, "images"), cache)
}
