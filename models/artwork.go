package models

import (
	"time"

	"github.com/google/uuid"
)

// Artwork represents a single piece shown in the gallery
type Artwork struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Year        int       `json:"year"`
	Medium      string    `json:"medium"`
	Description string    `json:"description"`
	LegacyURL   string    `json:"legacy_url"` // Original external image reference
	SourcePage  string    `json:"source_page"` // Page the legacy image was hosted on, if any
	ImagePath   string    `json:"image_path"`  // Local path where a fetched copy is stored
	CollectionID string   `json:"collection_id"`
	Featured    bool      `json:"featured"`
	AddedAt     time.Time `json:"added_at"`
}

// NewArtwork creates a new artwork instance with a unique ID
func NewArtwork(title, legacyURL string) *Artwork {
	return &Artwork{
		ID:        uuid.New().String(),
		Title:     title,
		LegacyURL: legacyURL,
		AddedAt:   time.Now(),
	}
}

// Collection groups related artworks under a shared cover image
type Collection struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CoverURL    string    `json:"cover_url"` // Legacy reference for the cover image
	ArtworkIDs  []string  `json:"artwork_ids"`
	AddedAt     time.Time `json:"added_at"`
}

// NewCollection creates a new collection instance with a unique ID
func NewCollection(name, coverURL string) *Collection {
	return &Collection{
		ID:       uuid.New().String(),
		Name:     name,
		CoverURL: coverURL,
		AddedAt:  time.Now(),
	}
}

// Pieces returns how many artworks belong to the collection
func (c *Collection) Pieces() int {
	return len(c.ArtworkIDs)
}

// Portfolio is the full content set the viewer presents
type Portfolio struct {
	Artist      string        `json:"artist"`
	Tagline     string        `json:"tagline"`
	Bio         string        `json:"bio"`
	AvatarURL   string        `json:"avatar_url"` // Legacy reference for the about portrait
	Email       string        `json:"email"`
	Links       []string      `json:"links"`
	Artworks    []*Artwork    `json:"artworks"`
	Collections []*Collection `json:"collections"`
}

// ArtworkByID looks up an artwork in the portfolio
func (p *Portfolio) ArtworkByID(id string) *Artwork {
	for _, a := range p.Artworks {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// CollectionByID looks up a collection in the portfolio
func (p *Portfolio) CollectionByID(id string) *Collection {
	for _, c := range p.Collections {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// DefaultPortfolio returns the seed content used on first run, referencing
// the legacy image hosting the site migrated away from.
func DefaultPortfolio() *Portfolio {
	sunrise := NewArtwork("Sunrise Over Fields", "https://images.oldportfolio.example/gallery/sunrise-over-fields.jpg")
	sunrise.Year = 2021
	sunrise.Medium = "Oil on canvas"
	sunrise.Featured = true

	harbor := NewArtwork("Harbor at Dusk", "https://images.oldportfolio.example/gallery/harbor-at-dusk.jpg")
	harbor.Year = 2022
	harbor.Medium = "Oil on canvas"
	harbor.Featured = true

	birches := NewArtwork("Birches in Winter", "https://images.oldportfolio.example/gallery/birches-in-winter.jpg")
	birches.Year = 2022
	birches.Medium = "Watercolor"

	stillLife := NewArtwork("Still Life with Quinces", "https://images.oldportfolio.example/gallery/still-life-quinces.jpg")
	stillLife.Year = 2023
	stillLife.Medium = "Oil on panel"

	cliffs := NewArtwork("Chalk Cliffs", "https://images.oldportfolio.example/gallery/chalk-cliffs.jpg")
	cliffs.Year = 2023
	cliffs.Medium = "Gouache"
	cliffs.SourcePage = "https://oldportfolio.example/works/chalk-cliffs"

	orchard := NewArtwork("Orchard Study", "https://images.oldportfolio.example/gallery/orchard-study.jpg")
	orchard.Year = 2024
	orchard.Medium = "Charcoal"

	landscapes := NewCollection("Landscapes", "https://images.oldportfolio.example/collections/landscapes-cover.jpg")
	landscapes.Description = "Plein air work from the coast and the valley."
	landscapes.ArtworkIDs = []string{sunrise.ID, harbor.ID, cliffs.ID}

	studies := NewCollection("Studies", "https://images.oldportfolio.example/collections/studies-cover.jpg")
	studies.Description = "Smaller exercises in tone and form."
	studies.ArtworkIDs = []string{birches.ID, stillLife.ID, orchard.ID}

	for _, a := range []*Artwork{sunrise, harbor, cliffs} {
		a.CollectionID = landscapes.ID
	}
	for _, a := range []*Artwork{birches, stillLife, orchard} {
		a.CollectionID = studies.ID
	}

	return &Portfolio{
		Artist:    "Mara Lindqvist",
		Tagline:   "Painter of quiet places",
		Bio:       "Mara paints landscapes and still lifes from her studio on the Baltic coast. Her work has been shown in small galleries across northern Europe.",
		AvatarURL: "https://images.oldportfolio.example/about/portrait.jpg",
		Email:     "studio@maralindqvist.example",
		Links: []string{
			"https://oldportfolio.example",
		},
		Artworks:    []*Artwork{sunrise, harbor, birches, stillLife, cliffs, orchard},
		Collections: []*Collection{landscapes, studies},
	}
}
