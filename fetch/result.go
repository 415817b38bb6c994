package fetch

// Result represents one resolved legacy image reference.
type Result struct {
	PageURL   string // The legacy hosting page the reference pointed at
	ImageURL  string // Direct image URL extracted from the page
	ImagePath string // Local path where the image is stored (after download)
	Title     string // Page title, when the scraper found one
}
