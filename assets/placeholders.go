package assets

// Region identifies where on the page an image slot lives. It decides which
// terminal placeholder a permanently failed image receives.
type Region int

const (
	RegionGeneric Region = iota
	RegionGallery
	RegionCollection
	RegionAbout
)

// String returns the region name used in logs
func (r Region) String() string {
	switch r {
	case RegionGallery:
		return "gallery"
	case RegionCollection:
		return "collection"
	case RegionAbout:
		return "about"
	default:
		return "generic"
	}
}

// AltUnavailable is the fallback alternative text set alongside a terminal
// placeholder.
const AltUnavailable = "Image temporarily unavailable"

// placeholders is the fixed set of terminal placeholder graphics. Immutable.
var placeholders = map[Region]string{
	RegionGallery:    imageRoot + "/placeholders/artwork-placeholder.svg",
	RegionCollection: imageRoot + "/placeholders/collection-placeholder.svg",
	RegionAbout:      imageRoot + "/placeholders/avatar-placeholder.svg",
	RegionGeneric:    imageRoot + "/placeholders/image-error.svg",
}

// PlaceholderFor returns the terminal placeholder path for a region. Unknown
// regions fall back to the generic error graphic.
func PlaceholderFor(r Region) string {
	if p, ok := placeholders[r]; ok {
		return p
	}
	return placeholders[RegionGeneric]
}
