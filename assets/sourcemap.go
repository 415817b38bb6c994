// Package assets maps legacy external image references onto the local asset
// tree that replaced them, and owns the fixed placeholder graphics shown when
// an image cannot be loaded at all.
package assets

import (
	"path"
	"strings"
)

// imageRoot is the conventional layout the site's assets were exported into.
// Each logical image has a parallel webp and jpg representation plus an svg
// fallback that is always present.
const imageRoot = "assets/images"

// knownSources pins legacy references whose exported filenames do not follow
// the convention. Everything else resolves through deriveCandidates.
var knownSources = map[string][3]string{
	"https://images.oldportfolio.example/about/portrait.jpg": {
		imageRoot + "/about/webp/portrait.webp",
		imageRoot + "/about/jpg/portrait.jpg",
		imageRoot + "/about/svg/portrait.svg",
	},
	"https://images.oldportfolio.example/collections/landscapes-cover.jpg": {
		imageRoot + "/collections/webp/landscapes-cover.webp",
		imageRoot + "/collections/jpg/landscapes-cover.jpg",
		imageRoot + "/collections/svg/landscapes-cover.svg",
	},
	"https://images.oldportfolio.example/collections/studies-cover.jpg": {
		imageRoot + "/collections/webp/studies-cover.webp",
		imageRoot + "/collections/jpg/studies-cover.jpg",
		imageRoot + "/collections/svg/studies-cover.svg",
	},
}

// regionDirs maps a page region to its subtree under imageRoot
var regionDirs = map[Region]string{
	RegionGallery:    "gallery",
	RegionCollection: "collections",
	RegionAbout:      "about",
	RegionGeneric:    "gallery",
}

// Resolve returns the ordered candidate list for a legacy reference:
// preferred webp first, compatible jpg second, vector svg fallback third.
// When the legacy reference itself points directly at an image file it is
// appended as a last resort. The result is never empty.
func Resolve(region Region, legacyRef string) []string {
	var candidates []string

	if triple, ok := knownSources[legacyRef]; ok {
		candidates = append(candidates, triple[0], triple[1], triple[2])
	} else {
		candidates = deriveCandidates(region, legacyRef)
	}

	if IsDirectImageURL(legacyRef) {
		candidates = append(candidates, legacyRef)
	}
	return candidates
}

// deriveCandidates builds the conventional triple from the reference's base
// filename. A reference with no usable base name still yields the region's
// svg fallback so the list is never empty.
func deriveCandidates(region Region, legacyRef string) []string {
	dir := regionDirs[region]
	base := strings.TrimSuffix(path.Base(legacyRef), path.Ext(legacyRef))
	if base == "" || base == "." || base == "/" {
		return []string{imageRoot + "/" + dir + "/svg/untitled.svg"}
	}
	return []string{
		imageRoot + "/" + dir + "/webp/" + base + ".webp",
		imageRoot + "/" + dir + "/jpg/" + base + ".jpg",
		imageRoot + "/" + dir + "/svg/" + base + ".svg",
	}
}

// IsDirectImageURL reports whether a legacy reference points straight at an
// image file rather than a hosting page.
func IsDirectImageURL(ref string) bool {
	if !strings.HasPrefix(ref, "http://") && !strings.HasPrefix(ref, "https://") {
		return false
	}
	ext := strings.ToLower(path.Ext(ref))
	if i := strings.IndexAny(ext, "?#"); i != -1 {
		ext = ext[:i]
	}
	switch ext {
	case ".webp", ".jpg", ".jpeg", ".png", ".gif", ".avif", ".svg":
		return true
	}
	return false
}
