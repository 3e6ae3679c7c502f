package layout

import (
	"path/filepath"
	"strings"
)

// Kind is the garment category of a source image.
type Kind int

const (
	// Skip marks a file that is not a garment source.
	Skip Kind = iota
	// Shirt marks a source under a "Shirts" category folder.
	Shirt
	// Pants marks a source under a "Pants" category folder.
	Pants
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Shirt:
		return "shirt"
	case Pants:
		return "pants"
	default:
		return "skip"
	}
}

// FileName returns the file name every variant of this kind is written as.
// It returns "" for Skip.
func (k Kind) FileName() string {
	switch k {
	case Shirt:
		return "Shirt.png"
	case Pants:
		return "Pants.png"
	default:
		return ""
	}
}

// OverlayName is the file name of the per-folder overlay image.
const OverlayName = "overlay.png"

// Path is a file path split into the parts classification looks at.
type Path struct {
	Category string // folder above the item folder, e.g. "Shirts"
	Item     string // folder holding the file
	Base     string // file name without extension
	Ext      string // extension including the dot
}

// SplitPath decomposes a file path. Missing ancestors are left empty.
func SplitPath(path string) Path {
	path = filepath.Clean(path)
	name := filepath.Base(path)
	ext := filepath.Ext(name)

	p := Path{Base: strings.TrimSuffix(name, ext), Ext: ext}

	dir := filepath.Dir(path)
	if dir == "." || dir == string(filepath.Separator) {
		return p
	}
	p.Item = filepath.Base(dir)

	parent := filepath.Dir(dir)
	if parent == "." || parent == string(filepath.Separator) {
		return p
	}
	p.Category = filepath.Base(parent)
	return p
}

// Classify decides the garment kind of a decomposed source path.
//
// Only the exact category names "Shirts" and "Pants" match. Files whose base
// name is "overlay" in any case are reserved for the overlay role and are
// always Skip.
func Classify(p Path) Kind {
	if IsOverlay(p.Base) {
		return Skip
	}
	switch p.Category {
	case "Shirts":
		return Shirt
	case "Pants":
		return Pants
	default:
		return Skip
	}
}

// IsOverlay reports whether a base name (file name without extension) is
// reserved for the overlay role. The comparison ignores case.
func IsOverlay(base string) bool {
	return strings.EqualFold(base, "overlay")
}

// isPNG reports whether the extension names a PNG file, ignoring case.
func isPNG(ext string) bool {
	return strings.EqualFold(ext, ".png")
}
