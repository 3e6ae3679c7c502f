package layout

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ironsheep/huey/internal/imaging"
)

// Source is a discovered source image and everything needed to place its
// variants.
type Source struct {
	// Path is the path of the source image as found during discovery.
	Path string `json:"path"`

	// OverlayPath is the overlay.png next to the source, or "" if none.
	OverlayPath string `json:"overlay_path,omitempty"`

	// Parts is Path decomposed for naming.
	Parts Path `json:"-"`

	// Kind is the garment kind. Always Skip for layouts that do not
	// classify.
	Kind Kind `json:"-"`
}

// Dir returns the folder holding the source image.
func (s Source) Dir() string {
	return filepath.Dir(s.Path)
}

// Layout decides which files are sources and where their variants go.
//
// The batch runner is written against this interface so the naming and
// output conventions can change without touching generation.
type Layout interface {
	// Name identifies the layout ("tree", "flat").
	Name() string

	// Recursive reports whether discovery descends into subfolders.
	Recursive() bool

	// Accept decides whether the PNG at path is a source image.
	Accept(path string) (Source, bool)

	// VariantName returns the name used for adj in output paths.
	VariantName(adj imaging.ColorAdjustment) string

	// Destination returns the output path of a variant, relative to the
	// output root.
	Destination(src Source, variant string) string

	// PerVariantDir reports whether every variant gets its own output
	// folder, which is where companion files are copied.
	PerVariantDir() bool
}

// Tree mirrors <Category>/<Item>/<base>.png sources into
// <Category>/<Item>/<base>_<Variant>/<Shirt|Pants>.png.
type Tree struct{}

// Name implements Layout.
func (Tree) Name() string { return "tree" }

// Recursive implements Layout.
func (Tree) Recursive() bool { return true }

// Accept implements Layout. Only sources under a Shirts or Pants category
// folder are accepted.
func (Tree) Accept(path string) (Source, bool) {
	parts := SplitPath(path)
	kind := Classify(parts)
	if kind == Skip {
		return Source{}, false
	}
	return Source{Path: path, Parts: parts, Kind: kind}, true
}

// VariantName implements Layout. Palette names are used as-is.
func (Tree) VariantName(adj imaging.ColorAdjustment) string {
	return adj.Name
}

// Destination implements Layout.
func (Tree) Destination(src Source, variant string) string {
	return filepath.Join(
		src.Parts.Category,
		src.Parts.Item,
		src.Parts.Base+"_"+variant,
		src.Kind.FileName(),
	)
}

// PerVariantDir implements Layout.
func (Tree) PerVariantDir() bool { return true }

// Flat reads PNGs from the top level of the input folder only and writes
// <base>_<variant>.png files side by side, with lowercase variant names.
type Flat struct{}

// Name implements Layout.
func (Flat) Name() string { return "flat" }

// Recursive implements Layout.
func (Flat) Recursive() bool { return false }

// Accept implements Layout. Every PNG except an overlay is a source.
func (Flat) Accept(path string) (Source, bool) {
	parts := SplitPath(path)
	if IsOverlay(parts.Base) {
		return Source{}, false
	}
	return Source{Path: path, Parts: parts}, true
}

// VariantName implements Layout.
func (Flat) VariantName(adj imaging.ColorAdjustment) string {
	return strings.ToLower(adj.Name)
}

// Destination implements Layout.
func (Flat) Destination(src Source, variant string) string {
	return src.Parts.Base + "_" + variant + ".png"
}

// PerVariantDir implements Layout.
func (Flat) PerVariantDir() bool { return false }

// ByName returns the layout called name.
func ByName(name string) (Layout, error) {
	switch strings.ToLower(name) {
	case "", "tree":
		return Tree{}, nil
	case "flat":
		return Flat{}, nil
	default:
		return nil, fmt.Errorf("unknown layout: %s (want tree or flat)", name)
	}
}
