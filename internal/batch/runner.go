package batch

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"

	"github.com/ironsheep/huey/internal/imaging"
	"github.com/ironsheep/huey/internal/layout"
)

// Output describes one written variant.
type Output struct {
	Source   string `json:"source"`
	Variant  string `json:"variant"`
	Path     string `json:"path"`
	Dominant string `json:"dominant,omitempty"`
}

// Skipped describes a source that could not be processed.
type Skipped struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Report summarizes a batch run.
type Report struct {
	Layout  string    `json:"layout"`
	Sources int       `json:"sources"`
	Outputs []Output  `json:"outputs"`
	Skipped []Skipped `json:"skipped,omitempty"`
}

// Variants returns the number of variants written.
func (r *Report) Variants() int {
	return len(r.Outputs)
}

// DefaultCompanions returns the prefab files that sit next to a garment
// texture in a Unity item folder and belong in every variant folder.
func DefaultCompanions() []string {
	return []string{
		"Animations.prefab",
		"Character_Mesh_3P_Override_0.prefab",
		"Item.prefab",
	}
}

// Runner generates every palette variant of every source under an input
// folder.
//
// Sources are processed one at a time, one palette entry at a time. A source
// or overlay that cannot be decoded is logged and recorded in
// Report.Skipped; the run continues. A failure to write output aborts the
// run.
type Runner struct {
	// Layout selects sources and output paths. Required.
	Layout layout.Layout

	// Palette is applied to every source. Required.
	Palette imaging.Palette

	// Sink receives the variants. Required.
	Sink Sink

	// Cache decodes overlays once per folder. A fresh cache is created
	// when nil.
	Cache *imaging.ImageCache

	// Companions are file names copied from a source's folder into each of
	// its variant folders when present. Only used by layouts with
	// per-variant folders.
	Companions []string

	// Describe records each variant's dominant color in the report.
	Describe bool

	// Verbose enables debug logging.
	Verbose bool
}

// Run processes every source found under input.
//
// The returned report is non-nil whenever discovery succeeded, including
// when a write error aborted the run part way.
func (r *Runner) Run(input string) (*Report, error) {
	if r.Layout == nil || r.Sink == nil {
		return nil, fmt.Errorf("runner needs a layout and a sink")
	}
	if r.Cache == nil {
		r.Cache = imaging.NewImageCache()
	}

	sources, err := layout.Discover(input, r.Layout)
	if err != nil {
		return nil, err
	}
	if r.Verbose {
		log.Printf("Found %d sources in %s (%s layout)", len(sources), input, r.Layout.Name())
	}
	if len(r.Companions) > 0 && !r.Layout.PerVariantDir() {
		log.Printf("Ignoring companion files: %s layout has no per-variant folders", r.Layout.Name())
	}

	report := &Report{Layout: r.Layout.Name(), Outputs: []Output{}}
	for _, src := range sources {
		if err := r.runSource(src, report); err != nil {
			return report, fmt.Errorf("%s: %w", src.Path, err)
		}
	}
	return report, nil
}

func (r *Runner) runSource(src layout.Source, report *Report) error {
	img, err := imaging.Open(src.Path)
	if err != nil {
		r.skip(report, src.Path, err)
		return nil
	}

	var overlay image.Image
	if src.OverlayPath != "" {
		overlay, err = r.Cache.Load(src.OverlayPath)
		if err != nil {
			r.skip(report, src.Path, fmt.Errorf("overlay: %w", err))
			return nil
		}
		if overlay.Bounds().Size() != img.Bounds().Size() {
			log.Printf("Warning: overlay %s is %v, source %s is %v; compositing the overlap only",
				src.OverlayPath, overlay.Bounds().Size(), src.Path, img.Bounds().Size())
		}
	}

	report.Sources++
	companions := r.companionsFor(src)

	return imaging.EachVariant(img, overlay, r.Palette, func(v imaging.Variant) error {
		name := r.Layout.VariantName(v.Adjustment)
		rel := r.Layout.Destination(src, name)
		if err := r.Sink.WriteImage(rel, v.Image); err != nil {
			return err
		}

		out := Output{Source: src.Path, Variant: name, Path: r.Sink.Location(rel)}
		if r.Describe {
			out.Dominant = imaging.DominantHex(v.Image)
		}
		report.Outputs = append(report.Outputs, out)
		log.Printf("Generated: %s", out.Path)

		for _, c := range companions {
			dst := filepath.Join(filepath.Dir(rel), filepath.Base(c))
			if err := r.Sink.CopyFile(dst, c); err != nil {
				return err
			}
			if r.Verbose {
				log.Printf("Copied: %s", r.Sink.Location(dst))
			}
		}
		return nil
	})
}

// companionsFor returns the paths of the companion files present next to src.
func (r *Runner) companionsFor(src layout.Source) []string {
	if len(r.Companions) == 0 || !r.Layout.PerVariantDir() {
		return nil
	}

	var found []string
	for _, name := range r.Companions {
		p := filepath.Join(src.Dir(), name)
		if info, err := os.Stat(p); err != nil || info.IsDir() {
			if r.Verbose {
				log.Printf("No companion %s next to %s", name, src.Path)
			}
			continue
		}
		found = append(found, p)
	}
	return found
}

func (r *Runner) skip(report *Report, path string, err error) {
	log.Printf("Skipping %s: %v", path, err)
	report.Skipped = append(report.Skipped, Skipped{Path: path, Reason: err.Error()})
}
