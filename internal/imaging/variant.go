package imaging

import (
	"fmt"
	"image"
)

// Variant is one recolored version of a source image.
type Variant struct {
	Adjustment ColorAdjustment
	Image      *image.NRGBA
}

// Name returns the name of the adjustment that produced this variant.
func (v Variant) Name() string {
	return v.Adjustment.Name
}

// Variants is the full set of variants for one source, in palette order.
type Variants []Variant

// Lookup returns the variant produced by the named adjustment.
func (vs Variants) Lookup(name string) (Variant, bool) {
	for _, v := range vs {
		if v.Adjustment.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// EachVariant recolors src once per palette entry and hands every result to
// fn, in palette order.
//
// Every entry starts from the untouched source. When overlay is non-nil it is
// composited over each transformed image with CompositeOver. Iteration stops
// at the first error returned by fn, which is wrapped with the adjustment
// name.
func EachVariant(src, overlay image.Image, p Palette, fn func(Variant) error) error {
	for _, adj := range p {
		img := adj.Apply(src)
		if overlay != nil {
			CompositeOver(img, overlay)
		}
		if err := fn(Variant{Adjustment: adj, Image: img}); err != nil {
			return fmt.Errorf("variant %s: %w", adj.Name, err)
		}
	}
	return nil
}

// GenerateVariants returns every palette variant of src at once.
//
// Prefer EachVariant for large palettes or images, since this holds all
// results in memory.
func GenerateVariants(src, overlay image.Image, p Palette) Variants {
	out := make(Variants, 0, len(p))
	_ = EachVariant(src, overlay, p, func(v Variant) error {
		out = append(out, v)
		return nil
	})
	return out
}
