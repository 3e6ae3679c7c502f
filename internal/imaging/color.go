package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// RGBAColor represents an RGBA color with 8-bit straight (non-premultiplied)
// components.
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// HSLColor represents a color in HSL using the same units as ColorAdjustment,
// so a sampled variant pixel can be compared against the palette entry that
// produced it.
type HSLColor struct {
	H float64 `json:"h"` // Hue: 0-360 degrees
	S float64 `json:"s"` // Saturation: 0-1
	L float64 `json:"l"` // Lightness: 0-1
}

// ColorResult contains a sampled color in several representations.
type ColorResult struct {
	Hex  string    `json:"hex"`  // Hex format "#RRGGBB" (no alpha)
	RGBA RGBAColor `json:"rgba"` // RGBA components with alpha
	HSL  HSLColor  `json:"hsl"`  // HSL representation
}

// SampleColor extracts the color value at a specific pixel coordinate.
//
// Coordinates are 0-based from the image's top-left corner. Returns an error
// if (x, y) lies outside the image bounds.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	px, py := bounds.Min.X+x, bounds.Min.Y+y
	if x < 0 || y < 0 || px >= bounds.Max.X || py >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	c := color.NRGBAModel.Convert(img.At(px, py)).(color.NRGBA)

	return &ColorResult{
		Hex:  fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B),
		RGBA: RGBAColor{R: c.R, G: c.G, B: c.B, A: c.A},
		HSL:  rgbToHSL(c.R, c.G, c.B),
	}, nil
}

// rgbToHSL converts 8-bit RGB values to HSL.
func rgbToHSL(r, g, b uint8) HSLColor {
	h, s, l := colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}.Hsl()
	return HSLColor{H: h, S: s, L: l}
}

// ColorFrequency represents a color and its share of an image.
type ColorFrequency struct {
	Hex        string  `json:"hex"`        // Hex color "#RRGGBB"
	Percentage float64 `json:"percentage"` // Share of the clustered pixels (0-100)
}

// DominantColorsResult contains the most prominent colors of an image,
// sorted by weight in descending order.
type DominantColorsResult struct {
	Method string           `json:"method"`
	Colors []ColorFrequency `json:"colors"`
}

// Clustering methods accepted by DominantColorsBy.
const (
	// MethodDominantColor clusters with dominantcolor. It looks at every
	// pixel, transparent ones included.
	MethodDominantColor = "dominantcolor"

	// MethodKMeans clusters the visible pixels only, which suits sprites on
	// a transparent background.
	MethodKMeans = "kmeans"
)

// maxKMeansSamples caps the pixels fed to k-means; larger images are
// subsampled on a regular grid.
const maxKMeansSamples = 12000

// DominantColors clusters the image's pixels with MethodDominantColor and
// returns up to count colors.
func DominantColors(img image.Image, count int) (*DominantColorsResult, error) {
	return DominantColorsBy(img, count, MethodDominantColor)
}

// DominantColorsBy clusters the image's pixels with the named method and
// returns up to count colors. An empty method means MethodDominantColor.
//
// Fewer than count colors are returned when the image has fewer distinct
// clusters. Returns an error when count is not positive or the method is
// unknown.
func DominantColorsBy(img image.Image, count int, method string) (*DominantColorsResult, error) {
	if count <= 0 {
		return nil, fmt.Errorf("count must be positive, got %d", count)
	}

	var colors []ColorFrequency
	var err error
	switch method {
	case "", MethodDominantColor:
		method = MethodDominantColor
		colors = dominantColorFrequencies(img, count)
	case MethodKMeans:
		colors, err = kmeansFrequencies(img, count)
	default:
		return nil, fmt.Errorf("unknown method: %s (want %s or %s)", method, MethodDominantColor, MethodKMeans)
	}
	if err != nil {
		return nil, err
	}

	return &DominantColorsResult{Method: method, Colors: colors}, nil
}

func dominantColorFrequencies(img image.Image, count int) []ColorFrequency {
	found := dominantcolor.FindWeight(img, count)
	colors := make([]ColorFrequency, 0, len(found))
	for _, c := range found {
		colors = append(colors, ColorFrequency{
			Hex:        hexRGB(c.RGBA),
			Percentage: math.Round(c.Weight*1000) / 10,
		})
	}
	return colors
}

func kmeansFrequencies(img image.Image, count int) ([]ColorFrequency, error) {
	b := img.Bounds()
	step := 1
	if n := b.Dx() * b.Dy(); n > maxKMeansSamples {
		step = int(math.Sqrt(float64(n)/maxKMeansSamples)) + 1
	}

	var dataset clusters.Observations
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(c.R) / 255.0,
				float64(c.G) / 255.0,
				float64(c.B) / 255.0,
			})
		}
	}
	colors := []ColorFrequency{}
	if len(dataset) == 0 {
		return colors, nil
	}

	cc, err := kmeans.New().Partition(dataset, min(count, len(dataset)))
	if err != nil {
		return nil, fmt.Errorf("kmeans: %w", err)
	}

	// Most populated clusters first.
	slices.SortStableFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		share := float64(len(c.Observations)) / float64(len(dataset))
		colors = append(colors, ColorFrequency{
			Hex: hexRGB(color.RGBA{
				R: uint8(math.Round(clamp01(c.Center[0]) * 255)),
				G: uint8(math.Round(clamp01(c.Center[1]) * 255)),
				B: uint8(math.Round(clamp01(c.Center[2]) * 255)),
				A: 255,
			}),
			Percentage: math.Round(share*1000) / 10,
		})
	}
	return colors, nil
}

// DominantHex returns the single most prominent color of img as "#RRGGBB".
func DominantHex(img image.Image) string {
	return hexRGB(dominantcolor.Find(img))
}

func hexRGB(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
