package imaging

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// Transform recolors an image by replacing hue and saturation and scaling
// lightness.
//
// Parameters:
//   - src: Source image of any color model. It is never modified.
//   - hueDegrees: Target hue in degrees. Wrapped into [0,360), negative
//     values included.
//   - saturation: Target saturation in [0,1]. Not validated.
//   - brightnessPercent: Lightness scale in percent; the new lightness is
//     oldL * (1 + brightnessPercent/100), clamped to [0,1].
//
// Returns a new *image.NRGBA with the same dimensions as src and its origin
// at (0,0).
//
// # Algorithm
//
// For every pixel:
//
//  1. Fully transparent pixels (alpha 0) are copied unchanged, RGB included.
//  2. RGB is converted to HSL and only the lightness is kept. The source hue
//     and saturation are replaced outright, not rotated or blended.
//  3. The new color is converted back to RGB and each channel is scaled to
//     0-255 by truncation, not rounding.
//  4. Alpha is copied unchanged.
func Transform(src image.Image, hueDegrees, saturation float64, brightnessPercent int) *image.NRGBA {
	dst := imaging.Clone(src)

	hue := wrapHue(hueDegrees) * 360
	scale := 1 + float64(brightnessPercent)/100

	for y := 0; y < dst.Rect.Dy(); y++ {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+dst.Rect.Dx()*4]
		for i := 0; i < len(row); i += 4 {
			px := row[i : i+4 : i+4]
			if px[3] == 0 {
				continue
			}

			c := colorful.Color{
				R: float64(px[0]) / 255.0,
				G: float64(px[1]) / 255.0,
				B: float64(px[2]) / 255.0,
			}
			_, _, l := c.Hsl()
			l = clamp01(l * scale)

			out := colorful.Hsl(hue, saturation, l)
			px[0] = truncate255(out.R)
			px[1] = truncate255(out.G)
			px[2] = truncate255(out.B)
		}
	}

	return dst
}

// Apply recolors src with this adjustment. See Transform.
func (a ColorAdjustment) Apply(src image.Image) *image.NRGBA {
	return Transform(src, a.Hue, a.Saturation, a.Brightness)
}

// wrapHue maps degrees onto a hue fraction in [0,1).
func wrapHue(degrees float64) float64 {
	h := math.Mod(degrees/360.0, 1.0)
	if h < 0 {
		h += 1.0
	}
	if h >= 1.0 {
		h = 0
	}
	return h
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// truncate255 scales a [0,1] channel to 8 bits, dropping the fraction.
func truncate255(v float64) uint8 {
	return uint8(clamp01(v) * 255)
}
