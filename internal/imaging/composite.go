package imaging

import (
	"image"
	"image/color"
)

// CompositeOver draws overlay on top of dst in place using straight-alpha
// Porter-Duff "over", computed in fixed point.
//
// The overlay is anchored at the top-left corner of dst. When the sizes
// differ only the intersection is composited. A pixel whose resulting alpha
// is zero keeps its original value, so transparent regions of the
// transformed image keep their RGB when the overlay is transparent there too.
func CompositeOver(dst *image.NRGBA, overlay image.Image) {
	ob := overlay.Bounds()
	w := min(dst.Rect.Dx(), ob.Dx())
	h := min(dst.Rect.Dy(), ob.Dy())

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			fg := color.NRGBAModel.Convert(overlay.At(ob.Min.X+x, ob.Min.Y+y)).(color.NRGBA)
			if fg.A == 0 {
				continue
			}

			i := dst.PixOffset(dst.Rect.Min.X+x, dst.Rect.Min.Y+y)
			blendOver(dst.Pix[i:i+4:i+4], fg)
		}
	}
}

// precisionBits is the fixed-point precision of the blend coefficients.
const precisionBits = 7

// blendOver composites fg onto the pixel d with the same integer arithmetic
// as Pillow's alpha_composite, so results match it bit for bit.
func blendOver(d []uint8, fg color.NRGBA) {
	sa := uint32(fg.A)
	blend := uint32(d[3]) * (255 - sa)
	outA255 := sa*255 + blend

	coef1 := sa * 255 * 255 * (1 << precisionBits) / outA255
	coef2 := 255*(1<<precisionBits) - coef1

	d[0] = blendChannel(fg.R, d[0], coef1, coef2)
	d[1] = blendChannel(fg.G, d[1], coef1, coef2)
	d[2] = blendChannel(fg.B, d[2], coef1, coef2)
	d[3] = uint8(div255(outA255 + 0x80))
}

func blendChannel(fg, bg uint8, coef1, coef2 uint32) uint8 {
	v := uint32(fg)*coef1 + uint32(bg)*coef2
	return uint8(div255(v+(0x80<<precisionBits)) >> precisionBits)
}

// div255 divides a rounded-up value by 255 using shifts.
func div255(v uint32) uint32 {
	return ((v >> 8) + v) >> 8
}
