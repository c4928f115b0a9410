// Package transforms - the named image operations the service exposes.
//
// Every transform is a pure function from one pixel.Buffer to a freshly
// allocated one: inputs are never mutated, outputs are never aliased, and a
// failed transform produces no partial output. The Registry maps the fixed
// set of operation names onto these functions.
package transforms

import (
	"github.com/lumenworks/imageproc/pixel"
)

// Luma weights for RGB to grayscale reduction (ITU-R BT.601). These are the
// coefficients the original conversion used; changing them changes the
// output of both Grayscale and the saturation/contrast bases of Enhance.
const (
	lumaRed   = 0.299
	lumaGreen = 0.587
	lumaBlue  = 0.114
)

// luminance returns the BT.601 luma of an RGB triple in float32.
func luminance(r, g, b float32) float32 {
	return lumaRed*r + lumaGreen*g + lumaBlue*b
}

// Grayscale reduces a 3-channel buffer to a single luminance channel using
// the BT.601 weights, rounding to nearest and clamping to [0, 255].
//
// A buffer that is already single-channel is returned as an unchanged copy,
// so the operation is idempotent.
func Grayscale(src *pixel.Buffer) (*pixel.Buffer, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if src.Channels == pixel.GrayChannels {
		return src.Clone(), nil
	}

	dst := pixel.New(src.Width, src.Height, pixel.GrayChannels)
	pixel.Parallel(src.Height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			for x := 0; x < src.Width; x++ {
				off := src.Offset(x, y)
				luma := luminance(
					float32(src.Pix[off]),
					float32(src.Pix[off+1]),
					float32(src.Pix[off+2]),
				)
				dst.Pix[y*dst.Width+x] = pixel.RoundSample(luma)
			}
		}
	})
	return dst, nil
}
