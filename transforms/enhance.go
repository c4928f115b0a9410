package transforms

import (
	"github.com/lumenworks/imageproc/kernels"
	"github.com/lumenworks/imageproc/pixel"
)

// EnhanceOptions holds the interpolation factors of the three enhancement
// steps. A factor of 1.0 makes its step the identity; the production
// defaults push saturation, contrast, and sharpness up in that order.
type EnhanceOptions struct {
	// Saturation scales each pixel away from its own desaturated value.
	Saturation float32
	// Contrast scales each pixel away from the whole-image mean luminance.
	Contrast float32
	// Sharpness scales each pixel away from a low-pass copy of the image
	// (unsharp mask).
	Sharpness float32
}

// DefaultEnhanceOptions are the factors the enhance operation ships with.
func DefaultEnhanceOptions() EnhanceOptions {
	return EnhanceOptions{Saturation: 1.5, Contrast: 1.3, Sharpness: 1.2}
}

// Enhance applies the default saturation/contrast/sharpness chain.
func Enhance(src *pixel.Buffer) (*pixel.Buffer, error) {
	return EnhanceWith(src, DefaultEnhanceOptions())
}

// EnhanceWith applies the three enhancement steps in their fixed order, each
// consuming the output of the previous one.
//
// Every step is a linear interpolation out = base + factor*(in - base) with a
// step-specific base:
//  1. Saturation: base is the pixel's own luminance (its gray equivalent),
//     broadcast to all channels.
//  2. Contrast: base is the mean luminance of the entire step-1 image, a
//     single scalar.
//  3. Sharpness: base is a 3x3 low-pass copy of the step-2 image, making the
//     step an unsharp mask.
//
// Arithmetic is float32; each step clamps to [0, 255] and rounds to nearest
// before handing its buffer to the next.
func EnhanceWith(src *pixel.Buffer, opt EnhanceOptions) (*pixel.Buffer, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}

	out := saturate(src, opt.Saturation)
	out = contrast(out, opt.Contrast)
	out = sharpness(out, opt.Sharpness)
	return out, nil
}

// saturate interpolates each channel against the pixel's own gray value.
// Single-channel buffers are their own gray equivalent, so the step reduces
// to a copy.
func saturate(src *pixel.Buffer, factor float32) *pixel.Buffer {
	if src.Channels == pixel.GrayChannels {
		return src.Clone()
	}

	dst := pixel.New(src.Width, src.Height, src.Channels)
	pixel.Parallel(src.Height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			for x := 0; x < src.Width; x++ {
				off := src.Offset(x, y)
				r := float32(src.Pix[off])
				g := float32(src.Pix[off+1])
				b := float32(src.Pix[off+2])
				gray := luminance(r, g, b)
				dst.Pix[off] = pixel.RoundSample(gray + factor*(r-gray))
				dst.Pix[off+1] = pixel.RoundSample(gray + factor*(g-gray))
				dst.Pix[off+2] = pixel.RoundSample(gray + factor*(b-gray))
			}
		}
	})
	return dst
}

// contrast interpolates every sample against the mean luminance of the whole
// image, computed once and broadcast as a scalar.
func contrast(src *pixel.Buffer, factor float32) *pixel.Buffer {
	mean := meanLuminance(src)

	dst := pixel.New(src.Width, src.Height, src.Channels)
	pixel.Parallel(src.Height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			rowStart := src.Offset(0, y)
			rowEnd := src.Offset(0, y+1)
			for i := rowStart; i < rowEnd; i++ {
				dst.Pix[i] = pixel.RoundSample(mean + factor*(float32(src.Pix[i])-mean))
			}
		}
	})
	return dst
}

// sharpness interpolates every sample against a low-pass copy of the image,
// amplifying the difference between the image and its own blur.
func sharpness(src *pixel.Buffer, factor float32) *pixel.Buffer {
	blurred := kernels.Apply(src, kernels.Smooth())

	dst := pixel.New(src.Width, src.Height, src.Channels)
	pixel.Parallel(src.Height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			rowStart := src.Offset(0, y)
			rowEnd := src.Offset(0, y+1)
			for i := rowStart; i < rowEnd; i++ {
				base := float32(blurred.Pix[i])
				dst.Pix[i] = pixel.RoundSample(base + factor*(float32(src.Pix[i])-base))
			}
		}
	})
	return dst
}

// meanLuminance returns the average luma over every pixel of the buffer as a
// single float32 scalar. Accumulation is float64 to keep the mean stable on
// large images; the broadcast value is float32 like the rest of the math.
func meanLuminance(src *pixel.Buffer) float32 {
	var sum float64
	if src.Channels == pixel.GrayChannels {
		for _, v := range src.Pix {
			sum += float64(v)
		}
		return float32(sum / float64(len(src.Pix)))
	}
	for i := 0; i < len(src.Pix); i += src.Channels {
		sum += float64(luminance(
			float32(src.Pix[i]),
			float32(src.Pix[i+1]),
			float32(src.Pix[i+2]),
		))
	}
	return float32(sum / float64(src.Width*src.Height))
}
