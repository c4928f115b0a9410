package kernels

import (
	"github.com/lumenworks/imageproc/pixel"
)

// Apply convolves src with k and returns a fresh buffer of the same width,
// height, and channel count. The source is never written.
//
// Semantics, fixed for reproducibility:
//   - Out-of-bounds reads take the nearest in-bounds edge sample,
//     independently per axis (edge replication).
//   - Channels never mix: each output sample is the weighted sum over the
//     corresponding channel plane only.
//   - The footprint is summed in float32 in row-major kernel order, divided
//     by the divisor once, then clamped to [0, 255] and rounded to nearest.
//
// Rows are fanned out across goroutines; each row writes a disjoint slice of
// the output and the per-pixel summation order is fixed, so the result is
// bit-identical to serial execution.
func Apply(src *pixel.Buffer, k Kernel) *pixel.Buffer {
	dst := pixel.New(src.Width, src.Height, src.Channels)
	radius := k.Radius()
	size := k.Size()
	channels := src.Channels

	pixel.Parallel(src.Height, func(partStart, partEnd int) {
		// One accumulator per channel, reused across pixels in the row.
		acc := make([]float32, channels)

		for y := partStart; y < partEnd; y++ {
			for x := 0; x < src.Width; x++ {
				for c := range acc {
					acc[c] = 0
				}

				for ky := 0; ky < size; ky++ {
					srcY := pixel.ClampEdge(y+ky-radius, src.Height)
					for kx := 0; kx < size; kx++ {
						srcX := pixel.ClampEdge(x+kx-radius, src.Width)
						w := k.Weight(kx, ky)
						off := src.Offset(srcX, srcY)
						for c := 0; c < channels; c++ {
							acc[c] += float32(src.Pix[off+c]) * w
						}
					}
				}

				out := dst.Offset(x, y)
				for c := 0; c < channels; c++ {
					dst.Pix[out+c] = pixel.RoundSample(acc[c] / k.Divisor())
				}
			}
		}
	})

	return dst
}
