package transforms

import (
	"github.com/lumenworks/imageproc/pixel"
)

// Noise-reduction parameters. The operation exists to be CPU-bound and
// reproducible, so the kernel is applied literally rather than as a
// separable or sliding-window shortcut.
const (
	noisePasses     = 3
	noiseKernelSize = 3
	noisePad        = noiseKernelSize / 2
)

// NoiseReduce runs the iterative box-filter smoothing pass over the buffer:
// exactly 3 rounds of 3x3 mean filtering in float32, then a single
// clamp-and-truncate back to uint8.
//
// Each pass pads its input by one sample per side with edge replication and
// writes into a fresh accumulator, so no pass ever reads a value it wrote
// itself. On a uniform buffer the neighborhood mean equals the constant and
// the whole operation is the identity.
//
// Output dimensions and channel count equal the input's.
func NoiseReduce(src *pixel.Buffer) (*pixel.Buffer, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}

	cur := pixel.FromBuffer(src)
	for pass := 0; pass < noisePasses; pass++ {
		cur = boxFilterPass(cur)
	}
	return cur.Buffer(), nil
}

// boxFilterPass computes one full box-filter pass: every output sample is
// the arithmetic mean of the 3x3 spatial neighborhood in the padded input,
// taken independently per channel.
func boxFilterPass(in *pixel.Float) *pixel.Float {
	padded := in.PadEdge(noisePad)
	out := pixel.NewFloat(in.Width, in.Height, in.Channels)
	channels := in.Channels

	pixel.Parallel(in.Height, func(partStart, partEnd int) {
		acc := make([]float32, channels)

		for y := partStart; y < partEnd; y++ {
			for x := 0; x < in.Width; x++ {
				for c := range acc {
					acc[c] = 0
				}

				// (x, y) in output space is (x+pad, y+pad) in the padded
				// buffer, so the footprint starts at (x, y) there.
				for ky := 0; ky < noiseKernelSize; ky++ {
					row := padded.Offset(x, y+ky)
					for kx := 0; kx < noiseKernelSize; kx++ {
						off := row + kx*channels
						for c := 0; c < channels; c++ {
							acc[c] += padded.Pix[off+c]
						}
					}
				}

				dst := out.Offset(x, y)
				for c := 0; c < channels; c++ {
					out.Pix[dst+c] = acc[c] / (noiseKernelSize * noiseKernelSize)
				}
			}
		}
	})

	return out
}
