// Package kernels - convolution kernels and the engine that applies them.
//
// A Kernel is a small square weight matrix with an explicit divisor. The
// engine slides it over a pixel buffer one channel plane at a time, reading
// out-of-bounds samples by edge replication. All of the named filters the
// service exposes (blur, sharpen, edge detection, the smoothing base of the
// enhancement pass) are just kernels handed to the same Apply loop.
package kernels

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

// Kernel is an immutable square convolution kernel. The anchor is always the
// geometric center (Size/2, Size/2). Weights are stored flat, row-major.
type Kernel struct {
	size    int
	weights []float32
	divisor float32
}

// New builds a kernel from a flat row-major weight matrix.
//
// Arguments:
// - size: Matrix side length, must be odd and positive.
// - weights: Exactly size*size values, row-major.
// - divisor: Normalization applied after the weighted sum. Must be non-zero;
//   pass 1 for kernels whose weights are already normalized.
//
// Returns:
// - The kernel, or an error for an even/empty size, a weight count mismatch,
//   or a zero divisor.
func New(size int, weights []float32, divisor float32) (Kernel, error) {
	if size <= 0 || size%2 == 0 {
		return Kernel{}, errors.Errorf("kernels: size must be odd and positive, got %d", size)
	}
	if len(weights) != size*size {
		return Kernel{}, errors.Errorf("kernels: got %d weights, want %d", len(weights), size*size)
	}
	if divisor == 0 {
		return Kernel{}, errors.New("kernels: divisor must be non-zero")
	}
	w := make([]float32, len(weights))
	copy(w, weights)
	return Kernel{size: size, weights: w, divisor: divisor}, nil
}

// MustNew is New for compile-time-constant kernels; it panics on invalid
// input.
func MustNew(size int, weights []float32, divisor float32) Kernel {
	k, err := New(size, weights, divisor)
	if err != nil {
		panic(err)
	}
	return k
}

// Size returns the side length of the kernel.
func (k Kernel) Size() int { return k.size }

// Radius returns the anchor offset, Size/2.
func (k Kernel) Radius() int { return k.size / 2 }

// Weight returns the weight at kernel row ky, column kx.
func (k Kernel) Weight(kx, ky int) float32 { return k.weights[ky*k.size+kx] }

// Divisor returns the normalization divisor.
func (k Kernel) Divisor() float32 { return k.divisor }

// Gaussian builds a 2D Gaussian kernel of side 2*radius+1 whose weights sum
// to 1 (divisor 1). Sigma is derived from the radius as radius/2, clamped
// away from zero, which tracks how the original blur scaled its falloff with
// the requested radius.
//
// Arguments:
// - radius: Kernel radius; the blur operation uses 5.
//
// Returns:
// - A normalized Gaussian kernel.
func Gaussian(radius int) Kernel {
	if radius < 1 {
		radius = 1
	}
	size := 2*radius + 1
	sigma := float32(radius) / 2
	if sigma < 0.5 {
		sigma = 0.5
	}
	denom := 2 * sigma * sigma

	weights := make([]float32, size*size)
	var sum float32
	for ky := 0; ky < size; ky++ {
		dy := float32(ky - radius)
		for kx := 0; kx < size; kx++ {
			dx := float32(kx - radius)
			w := math32.Exp(-(dx*dx + dy*dy) / denom)
			weights[ky*size+kx] = w
			sum += w
		}
	}
	// Normalize to unit sum so the blur preserves brightness.
	for i := range weights {
		weights[i] /= sum
	}
	return Kernel{size: size, weights: weights, divisor: 1}
}

// Identity returns the kernel that reproduces its input exactly: 1 at the
// center, 0 elsewhere, divisor 1. Used to validate the padding and weighting
// machinery.
func Identity(size int) Kernel {
	weights := make([]float32, size*size)
	weights[(size/2)*size+(size/2)] = 1
	return Kernel{size: size, weights: weights, divisor: 1}
}

// Sharpen returns the fixed 3x3 sharpening kernel: strong center, negative
// four-neighbors, divisor 1.
func Sharpen() Kernel {
	return MustNew(3, []float32{
		0, -1, 0,
		-1, 5, -1,
		0, -1, 0,
	}, 1)
}

// EdgeDetect returns the fixed 3x3 high-pass kernel. Its weights sum to
// zero, so uniform regions map to black and only gradients survive.
func EdgeDetect() Kernel {
	return MustNew(3, []float32{
		-1, -1, -1,
		-1, 8, -1,
		-1, -1, -1,
	}, 1)
}

// Smooth returns the fixed 3x3 low-pass kernel used as the blurred reference
// of the sharpness enhancement step.
func Smooth() Kernel {
	return MustNew(3, []float32{
		1, 1, 1,
		1, 5, 1,
		1, 1, 1,
	}, 13)
}
