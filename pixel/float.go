package pixel

import "github.com/chewxy/math32"

// Float is the floating-point companion of Buffer, used wherever a transform
// accumulates across passes and must not pay quantization error until the
// very end (noise reduction, enhancement). Samples are float32 to match the
// accumulator width of the original pipeline.
//
// Promotion and demotion are explicit so the clamp/round behavior stays in
// one auditable place rather than scattered through transform loops.
type Float struct {
	// Width is the number of pixels per row.
	Width int
	// Height is the number of rows.
	Height int
	// Channels is the number of samples per pixel.
	Channels int
	// Pix is the flat float32 sample storage, row-major, channel-interleaved.
	Pix []float32
}

// NewFloat allocates a zero-filled float buffer with the given dimensions.
func NewFloat(width, height, channels int) *Float {
	return &Float{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]float32, width*height*channels),
	}
}

// FromBuffer promotes every uint8 sample of b to float32. The input buffer
// is not retained.
func FromBuffer(b *Buffer) *Float {
	f := NewFloat(b.Width, b.Height, b.Channels)
	for i, v := range b.Pix {
		f.Pix[i] = float32(v)
	}
	return f
}

// Offset returns the index into Pix of the first sample of the pixel at
// (x, y).
func (f *Float) Offset(x, y int) int {
	return (y*f.Width + x) * f.Channels
}

// PadEdge returns a copy of f grown by n samples on each spatial side, with
// the new border filled by edge replication. Channels are never padded. The
// receiver is left untouched.
//
// Arguments:
// - n: Pad amount per side, kernelSize/2 for the calling filter.
//
// Returns:
// - A fresh (Width+2n) x (Height+2n) float buffer.
func (f *Float) PadEdge(n int) *Float {
	out := NewFloat(f.Width+2*n, f.Height+2*n, f.Channels)
	for y := 0; y < out.Height; y++ {
		srcY := ClampEdge(y-n, f.Height)
		for x := 0; x < out.Width; x++ {
			srcX := ClampEdge(x-n, f.Width)
			src := f.Offset(srcX, srcY)
			dst := out.Offset(x, y)
			for c := 0; c < f.Channels; c++ {
				out.Pix[dst+c] = f.Pix[src+c]
			}
		}
	}
	return out
}

// Buffer demotes the float samples back to uint8 storage, clamping to
// [0, 255] and truncating the fraction. Truncation (not rounding) mirrors
// the uint8 cast the original noise-reduction pass performed, so values that
// survived the float passes exactly (uniform regions) come back bit-exact.
func (f *Float) Buffer() *Buffer {
	b := New(f.Width, f.Height, f.Channels)
	for i, v := range f.Pix {
		b.Pix[i] = uint8(ClampSample(v))
	}
	return b
}

// ClampSample restricts a float32 sample to the representable [0, 255]
// range. NaN collapses to 0 so a pathological kernel cannot smuggle garbage
// into uint8 storage.
func ClampSample(v float32) float32 {
	if math32.IsNaN(v) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// RoundSample clamps v to [0, 255] and rounds to the nearest integer. The
// convolution and color paths quantize this way after their full weighted
// sum.
func RoundSample(v float32) uint8 {
	return uint8(ClampSample(v) + 0.5)
}
