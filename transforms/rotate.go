package transforms

import (
	"github.com/chewxy/math32"

	"github.com/lumenworks/imageproc/pixel"
)

// Rotate runs the fixed three-stage geometric pipeline: rotate +45 degrees
// with canvas expansion, rotate the result -45 degrees with further
// expansion, then mirror horizontally.
//
// Expansion compounds: the second rotation grows the already-expanded canvas
// again, so the final buffer is strictly larger than the input in both
// dimensions and is NOT the original rotated back. That asymmetry is the
// observed behavior of the pipeline and is preserved deliberately.
//
// Resampling is bilinear (documented design choice; the alternative was
// nearest-neighbor) and corners exposed by the expansion are filled with
// black. There is no randomness anywhere in the path, so repeated calls on
// the same input are bit-identical.
func Rotate(src *pixel.Buffer) (*pixel.Buffer, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	out := rotateExpand(src, 45)
	out = rotateExpand(out, -45)
	return flipHorizontal(out), nil
}

// rotateExpand rotates src by angle degrees counterclockwise into a canvas
// large enough to hold the full rotated content.
//
// The mapping runs destination to source: each output pixel center is
// rotated back into source coordinates and sampled bilinearly, with
// off-image taps contributing the black background. Summation order over the
// four taps is fixed.
func rotateExpand(src *pixel.Buffer, angle float32) *pixel.Buffer {
	rad := angle * math32.Pi / 180
	sin, cos := math32.Sin(rad), math32.Cos(rad)
	absSin, absCos := math32.Abs(sin), math32.Abs(cos)

	w := float32(src.Width)
	h := float32(src.Height)
	dstW := int(math32.Ceil(w*absCos + h*absSin))
	dstH := int(math32.Ceil(w*absSin + h*absCos))

	dst := pixel.New(dstW, dstH, src.Channels)
	channels := src.Channels

	// Pixel centers rotate about the canvas centers.
	cxDst := float32(dstW) / 2
	cyDst := float32(dstH) / 2
	cxSrc := w / 2
	cySrc := h / 2

	pixel.Parallel(dstH, func(partStart, partEnd int) {
		acc := make([]float32, channels)

		for y := partStart; y < partEnd; y++ {
			dy := float32(y) + 0.5 - cyDst
			for x := 0; x < dstW; x++ {
				dx := float32(x) + 0.5 - cxDst

				// Inverse rotation of the destination pixel center.
				sx := cos*dx + sin*dy + cxSrc - 0.5
				sy := -sin*dx + cos*dy + cySrc - 0.5

				x0 := int(math32.Floor(sx))
				y0 := int(math32.Floor(sy))
				fx := sx - float32(x0)
				fy := sy - float32(y0)

				for c := range acc {
					acc[c] = 0
				}
				bilinearTap(src, x0, y0, (1-fx)*(1-fy), acc)
				bilinearTap(src, x0+1, y0, fx*(1-fy), acc)
				bilinearTap(src, x0, y0+1, (1-fx)*fy, acc)
				bilinearTap(src, x0+1, y0+1, fx*fy, acc)

				out := dst.Offset(x, y)
				for c := 0; c < channels; c++ {
					dst.Pix[out+c] = pixel.RoundSample(acc[c])
				}
			}
		}
	})

	return dst
}

// bilinearTap accumulates weight*sample for every channel of the source
// pixel at (x, y). Taps outside the buffer contribute nothing, which is what
// fills the expanded corners with black.
func bilinearTap(src *pixel.Buffer, x, y int, weight float32, acc []float32) {
	if weight == 0 || x < 0 || y < 0 || x >= src.Width || y >= src.Height {
		return
	}
	off := src.Offset(x, y)
	for c := range acc {
		acc[c] += weight * float32(src.Pix[off+c])
	}
}

// flipHorizontal mirrors the buffer along its vertical axis.
func flipHorizontal(src *pixel.Buffer) *pixel.Buffer {
	dst := pixel.New(src.Width, src.Height, src.Channels)
	channels := src.Channels

	pixel.Parallel(src.Height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			for x := 0; x < src.Width; x++ {
				srcOff := src.Offset(src.Width-1-x, y)
				dstOff := dst.Offset(x, y)
				for c := 0; c < channels; c++ {
					dst.Pix[dstOff+c] = src.Pix[srcOff+c]
				}
			}
		}
	})
	return dst
}
