package transforms

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/lumenworks/imageproc/kernels"
	"github.com/lumenworks/imageproc/pixel"
)

// Operation names accepted by Dispatch. The set is closed: it is built once
// at package init and never extended at runtime.
const (
	OpBlur           = "blur"
	OpSharpen        = "sharpen"
	OpEdgeDetect     = "edge_detect"
	OpGrayscale      = "grayscale"
	OpEnhance        = "enhance"
	OpRotate         = "rotate"
	OpNoiseReduction = "noise_reduction"
)

// ErrUnknownOperation reports an operation name outside the registry.
var ErrUnknownOperation = errors.New("transforms: unknown operation")

// Transform is a pure function from one buffer to a freshly allocated one.
type Transform func(*pixel.Buffer) (*pixel.Buffer, error)

// blurRadius is the Gaussian radius of the blur operation.
const blurRadius = 5

// Blur applies the radius-5 Gaussian kernel.
func Blur(src *pixel.Buffer) (*pixel.Buffer, error) {
	return convolve(src, kernels.Gaussian(blurRadius))
}

// SharpenFilter applies the fixed 3x3 sharpening kernel.
func SharpenFilter(src *pixel.Buffer) (*pixel.Buffer, error) {
	return convolve(src, kernels.Sharpen())
}

// EdgeDetectFilter applies the fixed 3x3 high-pass kernel.
func EdgeDetectFilter(src *pixel.Buffer) (*pixel.Buffer, error) {
	return convolve(src, kernels.EdgeDetect())
}

func convolve(src *pixel.Buffer, k kernels.Kernel) (*pixel.Buffer, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	return kernels.Apply(src, k), nil
}

// registry is the fixed operation-name to transform mapping.
var registry = map[string]Transform{
	OpBlur:           Blur,
	OpSharpen:        SharpenFilter,
	OpEdgeDetect:     EdgeDetectFilter,
	OpGrayscale:      Grayscale,
	OpEnhance:        Enhance,
	OpRotate:         Rotate,
	OpNoiseReduction: NoiseReduce,
}

// Operations returns the sorted list of registered operation names, for
// listings and validation messages.
func Operations() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Known reports whether name is a registered operation.
func Known(name string) bool {
	_, ok := registry[name]
	return ok
}

// Dispatch looks up name in the registry and invokes the transform on src,
// returning its output unchanged. An unregistered name fails with
// ErrUnknownOperation and no output buffer; the transform itself is never
// retried (they are deterministic, a retry cannot change the outcome).
func Dispatch(name string, src *pixel.Buffer) (*pixel.Buffer, error) {
	t, ok := registry[name]
	if !ok {
		return nil, errors.Wrap(ErrUnknownOperation, name)
	}
	return t(src)
}
