package kernels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenworks/imageproc/pixel"
)

func TestApplyIdentityKernelOnCheckerboard(t *testing.T) {
	// 2x2 three-channel buffer with alternating black/white pixels. The
	// identity kernel must return the exact input; anything else means the
	// padding or weighting logic is broken.
	src := pixel.New(2, 2, pixel.RGBChannels)
	src.Pix = []uint8{
		0, 0, 0, 255, 255, 255,
		0, 0, 0, 255, 255, 255,
	}

	out := Apply(src, Identity(3))
	require.Equal(t, src.Width, out.Width)
	require.Equal(t, src.Height, out.Height)
	require.Equal(t, src.Channels, out.Channels)
	assert.Equal(t, src.Pix, out.Pix)
}

func TestApplyPreservesDimensions(t *testing.T) {
	src := pixel.Uniform(17, 9, pixel.RGBChannels, 60)
	out := Apply(src, Gaussian(5))

	assert.Equal(t, 17, out.Width)
	assert.Equal(t, 9, out.Height)
	assert.Equal(t, pixel.RGBChannels, out.Channels)
}

func TestApplyDoesNotMutateSource(t *testing.T) {
	src := pixel.Uniform(6, 6, pixel.GrayChannels, 123)
	before := append([]uint8(nil), src.Pix...)

	Apply(src, Sharpen())
	assert.Equal(t, before, src.Pix)
}

func TestApplyUniformInputUnderNormalizedKernels(t *testing.T) {
	// With edge replication every footprint over a uniform buffer sees only
	// the constant, so any unit-gain kernel reproduces it.
	for _, k := range []Kernel{Gaussian(5), Sharpen(), Smooth()} {
		src := pixel.Uniform(8, 5, pixel.RGBChannels, 77)
		out := Apply(src, k)
		assert.Equal(t, src.Pix, out.Pix)
	}
}

func TestApplyEdgeDetectNullsUniformRegions(t *testing.T) {
	src := pixel.Uniform(8, 8, pixel.GrayChannels, 200)
	out := Apply(src, EdgeDetect())
	for i, v := range out.Pix {
		require.Equal(t, uint8(0), v, "sample %d", i)
	}
}

func TestApplyEdgeDetectRespondsToGradient(t *testing.T) {
	// A vertical step edge down the middle of a gray buffer.
	src := pixel.New(8, 4, pixel.GrayChannels)
	for y := 0; y < 4; y++ {
		for x := 4; x < 8; x++ {
			src.Set(x, y, 0, 255)
		}
	}

	out := Apply(src, EdgeDetect())

	// Interior pixels far from the step stay black; the step columns light up.
	assert.Equal(t, uint8(0), out.At(1, 2, 0))
	assert.Equal(t, uint8(0), out.At(6, 2, 0))
	assert.NotEqual(t, uint8(0), out.At(4, 2, 0))
}

func TestApplyEdgeReplicationAtBorders(t *testing.T) {
	// 1x3 column buffer under a 3x3 box mean. With edge replication the top
	// output sees {10,10,20} per kernel column, i.e. (3*10+3*10+3*20)/9.
	src := pixel.New(1, 3, pixel.GrayChannels)
	src.Pix = []uint8{10, 20, 30}

	box := MustNew(3, []float32{
		1, 1, 1,
		1, 1, 1,
		1, 1, 1,
	}, 9)
	out := Apply(src, box)

	assert.Equal(t, uint8(13), out.Pix[0]) // (10*6+20*3)/9 = 13.33 -> 13
	assert.Equal(t, uint8(20), out.Pix[1]) // (10+20+30)/3  = 20
	assert.Equal(t, uint8(27), out.Pix[2]) // (30*6+20*3)/9 = 26.67 -> 27
}

func TestApplyIsDeterministic(t *testing.T) {
	src := pixel.New(31, 17, pixel.RGBChannels)
	for i := range src.Pix {
		src.Pix[i] = uint8((i * 31) % 251)
	}

	first := Apply(src, Gaussian(5))
	second := Apply(src, Gaussian(5))
	assert.Equal(t, first.Pix, second.Pix, "parallel rows must not change the result")
}
