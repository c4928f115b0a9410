package transforms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenworks/imageproc/pixel"
)

func gradientBuffer(width, height, channels int) *pixel.Buffer {
	b := pixel.New(width, height, channels)
	for i := range b.Pix {
		b.Pix[i] = uint8((i * 13) % 256)
	}
	return b
}

func TestEnhanceIdentityAtUnitFactors(t *testing.T) {
	// Not the production factors, but the boundary case that pins the math:
	// with every factor at 1.0 each interpolation collapses to the input.
	src := gradientBuffer(9, 7, pixel.RGBChannels)
	out, err := EnhanceWith(src, EnhanceOptions{Saturation: 1, Contrast: 1, Sharpness: 1})
	require.NoError(t, err)

	assert.Equal(t, src.Pix, out.Pix)
}

func TestEnhancePreservesDimensions(t *testing.T) {
	src := gradientBuffer(12, 5, pixel.RGBChannels)
	out, err := Enhance(src)
	require.NoError(t, err)

	assert.Equal(t, src.Width, out.Width)
	assert.Equal(t, src.Height, out.Height)
	assert.Equal(t, src.Channels, out.Channels)
}

func TestEnhanceUniformGrayIsFixedPoint(t *testing.T) {
	// A flat neutral gray is its own desaturated value, its own mean
	// luminance, and its own blur, so every step leaves it alone even at the
	// production factors.
	src := pixel.Uniform(8, 8, pixel.RGBChannels, 128)
	out, err := Enhance(src)
	require.NoError(t, err)

	assert.Equal(t, src.Pix, out.Pix)
}

func TestEnhanceSaturationPushesChannelsApart(t *testing.T) {
	// A reddish pixel gets redder and less green/blue under saturation > 1.
	src := pixel.New(1, 1, pixel.RGBChannels)
	src.Pix = []uint8{180, 100, 100}

	out := saturate(src, 1.5)
	assert.Greater(t, out.Pix[0], uint8(180))
	assert.Less(t, out.Pix[1], uint8(100))
	assert.Less(t, out.Pix[2], uint8(100))
}

func TestEnhanceContrastSpreadsAroundMean(t *testing.T) {
	// Two gray pixels straddling the mean move apart under contrast > 1.
	src := pixel.New(2, 1, pixel.GrayChannels)
	src.Pix = []uint8{100, 200}

	out := contrast(src, 1.3)
	assert.Less(t, out.Pix[0], uint8(100))
	assert.Greater(t, out.Pix[1], uint8(200))
}

func TestEnhanceSharpnessAmplifiesStepEdge(t *testing.T) {
	// Across a step edge the unsharp mask overshoots on the bright side and
	// undershoots on the dark side.
	src := pixel.New(6, 3, pixel.GrayChannels)
	for y := 0; y < 3; y++ {
		for x := 3; x < 6; x++ {
			src.Set(x, y, 0, 200)
		}
		for x := 0; x < 3; x++ {
			src.Set(x, y, 0, 50)
		}
	}

	out := sharpness(src, 1.2)
	assert.Less(t, out.At(2, 1, 0), uint8(50), "dark side of the edge undershoots")
	assert.Greater(t, out.At(3, 1, 0), uint8(200), "bright side of the edge overshoots")
}

func TestEnhanceSingleChannelSkipsSaturation(t *testing.T) {
	src := gradientBuffer(5, 5, pixel.GrayChannels)
	out, err := EnhanceWith(src, EnhanceOptions{Saturation: 99, Contrast: 1, Sharpness: 1})
	require.NoError(t, err)

	assert.Equal(t, src.Pix, out.Pix, "saturation has no effect on gray buffers")
}

func TestEnhanceRejectsMalformedBuffer(t *testing.T) {
	bad := &pixel.Buffer{Width: 1, Height: 1, Channels: 3, Pix: nil}
	_, err := Enhance(bad)
	assert.Error(t, err)
}

func TestMeanLuminance(t *testing.T) {
	gray := pixel.New(2, 1, pixel.GrayChannels)
	gray.Pix = []uint8{0, 100}
	assert.InDelta(t, 50, float64(meanLuminance(gray)), 1e-5)

	rgb := pixel.Uniform(4, 4, pixel.RGBChannels, 60)
	assert.InDelta(t, 60, float64(meanLuminance(rgb)), 1e-3)
}
