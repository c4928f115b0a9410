package transforms

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenworks/imageproc/pixel"
)

func TestOperationsAreComplete(t *testing.T) {
	assert.Equal(t, []string{
		OpBlur,
		OpEdgeDetect,
		OpEnhance,
		OpGrayscale,
		OpNoiseReduction,
		OpRotate,
		OpSharpen,
	}, Operations())
}

func TestKnown(t *testing.T) {
	assert.True(t, Known(OpBlur))
	assert.True(t, Known(OpNoiseReduction))
	assert.False(t, Known("not_a_real_op"))
	assert.False(t, Known(""))
	assert.False(t, Known("BLUR"), "names are case-sensitive")
}

func TestDispatchUnknownOperation(t *testing.T) {
	src := pixel.Uniform(4, 4, pixel.RGBChannels, 50)

	out, err := Dispatch("not_a_real_op", src)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownOperation))
	assert.Nil(t, out, "a failed dispatch produces no output buffer")
}

func TestDispatchDimensionInvariants(t *testing.T) {
	// For everything except grayscale and rotate the output shape equals
	// the input shape; grayscale always lands on one channel; rotate grows
	// the canvas in both dimensions.
	const w, h = 12, 8
	src := pixel.New(w, h, pixel.RGBChannels)
	for i := range src.Pix {
		src.Pix[i] = uint8((i * 3) % 256)
	}

	for _, op := range Operations() {
		t.Run(op, func(t *testing.T) {
			out, err := Dispatch(op, src)
			require.NoError(t, err)
			require.NotNil(t, out)
			require.NoError(t, out.Validate())

			switch op {
			case OpGrayscale:
				assert.Equal(t, w, out.Width)
				assert.Equal(t, h, out.Height)
				assert.Equal(t, pixel.GrayChannels, out.Channels)
			case OpRotate:
				assert.Greater(t, out.Width, w)
				assert.Greater(t, out.Height, h)
				assert.Equal(t, pixel.RGBChannels, out.Channels)
			default:
				assert.Equal(t, w, out.Width)
				assert.Equal(t, h, out.Height)
				assert.Equal(t, pixel.RGBChannels, out.Channels)
			}
		})
	}
}

func TestDispatchGrayscaleInputAcrossOperations(t *testing.T) {
	// Every operation also accepts single-channel buffers.
	src := pixel.Uniform(10, 10, pixel.GrayChannels, 99)

	for _, op := range Operations() {
		t.Run(op, func(t *testing.T) {
			out, err := Dispatch(op, src)
			require.NoError(t, err)
			require.NoError(t, out.Validate())
			assert.Equal(t, pixel.GrayChannels, out.Channels)
		})
	}
}

func TestDispatchPropagatesValidationError(t *testing.T) {
	bad := &pixel.Buffer{Width: 3, Height: 3, Channels: 3, Pix: make([]uint8, 4)}

	for _, op := range Operations() {
		out, err := Dispatch(op, bad)
		require.Error(t, err, op)
		assert.True(t, errors.Is(err, pixel.ErrMalformedBuffer), op)
		assert.Nil(t, out, op)
	}
}

func TestDispatchReturnsFreshBuffer(t *testing.T) {
	src := pixel.Uniform(5, 5, pixel.RGBChannels, 10)

	for _, op := range Operations() {
		out, err := Dispatch(op, src)
		require.NoError(t, err, op)
		assert.NotSame(t, src, out, op)
	}
}
