package pixel

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAllocatesMatchingStorage(t *testing.T) {
	b := New(4, 3, RGBChannels)
	assert.Equal(t, 4, b.Width)
	assert.Equal(t, 3, b.Height)
	assert.Equal(t, RGBChannels, b.Channels)
	assert.Len(t, b.Pix, 4*3*3)
	assert.NoError(t, b.Validate())
}

func TestUniformFillsEverySample(t *testing.T) {
	b := Uniform(5, 2, GrayChannels, 200)
	for i, v := range b.Pix {
		require.Equal(t, uint8(200), v, "sample %d", i)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := Uniform(2, 2, RGBChannels, 10)
	c := b.Clone()
	c.Pix[0] = 99

	assert.Equal(t, uint8(10), b.Pix[0], "clone write must not touch the source")
	assert.Equal(t, b.Width, c.Width)
	assert.Equal(t, b.Height, c.Height)
	assert.Equal(t, b.Channels, c.Channels)
}

func TestAtSetOffsetAddressing(t *testing.T) {
	b := New(3, 2, RGBChannels)
	b.Set(2, 1, 1, 77)

	assert.Equal(t, uint8(77), b.At(2, 1, 1))
	assert.Equal(t, (1*3+2)*3, b.Offset(2, 1))
	assert.Equal(t, uint8(77), b.Pix[b.Offset(2, 1)+1])
}

func TestValidateRejectsMalformedBuffers(t *testing.T) {
	tests := []struct {
		name string
		buf  *Buffer
	}{
		{"nil buffer", nil},
		{"zero width", &Buffer{Width: 0, Height: 2, Channels: 1, Pix: make([]uint8, 0)}},
		{"negative height", &Buffer{Width: 2, Height: -1, Channels: 1, Pix: make([]uint8, 2)}},
		{"two channels", &Buffer{Width: 2, Height: 2, Channels: 2, Pix: make([]uint8, 8)}},
		{"short storage", &Buffer{Width: 2, Height: 2, Channels: 3, Pix: make([]uint8, 11)}},
		{"long storage", &Buffer{Width: 2, Height: 2, Channels: 1, Pix: make([]uint8, 5)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.buf.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedBuffer))
		})
	}
}

func TestClampEdgeReplicates(t *testing.T) {
	assert.Equal(t, 0, ClampEdge(-3, 10))
	assert.Equal(t, 0, ClampEdge(0, 10))
	assert.Equal(t, 5, ClampEdge(5, 10))
	assert.Equal(t, 9, ClampEdge(9, 10))
	assert.Equal(t, 9, ClampEdge(10, 10))
	assert.Equal(t, 9, ClampEdge(250, 10))
}
