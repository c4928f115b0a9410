// Package pixel - in-memory image representation shared by every transform.
//
// A Buffer is the only currency the transform engine deals in: decoded bytes
// become a Buffer at the codec boundary, every transform consumes one Buffer
// and produces a fresh one, and the result is handed back to the codec for
// encoding. Buffers are never mutated in place after construction, which is
// what makes concurrent request handling safe without any locking.
package pixel

import (
	"github.com/pkg/errors"
)

// Channel counts supported by the engine.
const (
	// GrayChannels is single-channel (grayscale) storage.
	GrayChannels = 1
	// RGBChannels is three-channel interleaved RGB storage.
	RGBChannels = 3
)

// ErrMalformedBuffer reports a buffer whose storage does not match its
// declared dimensions. It surfaces as a processing failure at the transport
// layer.
var ErrMalformedBuffer = errors.New("pixel: malformed buffer")

// Buffer represents a decoded image as a flat slice of 8-bit samples.
//
// Storage is row-major and channel-interleaved: the sample for channel c of
// the pixel at (x, y) lives at Pix[(y*Width+x)*Channels+c]. The invariant
// len(Pix) == Width*Height*Channels holds for every buffer produced by this
// package.
type Buffer struct {
	// Width is the number of pixels per row. Always positive.
	Width int
	// Height is the number of rows. Always positive.
	Height int
	// Channels is the number of samples per pixel: 1 (gray) or 3 (RGB).
	Channels int
	// Pix is the flat sample storage, row-major, channel-interleaved.
	Pix []uint8
}

// New allocates a zero-filled buffer with the given dimensions.
//
// Arguments:
// - width: Pixels per row, must be > 0.
// - height: Number of rows, must be > 0.
// - channels: Samples per pixel, 1 or 3.
//
// Returns:
// - A fresh buffer whose samples are all zero.
func New(width, height, channels int) *Buffer {
	return &Buffer{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]uint8, width*height*channels),
	}
}

// Uniform allocates a buffer with every sample set to v.
//
// Arguments:
// - width: Pixels per row.
// - height: Number of rows.
// - channels: Samples per pixel, 1 or 3.
// - v: The sample value to fill with.
//
// Returns:
// - A fresh buffer filled with v.
func Uniform(width, height, channels int, v uint8) *Buffer {
	b := New(width, height, channels)
	for i := range b.Pix {
		b.Pix[i] = v
	}
	return b
}

// Clone returns a deep copy of the buffer. Transforms that are structurally
// the identity (grayscale on a gray input, for example) still return a clone
// so the caller never aliases the input.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{
		Width:    b.Width,
		Height:   b.Height,
		Channels: b.Channels,
		Pix:      make([]uint8, len(b.Pix)),
	}
	copy(out.Pix, b.Pix)
	return out
}

// Offset returns the index into Pix of the first sample of the pixel at
// (x, y). Callers add the channel index to address individual samples.
func (b *Buffer) Offset(x, y int) int {
	return (y*b.Width + x) * b.Channels
}

// At returns the sample for channel c of the pixel at (x, y). No bounds
// mapping is performed; out-of-range coordinates are the caller's bug.
func (b *Buffer) At(x, y, c int) uint8 {
	return b.Pix[(y*b.Width+x)*b.Channels+c]
}

// Set stores v as the sample for channel c of the pixel at (x, y).
func (b *Buffer) Set(x, y, c int, v uint8) {
	b.Pix[(y*b.Width+x)*b.Channels+c] = v
}

// Validate checks the structural invariant of the buffer.
//
// Returns:
// - nil when dimensions are positive, the channel count is 1 or 3, and the
//   storage length matches Width*Height*Channels.
// - An error wrapping ErrMalformedBuffer otherwise.
func (b *Buffer) Validate() error {
	if b == nil {
		return errors.Wrap(ErrMalformedBuffer, "nil buffer")
	}
	if b.Width <= 0 || b.Height <= 0 {
		return errors.Wrapf(ErrMalformedBuffer, "non-positive dimensions %dx%d", b.Width, b.Height)
	}
	if b.Channels != GrayChannels && b.Channels != RGBChannels {
		return errors.Wrapf(ErrMalformedBuffer, "unsupported channel count %d", b.Channels)
	}
	if want := b.Width * b.Height * b.Channels; len(b.Pix) != want {
		return errors.Wrapf(ErrMalformedBuffer, "storage length %d, want %d", len(b.Pix), want)
	}
	return nil
}

// ClampEdge maps a coordinate onto [0, max) by repeating the nearest edge
// sample. This is the only padding policy the engine uses: every kernel
// footprint that extends past the buffer boundary reads replicated edge
// values, matching the edge mode of the original pipeline.
func ClampEdge(coord, max int) int {
	if coord < 0 {
		return 0
	}
	if coord >= max {
		return max - 1
	}
	return coord
}
