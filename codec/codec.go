// Package codec - the boundary between encoded image bytes and the pixel
// buffers the transform engine operates on.
//
// Decode understands JPEG, PNG, and WebP containers. Whatever the container
// held, the engine only ever sees 1-channel (gray) or 3-channel (RGB)
// buffers: alpha is dropped at this boundary, never blended. Encode always
// produces JPEG, at quality 85 unless told otherwise, matching the output
// contract of the original service.
package codec

import (
	"bytes"
	"image"
	"image/jpeg"
	"io"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"

	// Container formats registered with the image package.
	_ "image/png"

	_ "github.com/chai2010/webp"

	"github.com/lumenworks/imageproc/pixel"
)

// DefaultQuality is the JPEG quality used when the caller passes 0.
const DefaultQuality = 85

// ErrDecodeFailure reports bytes that could not be interpreted as a
// supported image container.
var ErrDecodeFailure = errors.New("codec: decode failure")

// DecodeOptions configures Decode.
type DecodeOptions struct {
	// MaxDimension, when positive, downscales decoded images so that neither
	// side exceeds it, preserving aspect ratio. Applied before buffer
	// conversion so oversized uploads never reach the transform engine at
	// full size. 0 disables the clamp.
	MaxDimension int
}

// Decode interprets data as an encoded image and converts it to a pixel
// buffer.
//
// Gray sources decode to a single-channel buffer. Everything else, including
// sources with an alpha channel, decodes to a 3-channel RGB buffer with
// alpha discarded.
//
// Returns:
// - The decoded buffer, or an error wrapping ErrDecodeFailure when the bytes
//   are not a supported image.
func Decode(data []byte, opt DecodeOptions) (*pixel.Buffer, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(ErrDecodeFailure, err.Error())
	}

	if opt.MaxDimension > 0 {
		b := img.Bounds()
		if b.Dx() > opt.MaxDimension || b.Dy() > opt.MaxDimension {
			img = resize.Thumbnail(uint(opt.MaxDimension), uint(opt.MaxDimension), img, resize.Bilinear)
		}
	}

	return fromImage(img), nil
}

// fromImage flattens a decoded image into buffer storage.
func fromImage(img image.Image) *pixel.Buffer {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if gray, ok := img.(*image.Gray); ok {
		buf := pixel.New(width, height, pixel.GrayChannels)
		for y := 0; y < height; y++ {
			src := gray.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(buf.Pix[y*width:(y+1)*width], gray.Pix[src:src+width])
		}
		return buf
	}

	// Non-premultiplied sources keep their raw color channels; going through
	// At().RGBA() would multiply them down by alpha, which is blending, not
	// dropping.
	if nrgba, ok := img.(*image.NRGBA); ok {
		buf := pixel.New(width, height, pixel.RGBChannels)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				src := nrgba.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
				dst := buf.Offset(x, y)
				buf.Pix[dst] = nrgba.Pix[src]
				buf.Pix[dst+1] = nrgba.Pix[src+1]
				buf.Pix[dst+2] = nrgba.Pix[src+2]
			}
		}
		return buf
	}

	buf := pixel.New(width, height, pixel.RGBChannels)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			off := buf.Offset(x, y)
			buf.Pix[off] = uint8(r >> 8)
			buf.Pix[off+1] = uint8(g >> 8)
			buf.Pix[off+2] = uint8(b >> 8)
		}
	}
	return buf
}

// Encode writes buf as a JPEG at the given quality (0 means DefaultQuality).
// Encoding a structurally valid buffer does not fail in practice; the error
// return covers writer failures.
func Encode(w io.Writer, buf *pixel.Buffer, quality int) error {
	if err := buf.Validate(); err != nil {
		return err
	}
	if quality <= 0 {
		quality = DefaultQuality
	}
	return jpeg.Encode(w, toImage(buf), &jpeg.Options{Quality: quality})
}

// EncodeBytes is Encode into a fresh byte slice.
func EncodeBytes(buf *pixel.Buffer, quality int) ([]byte, error) {
	var out bytes.Buffer
	if err := Encode(&out, buf, quality); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// toImage rebuilds a standard library image from buffer storage.
func toImage(buf *pixel.Buffer) image.Image {
	if buf.Channels == pixel.GrayChannels {
		img := image.NewGray(image.Rect(0, 0, buf.Width, buf.Height))
		for y := 0; y < buf.Height; y++ {
			dst := img.PixOffset(0, y)
			copy(img.Pix[dst:dst+buf.Width], buf.Pix[y*buf.Width:(y+1)*buf.Width])
		}
		return img
	}

	img := image.NewRGBA(image.Rect(0, 0, buf.Width, buf.Height))
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			src := buf.Offset(x, y)
			dst := img.PixOffset(x, y)
			img.Pix[dst] = buf.Pix[src]
			img.Pix[dst+1] = buf.Pix[src+1]
			img.Pix[dst+2] = buf.Pix[src+2]
			img.Pix[dst+3] = 0xff
		}
	}
	return img
}
