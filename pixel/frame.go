package pixel

import (
	"errors"
	"fmt"
	"image"
)

// ErrFrameSize is returned when a pixel buffer does not match the frame
// dimensions it is encoded for.
var ErrFrameSize = errors.New("pixel: buffer size does not match frame dimensions")

// RGB565 packs an 8-bit RGB triple into the panel's 16-bit 5-6-5 format.
// The low bits of each channel are truncated, not rounded.
func RGB565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

// EncodeRGB converts row-major 8-bit RGB triples into the wire format: one
// big-endian 16-bit word per pixel, 2*w*h bytes total.
func EncodeRGB(pix []uint8, w, h int) ([]byte, error) {
	if len(pix) != w*h*3 {
		return nil, fmt.Errorf("%w: got %d bytes for %dx%d, want %d", ErrFrameSize, len(pix), w, h, w*h*3)
	}

	out := make([]byte, 2*w*h)
	for i, o := 0, 0; i < len(pix); i, o = i+3, o+2 {
		v := RGB565(pix[i], pix[i+1], pix[i+2])
		out[o] = byte(v >> 8)
		out[o+1] = byte(v)
	}
	return out, nil
}

// EncodeImage converts an image into the wire format, row-major over the
// image bounds. *image.RGBA sources take a fast path over the raw pixel
// buffer.
func EncodeImage(img image.Image) []byte {
	bounds := img.Bounds()
	out := make([]byte, 2*bounds.Dx()*bounds.Dy())

	if rgba, ok := img.(*image.RGBA); ok {
		o := 0
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			row := rgba.Pix[(y-rgba.Rect.Min.Y)*rgba.Stride:]
			for x := 0; x < bounds.Dx(); x++ {
				p := row[(bounds.Min.X-rgba.Rect.Min.X+x)*4:]
				v := RGB565(p[0], p[1], p[2])
				out[o] = byte(v >> 8)
				out[o+1] = byte(v)
				o += 2
			}
		}
		return out
	}

	o := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			v := RGB565(uint8(r>>8), uint8(g>>8), uint8(b>>8))
			out[o] = byte(v >> 8)
			out[o+1] = byte(v)
			o += 2
		}
	}
	return out
}
