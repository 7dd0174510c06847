package pixel

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestRGB565(t *testing.T) {
	for r := 0; r < 256; r++ {
		for g := 0; g < 256; g++ {
			for b := 0; b < 256; b++ {
				want := uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
				if got := RGB565(uint8(r), uint8(g), uint8(b)); got != want {
					t.Fatalf("RGB565(%d, %d, %d) = %#04x, want %#04x", r, g, b, got, want)
				}
			}
		}
	}
}

func TestRGB565Truncates(t *testing.T) {
	// Values below the channel quantum must round down, not to nearest.
	if got := RGB565(7, 3, 7); got != 0 {
		t.Errorf("expected low channel bits to truncate to zero, got %#04x", got)
	}
	if got := RGB565(255, 255, 255); got != 0xffff {
		t.Errorf("expected white to be %#04x, got %#04x", 0xffff, got)
	}
}

func TestEncodeRGB(t *testing.T) {
	pix := []uint8{
		255, 0, 0, // red
		0, 255, 0, // green
		0, 0, 255, // blue
		255, 255, 255, // white
	}
	out, err := EncodeRGB(pix, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{
		0xf8, 0x00,
		0x07, 0xe0,
		0x00, 0x1f,
		0xff, 0xff,
	}
	if len(out) != 2*2*2 {
		t.Fatalf("expected %d bytes, got %d", 2*2*2, len(out))
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("byte %d: expected %#02x, got %#02x", i, want[i], out[i])
		}
	}
}

func TestEncodeRGBLength(t *testing.T) {
	for _, size := range []struct{ w, h int }{
		{1, 1},
		{240, 320},
		{320, 240},
		{13, 7},
	} {
		pix := make([]uint8, size.w*size.h*3)
		out, err := EncodeRGB(pix, size.w, size.h)
		if err != nil {
			t.Fatal(err)
		}
		if want := 2 * size.w * size.h; len(out) != want {
			t.Errorf("%dx%d: expected %d bytes, got %d", size.w, size.h, want, len(out))
		}
	}
}

func TestEncodeRGBSizeMismatch(t *testing.T) {
	_, err := EncodeRGB(make([]uint8, 5), 2, 2)
	if !errors.Is(err, ErrFrameSize) {
		t.Fatalf("expected ErrFrameSize, got %v", err)
	}
}

func TestEncodeImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(2, 1, color.RGBA{G: 255, A: 255})

	out := EncodeImage(img)
	if want := 2 * 3 * 2; len(out) != want {
		t.Fatalf("expected %d bytes, got %d", want, len(out))
	}
	if out[0] != 0xf8 || out[1] != 0x00 {
		t.Errorf("pixel (0,0): expected f8 00, got %02x %02x", out[0], out[1])
	}
	if out[10] != 0x07 || out[11] != 0xe0 {
		t.Errorf("pixel (2,1): expected 07 e0, got %02x %02x", out[10], out[11])
	}
}

// wrapped hides the concrete image type so EncodeImage takes the generic path.
type wrapped struct{ image.Image }

// The fast path over *image.RGBA must agree with the generic path.
func TestEncodeImagePathsAgree(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 32), B: uint8(x + y), A: 255})
		}
	}

	fast := EncodeImage(img)
	slow := EncodeImage(wrapped{img})
	if len(fast) != len(slow) {
		t.Fatalf("path lengths differ: %d vs %d", len(fast), len(slow))
	}
	for i := range fast {
		if fast[i] != slow[i] {
			t.Fatalf("byte %d: fast path %#02x, generic path %#02x", i, fast[i], slow[i])
		}
	}
}
