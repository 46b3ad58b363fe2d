package convolveme

import (
	"image"
	"image/color"
	"testing"

	"github.com/valyala/fastrand"
)

// randomBuffer returns a buffer filled with pseudo random bytes.
func randomBuffer(tb testing.TB, width, height int) *PixelBuffer {
	tb.Helper()
	var rng fastrand.RNG
	rng.Seed(uint32(width*7919 + height))

	pix := make([]uint8, width*height*4)
	for i := range pix {
		pix[i] = uint8(rng.Uint32n(256))
	}
	b, err := FromBytes(width, height, pix)
	if err != nil {
		tb.Fatalf("FromBytes: %v", err)
	}
	return b
}

// uniformBuffer returns a buffer where every pixel has the color c.
func uniformBuffer(tb testing.TB, width, height int, c Color) *PixelBuffer {
	tb.Helper()
	b, err := NewPixelBuffer(width, height)
	if err != nil {
		tb.Fatalf("NewPixelBuffer: %v", err)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if err := b.Set(x, y, c); err != nil {
				tb.Fatalf("Set(%d,%d): %v", x, y, err)
			}
		}
	}
	return b
}

func uniformImage(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func mustAt(tb testing.TB, b *PixelBuffer, x, y int) Color {
	tb.Helper()
	c, err := b.At(x, y)
	if err != nil {
		tb.Fatalf("At(%d,%d): %v", x, y, err)
	}
	return c
}

func isBorder(x, y, w, h, r int) bool {
	return x < r || x >= w-r || y < r || y >= h-r
}
