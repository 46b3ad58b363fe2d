package convolveme

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
)

// Canvas is a Surface rendered through a gg drawing context.
// The pixels last written are kept verbatim so they can be read back exactly.
type Canvas struct {
	*gg.Context
	img *image.NRGBA
}

// NewCanvas creates a transparent canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		Context: gg.NewContext(width, height),
		img:     image.NewNRGBA(image.Rect(0, 0, width, height)),
	}
}

// Bounds returns the canvas domain.
func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}

// WritePixels replaces the canvas content with the given RGBA data.
func (c *Canvas) WritePixels(pix []uint8) error {
	if len(pix) != len(c.img.Pix) {
		return fmt.Errorf("%w: got %d bytes, canvas holds %d", ErrBufferSize, len(pix), len(c.img.Pix))
	}
	copy(c.img.Pix, pix)

	c.Push()
	c.SetRGBA(0, 0, 0, 0)
	c.Clear()
	c.DrawImage(c.img, 0, 0)
	c.Pop()
	return nil
}

// ReadPixels returns a copy of the RGBA data last written.
func (c *Canvas) ReadPixels() ([]uint8, error) {
	pix := make([]uint8, len(c.img.Pix))
	copy(pix, c.img.Pix)
	return pix, nil
}
