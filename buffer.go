package convolveme

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/esimov/convolveme/utils"
	"golang.org/x/image/draw"
)

// Color holds the four channel samples of a pixel. Samples are nominally in
// the [0, 255] range but may exceed it after a convolution.
type Color struct {
	R, G, B, A float64
}

// NRGBA converts the color to an 8 bit color, rounding and clamping every channel.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: toByte(c.R), G: toByte(c.G), B: toByte(c.B), A: toByte(c.A)}
}

func toByte(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(utils.Clamp(math.Round(v), 0, 255))
}

// PixelBuffer is a rectangular grid of R, G, B, A samples stored row by row.
type PixelBuffer struct {
	width  int
	height int
	pix    []float64
}

// NewPixelBuffer returns a zero filled buffer with the given dimensions.
func NewPixelBuffer(width, height int) (*PixelBuffer, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: negative dimensions %dx%d", ErrBufferSize, width, height)
	}
	return &PixelBuffer{
		width:  width,
		height: height,
		pix:    make([]float64, width*height*4),
	}, nil
}

// FromBytes copies raw RGBA bytes, as read back from a drawing surface, into a new buffer.
func FromBytes(width, height int, pix []uint8) (*PixelBuffer, error) {
	b, err := NewPixelBuffer(width, height)
	if err != nil {
		return nil, err
	}
	if len(pix) != len(b.pix) {
		return nil, fmt.Errorf("%w: got %d bytes for %dx%d, want %d",
			ErrBufferSize, len(pix), width, height, len(b.pix))
	}
	for i, v := range pix {
		b.pix[i] = float64(v)
	}
	return b, nil
}

// FromImage captures the pixels of any image type, with the min-point moved to (0, 0).
// A nil image gives an empty buffer.
func FromImage(img image.Image) *PixelBuffer {
	if img == nil {
		return &PixelBuffer{}
	}
	src := toNRGBA(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	b := &PixelBuffer{
		width:  w,
		height: h,
		pix:    make([]float64, w*h*4),
	}
	// The source stride may be larger than a row when img is a sub-image.
	for y := 0; y < h; y++ {
		si := src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y+y)
		row := src.Pix[si : si+w*4]
		di := b.PixOffset(0, y)
		for i, v := range row {
			b.pix[di+i] = float64(v)
		}
	}
	return b
}

// Width returns the number of columns.
func (b *PixelBuffer) Width() int { return b.width }

// Height returns the number of rows.
func (b *PixelBuffer) Height() int { return b.height }

// Bounds returns the buffer domain.
func (b *PixelBuffer) Bounds() image.Rectangle { return image.Rect(0, 0, b.width, b.height) }

// PixOffset returns the index of the first sample of the pixel at (x, y).
func (b *PixelBuffer) PixOffset(x, y int) int {
	return 4 * (y*b.width + x)
}

func (b *PixelBuffer) inside(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// At returns the color at (x, y).
func (b *PixelBuffer) At(x, y int) (Color, error) {
	if !b.inside(x, y) {
		return Color{}, fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, x, y, b.width, b.height)
	}
	i := b.PixOffset(x, y)
	s := b.pix[i : i+4 : i+4]
	return Color{R: s[0], G: s[1], B: s[2], A: s[3]}, nil
}

// Set overwrites the color at (x, y).
func (b *PixelBuffer) Set(x, y int, c Color) error {
	if !b.inside(x, y) {
		return fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, x, y, b.width, b.height)
	}
	i := b.PixOffset(x, y)
	s := b.pix[i : i+4 : i+4]
	s[0], s[1], s[2], s[3] = c.R, c.G, c.B, c.A
	return nil
}

// Clone returns a deep copy of the buffer.
func (b *PixelBuffer) Clone() *PixelBuffer {
	pix := make([]float64, len(b.pix))
	copy(pix, b.pix)
	return &PixelBuffer{width: b.width, height: b.height, pix: pix}
}

// Equal reports whether both buffers have the same dimensions and samples.
func (b *PixelBuffer) Equal(o *PixelBuffer) bool {
	if b.width != o.width || b.height != o.height {
		return false
	}
	for i, v := range b.pix {
		if v != o.pix[i] {
			return false
		}
	}
	return true
}

// Bytes returns the samples as 8 bit RGBA data, rounded and clamped to [0, 255].
func (b *PixelBuffer) Bytes() []uint8 {
	data := make([]uint8, len(b.pix))
	for i, v := range b.pix {
		data[i] = toByte(v)
	}
	return data
}

// Image returns the buffer as a new *image.NRGBA.
func (b *PixelBuffer) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Bytes(),
		Stride: b.width * 4,
		Rect:   b.Bounds(),
	}
}

// toNRGBA returns img as an *image.NRGBA. NRGBA images are returned as is,
// so translucent pixels keep their exact samples.
func toNRGBA(img image.Image) *image.NRGBA {
	if src, ok := img.(*image.NRGBA); ok {
		return src
	}
	b := img.Bounds()
	dst := image.NewNRGBA(b.Sub(b.Min))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
