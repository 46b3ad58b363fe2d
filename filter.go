package convolveme

import (
	"image"
	"image/draw"
)

// Filter draws a filtered version of src into dst.
type Filter interface {
	Draw(dst draw.Image, src image.Image) error
	// Bounds calculates the appropriate bounds of an image after applying the filter.
	Bounds(srcBounds image.Rectangle) (dstBounds image.Rectangle)
}

// KernelFilter adapts a Kernel to the Filter interface.
// Samples outside of [0, 255] are clamped when drawn into dst.
type KernelFilter struct {
	Kernel *Kernel
}

// Draw convolves src and draws the result at the top left corner of dst.
func (f KernelFilter) Draw(dst draw.Image, src image.Image) error {
	res, err := Convolve(FromImage(src), f.Kernel)
	if err != nil {
		return err
	}
	draw.Draw(dst, dst.Bounds(), res.Image(), image.Point{}, draw.Src)
	return nil
}

// Bounds returns the source dimensions moved to the origin.
func (f KernelFilter) Bounds(srcBounds image.Rectangle) image.Rectangle {
	return srcBounds.Sub(srcBounds.Min)
}

// Chain applies a list of filters one after the other.
type Chain struct {
	Filters []Filter
}

// NewChain creates a chain of the given filters.
func NewChain(filters ...Filter) *Chain {
	return &Chain{
		Filters: filters,
	}
}

// KernelChain creates a chain convolving with each kernel in turn.
func KernelChain(kernels ...*Kernel) *Chain {
	c := &Chain{}
	for _, k := range kernels {
		c.Filters = append(c.Filters, KernelFilter{Kernel: k})
	}
	return c
}

// Bounds returns the bounds of an image after going through every filter.
func (c *Chain) Bounds(srcBounds image.Rectangle) image.Rectangle {
	dstBounds := srcBounds
	for _, f := range c.Filters {
		dstBounds = f.Bounds(dstBounds)
	}
	return dstBounds
}

// Draw applies all the filters to the src image and outputs the result to the dst image.
// An empty chain copies src.
func (c *Chain) Draw(dst draw.Image, src image.Image) error {
	if len(c.Filters) == 0 {
		draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
		return nil
	}

	first, last := 0, len(c.Filters)-1
	var tmpIn image.Image
	var tmpOut draw.Image

	for i, f := range c.Filters {
		if i == first {
			tmpIn = src
		} else {
			tmpIn = tmpOut
		}

		if i == last {
			tmpOut = dst
		} else {
			tmpOut = createTempImage(f.Bounds(tmpIn.Bounds()))
		}

		if err := f.Draw(tmpOut, tmpIn); err != nil {
			return err
		}
	}
	return nil
}

// Apply runs the chain over src and returns the result in a new image.
func (c *Chain) Apply(src image.Image) (*image.NRGBA, error) {
	dst := image.NewNRGBA(c.Bounds(src.Bounds()))
	if err := c.Draw(dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}

func createTempImage(r image.Rectangle) draw.Image {
	return image.NewNRGBA(r)
}
