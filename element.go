package convolveme

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// ImageElement is an in-memory Host: an image displayed at a given size,
// which can be replaced by a surface and receives pointer events.
type ImageElement struct {
	src    image.Image
	width  int
	height int

	surface      Surface
	enter, leave func()
}

// NewImageElement displays src at width x height.
// A non-positive dimension falls back to the natural size of the image.
func NewImageElement(src image.Image, width, height int) *ImageElement {
	if width <= 0 {
		width = src.Bounds().Dx()
	}
	if height <= 0 {
		height = src.Bounds().Dy()
	}
	return &ImageElement{src: src, width: width, height: height}
}

// Source returns the image scaled to its displayed size.
func (e *ImageElement) Source() (image.Image, error) {
	if e.Detached() {
		return nil, errors.New("image element is detached")
	}
	b := e.src.Bounds()
	if b.Dx() == e.width && b.Dy() == e.height {
		return e.src, nil
	}
	dst := image.NewNRGBA(image.Rect(0, 0, e.width, e.height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), e.src, b, draw.Src, nil)
	return dst, nil
}

// NewSurface returns a new Canvas.
func (e *ImageElement) NewSurface(width, height int) (Surface, error) {
	if width != e.width || height != e.height {
		return nil, fmt.Errorf("%w: surface %dx%d for element %dx%d",
			ErrDimensionMismatch, width, height, e.width, e.height)
	}
	return NewCanvas(width, height), nil
}

// Replace detaches the image and displays s instead.
func (e *ImageElement) Replace(s Surface) error {
	if e.Detached() {
		return errors.New("image element is already replaced")
	}
	e.surface = s
	return nil
}

// OnHover registers the pointer handlers.
func (e *ImageElement) OnHover(enter, leave func()) {
	e.enter, e.leave = enter, leave
}

// PointerEnter simulates the pointer entering the element.
func (e *ImageElement) PointerEnter() {
	if e.enter != nil {
		e.enter()
	}
}

// PointerLeave simulates the pointer leaving the element.
func (e *ImageElement) PointerLeave() {
	if e.leave != nil {
		e.leave()
	}
}

// Detached reports whether the image has been replaced by a surface.
func (e *ImageElement) Detached() bool { return e.surface != nil }

// Surface returns the surface displayed in place of the image, if any.
func (e *ImageElement) Surface() Surface { return e.surface }

// Display returns what the element currently shows.
func (e *ImageElement) Display() (image.Image, error) {
	if e.surface == nil {
		return e.Source()
	}
	pix, err := e.surface.ReadPixels()
	if err != nil {
		return nil, err
	}
	return &image.NRGBA{
		Pix:    pix,
		Stride: e.surface.Bounds().Dx() * 4,
		Rect:   image.Rect(0, 0, e.surface.Bounds().Dx(), e.surface.Bounds().Dy()),
	}, nil
}
