package convolveme

import (
	"fmt"
	"image"
)

// Surface is a drawable area the session pushes its pixels to.
type Surface interface {
	// Bounds returns the dimensions of the surface.
	Bounds() image.Rectangle
	// WritePixels replaces the surface content with 8 bit RGBA data.
	WritePixels(pix []uint8) error
	// ReadPixels returns a copy of the data previously written.
	ReadPixels() ([]uint8, error)
}

// State tells which buffer a session currently displays.
type State int

const (
	ShowingOriginal State = iota
	ShowingFiltered
)

func (s State) String() string {
	switch s {
	case ShowingOriginal:
		return "original"
	case ShowingFiltered:
		return "filtered"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Options configures a filter session.
//
// The zero value is the simple kernel in toggle mode, since Permanent is false.
// Start from DefaultOptions to get the permanent mode.
type Options struct {
	// Kernel applied to the image. Simple is used when nil.
	Kernel *Kernel
	// Permanent shows the filtered image right away. Otherwise the session
	// toggles between the original and the filtered image on Enter and Leave.
	Permanent bool
}

// DefaultOptions returns the simple kernel in permanent mode.
func DefaultOptions() Options {
	return Options{
		Kernel:    Simple,
		Permanent: true,
	}
}

func (o Options) kernel() (*Kernel, error) {
	if o.Kernel == nil {
		return Simple, nil
	}
	if !o.Kernel.valid() {
		return nil, fmt.Errorf("%w: uninitialized kernel", ErrInvalidKernel)
	}
	return o.Kernel, nil
}

// Session holds the original and the filtered pixels of one image and selects
// which of them is shown on its surface. Both buffers are computed once and
// never modified afterwards. A Session is not safe for concurrent use.
type Session struct {
	kernel    *Kernel
	permanent bool
	surface   Surface
	state     State
	closed    bool

	original *PixelBuffer
	filtered *PixelBuffer

	// 8 bit views pushed to the surface.
	originalPix []uint8
	filteredPix []uint8
}

// NewSession captures a copy of src, convolves it with the configured kernel and
// displays the result on surface: the filtered image in permanent mode, the
// original one otherwise. Nothing is written to the surface on error.
func NewSession(src *PixelBuffer, surface Surface, opts Options) (*Session, error) {
	kernel, err := opts.kernel()
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("%w: nil source", ErrBufferSize)
	}
	if surface == nil {
		return nil, fmt.Errorf("%w: nil surface", ErrDimensionMismatch)
	}
	if b := surface.Bounds(); b.Dx() != src.Width() || b.Dy() != src.Height() {
		return nil, fmt.Errorf("%w: surface is %dx%d, image is %dx%d",
			ErrDimensionMismatch, b.Dx(), b.Dy(), src.Width(), src.Height())
	}

	original := src.Clone()
	filtered, err := Convolve(original, kernel)
	if err != nil {
		return nil, err
	}

	s := &Session{
		kernel:      kernel,
		permanent:   opts.Permanent,
		surface:     surface,
		original:    original,
		filtered:    filtered,
		originalPix: original.Bytes(),
		filteredPix: filtered.Bytes(),
	}
	if s.permanent {
		err = s.ShowFiltered()
	} else {
		err = s.ShowOriginal()
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ShowOriginal displays the original pixels.
func (s *Session) ShowOriginal() error {
	return s.show(ShowingOriginal)
}

// ShowFiltered displays the filtered pixels.
func (s *Session) ShowFiltered() error {
	return s.show(ShowingFiltered)
}

func (s *Session) show(state State) error {
	if s.closed {
		return ErrSessionClosed
	}
	pix := s.originalPix
	if state == ShowingFiltered {
		pix = s.filteredPix
	}
	if err := s.surface.WritePixels(pix); err != nil {
		return fmt.Errorf("convolveme: display %s: %w", state, err)
	}
	s.state = state
	Logger().Debug("display", "state", state)
	return nil
}

// Enter handles the pointer entering the displayed image.
// It shows the filtered pixels in toggle mode and does nothing in permanent mode.
func (s *Session) Enter() error {
	if s.permanent {
		return nil
	}
	return s.ShowFiltered()
}

// Leave handles the pointer leaving the displayed image.
// It restores the original pixels in toggle mode and does nothing in permanent mode.
func (s *Session) Leave() error {
	if s.permanent {
		return nil
	}
	return s.ShowOriginal()
}

// State returns the buffer currently displayed.
func (s *Session) State() State { return s.state }

// Permanent reports whether the session is in permanent mode.
func (s *Session) Permanent() bool { return s.permanent }

// Kernel returns the kernel the session was created with.
func (s *Session) Kernel() *Kernel { return s.kernel }

// Surface returns the surface the session draws on.
func (s *Session) Surface() Surface { return s.surface }

// Original returns a copy of the captured source pixels.
func (s *Session) Original() *PixelBuffer {
	if s.closed {
		return nil
	}
	return s.original.Clone()
}

// Filtered returns a copy of the convolved pixels.
func (s *Session) Filtered() *PixelBuffer {
	if s.closed {
		return nil
	}
	return s.filtered.Clone()
}

// Close releases both buffers. Display operations fail afterwards.
func (s *Session) Close() {
	s.closed = true
	s.original, s.filtered = nil, nil
	s.originalPix, s.filteredPix = nil, nil
}
