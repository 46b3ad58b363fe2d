package convolveme

import "errors"

var (
	// ErrInvalidKernel is returned when a kernel matrix is empty, not square or has an even side.
	ErrInvalidKernel = errors.New("convolveme: invalid kernel")
	// ErrOutOfBounds is returned on pixel access outside of the buffer dimensions.
	ErrOutOfBounds = errors.New("convolveme: coordinates out of bounds")
	// ErrDimensionMismatch is returned when the kernel leaves no interior pixel to compute.
	ErrDimensionMismatch = errors.New("convolveme: kernel too large for image")
	// ErrBufferSize is returned when raw pixel data does not match the declared dimensions.
	ErrBufferSize = errors.New("convolveme: pixel data does not match dimensions")
	// ErrUnknownKernel is returned by the catalog lookup for an unregistered name.
	ErrUnknownKernel = errors.New("convolveme: unknown kernel")
	// ErrSessionClosed is returned by display operations on a released session.
	ErrSessionClosed = errors.New("convolveme: session closed")
	// ErrAlreadyBound is returned by Registry.Bind for a key which already has a session.
	ErrAlreadyBound = errors.New("convolveme: element already bound")
)
