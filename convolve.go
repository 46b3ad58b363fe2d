package convolveme

import (
	"fmt"
	"time"

	"github.com/esimov/convolveme/utils"
)

// opaque is the alpha value written for every computed pixel.
const opaque = 255

// Convolve applies the kernel over the interior pixels of src and returns the
// result in a new buffer of the same size. src is never modified.
//
// Pixels closer than the kernel radius to any edge are not computed and stay
// zero (transparent black). The color channels are written without clamping,
// the alpha channel of every computed pixel is set to 255.
func Convolve(src *PixelBuffer, kernel *Kernel) (*PixelBuffer, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil source", ErrBufferSize)
	}
	if !kernel.valid() {
		return nil, fmt.Errorf("%w: uninitialized kernel", ErrInvalidKernel)
	}
	radius := kernel.radius
	if 2*radius >= utils.Min(src.width, src.height) {
		return nil, fmt.Errorf("%w: radius %d leaves no interior in %dx%d",
			ErrDimensionMismatch, radius, src.width, src.height)
	}

	start := time.Now()
	dst, err := NewPixelBuffer(src.width, src.height)
	if err != nil {
		return nil, err
	}

	var (
		width   = src.width
		size    = kernel.size
		weights = kernel.weights
		data    = src.pix
	)

	for i := radius; i < src.height-radius; i++ {
		for j := radius; j < width-radius; j++ {
			// Alpha is not accumulated, computed pixels are always opaque.
			var r, g, b float64

			for k := -radius; k <= radius; k++ {
				rstep := 4 * ((i+k)*width + j)
				kstep := (k + radius) * size

				for l := -radius; l <= radius; l++ {
					w := weights[kstep+l+radius]
					idx := rstep + 4*l
					r += data[idx+0] * w
					g += data[idx+1] * w
					b += data[idx+2] * w
				}
			}

			idx := dst.PixOffset(j, i)
			dst.pix[idx+0] = r
			dst.pix[idx+1] = g
			dst.pix[idx+2] = b
			dst.pix[idx+3] = opaque
		}
	}

	Logger().Debug("convolution done",
		"width", width,
		"height", src.height,
		"kernel", size,
		"elapsed", time.Since(start),
	)
	return dst, nil
}
