package convolveme

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Kernel is an immutable square matrix of convolution weights.
// The side length is always odd, so every kernel has a well defined center.
type Kernel struct {
	size    int
	radius  int
	weights []float64 // row major, size*size
}

// NewKernel builds a kernel from the given matrix. The matrix must be non-empty,
// square and have an odd side length. The matrix is copied.
func NewKernel(matrix [][]float64) (*Kernel, error) {
	size := len(matrix)
	if size == 0 {
		return nil, fmt.Errorf("%w: empty matrix", ErrInvalidKernel)
	}
	if size%2 == 0 {
		return nil, fmt.Errorf("%w: even side length %d has no center", ErrInvalidKernel, size)
	}
	weights := make([]float64, 0, size*size)
	for i, row := range matrix {
		if len(row) != size {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidKernel, i, len(row), size)
		}
		weights = append(weights, row...)
	}
	return &Kernel{
		size:    size,
		radius:  (size - 1) / 2,
		weights: weights,
	}, nil
}

// mustKernel is used for the built-in catalog only.
func mustKernel(matrix [][]float64) *Kernel {
	k, err := NewKernel(matrix)
	if err != nil {
		panic(err)
	}
	return k
}

// Size returns the side length of the kernel.
func (k *Kernel) Size() int { return k.size }

// Radius returns the half-width of the sliding window.
func (k *Kernel) Radius() int { return k.radius }

// At returns the weight at the given row and column.
func (k *Kernel) At(row, col int) float64 {
	return k.weights[row*k.size+col]
}

// Weights returns a copy of the kernel matrix.
func (k *Kernel) Weights() [][]float64 {
	matrix := make([][]float64, k.size)
	for i := range matrix {
		matrix[i] = make([]float64, k.size)
		copy(matrix[i], k.weights[i*k.size:(i+1)*k.size])
	}
	return matrix
}

// Sum returns the sum of all the weights.
func (k *Kernel) Sum() float64 {
	return floats.Sum(k.weights)
}

// Clone returns an independent copy of the kernel.
func (k *Kernel) Clone() *Kernel {
	weights := make([]float64, len(k.weights))
	copy(weights, k.weights)
	return &Kernel{size: k.size, radius: k.radius, weights: weights}
}

// Scale returns a new kernel with every weight multiplied by f.
func (k *Kernel) Scale(f float64) *Kernel {
	c := k.Clone()
	floats.Scale(f, c.weights)
	return c
}

// Normalize returns a new kernel whose weights sum to 1.
// Kernels summing to zero (edge detectors) are returned unchanged.
func (k *Kernel) Normalize() *Kernel {
	sum := k.Sum()
	if sum == 0 {
		return k.Clone()
	}
	return k.Scale(1 / sum)
}

func (k *Kernel) valid() bool {
	return k != nil && k.size > 0 && k.size%2 == 1 && len(k.weights) == k.size*k.size
}

func (k *Kernel) String() string {
	var sb strings.Builder
	for i := 0; i < k.size; i++ {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for j := 0; j < k.size; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%g", k.At(i, j))
		}
	}
	return sb.String()
}

// Common kernels. They are shared read-only values: derive a new kernel
// with Clone, Scale or Normalize instead of modifying them. The catalog
// lookup reads these variables, so reassigning one changes KernelByName too.
var (
	// Simple leaves the interior pixels unchanged.
	Simple = mustKernel([][]float64{
		{0, 0, 0},
		{0, 1, 0},
		{0, 0, 0},
	})

	Sharpen = mustKernel([][]float64{
		{0, -1, 0},
		{-1, 5, -1},
		{0, -1, 0},
	})

	Blur = mustKernel([][]float64{
		{1.0 / 9, 1.0 / 9, 1.0 / 9},
		{1.0 / 9, 1.0 / 9, 1.0 / 9},
		{1.0 / 9, 1.0 / 9, 1.0 / 9},
	})

	Emboss = mustKernel([][]float64{
		{-2, -1, 0},
		{-1, 1, 1},
		{0, 1, 2},
	})

	// Edge is a laplacian edge detector.
	Edge = mustKernel(edgeMatrix(1))
)

// Identity is an alias of Simple, bound at package initialization.
var Identity = Simple

// catalog is built from the package variables on each lookup,
// so a reassigned variable is also what KernelByName returns.
func catalog() map[string]*Kernel {
	return map[string]*Kernel{
		"simple":   Simple,
		"identity": Identity,
		"sharpen":  Sharpen,
		"blur":     Blur,
		"emboss":   Emboss,
		"edge":     Edge,
	}
}

// KernelByName looks up a built-in kernel. Names are case insensitive.
func KernelByName(name string) (*Kernel, error) {
	k, ok := catalog()[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKernel, name)
	}
	return k, nil
}

// Kernels returns the sorted names of the built-in kernels.
func Kernels() []string {
	names := make([]string, 0, 6)
	for name := range catalog() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BoxBlur returns a normalized averaging kernel of the given radius.
func BoxBlur(radius int) (*Kernel, error) {
	if radius < 0 {
		return nil, fmt.Errorf("%w: negative radius %d", ErrInvalidKernel, radius)
	}
	k, err := NewKernel(blurMatrix(radius))
	if err != nil {
		return nil, err
	}
	return k.Normalize(), nil
}

// blurMatrix populates a matrix with ones, used for averaging.
func blurMatrix(radius int) [][]float64 {
	side := radius*2 + 1
	matrix := make([][]float64, side)
	for i := range matrix {
		matrix[i] = make([]float64, side)
		for j := range matrix[i] {
			matrix[i][j] = 1
		}
	}
	return matrix
}

// edgeMatrix populates a matrix with ones around a negative center balancing the sum to zero.
func edgeMatrix(radius int) [][]float64 {
	matrix := blurMatrix(radius)
	side := len(matrix)
	matrix[radius][radius] = float64(1 - side*side)
	return matrix
}
