package convolveme

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestNewKernel(t *testing.T) {
	tests := []struct {
		name    string
		matrix  [][]float64
		radius  int
		wantErr bool
	}{
		{"1x1", [][]float64{{2}}, 0, false},
		{"3x3", [][]float64{{0, 0, 0}, {0, 1, 0}, {0, 0, 0}}, 1, false},
		{"5x5", blurMatrix(2), 2, false},
		{"empty", nil, 0, true},
		{"even", [][]float64{{1, 1}, {1, 1}}, 0, true},
		{"not square", [][]float64{{1, 1, 1}, {1, 1}, {1, 1, 1}}, 0, true},
		{"rows of wrong length", [][]float64{{1}, {1}, {1}}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := NewKernel(tt.matrix)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidKernel) {
					t.Fatalf("NewKernel() error = %v, want ErrInvalidKernel", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewKernel() unexpected error: %v", err)
			}
			if k.Radius() != tt.radius {
				t.Errorf("Radius() = %d, want %d", k.Radius(), tt.radius)
			}
			if k.Size() != len(tt.matrix) {
				t.Errorf("Size() = %d, want %d", k.Size(), len(tt.matrix))
			}
		})
	}
}

func TestNewKernelCopiesMatrix(t *testing.T) {
	m := [][]float64{{0, 0, 0}, {0, 1, 0}, {0, 0, 0}}
	k, err := NewKernel(m)
	if err != nil {
		t.Fatal(err)
	}
	m[1][1] = 42
	if got := k.At(1, 1); got != 1 {
		t.Errorf("kernel changed with its source matrix: At(1,1) = %v", got)
	}
	w := k.Weights()
	w[0][0] = 7
	if got := k.At(0, 0); got != 0 {
		t.Errorf("kernel changed through Weights(): At(0,0) = %v", got)
	}
}

func TestCatalogWeights(t *testing.T) {
	ninth := 1.0 / 9
	tests := []struct {
		name   string
		kernel *Kernel
		want   [][]float64
	}{
		{"simple", Simple, [][]float64{{0, 0, 0}, {0, 1, 0}, {0, 0, 0}}},
		{"sharpen", Sharpen, [][]float64{{0, -1, 0}, {-1, 5, -1}, {0, -1, 0}}},
		{"blur", Blur, [][]float64{{ninth, ninth, ninth}, {ninth, ninth, ninth}, {ninth, ninth, ninth}}},
		{"emboss", Emboss, [][]float64{{-2, -1, 0}, {-1, 1, 1}, {0, 1, 2}}},
		{"edge", Edge, [][]float64{{1, 1, 1}, {1, -8, 1}, {1, 1, 1}}},
	}
	for _, tt := range tests {
		if got := tt.kernel.Weights(); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s weights = %v, want %v", tt.name, got, tt.want)
		}
		if tt.kernel.Radius() != 1 {
			t.Errorf("%s radius = %d, want 1", tt.name, tt.kernel.Radius())
		}
	}
}

func TestKernelByName(t *testing.T) {
	for name, want := range map[string]*Kernel{
		"simple":   Simple,
		"identity": Simple,
		"Sharpen":  Sharpen,
		" blur ":   Blur,
		"EMBOSS":   Emboss,
		"edge":     Edge,
	} {
		got, err := KernelByName(name)
		if err != nil {
			t.Errorf("KernelByName(%q): %v", name, err)
			continue
		}
		if got != want {
			t.Errorf("KernelByName(%q) returned the wrong kernel", name)
		}
	}
	if _, err := KernelByName("gaussian"); !errors.Is(err, ErrUnknownKernel) {
		t.Errorf("KernelByName(gaussian) error = %v, want ErrUnknownKernel", err)
	}

	want := []string{"blur", "edge", "emboss", "identity", "sharpen", "simple"}
	if got := Kernels(); !reflect.DeepEqual(got, want) {
		t.Errorf("Kernels() = %v, want %v", got, want)
	}
}

func TestKernelByNameFollowsReassignment(t *testing.T) {
	saved := Sharpen
	t.Cleanup(func() { Sharpen = saved })

	Sharpen = mustBoxBlur(t, 1)
	got, err := KernelByName("sharpen")
	if err != nil {
		t.Fatal(err)
	}
	if got != Sharpen {
		t.Error("KernelByName(sharpen) ignores the reassigned variable")
	}
}

func TestKernelDerivations(t *testing.T) {
	if got := Sharpen.Sum(); got != 1 {
		t.Errorf("Sharpen.Sum() = %v, want 1", got)
	}
	if got := Edge.Sum(); got != 0 {
		t.Errorf("Edge.Sum() = %v, want 0", got)
	}

	scaled := Emboss.Scale(2)
	if scaled.At(0, 0) != -4 || Emboss.At(0, 0) != -2 {
		t.Errorf("Scale must not modify the source kernel: got %v and %v", scaled.At(0, 0), Emboss.At(0, 0))
	}

	n := Emboss.Normalize()
	if math.Abs(n.Sum()-1) > 1e-12 {
		t.Errorf("Normalize().Sum() = %v, want 1", n.Sum())
	}
	if e := Edge.Normalize(); !reflect.DeepEqual(e.Weights(), Edge.Weights()) {
		t.Errorf("Normalize of a zero sum kernel changed weights: %v", e.Weights())
	}

	c := Blur.Clone()
	c.weights[0] = 100
	if Blur.At(0, 0) == 100 {
		t.Error("Clone shares weights with the built-in kernel")
	}
}

func TestBoxBlur(t *testing.T) {
	k, err := BoxBlur(2)
	if err != nil {
		t.Fatal(err)
	}
	if k.Size() != 5 || k.Radius() != 2 {
		t.Fatalf("BoxBlur(2) size %d radius %d, want 5 and 2", k.Size(), k.Radius())
	}
	if math.Abs(k.At(0, 0)-1.0/25) > 1e-15 {
		t.Errorf("BoxBlur(2) weight = %v, want 1/25", k.At(0, 0))
	}
	if _, err := BoxBlur(-1); !errors.Is(err, ErrInvalidKernel) {
		t.Errorf("BoxBlur(-1) error = %v, want ErrInvalidKernel", err)
	}
}

func TestKernelString(t *testing.T) {
	want := "0 -1 0\n-1 5 -1\n0 -1 0"
	if got := Sharpen.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
