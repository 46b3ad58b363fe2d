package convolveme

import (
	"testing"
)

func BenchmarkConvolve(b *testing.B) {
	src := randomBuffer(b, 512, 512)
	for _, k := range []struct {
		name   string
		kernel *Kernel
	}{
		{"sharpen", Sharpen},
		{"blur", Blur},
		{"box7", mustBoxBlur(b, 3)},
	} {
		b.Run(k.name, func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := Convolve(src, k.kernel); err != nil {
					b.Fatalf("Failed convolving benchmark image: %v", err)
				}
			}
		})
	}
}

func BenchmarkNewSession(b *testing.B) {
	src := randomBuffer(b, 512, 512)
	opts := Options{Kernel: Emboss, Permanent: false}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := NewSession(src, NewCanvas(512, 512), opts); err != nil {
			b.Fatalf("Failed creating session: %v", err)
		}
	}
}

func mustBoxBlur(tb testing.TB, radius int) *Kernel {
	tb.Helper()
	k, err := BoxBlur(radius)
	if err != nil {
		tb.Fatalf("BoxBlur(%d): %v", radius, err)
	}
	return k
}
