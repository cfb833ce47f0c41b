package fluid

import (
	"math"
	"testing"
)

func TestKernels(t *testing.T) {
	const h = 30
	tests := []struct {
		name     string
		kernel   func(d, h float32) float32
		d        float32
		expected float64
	}{
		{"density at centre", SmoothingKernel, 0, 6 / (math.Pi * h * h)},
		{"density at edge", SmoothingKernel, h, 0},
		{"density outside", SmoothingKernel, 2 * h, 0},
		{"slope at centre", SmoothingKernelDerivative, 0, -12 / (math.Pi * h * h * h)},
		{"slope at edge", SmoothingKernelDerivative, h, 0},
		{"viscosity at centre", ViscosityKernel, 0, 4 / (math.Pi * h * h)},
		{"viscosity outside", ViscosityKernel, h + 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := float64(tt.kernel(tt.d, h))
			if math.Abs(got-tt.expected) > 1e-6*math.Max(1, math.Abs(tt.expected)) {
				t.Errorf("expected %g, got %g", tt.expected, got)
			}
		})
	}
}

func TestSmoothingKernelDecreasing(t *testing.T) {
	prev := SmoothingKernel(0, 10)
	for d := float32(0.5); d < 10; d += 0.5 {
		v := SmoothingKernel(d, 10)
		if v >= prev {
			t.Fatalf("kernel not decreasing at %f", d)
		}
		prev = v
	}
}
