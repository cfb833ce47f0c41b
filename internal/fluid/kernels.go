package fluid

import "github.com/chewxy/math32"

// SmoothingKernel is the spiky density kernel (h-d)² normalised over the
// disc of radius h.
func SmoothingKernel(d, h float32) float32 {
	if d >= h {
		return 0
	}
	volume := math32.Pi * math32.Pow(h, 4) / 6
	return (h - d) * (h - d) / volume
}

// SmoothingKernelDerivative is the slope of SmoothingKernel. It is negative
// inside the support.
func SmoothingKernelDerivative(d, h float32) float32 {
	if d >= h {
		return 0
	}
	scale := 12 / (math32.Pi * math32.Pow(h, 4))
	return (d - h) * scale
}

func ViscosityKernel(d, h float32) float32 {
	if d >= h {
		return 0
	}
	volume := math32.Pi * math32.Pow(h, 8) / 4
	v := h*h - d*d
	return v * v * v / volume
}
