package analysis

import (
	"errors"
	"math"
	"math/cmplx"
)

var ErrTooShort = errors.New("series too short for spectral analysis")

func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)

	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result
}

// PadPow2 returns data zero-padded to the next power of two.
func PadPow2(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)
	return padded
}

// PowerSpectrum returns the magnitude of the first half of the transform.
// The mean is removed first so the DC bin does not swamp the rest.
func PowerSpectrum(data []float64) []float64 {
	centered := make([]float64, len(data))
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	if len(data) > 0 {
		mean /= float64(len(data))
	}
	for i, v := range data {
		centered[i] = v - mean
	}

	fft := FFT(PadPow2(centered))
	ps := make([]float64, len(fft)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}

	return ps
}

type Spectrum struct {
	Power     []float64
	Dominant  float64 // hz
	Period    float64 // seconds, 0 when no oscillation
	BinWidth  float64
	PeakPower float64
}

// Analyze computes the spectrum of samples taken every dt seconds.
func Analyze(data []float64, dt float64) (*Spectrum, error) {
	if len(data) < 4 || dt <= 0 {
		return nil, ErrTooShort
	}

	ps := PowerSpectrum(data)
	n := len(ps) * 2
	s := &Spectrum{Power: ps, BinWidth: 1 / (float64(n) * dt)}

	peak := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > s.PeakPower {
			s.PeakPower = ps[i]
			peak = i
		}
	}

	s.Dominant = float64(peak) * s.BinWidth
	if s.Dominant > 0 {
		s.Period = 1 / s.Dominant
	}
	return s, nil
}
