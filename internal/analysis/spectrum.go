package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform of data. The input is padded
// with zeros to the next power of two.
func FFT(data []float64) []complex128 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)
	return fft(padded)
}

func fft(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := fft(even)
	fodd := fft(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}
	return result
}

// PowerSpectrum returns the one-sided amplitude spectrum of data.
func PowerSpectrum(data []float64) []float64 {
	f := FFT(data)
	ps := make([]float64, len(f)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(f[i])
	}
	return ps
}

// DominantWavelength returns the alongshore wavelength (in the same units as
// spacing * samples) carrying the most power in a shoreline profile. The mean
// is removed first; a flat profile returns 0.
func DominantWavelength(profile []float64, spacing float64) float64 {
	if len(profile) < 4 {
		return 0
	}

	mean := 0.0
	for _, v := range profile {
		mean += v
	}
	mean /= float64(len(profile))

	detrended := make([]float64, len(profile))
	for i, v := range profile {
		detrended[i] = v - mean
	}

	ps := PowerSpectrum(detrended)
	best, bestPower := 0, 0.0
	for k := 1; k < len(ps); k++ {
		if ps[k] > bestPower {
			best, bestPower = k, ps[k]
		}
	}
	if best == 0 || bestPower == 0 {
		return 0
	}

	n := 1
	for n < len(profile) {
		n *= 2
	}
	return float64(n) * spacing / float64(best)
}
