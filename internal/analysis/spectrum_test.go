package analysis

import (
	"math"
	"testing"
)

func TestFFTConstantSignal(t *testing.T) {
	data := []float64{1, 1, 1, 1}
	f := FFT(data)

	if real(f[0]) != 4 {
		t.Errorf("expected DC component 4, got %f", real(f[0]))
	}
	for i := 1; i < len(f); i++ {
		if math.Abs(real(f[i])) > 1e-9 || math.Abs(imag(f[i])) > 1e-9 {
			t.Errorf("expected zero at bin %d, got %v", i, f[i])
		}
	}
}

func TestPowerSpectrumSine(t *testing.T) {
	n := 64
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * 4 * float64(i) / float64(n))
	}

	ps := PowerSpectrum(data)

	peak, peakPower := 0, 0.0
	for k, p := range ps {
		if p > peakPower {
			peak, peakPower = k, p
		}
	}
	if peak != 4 {
		t.Errorf("expected spectral peak at bin 4, got %d", peak)
	}
}

func TestDominantWavelength(t *testing.T) {
	n := 128
	spacing := 100.0
	profile := make([]float64, n)
	for i := range profile {
		// 8 full undulations across the domain
		profile[i] = 50 + 10*math.Sin(2*math.Pi*8*float64(i)/float64(n))
	}

	wl := DominantWavelength(profile, spacing)
	want := float64(n) * spacing / 8
	if math.Abs(wl-want) > 1e-9 {
		t.Errorf("expected wavelength %f, got %f", want, wl)
	}
}

func TestDominantWavelengthFlat(t *testing.T) {
	profile := []float64{5, 5, 5, 5, 5, 5, 5, 5}
	if wl := DominantWavelength(profile, 1.0); wl != 0 {
		t.Errorf("expected 0 for flat profile, got %f", wl)
	}
}
