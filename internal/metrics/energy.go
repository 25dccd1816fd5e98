package metrics

import (
	"github.com/san-kum/coastsim/internal/bmi"
)

// WaveEnergyFlux averages H^2 * T, proportional to the alongshore energy flux
// of the observed wave climate.
type WaveEnergyFlux struct {
	name      string
	wavesH    *bmi.Handle
	heightVar string
	periodVar string
	total     float64
	samples   int
}

func NewWaveEnergyFlux(waves *bmi.Handle, heightVar, periodVar string) *WaveEnergyFlux {
	return &WaveEnergyFlux{
		name:      "wave_energy_flux",
		wavesH:    waves,
		heightVar: heightVar,
		periodVar: periodVar,
	}
}

func (w *WaveEnergyFlux) Name() string { return w.name }

func (w *WaveEnergyFlux) Observe(step int, t float64) {
	h, err := w.wavesH.GetValue(w.heightVar, nil)
	if err != nil || len(h) == 0 {
		return
	}
	p, err := w.wavesH.GetValue(w.periodVar, nil)
	if err != nil || len(p) == 0 {
		return
	}
	w.total += h[0] * h[0] * p[0]
	w.samples++
}

func (w *WaveEnergyFlux) Value() float64 {
	if w.samples == 0 {
		return 0
	}
	return w.total / float64(w.samples)
}

func (w *WaveEnergyFlux) Reset() {
	w.total = 0
	w.samples = 0
}
