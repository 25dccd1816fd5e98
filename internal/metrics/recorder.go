package metrics

import (
	"github.com/san-kum/coastsim/internal/bmi"
)

// ProfileRecorder is an observer that snapshots a grid variable every Nth
// step, building the time series the store and plots consume.
type ProfileRecorder struct {
	h       *bmi.Handle
	varName string
	every   int

	Times    []float64
	Profiles [][]float64
}

func NewProfileRecorder(h *bmi.Handle, varName string, every int) *ProfileRecorder {
	if every < 1 {
		every = 1
	}
	return &ProfileRecorder{h: h, varName: varName, every: every}
}

func (r *ProfileRecorder) OnStep(step int, t float64) {
	if step%r.every != 0 {
		return
	}
	vals, err := r.h.GetValue(r.varName, nil)
	if err != nil {
		return
	}
	r.Times = append(r.Times, t)
	r.Profiles = append(r.Profiles, vals)
}
