package metrics

import (
	"math"

	"github.com/san-kum/coastsim/internal/bmi"
)

// ShorelineExcursion tracks the mean absolute displacement of the shoreline
// from its position at the first observed step.
type ShorelineExcursion struct {
	name    string
	coast   *bmi.Handle
	varName string
	initial []float64
	buf     []float64
	current float64
}

func NewShorelineExcursion(coast *bmi.Handle, varName string) *ShorelineExcursion {
	return &ShorelineExcursion{
		name:    "shoreline_excursion",
		coast:   coast,
		varName: varName,
	}
}

func (s *ShorelineExcursion) Name() string { return s.name }

func (s *ShorelineExcursion) Observe(step int, t float64) {
	vals, err := s.coast.GetValue(s.varName, s.buf)
	if err != nil {
		return
	}
	s.buf = vals

	if s.initial == nil {
		s.initial = make([]float64, len(vals))
		copy(s.initial, vals)
		return
	}

	sum := 0.0
	for i, v := range vals {
		sum += math.Abs(v - s.initial[i])
	}
	s.current = sum / float64(len(vals))
}

func (s *ShorelineExcursion) Value() float64 { return s.current }

func (s *ShorelineExcursion) Reset() {
	s.initial = nil
	s.current = 0
}
