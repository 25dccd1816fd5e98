package coupler

import "github.com/san-kum/coastsim/internal/bmi"

// Transform rewrites a value array in flight between two models. The input
// slice is scratch owned by the driver; implementations may modify it in
// place and must return a slice of the same length.
type Transform func(values []float64) []float64

// Binding routes one model's output variable into another model's input
// variable once per coupling step. Multiple bindings targeting the same input
// are applied in order; the last write wins.
type Binding struct {
	Source    *bmi.Handle
	SourceVar string
	Target    *bmi.Handle
	TargetVar string
	Transform Transform
}

// Scale multiplies every value by k.
func Scale(k float64) Transform {
	return func(values []float64) []float64 {
		for i := range values {
			values[i] *= k
		}
		return values
	}
}

// Offset adds k to every value.
func Offset(k float64) Transform {
	return func(values []float64) []float64 {
		for i := range values {
			values[i] += k
		}
		return values
	}
}

// Constant discards the source values and writes k everywhere.
func Constant(k float64) Transform {
	return func(values []float64) []float64 {
		for i := range values {
			values[i] = k
		}
		return values
	}
}

// Chain applies transforms left to right.
func Chain(ts ...Transform) Transform {
	return func(values []float64) []float64 {
		for _, t := range ts {
			values = t(values)
		}
		return values
	}
}
