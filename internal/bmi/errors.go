package bmi

import "fmt"

// ConfigError reports a rejected engine option.
type ConfigError struct {
	Option string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("bmi: bad option %q: %s", e.Option, e.Reason)
}

// LifecycleError reports an operation invalid for the handle's current state.
type LifecycleError struct {
	Op    string
	State State
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("bmi: %s not allowed in state %s", e.Op, e.State)
}

// SequenceError reports a non-monotonic time advance.
type SequenceError struct {
	Last float64
	Got  float64
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("bmi: update target %g precedes previous target %g", e.Got, e.Last)
}

// UnknownVariableError reports a lookup of an unregistered variable name.
type UnknownVariableError struct {
	Name string
}

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("bmi: unknown variable %q", e.Name)
}

// UnknownGridError reports a lookup of an unregistered grid id.
type UnknownGridError struct {
	ID int
}

func (e *UnknownGridError) Error() string {
	return fmt.Sprintf("bmi: unknown grid %d", e.ID)
}

// ShapeError reports an array whose length disagrees with the variable's grid.
type ShapeError struct {
	Name string
	Want int
	Got  int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("bmi: variable %q expects %d values, got %d", e.Name, e.Want, e.Got)
}

// CouplingError wraps a component failure with the model and step it occurred in.
type CouplingError struct {
	Model   string
	Step    int
	Wrapped error
}

func (e *CouplingError) Error() string {
	return fmt.Sprintf("step %d, model %s: %v", e.Step, e.Model, e.Wrapped)
}

func (e *CouplingError) Unwrap() error {
	return e.Wrapped
}
