package coupler

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/coastsim/internal/bmi"
)

// Probe accumulates a scalar over a coupled run.
type Probe interface {
	Name() string
	Observe(step int, t float64)
	Value() float64
	Reset()
}

// Observer is called after every completed step.
type Observer interface {
	OnStep(step int, t float64)
}

// Result summarizes one coupled run.
type Result struct {
	StepsTaken int
	Times      []float64
	Probes     map[string]float64
}

// Driver advances a fixed set of models in lockstep, routing bound variables
// between them before each advance. Models update in the order they were
// added; for one-directional couplings the producer must come first.
type Driver struct {
	models    []*bmi.Handle
	bindings  []Binding
	probes    []Probe
	observers []Observer
	pool      *bufferPool
	log       *logrus.Logger
}

func New(models ...*bmi.Handle) *Driver {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	return &Driver{
		models: models,
		pool:   newBufferPool(),
		log:    log,
	}
}

func (d *Driver) Bind(b Binding)             { d.bindings = append(d.bindings, b) }
func (d *Driver) AddProbe(p Probe)           { d.probes = append(d.probes, p) }
func (d *Driver) AddObserver(o Observer)     { d.observers = append(d.observers, o) }
func (d *Driver) SetLogger(l *logrus.Logger) { d.log = l }

// Run advances all models for the given number of steps. It fails fast: the
// first component error aborts the run, wrapped with the originating model
// and step index. No rollback is attempted.
func (d *Driver) Run(ctx context.Context, steps int) (*Result, error) {
	if steps <= 0 {
		return nil, &bmi.ConfigError{Option: "steps", Reason: "must be positive"}
	}
	if len(d.models) == 0 {
		return nil, &bmi.ConfigError{Option: "models", Reason: "at least one model required"}
	}
	for _, m := range d.models {
		if m.State() != bmi.Initialized {
			return nil, &bmi.LifecycleError{Op: "run", State: m.State()}
		}
	}

	for _, p := range d.probes {
		p.Reset()
	}

	result := &Result{
		Times:  make([]float64, 0, steps),
		Probes: make(map[string]float64),
	}

	for step := 0; step < steps; step++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := d.Step(step); err != nil {
			return result, err
		}

		t := d.models[len(d.models)-1].Time()
		for _, p := range d.probes {
			p.Observe(step, t)
		}
		for _, o := range d.observers {
			o.OnStep(step, t)
		}

		result.StepsTaken++
		result.Times = append(result.Times, t)

		if step%100 == 0 {
			d.log.WithFields(logrus.Fields{"step": step, "t": t}).Debug("coupling step")
		}
	}

	for _, p := range d.probes {
		result.Probes[p.Name()] = p.Value()
	}
	return result, nil
}

// Step performs one exchange-and-update cycle: every binding is routed, then
// every model advances once, in order.
func (d *Driver) Step(step int) error {
	if err := d.exchange(step); err != nil {
		return err
	}
	for _, m := range d.models {
		if err := m.Update(); err != nil {
			return &bmi.CouplingError{Model: m.Name(), Step: step, Wrapped: err}
		}
	}
	return nil
}

func (d *Driver) exchange(step int) error {
	for _, b := range d.bindings {
		buf := d.pool.get(b.Source, b.SourceVar)
		vals, err := b.Source.GetValue(b.SourceVar, buf)
		if err != nil {
			d.pool.put(buf)
			return &bmi.CouplingError{Model: b.Source.Name(), Step: step, Wrapped: err}
		}
		if b.Transform != nil {
			vals = b.Transform(vals)
		}
		err = b.Target.SetValue(b.TargetVar, vals)
		d.pool.put(vals)
		if err != nil {
			return &bmi.CouplingError{Model: b.Target.Name(), Step: step, Wrapped: err}
		}
	}
	return nil
}

// RunWithCallback steps the coupling until the callback returns false or an
// error occurs. Used by the live view.
func (d *Driver) RunWithCallback(ctx context.Context, callback func(step int, t float64) bool) error {
	if len(d.models) == 0 {
		return &bmi.ConfigError{Option: "models", Reason: "at least one model required"}
	}
	for _, m := range d.models {
		if m.State() != bmi.Initialized {
			return &bmi.LifecycleError{Op: "run", State: m.State()}
		}
	}

	for step := 0; ; step++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := d.Step(step); err != nil {
			return err
		}

		if !callback(step, d.models[len(d.models)-1].Time()) {
			return nil
		}
	}
}

// Finalize releases every model, reporting the first failure.
func (d *Driver) Finalize() error {
	var first error
	for _, m := range d.models {
		if err := m.Finalize(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
