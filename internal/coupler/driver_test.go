package coupler

import (
	"context"
	"errors"
	"fmt"

	ginkgo "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/coastsim/internal/bmi"
)

// sourceEngine exposes one scalar output that counts update calls.
type sourceEngine struct {
	t     float64
	value []float64
}

func (s *sourceEngine) Name() string { return "source" }

func (s *sourceEngine) Initialize(cfg bmi.Config) error {
	s.value = []float64{0}
	return nil
}

func (s *sourceEngine) Update() error {
	s.value[0]++
	s.t++
	return nil
}

func (s *sourceEngine) GetValue(name string) []float64 { return s.value }

func (s *sourceEngine) SetValue(name string, v []float64) {}

func (s *sourceEngine) Finalize() { s.value = nil }

func (s *sourceEngine) Vars() []bmi.VarInfo {
	return []bmi.VarInfo{
		{Name: "signal", Units: "1", DType: "float64", Grid: 0, Role: bmi.RoleOutput},
	}
}

func (s *sourceEngine) Grids() []bmi.Grid {
	return []bmi.Grid{{ID: 0, Type: "scalar", Rank: 0, Shape: []int{1}}}
}

func (s *sourceEngine) Time() float64     { return s.t }
func (s *sourceEngine) TimeStep() float64 { return 1 }

// sinkEngine records every value written to its input and can be armed to
// fail at a given update call.
type sinkEngine struct {
	t        float64
	updates  int
	failAt   int
	received []float64
	last     []float64
}

func newSink() *sinkEngine { return &sinkEngine{failAt: -1} }

func (s *sinkEngine) Name() string { return "sink" }

func (s *sinkEngine) Initialize(cfg bmi.Config) error {
	s.last = []float64{0}
	return nil
}

func (s *sinkEngine) Update() error {
	if s.failAt >= 0 && s.updates == s.failAt {
		return fmt.Errorf("sink blew up")
	}
	s.updates++
	s.t++
	s.received = append(s.received, s.last[0])
	return nil
}

func (s *sinkEngine) GetValue(name string) []float64 { return s.last }

func (s *sinkEngine) SetValue(name string, v []float64) { copy(s.last, v) }

func (s *sinkEngine) Finalize() { s.last = nil }

func (s *sinkEngine) Vars() []bmi.VarInfo {
	return []bmi.VarInfo{
		{Name: "forcing", Units: "1", DType: "float64", Grid: 0, Role: bmi.RoleInput},
	}
}

func (s *sinkEngine) Grids() []bmi.Grid {
	return []bmi.Grid{{ID: 0, Type: "scalar", Rank: 0, Shape: []int{1}}}
}

func (s *sinkEngine) Time() float64     { return s.t }
func (s *sinkEngine) TimeStep() float64 { return 1 }

// countingProbe counts Observe calls.
type countingProbe struct{ n int }

func (p *countingProbe) Name() string                { return "count" }
func (p *countingProbe) Observe(step int, t float64) { p.n++ }
func (p *countingProbe) Value() float64              { return float64(p.n) }
func (p *countingProbe) Reset()                      { p.n = 0 }

var _ = ginkgo.Describe("Driver", func() {
	var (
		src    *sourceEngine
		snk    *sinkEngine
		hSrc   *bmi.Handle
		hSnk   *bmi.Handle
		driver *Driver
	)

	ginkgo.BeforeEach(func() {
		src = &sourceEngine{}
		snk = newSink()
		hSrc = bmi.Open(src)
		hSnk = bmi.Open(snk)
		Expect(hSrc.Initialize(nil)).To(Succeed())
		Expect(hSnk.Initialize(nil)).To(Succeed())

		driver = New(hSrc, hSnk)
		driver.Bind(Binding{
			Source: hSrc, SourceVar: "signal",
			Target: hSnk, TargetVar: "forcing",
		})
	})

	ginkgo.It("routes the source output into the sink each step", func() {
		result, err := driver.Run(context.Background(), 3)
		Expect(err).ToNot(HaveOccurred())
		Expect(result.StepsTaken).To(Equal(3))
		// exchange happens before update: the sink sees the source value
		// from the end of the previous step
		Expect(snk.received).To(Equal([]float64{0, 1, 2}))
	})

	ginkgo.It("applies the binding transform in flight", func() {
		driver.bindings[0].Transform = Chain(Scale(2), Offset(1))
		_, err := driver.Run(context.Background(), 3)
		Expect(err).ToNot(HaveOccurred())
		Expect(snk.received).To(Equal([]float64{1, 3, 5}))
	})

	ginkgo.It("lets the last binding win on a shared target", func() {
		driver.Bind(Binding{
			Source: hSrc, SourceVar: "signal",
			Target: hSnk, TargetVar: "forcing",
			Transform: Constant(9),
		})
		_, err := driver.Run(context.Background(), 2)
		Expect(err).ToNot(HaveOccurred())
		Expect(snk.received).To(Equal([]float64{9, 9}))
	})

	ginkgo.It("fails fast with the model and step of the failure", func() {
		snk.failAt = 2
		result, err := driver.Run(context.Background(), 10)
		Expect(err).To(HaveOccurred())

		var cerr *bmi.CouplingError
		Expect(errors.As(err, &cerr)).To(BeTrue())
		Expect(cerr.Model).To(Equal("sink"))
		Expect(cerr.Step).To(Equal(2))
		Expect(result.StepsTaken).To(Equal(2))
	})

	ginkgo.It("surfaces a bad binding as a coupling error", func() {
		driver.Bind(Binding{
			Source: hSrc, SourceVar: "no_such_var",
			Target: hSnk, TargetVar: "forcing",
		})
		_, err := driver.Run(context.Background(), 1)

		var cerr *bmi.CouplingError
		Expect(errors.As(err, &cerr)).To(BeTrue())
		Expect(cerr.Model).To(Equal("source"))

		var uerr *bmi.UnknownVariableError
		Expect(errors.As(err, &uerr)).To(BeTrue())
	})

	ginkgo.It("rejects non-positive step counts", func() {
		_, err := driver.Run(context.Background(), 0)
		var cfgErr *bmi.ConfigError
		Expect(errors.As(err, &cfgErr)).To(BeTrue())
	})

	ginkgo.It("refuses to run without models", func() {
		d := New()
		_, err := d.Run(context.Background(), 1)
		var cfgErr *bmi.ConfigError
		Expect(errors.As(err, &cfgErr)).To(BeTrue())
		Expect(cfgErr.Option).To(Equal("models"))

		err = d.RunWithCallback(context.Background(), func(step int, t float64) bool { return false })
		Expect(errors.As(err, &cfgErr)).To(BeTrue())
	})

	ginkgo.It("refuses to run uninitialized models", func() {
		d := New(bmi.Open(&sourceEngine{}))
		_, err := d.Run(context.Background(), 1)
		var lerr *bmi.LifecycleError
		Expect(errors.As(err, &lerr)).To(BeTrue())
	})

	ginkgo.It("stops on context cancellation", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		result, err := driver.Run(ctx, 100)
		Expect(err).To(MatchError(context.Canceled))
		Expect(result.StepsTaken).To(Equal(0))
	})

	ginkgo.It("drives probes and observers once per step", func() {
		probe := &countingProbe{}
		driver.AddProbe(probe)

		steps := 0
		driver.AddObserver(observerFunc(func(step int, t float64) { steps++ }))

		result, err := driver.Run(context.Background(), 5)
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Probes).To(HaveKeyWithValue("count", 5.0))
		Expect(steps).To(Equal(5))
	})

	ginkgo.It("stops RunWithCallback when the callback declines", func() {
		seen := 0
		err := driver.RunWithCallback(context.Background(), func(step int, t float64) bool {
			seen++
			return seen < 4
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(seen).To(Equal(4))
	})

	ginkgo.It("finalizes every model", func() {
		_, err := driver.Run(context.Background(), 1)
		Expect(err).ToNot(HaveOccurred())
		Expect(driver.Finalize()).To(Succeed())
		Expect(hSrc.State()).To(Equal(bmi.Finalized))
		Expect(hSnk.State()).To(Equal(bmi.Finalized))
	})
})

var _ = ginkgo.Describe("Ensemble", func() {
	ginkgo.It("runs independent realizations in parallel", func() {
		factory := func(seed int64) (*Driver, int, error) {
			src := bmi.Open(&sourceEngine{})
			snk := bmi.Open(newSink())
			if err := src.Initialize(nil); err != nil {
				return nil, 0, err
			}
			if err := snk.Initialize(nil); err != nil {
				return nil, 0, err
			}
			d := New(src, snk)
			d.Bind(Binding{Source: src, SourceVar: "signal", Target: snk, TargetVar: "forcing"})
			return d, 10, nil
		}

		results, err := NewEnsemble(factory, 4, 1).Run(context.Background())
		Expect(err).ToNot(HaveOccurred())
		Expect(results).To(HaveLen(4))
		for _, r := range results {
			Expect(r.StepsTaken).To(Equal(10))
		}
	})
})

type observerFunc func(step int, t float64)

func (f observerFunc) OnStep(step int, t float64) { f(step, t) }
