package registry

import (
	"errors"
	"testing"

	"github.com/san-kum/coastsim/internal/bmi"
)

type stubEngine struct {
	t float64
}

func (s *stubEngine) Name() string { return "stub" }

func (s *stubEngine) Initialize(cfg bmi.Config) error { return nil }

func (s *stubEngine) Update() error { s.t++; return nil }

func (s *stubEngine) GetValue(name string) []float64 { return []float64{0} }

func (s *stubEngine) SetValue(name string, v []float64) {}

func (s *stubEngine) Finalize() {}

func (s *stubEngine) Time() float64 { return s.t }

func (s *stubEngine) TimeStep() float64 { return 1 }

func (s *stubEngine) Vars() []bmi.VarInfo {
	return []bmi.VarInfo{
		{Name: "wave_angle", Units: "rad", DType: "float64", Grid: 1, Role: bmi.RoleInput},
		{Name: "wave_height", Units: "m", DType: "float64", Grid: 1, Role: bmi.RoleInOut},
		{Name: "water_depth", Units: "m", DType: "float64", Grid: 0, Role: bmi.RoleOutput},
	}
}

func (s *stubEngine) Grids() []bmi.Grid {
	return []bmi.Grid{
		{ID: 0, Type: "uniform_rectilinear", Rank: 2, Shape: []int{4, 5}, Spacing: []float64{10, 10}, Origin: []float64{0, 0}},
		{ID: 1, Type: "scalar", Rank: 0, Shape: []int{1}},
	}
}

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	h := bmi.Open(&stubEngine{})
	if err := h.Initialize(nil); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	return New(h)
}

func TestRegistryNames(t *testing.T) {
	r := newTestRegistry(t)

	in := r.InputNames()
	if len(in) != 2 || in[0] != "wave_angle" || in[1] != "wave_height" {
		t.Errorf("unexpected input names: %v", in)
	}

	out := r.OutputNames()
	if len(out) != 2 || out[0] != "wave_height" || out[1] != "water_depth" {
		t.Errorf("unexpected output names: %v", out)
	}
}

func TestRegistryVarLookups(t *testing.T) {
	r := newTestRegistry(t)

	units, err := r.UnitsOf("wave_height")
	if err != nil || units != "m" {
		t.Errorf("expected units m, got %q (%v)", units, err)
	}

	dtype, err := r.DTypeOf("water_depth")
	if err != nil || dtype != "float64" {
		t.Errorf("expected dtype float64, got %q (%v)", dtype, err)
	}

	gid, err := r.GridIDOf("water_depth")
	if err != nil || gid != 0 {
		t.Errorf("expected grid 0, got %d (%v)", gid, err)
	}

	var uerr *bmi.UnknownVariableError
	if _, err := r.UnitsOf("nope"); !errors.As(err, &uerr) {
		t.Errorf("expected UnknownVariableError, got %v", err)
	}
}

func TestRegistryGridLookups(t *testing.T) {
	r := newTestRegistry(t)

	shape, err := r.ShapeOf(0)
	if err != nil || len(shape) != 2 || shape[0] != 4 || shape[1] != 5 {
		t.Errorf("unexpected shape %v (%v)", shape, err)
	}

	spacing, err := r.SpacingOf(0)
	if err != nil || spacing[0] != 10 || spacing[1] != 10 {
		t.Errorf("unexpected spacing %v (%v)", spacing, err)
	}

	gtype, err := r.GridTypeOf(1)
	if err != nil || gtype != "scalar" {
		t.Errorf("unexpected grid type %q (%v)", gtype, err)
	}

	var gerr *bmi.UnknownGridError
	if _, err := r.ShapeOf(42); !errors.As(err, &gerr) {
		t.Errorf("expected UnknownGridError, got %v", err)
	}
}
