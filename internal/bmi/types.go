package bmi

// Role describes how a model exchanges a variable.
type Role int

const (
	RoleInput Role = 1 << iota
	RoleOutput
	RoleInOut = RoleInput | RoleOutput
)

func (r Role) Input() bool  { return r&RoleInput != 0 }
func (r Role) Output() bool { return r&RoleOutput != 0 }

// VarInfo is the exchange metadata for one named variable.
type VarInfo struct {
	Name  string
	Units string
	DType string
	Grid  int
	Role  Role
}

// Grid describes one spatial discretization. Shape, spacing and origin are
// fixed once the owning engine is initialized.
type Grid struct {
	ID      int
	Type    string
	Rank    int
	Shape   []int
	Spacing []float64
	Origin  []float64
}

// Size returns the number of elements a variable on this grid holds.
func (g Grid) Size() int {
	n := 1
	for _, s := range g.Shape {
		n *= s
	}
	return n
}

// Config holds named scalar options consumed by an engine at initialization.
type Config map[string]float64

// Float returns the option value for key, or def when absent.
func (c Config) Float(key string, def float64) float64 {
	if v, ok := c[key]; ok {
		return v
	}
	return def
}

// Int returns the option value for key rounded down, or def when absent.
func (c Config) Int(key string, def int) int {
	if v, ok := c[key]; ok {
		return int(v)
	}
	return def
}

// Engine is the raw simulation component contract. Engines are plain stepping
// models; all lifecycle and exchange validation lives in Handle.
type Engine interface {
	Name() string
	Initialize(cfg Config) error
	Update() error
	GetValue(name string) []float64
	SetValue(name string, values []float64)
	Finalize()
	Vars() []VarInfo
	Grids() []Grid
	Time() float64
	TimeStep() float64
}
