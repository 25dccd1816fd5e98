package waves

import (
	"math"
	"math/rand"

	"github.com/san-kum/coastsim/internal/bmi"
)

// Standard exchange names for the wave climate.
const (
	VarAngle  = "sea_surface_water_wave__azimuth_angle_of_opposite_of_phase_velocity"
	VarHeight = "sea_surface_water_wave__height"
	VarPeriod = "sea_surface_water_wave__period"
)

const (
	DefaultAsymmetry = 0.5
	DefaultHighness  = 0.2
	DefaultHeight    = 2.0
	DefaultPeriod    = 7.0
)

// Climate generates a deep-water wave angle each step from a two-parameter
// directional distribution. Asymmetry in [-1,1] biases the approach side;
// highness in [0,1] is the fraction of waves steeper than 45 degrees off the
// shore normal.
type Climate struct {
	Asymmetry float64
	Highness  float64

	rng    *rand.Rand
	seed   int64
	t      float64
	angle  []float64
	height []float64
	period []float64
}

func New() *Climate {
	return &Climate{Asymmetry: DefaultAsymmetry, Highness: DefaultHighness}
}

func (c *Climate) Name() string { return "waves" }

func (c *Climate) Initialize(cfg bmi.Config) error {
	for key := range cfg {
		switch key {
		case "angle_asymmetry", "angle_highness_factor", "height", "period", "seed":
		default:
			return &bmi.ConfigError{Option: key, Reason: "unrecognized option"}
		}
	}

	c.Asymmetry = cfg.Float("angle_asymmetry", DefaultAsymmetry)
	c.Highness = cfg.Float("angle_highness_factor", DefaultHighness)
	if c.Asymmetry < -1 || c.Asymmetry > 1 {
		return &bmi.ConfigError{Option: "angle_asymmetry", Reason: "must be in [-1,1]"}
	}
	if c.Highness < 0 || c.Highness > 1 {
		return &bmi.ConfigError{Option: "angle_highness_factor", Reason: "must be in [0,1]"}
	}

	height := cfg.Float("height", DefaultHeight)
	period := cfg.Float("period", DefaultPeriod)
	if height <= 0 {
		return &bmi.ConfigError{Option: "height", Reason: "must be positive"}
	}
	if period <= 0 {
		return &bmi.ConfigError{Option: "period", Reason: "must be positive"}
	}

	c.seed = int64(cfg.Float("seed", 1))
	c.rng = rand.New(rand.NewSource(c.seed))
	c.angle = []float64{0}
	c.height = []float64{height}
	c.period = []float64{period}
	return nil
}

// Update draws the next wave angle. Highness splits the draw between the low
// band [0, pi/4) and the high band [pi/4, pi/2); asymmetry sets the sign.
func (c *Climate) Update() error {
	u := c.rng.Float64()
	var a float64
	if c.rng.Float64() < c.Highness {
		a = (1 + u) * math.Pi / 4
	} else {
		a = u * math.Pi / 4
	}
	if c.rng.Float64() >= (1+c.Asymmetry)/2 {
		a = -a
	}
	c.angle[0] = a
	c.t += c.TimeStep()
	return nil
}

func (c *Climate) GetValue(name string) []float64 {
	switch name {
	case VarAngle:
		return c.angle
	case VarHeight:
		return c.height
	case VarPeriod:
		return c.period
	}
	return nil
}

func (c *Climate) SetValue(name string, values []float64) {
	switch name {
	case VarHeight:
		copy(c.height, values)
	case VarPeriod:
		copy(c.period, values)
	}
}

func (c *Climate) Finalize() {
	c.angle, c.height, c.period, c.rng = nil, nil, nil, nil
}

func (c *Climate) Vars() []bmi.VarInfo {
	return []bmi.VarInfo{
		{Name: VarAngle, Units: "rad", DType: "float64", Grid: 0, Role: bmi.RoleOutput},
		{Name: VarHeight, Units: "m", DType: "float64", Grid: 0, Role: bmi.RoleInOut},
		{Name: VarPeriod, Units: "s", DType: "float64", Grid: 0, Role: bmi.RoleInOut},
	}
}

func (c *Climate) Grids() []bmi.Grid {
	return []bmi.Grid{
		{ID: 0, Type: "scalar", Rank: 0, Shape: []int{1}},
	}
}

func (c *Climate) Time() float64     { return c.t }
func (c *Climate) TimeStep() float64 { return 1.0 }
