package coastline

import (
	"math"

	"github.com/san-kum/coastsim/internal/bmi"
)

// Standard exchange names for the coastline model.
const (
	VarAngle     = "sea_surface_water_wave__azimuth_angle_of_opposite_of_phase_velocity"
	VarHeight    = "sea_surface_water_wave__height"
	VarPeriod    = "sea_surface_water_wave__period"
	VarDepth     = "sea_water__depth"
	VarShoreline = "land_water_interface__y_position"
)

const (
	DefaultRows      = 100
	DefaultCols      = 200
	DefaultSpacing   = 200.0
	DefaultSlope     = 0.01
	DefaultClosure   = 10.0
	DefaultTransport = 500.0
)

// Model evolves a sandy coastline under an incoming wave climate. The domain
// is a uniform rectilinear grid; the shoreline is tracked as a cross-shore
// position per alongshore column and moved by the divergence of a CERC-style
// alongshore sediment flux.
type Model struct {
	Rows    int
	Cols    int
	Spacing float64

	ShelfSlope   float64
	ClosureDepth float64
	Transport    float64

	t         float64
	shoreline []float64
	depth     []float64
	flux      []float64
	angle     []float64
	height    []float64
	period    []float64
}

func New() *Model {
	return &Model{
		Rows:         DefaultRows,
		Cols:         DefaultCols,
		Spacing:      DefaultSpacing,
		ShelfSlope:   DefaultSlope,
		ClosureDepth: DefaultClosure,
		Transport:    DefaultTransport,
	}
}

func (m *Model) Name() string { return "coastline" }

func (m *Model) Initialize(cfg bmi.Config) error {
	for key := range cfg {
		switch key {
		case "number_of_rows", "number_of_cols", "grid_spacing",
			"shelf_slope", "closure_depth", "transport_coefficient":
		default:
			return &bmi.ConfigError{Option: key, Reason: "unrecognized option"}
		}
	}

	if err := m.applyInt(cfg, "number_of_rows", &m.Rows); err != nil {
		return err
	}
	if err := m.applyInt(cfg, "number_of_cols", &m.Cols); err != nil {
		return err
	}
	m.Spacing = cfg.Float("grid_spacing", m.Spacing)
	if m.Spacing <= 0 {
		return &bmi.ConfigError{Option: "grid_spacing", Reason: "must be positive"}
	}
	m.ShelfSlope = cfg.Float("shelf_slope", m.ShelfSlope)
	if m.ShelfSlope <= 0 {
		return &bmi.ConfigError{Option: "shelf_slope", Reason: "must be positive"}
	}
	m.ClosureDepth = cfg.Float("closure_depth", m.ClosureDepth)
	if m.ClosureDepth <= 0 {
		return &bmi.ConfigError{Option: "closure_depth", Reason: "must be positive"}
	}
	m.Transport = cfg.Float("transport_coefficient", m.Transport)
	if m.Transport < 0 {
		return &bmi.ConfigError{Option: "transport_coefficient", Reason: "must be non-negative"}
	}

	m.shoreline = make([]float64, m.Cols)
	m.depth = make([]float64, m.Rows*m.Cols)
	m.flux = make([]float64, m.Cols+1)
	m.angle = []float64{0}
	m.height = []float64{DefaultHeightSeed}
	m.period = []float64{DefaultPeriodSeed}

	// straight coast mid-domain with a small sinusoidal perturbation so
	// transport gradients exist from the first step
	mid := float64(m.Rows) * m.Spacing / 2
	for i := range m.shoreline {
		m.shoreline[i] = mid + 0.1*m.Spacing*math.Sin(2*math.Pi*float64(i)/float64(m.Cols))
	}
	m.rebuildDepth()
	return nil
}

// Seed wave forcing used until a coupled wave model overwrites the inputs.
const (
	DefaultHeightSeed = 1.0
	DefaultPeriodSeed = 6.0
)

func (m *Model) applyInt(cfg bmi.Config, key string, dst *int) error {
	v, ok := cfg[key]
	if !ok {
		return nil
	}
	if v <= 0 || v != math.Trunc(v) {
		return &bmi.ConfigError{Option: key, Reason: "must be a positive integer"}
	}
	*dst = int(v)
	return nil
}

// Update moves the shoreline by one time step of alongshore transport.
func (m *Model) Update() error {
	n := m.Cols
	alpha := m.angle[0]
	q := m.Transport * math.Pow(m.height[0], 2.5)

	// edge fluxes; zero-flux lateral boundaries
	m.flux[0], m.flux[n] = 0, 0
	for i := 1; i < n; i++ {
		beta := math.Atan2(m.shoreline[i]-m.shoreline[i-1], m.Spacing)
		m.flux[i] = q * math.Sin(2*(alpha-beta))
	}

	limit := float64(m.Rows) * m.Spacing
	for i := 0; i < n; i++ {
		dy := -(m.flux[i+1] - m.flux[i]) * m.TimeStep() / (m.ClosureDepth * m.Spacing)
		m.shoreline[i] += dy
		if m.shoreline[i] < 0 {
			m.shoreline[i] = 0
		}
		if m.shoreline[i] > limit {
			m.shoreline[i] = limit
		}
	}

	m.rebuildDepth()
	m.t += m.TimeStep()
	return nil
}

func (m *Model) rebuildDepth() {
	for r := 0; r < m.Rows; r++ {
		x := (float64(r) + 0.5) * m.Spacing
		for c := 0; c < m.Cols; c++ {
			d := 0.0
			if x > m.shoreline[c] {
				d = m.ShelfSlope * (x - m.shoreline[c])
			}
			m.depth[r*m.Cols+c] = d
		}
	}
}

func (m *Model) GetValue(name string) []float64 {
	switch name {
	case VarDepth:
		return m.depth
	case VarShoreline:
		return m.shoreline
	case VarAngle:
		return m.angle
	case VarHeight:
		return m.height
	case VarPeriod:
		return m.period
	}
	return nil
}

func (m *Model) SetValue(name string, values []float64) {
	switch name {
	case VarAngle:
		copy(m.angle, values)
	case VarHeight:
		copy(m.height, values)
	case VarPeriod:
		copy(m.period, values)
	}
}

func (m *Model) Finalize() {
	m.shoreline, m.depth, m.flux = nil, nil, nil
	m.angle, m.height, m.period = nil, nil, nil
}

func (m *Model) Vars() []bmi.VarInfo {
	return []bmi.VarInfo{
		{Name: VarAngle, Units: "rad", DType: "float64", Grid: 1, Role: bmi.RoleInput},
		{Name: VarHeight, Units: "m", DType: "float64", Grid: 1, Role: bmi.RoleInput},
		{Name: VarPeriod, Units: "s", DType: "float64", Grid: 1, Role: bmi.RoleInput},
		{Name: VarDepth, Units: "m", DType: "float64", Grid: 0, Role: bmi.RoleOutput},
		{Name: VarShoreline, Units: "m", DType: "float64", Grid: 2, Role: bmi.RoleOutput},
	}
}

func (m *Model) Grids() []bmi.Grid {
	return []bmi.Grid{
		{
			ID: 0, Type: "uniform_rectilinear", Rank: 2,
			Shape:   []int{m.Rows, m.Cols},
			Spacing: []float64{m.Spacing, m.Spacing},
			Origin:  []float64{0, 0},
		},
		{ID: 1, Type: "scalar", Rank: 0, Shape: []int{1}},
		{
			ID: 2, Type: "uniform_rectilinear", Rank: 1,
			Shape:   []int{m.Cols},
			Spacing: []float64{m.Spacing},
			Origin:  []float64{0},
		},
	}
}

func (m *Model) Time() float64     { return m.t }
func (m *Model) TimeStep() float64 { return 1.0 }
