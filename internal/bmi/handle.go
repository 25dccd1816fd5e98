package bmi

// State is a handle's position in the model lifecycle.
type State int

const (
	Uninitialized State = iota
	Initialized
	Finalized
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case Finalized:
		return "finalized"
	}
	return "unknown"
}

// Handle wraps one Engine and enforces the lifecycle and exchange contract.
// The engine's internal state is owned exclusively by the handle; callers only
// see copies of variable values.
type Handle struct {
	eng      Engine
	state    State
	vars     map[string]VarInfo
	grids    map[int]Grid
	order    []string
	lastUpto float64
	hasUpto  bool
}

// Open wraps an engine in an uninitialized handle.
func Open(eng Engine) *Handle {
	return &Handle{eng: eng, state: Uninitialized}
}

func (h *Handle) Name() string      { return h.eng.Name() }
func (h *Handle) State() State      { return h.state }
func (h *Handle) Time() float64     { return h.eng.Time() }
func (h *Handle) TimeStep() float64 { return h.eng.TimeStep() }

// Initialize validates cfg through the engine and snapshots its variable and
// grid metadata. Variable-to-grid associations are fixed from here on.
func (h *Handle) Initialize(cfg Config) error {
	if h.state != Uninitialized {
		return &LifecycleError{Op: "initialize", State: h.state}
	}
	if err := h.eng.Initialize(cfg); err != nil {
		return err
	}

	h.vars = make(map[string]VarInfo)
	h.order = make([]string, 0)
	for _, v := range h.eng.Vars() {
		h.vars[v.Name] = v
		h.order = append(h.order, v.Name)
	}
	h.grids = make(map[int]Grid)
	for _, g := range h.eng.Grids() {
		h.grids[g.ID] = g
	}

	h.state = Initialized
	return nil
}

// Update advances the engine by one time step.
func (h *Handle) Update() error {
	if h.state != Initialized {
		return &LifecycleError{Op: "update", State: h.state}
	}
	return h.eng.Update()
}

// UpdateUntil advances the engine until its clock reaches t. Targets must be
// non-decreasing across calls.
func (h *Handle) UpdateUntil(t float64) error {
	if h.state != Initialized {
		return &LifecycleError{Op: "update_until", State: h.state}
	}
	if h.hasUpto && t < h.lastUpto {
		return &SequenceError{Last: h.lastUpto, Got: t}
	}
	h.lastUpto, h.hasUpto = t, true

	for h.eng.Time() < t {
		if err := h.eng.Update(); err != nil {
			return err
		}
	}
	return nil
}

// GetValue copies the current values of an output variable into out. A nil out
// allocates a fresh slice; a non-nil out must match the variable's grid size.
func (h *Handle) GetValue(name string, out []float64) ([]float64, error) {
	if h.state != Initialized {
		return nil, &LifecycleError{Op: "get_value", State: h.state}
	}
	v, ok := h.vars[name]
	if !ok || !v.Role.Output() {
		return nil, &UnknownVariableError{Name: name}
	}
	size := h.grids[v.Grid].Size()
	if out == nil {
		out = make([]float64, size)
	} else if len(out) != size {
		return nil, &ShapeError{Name: name, Want: size, Got: len(out)}
	}
	copy(out, h.eng.GetValue(name))
	return out, nil
}

// SetValue writes values into an input variable. Shape is validated before the
// engine is touched, so a rejected write leaves prior values unchanged.
func (h *Handle) SetValue(name string, values []float64) error {
	if h.state != Initialized {
		return &LifecycleError{Op: "set_value", State: h.state}
	}
	v, ok := h.vars[name]
	if !ok || !v.Role.Input() {
		return &UnknownVariableError{Name: name}
	}
	if size := h.grids[v.Grid].Size(); len(values) != size {
		return &ShapeError{Name: name, Want: size, Got: len(values)}
	}
	h.eng.SetValue(name, values)
	return nil
}

// Finalize releases the engine's state. Further calls on the handle fail.
func (h *Handle) Finalize() error {
	if h.state != Initialized {
		return &LifecycleError{Op: "finalize", State: h.state}
	}
	h.eng.Finalize()
	h.state = Finalized
	return nil
}

// VarNames returns all exchange variable names in declaration order.
func (h *Handle) VarNames() []string {
	names := make([]string, len(h.order))
	copy(names, h.order)
	return names
}

// Var returns the metadata for one variable name.
func (h *Handle) Var(name string) (VarInfo, bool) {
	v, ok := h.vars[name]
	return v, ok
}

// Grid returns the descriptor for one grid id.
func (h *Handle) Grid(id int) (Grid, bool) {
	g, ok := h.grids[id]
	return g, ok
}
