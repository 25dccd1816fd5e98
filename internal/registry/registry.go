package registry

import (
	"github.com/san-kum/coastsim/internal/bmi"
)

// Registry is a read-only view of one handle's exchange metadata. It holds a
// non-owning reference to the handle; all lookups reflect the metadata frozen
// at initialization.
type Registry struct {
	h *bmi.Handle
}

func New(h *bmi.Handle) *Registry {
	return &Registry{h: h}
}

// InputNames returns the settable variable names in declaration order.
func (r *Registry) InputNames() []string {
	return r.names(func(v bmi.VarInfo) bool { return v.Role.Input() })
}

// OutputNames returns the readable variable names in declaration order.
func (r *Registry) OutputNames() []string {
	return r.names(func(v bmi.VarInfo) bool { return v.Role.Output() })
}

func (r *Registry) names(keep func(bmi.VarInfo) bool) []string {
	names := make([]string, 0)
	for _, name := range r.h.VarNames() {
		if v, ok := r.h.Var(name); ok && keep(v) {
			names = append(names, name)
		}
	}
	return names
}

func (r *Registry) UnitsOf(name string) (string, error) {
	v, err := r.lookup(name)
	if err != nil {
		return "", err
	}
	return v.Units, nil
}

func (r *Registry) DTypeOf(name string) (string, error) {
	v, err := r.lookup(name)
	if err != nil {
		return "", err
	}
	return v.DType, nil
}

func (r *Registry) GridIDOf(name string) (int, error) {
	v, err := r.lookup(name)
	if err != nil {
		return 0, err
	}
	return v.Grid, nil
}

func (r *Registry) lookup(name string) (bmi.VarInfo, error) {
	v, ok := r.h.Var(name)
	if !ok {
		return bmi.VarInfo{}, &bmi.UnknownVariableError{Name: name}
	}
	return v, nil
}

func (r *Registry) ShapeOf(id int) ([]int, error) {
	g, err := r.grid(id)
	if err != nil {
		return nil, err
	}
	return g.Shape, nil
}

func (r *Registry) SpacingOf(id int) ([]float64, error) {
	g, err := r.grid(id)
	if err != nil {
		return nil, err
	}
	return g.Spacing, nil
}

func (r *Registry) OriginOf(id int) ([]float64, error) {
	g, err := r.grid(id)
	if err != nil {
		return nil, err
	}
	return g.Origin, nil
}

func (r *Registry) GridTypeOf(id int) (string, error) {
	g, err := r.grid(id)
	if err != nil {
		return "", err
	}
	return g.Type, nil
}

func (r *Registry) grid(id int) (bmi.Grid, error) {
	g, ok := r.h.Grid(id)
	if !ok {
		return bmi.Grid{}, &bmi.UnknownGridError{ID: id}
	}
	return g, nil
}
