package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/coastsim/internal/bmi"
	"github.com/san-kum/coastsim/internal/coupler"
	"github.com/san-kum/coastsim/internal/engines/coastline"
	"github.com/san-kum/coastsim/internal/engines/waves"
	"github.com/san-kum/coastsim/internal/metrics"
)

// Registry maps engine names to constructors.
type Registry struct {
	engines map[string]func() bmi.Engine
}

func NewRegistry() *Registry {
	r := &Registry{
		engines: make(map[string]func() bmi.Engine),
	}

	r.engines["coastline"] = func() bmi.Engine { return coastline.New() }
	r.engines["waves"] = func() bmi.Engine { return waves.New() }

	return r
}

func (r *Registry) GetEngine(name string) (bmi.Engine, error) {
	fn, ok := r.engines[name]
	if !ok {
		return nil, fmt.Errorf("unknown engine: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListEngines() []string {
	names := make([]string, 0, len(r.engines))
	for name := range r.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultProbes builds the standard probe set for a coupled wave-coastline
// run.
func DefaultProbes(coast, climate *bmi.Handle) []coupler.Probe {
	return []coupler.Probe{
		metrics.NewShorelineExcursion(coast, coastline.VarShoreline),
		metrics.NewWaveEnergyFlux(climate, waves.VarHeight, waves.VarPeriod),
	}
}
