package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/numtrace/internal/integrators"
	"github.com/san-kum/numtrace/internal/roots"
)

// Kind separates initial value problems from root finding.
type Kind int

const (
	KindODE Kind = iota
	KindRoot
)

func (k Kind) String() string {
	if k == KindRoot {
		return "root"
	}
	return "ode"
}

type Registry struct {
	integrators map[string]func() integrators.Stepper
	solvers     map[string]func(guard float64) *roots.Newton
	aliases     map[string]string
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() integrators.Stepper),
		solvers:     make(map[string]func(float64) *roots.Newton),
		aliases:     make(map[string]string),
	}

	r.integrators["euler"] = func() integrators.Stepper { return integrators.NewHeun() }
	r.integrators["rk4"] = func() integrators.Stepper { return integrators.NewRK4() }

	r.solvers["newton"] = func(guard float64) *roots.Newton {
		return roots.NewNewton(roots.WithDerivativeGuard(guard))
	}

	r.aliases["heun"] = "euler"
	r.aliases["improved_euler"] = "euler"
	r.aliases["runge_kutta"] = "rk4"
	r.aliases["newton_raphson"] = "newton"

	return r
}

// Resolve maps a method name or alias to its canonical name and kind.
func (r *Registry) Resolve(name string) (string, Kind, error) {
	if canonical, ok := r.aliases[name]; ok {
		name = canonical
	}
	if _, ok := r.integrators[name]; ok {
		return name, KindODE, nil
	}
	if _, ok := r.solvers[name]; ok {
		return name, KindRoot, nil
	}
	return "", 0, fmt.Errorf("%w: %s", ErrUnknownMethod, name)
}

func (r *Registry) GetIntegrator(name string) (integrators.Stepper, error) {
	canonical, kind, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	if kind != KindODE {
		return nil, fmt.Errorf("%w: %s is not an integrator", ErrUnknownMethod, name)
	}
	return r.integrators[canonical](), nil
}

func (r *Registry) GetSolver(name string, guard float64) (*roots.Newton, error) {
	canonical, kind, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	if kind != KindRoot {
		return nil, fmt.Errorf("%w: %s is not a root finder", ErrUnknownMethod, name)
	}
	return r.solvers[canonical](guard), nil
}

// ListMethods returns the canonical method names, sorted.
func (r *Registry) ListMethods() []string {
	names := make([]string, 0, len(r.integrators)+len(r.solvers))
	for name := range r.integrators {
		names = append(names, name)
	}
	for name := range r.solvers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListIntegrators returns the canonical ODE method names, sorted.
func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
