package numerics

import "math"

const (
	MethodImprovedEuler = "improved_euler"
	MethodRK4           = "rk4"
	MethodNewton        = "newton"
)

type ODEFunc func(x, y float64) (float64, error)

type ScalarFunc func(x float64) (float64, error)

// ODEStep is one integrator step starting at (X, Y). Heun fills K1, YPred
// and K2; RK4 fills K1 through K4. Unused stages stay zero.
type ODEStep struct {
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	K1    float64 `json:"k1"`
	YPred float64 `json:"y_pred"`
	K2    float64 `json:"k2"`
	K3    float64 `json:"k3"`
	K4    float64 `json:"k4"`
	YNext float64 `json:"y_next"`
}

type ODETrace struct {
	Method string    `json:"method"`
	H      float64   `json:"h"`
	Steps  []ODEStep `json:"steps"`
}

func (t *ODETrace) Len() int { return len(t.Steps) }

// Final returns the last step, or false for an empty trace.
func (t *ODETrace) Final() (ODEStep, bool) {
	if len(t.Steps) == 0 {
		return ODEStep{}, false
	}
	return t.Steps[len(t.Steps)-1], true
}

func (t *ODETrace) Xs() []float64 {
	xs := make([]float64, len(t.Steps))
	for i, s := range t.Steps {
		xs[i] = s.X
	}
	return xs
}

func (t *ODETrace) Ys() []float64 {
	ys := make([]float64, len(t.Steps))
	for i, s := range t.Steps {
		ys[i] = s.Y
	}
	return ys
}

type RootStep struct {
	Iteration int     `json:"iteration"`
	X         float64 `json:"x"`
	FX        float64 `json:"fx"`
	FPX       float64 `json:"fpx"`
	XNext     float64 `json:"x_next"`
	Error     float64 `json:"error"`
}

// RootTrace ends either on the first step whose Error is below Tolerance
// (Converged) or after MaxIter steps. Both are normal outcomes.
type RootTrace struct {
	Tolerance float64    `json:"tolerance"`
	MaxIter   int        `json:"max_iter"`
	Converged bool       `json:"converged"`
	Steps     []RootStep `json:"steps"`
}

func (t *RootTrace) Len() int { return len(t.Steps) }

func (t *RootTrace) Final() (RootStep, bool) {
	if len(t.Steps) == 0 {
		return RootStep{}, false
	}
	return t.Steps[len(t.Steps)-1], true
}

// Root returns the last approximation, NaN for an empty trace.
func (t *RootTrace) Root() float64 {
	s, ok := t.Final()
	if !ok {
		return math.NaN()
	}
	return s.XNext
}

func (t *RootTrace) Errors() []float64 {
	errs := make([]float64, len(t.Steps))
	for i, s := range t.Steps {
		errs[i] = s.Error
	}
	return errs
}

func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
