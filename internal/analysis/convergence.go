package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/numtrace/internal/numerics"
)

var (
	ErrEmptyTrace       = errors.New("analysis: empty trace")
	ErrMismatchedTraces = errors.New("analysis: traces end at different x")
	ErrUndefinedOrder   = errors.New("analysis: order undefined for zero error")
)

// GlobalErrors returns |y - exact(x)| for every record of t.
func GlobalErrors(t *numerics.ODETrace, exact numerics.ScalarFunc) ([]float64, error) {
	errs := make([]float64, len(t.Steps))
	for i, s := range t.Steps {
		want, err := exact(s.X)
		if err != nil {
			return nil, fmt.Errorf("exact solution at x=%g: %w", s.X, err)
		}
		errs[i] = math.Abs(s.Y - want)
	}
	return errs, nil
}

func MaxGlobalError(t *numerics.ODETrace, exact numerics.ScalarFunc) (float64, error) {
	if t.Len() == 0 {
		return 0, ErrEmptyTrace
	}
	errs, err := GlobalErrors(t, exact)
	if err != nil {
		return 0, err
	}
	maxErr := 0.0
	for _, e := range errs {
		maxErr = math.Max(maxErr, e)
	}
	return maxErr, nil
}

// EmpiricalOrder estimates the order p of a method from two runs over the
// same interval, the second with half the step: p ≈ log2(e_h / e_{h/2}),
// using the error at the last grid point.
func EmpiricalOrder(coarse, fine *numerics.ODETrace, exact numerics.ScalarFunc) (float64, error) {
	c, ok := coarse.Final()
	if !ok {
		return 0, ErrEmptyTrace
	}
	f, ok := fine.Final()
	if !ok {
		return 0, ErrEmptyTrace
	}
	if math.Abs(c.X-f.X) > 1e-9*math.Max(1, math.Abs(c.X)) {
		return 0, fmt.Errorf("%w: %g vs %g", ErrMismatchedTraces, c.X, f.X)
	}

	want, err := exact(c.X)
	if err != nil {
		return 0, fmt.Errorf("exact solution at x=%g: %w", c.X, err)
	}
	ec, ef := math.Abs(c.Y-want), math.Abs(f.Y-want)
	if ec == 0 || ef == 0 {
		return 0, ErrUndefinedOrder
	}

	return math.Log2(ec / ef), nil
}

// NewtonOrder estimates q in e_{n+1} ≈ C*e_n^q from the last three
// nonzero step sizes of t. It reports false when fewer are available.
func NewtonOrder(t *numerics.RootTrace) (float64, bool) {
	var e []float64
	for _, s := range t.Steps {
		if s.Error > 0 {
			e = append(e, s.Error)
		}
	}
	if len(e) < 3 {
		return 0, false
	}

	e0, e1, e2 := e[len(e)-3], e[len(e)-2], e[len(e)-1]
	den := math.Log(e1 / e0)
	if den == 0 {
		return 0, false
	}
	return math.Log(e2/e1) / den, true
}
