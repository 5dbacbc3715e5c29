package numerics

import (
	"errors"
	"fmt"
	"math"
)

// Domain errors for the numerical methods.
var (
	// ErrInvalidParameter indicates a parameter rejected before any step ran.
	ErrInvalidParameter = errors.New("numerics: invalid parameter")

	// ErrFunctionEvaluation indicates the supplied function failed at a required point.
	ErrFunctionEvaluation = errors.New("numerics: function evaluation failed")

	// ErrDerivativeZero indicates a Newton step would divide by a zero derivative.
	ErrDerivativeZero = errors.New("numerics: derivative is zero")
)

// MaxSteps bounds the number of records an integrator will produce.
const MaxSteps = 10_000_000

type ParameterError struct {
	Name   string
	Value  float64
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("numerics: invalid parameter %s=%g: %s", e.Name, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error { return ErrInvalidParameter }

// EvaluationError wraps a failure of the supplied function. StepX is the
// grid point (or iterate) of the failing step; X and Y are the abscissa
// and ordinate of the stage evaluation that failed, so for an RK4 k2 X is
// StepX + h/2. Y is NaN for scalar functions.
type EvaluationError struct {
	Step    int
	StepX   float64
	X       float64
	Y       float64
	Stage   string
	Wrapped error
}

func (e *EvaluationError) Error() string {
	if math.IsNaN(e.Y) {
		return fmt.Sprintf("numerics: step %d: evaluating %s at x=%g: %v", e.Step, e.Stage, e.X, e.Wrapped)
	}
	return fmt.Sprintf("numerics: step %d: evaluating %s at (x=%g, y=%g): %v", e.Step, e.Stage, e.X, e.Y, e.Wrapped)
}

func (e *EvaluationError) Is(target error) bool { return target == ErrFunctionEvaluation }

func (e *EvaluationError) Unwrap() error { return e.Wrapped }

type DerivativeZeroError struct {
	Iteration int
	X         float64
	FPX       float64
}

func (e *DerivativeZeroError) Error() string {
	return fmt.Sprintf("numerics: iteration %d: derivative %g at x=%g is zero", e.Iteration, e.FPX, e.X)
}

func (e *DerivativeZeroError) Unwrap() error { return ErrDerivativeZero }

// ErrNonFinite is wrapped by EvaluationError when a function returns NaN or Inf.
var ErrNonFinite = errors.New("result is not finite")

func ValidateODE(x0, y0, h, xn float64) error {
	for _, p := range []struct {
		name string
		v    float64
	}{{"x0", x0}, {"y0", y0}, {"h", h}, {"xn", xn}} {
		if !IsFinite(p.v) {
			return &ParameterError{Name: p.name, Value: p.v, Reason: "must be finite"}
		}
	}
	if h <= 0 {
		return &ParameterError{Name: "h", Value: h, Reason: "step size must be positive"}
	}
	if xn < x0 {
		return &ParameterError{Name: "xn", Value: xn, Reason: fmt.Sprintf("must not be below x0=%g", x0)}
	}
	if (xn-x0)/h >= MaxSteps {
		return &ParameterError{Name: "h", Value: h, Reason: fmt.Sprintf("grid exceeds %d steps", MaxSteps)}
	}
	return nil
}

func ValidateRoot(x0, tol float64, maxIter int) error {
	if !IsFinite(x0) {
		return &ParameterError{Name: "x0", Value: x0, Reason: "must be finite"}
	}
	if !IsFinite(tol) || tol <= 0 {
		return &ParameterError{Name: "tol", Value: tol, Reason: "tolerance must be positive"}
	}
	if maxIter < 1 {
		return &ParameterError{Name: "max_iter", Value: float64(maxIter), Reason: "must be at least 1"}
	}
	return nil
}
