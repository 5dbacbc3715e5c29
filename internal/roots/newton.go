package roots

import (
	"math"

	"github.com/san-kum/numtrace/internal/numerics"
)

type Option func(*Newton)

// WithDerivativeGuard treats |f'(x)| <= eps as a zero derivative.
func WithDerivativeGuard(eps float64) Option {
	return func(n *Newton) {
		if eps > 0 {
			n.guard = eps
		}
	}
}

type Newton struct {
	guard float64
}

func NewNewton(opts ...Option) *Newton {
	n := &Newton{}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Newton) Name() string { return numerics.MethodNewton }

func (n *Newton) Guard() float64 { return n.guard }

// Solve iterates x <- x - f(x)/f'(x) from x0 until |x_next - x| < tol or
// maxIter iterations have run. On failure the completed iterations are
// returned together with the error.
func (n *Newton) Solve(f, fprime numerics.ScalarFunc, x0, tol float64, maxIter int) (*numerics.RootTrace, error) {
	if err := numerics.ValidateRoot(x0, tol, maxIter); err != nil {
		return nil, err
	}

	trace := &numerics.RootTrace{
		Tolerance: tol,
		MaxIter:   maxIter,
		Steps:     make([]numerics.RootStep, 0, min(maxIter, 64)),
	}

	x := x0
	for iter := 1; iter <= maxIter; iter++ {
		fx, err := eval(f, iter, "f", x)
		if err != nil {
			return trace, err
		}
		fpx, err := eval(fprime, iter, "f'", x)
		if err != nil {
			return trace, err
		}
		if math.Abs(fpx) <= n.guard {
			return trace, &numerics.DerivativeZeroError{Iteration: iter, X: x, FPX: fpx}
		}

		xNext := x - fx/fpx
		if !numerics.IsFinite(xNext) {
			return trace, &numerics.EvaluationError{
				Step: iter, StepX: x, X: x, Y: math.NaN(), Stage: "x_next", Wrapped: numerics.ErrNonFinite,
			}
		}

		step := numerics.RootStep{
			Iteration: iter,
			X:         x,
			FX:        fx,
			FPX:       fpx,
			XNext:     xNext,
			Error:     math.Abs(xNext - x),
		}
		trace.Steps = append(trace.Steps, step)

		if step.Error < tol {
			trace.Converged = true
			break
		}
		x = xNext
	}

	return trace, nil
}

// NewtonRaphson runs [Newton.Solve] with the given options.
func NewtonRaphson(f, fprime numerics.ScalarFunc, x0, tol float64, maxIter int, opts ...Option) (*numerics.RootTrace, error) {
	return NewNewton(opts...).Solve(f, fprime, x0, tol, maxIter)
}

func eval(f numerics.ScalarFunc, iter int, stage string, x float64) (float64, error) {
	v, err := f(x)
	if err == nil && !numerics.IsFinite(v) {
		err = numerics.ErrNonFinite
	}
	if err != nil {
		return 0, &numerics.EvaluationError{Step: iter, StepX: x, X: x, Y: math.NaN(), Stage: stage, Wrapped: err}
	}
	return v, nil
}
