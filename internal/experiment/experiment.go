package experiment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/san-kum/numtrace/internal/integrators"
	"github.com/san-kum/numtrace/internal/numerics"
	"github.com/san-kum/numtrace/internal/roots"
	"github.com/san-kum/numtrace/internal/symbolic"
)

var (
	ErrUnknownMethod = errors.New("unknown method")
	ErrNotSetup      = errors.New("experiment not setup")
)

type Config struct {
	Method          string  `json:"method"`
	Function        string  `json:"function"`
	X0              float64 `json:"x0"`
	Y0              float64 `json:"y0,omitempty"`
	H               float64 `json:"h,omitempty"`
	Xn              float64 `json:"xn,omitempty"`
	Tol             float64 `json:"tol,omitempty"`
	MaxIter         int     `json:"max_iter,omitempty"`
	DerivativeGuard float64 `json:"derivative_guard,omitempty"`
}

// Result holds the trace of one run. Exactly one of ODE and Root is set.
// On a failed run the partial trace, if any, is kept next to the error.
type Result struct {
	Method     string              `json:"method"`
	Function   string              `json:"function"`
	Derivative string              `json:"derivative,omitempty"`
	ODE        *numerics.ODETrace  `json:"ode,omitempty"`
	Root       *numerics.RootTrace `json:"root,omitempty"`
	Elapsed    time.Duration       `json:"elapsed"`
}

type Experiment struct {
	cfg        Config
	kind       Kind
	method     string
	expr       symbolic.Expr
	derivative symbolic.Expr
	stepper    integrators.Stepper
	solver     *roots.Newton
	ode        numerics.ODEFunc
	f, fprime  numerics.ScalarFunc
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup resolves the method and compiles the function. For Newton the
// derivative is taken symbolically once, here.
func (e *Experiment) Setup(reg *Registry) error {
	method, kind, err := reg.Resolve(e.cfg.Method)
	if err != nil {
		return err
	}

	expr, err := symbolic.Parse(e.cfg.Function)
	if err != nil {
		return fmt.Errorf("parse %q: %w", e.cfg.Function, err)
	}

	switch kind {
	case KindODE:
		stepper, err := reg.GetIntegrator(method)
		if err != nil {
			return err
		}
		ode, err := symbolic.ODE(expr)
		if err != nil {
			return fmt.Errorf("bind %q: %w", e.cfg.Function, err)
		}
		e.stepper, e.ode = stepper, ode

	case KindRoot:
		solver, err := reg.GetSolver(method, e.cfg.DerivativeGuard)
		if err != nil {
			return err
		}
		f, err := symbolic.Scalar(expr, "x")
		if err != nil {
			return fmt.Errorf("bind %q: %w", e.cfg.Function, err)
		}
		d := symbolic.Diff(expr, "x")
		fprime, err := symbolic.Scalar(d, "x")
		if err != nil {
			return fmt.Errorf("bind derivative %q: %w", d, err)
		}
		e.solver, e.f, e.fprime, e.derivative = solver, f, fprime, d
	}

	e.method, e.kind, e.expr = method, kind, expr
	return nil
}

func (e *Experiment) Kind() Kind { return e.kind }

// Run executes the configured method. When ctx ends first, Run returns
// ctx.Err() without waiting for the computation, which then stops at its
// next function evaluation. A failed run still
// returns the records computed before the failure; the Result is nil only
// when nothing was computed.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.expr == nil {
		return nil, ErrNotSetup
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type outcome struct {
		res *Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := e.run(ctx)
		done <- outcome{res, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case o := <-done:
		if cerr := ctx.Err(); cerr != nil && errors.Is(o.err, cerr) {
			return o.res, cerr
		}
		return o.res, o.err
	}
}

func (e *Experiment) run(ctx context.Context) (*Result, error) {
	res := &Result{
		Method:   e.method,
		Function: e.expr.String(),
	}

	start := time.Now()
	var err error
	switch e.kind {
	case KindODE:
		ode := func(x, y float64) (float64, error) {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
			return e.ode(x, y)
		}
		res.ODE, err = integrators.Integrate(e.stepper, ode, e.cfg.X0, e.cfg.Y0, e.cfg.H, e.cfg.Xn)
	case KindRoot:
		res.Derivative = e.derivative.String()
		res.Root, err = e.solver.Solve(withContext(ctx, e.f), withContext(ctx, e.fprime), e.cfg.X0, e.cfg.Tol, e.cfg.MaxIter)
	}
	res.Elapsed = time.Since(start)

	if res.ODE == nil && res.Root == nil {
		return nil, err
	}
	return res, err
}

func withContext(ctx context.Context, f numerics.ScalarFunc) numerics.ScalarFunc {
	return func(x float64) (float64, error) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		return f(x)
	}
}
