package integrators

import (
	"math"

	"github.com/san-kum/numtrace/internal/numerics"
)

// gridSlack absorbs the rounding in (xn-x0)/h so that xn itself stays on
// the grid when it is a whole number of steps away from x0.
const gridSlack = 1e-9

// initialCapacity bounds the up-front allocation of a trace; longer traces
// grow as steps succeed.
const initialCapacity = 1024

// GridSize is the number of records Integrate produces for a valid grid.
func GridSize(x0, h, xn float64) int {
	return gridSize(x0, h, xn)
}

// Stepper advances one step of a fixed-step method from (x, y).
type Stepper interface {
	Name() string
	Step(f numerics.ODEFunc, index int, x, y, h float64) (numerics.ODEStep, error)
}

// Integrate runs s from x0 over every grid point x0 + i*h that does not
// exceed xn and returns one record per grid point. When f fails, the
// records of the steps completed so far are returned with the error.
func Integrate(s Stepper, f numerics.ODEFunc, x0, y0, h, xn float64) (*numerics.ODETrace, error) {
	if err := numerics.ValidateODE(x0, y0, h, xn); err != nil {
		return nil, err
	}

	n := gridSize(x0, h, xn)
	trace := &numerics.ODETrace{
		Method: s.Name(),
		H:      h,
		Steps:  make([]numerics.ODEStep, 0, min(n, initialCapacity)),
	}

	y := y0
	for i := 0; i < n; i++ {
		x := gridPoint(x0, h, xn, i)
		step, err := s.Step(f, i+1, x, y, h)
		if err != nil {
			return trace, err
		}
		trace.Steps = append(trace.Steps, step)
		y = step.YNext
	}

	return trace, nil
}

func gridSize(x0, h, xn float64) int {
	return int(math.Floor((xn-x0)/h+gridSlack)) + 1
}

// gridPoint computes x from the step index instead of accumulating h.
func gridPoint(x0, h, xn float64, i int) float64 {
	x := x0 + float64(i)*h
	if x > xn {
		return xn
	}
	return x
}

// eval calls f at a stage point (x, y) of the step starting at stepX.
func eval(f numerics.ODEFunc, index int, stage string, stepX, x, y float64) (float64, error) {
	v, err := f(x, y)
	if err == nil && !numerics.IsFinite(v) {
		err = numerics.ErrNonFinite
	}
	if err != nil {
		return 0, &numerics.EvaluationError{Step: index, StepX: stepX, X: x, Y: y, Stage: stage, Wrapped: err}
	}
	return v, nil
}

func nonFiniteNext(index int, x, y float64) error {
	return &numerics.EvaluationError{Step: index, StepX: x, X: x, Y: y, Stage: "y_next", Wrapped: numerics.ErrNonFinite}
}
