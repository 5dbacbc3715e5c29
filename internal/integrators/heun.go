package integrators

import "github.com/san-kum/numtrace/internal/numerics"

// Heun is the improved Euler predictor-corrector method.
type Heun struct{}

func NewHeun() *Heun {
	return &Heun{}
}

func (e *Heun) Name() string { return numerics.MethodImprovedEuler }

func (e *Heun) Step(f numerics.ODEFunc, index int, x, y, h float64) (numerics.ODEStep, error) {
	k1, err := eval(f, index, "k1", x, x, y)
	if err != nil {
		return numerics.ODEStep{}, err
	}

	yPred := y + h*k1
	k2, err := eval(f, index, "k2", x, x+h, yPred)
	if err != nil {
		return numerics.ODEStep{}, err
	}

	yNext := y + h*(k1+k2)/2
	if !numerics.IsFinite(yNext) {
		return numerics.ODEStep{}, nonFiniteNext(index, x, y)
	}

	return numerics.ODEStep{
		Index: index,
		X:     x,
		Y:     y,
		K1:    k1,
		YPred: yPred,
		K2:    k2,
		YNext: yNext,
	}, nil
}

func (e *Heun) Solve(f numerics.ODEFunc, x0, y0, h, xn float64) (*numerics.ODETrace, error) {
	return Integrate(e, f, x0, y0, h, xn)
}

// ImprovedEuler integrates dy/dx = f(x, y) over [x0, xn] with Heun's method.
func ImprovedEuler(f numerics.ODEFunc, x0, y0, h, xn float64) (*numerics.ODETrace, error) {
	return Integrate(NewHeun(), f, x0, y0, h, xn)
}
