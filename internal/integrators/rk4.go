package integrators

import "github.com/san-kum/numtrace/internal/numerics"

// RK4 is the classical four-stage Runge-Kutta method. It holds no state,
// so one value may be shared across goroutines.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Name() string { return numerics.MethodRK4 }

func (r *RK4) Step(f numerics.ODEFunc, index int, x, y, h float64) (numerics.ODEStep, error) {
	half := h / 2

	k1, err := eval(f, index, "k1", x, x, y)
	if err != nil {
		return numerics.ODEStep{}, err
	}
	k2, err := eval(f, index, "k2", x, x+half, y+half*k1)
	if err != nil {
		return numerics.ODEStep{}, err
	}
	k3, err := eval(f, index, "k3", x, x+half, y+half*k2)
	if err != nil {
		return numerics.ODEStep{}, err
	}
	k4, err := eval(f, index, "k4", x, x+h, y+h*k3)
	if err != nil {
		return numerics.ODEStep{}, err
	}

	yNext := y + (h/6)*(k1+2*k2+2*k3+k4)
	if !numerics.IsFinite(yNext) {
		return numerics.ODEStep{}, nonFiniteNext(index, x, y)
	}

	return numerics.ODEStep{
		Index: index,
		X:     x,
		Y:     y,
		K1:    k1,
		K2:    k2,
		K3:    k3,
		K4:    k4,
		YNext: yNext,
	}, nil
}

func (r *RK4) Solve(f numerics.ODEFunc, x0, y0, h, xn float64) (*numerics.ODETrace, error) {
	return Integrate(r, f, x0, y0, h, xn)
}

// RungeKutta4 integrates dy/dx = f(x, y) over [x0, xn] with classical RK4.
func RungeKutta4(f numerics.ODEFunc, x0, y0, h, xn float64) (*numerics.ODETrace, error) {
	return Integrate(NewRK4(), f, x0, y0, h, xn)
}
