package symbolic

import (
	"fmt"
	"strings"

	"github.com/san-kum/numtrace/internal/numerics"
)

// CheckVariables fails with ErrVariable when e uses a name outside allowed.
func CheckVariables(e Expr, allowed ...string) error {
	var extra []string
	for _, name := range Variables(e) {
		ok := false
		for _, a := range allowed {
			if name == a {
				ok = true
				break
			}
		}
		if !ok {
			extra = append(extra, name)
		}
	}
	if len(extra) > 0 {
		return fmt.Errorf("%w: %s (allowed: %s)", ErrVariable, strings.Join(extra, ", "), strings.Join(allowed, ", "))
	}
	return nil
}

// ODE binds e as the right-hand side f(x, y).
func ODE(e Expr) (numerics.ODEFunc, error) {
	if err := CheckVariables(e, "x", "y"); err != nil {
		return nil, err
	}
	return func(x, y float64) (float64, error) {
		return e.Eval(Bindings{"x": x, "y": y})
	}, nil
}

// Scalar binds e as a function of the single variable v.
func Scalar(e Expr, v string) (numerics.ScalarFunc, error) {
	if err := CheckVariables(e, v); err != nil {
		return nil, err
	}
	return func(x float64) (float64, error) {
		return e.Eval(Bindings{v: x})
	}, nil
}
