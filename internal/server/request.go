package server

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// flexFloat accepts a JSON number or a numeric string.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*f = flexFloat(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("expected a number, got %s", data)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("expected a number, got %q", s)
	}
	*f = flexFloat(v)
	return nil
}

type requestError struct {
	msg string
}

func (e *requestError) Error() string { return e.msg }

func missing(name string) error {
	return &requestError{msg: "missing parameter " + name}
}

// Both spellings of the function and tolerance fields are accepted.
type odeRequest struct {
	Funcion  *string    `json:"funcion"`
	Ecuacion *string    `json:"ecuacion"`
	X0       *flexFloat `json:"x0"`
	Y0       *flexFloat `json:"y0"`
	H        *flexFloat `json:"h"`
	Xn       *flexFloat `json:"xn"`
}

type newtonRequest struct {
	Funcion    *string    `json:"funcion"`
	Ecuacion   *string    `json:"ecuacion"`
	X0         *flexFloat `json:"x0"`
	Tol        *flexFloat `json:"tol"`
	Tolerancia *flexFloat `json:"tolerancia"`
	MaxIter    *flexFloat `json:"max_iter"`
}

type derivativeRequest struct {
	Funcion  *string `json:"funcion"`
	Ecuacion *string `json:"ecuacion"`
}

func function(funcion, ecuacion *string) (string, error) {
	for _, s := range []*string{funcion, ecuacion} {
		if s != nil && strings.TrimSpace(*s) != "" {
			return *s, nil
		}
	}
	return "", missing("funcion")
}

func required(name string, v *flexFloat) (float64, error) {
	if v == nil {
		return 0, missing(name)
	}
	return float64(*v), nil
}

// validate also rejects grids longer than maxSteps records. Grids the
// integrators reject anyway (h <= 0, xn < x0) are left to them.
func (r *odeRequest) validate(maxSteps int) (fn string, x0, y0, h, xn float64, err error) {
	if fn, err = function(r.Funcion, r.Ecuacion); err != nil {
		return
	}
	if x0, err = required("x0", r.X0); err != nil {
		return
	}
	if y0, err = required("y0", r.Y0); err != nil {
		return
	}
	if h, err = required("h", r.H); err != nil {
		return
	}
	if xn, err = required("xn", r.Xn); err != nil {
		return
	}
	if h > 0 && xn >= x0 && (xn-x0)/h >= float64(maxSteps) {
		err = &requestError{msg: fmt.Sprintf("grid from x0=%g to xn=%g with h=%g exceeds the limit of %d steps", x0, xn, h, maxSteps)}
	}
	return
}

func (r *newtonRequest) validate(defaultMaxIter, maxSteps int) (fn string, x0, tol float64, maxIter int, err error) {
	if fn, err = function(r.Funcion, r.Ecuacion); err != nil {
		return
	}
	if x0, err = required("x0", r.X0); err != nil {
		return
	}
	tolValue := r.Tol
	if tolValue == nil {
		tolValue = r.Tolerancia
	}
	if tol, err = required("tol", tolValue); err != nil {
		return
	}
	maxIter = defaultMaxIter
	if r.MaxIter != nil {
		v := float64(*r.MaxIter)
		if v != float64(int(v)) {
			err = &requestError{msg: fmt.Sprintf("max_iter must be an integer, got %g", v)}
			return
		}
		if v > float64(maxSteps) {
			err = &requestError{msg: fmt.Sprintf("max_iter %g exceeds the limit of %d", v, maxSteps)}
			return
		}
		maxIter = int(v)
	}
	return
}
