package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/numtrace/internal/experiment"
	"github.com/san-kum/numtrace/internal/export"
	"github.com/san-kum/numtrace/internal/numerics"
	"github.com/san-kum/numtrace/internal/symbolic"
)

type odeResponse struct {
	Method string       `json:"method"`
	Pasos  []export.Row `json:"pasos"`
}

type newtonResponse struct {
	Method     string       `json:"method"`
	Derivative string       `json:"derivative"`
	Converged  bool         `json:"converged"`
	Root       float64      `json:"root"`
	Pasos      []export.Row `json:"pasos"`
}

type derivativeResponse struct {
	Original        string `json:"original"`
	Derivative      string `json:"derivative"`
	OriginalLaTeX   string `json:"original_latex"`
	DerivativeLaTeX string `json:"derivative_latex"`
}

// errorBody describes a failed request. Step or Iteration and X locate an
// evaluation failure; Pasos carries the records completed before it.
type errorBody struct {
	Error     string       `json:"error"`
	Kind      string       `json:"kind"`
	Step      int          `json:"step,omitempty"`
	Iteration int          `json:"iteration,omitempty"`
	StepX     *float64     `json:"step_x,omitempty"`
	X         *float64     `json:"x,omitempty"`
	Pasos     []export.Row `json:"pasos,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return &requestError{msg: "invalid JSON: " + err.Error()}
	}
	if dec.More() {
		return &requestError{msg: "invalid JSON: trailing data"}
	}
	return nil
}

// classify maps an error to a status code and body. Iterative failures
// are reported by iteration, integrator failures by step.
func classify(err error, iterative bool) (int, errorBody) {
	body := errorBody{Error: err.Error()}

	var (
		reqErr  *requestError
		evalErr *numerics.EvaluationError
		zeroErr *numerics.DerivativeZeroError
	)
	switch {
	case errors.As(err, &reqErr):
		body.Kind = "bad_request"
		return http.StatusBadRequest, body
	case errors.Is(err, symbolic.ErrSyntax):
		body.Kind = "syntax"
		return http.StatusBadRequest, body
	case errors.Is(err, symbolic.ErrVariable):
		body.Kind = "variable"
		return http.StatusBadRequest, body
	case errors.Is(err, experiment.ErrUnknownMethod):
		body.Kind = "unknown_method"
		return http.StatusBadRequest, body
	case errors.Is(err, numerics.ErrInvalidParameter):
		body.Kind = "invalid_parameter"
		return http.StatusBadRequest, body
	case errors.As(err, &evalErr):
		body.Kind = "evaluation"
		x, stepX := evalErr.X, evalErr.StepX
		body.X = &x
		body.StepX = &stepX
		if iterative {
			body.Iteration = evalErr.Step
		} else {
			body.Step = evalErr.Step
		}
		return http.StatusUnprocessableEntity, body
	case errors.As(err, &zeroErr):
		body.Kind = "derivative_zero"
		x := zeroErr.X
		body.X = &x
		body.Iteration = zeroErr.Iteration
		return http.StatusUnprocessableEntity, body
	case errors.Is(err, context.DeadlineExceeded):
		body.Kind = "timeout"
		return http.StatusGatewayTimeout, body
	}

	body.Kind = "internal"
	return http.StatusInternalServerError, body
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, iterative bool, pasos []export.Row) {
	status, body := classify(err, iterative)
	body.Pasos = pasos

	logger := s.log(r).With(zap.Error(err), zap.String("kind", body.Kind))
	if status >= http.StatusInternalServerError {
		logger.Error("request failed")
	} else {
		logger.Debug("request rejected")
	}
	writeJSON(w, status, body)
}

func (s *Server) handleODE(method string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req odeRequest
		if err := decode(r, &req); err != nil {
			s.fail(w, r, err, false, nil)
			return
		}
		fn, x0, y0, h, xn, err := req.validate(s.cfg.Server.MaxSteps)
		if err != nil {
			s.fail(w, r, err, false, nil)
			return
		}

		res, err := s.run(r.Context(), experiment.Config{
			Method: method, Function: fn, X0: x0, Y0: y0, H: h, Xn: xn,
		})
		if err != nil {
			var pasos []export.Row
			if res != nil && res.ODE != nil {
				pasos = export.ODERows(res.ODE, s.cfg.Precision, true)
			}
			s.fail(w, r, err, false, pasos)
			return
		}

		writeJSON(w, http.StatusOK, odeResponse{
			Method: res.ODE.Method,
			Pasos:  export.ODERows(res.ODE, s.cfg.Precision, true),
		})
	}
}

func (s *Server) handleNewton(w http.ResponseWriter, r *http.Request) {
	var req newtonRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err, true, nil)
		return
	}
	fn, x0, tol, maxIter, err := req.validate(s.cfg.Newton.MaxIter, s.cfg.Server.MaxSteps)
	if err != nil {
		s.fail(w, r, err, true, nil)
		return
	}

	res, err := s.run(r.Context(), experiment.Config{
		Method: "newton", Function: fn, X0: x0, Tol: tol, MaxIter: maxIter,
		DerivativeGuard: s.cfg.Newton.DerivativeGuard,
	})
	if err != nil {
		var pasos []export.Row
		if res != nil && res.Root != nil {
			pasos = export.RootRows(res.Root, s.cfg.Precision, true)
		}
		s.fail(w, r, err, true, pasos)
		return
	}

	writeJSON(w, http.StatusOK, newtonResponse{
		Method:     numerics.MethodNewton,
		Derivative: res.Derivative,
		Converged:  res.Root.Converged,
		Root:       export.Round(res.Root.Root(), s.cfg.Precision),
		Pasos:      export.RootRows(res.Root, s.cfg.Precision, true),
	})
}

func (s *Server) handleDerivative(w http.ResponseWriter, r *http.Request) {
	var req derivativeRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err, false, nil)
		return
	}
	fn, err := function(req.Funcion, req.Ecuacion)
	if err != nil {
		s.fail(w, r, err, false, nil)
		return
	}

	e, err := symbolic.Parse(fn)
	if err != nil {
		s.fail(w, r, fmt.Errorf("parse %q: %w", fn, err), false, nil)
		return
	}
	d := symbolic.Diff(e, "x")

	writeJSON(w, http.StatusOK, derivativeResponse{
		Original:        e.String(),
		Derivative:      d.String(),
		OriginalLaTeX:   e.LaTeX(),
		DerivativeLaTeX: d.LaTeX(),
	})
}

func (s *Server) handleMethods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"methods": s.registry.ListMethods()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
