package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/numtrace/internal/experiment"
)

// Report is the JSON document written for one run.
type Report struct {
	Method     string  `json:"method"`
	Function   string  `json:"function"`
	Derivative string  `json:"derivative,omitempty"`
	H          float64 `json:"h,omitempty"`
	Tolerance  float64 `json:"tolerance,omitempty"`
	Converged  *bool   `json:"converged,omitempty"`
	Steps      []Row   `json:"steps"`
}

func NewReport(res *experiment.Result, digits int) *Report {
	r := &Report{
		Method:     res.Method,
		Function:   res.Function,
		Derivative: res.Derivative,
		Steps:      []Row{},
	}
	switch {
	case res.ODE != nil:
		r.H = res.ODE.H
		r.Steps = ODERows(res.ODE, digits, false)
	case res.Root != nil:
		converged := res.Root.Converged
		r.Tolerance = res.Root.Tolerance
		r.Converged = &converged
		r.Steps = RootRows(res.Root, digits, false)
	}
	return r
}

func WriteJSON(w io.Writer, v any, indent bool) error {
	encoder := json.NewEncoder(w)
	if indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(v)
}
