package analysis

import (
	"math"

	"github.com/san-kum/numtrace/internal/numerics"
)

type Summary struct {
	Method  string  `json:"method"`
	Records int     `json:"records"`
	FinalX  float64 `json:"final_x"`
	FinalY  float64 `json:"final_y"`
}

type RootSummary struct {
	Iterations int     `json:"iterations"`
	Root       float64 `json:"root"`
	Converged  bool    `json:"converged"`
	FinalError float64 `json:"final_error"`
}

// Summarize reports the last grid point reached. FinalX and FinalY are
// NaN for an empty trace.
func Summarize(t *numerics.ODETrace) Summary {
	s := Summary{Method: t.Method, Records: t.Len(), FinalX: math.NaN(), FinalY: math.NaN()}
	if last, ok := t.Final(); ok {
		s.FinalX, s.FinalY = last.X, last.Y
	}
	return s
}

func SummarizeRoot(t *numerics.RootTrace) RootSummary {
	s := RootSummary{
		Iterations: t.Len(),
		Root:       t.Root(),
		Converged:  t.Converged,
		FinalError: math.NaN(),
	}
	if last, ok := t.Final(); ok {
		s.FinalError = last.Error
	}
	return s
}
