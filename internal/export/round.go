package export

import (
	"math"
	"strconv"

	"github.com/san-kum/numtrace/internal/numerics"
)

// DefaultDigits is the number of decimals shown unless configured otherwise.
const DefaultDigits = 6

// Round rounds v to digits decimals. A negative digits keeps v as is.
func Round(v float64, digits int) float64 {
	if digits < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', digits, 64), 64)
	if err != nil || r == 0 {
		return 0
	}
	return r
}

// RoundODE returns a rounded copy of t; t itself is left untouched.
func RoundODE(t *numerics.ODETrace, digits int) *numerics.ODETrace {
	out := &numerics.ODETrace{
		Method: t.Method,
		H:      t.H,
		Steps:  make([]numerics.ODEStep, len(t.Steps)),
	}
	for i, s := range t.Steps {
		out.Steps[i] = numerics.ODEStep{
			Index: s.Index,
			X:     Round(s.X, digits),
			Y:     Round(s.Y, digits),
			K1:    Round(s.K1, digits),
			YPred: Round(s.YPred, digits),
			K2:    Round(s.K2, digits),
			K3:    Round(s.K3, digits),
			K4:    Round(s.K4, digits),
			YNext: Round(s.YNext, digits),
		}
	}
	return out
}

func RoundRoot(t *numerics.RootTrace, digits int) *numerics.RootTrace {
	out := &numerics.RootTrace{
		Tolerance: t.Tolerance,
		MaxIter:   t.MaxIter,
		Converged: t.Converged,
		Steps:     make([]numerics.RootStep, len(t.Steps)),
	}
	for i, s := range t.Steps {
		out.Steps[i] = numerics.RootStep{
			Iteration: s.Iteration,
			X:         Round(s.X, digits),
			FX:        Round(s.FX, digits),
			FPX:       Round(s.FPX, digits),
			XNext:     Round(s.XNext, digits),
			Error:     Round(s.Error, digits),
		}
	}
	return out
}

// FormatValue prints v with digits decimals, or in shortest form when digits
// is negative.
func FormatValue(v float64, digits int) string {
	if digits < 0 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', digits, 64)
}
