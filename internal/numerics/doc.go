// Package numerics defines the records, traces and errors shared by the
// step-by-step numerical methods.
//
//   - [ODEFunc]: right-hand side of dy/dx = f(x, y)
//   - [ScalarFunc]: f(x) for root finding
//   - [ODETrace]: ordered per-step records of an integrator
//   - [RootTrace]: ordered per-iteration records of a root finder
//
// Traces are created fresh per call and hold full-precision values.
// Rounding for display belongs to the presentation layer.
package numerics
