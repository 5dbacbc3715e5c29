// Package analysis measures the accuracy of numerical traces.
//
//   - [GlobalErrors]: per-record error against a known solution
//   - [EmpiricalOrder]: observed order of an integrator from runs at h and h/2
//   - [NewtonOrder]: observed convergence order of a Newton iteration
//   - [Summarize] and [SummarizeRoot]: one-line outcomes for reports
//
// An integrator of order p should roughly divide its final error by 2^p
// when the step is halved:
//
//	coarse, _ := integrators.RungeKutta4(f, 0, 1, 0.1, 1)
//	fine, _ := integrators.RungeKutta4(f, 0, 1, 0.05, 1)
//	p, err := analysis.EmpiricalOrder(coarse, fine, exact) // p ≈ 4
package analysis
