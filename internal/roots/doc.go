// Package roots implements Newton-Raphson root finding with a per-iteration
// trace.
//
// Reaching the iteration limit is not an error: the returned
// [numerics.RootTrace] reports Converged=false and the caller decides.
package roots
