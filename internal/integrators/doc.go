// Package integrators implements fixed-step integrators for a single
// first-order ODE dy/dx = f(x, y) that record every intermediate stage.
//
// Local truncation error is O(h^3) for [Heun] and O(h^5) for [RK4].
//
//	trace, err := integrators.ImprovedEuler(f, 0, 1, 0.1, 1)
//	trace, err := integrators.RungeKutta4(f, 0, 1, 0.1, 1)
package integrators
