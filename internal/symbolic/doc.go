// Package symbolic parses textual formulas such as "x**2 - 4" or
// "sin(x)*y", evaluates them at a point and differentiates them.
//
// Supported syntax: numbers, variables, + - * /, ^ or ** (right
// associative), unary minus, parentheses, the constants pi and e, and the
// functions sin cos tan asin acos atan sinh cosh tanh exp log ln sqrt abs.
// log is the natural logarithm. Implicit multiplication ("2x") is rejected.
//
//	e, err := symbolic.Parse("x**2 - 4")
//	d := symbolic.Diff(e, "x") // 2*x
//	v, err := d.Eval(symbolic.Bindings{"x": 3})
package symbolic
