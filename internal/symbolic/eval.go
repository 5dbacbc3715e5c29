package symbolic

import (
	"fmt"
	"math"
)

func (n *number) Eval(Bindings) (float64, error) { return n.v, nil }

func (c *constant) Eval(Bindings) (float64, error) { return c.v, nil }

func (v *variable) Eval(b Bindings) (float64, error) {
	val, ok := b[v.name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnbound, v.name)
	}
	return val, nil
}

func (n *negation) Eval(b Bindings) (float64, error) {
	v, err := n.x.Eval(b)
	if err != nil {
		return 0, err
	}
	return -v, nil
}

func (c *call) Eval(b Bindings) (float64, error) {
	v, err := c.arg.Eval(b)
	if err != nil {
		return 0, err
	}
	return applyFunc(c.name, v)
}

func (bin *binary) Eval(b Bindings) (float64, error) {
	l, err := bin.left.Eval(b)
	if err != nil {
		return 0, err
	}
	r, err := bin.right.Eval(b)
	if err != nil {
		return 0, err
	}

	var v float64
	switch bin.op {
	case '+':
		v = l + r
	case '-':
		v = l - r
	case '*':
		v = l * r
	case '/':
		if r == 0 {
			return 0, &DomainError{Op: "div", Value: l, Msg: "division by zero"}
		}
		v = l / r
	case '^':
		if l == 0 && r < 0 {
			return 0, &DomainError{Op: "pow", Value: l, Msg: "zero raised to a negative power"}
		}
		v = math.Pow(l, r)
		if math.IsNaN(v) {
			return 0, &DomainError{Op: "pow", Value: l, Msg: fmt.Sprintf("negative base with non-integer exponent %g", r)}
		}
	}
	if !isFinite(v) {
		return 0, &DomainError{Op: string(bin.op), Value: l, Msg: "result overflows"}
	}
	return v, nil
}

var funcs = map[string]func(float64) (float64, error){
	"sin":  unary(math.Sin),
	"cos":  unary(math.Cos),
	"tan":  unary(math.Tan),
	"atan": unary(math.Atan),
	"sinh": unary(math.Sinh),
	"cosh": unary(math.Cosh),
	"tanh": unary(math.Tanh),
	"exp":  unary(math.Exp),
	"abs":  unary(math.Abs),
	"asin": bounded(math.Asin, "asin"),
	"acos": bounded(math.Acos, "acos"),
	"sqrt": func(v float64) (float64, error) {
		if v < 0 {
			return 0, &DomainError{Op: "sqrt", Value: v, Msg: "square root of a negative number"}
		}
		return math.Sqrt(v), nil
	},
	"log": logarithm,
	"ln":  logarithm,
}

func isFunc(name string) bool {
	_, ok := funcs[name]
	return ok
}

func applyFunc(name string, v float64) (float64, error) {
	fn, ok := funcs[name]
	if !ok {
		return 0, fmt.Errorf("%w: unknown function %q", ErrSyntax, name)
	}
	r, err := fn(v)
	if err != nil {
		return 0, err
	}
	if !isFinite(r) {
		return 0, &DomainError{Op: name, Value: v, Msg: "result is not finite"}
	}
	return r, nil
}

func unary(fn func(float64) float64) func(float64) (float64, error) {
	return func(v float64) (float64, error) { return fn(v), nil }
}

func bounded(fn func(float64) float64, name string) func(float64) (float64, error) {
	return func(v float64) (float64, error) {
		if v < -1 || v > 1 {
			return 0, &DomainError{Op: name, Value: v, Msg: "argument outside [-1, 1]"}
		}
		return fn(v), nil
	}
}

func logarithm(v float64) (float64, error) {
	if v <= 0 {
		return 0, &DomainError{Op: "log", Value: v, Msg: "logarithm of a non-positive number"}
	}
	return math.Log(v), nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
