package symbolic

import (
	"math"
	"sort"
	"strconv"
)

// Expr is an immutable expression tree node.
type Expr interface {
	Eval(b Bindings) (float64, error)
	Diff(variable string) Expr
	String() string
	LaTeX() string
	prec() int
	collectVars(out map[string]struct{})
}

// Bindings maps variable names to values for evaluation.
type Bindings map[string]float64

const (
	precSum = iota + 1
	precProduct
	precUnary
	precPower
	precAtom
)

type number struct{ v float64 }

type constant struct {
	name  string
	latex string
	v     float64
}

type variable struct{ name string }

type binary struct {
	op          byte
	left, right Expr
}

type negation struct{ x Expr }

type call struct {
	name string
	arg  Expr
}

var constants = map[string]Expr{
	"pi": &constant{name: "pi", latex: `\pi`, v: math.Pi},
	"e":  &constant{name: "E", latex: "e", v: math.E},
	"E":  &constant{name: "E", latex: "e", v: math.E},
}

func Num(v float64) Expr     { return &number{v: v} }
func Var(name string) Expr   { return &variable{name: name} }
func (n *number) prec() int {
	if n.v < 0 {
		return precUnary
	}
	return precAtom
}
func (c *constant) prec() int { return precAtom }
func (v *variable) prec() int { return precAtom }
func (n *negation) prec() int { return min(precUnary, n.x.prec()) }
func (c *call) prec() int     { return precAtom }
func (b *binary) prec() int {
	switch b.op {
	case '+', '-':
		return precSum
	case '*', '/':
		return precProduct
	}
	return precPower
}

func (n *number) collectVars(map[string]struct{})   {}
func (c *constant) collectVars(map[string]struct{}) {}
func (v *variable) collectVars(out map[string]struct{}) {
	out[v.name] = struct{}{}
}
func (b *binary) collectVars(out map[string]struct{}) {
	b.left.collectVars(out)
	b.right.collectVars(out)
}
func (n *negation) collectVars(out map[string]struct{}) { n.x.collectVars(out) }
func (c *call) collectVars(out map[string]struct{})     { c.arg.collectVars(out) }

// Variables returns the sorted free variable names of e.
func Variables(e Expr) []string {
	set := make(map[string]struct{})
	e.collectVars(set)
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Equal reports structural equality of the simplified forms.
func Equal(a, b Expr) bool { return a.String() == b.String() }

func numValue(e Expr) (float64, bool) {
	n, ok := e.(*number)
	if !ok {
		return 0, false
	}
	return n.v, true
}

func isNum(e Expr, v float64) bool {
	n, ok := numValue(e)
	return ok && n == v
}

func isInteger(v float64) bool {
	return v == math.Trunc(v) && math.Abs(v) < 1<<53
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Add, Sub, Mul, Div, Pow, Neg and Call build nodes with light
// simplification: constant folding and the identities for 0 and 1.

func Add(a, b Expr) Expr {
	av, aok := numValue(a)
	bv, bok := numValue(b)
	switch {
	case aok && bok:
		return Num(av + bv)
	case aok && av == 0:
		return b
	case bok && bv == 0:
		return a
	case bok && bv < 0:
		return Sub(a, Num(-bv))
	}
	if n, ok := b.(*negation); ok {
		return Sub(a, n.x)
	}
	return &binary{op: '+', left: a, right: b}
}

func Sub(a, b Expr) Expr {
	av, aok := numValue(a)
	bv, bok := numValue(b)
	switch {
	case aok && bok:
		return Num(av - bv)
	case bok && bv == 0:
		return a
	case bok && bv < 0:
		return Add(a, Num(-bv))
	case aok && av == 0:
		return Neg(b)
	case Equal(a, b):
		return Num(0)
	}
	if n, ok := b.(*negation); ok {
		return Add(a, n.x)
	}
	return &binary{op: '-', left: a, right: b}
}

func Mul(a, b Expr) Expr {
	if _, ok := numValue(a); !ok {
		if _, ok := numValue(b); ok {
			a, b = b, a
		}
	}
	av, aok := numValue(a)
	bv, bok := numValue(b)
	switch {
	case aok && bok:
		return Num(av * bv)
	case aok && av == 0, bok && bv == 0:
		return Num(0)
	case aok && av == 1:
		return b
	case aok && av == -1:
		return Neg(b)
	}
	if n, ok := a.(*negation); ok {
		return Neg(Mul(n.x, b))
	}
	if n, ok := b.(*negation); ok {
		return Neg(Mul(a, n.x))
	}
	if aok {
		if inner, ok := b.(*binary); ok && inner.op == '*' {
			if cv, ok := numValue(inner.left); ok {
				return Mul(Num(av*cv), inner.right)
			}
		}
	}
	return &binary{op: '*', left: a, right: b}
}

func Div(a, b Expr) Expr {
	av, aok := numValue(a)
	bv, bok := numValue(b)
	switch {
	case bok && bv == 1:
		return a
	case aok && av == 0 && !(bok && bv == 0):
		return Num(0)
	case aok && bok && bv != 0 && isInteger(av/bv):
		return Num(av / bv)
	case Equal(a, b) && !bok:
		return Num(1)
	}
	if n, ok := a.(*negation); ok {
		return Neg(Div(n.x, b))
	}
	return &binary{op: '/', left: a, right: b}
}

func Pow(a, b Expr) Expr {
	av, aok := numValue(a)
	bv, bok := numValue(b)
	switch {
	case bok && bv == 0:
		return Num(1)
	case bok && bv == 1:
		return a
	case aok && av == 1:
		return Num(1)
	case aok && bok && isInteger(av) && isInteger(bv) && bv > 0:
		if r := math.Pow(av, bv); isInteger(r) {
			return Num(r)
		}
	}
	return &binary{op: '^', left: a, right: b}
}

func Neg(a Expr) Expr {
	switch x := a.(type) {
	case *number:
		return Num(-x.v)
	case *negation:
		return x.x
	}
	return &negation{x: a}
}

// Call applies a named function. Numeric arguments are folded only when
// the result is an exact integer, e.g. cos(0) or log(E).
func Call(name string, arg Expr) Expr {
	if c, ok := arg.(*constant); ok && c.name == "E" && (name == "log" || name == "ln") {
		return Num(1)
	}
	if v, ok := numValue(arg); ok {
		if r, err := applyFunc(name, v); err == nil && isInteger(r) {
			return Num(r)
		}
	}
	if name == "ln" {
		name = "log"
	}
	return &call{name: name, arg: arg}
}

func (n *number) String() string { return formatNumber(n.v) }

func (c *constant) String() string { return c.name }

func (v *variable) String() string { return v.name }

func (n *negation) String() string {
	return "-" + wrap(n.x, precProduct, false)
}

func (c *call) String() string { return c.name + "(" + c.arg.String() + ")" }

func (b *binary) String() string {
	switch b.op {
	case '+':
		return wrap(b.left, precSum, false) + " + " + wrap(b.right, precSum, false)
	case '-':
		return wrap(b.left, precSum, false) + " - " + wrap(b.right, precSum, true)
	case '*':
		return wrap(b.left, precProduct, false) + "*" + wrap(b.right, precProduct, true)
	case '/':
		return wrap(b.left, precProduct, false) + "/" + wrap(b.right, precProduct, true)
	}
	return wrap(b.left, precPower, true) + "**" + wrap(b.right, precPower, false)
}

// wrap parenthesizes e when it binds looser than the surrounding operator,
// or equally loose on the side where associativity matters.
func wrap(e Expr, outer int, strict bool) string {
	p := e.prec()
	if p < outer || (strict && p == outer) {
		return "(" + e.String() + ")"
	}
	return e.String()
}
