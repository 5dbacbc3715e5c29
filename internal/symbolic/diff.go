package symbolic

// Diff returns the derivative of e with respect to variable.
func Diff(e Expr, variable string) Expr { return e.Diff(variable) }

func (n *number) Diff(string) Expr { return Num(0) }

func (c *constant) Diff(string) Expr { return Num(0) }

func (v *variable) Diff(name string) Expr {
	if v.name == name {
		return Num(1)
	}
	return Num(0)
}

func (n *negation) Diff(name string) Expr { return Neg(n.x.Diff(name)) }

func (b *binary) Diff(name string) Expr {
	u, w := b.left, b.right
	du, dw := u.Diff(name), w.Diff(name)

	switch b.op {
	case '+':
		return Add(du, dw)
	case '-':
		return Sub(du, dw)
	case '*':
		return Add(Mul(du, w), Mul(u, dw))
	case '/':
		return Div(Sub(Mul(du, w), Mul(u, dw)), Pow(w, Num(2)))
	}

	switch {
	case !dependsOn(w, name):
		// d(u^n) = n*u^(n-1)*u'
		return Mul(Mul(w, Pow(u, Sub(w, Num(1)))), du)
	case !dependsOn(u, name):
		// d(a^w) = a^w*log(a)*w'
		return Mul(Mul(b, Call("log", u)), dw)
	}
	// d(u^w) = u^w*(w'*log(u) + w*u'/u)
	return Mul(b, Add(Mul(dw, Call("log", u)), Div(Mul(w, du), u)))
}

func (c *call) Diff(name string) Expr {
	u := c.arg
	du := u.Diff(name)
	if isNum(du, 0) {
		return Num(0)
	}

	var outer Expr
	switch c.name {
	case "sin":
		outer = Call("cos", u)
	case "cos":
		outer = Neg(Call("sin", u))
	case "tan":
		outer = Add(Num(1), Pow(Call("tan", u), Num(2)))
	case "exp":
		outer = Call("exp", u)
	case "log":
		return Div(du, u)
	case "sqrt":
		return Div(du, Mul(Num(2), Call("sqrt", u)))
	case "abs":
		outer = Div(u, Call("abs", u))
	case "asin":
		return Div(du, Call("sqrt", Sub(Num(1), Pow(u, Num(2)))))
	case "acos":
		return Neg(Div(du, Call("sqrt", Sub(Num(1), Pow(u, Num(2))))))
	case "atan":
		return Div(du, Add(Num(1), Pow(u, Num(2))))
	case "sinh":
		outer = Call("cosh", u)
	case "cosh":
		outer = Call("sinh", u)
	case "tanh":
		outer = Sub(Num(1), Pow(Call("tanh", u), Num(2)))
	}
	return Mul(du, outer)
}

func dependsOn(e Expr, name string) bool {
	set := make(map[string]struct{})
	e.collectVars(set)
	_, ok := set[name]
	return ok
}
