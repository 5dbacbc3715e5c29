package symbolic

func (n *number) LaTeX() string { return formatNumber(n.v) }

func (c *constant) LaTeX() string { return c.latex }

func (v *variable) LaTeX() string { return v.name }

func (n *negation) LaTeX() string {
	return "-" + wrapLaTeX(n.x, precProduct, false)
}

func (c *call) LaTeX() string {
	arg := c.arg.LaTeX()
	switch c.name {
	case "sqrt":
		return `\sqrt{` + arg + `}`
	case "abs":
		return `\left|` + arg + `\right|`
	case "exp":
		return `e^{` + arg + `}`
	case "asin", "acos", "atan":
		return `\operatorname{` + c.name + `}{\left(` + arg + ` \right)}`
	}
	return `\` + c.name + `{\left(` + arg + ` \right)}`
}

func (b *binary) LaTeX() string {
	switch b.op {
	case '+':
		return wrapLaTeX(b.left, precSum, false) + " + " + wrapLaTeX(b.right, precSum, false)
	case '-':
		return wrapLaTeX(b.left, precSum, false) + " - " + wrapLaTeX(b.right, precSum, true)
	case '*':
		sep := ` \cdot `
		if _, ok := b.left.(*number); ok {
			if _, ok := b.right.(*number); !ok {
				sep = " "
			}
		}
		return wrapLaTeX(b.left, precProduct, false) + sep + wrapLaTeX(b.right, precProduct, true)
	case '/':
		return `\frac{` + b.left.LaTeX() + `}{` + b.right.LaTeX() + `}`
	}
	return wrapLaTeX(b.left, precPower, true) + "^{" + b.right.LaTeX() + "}"
}

func wrapLaTeX(e Expr, outer int, strict bool) string {
	p := e.prec()
	if p < outer || (strict && p == outer) {
		return `\left(` + e.LaTeX() + `\right)`
	}
	return e.LaTeX()
}
