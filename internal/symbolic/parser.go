package symbolic

import (
	"fmt"
	"strings"
)

type parser struct {
	tokens []token
	pos    int
}

// Parse turns src into an expression tree.
func Parse(src string) (Expr, error) {
	if strings.TrimSpace(src) == "" {
		return nil, &SyntaxError{Pos: 0, Msg: "empty expression"}
	}

	tokens, err := tokenize(src)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, &SyntaxError{Pos: tok.pos, Msg: fmt.Sprintf("unexpected %q", tok.text)}
	}
	return e, nil
}

// MustParse is Parse for expressions known to be valid; it panics otherwise.
func MustParse(src string) Expr {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) isOp(ops ...string) bool {
	tok := p.peek()
	if tok.kind != tokOp {
		return false
	}
	for _, op := range ops {
		if tok.text == op {
			return true
		}
	}
	return false
}

func (p *parser) expr() (Expr, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.isOp("+", "-") {
		op := p.next().text
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		if op == "+" {
			left = Add(left, right)
		} else {
			left = Sub(left, right)
		}
	}
	return left, nil
}

func (p *parser) term() (Expr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.isOp("*", "/") {
		op := p.next().text
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		if op == "*" {
			left = Mul(left, right)
		} else {
			left = Div(left, right)
		}
	}
	return left, nil
}

func (p *parser) unary() (Expr, error) {
	if p.isOp("-", "+") {
		op := p.next().text
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		if op == "-" {
			return Neg(operand), nil
		}
		return operand, nil
	}
	return p.power()
}

func (p *parser) power() (Expr, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	if p.isOp("^") {
		p.next()
		exp, err := p.unary()
		if err != nil {
			return nil, err
		}
		return Pow(base, exp), nil
	}
	return base, nil
}

func (p *parser) primary() (Expr, error) {
	tok := p.next()
	switch tok.kind {
	case tokNum:
		return Num(tok.num), nil

	case tokIdent:
		if p.peek().kind == tokLParen {
			if !isFunc(tok.text) {
				return nil, &SyntaxError{Pos: tok.pos, Msg: fmt.Sprintf("unknown function %q", tok.text)}
			}
			p.next()
			arg, err := p.expr()
			if err != nil {
				return nil, err
			}
			if closing := p.next(); closing.kind != tokRParen {
				return nil, &SyntaxError{Pos: closing.pos, Msg: "expected ')'"}
			}
			return Call(tok.text, arg), nil
		}
		if isFunc(tok.text) {
			return nil, &SyntaxError{Pos: tok.pos, Msg: fmt.Sprintf("function %q needs an argument", tok.text)}
		}
		if c, ok := constants[tok.text]; ok {
			return c, nil
		}
		return Var(tok.text), nil

	case tokLParen:
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, &SyntaxError{Pos: closing.pos, Msg: "expected ')'"}
		}
		return inner, nil

	case tokEOF:
		return nil, &SyntaxError{Pos: tok.pos, Msg: "unexpected end of expression"}
	}

	return nil, &SyntaxError{Pos: tok.pos, Msg: fmt.Sprintf("unexpected %q", tok.text)}
}
