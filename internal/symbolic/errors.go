package symbolic

import (
	"errors"
	"fmt"
)

var (
	ErrSyntax = errors.New("symbolic: syntax error")

	// ErrDomain covers evaluation outside a function's domain: division by
	// zero, log of a non-positive number, overflow and the like.
	ErrDomain = errors.New("symbolic: domain error")

	ErrUnbound = errors.New("symbolic: unbound variable")

	ErrVariable = errors.New("symbolic: variable not allowed")
)

type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("symbolic: syntax error at position %d: %s", e.Pos, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

type DomainError struct {
	Op    string
	Value float64
	Msg   string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("symbolic: %s(%g): %s", e.Op, e.Value, e.Msg)
}

func (e *DomainError) Unwrap() error { return ErrDomain }
