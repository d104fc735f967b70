package equation

import (
	"errors"
	"strconv"
	"strings"
)

// TypeError is an error indicating that no overload of an operator or
// function accepts the kinds of its operands. It is returned while compiling.
type TypeError struct {
	// Col is the position of the operator or function.
	Col int
	// Op is the operator symbol or function name.
	Op string
	// Kinds are the kinds of the operands, in order.
	Kinds []Kind
}

func (err *TypeError) Error() string {
	k := make([]string, len(err.Kinds))
	for i, v := range err.Kinds {
		k[i] = v.String()
	}
	return errpos(err.Col, "no overload of "+strconv.Quote(err.Op)+" for ("+strings.Join(k, ", ")+")")
}

func (err *TypeError) Pos() int {
	return err.Col
}

func typeError(op string, args []*Variable) *TypeError {
	k := make([]Kind, len(args))
	for i, v := range args {
		k[i] = v.kind
	}
	return &TypeError{Op: op, Kinds: k}
}

// ComputeError is an error raised by an operation while performing a
// Sequence. Operations before Step have already written their outputs.
type ComputeError struct {
	// Op is the name of the failed operation.
	Op string
	// Step is the index of the failed operation in its Sequence.
	Step int
	// Err is the underlying error.
	Err error
}

func (err *ComputeError) Error() string {
	return "step " + strconv.Itoa(err.Step) + " (" + err.Op + "): " + err.Err.Error()
}

func (err *ComputeError) Unwrap() error {
	return err.Err
}

// IsParseError returns whether err is or wraps a ParseError.
func IsParseError(err error) bool {
	var p ParseError
	if !errors.As(err, &p) {
		return false
	}
	_, typ := p.(*TypeError)
	return !typ
}

// IsTypeError returns whether err is or wraps a *TypeError.
func IsTypeError(err error) bool {
	var t *TypeError
	return errors.As(err, &t)
}

// IsComputeError returns whether err is or wraps a *ComputeError.
func IsComputeError(err error) bool {
	var c *ComputeError
	return errors.As(err, &c)
}
