package linalg

import (
	"errors"
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrShape is the error underlying every dimension mismatch.
	ErrShape = errors.New("dimension mismatch")
	// ErrSingular is the error underlying failures to invert or solve.
	ErrSingular = errors.New("matrix is singular")
	// ErrDomain is the error underlying arguments outside a function's domain.
	ErrDomain = errors.New("argument outside domain")
	// ErrIndex is the error underlying out of bounds indices.
	ErrIndex = errors.New("index out of bounds")
)

// ShapeError describes operands whose dimensions are incompatible for an
// operation. It unwraps to ErrShape.
type ShapeError struct {
	// Op names the operation.
	Op string
	// A and B are the dimensions of the operands as rows, cols. B is zero for
	// unary operations.
	A, B [2]int
	// Hint is an optional suggestion appended to the message.
	Hint string
}

func (err *ShapeError) Error() string {
	s := err.Op + ": dimension mismatch " + dims(err.A)
	if err.B != [2]int{} {
		s += " and " + dims(err.B)
	}
	if err.Hint != "" {
		s += "; " + err.Hint
	}
	return s
}

func (err *ShapeError) Unwrap() error {
	return ErrShape
}

func dims(d [2]int) string {
	return strconv.Itoa(d[0]) + "x" + strconv.Itoa(d[1])
}

func shapeOf(m *Matrix) [2]int {
	return [2]int{m.Rows, m.Cols}
}

func mismatch(op string, a, b *Matrix) error {
	return &ShapeError{Op: op, A: shapeOf(a), B: shapeOf(b)}
}

func mismatch1(op string, a *Matrix) error {
	return &ShapeError{Op: op, A: shapeOf(a)}
}

// DomainError is an error returned when a function is called on an argument
// outside its domain. It unwraps to ErrDomain.
type DomainError struct {
	// X is the out-of-domain argument.
	X float64
	// Func is a name identifying the function.
	Func string
}

func (err *DomainError) Error() string {
	r := strconv.FormatFloat(err.X, 'g', -1, 64) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	return r
}

func (err *DomainError) Unwrap() error {
	return ErrDomain
}

// IndexError is an error returned when an index falls outside a matrix. It
// unwraps to ErrIndex.
type IndexError struct {
	// Index is the offending index.
	Index int
	// Len is the length of the indexed dimension.
	Len int
}

func (err *IndexError) Error() string {
	return "index " + strconv.Itoa(err.Index) + " out of bounds for length " + strconv.Itoa(err.Len)
}

func (err *IndexError) Unwrap() error {
	return ErrIndex
}

// catch converts a gonum shape panic into an error. Other panics propagate.
func catch(op string, err *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(mat.Error); ok {
		*err = fmt.Errorf("%s: %w: %v", op, ErrShape, e)
		return
	}
	panic(r)
}

func singular(op string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%s: %w", op, ErrSingular)
	}
	return fmt.Errorf("%s: %w: %v", op, ErrSingular, cause)
}
