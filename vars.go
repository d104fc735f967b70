package equation

import (
	"strconv"

	"github.com/zephyrtronium/equation/linalg"
)

// Kind is the type of a Variable.
type Kind int8

const (
	kindNone Kind = iota
	// KindMatrix is a dense matrix of float64.
	KindMatrix
	// KindInteger is an integer scalar.
	KindInteger
	// KindDouble is a float64 scalar.
	KindDouble
	// KindSequence is an integer sequence, used for indexing.
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindMatrix:
		return "matrix"
	case KindInteger:
		return "integer"
	case KindDouble:
		return "double"
	case KindSequence:
		return "sequence"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// tag is the single-letter tag used in operation names.
func (k Kind) tag() byte {
	switch k {
	case KindMatrix:
		return 'm'
	case KindInteger:
		return 'i'
	case KindDouble:
		return 'd'
	case KindSequence:
		return 'q'
	}
	return '?'
}

// Variable is a typed value that operations read and write. Named variables
// belong to an Equation; temporaries belong to the Sequence that created
// them. The payload field that is meaningful depends on Kind.
type Variable struct {
	name string
	kind Kind
	m    *linalg.Matrix
	i    int
	d    float64
	seq  IntSequence
}

// NewTemp creates an unnamed variable of the given kind. Matrix temporaries
// start empty.
func NewTemp(k Kind) *Variable {
	v := &Variable{kind: k}
	if k == KindMatrix {
		v.m = new(linalg.Matrix)
	}
	return v
}

func intLiteral(n int) *Variable {
	return &Variable{kind: KindInteger, i: n}
}

func doubleLiteral(f float64) *Variable {
	return &Variable{kind: KindDouble, d: f}
}

// Name returns the name of v, or the empty string for a temporary.
func (v *Variable) Name() string {
	return v.name
}

// Kind returns the kind of v.
func (v *Variable) Kind() Kind {
	return v.kind
}

// Matrix returns the matrix payload of v, or nil if v is not a matrix. The
// returned matrix is the one operations write into.
func (v *Variable) Matrix() *linalg.Matrix {
	if v.kind != KindMatrix {
		return nil
	}
	return v.m
}

// Int returns the value of an integer variable.
func (v *Variable) Int() int {
	return v.i
}

// Double returns the value of a double variable.
func (v *Variable) Double() float64 {
	return v.d
}

// Scalar returns the value of an integer or double variable as a float64.
func (v *Variable) Scalar() float64 {
	if v.kind == KindInteger {
		return float64(v.i)
	}
	return v.d
}

// Sequence returns the payload of a sequence variable.
func (v *Variable) Sequence() IntSequence {
	return v.seq
}

// SetInt sets the value of an integer variable.
func (v *Variable) SetInt(n int) {
	v.i = n
}

// SetDouble sets the value of a double variable.
func (v *Variable) SetDouble(f float64) {
	v.d = f
}

// SetMatrix sets the payload of a matrix variable.
func (v *Variable) SetMatrix(m *linalg.Matrix) {
	v.m = m
}

// SetSequence sets the payload of a sequence variable.
func (v *Variable) SetSequence(s IntSequence) {
	v.seq = s
}

func (v *Variable) isScalar() bool {
	return v.kind == KindInteger || v.kind == KindDouble
}

func (v *Variable) String() string {
	switch v.kind {
	case KindMatrix:
		return v.m.String()
	case KindInteger:
		return strconv.Itoa(v.i)
	case KindDouble:
		return strconv.FormatFloat(v.d, 'g', -1, 64)
	case KindSequence:
		return seqString(v.seq)
	}
	return "<invalid>"
}
