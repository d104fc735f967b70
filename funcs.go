package equation

import (
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/zephyrtronium/equation/linalg"
)

// Func is a function callable from statements. Create is called while
// compiling, once per call site, and must not compute anything itself: it
// returns an operation that computes the result into the returned output
// variable each time the operation is performed.
type Func interface {
	// CanCall returns whether the function can be called with n arguments.
	// Calling a function with a number of arguments for which CanCall returns
	// false is a *CallError.
	CanCall(n int) bool

	// Create builds the operation for a call with the given arguments. The
	// output should be a temporary from NewTemp. If the function does not
	// accept the kinds of the arguments, Create should return a *TypeError.
	Create(args []*Variable) (*Operation, *Variable, error)
}

// factory builds the operation for one form of an overloaded function.
type factory func(args []*Variable) (*Operation, *Variable, error)

// form is one overload. sig has one letter per argument:
//
//	m	matrix
//	i	integer
//	d	double
//	s	integer or double
//	q	sequence
//	x	integer or sequence
type form struct {
	sig  string
	make factory
}

// overloads is a Func that dispatches on the kinds of its arguments. The first
// form whose signature matches is used.
type overloads struct {
	name  string
	forms []form
}

func overload(name string, forms ...form) *overloads {
	return &overloads{name: name, forms: forms}
}

func (o *overloads) CanCall(n int) bool {
	for _, f := range o.forms {
		if len(f.sig) == n {
			return true
		}
	}
	return false
}

func (o *overloads) Create(args []*Variable) (*Operation, *Variable, error) {
	for _, f := range o.forms {
		if matches(f.sig, args) {
			return f.make(args)
		}
	}
	return nil, nil, typeError(o.name, args)
}

func matches(sig string, args []*Variable) bool {
	if len(sig) != len(args) {
		return false
	}
	for i := 0; i < len(sig); i++ {
		k := args[i].kind
		var ok bool
		switch sig[i] {
		case 'm':
			ok = k == KindMatrix
		case 'i':
			ok = k == KindInteger
		case 'd':
			ok = k == KindDouble
		case 's':
			ok = k == KindInteger || k == KindDouble
		case 'q':
			ok = k == KindSequence
		case 'x':
			ok = k == KindInteger || k == KindSequence
		default:
			panic("equation: bad signature " + sig)
		}
		if !ok {
			return false
		}
	}
	return true
}

// opname names an operation after its function and argument kinds, e.g.
// "multiply-mm".
func opname(name string, args []*Variable) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('-')
	for _, v := range args {
		b.WriteByte(v.kind.tag())
	}
	return b.String()
}

// matrixTo builds a form producing a matrix.
func matrixTo(name string, f func(dst *linalg.Matrix, a []*Variable) error) factory {
	return func(args []*Variable) (*Operation, *Variable, error) {
		out := NewTemp(KindMatrix)
		op := NewOperation(opname(name, args), func() error { return f(out.m, args) })
		return op, out, nil
	}
}

// doubleTo builds a form producing a double.
func doubleTo(name string, f func(a []*Variable) (float64, error)) factory {
	return func(args []*Variable) (*Operation, *Variable, error) {
		out := NewTemp(KindDouble)
		op := NewOperation(opname(name, args), func() error {
			r, err := f(args)
			if err != nil {
				return err
			}
			out.d = r
			return nil
		})
		return op, out, nil
	}
}

// intTo builds a form producing an integer.
func intTo(name string, f func(a []*Variable) (int, error)) factory {
	return func(args []*Variable) (*Operation, *Variable, error) {
		out := NewTemp(KindInteger)
		op := NewOperation(opname(name, args), func() error {
			r, err := f(args)
			if err != nil {
				return err
			}
			out.i = r
			return nil
		})
		return op, out, nil
	}
}

// m1 adapts a unary matrix kernel.
func m1(f func(dst, a *linalg.Matrix) error) func(*linalg.Matrix, []*Variable) error {
	return func(dst *linalg.Matrix, a []*Variable) error { return f(dst, a[0].m) }
}

// m2 adapts a binary matrix kernel.
func m2(f func(dst, a, b *linalg.Matrix) error) func(*linalg.Matrix, []*Variable) error {
	return func(dst *linalg.Matrix, a []*Variable) error { return f(dst, a[0].m, a[1].m) }
}

// s1 adapts a scalar function that cannot fail.
func s1(f func(float64) float64) func([]*Variable) (float64, error) {
	return func(a []*Variable) (float64, error) { return f(a[0].Scalar()), nil }
}

// s1e adapts a scalar function that can fail.
func s1e(f func(float64) (float64, error)) func([]*Variable) (float64, error) {
	return func(a []*Variable) (float64, error) { return f(a[0].Scalar()) }
}

// direction converts the reduction argument of sum, max, and min.
func direction(v *Variable) (linalg.Dir, error) {
	switch v.i {
	case 0:
		return linalg.Rows, nil
	case 1:
		return linalg.Cols, nil
	}
	return 0, &linalg.DomainError{X: float64(v.i), Func: "direction (0 for rows, 1 for columns)"}
}

func reduceDir(f func(dst, a *linalg.Matrix, d linalg.Dir) error) func(*linalg.Matrix, []*Variable) error {
	return func(dst *linalg.Matrix, a []*Variable) error {
		d, err := direction(a[1])
		if err != nil {
			return err
		}
		return f(dst, a[0].m, d)
	}
}

// dims validates the integer dimension arguments of a constructor.
func dims(a []*Variable) (int, int, error) {
	r, c := a[0].i, a[1].i
	if r < 0 || c < 0 {
		return 0, 0, &linalg.ShapeError{Op: "constructor", A: [2]int{r, c}}
	}
	return r, c, nil
}

var errIntDivide = errors.New("integer division by zero")

// builtins creates the default function set for e.
func builtins(e *Equation) map[string]Func {
	return map[string]Func{
		"inv": overload("inv",
			form{"m", matrixTo("inv", m1(linalg.Inverse))},
			form{"s", doubleTo("inv", s1(func(x float64) float64 { return 1 / x }))},
		),
		"pinv": overload("pinv",
			form{"m", matrixTo("pinv", m1(linalg.PseudoInverse))},
			form{"s", doubleTo("pinv", s1(func(x float64) float64 {
				if x == 0 {
					return 0
				}
				return 1 / x
			}))},
		),
		"rref": overload("rref",
			form{"m", matrixTo("rref", m1(linalg.RREF))},
			form{"s", doubleTo("rref", s1(func(x float64) float64 {
				if x == 0 {
					return 0
				}
				return 1
			}))},
		),
		"det": overload("det",
			form{"m", doubleTo("det", func(a []*Variable) (float64, error) { return linalg.Det(a[0].m) })},
			form{"s", doubleTo("det", s1(func(x float64) float64 { return x }))},
		),
		"trace": overload("trace",
			form{"m", doubleTo("trace", func(a []*Variable) (float64, error) { return linalg.Trace(a[0].m), nil })},
			form{"s", doubleTo("trace", s1(func(x float64) float64 { return x }))},
		),
		"normF": overload("normF",
			form{"m", doubleTo("normF", func(a []*Variable) (float64, error) { return linalg.NormF(a[0].m), nil })},
			form{"s", doubleTo("normF", s1(math.Abs))},
		),
		"normP": overload("normP",
			form{"ms", doubleTo("normP", func(a []*Variable) (float64, error) { return linalg.NormP(a[0].m, a[1].Scalar()) })},
			form{"ss", doubleTo("normP", s1(math.Abs))},
		),
		"sum": overload("sum",
			form{"m", doubleTo("sum", func(a []*Variable) (float64, error) { return linalg.Sum(a[0].m), nil })},
			form{"s", doubleTo("sum", s1(func(x float64) float64 { return x }))},
			form{"mi", matrixTo("sum", reduceDir(linalg.SumDir))},
		),
		"max": overload("max",
			form{"m", doubleTo("max", func(a []*Variable) (float64, error) { return linalg.Max(a[0].m) })},
			form{"i", intTo("max", func(a []*Variable) (int, error) { return a[0].i, nil })},
			form{"d", doubleTo("max", s1(func(x float64) float64 { return x }))},
			form{"mi", matrixTo("max", reduceDir(linalg.MaxDir))},
		),
		"min": overload("min",
			form{"m", doubleTo("min", func(a []*Variable) (float64, error) { return linalg.Min(a[0].m) })},
			form{"i", intTo("min", func(a []*Variable) (int, error) { return a[0].i, nil })},
			form{"d", doubleTo("min", s1(func(x float64) float64 { return x }))},
			form{"mi", matrixTo("min", reduceDir(linalg.MinDir))},
		),
		"abs": overload("abs",
			form{"m", matrixTo("abs", m1(linalg.Abs))},
			form{"i", intTo("abs", func(a []*Variable) (int, error) {
				if a[0].i < 0 {
					return -a[0].i, nil
				}
				return a[0].i, nil
			})},
			form{"d", doubleTo("abs", s1(math.Abs))},
		),
		"eye": overload("eye",
			form{"m", matrixTo("eye", func(dst *linalg.Matrix, a []*Variable) error {
				return linalg.Identity(dst, a[0].m.Rows, a[0].m.Cols)
			})},
			form{"i", matrixTo("eye", func(dst *linalg.Matrix, a []*Variable) error {
				return linalg.Identity(dst, a[0].i, a[0].i)
			})},
		),
		"diag": overload("diag",
			form{"m", matrixTo("diag", m1(linalg.Diag))},
		),
		"zeros": overload("zeros",
			form{"ii", matrixTo("zeros", func(dst *linalg.Matrix, a []*Variable) error {
				r, c, err := dims(a)
				if err != nil {
					return err
				}
				return linalg.Fill(dst, r, c, 0)
			})},
		),
		"ones": overload("ones",
			form{"ii", matrixTo("ones", func(dst *linalg.Matrix, a []*Variable) error {
				r, c, err := dims(a)
				if err != nil {
					return err
				}
				return linalg.Fill(dst, r, c, 1)
			})},
		),
		"rand": overload("rand",
			form{"ii", matrixTo("rand", func(dst *linalg.Matrix, a []*Variable) error {
				r, c, err := dims(a)
				if err != nil {
					return err
				}
				return linalg.Uniform(dst, r, c, e.rand)
			})},
		),
		"randn": overload("randn",
			form{"ii", matrixTo("randn", func(dst *linalg.Matrix, a []*Variable) error {
				r, c, err := dims(a)
				if err != nil {
					return err
				}
				return linalg.Normal(dst, r, c, e.rand)
			})},
		),
		"rng": overload("rng",
			form{"i", intTo("rng", func(a []*Variable) (int, error) {
				e.reseed(uint64(a[0].i))
				return a[0].i, nil
			})},
		),
		"kron": overload("kron",
			form{"mm", matrixTo("kron", m2(linalg.Kron))},
		),
		"dot": overload("dot",
			form{"mm", doubleTo("dot", func(a []*Variable) (float64, error) { return linalg.Dot(a[0].m, a[1].m) })},
		),
		"solve": overload("solve",
			form{"mm", matrixTo("solve", m2(linalg.Solve))},
		),
		"sqrt": overload("sqrt",
			form{"s", doubleTo("sqrt", s1e(linalg.Sqrt))},
		),
		"sin": overload("sin",
			form{"s", doubleTo("sin", s1(math.Sin))},
		),
		"cos": overload("cos",
			form{"s", doubleTo("cos", s1(math.Cos))},
		),
		"atan": overload("atan",
			form{"s", doubleTo("atan", s1(math.Atan))},
		),
		"atan2": overload("atan2",
			form{"ss", doubleTo("atan2", func(a []*Variable) (float64, error) {
				return math.Atan2(a[0].Scalar(), a[1].Scalar()), nil
			})},
		),
		"exp": overload("exp",
			form{"s", doubleTo("exp", s1e(linalg.Exp))},
			form{"m", matrixTo("exp", m1(linalg.ExpElem))},
		),
		"log": overload("log",
			form{"s", doubleTo("log", s1e(linalg.Log))},
			form{"m", matrixTo("log", m1(linalg.LogElem))},
		),
		"pow": overload("pow",
			form{"ss", doubleTo("pow", func(a []*Variable) (float64, error) {
				return linalg.Pow(a[0].Scalar(), a[1].Scalar())
			})},
		),
		"extract": extractFunc,
	}
}

// DefaultFuncs returns the names of the functions available by default.
func DefaultFuncs() []string {
	m := builtins(nil)
	r := make([]string, 0, len(m))
	for k := range m {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}
