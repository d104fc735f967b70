package equation

import (
	"github.com/zephyrtronium/equation/linalg"
)

func ms(f func(dst, m *linalg.Matrix, s float64) error) func(*linalg.Matrix, []*Variable) error {
	return func(dst *linalg.Matrix, a []*Variable) error { return f(dst, a[0].m, a[1].Scalar()) }
}

func sm(f func(dst *linalg.Matrix, s float64, m *linalg.Matrix) error) func(*linalg.Matrix, []*Variable) error {
	return func(dst *linalg.Matrix, a []*Variable) error { return f(dst, a[0].Scalar(), a[1].m) }
}

// commuted applies a matrix-scalar kernel to scalar-matrix operands.
func commuted(f func(dst, m *linalg.Matrix, s float64) error) func(*linalg.Matrix, []*Variable) error {
	return func(dst *linalg.Matrix, a []*Variable) error { return f(dst, a[1].m, a[0].Scalar()) }
}

func ints(name string, f func(x, y int) (int, error)) factory {
	return intTo(name, func(a []*Variable) (int, error) { return f(a[0].i, a[1].i) })
}

func doubles(name string, f func(x, y float64) (float64, error)) factory {
	return doubleTo(name, func(a []*Variable) (float64, error) { return f(a[0].Scalar(), a[1].Scalar()) })
}

func add(x, y float64) (float64, error) { return x + y, nil }
func sub(x, y float64) (float64, error) { return x - y, nil }
func mul(x, y float64) (float64, error) { return x * y, nil }
func div(x, y float64) (float64, error) { return x / y, nil }

func intDiv(x, y int) (int, error) {
	if y == 0 {
		return 0, errIntDivide
	}
	return x / y, nil
}

// operators are the binary operator overloads.
var operators = map[symbol]*overloads{
	symPlus: overload("+",
		form{"mm", matrixTo("add", m2(linalg.Add))},
		form{"ms", matrixTo("add", ms(linalg.AddScalar))},
		form{"sm", matrixTo("add", commuted(linalg.AddScalar))},
		form{"ii", ints("add", func(x, y int) (int, error) { return x + y, nil })},
		form{"ss", doubles("add", add)},
	),
	symMinus: overload("-",
		form{"mm", matrixTo("subtract", m2(linalg.Sub))},
		form{"ms", matrixTo("subtract", ms(linalg.SubScalar))},
		form{"sm", matrixTo("subtract", sm(linalg.ScalarSub))},
		form{"ii", ints("subtract", func(x, y int) (int, error) { return x - y, nil })},
		form{"ss", doubles("subtract", sub)},
	),
	symTimes: overload("*",
		form{"mm", matrixTo("multiply", m2(linalg.Mul))},
		form{"ms", matrixTo("multiply", ms(linalg.Scale))},
		form{"sm", matrixTo("multiply", commuted(linalg.Scale))},
		form{"ii", ints("multiply", func(x, y int) (int, error) { return x * y, nil })},
		form{"ss", doubles("multiply", mul)},
	),
	// b/A solves A*x = b.
	symRDivide: overload("/",
		form{"mm", matrixTo("divide", func(dst *linalg.Matrix, a []*Variable) error {
			return linalg.Solve(dst, a[1].m, a[0].m)
		})},
		form{"ms", matrixTo("divide", ms(linalg.DivScalar))},
		form{"sm", matrixTo("divide", sm(linalg.ScalarDiv))},
		form{"ii", ints("divide", intDiv)},
		form{"ss", doubles("divide", div)},
	),
	// A\b is b/A.
	symLDivide: overload(`\`,
		form{"mm", matrixTo("solve", m2(linalg.Solve))},
		form{"ms", matrixTo("divide", func(dst *linalg.Matrix, a []*Variable) error {
			return linalg.ScalarDiv(dst, a[1].Scalar(), a[0].m)
		})},
		form{"sm", matrixTo("divide", commuted(linalg.DivScalar))},
		form{"ii", ints("divide", func(x, y int) (int, error) { return intDiv(y, x) })},
		form{"ss", doubles("divide", func(x, y float64) (float64, error) { return y / x, nil })},
	),
	symPower: overload("^",
		form{"ss", doubles("pow", linalg.Pow)},
	),
	symElemTimes: overload(".*",
		form{"mm", matrixTo("elementMult", m2(linalg.MulElem))},
		form{"ms", matrixTo("elementMult", ms(linalg.Scale))},
		form{"sm", matrixTo("elementMult", commuted(linalg.Scale))},
		form{"ii", ints("elementMult", func(x, y int) (int, error) { return x * y, nil })},
		form{"ss", doubles("elementMult", mul)},
	),
	symElemDivide: overload("./",
		form{"mm", matrixTo("elementDivide", m2(linalg.DivElem))},
		form{"ms", matrixTo("elementDivide", ms(linalg.DivScalar))},
		form{"sm", matrixTo("elementDivide", sm(linalg.ScalarDiv))},
		form{"ss", doubles("elementDivide", div)},
	),
	symElemPower: overload(".^",
		form{"mm", matrixTo("elementPow", m2(linalg.PowElem))},
		form{"ms", matrixTo("elementPow", ms(linalg.PowScalar))},
		form{"sm", matrixTo("elementPow", sm(linalg.ScalarPow))},
		form{"ss", doubles("elementPow", linalg.Pow)},
	),
}

var negate = overload("-",
	form{"m", matrixTo("neg", m1(linalg.Neg))},
	form{"i", intTo("neg", func(a []*Variable) (int, error) { return -a[0].i, nil })},
	form{"d", doubleTo("neg", func(a []*Variable) (float64, error) { return -a[0].d, nil })},
)

var transpose = overload("'",
	form{"m", matrixTo("transpose", m1(linalg.Transpose))},
)

// extractFunc implements submatrix syntax and the extract function. Integer
// indices alone select one element as a double.
var extractFunc = overload("extract",
	form{"mi", doubleTo("extractScalar", func(a []*Variable) (float64, error) {
		m, k := a[0].m, a[1].i
		if k < 0 || k >= m.Len() {
			return 0, &linalg.IndexError{Index: k, Len: m.Len()}
		}
		return m.Data[k], nil
	})},
	form{"mii", doubleTo("extractScalar", func(a []*Variable) (float64, error) {
		m, r, c := a[0].m, a[1].i, a[2].i
		if r < 0 || r >= m.Rows {
			return 0, &linalg.IndexError{Index: r, Len: m.Rows}
		}
		if c < 0 || c >= m.Cols {
			return 0, &linalg.IndexError{Index: c, Len: m.Cols}
		}
		return m.At(r, c), nil
	})},
	form{"mx", matrixTo("extract", func(dst *linalg.Matrix, a []*Variable) error {
		idx, err := indices(a[1], a[0].m.Len())
		if err != nil {
			return err
		}
		return linalg.ExtractElements(dst, a[0].m, idx)
	})},
	form{"mxx", matrixTo("extract", func(dst *linalg.Matrix, a []*Variable) error {
		m := a[0].m
		rows, err := indices(a[1], m.Rows)
		if err != nil {
			return err
		}
		cols, err := indices(a[2], m.Cols)
		if err != nil {
			return err
		}
		return linalg.Extract(dst, m, rows, cols)
	})},
)

// assign creates the operation copying src into dst.
func assign(src, dst *Variable) (*Operation, error) {
	name := "copy-" + string([]byte{src.kind.tag(), dst.kind.tag()})
	var f func() error
	switch {
	case src.kind == KindMatrix && dst.kind == KindMatrix:
		f = func() error {
			dst.m.CopyFrom(src.m)
			return nil
		}
	case src.kind == KindMatrix && dst.kind == KindDouble:
		f = func() error {
			if src.m.Rows != 1 || src.m.Cols != 1 {
				return &linalg.ShapeError{Op: "copy", A: [2]int{src.m.Rows, src.m.Cols}, Hint: "only a 1x1 matrix can be assigned to a double"}
			}
			dst.d = src.m.Data[0]
			return nil
		}
	case src.kind == KindInteger && dst.kind == KindInteger:
		f = func() error {
			dst.i = src.i
			return nil
		}
	case src.isScalar() && dst.kind == KindDouble:
		f = func() error {
			dst.d = src.Scalar()
			return nil
		}
	case src.kind == KindSequence && dst.kind == KindSequence:
		f = func() error {
			dst.seq = src.seq
			return nil
		}
	default:
		return nil, &TypeError{Op: "=", Kinds: []Kind{dst.kind, src.kind}}
	}
	return NewOperation(name, f), nil
}

// assignSub creates the operation writing src into the elements of dst
// selected by ranges, which holds one or two integer or sequence variables.
func assignSub(src, dst *Variable, ranges []*Variable) (*Operation, error) {
	args := append([]*Variable{dst}, ranges...)
	if dst.kind != KindMatrix {
		return nil, typeError("submatrix assignment", args)
	}
	for _, r := range ranges {
		if r.kind != KindInteger && r.kind != KindSequence {
			return nil, typeError("submatrix assignment", args)
		}
	}
	name := opname("copyR", append([]*Variable{src}, args...))
	var f func() error
	switch {
	case src.kind == KindMatrix && len(ranges) == 1:
		f = func() error {
			idx, err := indices(ranges[0], dst.m.Len())
			if err != nil {
				return err
			}
			return linalg.InsertElements(dst.m, src.m, idx)
		}
	case src.kind == KindMatrix:
		f = func() error {
			rows, cols, err := rowsCols(dst.m, ranges)
			if err != nil {
				return err
			}
			return linalg.Insert(dst.m, src.m, rows, cols)
		}
	case src.isScalar() && len(ranges) == 1:
		f = func() error {
			idx, err := indices(ranges[0], dst.m.Len())
			if err != nil {
				return err
			}
			return linalg.FillElements(dst.m, idx, src.Scalar())
		}
	case src.isScalar():
		f = func() error {
			rows, cols, err := rowsCols(dst.m, ranges)
			if err != nil {
				return err
			}
			return linalg.FillAt(dst.m, rows, cols, src.Scalar())
		}
	default:
		return nil, typeError("submatrix assignment", append([]*Variable{src}, args...))
	}
	return NewOperation(name, f), nil
}

func rowsCols(m *linalg.Matrix, ranges []*Variable) ([]int, []int, error) {
	rows, err := indices(ranges[0], m.Rows)
	if err != nil {
		return nil, nil, err
	}
	cols, err := indices(ranges[1], m.Cols)
	if err != nil {
		return nil, nil, err
	}
	return rows, cols, nil
}

// construct creates the operation assembling a matrix from rows of entries.
// Sequences in entries must not be open.
func construct(rows [][]*Variable) (*Operation, *Variable) {
	out := NewTemp(KindMatrix)
	op := NewOperation("matrixConstructor", func() error {
		grid := make([][]*linalg.Matrix, len(rows))
		for i, row := range rows {
			grid[i] = make([]*linalg.Matrix, len(row))
			for j, v := range row {
				switch v.kind {
				case KindMatrix:
					grid[i][j] = v.m
				case KindInteger, KindDouble:
					grid[i][j] = linalg.NewFrom(1, 1, v.Scalar())
				case KindSequence:
					if err := v.seq.Bind(-1); err != nil {
						return err
					}
					vals := v.seq.AppendTo(nil)
					m := linalg.New(1, len(vals))
					for k, x := range vals {
						m.Data[k] = float64(x)
					}
					grid[i][j] = m
				}
			}
		}
		return linalg.Blocks(out.m, grid)
	})
	return op, out
}
