package linalg

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// scalarHint is attached to matrix-matrix errors where one side is 1x1, which
// almost always means the caller wanted a scalar.
const scalarHint = "a 1x1 matrix is not a scalar, index it with (0,0) to use it as one"

func oneByOne(a, b *Matrix) bool {
	x := a.Rows == 1 && a.Cols == 1
	y := b.Rows == 1 && b.Cols == 1
	return x != y
}

// binary applies a gonum element-wise kernel to two same-shape matrices.
func binary(op string, dst, a, b *Matrix, f func(d *mat.Dense, x, y mat.Matrix)) (err error) {
	if a.Rows != b.Rows || a.Cols != b.Cols {
		e := &ShapeError{Op: op, A: shapeOf(a), B: shapeOf(b)}
		if oneByOne(a, b) {
			e.Hint = scalarHint
		}
		return e
	}
	if a.Len() == 0 {
		dst.Reshape(a.Rows, a.Cols)
		return nil
	}
	defer catch(op, &err)
	var d mat.Dense
	f(&d, dense(a), dense(b))
	store(dst, &d)
	return nil
}

// Add sets dst = a + b.
func Add(dst, a, b *Matrix) error {
	return binary("add", dst, a, b, (*mat.Dense).Add)
}

// Sub sets dst = a - b.
func Sub(dst, a, b *Matrix) error {
	return binary("subtract", dst, a, b, (*mat.Dense).Sub)
}

// MulElem sets dst to the element-wise product of a and b.
func MulElem(dst, a, b *Matrix) error {
	return binary("elementMult", dst, a, b, (*mat.Dense).MulElem)
}

// DivElem sets dst to the element-wise quotient of a and b.
func DivElem(dst, a, b *Matrix) error {
	return binary("elementDivide", dst, a, b, (*mat.Dense).DivElem)
}

// PowElem sets each element of dst to a[i]^b[i].
func PowElem(dst, a, b *Matrix) error {
	if a.Rows != b.Rows || a.Cols != b.Cols {
		return mismatch("elementPow", a, b)
	}
	out := make([]float64, a.Len())
	for i := range out {
		v, err := Pow(a.Data[i], b.Data[i])
		if err != nil {
			return err
		}
		out[i] = v
	}
	dst.Rows, dst.Cols, dst.Data = a.Rows, a.Cols, out
	return nil
}

// Mul sets dst to the matrix product a*b.
func Mul(dst, a, b *Matrix) (err error) {
	if a.Cols != b.Rows {
		e := &ShapeError{Op: "multiply", A: shapeOf(a), B: shapeOf(b)}
		if oneByOne(a, b) {
			e.Hint = scalarHint
		}
		return e
	}
	if a.Len() == 0 || b.Len() == 0 {
		dst.Reshape(a.Rows, b.Cols)
		for i := range dst.Data {
			dst.Data[i] = 0
		}
		return nil
	}
	defer catch("multiply", &err)
	var d mat.Dense
	d.Mul(dense(a), dense(b))
	store(dst, &d)
	return nil
}

// Transpose sets dst to the transpose of a.
func Transpose(dst, a *Matrix) error {
	out := make([]float64, a.Len())
	for i := 0; i < a.Rows; i++ {
		for j := 0; j < a.Cols; j++ {
			out[j*a.Rows+i] = a.Data[i*a.Cols+j]
		}
	}
	dst.Rows, dst.Cols, dst.Data = a.Cols, a.Rows, out
	return nil
}

// Apply sets each element of dst to f of the corresponding element of a. If
// f fails on any element, dst is unchanged.
func Apply(dst, a *Matrix, f func(float64) (float64, error)) error {
	out := make([]float64, a.Len())
	for i, v := range a.Data {
		r, err := f(v)
		if err != nil {
			return err
		}
		out[i] = r
	}
	dst.Rows, dst.Cols, dst.Data = a.Rows, a.Cols, out
	return nil
}

func pure(f func(float64) float64) func(float64) (float64, error) {
	return func(x float64) (float64, error) { return f(x), nil }
}

// Scale sets dst = s*a.
func Scale(dst, a *Matrix, s float64) error {
	return Apply(dst, a, pure(func(x float64) float64 { return s * x }))
}

// AddScalar sets dst = a + s element-wise.
func AddScalar(dst, a *Matrix, s float64) error {
	return Apply(dst, a, pure(func(x float64) float64 { return x + s }))
}

// SubScalar sets dst = a - s element-wise.
func SubScalar(dst, a *Matrix, s float64) error {
	return Apply(dst, a, pure(func(x float64) float64 { return x - s }))
}

// ScalarSub sets dst = s - a element-wise.
func ScalarSub(dst *Matrix, s float64, a *Matrix) error {
	return Apply(dst, a, pure(func(x float64) float64 { return s - x }))
}

// DivScalar sets dst = a / s element-wise.
func DivScalar(dst, a *Matrix, s float64) error {
	return Apply(dst, a, pure(func(x float64) float64 { return x / s }))
}

// ScalarDiv sets dst = s / a element-wise.
func ScalarDiv(dst *Matrix, s float64, a *Matrix) error {
	return Apply(dst, a, pure(func(x float64) float64 { return s / x }))
}

// PowScalar sets dst = a .^ s.
func PowScalar(dst, a *Matrix, s float64) error {
	return Apply(dst, a, func(x float64) (float64, error) { return Pow(x, s) })
}

// ScalarPow sets dst = s .^ a.
func ScalarPow(dst *Matrix, s float64, a *Matrix) error {
	return Apply(dst, a, func(x float64) (float64, error) { return Pow(s, x) })
}

// Neg sets dst = -a.
func Neg(dst, a *Matrix) error {
	return Apply(dst, a, pure(func(x float64) float64 { return -x }))
}

// Abs sets dst to the element-wise absolute value of a.
func Abs(dst, a *Matrix) error {
	return Apply(dst, a, pure(math.Abs))
}
