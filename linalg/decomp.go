package linalg

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Inverse sets dst to the inverse of the square matrix a.
func Inverse(dst, a *Matrix) (err error) {
	if a.Rows != a.Cols || a.Len() == 0 {
		return mismatch1("inv", a)
	}
	defer catch("inv", &err)
	var d mat.Dense
	if err := d.Inverse(dense(a)); err != nil {
		return singular("inv", err)
	}
	store(dst, &d)
	return nil
}

// PseudoInverse sets dst to the Moore-Penrose pseudo-inverse of a.
func PseudoInverse(dst, a *Matrix) (err error) {
	if a.Len() == 0 {
		return mismatch1("pinv", a)
	}
	defer catch("pinv", &err)
	var svd mat.SVD
	if !svd.Factorize(dense(a), mat.SVDThin) {
		return singular("pinv", nil)
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	s := svd.Values(nil)
	tol := float64(max(a.Rows, a.Cols)) * s[0] * eps
	r, c := v.Dims()
	for j := 0; j < c; j++ {
		k := 0.0
		if s[j] > tol {
			k = 1 / s[j]
		}
		for i := 0; i < r; i++ {
			v.Set(i, j, v.At(i, j)*k)
		}
	}
	var p mat.Dense
	p.Mul(&v, u.T())
	store(dst, &p)
	return nil
}

// eps is the machine epsilon for float64.
const eps = 0x1p-52

// Solve sets x to the solution of a*x = b. If a is not square, x is the least
// squares solution.
func Solve(x, a, b *Matrix) (err error) {
	if a.Rows != b.Rows || a.Len() == 0 || b.Len() == 0 {
		return mismatch("solve", a, b)
	}
	defer catch("solve", &err)
	var d mat.Dense
	if err := d.Solve(dense(a), dense(b)); err != nil {
		return singular("solve", err)
	}
	store(x, &d)
	return nil
}

// Det returns the determinant of the square matrix a.
func Det(a *Matrix) (r float64, err error) {
	if a.Rows != a.Cols || a.Len() == 0 {
		return 0, mismatch1("det", a)
	}
	defer catch("det", &err)
	return mat.Det(dense(a)), nil
}

// Trace returns the sum of the diagonal elements of a.
func Trace(a *Matrix) float64 {
	var s float64
	for i := 0; i < min(a.Rows, a.Cols); i++ {
		s += a.At(i, i)
	}
	return s
}

// NormF returns the Frobenius norm of a.
func NormF(a *Matrix) float64 {
	if a.Len() == 0 {
		return 0
	}
	return mat.Norm(dense(a), 2)
}

// NormP returns the p-norm of a. For vectors this is the usual vector p-norm
// for any p >= 1, including +Inf. For other matrices p must be 1, 2, or +Inf,
// giving the induced norms.
func NormP(a *Matrix, p float64) (r float64, err error) {
	if a.Len() == 0 {
		return 0, nil
	}
	if p < 1 || math.IsNaN(p) {
		return 0, &DomainError{X: p, Func: "normP"}
	}
	defer catch("normP", &err)
	if a.IsVector() {
		if math.IsInf(p, 1) {
			for _, v := range a.Data {
				r = math.Max(r, math.Abs(v))
			}
			return r, nil
		}
		for _, v := range a.Data {
			r += math.Pow(math.Abs(v), p)
		}
		return math.Pow(r, 1/p), nil
	}
	switch {
	case p == 1, math.IsInf(p, 1):
		return mat.Norm(dense(a), p), nil
	case p == 2:
		var svd mat.SVD
		if !svd.Factorize(dense(a), mat.SVDNone) {
			return 0, singular("normP", nil)
		}
		return svd.Values(nil)[0], nil
	}
	return 0, &DomainError{X: p, Func: "normP"}
}

// RREF sets dst to the reduced row echelon form of a.
func RREF(dst, a *Matrix) error {
	w := a.Clone()
	var big float64
	for _, v := range w.Data {
		big = math.Max(big, math.Abs(v))
	}
	tol := eps * float64(max(w.Rows, w.Cols)) * big
	row := 0
	for col := 0; col < w.Cols && row < w.Rows; col++ {
		// Partial pivot on the largest magnitude in this column.
		p := row
		for i := row + 1; i < w.Rows; i++ {
			if math.Abs(w.At(i, col)) > math.Abs(w.At(p, col)) {
				p = i
			}
		}
		if math.Abs(w.At(p, col)) <= tol {
			for i := row; i < w.Rows; i++ {
				w.Set(i, col, 0)
			}
			continue
		}
		if p != row {
			for j := 0; j < w.Cols; j++ {
				x, y := w.At(p, j), w.At(row, j)
				w.Set(p, j, y)
				w.Set(row, j, x)
			}
		}
		k := w.At(row, col)
		for j := col; j < w.Cols; j++ {
			w.Set(row, j, w.At(row, j)/k)
		}
		for i := 0; i < w.Rows; i++ {
			if i == row {
				continue
			}
			f := w.At(i, col)
			if f == 0 {
				continue
			}
			for j := col; j < w.Cols; j++ {
				w.Set(i, j, w.At(i, j)-f*w.At(row, j))
			}
		}
		row++
	}
	dst.Rows, dst.Cols, dst.Data = w.Rows, w.Cols, w.Data
	return nil
}

// Kron sets dst to the Kronecker product of a and b.
func Kron(dst, a, b *Matrix) (err error) {
	if a.Len() == 0 || b.Len() == 0 {
		dst.Reshape(a.Rows*b.Rows, a.Cols*b.Cols)
		return nil
	}
	defer catch("kron", &err)
	var d mat.Dense
	d.Kronecker(dense(a), dense(b))
	store(dst, &d)
	return nil
}

// Dot returns the inner product of two vectors with equal lengths.
func Dot(a, b *Matrix) (float64, error) {
	if !a.IsVector() || !b.IsVector() || a.Len() != b.Len() {
		return 0, mismatch("dot", a, b)
	}
	var s float64
	for i, v := range a.Data {
		s += v * b.Data[i]
	}
	return s, nil
}
