package linalg

import "math"

// Sum returns the sum of all elements of a.
func Sum(a *Matrix) float64 {
	var s float64
	for _, v := range a.Data {
		s += v
	}
	return s
}

// Dir selects the direction of a reduction.
type Dir int

const (
	// Cols reduces each column to one value, producing a row vector.
	Cols Dir = iota
	// Rows reduces each row to one value, producing a column vector.
	Rows
)

// reduce folds each row or column of a with f starting from the first
// element of that row or column.
func reduce(dst, a *Matrix, d Dir, f func(acc, x float64) float64) error {
	if a.Len() == 0 {
		return mismatch1("reduce", a)
	}
	var out *Matrix
	switch d {
	case Cols:
		out = New(1, a.Cols)
		for j := 0; j < a.Cols; j++ {
			acc := a.At(0, j)
			for i := 1; i < a.Rows; i++ {
				acc = f(acc, a.At(i, j))
			}
			out.Data[j] = acc
		}
	case Rows:
		out = New(a.Rows, 1)
		for i := 0; i < a.Rows; i++ {
			acc := a.At(i, 0)
			for j := 1; j < a.Cols; j++ {
				acc = f(acc, a.At(i, j))
			}
			out.Data[i] = acc
		}
	default:
		return &DomainError{X: float64(d), Func: "reduce direction"}
	}
	*dst = *out
	return nil
}

func plus(acc, x float64) float64 { return acc + x }

// SumDir sums each column or each row of a.
func SumDir(dst, a *Matrix, d Dir) error {
	return reduce(dst, a, d, plus)
}

// Max returns the largest element of a.
func Max(a *Matrix) (float64, error) {
	if a.Len() == 0 {
		return 0, mismatch1("max", a)
	}
	r := a.Data[0]
	for _, v := range a.Data[1:] {
		r = math.Max(r, v)
	}
	return r, nil
}

// Min returns the smallest element of a.
func Min(a *Matrix) (float64, error) {
	if a.Len() == 0 {
		return 0, mismatch1("min", a)
	}
	r := a.Data[0]
	for _, v := range a.Data[1:] {
		r = math.Min(r, v)
	}
	return r, nil
}

// MaxDir finds the largest element of each column or each row of a.
func MaxDir(dst, a *Matrix, d Dir) error {
	return reduce(dst, a, d, math.Max)
}

// MinDir finds the smallest element of each column or each row of a.
func MinDir(dst, a *Matrix, d Dir) error {
	return reduce(dst, a, d, math.Min)
}
