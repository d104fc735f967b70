package linalg

import "math/rand/v2"

// Identity sets dst to the rows x cols matrix with ones on its diagonal.
func Identity(dst *Matrix, rows, cols int) error {
	if rows < 0 || cols < 0 {
		return &ShapeError{Op: "eye", A: [2]int{rows, cols}}
	}
	dst.Reshape(rows, cols)
	for i := range dst.Data {
		dst.Data[i] = 0
	}
	for i := 0; i < min(rows, cols); i++ {
		dst.Set(i, i, 1)
	}
	return nil
}

// Fill sets dst to a rows x cols matrix with every element equal to v.
func Fill(dst *Matrix, rows, cols int, v float64) error {
	if rows < 0 || cols < 0 {
		return &ShapeError{Op: "fill", A: [2]int{rows, cols}}
	}
	dst.Reshape(rows, cols)
	for i := range dst.Data {
		dst.Data[i] = v
	}
	return nil
}

// Uniform sets dst to a rows x cols matrix of values drawn uniformly from
// [0, 1).
func Uniform(dst *Matrix, rows, cols int, src *rand.Rand) error {
	if err := Fill(dst, rows, cols, 0); err != nil {
		return err
	}
	for i := range dst.Data {
		dst.Data[i] = src.Float64()
	}
	return nil
}

// Normal sets dst to a rows x cols matrix of standard normal values.
func Normal(dst *Matrix, rows, cols int, src *rand.Rand) error {
	if err := Fill(dst, rows, cols, 0); err != nil {
		return err
	}
	for i := range dst.Data {
		dst.Data[i] = src.NormFloat64()
	}
	return nil
}

// Diag converts between vectors and diagonals. If a is a vector, dst becomes
// the square matrix with a on its diagonal. Otherwise, dst becomes the column
// vector of the diagonal of a.
func Diag(dst, a *Matrix) error {
	if a.IsVector() {
		n := a.Len()
		out := New(n, n)
		if err := SetDiag(out, a); err != nil {
			return err
		}
		*dst = *out
		return nil
	}
	n := min(a.Rows, a.Cols)
	out := New(n, 1)
	for i := 0; i < n; i++ {
		out.Data[i] = a.At(i, i)
	}
	*dst = *out
	return nil
}

// SetDiag sets the diagonal of dst to the elements of the vector v.
func SetDiag(dst, v *Matrix) error {
	if !v.IsVector() || v.Len() != min(dst.Rows, dst.Cols) {
		return mismatch("setDiag", dst, v)
	}
	for i, x := range v.Data {
		dst.Set(i, i, x)
	}
	return nil
}

// Blocks assembles dst from a grid of blocks. Every block in a row of the grid
// must have the same number of rows, and every row of the grid must have the
// same total number of columns.
func Blocks(dst *Matrix, grid [][]*Matrix) error {
	rows, cols := 0, -1
	for _, line := range grid {
		if len(line) == 0 {
			continue
		}
		h, w := line[0].Rows, 0
		for _, b := range line {
			if b.Rows != h {
				return mismatch("matrix constructor", line[0], b)
			}
			w += b.Cols
		}
		if cols >= 0 && w != cols {
			return &ShapeError{Op: "matrix constructor", A: [2]int{rows, cols}, B: [2]int{h, w}, Hint: "rows have different total widths"}
		}
		cols = w
		rows += h
	}
	if cols < 0 {
		cols = 0
	}
	out := New(rows, cols)
	r := 0
	for _, line := range grid {
		if len(line) == 0 {
			continue
		}
		c := 0
		for _, b := range line {
			for i := 0; i < b.Rows; i++ {
				copy(out.Data[(r+i)*cols+c:(r+i)*cols+c+b.Cols], b.Data[i*b.Cols:(i+1)*b.Cols])
			}
			c += b.Cols
		}
		r += line[0].Rows
	}
	*dst = *out
	return nil
}
