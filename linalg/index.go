package linalg

func check(idx []int, n int) error {
	for _, k := range idx {
		if k < 0 || k >= n {
			return &IndexError{Index: k, Len: n}
		}
	}
	return nil
}

// Extract sets dst to the submatrix of src selected by the given row and
// column indices.
func Extract(dst, src *Matrix, rows, cols []int) error {
	if err := check(rows, src.Rows); err != nil {
		return err
	}
	if err := check(cols, src.Cols); err != nil {
		return err
	}
	out := New(len(rows), len(cols))
	for i, r := range rows {
		for j, c := range cols {
			out.Data[i*len(cols)+j] = src.At(r, c)
		}
	}
	*dst = *out
	return nil
}

// ExtractElements sets dst to the row vector of elements of src at the given
// row-major linear indices.
func ExtractElements(dst, src *Matrix, idx []int) error {
	if err := check(idx, src.Len()); err != nil {
		return err
	}
	out := New(1, len(idx))
	for i, k := range idx {
		out.Data[i] = src.Data[k]
	}
	*dst = *out
	return nil
}

// Insert writes src into the rows and columns of dst selected by the given
// indices. src must have exactly len(rows) rows and len(cols) columns.
func Insert(dst, src *Matrix, rows, cols []int) error {
	if src.Rows != len(rows) || src.Cols != len(cols) {
		return &ShapeError{Op: "insert", A: shapeOf(src), B: [2]int{len(rows), len(cols)}}
	}
	if err := check(rows, dst.Rows); err != nil {
		return err
	}
	if err := check(cols, dst.Cols); err != nil {
		return err
	}
	// Copy first in case src and dst share storage.
	s := src.Clone()
	for i, r := range rows {
		for j, c := range cols {
			dst.Set(r, c, s.At(i, j))
		}
	}
	return nil
}

// InsertElements writes the elements of the vector src into dst at the given
// row-major linear indices.
func InsertElements(dst, src *Matrix, idx []int) error {
	if !src.IsVector() || src.Len() != len(idx) {
		return &ShapeError{Op: "insert", A: shapeOf(src), B: [2]int{1, len(idx)}}
	}
	if err := check(idx, dst.Len()); err != nil {
		return err
	}
	s := src.Clone()
	for i, k := range idx {
		dst.Data[k] = s.Data[i]
	}
	return nil
}

// FillAt sets the elements of dst selected by rows and cols to v.
func FillAt(dst *Matrix, rows, cols []int, v float64) error {
	if err := check(rows, dst.Rows); err != nil {
		return err
	}
	if err := check(cols, dst.Cols); err != nil {
		return err
	}
	for _, r := range rows {
		for _, c := range cols {
			dst.Set(r, c, v)
		}
	}
	return nil
}

// FillElements sets the elements of dst at the given linear indices to v.
func FillElements(dst *Matrix, idx []int, v float64) error {
	if err := check(idx, dst.Len()); err != nil {
		return err
	}
	for _, k := range idx {
		dst.Data[k] = v
	}
	return nil
}
