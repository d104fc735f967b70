// Package linalg provides the dense matrix type and numeric kernels used by
// package equation. Each kernel writes its result into a destination matrix,
// reshaping it as needed, and reports failure through its error result rather
// than through NaN values or panics.
//
// Most decompositions are delegated to gonum.
package linalg

import (
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a dense matrix of float64 stored in row-major order. The zero
// value is an empty 0x0 matrix.
type Matrix struct {
	Rows, Cols int
	// Data holds the elements row by row. len(Data) == Rows*Cols.
	Data []float64
}

// New creates a rows x cols matrix of zeros.
func New(rows, cols int) *Matrix {
	if rows < 0 || cols < 0 {
		panic("linalg: negative dimension")
	}
	return &Matrix{Rows: rows, Cols: cols, Data: make([]float64, rows*cols)}
}

// NewFrom creates a rows x cols matrix holding the given elements in row-major
// order. Panics if len(data) != rows*cols. The matrix uses data directly.
func NewFrom(rows, cols int, data ...float64) *Matrix {
	if rows < 0 || cols < 0 || len(data) != rows*cols {
		panic("linalg: data does not match dimensions")
	}
	return &Matrix{Rows: rows, Cols: cols, Data: data}
}

// Reshape changes the dimensions of m, reusing its buffer when the capacity
// allows. The contents after reshaping to a different size are unspecified.
func (m *Matrix) Reshape(rows, cols int) {
	if rows < 0 || cols < 0 {
		panic("linalg: negative dimension")
	}
	n := rows * cols
	if cap(m.Data) < n {
		m.Data = make([]float64, n)
	}
	m.Data = m.Data[:n]
	m.Rows, m.Cols = rows, cols
}

// Len returns the number of elements in m.
func (m *Matrix) Len() int {
	return m.Rows * m.Cols
}

// IsVector returns whether m has exactly one row or exactly one column.
func (m *Matrix) IsVector() bool {
	return m.Rows == 1 || m.Cols == 1
}

// At returns the element at row i and column j.
func (m *Matrix) At(i, j int) float64 {
	return m.Data[i*m.Cols+j]
}

// Set sets the element at row i and column j.
func (m *Matrix) Set(i, j int, v float64) {
	m.Data[i*m.Cols+j] = v
}

// CopyFrom reshapes m to the shape of src and copies its elements.
func (m *Matrix) CopyFrom(src *Matrix) {
	if m == src {
		return
	}
	m.Reshape(src.Rows, src.Cols)
	copy(m.Data, src.Data)
}

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	c := New(m.Rows, m.Cols)
	copy(c.Data, m.Data)
	return c
}

// String formats m like a bracketed matrix literal, e.g. "[1 2; 3 4]".
func (m *Matrix) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < m.Rows; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		for j := 0; j < m.Cols; j++ {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.FormatFloat(m.At(i, j), 'g', -1, 64))
		}
	}
	b.WriteByte(']')
	return b.String()
}

// dense views m as a gonum matrix sharing its storage. m must be non-empty.
func dense(m *Matrix) *mat.Dense {
	return mat.NewDense(m.Rows, m.Cols, m.Data)
}

// store copies a gonum result into dst.
func store(dst *Matrix, d *mat.Dense) {
	r, c := d.Dims()
	raw := d.RawMatrix()
	dst.Reshape(r, c)
	for i := 0; i < r; i++ {
		copy(dst.Data[i*c:(i+1)*c], raw.Data[i*raw.Stride:i*raw.Stride+c])
	}
}
