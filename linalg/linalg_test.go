package linalg_test

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/equation/linalg"
)

func m(rows, cols int, data ...float64) *linalg.Matrix {
	return linalg.NewFrom(rows, cols, data...)
}

func approx(t *testing.T, want, got *linalg.Matrix) {
	t.Helper()
	require.Equal(t, want.Rows, got.Rows, "rows")
	require.Equal(t, want.Cols, got.Cols, "cols")
	assert.InDeltaSlice(t, want.Data, got.Data, 1e-9)
}

func TestElementwise(t *testing.T) {
	a := m(2, 2, 1, 2, 3, 4)
	b := m(2, 2, 5, 6, 7, 8)
	cases := []struct {
		name string
		f    func(dst, a, b *linalg.Matrix) error
		want *linalg.Matrix
	}{
		{"add", linalg.Add, m(2, 2, 6, 8, 10, 12)},
		{"sub", linalg.Sub, m(2, 2, -4, -4, -4, -4)},
		{"mulelem", linalg.MulElem, m(2, 2, 5, 12, 21, 32)},
		{"divelem", linalg.DivElem, m(2, 2, 1.0/5, 2.0/6, 3.0/7, 4.0/8)},
		{"mul", linalg.Mul, m(2, 2, 19, 22, 43, 50)},
		{"powelem", linalg.PowElem, m(2, 2, 1, 64, 2187, 65536)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var dst linalg.Matrix
			require.NoError(t, c.f(&dst, a, b))
			approx(t, c.want, &dst)
		})
	}
}

func TestShapeErrors(t *testing.T) {
	a := m(2, 2, 1, 2, 3, 4)
	b := m(1, 3, 1, 2, 3)
	one := m(1, 1, 5)
	var dst linalg.Matrix
	for _, f := range []func(dst, a, b *linalg.Matrix) error{linalg.Add, linalg.Sub, linalg.MulElem, linalg.Mul} {
		err := f(&dst, a, b)
		assert.ErrorIs(t, err, linalg.ErrShape)
	}
	err := linalg.Add(&dst, a, one)
	var se *linalg.ShapeError
	require.ErrorAs(t, err, &se)
	assert.NotEmpty(t, se.Hint)
	assert.Equal(t, 0, dst.Len(), "dst must be untouched")
}

func TestMulAliased(t *testing.T) {
	a := m(2, 2, 1, 2, 3, 4)
	require.NoError(t, linalg.Mul(a, a, a))
	approx(t, m(2, 2, 7, 10, 15, 22), a)
}

func TestTranspose(t *testing.T) {
	var dst linalg.Matrix
	require.NoError(t, linalg.Transpose(&dst, m(2, 3, 1, 2, 3, 4, 5, 6)))
	approx(t, m(3, 2, 1, 4, 2, 5, 3, 6), &dst)
}

func TestInverse(t *testing.T) {
	var dst linalg.Matrix
	require.NoError(t, linalg.Inverse(&dst, m(2, 2, 4, 7, 2, 6)))
	approx(t, m(2, 2, 0.6, -0.7, -0.2, 0.4), &dst)

	err := linalg.Inverse(&dst, m(2, 2, 1, 2, 2, 4))
	assert.ErrorIs(t, err, linalg.ErrSingular)
	err = linalg.Inverse(&dst, m(1, 2, 1, 2))
	assert.ErrorIs(t, err, linalg.ErrShape)
}

func TestPseudoInverse(t *testing.T) {
	a := m(3, 2, 1, 2, 3, 4, 5, 6)
	var p, prod linalg.Matrix
	require.NoError(t, linalg.PseudoInverse(&p, a))
	require.Equal(t, 2, p.Rows)
	require.Equal(t, 3, p.Cols)
	// pinv(a)*a is the identity for a full column rank a.
	require.NoError(t, linalg.Mul(&prod, &p, a))
	approx(t, m(2, 2, 1, 0, 0, 1), &prod)
}

func TestSolve(t *testing.T) {
	a := m(2, 2, 3, 1, 1, 2)
	b := m(2, 1, 9, 8)
	var x linalg.Matrix
	require.NoError(t, linalg.Solve(&x, a, b))
	approx(t, m(2, 1, 2, 3), &x)
	assert.ErrorIs(t, linalg.Solve(&x, a, m(3, 1, 1, 2, 3)), linalg.ErrShape)
}

func TestScalars(t *testing.T) {
	a := m(2, 2, 1, 2, 3, 4)
	d, err := linalg.Det(a)
	require.NoError(t, err)
	assert.InDelta(t, -2, d, 1e-12)
	assert.Equal(t, 5.0, linalg.Trace(a))
	assert.Equal(t, 10.0, linalg.Sum(a))
	assert.InDelta(t, math.Sqrt(30), linalg.NormF(a), 1e-12)
	n, err := linalg.NormP(m(1, 3, 3, 0, -4), 2)
	require.NoError(t, err)
	assert.InDelta(t, 5, n, 1e-12)
	n, err = linalg.NormP(a, 1)
	require.NoError(t, err)
	assert.InDelta(t, 6, n, 1e-12)
	_, err = linalg.NormP(a, 3)
	assert.ErrorIs(t, err, linalg.ErrDomain)
	x, err := linalg.Dot(m(1, 3, 1, 2, 3), m(3, 1, 4, 5, 6))
	require.NoError(t, err)
	assert.Equal(t, 32.0, x)
	hi, err := linalg.Max(a)
	require.NoError(t, err)
	assert.Equal(t, 4.0, hi)
	lo, err := linalg.Min(a)
	require.NoError(t, err)
	assert.Equal(t, 1.0, lo)
}

func TestReduceDir(t *testing.T) {
	a := m(2, 3, 1, 5, 3, 4, 2, 6)
	var dst linalg.Matrix
	require.NoError(t, linalg.SumDir(&dst, a, linalg.Cols))
	approx(t, m(1, 3, 5, 7, 9), &dst)
	require.NoError(t, linalg.SumDir(&dst, a, linalg.Rows))
	approx(t, m(2, 1, 9, 12), &dst)
	require.NoError(t, linalg.MaxDir(&dst, a, linalg.Cols))
	approx(t, m(1, 3, 4, 5, 6), &dst)
	require.NoError(t, linalg.MinDir(&dst, a, linalg.Rows))
	approx(t, m(2, 1, 1, 2), &dst)
}

func TestRREF(t *testing.T) {
	var dst linalg.Matrix
	require.NoError(t, linalg.RREF(&dst, m(2, 3, 1, 2, 3, 4, 5, 6)))
	approx(t, m(2, 3, 1, 0, -1, 0, 1, 2), &dst)
	require.NoError(t, linalg.RREF(&dst, m(2, 2, 1, 2, 2, 4)))
	approx(t, m(2, 2, 1, 2, 0, 0), &dst)
}

func TestBuild(t *testing.T) {
	var dst linalg.Matrix
	require.NoError(t, linalg.Identity(&dst, 2, 3))
	approx(t, m(2, 3, 1, 0, 0, 0, 1, 0), &dst)
	require.NoError(t, linalg.Fill(&dst, 1, 2, 7))
	approx(t, m(1, 2, 7, 7), &dst)
	require.NoError(t, linalg.Diag(&dst, m(1, 2, 3, 4)))
	approx(t, m(2, 2, 3, 0, 0, 4), &dst)
	require.NoError(t, linalg.Diag(&dst, m(2, 2, 1, 2, 3, 4)))
	approx(t, m(2, 1, 1, 4), &dst)
	require.NoError(t, linalg.Kron(&dst, m(1, 2, 1, 2), m(2, 1, 1, 10)))
	approx(t, m(2, 2, 1, 2, 10, 20), &dst)

	src := rand.New(rand.NewPCG(1, 2))
	require.NoError(t, linalg.Uniform(&dst, 3, 3, src))
	for _, v := range dst.Data {
		assert.True(t, v >= 0 && v < 1, "uniform value %v out of range", v)
	}
}

func TestBlocks(t *testing.T) {
	var dst linalg.Matrix
	grid := [][]*linalg.Matrix{
		{m(2, 1, 1, 4), m(2, 2, 2, 3, 5, 6)},
		{m(1, 3, 7, 8, 9)},
	}
	require.NoError(t, linalg.Blocks(&dst, grid))
	approx(t, m(3, 3, 1, 2, 3, 4, 5, 6, 7, 8, 9), &dst)

	bad := [][]*linalg.Matrix{{m(1, 2, 1, 2)}, {m(1, 3, 1, 2, 3)}}
	assert.ErrorIs(t, linalg.Blocks(&dst, bad), linalg.ErrShape)
	bad = [][]*linalg.Matrix{{m(1, 1, 1), m(2, 1, 1, 2)}}
	assert.ErrorIs(t, linalg.Blocks(&dst, bad), linalg.ErrShape)
}

func TestIndexing(t *testing.T) {
	a := m(3, 3, 0, 1, 2, 3, 4, 5, 6, 7, 8)
	var dst linalg.Matrix
	require.NoError(t, linalg.Extract(&dst, a, []int{0, 2}, []int{1}))
	approx(t, m(2, 1, 1, 7), &dst)
	require.NoError(t, linalg.ExtractElements(&dst, a, []int{8, 0}))
	approx(t, m(1, 2, 8, 0), &dst)
	err := linalg.Extract(&dst, a, []int{3}, []int{0})
	assert.ErrorIs(t, err, linalg.ErrIndex)

	b := linalg.New(2, 3)
	require.NoError(t, linalg.Insert(b, m(1, 2, 5, 6), []int{1}, []int{0, 2}))
	approx(t, m(2, 3, 0, 0, 0, 5, 0, 6), b)
	require.NoError(t, linalg.InsertElements(b, m(2, 1, 1, 2), []int{0, 1}))
	approx(t, m(2, 3, 1, 2, 0, 5, 0, 6), b)
	require.NoError(t, linalg.FillAt(b, []int{0, 1}, []int{2}, 9))
	approx(t, m(2, 3, 1, 2, 9, 5, 0, 9), b)
	assert.ErrorIs(t, linalg.Insert(b, m(1, 1, 1), []int{0, 1}, []int{0}), linalg.ErrShape)
}

func TestTranscendental(t *testing.T) {
	p, err := linalg.Pow(2, 10)
	require.NoError(t, err)
	assert.InDelta(t, 1024, p, 1e-9)
	p, err = linalg.Pow(-2, 3)
	require.NoError(t, err)
	assert.Equal(t, -8.0, p)
	_, err = linalg.Pow(-2, 0.5)
	assert.True(t, errors.Is(err, linalg.ErrDomain))
	e, err := linalg.Exp(1)
	require.NoError(t, err)
	assert.InDelta(t, math.E, e, 1e-14)
	l, err := linalg.Log(math.E)
	require.NoError(t, err)
	assert.InDelta(t, 1, l, 1e-14)
	_, err = linalg.Log(-1)
	assert.ErrorIs(t, err, linalg.ErrDomain)
}

func TestString(t *testing.T) {
	assert.Equal(t, "[1 2; 3.5 4]", m(2, 2, 1, 2, 3.5, 4).String())
	assert.Equal(t, "[]", new(linalg.Matrix).String())
}
