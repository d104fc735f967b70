package linalg

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// prec is the mantissa precision for scalar transcendental functions. The
// result is rounded once to float64.
const prec = 64

// expLimit bounds the arguments for which exp is computed in extended
// precision. Beyond it the float64 result is 0 or +Inf anyway.
const expLimit = 709

func finite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}

func bf(x float64) *big.Float {
	return new(big.Float).SetPrec(prec).SetFloat64(x)
}

// Pow returns x^y. A negative base with a non-integer exponent is a domain
// error.
func Pow(x, y float64) (float64, error) {
	if x < 0 && finite(y) && y != math.Trunc(y) {
		return 0, &DomainError{X: x, Func: "pow"}
	}
	if x <= 0 || !finite(x) || !finite(y) || math.Abs(y*math.Log(x)) > expLimit {
		return math.Pow(x, y), nil
	}
	r, _ := bigfloat.Pow(new(big.Float).SetPrec(prec), bf(x), bf(y)).Float64()
	return r, nil
}

// Exp returns e^x.
func Exp(x float64) (float64, error) {
	if !finite(x) || math.Abs(x) > expLimit {
		return math.Exp(x), nil
	}
	r, _ := bigfloat.Exp(new(big.Float).SetPrec(prec), bf(x)).Float64()
	return r, nil
}

// Log returns the natural logarithm of x. Negative arguments are a domain
// error.
func Log(x float64) (float64, error) {
	switch {
	case x < 0 || math.IsNaN(x):
		return 0, &DomainError{X: x, Func: "log"}
	case x == 0 || math.IsInf(x, 1):
		return math.Log(x), nil
	}
	r, _ := bigfloat.Log(new(big.Float).SetPrec(prec), bf(x)).Float64()
	return r, nil
}

// Sqrt returns the square root of x. Negative arguments are a domain error.
func Sqrt(x float64) (float64, error) {
	if x < 0 {
		return 0, &DomainError{X: x, Func: "sqrt"}
	}
	return math.Sqrt(x), nil
}

// ExpElem sets dst to the element-wise exponential of a.
func ExpElem(dst, a *Matrix) error {
	return Apply(dst, a, Exp)
}

// LogElem sets dst to the element-wise natural logarithm of a.
func LogElem(dst, a *Matrix) error {
	return Apply(dst, a, Log)
}
