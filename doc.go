// Package equation compiles statements of a small matrix language into
// sequences of operations that can be performed repeatedly.
//
// Statements look like the math in a linear algebra textbook. "c = a*b'"
// multiplies a by the transpose of b. "x = b/A" solves A*x = b. Matrices are
// built with brackets, as in "[1 2; 3 4]" or "[a b; b a]", and submatrices are
// read and written with parentheses and 0-based ranges: "m(1:2, :)" is rows 1
// and 2 of m, "m(0 2 4)" selects three elements in row-major order.
//
// Compiling a statement resolves every name and overload once. Performing the
// returned Sequence reads the current values of the variables it refers to,
// so a statement can be compiled once and run for many inputs:
//
//	e := equation.New()
//	e.Alias("x", linalg.New(3, 1))
//	e.Alias("p", linalg.NewFrom(3, 1, 1, 2, 3))
//	step, _ := e.Compile("x = x + p*0.5")
//	for i := 0; i < 10; i++ {
//		step.Perform()
//	}
//
// Macros are token templates: "macro sq(v) = v*v" makes "sq(a+1)" expand to
// "a+1*a+1". Wrap arguments in parentheses when that matters.
package equation
