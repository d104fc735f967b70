package equation_test

import (
	"fmt"

	"github.com/zephyrtronium/equation"
	"github.com/zephyrtronium/equation/linalg"
)

// nargin counts its arguments.
type nargin struct{}

func (nargin) CanCall(n int) bool {
	return n > 0
}

func (nargin) Create(args []*equation.Variable) (*equation.Operation, *equation.Variable, error) {
	out := equation.NewTemp(equation.KindInteger)
	op := equation.NewOperation("nargin", func() error {
		out.SetInt(len(args))
		return nil
	})
	return op, out, nil
}

// double scales a matrix by two.
type double struct{}

func (double) CanCall(n int) bool {
	return n == 1
}

func (double) Create(args []*equation.Variable) (*equation.Operation, *equation.Variable, error) {
	a := args[0]
	if a.Kind() != equation.KindMatrix {
		return nil, nil, &equation.TypeError{Op: "double", Kinds: []equation.Kind{a.Kind()}}
	}
	out := equation.NewTemp(equation.KindMatrix)
	op := equation.NewOperation("double-m", func() error {
		return linalg.Scale(out.Matrix(), a.Matrix(), 2)
	})
	return op, out, nil
}

func ExampleFunc() {
	e := equation.New(equation.SetFunc("nargin", nargin{}), equation.SetFunc("double", double{}))
	e.Alias("a", linalg.NewFrom(1, 2, 1, 2))

	for _, src := range []string{"n = nargin(1)", "n = nargin(a, 2, 3)", "b = double(a')"} {
		seq, err := e.Compile(src)
		if err != nil {
			fmt.Println(err)
			continue
		}
		if err := seq.Perform(); err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Println(seq.Ops(), e.Lookup(seq.Target()))
	}
	_, err := e.Compile("n = nargin()")
	fmt.Println(err)
	_, err = e.Compile("n = double(2)")
	fmt.Println(err)

	// Output:
	// [nargin copy-ii] 1
	// [nargin copy-ii] 3
	// [transpose-m double-m copy-mm] [2; 4]
	// 5: cannot call nargin with 0 arguments
	// 5: no overload of "double" for (integer)
}
