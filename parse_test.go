package equation

import (
	"errors"
	"reflect"
	"testing"

	"github.com/zephyrtronium/equation/linalg"
)

// testEquation creates an Equation with a few variables of each kind.
func testEquation() *Equation {
	e := New(Seed(1))
	e.Alias("a", linalg.NewFrom(2, 2, 1, 2, 3, 4))
	e.Alias("b", linalg.NewFrom(2, 2, 5, 6, 7, 8))
	e.Alias("v", linalg.NewFrom(3, 1, 1, 2, 3))
	e.Alias("i", 2)
	e.Alias("d", 2.5)
	e.Alias("s", Ints(0, 1))
	return e
}

func TestCompileOps(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		ops    []string
		target string
	}{
		{"mul", "c = a*b", []string{"multiply-mm", "copy-mm"}, "c"},
		{"call", "c = inv(a*b)", []string{"multiply-mm", "inv-m", "copy-mm"}, "c"},
		{"precedence", "c = a + b*a", []string{"multiply-mm", "add-mm", "copy-mm"}, "c"},
		{"left-assoc", "x = 1 - 2 - 3", []string{"subtract-ii", "subtract-ii", "copy-ii"}, "x"},
		{"parens", "c = (a + b)*a", []string{"add-mm", "multiply-mm", "copy-mm"}, "c"},
		{"power-first", "x = 2^2*3", []string{"pow-ii", "multiply-di", "copy-dd"}, "x"},
		{"transpose", "c = a'*b", []string{"transpose-m", "multiply-mm", "copy-mm"}, "c"},
		{"transpose-twice", "c = a''", []string{"transpose-m", "transpose-m", "copy-mm"}, "c"},
		{"neg", "c = -a", []string{"neg-m", "copy-mm"}, "c"},
		{"neg-neg", "x = --d", []string{"neg-d", "neg-d", "copy-dd"}, "x"},
		{"neg-after-op", "c = b * -a", []string{"neg-m", "multiply-mm", "copy-mm"}, "c"},
		{"neg-binds-tighter", "x = -d^2", []string{"neg-d", "pow-di", "copy-dd"}, "x"},
		{"sub-transpose", "c = a' - b", []string{"transpose-m", "subtract-mm", "copy-mm"}, "c"},
		{"int", "x = i + 1", []string{"add-ii", "copy-ii"}, "x"},
		{"mixed-scalar", "x = d * i", []string{"multiply-di", "copy-dd"}, "x"},
		{"matrix-scalar", "c = 2*a", []string{"multiply-im", "copy-mm"}, "c"},
		{"elementwise", "c = a .* b ./ a .^ 2", []string{"elementPow-mi", "elementMult-mm", "elementDivide-mm", "copy-mm"}, "c"},
		{"rdivide", "c = a / b", []string{"divide-mm", "copy-mm"}, "c"},
		{"ldivide", `c = a \ b`, []string{"solve-mm", "copy-mm"}, "c"},
		{"constructor", "c = [a b]", []string{"matrixConstructor", "copy-mm"}, "c"},
		{"constructor-literal", "c = [1 2; 3 4]", []string{"matrixConstructor", "copy-mm"}, "c"},
		{"constructor-nested", "c = [[1 2] 3]", []string{"matrixConstructor", "matrixConstructor", "copy-mm"}, "c"},
		{"constructor-call", "c = [inv(a), b]", []string{"inv-m", "matrixConstructor", "copy-mm"}, "c"},
		{"extract", "c = a(1, :)", []string{"extract-miq", "copy-mm"}, "c"},
		{"extract-scalar", "x = a(0, 1)", []string{"extractScalar-mii", "copy-dd"}, "x"},
		{"extract-linear", "c = a(1:)", []string{"extract-mq", "copy-mm"}, "c"},
		{"extract-func", "c = extract(a, 0, 0:1)", []string{"extract-miq", "copy-mm"}, "c"},
		{"extract-expr", "x = a(i - 1, 0)", []string{"subtract-ii", "extractScalar-mii", "copy-dd"}, "x"},
		{"reduce", "c = sum(a, 0)", []string{"sum-mi", "copy-mm"}, "c"},
		{"det", "x = det(a)", []string{"det-m", "copy-dd"}, "x"},
		{"nested-call", "x = normF(inv(a) * 2)", []string{"inv-m", "multiply-mi", "normF-m", "copy-dd"}, "x"},
		{"two-args", "c = kron(a, b')", []string{"transpose-m", "kron-mm", "copy-mm"}, "c"},
		{"for", "r = 2:2:9", []string{"copy-qq"}, "r"},
		{"explicit", "r = 1 2 3 4", []string{"copy-qq"}, "r"},
		{"combined", "r = 0 2:3", []string{"copy-qq"}, "r"},
		{"assign-existing", "d = i", []string{"copy-id"}, "d"},
		{"assign-matrix-double", "d = a(0:0, 0)", []string{"extract-mqi", "copy-md"}, "d"},
		{"assign-sub", "a(0, 0) = 5", []string{"copyR-imii"}, "a"},
		{"assign-sub-linear", "a(1:) = 0", []string{"copyR-imq"}, "a"},
		{"assign-sub-matrix", "a(0, :) = [9 9]", []string{"matrixConstructor", "copyR-mmiq"}, "a"},
		{"expression", "rng(3)", []string{"rng-i"}, ""},
		{"expression-matrix", "a * b", []string{"multiply-mm"}, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := testEquation()
			seq, err := e.Compile(c.src)
			if err != nil {
				t.Fatalf("compiling %q: %v", c.src, err)
			}
			if got := seq.Ops(); !reflect.DeepEqual(got, c.ops) {
				t.Errorf("compiling %q: want ops %q, got %q", c.src, c.ops, got)
			}
			if seq.Target() != c.target {
				t.Errorf("compiling %q: want target %q, got %q", c.src, c.target, seq.Target())
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		// err is a pointer to a variable of the expected error type.
		err any
		col int
	}{
		{"empty", "", new(*EmptyExpressionError), 1},
		{"lex", "c = a $ b", new(*LexError), 7},
		{"unknown", "c = q", new(*NameError), 5},
		{"unknown-in-call", "c = inv(q)", new(*NameError), 9},
		{"reserved-target", "inv = a", new(*NameError), 1},
		{"macro-word", "c = macro", new(*NameError), 5},
		{"no-rhs", "c =", new(*EmptyExpressionError), 3},
		{"no-target", "= a", new(*SyntaxError), 1},
		{"bad-target", "1 = a", new(*SyntaxError), 1},
		{"two-assign", "c = a = b", new(*SyntaxError), 7},
		{"missing-operand", "c = a *", new(*SyntaxError), 7},
		{"leading-operand", "c = * a", new(*SyntaxError), 5},
		{"adjacent-ops", "c = a + + b", new(*SyntaxError), 9},
		{"two-values", "c = a b", new(*SyntaxError), 7},
		{"bare-func", "c = inv", new(*SyntaxError), 5},
		{"transpose-alone", "c = '", new(*SyntaxError), 5},
		{"unclosed-paren", "c = (a", new(*BracketError), 5},
		{"unopened-paren", "c = a)", new(*BracketError), 6},
		{"unclosed-bracket", "c = [a", new(*BracketError), 5},
		{"unopened-bracket", "c = a]", new(*BracketError), 6},
		{"empty-parens", "c = ()", new(*EmptyExpressionError), 6},
		{"empty-arg", "c = kron(a, )", new(*EmptyExpressionError), 11},
		{"leading-comma", "c = kron(, a)", new(*EmptyExpressionError), 10},
		{"arity", "c = inv(a, b)", new(*CallError), 5},
		{"no-args", "c = inv()", new(*CallError), 5},
		{"type-transpose", "c = i'", new(*TypeError), 6},
		{"type-func", "c = inv(s)", new(*TypeError), 5},
		{"type-operator", "c = a + s", new(*TypeError), 7},
		{"type-assign", "i = a", new(*TypeError), 3},
		{"submatrix-ranges", "c = a(0, 0, 0)", new(*SyntaxError), 5},
		{"submatrix-double", "c = a(d)", new(*TypeError), 5},
		{"open-in-constructor", "c = [1:]", new(*SyntaxError), 6},
		{"assign-sub-unknown", "q(0) = 1", new(*NameError), 1},
		{"assign-sub-kind", "i(0) = 1", new(*TypeError), 1},
		{"assign-sub-unclosed", "a(0 = 1", new(*SyntaxError), 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := testEquation()
			_, err := e.Compile(c.src)
			if err == nil {
				t.Fatalf("compiling %q: no error", c.src)
			}
			if !errors.As(err, c.err) {
				t.Fatalf("compiling %q: want %T, got %T (%v)", c.src, reflect.ValueOf(c.err).Elem().Interface(), err, err)
			}
			var p ParseError
			if !errors.As(err, &p) {
				t.Fatalf("compiling %q: %v is not a ParseError", c.src, err)
			}
			if p.Pos() != c.col {
				t.Errorf("compiling %q: want error at %d, got %d (%v)", c.src, c.col, p.Pos(), err)
			}
		})
	}
}

func TestCompileFailureCreatesNothing(t *testing.T) {
	e := testEquation()
	if _, err := e.Compile("c = a + q"); err == nil {
		t.Fatal("no error")
	}
	if e.Lookup("c") != nil {
		t.Error("failed compile created c")
	}
	if _, err := e.Compile("c = a"); err != nil {
		t.Fatal(err)
	}
	if v := e.Lookup("c"); v == nil || v.Kind() != KindMatrix {
		t.Errorf("want matrix c, got %v", v)
	}
}

func TestColons(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"1:4", "*equation.For 1:4"},
		{"1:2:4", "*equation.For 1:2:4"},
		{"3:", "*equation.Range 3:"},
		{"3:2:", "*equation.Range 3:2:"},
		{":", "*equation.Range :"},
		{"1 2 3", "*equation.Explicit 1 2 3"},
		{"1 2:3 4", "*equation.Combined 1 2:3 4"},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			e := New()
			l, err := tokenize(c.src)
			if err != nil {
				t.Fatal(err)
			}
			v, err := (&compiler{e: e, seq: new(Sequence)}).expr(l)
			if err != nil {
				t.Fatalf("compiling %q: %v", c.src, err)
			}
			if v.Kind() != KindSequence {
				t.Fatalf("compiling %q: want sequence, got %v", c.src, v.Kind())
			}
			if got := reflect.TypeOf(v.seq).String() + " " + seqString(v.seq); got != c.want {
				t.Errorf("compiling %q: want %s, got %s", c.src, c.want, got)
			}
		})
	}
}

func TestMacroExpansion(t *testing.T) {
	e := testEquation()
	if err := e.Process("macro sq(x) = x*x"); err != nil {
		t.Fatal(err)
	}
	if err := e.Process("macro both(x, y) = sq(x) + sq(y)"); err != nil {
		t.Fatal(err)
	}
	seq, err := e.Compile("c = both(a, b')")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"transpose-m", "transpose-m", "multiply-mm", "multiply-mm", "add-mm", "copy-mm"}
	if got := seq.Ops(); !reflect.DeepEqual(got, want) {
		t.Errorf("want %q, got %q", want, got)
	}
	if m := e.Macro("sq"); m == nil || m.String() != "macro sq(x) = x * x" {
		t.Errorf("wrong macro: %v", m)
	}
}

func TestMacroErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  any
	}{
		{"no-name", "macro", new(*SyntaxError)},
		{"no-params", "macro f = x", new(*SyntaxError)},
		{"reserved", "macro inv(x) = x", new(*NameError)},
		{"bad-param", "macro f(1) = 1", new(*SyntaxError)},
		{"duplicate-param", "macro f(x, x) = x", new(*SyntaxError)},
		{"unclosed-params", "macro f(x", new(*BracketError)},
		{"no-assign", "macro f(x) x", new(*SyntaxError)},
		{"no-body", "macro f(x) =", new(*EmptyExpressionError)},
		{"arity", "c = sq(a, b)", new(*CallError)},
		{"recursive", "c = loop(a)", new(*SyntaxError)},
		{"unclosed-call", "c = sq(a", new(*BracketError)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := testEquation()
			if err := e.Process("macro sq(x) = x*x"); err != nil {
				t.Fatal(err)
			}
			if err := e.Process("macro loop(x) = loop(x)"); err != nil {
				t.Fatal(err)
			}
			_, err := e.Compile(c.src)
			if !errors.As(err, c.err) {
				t.Errorf("compiling %q: want %T, got %v", c.src, reflect.ValueOf(c.err).Elem().Interface(), err)
			}
		})
	}
}

func TestMacroRegisteredOnPerform(t *testing.T) {
	e := testEquation()
	seq, err := e.Compile("macro twice(x) = 2*x")
	if err != nil {
		t.Fatal(err)
	}
	if e.Macro("twice") != nil {
		t.Fatal("macro registered before perform")
	}
	if got := seq.Ops(); !reflect.DeepEqual(got, []string{"macro"}) {
		t.Errorf("wrong ops %q", got)
	}
	if err := seq.Perform(); err != nil {
		t.Fatal(err)
	}
	if e.Macro("twice") == nil {
		t.Fatal("macro not registered")
	}
}
