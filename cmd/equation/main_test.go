package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/equation"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errs bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errs)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEcho(t *testing.T) {
	out, err := execute(t, "", "--echo",
		"a = [1 2; 3 4]",
		"b = a'",
		"c = a*b",
		"t = trace(a)",
	)
	require.NoError(t, err)
	g := goldie.New(t)
	g.Assert(t, "echo", []byte(out))
}

func TestStdin(t *testing.T) {
	in := "# comment\nx = 2\n\ny = x * 3 + 1\n"
	out, err := execute(t, in)
	require.NoError(t, err)
	assert.Equal(t, "x = 2\ny = 7\n", out)
}

func TestStatementError(t *testing.T) {
	_, err := execute(t, "", "a = b")
	require.Error(t, err)
	assert.True(t, equation.IsParseError(err))
	assert.Contains(t, err.Error(), `unknown variable "b"`)
}

func TestFlags(t *testing.T) {
	cmd := newRootCommand()
	for _, name := range []string{"in", "vars", "seed", "echo", "interactive", "verbose"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "i", cmd.Flags().Lookup("interactive").Shorthand)
	assert.Equal(t, "v", cmd.Flags().Lookup("verbose").Shorthand)
}

func TestDefineVars(t *testing.T) {
	doc := []byte("a: [[1, 2], [3, 4]]\nv: [5, 6.5]\nn: 3\nx: 0.25\n")
	e := equation.New()
	require.NoError(t, defineVars(e, doc))
	a := e.LookupMatrix("a")
	require.NotNil(t, a)
	assert.Equal(t, []float64{1, 2, 3, 4}, a.Data)
	assert.Equal(t, 2, a.Rows)
	v := e.LookupMatrix("v")
	require.NotNil(t, v)
	assert.Equal(t, 1, v.Rows)
	assert.Equal(t, []float64{5, 6.5}, v.Data)
	n, ok := e.LookupInt("n")
	assert.True(t, ok)
	assert.Equal(t, 3, n)
	x, ok := e.LookupDouble("x")
	assert.True(t, ok)
	assert.Equal(t, 0.25, x)
}

func TestDefineVarsErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"ragged", "a: [[1, 2], [3]]\n"},
		{"string", "a: hello\n"},
		{"mixed", "a: [[1], 2]\n"},
		{"reserved", "inv: 1\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Error(t, defineVars(equation.New(), []byte(c.doc)))
		})
	}
}
