package equation

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/zephyrtronium/equation/linalg"
)

// Equation holds the variables, macros, and functions that statements are
// compiled against. An Equation is not safe for concurrent use.
type Equation struct {
	vars   map[string]*Variable
	macros map[string]*Macro
	funcs  map[string]Func
	log    *slog.Logger
	pcg    *rand.PCG
	rand   *rand.Rand
}

// New creates an Equation with no variables.
func New(opts ...Option) *Equation {
	seed := uint64(time.Now().UnixNano())
	e := &Equation{
		vars:   make(map[string]*Variable),
		macros: make(map[string]*Macro),
		log:    slog.Default(),
		pcg:    rand.NewPCG(seed, seed),
	}
	e.rand = rand.New(e.pcg)
	e.funcs = builtins(e)
	for _, opt := range opts {
		opt.option(e)
	}
	return e
}

func (e *Equation) reseed(seed uint64) {
	e.pcg.Seed(seed, seed)
}

// reserved reports whether name cannot be used for a variable or macro.
func (e *Equation) reserved(name string) bool {
	if name == "" || name == "macro" {
		return true
	}
	if _, ok := e.funcs[name]; ok {
		return true
	}
	for i, r := range name {
		if i == 0 && !isWordStart(r) {
			return true
		}
		if !isWordRune(r) {
			return true
		}
	}
	return false
}

// Alias binds name to a value. value may be a *linalg.Matrix, int, float64,
// or IntSequence. Aliasing a matrix or sequence shares it: statements read
// and write the value passed in. If name already holds a value of the same
// kind, its payload is replaced in place, so statements compiled earlier use
// the new value. Otherwise the name refers to a new variable, and statements
// compiled earlier keep the old one.
func (e *Equation) Alias(name string, value any) error {
	if e.reserved(name) {
		return &NameError{Name: name, Reserved: true}
	}
	var v Variable
	switch x := value.(type) {
	case *linalg.Matrix:
		if x == nil {
			return fmt.Errorf("equation: cannot alias nil matrix to %q", name)
		}
		v = Variable{kind: KindMatrix, m: x}
	case int:
		v = Variable{kind: KindInteger, i: x}
	case float64:
		v = Variable{kind: KindDouble, d: x}
	case IntSequence:
		if x == nil {
			return fmt.Errorf("equation: cannot alias nil sequence to %q", name)
		}
		v = Variable{kind: KindSequence, seq: x}
	default:
		return fmt.Errorf("equation: cannot alias %T to %q", value, name)
	}
	v.name = name
	if old := e.vars[name]; old != nil && old.kind == v.kind {
		*old = v
		return nil
	}
	e.vars[name] = &v
	return nil
}

// Compile compiles a statement into a Sequence. A statement is one of:
//
//	name = expr
//	name(range) = expr
//	name(rows, cols) = expr
//	expr
//	macro name(param, ...) = template
//
// If name does not exist, it is created with the kind of expr once the
// statement compiles successfully.
func (e *Equation) Compile(src string) (*Sequence, error) {
	seq, err := e.compile(src)
	if err != nil {
		e.log.Debug("compile failed", slog.String("statement", src), slog.Any("err", err))
		return nil, err
	}
	e.log.Debug("compiled", slog.String("statement", src), slog.Any("ops", seq.Ops()), slog.String("target", seq.target))
	return seq, nil
}

func (e *Equation) compile(src string) (*Sequence, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	c := &compiler{e: e, seq: new(Sequence)}
	if toks.size == 0 {
		return nil, &EmptyExpressionError{Col: 1}
	}
	if t := toks.first; t.kind == tokenWord && t.word == "macro" {
		if err := c.define(toks); err != nil {
			return nil, err
		}
		return c.seq, nil
	}
	var eq *token
	for t := toks.first; t != nil; t = t.next {
		if t.is(symAssign) {
			eq = t
			break
		}
	}
	if eq == nil {
		if _, err := c.expr(toks); err != nil {
			return nil, err
		}
		return c.seq, nil
	}
	if eq == toks.first {
		return nil, &SyntaxError{Col: eq.pos, Msg: "assignment has no target"}
	}
	if eq.next == nil {
		return nil, &EmptyExpressionError{Col: eq.pos}
	}
	lhs := toks.extract(toks.first, eq.prev)
	toks.remove(eq)
	for t := toks.first; t != nil; t = t.next {
		if t.is(symAssign) {
			return nil, &SyntaxError{Col: t.pos, Msg: "unexpected second ="}
		}
	}
	target := lhs.first
	if target.kind != tokenWord {
		return nil, &SyntaxError{Col: target.pos, Msg: "assignment target must be a variable name"}
	}
	name := target.word
	if e.reserved(name) {
		return nil, &NameError{Col: target.pos, Name: name, Reserved: true}
	}
	src1, err := c.expr(toks)
	if err != nil {
		return nil, err
	}
	if lhs.size > 1 {
		if err := c.assignSub(lhs, src1); err != nil {
			return nil, err
		}
		c.seq.target = name
		return c.seq, nil
	}
	dst := e.vars[name]
	created := dst == nil
	if created {
		dst = NewTemp(src1.kind)
		dst.name = name
	}
	op, err := assign(src1, dst)
	if err != nil {
		if te, ok := err.(*TypeError); ok {
			te.Col = eq.pos
		}
		return nil, err
	}
	c.seq.add(op)
	c.seq.target = name
	if created {
		e.vars[name] = dst
	}
	return c.seq, nil
}

// assignSub compiles the target of a submatrix assignment.
func (c *compiler) assignSub(lhs *tokenList, src *Variable) error {
	target := lhs.first
	open := target.next
	if !open.is(symParenLeft) || !lhs.last.is(symParenRight) || lhs.size < 3 {
		return &SyntaxError{Col: open.pos, Msg: "expected name(range) or name(rows, cols) before ="}
	}
	dst := c.e.vars[target.word]
	if dst == nil {
		return &NameError{Col: target.pos, Name: target.word}
	}
	inner := lhs.extract(open, lhs.last)
	inner.remove(inner.first)
	inner.remove(inner.last)
	if err := c.expand(inner); err != nil {
		return err
	}
	if err := c.resolve(inner); err != nil {
		return err
	}
	// Parenthesized groups inside the ranges are reduced in place; commas at
	// the top level survive for splitting.
	if err := c.groups(inner); err != nil {
		return err
	}
	ranges, err := c.args(inner)
	if err != nil {
		return err
	}
	if len(ranges) != 1 && len(ranges) != 2 {
		return &SyntaxError{Col: open.pos, Msg: "submatrix needs one or two ranges"}
	}
	op, err := assignSub(src, dst, ranges)
	if err != nil {
		if te, ok := err.(*TypeError); ok {
			te.Col = target.pos
		}
		return err
	}
	c.seq.add(op)
	return nil
}

// Process compiles and performs a statement.
func (e *Equation) Process(src string) error {
	seq, err := e.Compile(src)
	if err != nil {
		return err
	}
	return seq.Perform()
}

// Lookup returns the variable with the given name, or nil if there is none.
func (e *Equation) Lookup(name string) *Variable {
	return e.vars[name]
}

// LookupMatrix returns the matrix named name, or nil if name is not a matrix.
func (e *Equation) LookupMatrix(name string) *linalg.Matrix {
	v := e.vars[name]
	if v == nil {
		return nil
	}
	return v.Matrix()
}

// LookupInt returns the value of the integer named name.
func (e *Equation) LookupInt(name string) (int, bool) {
	v := e.vars[name]
	if v == nil || v.kind != KindInteger {
		return 0, false
	}
	return v.i, true
}

// LookupDouble returns the value of the double or integer named name.
func (e *Equation) LookupDouble(name string) (float64, bool) {
	v := e.vars[name]
	if v == nil || !v.isScalar() {
		return 0, false
	}
	return v.Scalar(), true
}

// LookupSequence returns the sequence named name, or nil if name is not a
// sequence.
func (e *Equation) LookupSequence(name string) IntSequence {
	v := e.vars[name]
	if v == nil || v.kind != KindSequence {
		return nil
	}
	return v.seq
}

// Macro returns the macro named name, or nil if there is none.
func (e *Equation) Macro(name string) *Macro {
	return e.macros[name]
}

func (e *Equation) setMacro(m *Macro) {
	e.macros[m.Name] = m
	e.log.Info("macro defined", slog.String("name", m.Name), slog.Any("params", m.Params))
}
