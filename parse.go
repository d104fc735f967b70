package equation

import (
	"strconv"

	"github.com/emirpasic/gods/stacks/linkedliststack"
)

// compiler holds the state of compiling one statement.
type compiler struct {
	e   *Equation
	seq *Sequence
}

// Operator precedence levels, highest first.
var precedence = [][]symbol{
	{symPower, symElemPower},
	{symTimes, symRDivide, symLDivide, symElemTimes, symElemDivide},
	{symPlus, symMinus},
}

// call creates the operation for a call to fn and adds it to the sequence.
func (c *compiler) call(fn Func, name string, pos int, args []*Variable) (*Variable, error) {
	if !fn.CanCall(len(args)) {
		return nil, &CallError{Col: pos, Func: name, Len: len(args)}
	}
	op, out, err := fn.Create(args)
	if err != nil {
		if te, ok := err.(*TypeError); ok && te.Col == 0 {
			te.Col = pos
		}
		return nil, err
	}
	if op == nil || out == nil {
		panic("equation: function " + name + " created no operation")
	}
	c.seq.add(op)
	return out, nil
}

// expr compiles an expression and returns the variable holding its value.
func (c *compiler) expr(l *tokenList) (*Variable, error) {
	if err := c.expand(l); err != nil {
		return nil, err
	}
	if err := c.resolve(l); err != nil {
		return nil, err
	}
	t, err := c.parse(l)
	if err != nil {
		return nil, err
	}
	return t.v, nil
}

// resolve converts words to function or variable references.
func (c *compiler) resolve(l *tokenList) error {
	for t := l.first; t != nil; t = t.next {
		if t.kind != tokenWord {
			continue
		}
		if t.word == "macro" {
			return &NameError{Col: t.pos, Name: t.word, Reserved: true}
		}
		if _, ok := c.e.funcs[t.word]; ok {
			t.kind, t.fn, t.word = tokenFunc, t.word, ""
			continue
		}
		v := c.e.vars[t.word]
		if v == nil {
			return &NameError{Col: t.pos, Name: t.word}
		}
		t.kind, t.v, t.word = tokenVar, v, ""
	}
	return nil
}

// parse reduces l to a single variable token.
func (c *compiler) parse(l *tokenList) (*token, error) {
	if err := c.groups(l); err != nil {
		return nil, err
	}
	return c.block(l, false)
}

// groups reduces parenthesized groups, innermost first. A group following a
// function is a call, and a group following a matrix is a submatrix.
func (c *compiler) groups(l *tokenList) error {
	stack := linkedliststack.New()
	for t := l.first; t != nil; {
		next := t.next
		switch {
		case t.is(symParenLeft):
			stack.Push(t)
		case t.is(symParenRight):
			v, ok := stack.Pop()
			if !ok {
				return &BracketError{Col: t.pos, Right: ")"}
			}
			open := v.(*token)
			before := open.prev
			inner := l.extract(open, t)
			inner.remove(inner.first)
			inner.remove(inner.last)
			switch {
			case before != nil && before.kind == tokenFunc:
				out, err := c.funcCall(before, inner)
				if err != nil {
					return err
				}
				l.replace(before, varToken(out, before.pos))
			case before.isVar(KindMatrix):
				out, err := c.submatrix(before, inner)
				if err != nil {
					return err
				}
				l.replace(before, varToken(out, before.pos))
			default:
				if inner.size == 0 {
					return &EmptyExpressionError{Col: t.pos, End: ")"}
				}
				r, err := c.block(inner, false)
				if err != nil {
					return err
				}
				l.insert(before, r)
			}
		}
		t = next
	}
	if v, ok := stack.Pop(); ok {
		return &BracketError{Col: v.(*token).pos, Left: "("}
	}
	return nil
}

// args splits the contents of a call at top-level commas and reduces each
// argument.
func (c *compiler) args(inner *tokenList) ([]*Variable, error) {
	if inner.size == 0 {
		return nil, nil
	}
	var r []*Variable
	depth := 0
	begin := inner.first
	for t := inner.first; t != nil; {
		next := t.next
		switch {
		case t.is(symBracketLeft):
			depth++
		case t.is(symBracketRight):
			depth--
		case t.is(symComma) && depth == 0:
			if begin == t || next == nil {
				return nil, &EmptyExpressionError{Col: t.pos, End: ","}
			}
			a, err := c.block(inner.extract(begin, t.prev), false)
			if err != nil {
				return nil, err
			}
			r = append(r, a.v)
			inner.remove(t)
			begin = next
		}
		t = next
	}
	a, err := c.block(inner.extract(begin, inner.last), false)
	if err != nil {
		return nil, err
	}
	return append(r, a.v), nil
}

func (c *compiler) funcCall(fn *token, inner *tokenList) (*Variable, error) {
	args, err := c.args(inner)
	if err != nil {
		return nil, err
	}
	return c.call(c.e.funcs[fn.fn], fn.fn, fn.pos, args)
}

func (c *compiler) submatrix(m *token, inner *tokenList) (*Variable, error) {
	args, err := c.args(inner)
	if err != nil {
		return nil, err
	}
	if len(args) != 1 && len(args) != 2 {
		return nil, &SyntaxError{Col: m.pos, Msg: "submatrix needs one or two ranges, not " + strconv.Itoa(len(args))}
	}
	return c.call(extractFunc, "extract", m.pos, append([]*Variable{m.v}, args...))
}

// block reduces a list containing no parentheses. Inside a matrix
// constructor, the list is only simplified, and the result is nil.
func (c *compiler) block(l *tokenList, inside bool) (*token, error) {
	if !inside {
		if err := c.brackets(l); err != nil {
			return nil, err
		}
	}
	c.colons(l)
	if err := c.negations(l); err != nil {
		return nil, err
	}
	if err := c.transposes(l); err != nil {
		return nil, err
	}
	for _, ops := range precedence {
		if err := c.binaries(l, ops); err != nil {
			return nil, err
		}
	}
	if !inside {
		for t := l.first; t != nil; {
			next := t.next
			if t.is(symComma) {
				l.remove(t)
			}
			t = next
		}
	}
	c.intLists(l)
	c.combine(l)
	if inside {
		return nil, nil
	}
	switch {
	case l.size == 0:
		return nil, &EmptyExpressionError{}
	case l.size > 1:
		t := l.first.next
		return nil, &SyntaxError{Col: t.pos, Msg: "unexpected " + strconv.Quote(t.text())}
	case l.first.kind != tokenVar:
		return nil, &SyntaxError{Col: l.first.pos, Msg: "unexpected " + strconv.Quote(l.first.text())}
	}
	return l.first, nil
}

// brackets replaces matrix constructors with their results.
func (c *compiler) brackets(l *tokenList) error {
	stack := linkedliststack.New()
	for t := l.first; t != nil; {
		next := t.next
		switch {
		case t.is(symBracketLeft):
			stack.Push(t)
		case t.is(symBracketRight):
			v, ok := stack.Pop()
			if !ok {
				return &BracketError{Col: t.pos, Right: "]"}
			}
			open := v.(*token)
			before := open.prev
			inner := l.extract(open, t)
			inner.remove(inner.first)
			inner.remove(inner.last)
			out, err := c.constructor(inner)
			if err != nil {
				return err
			}
			l.insert(before, varToken(out, open.pos))
		}
		t = next
	}
	if v, ok := stack.Pop(); ok {
		return &BracketError{Col: v.(*token).pos, Left: "["}
	}
	return nil
}

// constructor compiles the contents of a matrix constructor.
func (c *compiler) constructor(inner *tokenList) (*Variable, error) {
	if _, err := c.block(inner, true); err != nil {
		return nil, err
	}
	var rows [][]*Variable
	var row []*Variable
	for t := inner.first; t != nil; t = t.next {
		switch {
		case t.is(symSemicolon):
			rows = append(rows, row)
			row = nil
		case t.is(symComma):
			// separates entries
		case t.kind == tokenVar:
			if t.v.kind == KindSequence && t.v.seq.Open() {
				return nil, &SyntaxError{Col: t.pos, Msg: "open range in matrix constructor"}
			}
			row = append(row, t.v)
		default:
			return nil, &SyntaxError{Col: t.pos, Msg: "unexpected " + strconv.Quote(t.text()) + " in matrix constructor"}
		}
	}
	if len(row) > 0 || len(rows) == 0 {
		rows = append(rows, row)
	}
	op, out := construct(rows)
	c.seq.add(op)
	return out, nil
}

// colons converts integers separated by colons into sequences.
func (c *compiler) colons(l *tokenList) {
	for t := l.first; t != nil; t = t.next {
		switch {
		case t.isVar(KindInteger) && t.next.is(symColon):
			start, colon := t, t.next
			var s IntSequence
			end := colon
			if b := colon.next; b.isVar(KindInteger) {
				if c2 := b.next; c2.is(symColon) {
					if z := c2.next; z.isVar(KindInteger) {
						s, end = &For{Start: start.v, Step: b.v, End: z.v}, z
					} else {
						s, end = &Range{Start: start.v, Step: b.v}, c2
					}
				} else {
					s, end = &For{Start: start.v, End: b.v}, b
				}
			} else {
				s = &Range{Start: start.v}
			}
			t = foldSeq(l, start, end, s)
		case t.is(symColon):
			t = foldSeq(l, t, t, &Range{})
		}
	}
}

// foldSeq replaces the tokens from begin through end with a sequence.
func foldSeq(l *tokenList, begin, end *token, s IntSequence) *token {
	v := NewTemp(KindSequence)
	v.seq = s
	n := varToken(v, begin.pos)
	before := begin.prev
	l.extract(begin, end)
	l.insert(before, n)
	return n
}

// negations applies unary minus, working from the right so that --a is
// -(-a).
func (c *compiler) negations(l *tokenList) error {
	for t := l.last; t != nil; {
		prev := t.prev
		if t.is(symMinus) && t.next != nil && t.next.kind == tokenVar &&
			(prev == nil || prev.kind == tokenSymbol && !prev.is(symTranspose)) {
			out, err := c.call(negate, "-", t.pos, []*Variable{t.next.v})
			if err != nil {
				return err
			}
			l.remove(t.next)
			l.replace(t, varToken(out, t.pos))
		}
		t = prev
	}
	return nil
}

func (c *compiler) transposes(l *tokenList) error {
	for t := l.first; t != nil; t = t.next {
		if !t.is(symTranspose) {
			continue
		}
		prev := t.prev
		if prev == nil || prev.kind != tokenVar {
			return &SyntaxError{Col: t.pos, Msg: "transpose with no operand"}
		}
		out, err := c.call(transpose, "'", t.pos, []*Variable{prev.v})
		if err != nil {
			return err
		}
		n := varToken(out, prev.pos)
		l.remove(prev)
		l.replace(t, n)
		t = n
	}
	return nil
}

// binaries folds the operators in ops from left to right.
func (c *compiler) binaries(l *tokenList, ops []symbol) error {
	for t := l.first; t != nil; t = t.next {
		switch t.kind {
		case tokenFunc:
			return &SyntaxError{Col: t.pos, Msg: "function " + strconv.Quote(t.fn) + " needs arguments in parentheses"}
		case tokenSymbol:
			if t.prev != nil && t.prev.kind == tokenSymbol {
				return &SyntaxError{Col: t.pos, Msg: "unexpected " + strconv.Quote(t.text()) + " after " + strconv.Quote(t.prev.text())}
			}
			if !contains(ops, t.sym) {
				continue
			}
			left, right := t.prev, t.next
			if left == nil || right == nil || left.kind != tokenVar || right.kind != tokenVar {
				return &SyntaxError{Col: t.pos, Msg: "operator " + strconv.Quote(t.text()) + " is missing an operand"}
			}
			out, err := c.call(operators[t.sym], t.sym.String(), t.pos, []*Variable{left.v, right.v})
			if err != nil {
				return err
			}
			n := varToken(out, left.pos)
			before := left.prev
			l.extract(left, right)
			l.insert(before, n)
			t = n
		}
	}
	return nil
}

func contains(ops []symbol, s symbol) bool {
	for _, o := range ops {
		if o == s {
			return true
		}
	}
	return false
}

// intLists converts runs of two or more integers into explicit sequences.
func (c *compiler) intLists(l *tokenList) {
	for t := l.first; t != nil; t = t.next {
		if !t.isVar(KindInteger) || !t.next.isVar(KindInteger) {
			continue
		}
		s := &Explicit{Values: []*Variable{t.v}}
		end := t
		for end.next.isVar(KindInteger) {
			end = end.next
			s.Values = append(s.Values, end.v)
		}
		t = foldSeq(l, t, end, s)
	}
}

// combine converts runs of two or more integers and sequences into combined
// sequences.
func (c *compiler) combine(l *tokenList) {
	indexish := func(t *token) bool { return t.isVar(KindInteger) || t.isVar(KindSequence) }
	for t := l.first; t != nil; t = t.next {
		if !indexish(t) || !indexish(t.next) {
			continue
		}
		s := &Combined{}
		end := t
		for {
			s.Parts = append(s.Parts, part(end.v))
			if !indexish(end.next) {
				break
			}
			end = end.next
		}
		t = foldSeq(l, t, end, s)
	}
}

// part returns v as a piece of a combined sequence.
func part(v *Variable) IntSequence {
	switch {
	case v.kind == KindInteger:
		return &Explicit{Values: []*Variable{v}}
	case v.name != "":
		return &seqRef{v: v}
	}
	return v.seq
}
