package equation

import "strconv"

// maxExpansions is the limit on macro expansions in one statement, so that a
// recursive macro fails instead of growing forever.
const maxExpansions = 64

// Macro is a named token template. Uses of the macro are replaced by its body
// with each parameter substituted by the tokens of the corresponding
// argument.
type Macro struct {
	Name   string
	Params []string
	body   *tokenList
}

// String returns the macro definition in source form.
func (m *Macro) String() string {
	s := "macro " + m.Name + "("
	for i, p := range m.Params {
		if i > 0 {
			s += ", "
		}
		s += p
	}
	return s + ") = " + m.body.String()
}

func (m *Macro) param(w string) int {
	for i, p := range m.Params {
		if p == w {
			return i
		}
	}
	return -1
}

// instantiate returns a copy of the body with parameters replaced by copies
// of the argument tokens.
func (m *Macro) instantiate(args [][]*token) *tokenList {
	out := new(tokenList)
	for t := m.body.first; t != nil; t = t.next {
		if t.kind == tokenWord {
			if k := m.param(t.word); k >= 0 {
				for _, a := range args[k] {
					out.push(a.copy())
				}
				continue
			}
		}
		out.push(t.copy())
	}
	return out
}

// define compiles a macro definition statement. The macro is registered when
// the returned sequence is performed.
func (c *compiler) define(l *tokenList) error {
	kw := l.first
	t := kw.next
	if t == nil || t.kind != tokenWord {
		return &SyntaxError{Col: kw.pos, Msg: "macro needs a name"}
	}
	name := t.word
	if c.e.reserved(name) {
		return &NameError{Col: t.pos, Name: name, Reserved: true}
	}
	t = t.next
	if !t.is(symParenLeft) {
		return &SyntaxError{Col: kw.pos, Msg: "expected ( after macro name " + strconv.Quote(name)}
	}
	var params []string
	for t = t.next; !t.is(symParenRight); t = t.next {
		if t == nil {
			return &BracketError{Col: kw.pos, Left: "("}
		}
		if len(params) > 0 {
			if !t.is(symComma) {
				return &SyntaxError{Col: t.pos, Msg: "expected , or ) in macro parameters"}
			}
			t = t.next
		}
		if t == nil || t.kind != tokenWord {
			return &SyntaxError{Col: kw.pos, Msg: "macro parameters must be names"}
		}
		for _, p := range params {
			if p == t.word {
				return &SyntaxError{Col: t.pos, Msg: "duplicate macro parameter " + strconv.Quote(p)}
			}
		}
		params = append(params, t.word)
	}
	t = t.next
	if !t.is(symAssign) {
		col := kw.pos
		if t != nil {
			col = t.pos
		}
		return &SyntaxError{Col: col, Msg: "expected = after macro parameters"}
	}
	if t.next == nil {
		return &EmptyExpressionError{Col: t.pos}
	}
	m := &Macro{Name: name, Params: params, body: l.extract(t.next, l.last)}
	c.seq.add(NewOperation("macro", func() error {
		c.e.setMacro(m)
		return nil
	}))
	return nil
}

// expand replaces macro calls in l by their bodies. Expanded tokens are
// scanned again, so macros may use other macros.
func (c *compiler) expand(l *tokenList) error {
	n := 0
	for t := l.first; t != nil; {
		var m *Macro
		if t.kind == tokenWord {
			m = c.e.macros[t.word]
		}
		if m == nil || !t.next.is(symParenLeft) {
			t = t.next
			continue
		}
		end, args, err := macroArgs(t.next)
		if err != nil {
			return err
		}
		if len(args) != len(m.Params) {
			return &CallError{Col: t.pos, Func: m.Name, Len: len(args)}
		}
		n++
		if n > maxExpansions {
			return &SyntaxError{Col: t.pos, Msg: "too many macro expansions; is " + strconv.Quote(m.Name) + " recursive?"}
		}
		x := m.instantiate(args)
		before := t.prev
		l.extract(t, end)
		first := x.first
		l.splice(before, x)
		t = first
	}
	return nil
}

// macroArgs collects the arguments of a macro call beginning at the open
// parenthesis open. It returns the matching close parenthesis.
func macroArgs(open *token) (*token, [][]*token, error) {
	var args [][]*token
	var cur []*token
	depth := 0
	for t := open.next; t != nil; t = t.next {
		switch {
		case t.is(symParenLeft), t.is(symBracketLeft):
			depth++
		case t.is(symBracketRight):
			depth--
		case t.is(symParenRight):
			if depth == 0 {
				if len(cur) == 0 && len(args) > 0 {
					return nil, nil, &EmptyExpressionError{Col: t.pos, End: ")"}
				}
				if len(cur) > 0 {
					args = append(args, cur)
				}
				return t, args, nil
			}
			depth--
		case t.is(symComma) && depth == 0:
			if len(cur) == 0 {
				return nil, nil, &EmptyExpressionError{Col: t.pos, End: ","}
			}
			args = append(args, cur)
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	return nil, nil, &BracketError{Col: open.pos, Left: "("}
}
