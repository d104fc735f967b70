package equation

import (
	"strconv"
	"strings"
)

type tokenKind int8

const (
	tokenNone tokenKind = iota
	// tokenWord is an identifier that has not yet been resolved to a
	// variable or function.
	tokenWord
	// tokenVar is a reference to a variable, including literals.
	tokenVar
	// tokenFunc is a reference to a function.
	tokenFunc
	// tokenSymbol is an operator or punctuation.
	tokenSymbol
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenWord:
		return "Word"
	case tokenVar:
		return "Var"
	case tokenFunc:
		return "Func"
	case tokenSymbol:
		return "Symbol"
	}
	return "tokenKind(" + strconv.Itoa(int(k)) + ")"
}

type symbol int8

const (
	symNone symbol = iota
	symPlus
	symMinus
	symTimes
	symRDivide
	symLDivide
	symPower
	symPeriod
	symElemTimes
	symElemDivide
	symElemPower
	symAssign
	symParenLeft
	symParenRight
	symBracketLeft
	symBracketRight
	symComma
	symTranspose
	symColon
	symSemicolon
)

var symbolText = [...]string{
	symNone:         "",
	symPlus:         "+",
	symMinus:        "-",
	symTimes:        "*",
	symRDivide:      "/",
	symLDivide:      `\`,
	symPower:        "^",
	symPeriod:       ".",
	symElemTimes:    ".*",
	symElemDivide:   "./",
	symElemPower:    ".^",
	symAssign:       "=",
	symParenLeft:    "(",
	symParenRight:   ")",
	symBracketLeft:  "[",
	symBracketRight: "]",
	symComma:        ",",
	symTranspose:    "'",
	symColon:        ":",
	symSemicolon:    ";",
}

func (s symbol) String() string {
	if s < 0 || int(s) >= len(symbolText) {
		return "symbol(" + strconv.Itoa(int(s)) + ")"
	}
	return symbolText[s]
}

// binary reports whether s is an operator taking a left and right operand.
// A minus after one of these begins a negative literal.
func (s symbol) binary() bool {
	switch s {
	case symPlus, symMinus, symTimes, symRDivide, symLDivide, symPower,
		symElemTimes, symElemDivide, symElemPower, symAssign:
		return true
	}
	return false
}

// token is a node in a tokenList. Exactly one of word, v, fn, or sym is
// meaningful, according to kind.
type token struct {
	kind tokenKind
	word string
	v    *Variable
	fn   string
	sym  symbol
	// pos is the 1-based rune position of the token in the statement.
	pos int

	prev, next *token
}

func wordToken(w string, pos int) *token {
	return &token{kind: tokenWord, word: w, pos: pos}
}

func varToken(v *Variable, pos int) *token {
	return &token{kind: tokenVar, v: v, pos: pos}
}

func symToken(s symbol, pos int) *token {
	return &token{kind: tokenSymbol, sym: s, pos: pos}
}

// is reports whether t is the symbol s. t may be nil.
func (t *token) is(s symbol) bool {
	return t != nil && t.kind == tokenSymbol && t.sym == s
}

// isVar reports whether t is a variable of kind k. t may be nil.
func (t *token) isVar(k Kind) bool {
	return t != nil && t.kind == tokenVar && t.v.kind == k
}

// copy returns a detached copy of t. Variables are shared.
func (t *token) copy() *token {
	c := *t
	c.prev, c.next = nil, nil
	return &c
}

// text returns the source-like text of t for error messages.
func (t *token) text() string {
	switch t.kind {
	case tokenWord:
		return t.word
	case tokenFunc:
		return t.fn
	case tokenSymbol:
		return t.sym.String()
	case tokenVar:
		if t.v.name != "" {
			return t.v.name
		}
		return t.v.String()
	}
	return ""
}

func (t *token) String() string {
	return t.kind.String() + ":" + t.text() + "@" + strconv.Itoa(t.pos)
}

// tokenList is a doubly linked list of tokens. Rewrite passes splice it in
// place.
type tokenList struct {
	first, last *token
	size        int
}

// push appends t to the end of the list.
func (l *tokenList) push(t *token) {
	l.insert(l.last, t)
}

// insert places t immediately after the token after, or at the start of the
// list if after is nil.
func (l *tokenList) insert(after, t *token) {
	t.prev = after
	if after == nil {
		t.next = l.first
		l.first = t
	} else {
		t.next = after.next
		after.next = t
	}
	if t.next == nil {
		l.last = t
	} else {
		t.next.prev = t
	}
	l.size++
}

// remove unlinks t from the list.
func (l *tokenList) remove(t *token) {
	if t.prev == nil {
		l.first = t.next
	} else {
		t.prev.next = t.next
	}
	if t.next == nil {
		l.last = t.prev
	} else {
		t.next.prev = t.prev
	}
	t.prev, t.next = nil, nil
	l.size--
}

// replace puts n in the place of old.
func (l *tokenList) replace(old, n *token) {
	l.insert(old, n)
	l.remove(old)
}

// extract cuts the tokens from begin through end, inclusive, out of the list
// and returns them as a new list. end must not precede begin.
func (l *tokenList) extract(begin, end *token) *tokenList {
	n := 1
	for t := begin; t != end; t = t.next {
		if t == nil {
			panic("equation: extract end is not after begin")
		}
		n++
	}
	if begin.prev == nil {
		l.first = end.next
	} else {
		begin.prev.next = end.next
	}
	if end.next == nil {
		l.last = begin.prev
	} else {
		end.next.prev = begin.prev
	}
	begin.prev, end.next = nil, nil
	l.size -= n
	return &tokenList{first: begin, last: end, size: n}
}

// splice moves all tokens of s into l after the token after, or at the start
// if after is nil. s is left empty.
func (l *tokenList) splice(after *token, s *tokenList) {
	if s.size == 0 {
		return
	}
	first, last := s.first, s.last
	first.prev = after
	if after == nil {
		last.next = l.first
		l.first = first
	} else {
		last.next = after.next
		after.next = first
	}
	if last.next == nil {
		l.last = last
	} else {
		last.next.prev = last
	}
	l.size += s.size
	*s = tokenList{}
}

// copy returns a deep copy of the list. Variables are shared.
func (l *tokenList) copy() *tokenList {
	c := new(tokenList)
	for t := l.first; t != nil; t = t.next {
		c.push(t.copy())
	}
	return c
}

func (l *tokenList) String() string {
	var b strings.Builder
	for t := l.first; t != nil; t = t.next {
		if t != l.first {
			b.WriteByte(' ')
		}
		b.WriteString(t.text())
	}
	return b.String()
}
