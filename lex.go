package equation

import (
	"strconv"
	"strings"
	"unicode"
)

// Symbols contains the runes which are operators or punctuation.
const Symbols = `*/+-()[]=',:;\^.`

var symbolRunes = map[rune]symbol{
	'+':  symPlus,
	'-':  symMinus,
	'*':  symTimes,
	'/':  symRDivide,
	'\\': symLDivide,
	'^':  symPower,
	'.':  symPeriod,
	'=':  symAssign,
	'(':  symParenLeft,
	')':  symParenRight,
	'[':  symBracketLeft,
	']':  symBracketRight,
	',':  symComma,
	'\'': symTranspose,
	':':  symColon,
	';':  symSemicolon,
}

var elementwise = map[rune]symbol{
	'*': symElemTimes,
	'/': symElemDivide,
	'^': symElemPower,
}

type lexState int8

const (
	// stateNone is between tokens.
	stateNone lexState = iota
	stateWord
	stateInt
	stateFloat
	// stateExp is within the exponent of a float.
	stateExp
)

type lexer struct {
	src   []rune
	toks  *tokenList
	buf   strings.Builder
	state lexState
	// start is the position of the token being scanned.
	start int
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isWordStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isWordRune(r rune) bool {
	return isWordStart(r) || unicode.IsDigit(r)
}

// tokenize splits a statement into words, literals, and symbols. Numeric
// literals become temporary variables.
func tokenize(src string) (*tokenList, error) {
	l := lexer{
		// The trailing space flushes the last token.
		src:  append([]rune(src), ' '),
		toks: new(tokenList),
	}
	for i := 0; i < len(l.src); i++ {
		r := l.src[i]
		pos := i + 1
		if l.state != stateNone {
			more, err := l.continues(r, pos)
			if err != nil {
				return nil, err
			}
			if more {
				l.buf.WriteRune(r)
				continue
			}
			if err := l.emit(); err != nil {
				return nil, err
			}
		}
		switch {
		case unicode.IsSpace(r):
			// do nothing
		case isDigit(r):
			l.begin(stateInt, r, pos)
		case r == '-' && isDigit(l.peek(i)) && l.negates():
			l.begin(stateInt, r, pos)
		case r == '.' && elementwise[l.peek(i)] != symNone:
			l.toks.push(symToken(elementwise[l.peek(i)], pos))
			i++
		case symbolRunes[r] != symNone:
			l.toks.push(symToken(symbolRunes[r], pos))
		case isWordStart(r):
			l.begin(stateWord, r, pos)
		default:
			return nil, &LexError{Text: string(r), Col: pos}
		}
	}
	return l.toks, nil
}

func (l *lexer) begin(s lexState, r rune, pos int) {
	l.state = s
	l.start = pos
	l.buf.WriteRune(r)
}

// peek returns the rune after index i, or 0 at the end.
func (l *lexer) peek(i int) rune {
	if i+1 < len(l.src) {
		return l.src[i+1]
	}
	return 0
}

// negates reports whether a minus sign at this point begins a negative
// literal rather than being a subtraction.
func (l *lexer) negates() bool {
	t := l.toks.last
	return t == nil || t.kind == tokenSymbol && t.sym.binary()
}

// continues reports whether r extends the token being scanned. It returns an
// error if r cannot follow the token but also cannot begin a new one.
func (l *lexer) continues(r rune, pos int) (bool, error) {
	switch l.state {
	case stateWord:
		return isWordRune(r), nil
	case stateInt:
		switch {
		case isDigit(r):
			return true, nil
		case r == '.':
			if elementwise[l.peek(pos-1)] != symNone {
				// 2.*x is an element-wise product.
				return false, nil
			}
			l.state = stateFloat
			return true, nil
		case r == 'e', r == 'E':
			l.state = stateExp
			return true, nil
		case isWordRune(r):
			return false, l.error(r, pos, "number")
		}
	case stateFloat:
		switch {
		case isDigit(r):
			return true, nil
		case r == 'e', r == 'E':
			l.state = stateExp
			return true, nil
		case r == '.', isWordRune(r):
			return false, l.error(r, pos, "number")
		}
	case stateExp:
		s := l.buf.String()
		last := s[len(s)-1]
		switch {
		case isDigit(r):
			return true, nil
		case (r == '-' || r == '+') && (last == 'e' || last == 'E'):
			return true, nil
		case r == '.', isWordRune(r):
			return false, l.error(r, pos, "number")
		}
	}
	return false, nil
}

// emit finishes the token being scanned.
func (l *lexer) emit() error {
	s := l.buf.String()
	defer func() {
		l.buf.Reset()
		l.state = stateNone
	}()
	switch l.state {
	case stateWord:
		l.toks.push(wordToken(s, l.start))
	case stateInt:
		n, err := strconv.Atoi(s)
		if err != nil {
			return &LexError{Text: s, Kind: "integer", Col: l.start}
		}
		l.toks.push(varToken(intLiteral(n), l.start))
	case stateFloat, stateExp:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return &LexError{Text: s, Kind: "number", Col: l.start}
		}
		l.toks.push(varToken(doubleLiteral(f), l.start))
	}
	return nil
}

func (l *lexer) error(r rune, pos int, kind string) error {
	return &LexError{
		Text: l.buf.String() + string(r),
		Kind: kind,
		Col:  pos,
	}
}

// LexError indicates an invalid token. It implements ParseError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This may be "number",
	// "integer", or the empty string (if a token kind hadn't been decided).
	Kind string
	// Col is the position of the invalid rune or token.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid token at " + pos + ": " + err.Text
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + err.Text
}

func (err *LexError) Pos() int {
	return err.Col
}
