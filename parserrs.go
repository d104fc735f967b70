package equation

import "strconv"

// BracketError is an error indicating mismatched parentheses or brackets in
// the input. It implements ParseError.
type BracketError struct {
	// Col is the position of the unmatched bracket.
	Col int
	// Left is the opening bracket.
	Left string
	// Right is the mismatched closing bracket.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	if err.Right == "" {
		return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
	}
	return errpos(err.Col, "mismatched bracket: "+err.Left+"expr"+err.Right)
}

func (err *BracketError) Pos() int {
	return err.Col
}

// CallError is an error indicating a function or macro call with the wrong
// number of arguments. It implements ParseError.
type CallError struct {
	// Col is the position of the function name.
	Col int
	// Func is the function name that was called.
	Func string
	// Len is the number of arguments in the call.
	Len int
}

func (err *CallError) Error() string {
	return errpos(err.Col, "cannot call "+err.Func+" with "+strconv.Itoa(err.Len)+" arguments")
}

func (err *CallError) Pos() int {
	return err.Col
}

// NameError is an error indicating a variable name that is unknown or cannot
// be used. It implements ParseError.
type NameError struct {
	// Col is the position of the name, or 0 if the name did not come from a
	// statement.
	Col int
	// Name is the offending name.
	Name string
	// Reserved is whether the name is reserved rather than unknown.
	Reserved bool
}

func (err *NameError) Error() string {
	if err.Reserved {
		return errpos(err.Col, strconv.Quote(err.Name)+" is a reserved or invalid name")
	}
	return errpos(err.Col, "unknown variable "+strconv.Quote(err.Name))
}

func (err *NameError) Pos() int {
	return err.Col
}

// SyntaxError is an error indicating tokens that do not form a statement. It
// implements ParseError.
type SyntaxError struct {
	// Col is the position of the token where the problem was found.
	Col int
	// Msg describes the problem.
	Msg string
}

func (err *SyntaxError) Error() string {
	return errpos(err.Col, err.Msg)
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating an empty subexpression.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// ParseError is an error with position information. Every error resulting from
// a malformed statement implements ParseError.
type ParseError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ ParseError = (*BracketError)(nil)
	_ ParseError = (*CallError)(nil)
	_ ParseError = (*NameError)(nil)
	_ ParseError = (*SyntaxError)(nil)
	_ ParseError = (*EmptyExpressionError)(nil)
	_ ParseError = (*LexError)(nil)
)
