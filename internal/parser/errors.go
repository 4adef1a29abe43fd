package parser

import (
	"fmt"
	"strings"

	"jsslice/internal/source"
	"jsslice/internal/token"
)

// ErrorKind classifies parse failures. Kinds are errors themselves, so
// errors.Is(err, parser.ErrInvalidAssignmentTarget) works on *Error.
type ErrorKind uint8

const (
	ErrExpectedToken ErrorKind = iota + 1
	ErrInvalidAssignmentTarget
	ErrUnexpectedEndOfInput
	// ErrLexical wraps a *lexer.Error in Cause.
	ErrLexical
	ErrNestingTooDeep
)

func (k ErrorKind) String() string {
	switch k {
	case ErrExpectedToken:
		return "ExpectedToken"
	case ErrInvalidAssignmentTarget:
		return "InvalidAssignmentTarget"
	case ErrUnexpectedEndOfInput:
		return "UnexpectedEndOfInput"
	case ErrLexical:
		return "Lexical"
	case ErrNestingTooDeep:
		return "NestingTooDeep"
	}
	return "Unknown"
}

func (k ErrorKind) Error() string {
	switch k {
	case ErrExpectedToken:
		return "unexpected token"
	case ErrInvalidAssignmentTarget:
		return "invalid assignment target"
	case ErrUnexpectedEndOfInput:
		return "unexpected end of input"
	case ErrLexical:
		return "lexical error"
	case ErrNestingTooDeep:
		return "expression nesting too deep"
	}
	return "parse error"
}

// Error is the first failure of a parse. Span and Pos locate the offending
// token (for EOF: the point right after the last consumed token).
type Error struct {
	Kind     ErrorKind
	Expected []token.Kind // пусто, если ожидание не определено
	Found    token.Token
	Span     source.Span
	Pos      source.LineCol
	Cause    error
	Limit    int // для ErrNestingTooDeep
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message())
}

// Message is the position-free text used for diagnostics.
func (e *Error) Message() string {
	switch e.Kind {
	case ErrExpectedToken:
		if len(e.Expected) == 0 {
			return fmt.Sprintf("unexpected %s", describeFound(e.Found))
		}
		return fmt.Sprintf("expected %s, found %s", describeExpected(e.Expected), describeFound(e.Found))
	case ErrUnexpectedEndOfInput:
		if len(e.Expected) == 0 {
			return "unexpected end of input"
		}
		return fmt.Sprintf("unexpected end of input, expected %s", describeExpected(e.Expected))
	case ErrInvalidAssignmentTarget:
		return "invalid assignment target: only identifiers can be assigned"
	case ErrNestingTooDeep:
		return fmt.Sprintf("expression nesting exceeds %d levels", e.Limit)
	case ErrLexical:
		if m, ok := e.Cause.(interface{ Message() string }); ok {
			return m.Message()
		}
		if e.Cause != nil {
			return e.Cause.Error()
		}
	}
	return e.Kind.Error()
}

// Unwrap exposes both the kind sentinel and the lexer cause.
func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

func describeExpected(kinds []token.Kind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = k.Describe()
	}
	switch len(parts) {
	case 1:
		return parts[0]
	case 2:
		return parts[0] + " or " + parts[1]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " or " + parts[len(parts)-1]
}

func describeFound(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of input"
	case token.Ident, token.NumberLit, token.StringLit:
		return fmt.Sprintf("%s %s", tok.Kind.Describe(), tok.Text)
	default:
		return tok.Kind.Describe()
	}
}
