package lexer

import (
	"fmt"

	"jsslice/internal/diag"
	"jsslice/internal/source"
)

// ErrorKind classifies lexical failures. Each kind is itself an error so
// callers can test with errors.Is(err, lexer.ErrUnterminatedString).
type ErrorKind uint8

const (
	ErrUnexpectedCharacter ErrorKind = iota + 1
	ErrUnterminatedString
	ErrUnsupportedLiteral
	ErrUnterminatedComment
	ErrTokenTooLong
)

func (k ErrorKind) Error() string {
	switch k {
	case ErrUnexpectedCharacter:
		return "unexpected character"
	case ErrUnterminatedString:
		return "unterminated string literal"
	case ErrUnsupportedLiteral:
		return "unsupported numeric literal"
	case ErrUnterminatedComment:
		return "unterminated block comment"
	case ErrTokenTooLong:
		return "token too long"
	default:
		return "lexical error"
	}
}

// Code maps the kind onto its diagnostic code.
func (k ErrorKind) Code() diag.Code {
	switch k {
	case ErrUnexpectedCharacter:
		return diag.LexUnknownChar
	case ErrUnterminatedString:
		return diag.LexUnterminatedString
	case ErrUnsupportedLiteral:
		return diag.LexBadNumber
	case ErrUnterminatedComment:
		return diag.LexUnterminatedBlockComment
	case ErrTokenTooLong:
		return diag.LexTokenTooLong
	default:
		return diag.LexInfo
	}
}

// Error is a positioned lexical failure.
type Error struct {
	Kind ErrorKind
	Char rune        // только для ErrUnexpectedCharacter
	Text string      // исходный текст проблемного фрагмента
	Span source.Span // для строк и комментариев: открывающий разделитель
	Pos  source.LineCol
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message())
}

// Message is the position-free text used for diagnostics.
func (e *Error) Message() string {
	switch e.Kind {
	case ErrUnexpectedCharacter:
		return fmt.Sprintf("unexpected character %q", e.Char)
	case ErrUnsupportedLiteral:
		return fmt.Sprintf("unsupported numeric literal %q: only decimal integers are allowed", e.Text)
	default:
		return e.Kind.Error()
	}
}

func (e *Error) Unwrap() error {
	return e.Kind
}
