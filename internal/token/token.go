package token

import (
	"jsslice/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Pos     source.LineCol // позиция Span.Start
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a number or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, StringLit, DirectiveLit:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is punctuation or an operator.
func (t Token) IsPunctOrOp() bool {
	switch t.Kind {
	case Plus, Minus, Star, Slash, Assign, Semicolon, Comma, LParen, RParen:
		return true
	default:
		return false
	}
}

func (t Token) IsKeyword() bool { return t.Kind == KwLet }

func (t Token) IsIdent() bool { return t.Kind == Ident }

// AsDirective returns a copy of a string literal retagged as DirectiveLit.
// Other kinds are returned unchanged.
func (t Token) AsDirective() Token {
	if t.Kind == StringLit {
		t.Kind = DirectiveLit
	}
	return t
}

// StringValue returns the literal content between the quotes.
func (t Token) StringValue() string {
	if len(t.Text) < 2 {
		return ""
	}
	return t.Text[1 : len(t.Text)-1]
}
