package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid marks a lexical error; the lexer reports the cause separately.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// KwLet represents the 'let' keyword.
	KwLet // let

	NumberLit    // 123
	StringLit    // "abc" or 'abc'
	DirectiveLit // "use strict" in prologue position

	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Assign    // =
	Semicolon // ;
	Comma     // ,
	LParen    // (
	RParen    // )

	kindCount
)

var kindNames = [...]string{
	Invalid:      "Invalid",
	EOF:          "EOF",
	Ident:        "Ident",
	KwLet:        "KwLet",
	NumberLit:    "NumberLit",
	StringLit:    "StringLit",
	DirectiveLit: "DirectiveLit",
	Plus:         "Plus",
	Minus:        "Minus",
	Star:         "Star",
	Slash:        "Slash",
	Assign:       "Assign",
	Semicolon:    "Semicolon",
	Comma:        "Comma",
	LParen:       "LParen",
	RParen:       "RParen",
}

var kindSpellings = [...]string{
	KwLet:     "let",
	Plus:      "+",
	Minus:     "-",
	Star:      "*",
	Slash:     "/",
	Assign:    "=",
	Semicolon: ";",
	Comma:     ",",
	LParen:    "(",
	RParen:    ")",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Describe returns the user-facing spelling of k for messages like
// "expected ';'". Kinds without fixed text get a descriptive noun.
func (k Kind) Describe() string {
	if int(k) < len(kindSpellings) && kindSpellings[k] != "" {
		return "'" + kindSpellings[k] + "'"
	}
	switch k {
	case Ident:
		return "identifier"
	case NumberLit:
		return "number"
	case StringLit, DirectiveLit:
		return "string"
	case EOF:
		return "end of input"
	default:
		return "invalid token"
	}
}

// Kinds returns every defined kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Invalid; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}
