package lexer

import (
	"unicode/utf8"

	"jsslice/internal/token"
)

var punct = [256]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'=': token.Assign,
	';': token.Semicolon,
	',': token.Comma,
	'(': token.LParen,
	')': token.RParen,
}

// scanOperatorOrPunct handles single-byte punctuation. Compound operators
// (==, +=) are outside the subset and come out as consecutive tokens.
// Anything else is an unexpected character; non-ASCII input is consumed
// as one whole UTF-8 sequence.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Peek()
	if k := punct[b]; k != token.Invalid {
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}

	r, size := rune(b), 1
	if b >= utf8.RuneSelf {
		r, size = utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
	}
	lx.cursor.Advance(uint32(size)) // #nosec G115 -- size <= utf8.UTFMax
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(ErrUnexpectedCharacter, sp, r)
	return lx.invalid(sp)
}
