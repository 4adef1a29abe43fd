package lexer

import (
	"jsslice/internal/token"
)

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.EatWhile(isIdentContinueByte)
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)

	kind := token.Ident
	if kw, ok := token.LookupKeyword(text); ok {
		kind = kw
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}
