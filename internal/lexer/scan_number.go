package lexer

import (
	"jsslice/internal/token"
)

// scanNumber читает только десятичные целые. Если за цифрами сразу идёт
// '.', экспонента или символ идентификатора (0x10, 1n, 1_000, 2abc), весь
// хвост съедается и возвращается Invalid с ErrUnsupportedLiteral.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.EatWhile(isDec)

	next := lx.cursor.Peek()
	if next != '.' && !isIdentContinueByte(next) {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.NumberLit, Span: sp, Text: lx.text(sp)}
	}

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == 'e' || b == 'E' {
			lx.cursor.Bump()
			if s := lx.cursor.Peek(); s == '+' || s == '-' {
				lx.cursor.Bump()
			}
			continue
		}
		if b != '.' && !isIdentContinueByte(b) {
			break
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(ErrUnsupportedLiteral, sp, 0)
	return lx.invalid(sp)
}
