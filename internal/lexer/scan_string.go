package lexer

import (
	"jsslice/internal/token"
)

// scanString читает "..." или '...'. Escape-последовательности не
// декодируются: '\' просто забирает следующий байт в литерал. Переводы
// строк внутри проходят как есть.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump()
	for !lx.cursor.EOF() {
		switch lx.cursor.Bump() {
		case quote:
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
		case '\\':
			lx.cursor.Bump()
		}
	}
	// EOF без закрывающей кавычки: позиция ошибки: открывающая кавычка
	sp := lx.cursor.SpanFrom(start)
	open := sp
	open.End = open.Start + 1
	lx.errLex(ErrUnterminatedString, open, 0)
	return lx.invalid(sp)
}
