package lexer

import (
	"jsslice/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
//   - пробелы, \t, \r, \v, \f коалесцируются в один TriviaSpace
//   - последовательные '\n' коалесцируются в один TriviaNewline
//   - //... до \n -> TriviaLineComment
//   - /* ... */ -> TriviaBlockComment (без вложенности, как в JS)
//   - #!... в нулевой позиции файла -> TriviaHashbang
func (lx *Lexer) collectLeadingTrivia() {
	if lx.cursor.Off == 0 {
		lx.scanHashbang()
	}
	for !lx.cursor.EOF() && lx.pending == nil {
		start := lx.cursor.Mark()
		switch b := lx.cursor.Peek(); {
		case isSpace(b):
			lx.cursor.EatWhile(isSpace)
			lx.pushTrivia(token.TriviaSpace, start)
		case b == '\n':
			lx.cursor.EatWhile(func(c byte) bool { return c == '\n' })
			lx.pushTrivia(token.TriviaNewline, start)
		case b == '/' && lx.scanComment():
			continue
		default:
			return
		}
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}

func (lx *Lexer) scanHashbang() {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '#' || b1 != '!' {
		return
	}
	start := lx.cursor.Mark()
	lx.cursor.EatWhile(func(c byte) bool { return c != '\n' })
	lx.pushTrivia(token.TriviaHashbang, start)
}

// scanComment consumes "//..." or "/*...*/". A lone '/' is left for the
// operator scanner.
func (lx *Lexer) scanComment() bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '/' {
		return false
	}
	start := lx.cursor.Mark()
	switch b1 {
	case '/':
		lx.cursor.EatWhile(func(c byte) bool { return c != '\n' })
		lx.pushTrivia(token.TriviaLineComment, start)
		return true
	case '*':
		lx.cursor.Advance(2)
		for !lx.cursor.EOF() {
			if c0, c1, ok := lx.cursor.Peek2(); ok && c0 == '*' && c1 == '/' {
				lx.cursor.Advance(2)
				lx.pushTrivia(token.TriviaBlockComment, start)
				return true
			}
			lx.cursor.Bump()
		}
		// незакрытый комментарий: ошибка на "/*", токен Invalid до конца файла
		open := lx.cursor.SpanFrom(start)
		open.End = open.Start + 2
		lx.errLex(ErrUnterminatedComment, open, 0)
		tok := lx.invalid(lx.cursor.SpanFrom(start))
		lx.pending = &tok
		return true
	default:
		return false
	}
}
