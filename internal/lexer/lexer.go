package lexer

import (
	"jsslice/internal/diag"
	"jsslice/internal/source"
	"jsslice/internal/token"
)

type Lexer struct {
	file    *source.File
	cursor  Cursor
	opts    Options
	look    *token.Token   // 1 элементный буфер для токена
	hold    []token.Trivia // накопленные leading trivia
	pending *token.Token   // Invalid, найденный во время сбора trivia
	err     *Error         // первая ошибка
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next возвращает следующий значимый токен с уже собранным Leading.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	var tok token.Token
	switch ch := lx.cursor.Peek(); {
	case lx.pending != nil:
		tok = *lx.pending
		lx.pending = nil
	case lx.cursor.EOF():
		tok = token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '"' || ch == '\'':
		tok = lx.scanString()
	default:
		tok = lx.scanOperatorOrPunct()
	}

	if tok.Kind != token.Invalid && tok.Span.Len() > lx.opts.maxTokenLength() {
		lx.errLex(ErrTokenTooLong, tok.Span, 0)
		tok.Kind = token.Invalid
	}

	tok.Pos = lx.file.Position(tok.Span.Start)
	// хвостовые комментарии приклеиваются к EOF, их видно в дампе токенов
	tok.Leading = lx.hold
	lx.hold = nil
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

// Err returns the first lexical error seen so far, or nil.
func (lx *Lexer) Err() error {
	if lx.err == nil {
		return nil
	}
	return lx.err
}

// File returns the file being lexed.
func (lx *Lexer) File() *source.File {
	return lx.file
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

func (lx *Lexer) invalid(sp source.Span) token.Token {
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// errLex records the error (first one wins for Err) and reports a diagnostic.
func (lx *Lexer) errLex(kind ErrorKind, sp source.Span, ch rune) *Error {
	e := &Error{
		Kind: kind,
		Char: ch,
		Text: lx.text(sp),
		Span: sp,
		Pos:  lx.file.Position(sp.Start),
	}
	if lx.err == nil {
		lx.err = e
	}
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, kind.Code(), sp, e.Message()).Emit()
	}
	return e
}
