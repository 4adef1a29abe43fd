package parser

import (
	"jsslice/internal/diag"
	"jsslice/internal/source"
	"jsslice/internal/token"
)

// advance: съедает текущий токен, возвращает его и подтягивает следующий
func (p *Parser) advance() token.Token {
	tok := p.tok
	p.prev = tok.Span
	p.tok = p.lx.Next()
	return tok
}

func (p *Parser) at(k token.Kind) bool {
	return p.tok.Kind == k
}

// expect съедает токен вида k или возвращает ошибку с кодом code.
func (p *Parser) expect(k token.Kind, code diag.Code) (token.Token, error) {
	if p.at(k) {
		return p.advance(), nil
	}
	return token.Token{}, p.unexpected(code, k)
}

// expectSemicolon дополнительно предлагает вставить ';' после
// последнего токена.
func (p *Parser) expectSemicolon() (token.Token, error) {
	if p.at(token.Semicolon) {
		return p.advance(), nil
	}
	if p.tok.Kind == token.Invalid {
		return token.Token{}, p.lexical()
	}
	e := p.newError(ErrExpectedToken, p.tok, token.Semicolon)
	if p.tok.Kind == token.EOF {
		e.Kind = ErrUnexpectedEndOfInput
	}
	diag.ReportError(p.opts.Reporter, diag.SynExpectSemicolon, e.Span, e.Message()).
		WithFix("insert ';'", diag.FixEdit{Span: p.prev.ZeroideToEnd(), NewText: ";"}).
		Emit()
	return token.Token{}, e
}

// unexpected строит ошибку для текущего токена и репортит её.
func (p *Parser) unexpected(code diag.Code, expected ...token.Kind) error {
	switch p.tok.Kind {
	case token.Invalid:
		return p.lexical()
	case token.EOF:
		e := p.newError(ErrUnexpectedEndOfInput, p.tok, expected...)
		p.report(diag.SynUnexpectedEOF, e)
		return e
	default:
		e := p.newError(ErrExpectedToken, p.tok, expected...)
		p.report(code, e)
		return e
	}
}

// lexical оборачивает ошибку лексера; диагностику лексер уже отправил.
func (p *Parser) lexical() error {
	e := p.newError(ErrLexical, p.tok)
	e.Cause = p.lx.Err()
	return e
}

func (p *Parser) newError(kind ErrorKind, found token.Token, expected ...token.Kind) *Error {
	sp := p.diagnosticSpan(found)
	return &Error{
		Kind:     kind,
		Expected: expected,
		Found:    found,
		Span:     sp,
		Pos:      p.file.Position(sp.Start),
	}
}

// diagnosticSpan: для EOF указываем сразу за последним съеденным токеном,
// так каретка встаёт на строку с проблемой, а не в конец файла.
func (p *Parser) diagnosticSpan(found token.Token) source.Span {
	if found.Kind == token.EOF && p.prev.End > 0 {
		return p.prev.ZeroideToEnd()
	}
	return found.Span
}

func (p *Parser) report(code diag.Code, e *Error) {
	diag.ReportError(p.opts.Reporter, code, e.Span, e.Message()).Emit()
}
