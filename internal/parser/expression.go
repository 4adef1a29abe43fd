package parser

import (
	"strconv"

	"jsslice/internal/ast"
	"jsslice/internal/diag"
	"jsslice/internal/source"
	"jsslice/internal/token"
)

// primaryStarts: то, что может начинать выражение
var primaryStarts = []token.Kind{token.NumberLit, token.StringLit, token.Ident, token.LParen}

// parseExpr реализует precedence climbing.
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseExpr(minPrec int) (ast.ExprID, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return ast.NoExprID, err
	}

	for {
		prec, isRightAssoc := getBinaryOperatorPrec(p.tok.Kind)
		if prec < minPrec {
			return left, nil
		}
		opTok := p.advance()

		nextMinPrec := prec + 1
		if isRightAssoc {
			nextMinPrec = prec
		}

		switch opTok.Kind {
		case token.Assign:
			left, err = p.parseAssign(left, opTok, nextMinPrec)
		case token.Comma:
			var right ast.ExprID
			if right, err = p.parseExpr(nextMinPrec); err == nil {
				left = p.b.Exprs.NewComma(p.spanOf(left).Cover(p.spanOf(right)), left, right)
			}
		default:
			var right ast.ExprID
			if right, err = p.parseExpr(nextMinPrec); err == nil {
				op := tokenKindToBinaryOp(opTok.Kind)
				left = p.b.Exprs.NewBinary(p.spanOf(left).Cover(p.spanOf(right)), op, left, right)
			}
		}
		if err != nil {
			return ast.NoExprID, err
		}
	}
}

// parseAssign проверяет цель до разбора правой части: слева допустим только
// идентификатор, возможно в скобках (скобки снимаются).
func (p *Parser) parseAssign(left ast.ExprID, opTok token.Token, nextMinPrec int) (ast.ExprID, error) {
	target := p.b.Exprs.Unparen(left)
	if _, ok := p.b.Exprs.Ident(target); !ok {
		sp := p.spanOf(left)
		e := &Error{
			Kind:  ErrInvalidAssignmentTarget,
			Found: opTok,
			Span:  sp,
			Pos:   p.file.Position(sp.Start),
		}
		p.report(diag.SynInvalidAssignTarget, e)
		return ast.NoExprID, e
	}
	if err := p.enter(); err != nil {
		return ast.NoExprID, err
	}
	defer p.leave()

	value, err := p.parseExpr(nextMinPrec)
	if err != nil {
		return ast.NoExprID, err
	}
	return p.b.Exprs.NewAssign(p.spanOf(left).Cover(p.spanOf(value)), target, value), nil
}

func (p *Parser) parsePrimary() (ast.ExprID, error) {
	in := p.b.Strings.Intern
	switch p.tok.Kind {
	case token.NumberLit:
		tok := p.advance()
		// только десятичные цифры; переполнение даёт +Inf, как в JS
		value, _ := strconv.ParseFloat(tok.Text, 64)
		return p.b.Exprs.NewNumber(tok.Span, value, in(tok.Text)), nil
	case token.StringLit:
		tok := p.advance()
		return p.b.Exprs.NewString(tok.Span, in(tok.StringValue()), in(tok.Text)), nil
	case token.Ident:
		tok := p.advance()
		return p.b.Exprs.NewIdent(tok.Span, in(tok.Text)), nil
	case token.LParen:
		return p.parseParen()
	default:
		return ast.NoExprID, p.unexpected(diag.SynExpectExpression, primaryStarts...)
	}
}

// parseParen: ( Expression ): внутри допускается запятая.
func (p *Parser) parseParen() (ast.ExprID, error) {
	open := p.tok
	if err := p.enter(); err != nil {
		return ast.NoExprID, err
	}
	defer p.leave()
	p.advance()

	inner, err := p.parseExpr(precComma)
	if err != nil {
		return ast.NoExprID, err
	}
	if !p.at(token.RParen) {
		if p.tok.Kind == token.Invalid {
			return ast.NoExprID, p.lexical()
		}
		kind := ErrExpectedToken
		if p.tok.Kind == token.EOF {
			kind = ErrUnexpectedEndOfInput
		}
		e := p.newError(kind, p.tok, token.RParen)
		diag.ReportError(p.opts.Reporter, diag.SynUnclosedParen, e.Span, e.Message()).
			WithNote(open.Span, "unclosed '(' opened here").
			Emit()
		return ast.NoExprID, e
	}
	closeTok := p.advance()
	return p.b.Exprs.NewParen(open.Span.Cover(closeTok.Span), inner), nil
}

// enter/leave считают вложенность скобок и цепочек присваиваний.
func (p *Parser) enter() error {
	if p.depth >= p.opts.MaxDepth {
		e := p.newError(ErrNestingTooDeep, p.tok)
		e.Limit = p.opts.MaxDepth
		p.report(diag.SynNestingTooDeep, e)
		return e
	}
	p.depth++
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) spanOf(id ast.ExprID) source.Span {
	if e := p.b.Exprs.Get(id); e != nil {
		return e.Span
	}
	return source.Span{File: p.file.ID}
}
