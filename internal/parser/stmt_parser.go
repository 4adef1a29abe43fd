package parser

import (
	"jsslice/internal/ast"
	"jsslice/internal/diag"
	"jsslice/internal/token"
)

// parseStmt выбирает вид инструкции по текущему токену. Пролог директив
// длится, пока идут строковые литералы, за которыми сразу стоит ';'.
func (p *Parser) parseStmt(inPrologue *bool) (ast.StmtID, error) {
	switch {
	case *inPrologue && p.at(token.StringLit) && p.lx.Peek().Kind == token.Semicolon:
		return p.parseDirective()
	case p.at(token.KwLet):
		*inPrologue = false
		return p.parseLet()
	default:
		*inPrologue = false
		return p.parseExprStmt()
	}
}

func (p *Parser) parseDirective() (ast.StmtID, error) {
	lit := p.advance().AsDirective()
	semi := p.advance()
	in := p.b.Strings.Intern
	return p.b.Stmts.NewDirective(lit.Span.Cover(semi.Span), in(lit.StringValue()), in(lit.Text)), nil
}

// parseLet: let Ident = AssignmentExpr ;
// Инициализатор разбирается на уровне присваивания: запятая верхнего
// уровня в него не входит.
func (p *Parser) parseLet() (ast.StmtID, error) {
	kw := p.advance()
	name, err := p.expect(token.Ident, diag.SynExpectIdentifier)
	if err != nil {
		return ast.NoStmtID, err
	}
	if _, err = p.expect(token.Assign, diag.SynExpectAssign); err != nil {
		return ast.NoStmtID, err
	}
	init, err := p.parseExpr(precAssignment)
	if err != nil {
		return ast.NoStmtID, err
	}
	semi, err := p.expectSemicolon()
	if err != nil {
		return ast.NoStmtID, err
	}
	return p.b.Stmts.NewLet(kw.Span.Cover(semi.Span), p.b.Strings.Intern(name.Text), name.Span, init), nil
}

func (p *Parser) parseExprStmt() (ast.StmtID, error) {
	expr, err := p.parseExpr(precComma)
	if err != nil {
		return ast.NoStmtID, err
	}
	semi, err := p.expectSemicolon()
	if err != nil {
		return ast.NoStmtID, err
	}
	return p.b.Stmts.NewExpr(p.spanOf(expr).Cover(semi.Span), expr), nil
}
