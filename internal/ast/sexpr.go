package ast

import (
	"strconv"
	"strings"
)

// SExpr renders an expression as a compact s-expression, e.g. "(+ 1 (* 2 3))".
// Literals keep their source spelling.
func (b *Builder) SExpr(id ExprID) string {
	var sb strings.Builder
	b.writeSExpr(&sb, id)
	return sb.String()
}

func (b *Builder) writeSExpr(sb *strings.Builder, id ExprID) {
	expr := b.Exprs.Get(id)
	if expr == nil {
		sb.WriteString("<nil>")
		return
	}
	pair := func(head string, l, r ExprID) {
		sb.WriteString("(" + head + " ")
		b.writeSExpr(sb, l)
		sb.WriteByte(' ')
		b.writeSExpr(sb, r)
		sb.WriteByte(')')
	}
	switch expr.Kind {
	case ExprNumber:
		d, _ := b.Exprs.Number(id)
		sb.WriteString(b.Str(d.Raw))
	case ExprString:
		d, _ := b.Exprs.StringLit(id)
		sb.WriteString(b.Str(d.Raw))
	case ExprIdent:
		d, _ := b.Exprs.Ident(id)
		sb.WriteString(b.Str(d.Name))
	case ExprBinary:
		d, _ := b.Exprs.Binary(id)
		pair(d.Op.String(), d.Left, d.Right)
	case ExprAssign:
		d, _ := b.Exprs.Assign(id)
		pair("=", d.Target, d.Value)
	case ExprComma:
		d, _ := b.Exprs.Comma(id)
		pair(",", d.Left, d.Right)
	case ExprParen:
		d, _ := b.Exprs.Paren(id)
		sb.WriteString("(paren ")
		b.writeSExpr(sb, d.Inner)
		sb.WriteByte(')')
	}
}

// StmtSExpr renders one statement.
func (b *Builder) StmtSExpr(id StmtID) string {
	st := b.Stmts.Get(id)
	if st == nil {
		return "<nil>"
	}
	switch st.Kind {
	case StmtDirective:
		d, _ := b.Stmts.Directive(id)
		return "(directive " + strconv.Quote(b.Str(d.Value)) + ")"
	case StmtLet:
		d, _ := b.Stmts.Let(id)
		return "(let " + b.Str(d.Name) + " " + b.SExpr(d.Init) + ")"
	default:
		return b.SExpr(b.Stmts.Root(id))
	}
}

// SExpr renders every statement, one per line.
func (p *Program) SExpr() string {
	lines := make([]string, len(p.Stmts))
	for i, id := range p.Stmts {
		lines[i] = p.Builder.StmtSExpr(id)
	}
	return strings.Join(lines, "\n")
}
