package ast

// Stats summarises a program for check reports and caches.
type Stats struct {
	Directives int `json:"directives" yaml:"directives" msgpack:"directives"`
	Lets       int `json:"lets" yaml:"lets" msgpack:"lets"`
	ExprStmts  int `json:"expr_stmts" yaml:"expr_stmts" msgpack:"expr_stmts"`

	Numbers  int `json:"numbers" yaml:"numbers" msgpack:"numbers"`
	Strings  int `json:"strings" yaml:"strings" msgpack:"strings"`
	Idents   int `json:"idents" yaml:"idents" msgpack:"idents"`
	Binaries int `json:"binaries" yaml:"binaries" msgpack:"binaries"`
	Assigns  int `json:"assigns" yaml:"assigns" msgpack:"assigns"`
	Parens   int `json:"parens" yaml:"parens" msgpack:"parens"`
	Commas   int `json:"commas" yaml:"commas" msgpack:"commas"`

	// MaxDepth is the deepest expression level below a statement (1 = root).
	MaxDepth int `json:"max_depth" yaml:"max_depth" msgpack:"max_depth"`
}

// Statements returns the total number of top-level statements.
func (s Stats) Statements() int {
	return s.Directives + s.Lets + s.ExprStmts
}

// Expressions returns the total number of expression nodes.
func (s Stats) Expressions() int {
	return s.Numbers + s.Strings + s.Idents + s.Binaries + s.Assigns + s.Parens + s.Commas
}

// CollectStats walks p once.
func CollectStats(p *Program) Stats {
	var st Stats
	Walk(p, func(n Node, depth int) bool {
		if n.IsStmt() {
			switch p.Builder.Stmts.Get(n.Stmt).Kind {
			case StmtDirective:
				st.Directives++
			case StmtLet:
				st.Lets++
			case StmtExpr:
				st.ExprStmts++
			}
			return true
		}
		st.MaxDepth = max(st.MaxDepth, depth)
		switch p.Builder.Exprs.Get(n.Expr).Kind {
		case ExprNumber:
			st.Numbers++
		case ExprString:
			st.Strings++
		case ExprIdent:
			st.Idents++
		case ExprBinary:
			st.Binaries++
		case ExprAssign:
			st.Assigns++
		case ExprParen:
			st.Parens++
		case ExprComma:
			st.Commas++
		}
		return true
	})
	return st
}
