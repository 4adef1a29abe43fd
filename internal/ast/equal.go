package ast

// Equal reports whether two programs have the same structure: statement
// kinds, names, literal values and operator shape. Spans, trivia and the
// raw spelling of literals are ignored.
func Equal(a, b *Program) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.Stmts) != len(b.Stmts) {
		return false
	}
	for i := range a.Stmts {
		if !stmtEqual(a.Builder, a.Stmts[i], b.Builder, b.Stmts[i]) {
			return false
		}
	}
	return true
}

func stmtEqual(ab *Builder, a StmtID, bb *Builder, b StmtID) bool {
	sa, sb := ab.Stmts.Get(a), bb.Stmts.Get(b)
	if sa == nil || sb == nil || sa.Kind != sb.Kind {
		return false
	}
	switch sa.Kind {
	case StmtDirective:
		da, _ := ab.Stmts.Directive(a)
		db, _ := bb.Stmts.Directive(b)
		return ab.Str(da.Value) == bb.Str(db.Value)
	case StmtLet:
		da, _ := ab.Stmts.Let(a)
		db, _ := bb.Stmts.Let(b)
		return ab.Str(da.Name) == bb.Str(db.Name) && ExprEqual(ab, da.Init, bb, db.Init)
	default:
		return ExprEqual(ab, ab.Stmts.Root(a), bb, bb.Stmts.Root(b))
	}
}

// ExprEqual compares two expression trees that may live in different builders.
func ExprEqual(ab *Builder, a ExprID, bb *Builder, b ExprID) bool {
	ea, eb := ab.Exprs.Get(a), bb.Exprs.Get(b)
	if ea == nil || eb == nil {
		return ea == nil && eb == nil
	}
	if ea.Kind != eb.Kind {
		return false
	}
	switch ea.Kind {
	case ExprNumber:
		da, _ := ab.Exprs.Number(a)
		db, _ := bb.Exprs.Number(b)
		return da.Value == db.Value
	case ExprString:
		da, _ := ab.Exprs.StringLit(a)
		db, _ := bb.Exprs.StringLit(b)
		return ab.Str(da.Value) == bb.Str(db.Value)
	case ExprIdent:
		da, _ := ab.Exprs.Ident(a)
		db, _ := bb.Exprs.Ident(b)
		return ab.Str(da.Name) == bb.Str(db.Name)
	case ExprBinary:
		da, _ := ab.Exprs.Binary(a)
		db, _ := bb.Exprs.Binary(b)
		if da.Op != db.Op {
			return false
		}
	}
	ca, cb := ab.Exprs.Children(a), bb.Exprs.Children(b)
	if len(ca) != len(cb) {
		return false
	}
	for i := range ca {
		if !ExprEqual(ab, ca[i], bb, cb[i]) {
			return false
		}
	}
	return true
}
