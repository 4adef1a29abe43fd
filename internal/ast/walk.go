package ast

// Node points at either a statement or an expression.
type Node struct {
	Stmt StmtID
	Expr ExprID
}

func (n Node) IsStmt() bool { return n.Stmt.IsValid() }

// VisitFunc is called in pre-order. Returning false skips the children.
type VisitFunc func(n Node, depth int) bool

// Walk visits every statement of p and its expression tree in source order.
func Walk(p *Program, fn VisitFunc) {
	for _, id := range p.Stmts {
		if !fn(Node{Stmt: id}, 0) {
			continue
		}
		if root := p.Builder.Stmts.Root(id); root.IsValid() {
			walkExpr(p.Builder.Exprs, root, 1, fn)
		}
	}
}

// WalkExpr visits the subtree rooted at id.
func WalkExpr(b *Builder, id ExprID, fn VisitFunc) {
	walkExpr(b.Exprs, id, 0, fn)
}

func walkExpr(exprs *Exprs, id ExprID, depth int, fn VisitFunc) {
	if !fn(Node{Expr: id}, depth) {
		return
	}
	for _, child := range exprs.Children(id) {
		walkExpr(exprs, child, depth+1, fn)
	}
}
