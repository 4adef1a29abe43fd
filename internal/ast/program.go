package ast

import "jsslice/internal/source"

// Program is the result of one successful parse. Stmts are in source order.
type Program struct {
	Span     source.Span
	Hashbang string // строка "#!..." без перевода строки, если была
	Stmts    []StmtID
	Builder  *Builder
}

func (p *Program) Len() int {
	return len(p.Stmts)
}

// Stmt returns the i-th top-level statement.
func (p *Program) Stmt(i int) (StmtID, *Stmt) {
	id := p.Stmts[i]
	return id, p.Builder.Stmts.Get(id)
}

// Directives returns the prologue values in order.
func (p *Program) Directives() []string {
	var out []string
	for _, id := range p.Stmts {
		d, ok := p.Builder.Stmts.Directive(id)
		if !ok {
			break
		}
		out = append(out, p.Builder.Str(d.Value))
	}
	return out
}

// LetNames returns declared names in declaration order.
func (p *Program) LetNames() []string {
	var out []string
	for _, id := range p.Stmts {
		if d, ok := p.Builder.Stmts.Let(id); ok {
			out = append(out, p.Builder.Str(d.Name))
		}
	}
	return out
}
