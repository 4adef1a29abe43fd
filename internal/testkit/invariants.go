package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"jsslice/internal/ast"
	"jsslice/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed program:
// 1) the program span points at sf and stays within its content
// 2) statement spans are non-empty, inside the program span and in source order
// 3) every expression span is non-empty and inside its parent's span
// 4) children of one expression appear in source order without overlap
func CheckSpanInvariants(p *ast.Program, sf *source.File) error {
	if p == nil || sf == nil {
		return fmt.Errorf("nil program or file")
	}
	if p.Span.File != sf.ID {
		return fmt.Errorf("program span points to different file id: got=%d want=%d", p.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if p.Span.End > lenContent || p.Span.Start > p.Span.End {
		return fmt.Errorf("program span %v outside content of %d bytes", p.Span, lenContent)
	}

	var prevEnd uint32
	for i, id := range p.Stmts {
		st := p.Builder.Stmts.Get(id)
		if st == nil {
			return fmt.Errorf("nil statement for id=%d", id)
		}
		if err := checkChild(st.Span, p.Span, sf.ID); err != nil {
			return fmt.Errorf("statement %d: %w", i, err)
		}
		if st.Span.Start < prevEnd {
			return fmt.Errorf("statement %d span %v overlaps previous (end %d)", i, st.Span, prevEnd)
		}
		prevEnd = st.Span.End

		if root := p.Builder.Stmts.Root(id); root.IsValid() {
			if err := checkExpr(p.Builder.Exprs, root, st.Span, sf.ID); err != nil {
				return fmt.Errorf("statement %d: %w", i, err)
			}
		}
	}
	return nil
}

func checkExpr(exprs *ast.Exprs, id ast.ExprID, parent source.Span, file source.FileID) error {
	e := exprs.Get(id)
	if e == nil {
		return fmt.Errorf("nil expression for id=%d", id)
	}
	if err := checkChild(e.Span, parent, file); err != nil {
		return fmt.Errorf("%s: %w", e.Kind, err)
	}
	var prevEnd uint32
	for _, child := range exprs.Children(id) {
		if err := checkExpr(exprs, child, e.Span, file); err != nil {
			return err
		}
		sp := exprs.Get(child).Span
		if sp.Start < prevEnd {
			return fmt.Errorf("%s: child span %v overlaps previous sibling (end %d)", e.Kind, sp, prevEnd)
		}
		prevEnd = sp.End
	}
	return nil
}

func checkChild(sp, parent source.Span, file source.FileID) error {
	if sp.End <= sp.Start {
		return fmt.Errorf("empty span: %v", sp)
	}
	if sp.File != file {
		return fmt.Errorf("span file mismatch: got=%d want=%d", sp.File, file)
	}
	if sp.Start < parent.Start || sp.End > parent.End {
		return fmt.Errorf("span %v is outside parent span %v", sp, parent)
	}
	return nil
}
