package ast

import (
	"jsslice/internal/source"
)

type StmtKind uint8

const (
	StmtDirective StmtKind = iota
	StmtLet
	StmtExpr
)

func (k StmtKind) String() string {
	switch k {
	case StmtDirective:
		return "Directive"
	case StmtLet:
		return "Let"
	case StmtExpr:
		return "ExprStmt"
	}
	return "Stmt(?)"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type StmtDirectiveData struct {
	Value source.StringID // "use strict" без кавычек
	Raw   source.StringID
}

type StmtLetData struct {
	Name     source.StringID
	NameSpan source.Span
	Init     ExprID
}

type StmtExprData struct {
	Expr ExprID
}

type Stmts struct {
	Arena      *Arena[Stmt]
	Directives *Arena[StmtDirectiveData]
	Lets       *Arena[StmtLetData]
	Exprs      *Arena[StmtExprData]
}

func NewStmts(capHint uint) *Stmts {
	return &Stmts{
		Arena:      NewArena[Stmt](capHint),
		Directives: NewArena[StmtDirectiveData](2),
		Lets:       NewArena[StmtLetData](capHint),
		Exprs:      NewArena[StmtExprData](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) NewDirective(span source.Span, value, raw source.StringID) StmtID {
	return s.new(StmtDirective, span, s.Directives.Allocate(StmtDirectiveData{Value: value, Raw: raw}))
}

func (s *Stmts) Directive(id StmtID) (*StmtDirectiveData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtDirective {
		return nil, false
	}
	return s.Directives.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewLet(span source.Span, name source.StringID, nameSpan source.Span, init ExprID) StmtID {
	return s.new(StmtLet, span, s.Lets.Allocate(StmtLetData{Name: name, NameSpan: nameSpan, Init: init}))
}

func (s *Stmts) Let(id StmtID) (*StmtLetData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtLet {
		return nil, false
	}
	return s.Lets.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	return s.new(StmtExpr, span, s.Exprs.Allocate(StmtExprData{Expr: expr}))
}

func (s *Stmts) Expr(id StmtID) (*StmtExprData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtExpr {
		return nil, false
	}
	return s.Exprs.Get(uint32(st.Payload)), true
}

// Root returns the top-level expression of a statement, if it has one.
func (s *Stmts) Root(id StmtID) ExprID {
	st := s.Get(id)
	if st == nil {
		return NoExprID
	}
	switch st.Kind {
	case StmtLet:
		return s.Lets.Get(uint32(st.Payload)).Init
	case StmtExpr:
		return s.Exprs.Get(uint32(st.Payload)).Expr
	default:
		return NoExprID
	}
}
