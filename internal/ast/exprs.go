package ast

import (
	"jsslice/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena    *Arena[Expr]
	Numbers  *Arena[ExprNumberData]
	StrLits  *Arena[ExprStringData]
	Idents   *Arena[ExprIdentData]
	Binaries *Arena[ExprBinaryData]
	Assigns  *Arena[ExprAssignData]
	Parens   *Arena[ExprParenData]
	Commas   *Arena[ExprCommaData]
}

// NewExprs creates per-kind arenas. Payload arenas get a quarter of the
// hint since every expression lands in exactly one of them.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	sub := capHint/4 + 1
	return &Exprs{
		Arena:    NewArena[Expr](capHint),
		Numbers:  NewArena[ExprNumberData](sub),
		StrLits:  NewArena[ExprStringData](sub),
		Idents:   NewArena[ExprIdentData](sub),
		Binaries: NewArena[ExprBinaryData](sub),
		Assigns:  NewArena[ExprAssignData](sub),
		Parens:   NewArena[ExprParenData](sub),
		Commas:   NewArena[ExprCommaData](sub),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) payload(id ExprID, kind ExprKind) (uint32, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != kind {
		return 0, false
	}
	return uint32(expr.Payload), true
}

func (e *Exprs) NewNumber(span source.Span, value float64, raw source.StringID) ExprID {
	return e.new(ExprNumber, span, e.Numbers.Allocate(ExprNumberData{Value: value, Raw: raw}))
}

func (e *Exprs) Number(id ExprID) (*ExprNumberData, bool) {
	p, ok := e.payload(id, ExprNumber)
	if !ok {
		return nil, false
	}
	return e.Numbers.Get(p), true
}

func (e *Exprs) NewString(span source.Span, value, raw source.StringID) ExprID {
	return e.new(ExprString, span, e.StrLits.Allocate(ExprStringData{Value: value, Raw: raw}))
}

func (e *Exprs) StringLit(id ExprID) (*ExprStringData, bool) {
	p, ok := e.payload(id, ExprString)
	if !ok {
		return nil, false
	}
	return e.StrLits.Get(p), true
}

// NewIdent creates a new identifier expression.
func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	return e.new(ExprIdent, span, e.Idents.Allocate(ExprIdentData{Name: name}))
}

// Ident returns the identifier data for the given expression ID.
func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	p, ok := e.payload(id, ExprIdent)
	if !ok {
		return nil, false
	}
	return e.Idents.Get(p), true
}

// NewBinary creates a new binary expression.
func (e *Exprs) NewBinary(span source.Span, op BinaryOp, left, right ExprID) ExprID {
	return e.new(ExprBinary, span, e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right}))
}

// Binary returns the binary data for the given expression ID.
func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	p, ok := e.payload(id, ExprBinary)
	if !ok {
		return nil, false
	}
	return e.Binaries.Get(p), true
}

func (e *Exprs) NewAssign(span source.Span, target, value ExprID) ExprID {
	return e.new(ExprAssign, span, e.Assigns.Allocate(ExprAssignData{Target: target, Value: value}))
}

func (e *Exprs) Assign(id ExprID) (*ExprAssignData, bool) {
	p, ok := e.payload(id, ExprAssign)
	if !ok {
		return nil, false
	}
	return e.Assigns.Get(p), true
}

func (e *Exprs) NewParen(span source.Span, inner ExprID) ExprID {
	return e.new(ExprParen, span, e.Parens.Allocate(ExprParenData{Inner: inner}))
}

func (e *Exprs) Paren(id ExprID) (*ExprParenData, bool) {
	p, ok := e.payload(id, ExprParen)
	if !ok {
		return nil, false
	}
	return e.Parens.Get(p), true
}

func (e *Exprs) NewComma(span source.Span, left, right ExprID) ExprID {
	return e.new(ExprComma, span, e.Commas.Allocate(ExprCommaData{Left: left, Right: right}))
}

func (e *Exprs) Comma(id ExprID) (*ExprCommaData, bool) {
	p, ok := e.payload(id, ExprComma)
	if !ok {
		return nil, false
	}
	return e.Commas.Get(p), true
}

// Children returns the direct sub-expressions of id in source order.
func (e *Exprs) Children(id ExprID) []ExprID {
	expr := e.Get(id)
	if expr == nil {
		return nil
	}
	switch expr.Kind {
	case ExprBinary:
		d := e.Binaries.Get(uint32(expr.Payload))
		return []ExprID{d.Left, d.Right}
	case ExprAssign:
		d := e.Assigns.Get(uint32(expr.Payload))
		return []ExprID{d.Target, d.Value}
	case ExprParen:
		return []ExprID{e.Parens.Get(uint32(expr.Payload)).Inner}
	case ExprComma:
		d := e.Commas.Get(uint32(expr.Payload))
		return []ExprID{d.Left, d.Right}
	default:
		return nil
	}
}

// Unparen strips any number of enclosing parentheses.
func (e *Exprs) Unparen(id ExprID) ExprID {
	for {
		d, ok := e.Paren(id)
		if !ok {
			return id
		}
		id = d.Inner
	}
}
