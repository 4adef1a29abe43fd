package ast

import (
	"jsslice/internal/source"
)

type Hints struct{ Stmts, Exprs uint }

// Builder owns every node of one parse. Nodes refer to each other by ID,
// so a Program and its Builder are dropped together.
type Builder struct {
	Stmts   *Stmts
	Exprs   *Exprs
	Strings *source.Interner
}

// NewBuilder creates arenas sized by hints. A nil strings interner gets
// a private one.
func NewBuilder(hints Hints, strings *source.Interner) *Builder {
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 6
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Stmts:   NewStmts(hints.Stmts),
		Exprs:   NewExprs(hints.Exprs),
		Strings: strings,
	}
}

// HintsFor guesses arena sizes from the source length.
func HintsFor(srcLen int) Hints {
	n := uint(max(srcLen, 0)) // #nosec G115 -- non-negative
	return Hints{Stmts: n/24 + 1, Exprs: n/4 + 1}
}

// Str resolves an interned string; unknown IDs give "".
func (b *Builder) Str(id source.StringID) string {
	s, _ := b.Strings.Lookup(id)
	return s
}
