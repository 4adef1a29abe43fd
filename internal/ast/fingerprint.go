package ast

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes the structure of p (what Equal compares). Two programs
// that differ only in whitespace, comments or literal spelling share a
// fingerprint.
func Fingerprint(p *Program) uint64 {
	h := fingerprinter{d: xxhash.New()}
	h.u64(uint64(len(p.Stmts)))
	for _, id := range p.Stmts {
		h.stmt(p.Builder, id)
	}
	return h.d.Sum64()
}

// ExprFingerprint hashes a single expression subtree.
func ExprFingerprint(b *Builder, id ExprID) uint64 {
	h := fingerprinter{d: xxhash.New()}
	h.expr(b, id)
	return h.d.Sum64()
}

type fingerprinter struct {
	d   *xxhash.Digest
	buf [8]byte
}

func (h *fingerprinter) u64(v uint64) {
	binary.LittleEndian.PutUint64(h.buf[:], v)
	_, _ = h.d.Write(h.buf[:])
}

func (h *fingerprinter) tag(v uint8) {
	_, _ = h.d.Write([]byte{v})
}

// str пишет длину перед строкой, чтобы "ab"+"c" != "a"+"bc"
func (h *fingerprinter) str(s string) {
	h.u64(uint64(len(s)))
	_, _ = h.d.WriteString(s)
}

func (h *fingerprinter) stmt(b *Builder, id StmtID) {
	st := b.Stmts.Get(id)
	h.tag(uint8(st.Kind))
	switch st.Kind {
	case StmtDirective:
		d, _ := b.Stmts.Directive(id)
		h.str(b.Str(d.Value))
	case StmtLet:
		d, _ := b.Stmts.Let(id)
		h.str(b.Str(d.Name))
		h.expr(b, d.Init)
	default:
		h.expr(b, b.Stmts.Root(id))
	}
}

func (h *fingerprinter) expr(b *Builder, id ExprID) {
	e := b.Exprs.Get(id)
	if e == nil {
		h.tag(0xff)
		return
	}
	h.tag(uint8(e.Kind))
	switch e.Kind {
	case ExprNumber:
		d, _ := b.Exprs.Number(id)
		h.u64(math.Float64bits(d.Value))
	case ExprString:
		d, _ := b.Exprs.StringLit(id)
		h.str(b.Str(d.Value))
	case ExprIdent:
		d, _ := b.Exprs.Ident(id)
		h.str(b.Str(d.Name))
	case ExprBinary:
		d, _ := b.Exprs.Binary(id)
		h.tag(uint8(d.Op))
	}
	for _, child := range b.Exprs.Children(id) {
		h.expr(b, child)
	}
}
