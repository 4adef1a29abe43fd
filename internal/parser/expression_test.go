package parser

import (
	"math"
	"strings"
	"testing"

	"jsslice/internal/ast"
)

func TestExpressionShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"precedence", "1 + 2 * 3;", "(+ 1 (* 2 3))"},
		{"precedence reversed", "1 * 2 + 3;", "(+ (* 1 2) 3)"},
		{"subtraction left assoc", "a - b - c;", "(- (- a b) c)"},
		{"division left assoc", "a / b / c;", "(/ (/ a b) c)"},
		{"mixed multiplicative", "a * b / c * d;", "(* (/ (* a b) c) d)"},
		{"mixed additive", "a + b - c + d;", "(+ (- (+ a b) c) d)"},
		{"parens override", "(1 + 2) * 3;", "(* (paren (+ 1 2)) 3)"},
		{"comma in parens", "(3 + 4, 7);", "(paren (, (+ 3 4) 7))"},
		{"comma left assoc", "a, b, c;", "(, (, a b) c)"},
		{"comma lowest", "a = 1, b = 2;", "(, (= a 1) (= b 2))"},
		{"comma value assigned in parens", "d = (a, b, c);", "(= d (paren (, (, a b) c)))"},
		{"assignment right assoc", "a = b = c;", "(= a (= b c))"},
		{"assignment binds loosely", "a = b + c * d;", "(= a (+ b (* c d)))"},
		{"parenthesized target", "(a) = 1;", "(= a 1)"},
		{"doubly parenthesized target", "((a)) = 1;", "(= a 1)"},
		{"assignment inside parens", "x + (y = 2);", "(+ x (paren (= y 2)))"},
		{"string concat", `"a" + 'b' + c;`, `(+ (+ "a" 'b') c)`},
		{"nested parens", "((1));", "(paren (paren 1))"},
		{"no constant folding", "2 * 3 - 5;", "(- (* 2 3) 5)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := mustParse(t, tt.input)
			if prog.Len() != 1 {
				t.Fatalf("expected one statement, got %d", prog.Len())
			}
			if got := prog.SExpr(); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPrecedenceStructure(t *testing.T) {
	prog := mustParse(t, "1 + 2 * 3;")
	b := prog.Builder
	root := b.Stmts.Root(prog.Stmts[0])

	add, ok := b.Exprs.Binary(root)
	if !ok || add.Op != ast.OpAdd {
		t.Fatalf("root must be Binary{+}, got %s", b.SExpr(root))
	}
	if one, ok := b.Exprs.Number(add.Left); !ok || one.Value != 1 {
		t.Fatalf("left must be 1")
	}
	mul, ok := b.Exprs.Binary(add.Right)
	if !ok || mul.Op != ast.OpMul {
		t.Fatalf("right must be Binary{*}")
	}
}

func TestAssignmentTargetIsIdent(t *testing.T) {
	prog := mustParse(t, "(total) = total + 1;")
	b := prog.Builder
	as, ok := b.Exprs.Assign(b.Stmts.Root(prog.Stmts[0]))
	if !ok {
		t.Fatal("expected assignment")
	}
	id, ok := b.Exprs.Ident(as.Target)
	if !ok || b.Str(id.Name) != "total" {
		t.Fatalf("target must be the unwrapped identifier")
	}
}

func TestLiteralValues(t *testing.T) {
	big := strings.Repeat("9", 400) // больше math.MaxFloat64
	prog := mustParse(t, `let n = 1234567890; let big = `+big+`; let s = "a\"b"; let q = 'x y';`)
	b := prog.Builder

	num := func(i int) float64 {
		let, _ := b.Stmts.Let(prog.Stmts[i])
		d, ok := b.Exprs.Number(let.Init)
		if !ok {
			t.Fatalf("stmt %d: expected number", i)
		}
		return d.Value
	}
	str := func(i int) (string, string) {
		let, _ := b.Stmts.Let(prog.Stmts[i])
		d, ok := b.Exprs.StringLit(let.Init)
		if !ok {
			t.Fatalf("stmt %d: expected string", i)
		}
		return b.Str(d.Value), b.Str(d.Raw)
	}

	if v := num(0); v != 1234567890 {
		t.Errorf("n = %v", v)
	}
	if v := num(1); !math.IsInf(v, 1) {
		t.Errorf("overflowing literal must be +Inf, got %v", v)
	}
	if v, raw := str(2); v != `a\"b` || raw != `"a\"b"` {
		t.Errorf("s = %q raw %q", v, raw)
	}
	if v, _ := str(3); v != "x y" {
		t.Errorf("q = %q", v)
	}
}

func TestSpans(t *testing.T) {
	src := "let x = (1 + 2) * y;"
	prog := mustParse(t, src)
	b := prog.Builder
	id, st := prog.Stmt(0)
	if st.Span.Start != 0 || st.Span.End != uint32(len(src)) {
		t.Errorf("let span = %s", st.Span)
	}
	let, _ := b.Stmts.Let(id)
	if let.NameSpan.Start != 4 || let.NameSpan.End != 5 {
		t.Errorf("name span = %s", let.NameSpan)
	}
	init := b.Exprs.Get(let.Init)
	if got := src[init.Span.Start:init.Span.End]; got != "(1 + 2) * y" {
		t.Errorf("init span covers %q", got)
	}
}
