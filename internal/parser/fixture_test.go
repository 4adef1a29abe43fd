package parser

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"jsslice/internal/ast"
	"jsslice/internal/diag"
	"jsslice/internal/lexer"
	"jsslice/internal/source"
	"jsslice/internal/token"
)

func loadFixture(t *testing.T, name string) *source.File {
	t.Helper()
	fs := source.NewFileSet()
	id, err := fs.Load(filepath.Join("..", "..", "testdata", name))
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return fs.Get(id)
}

func countLetKeywords(t *testing.T, file *source.File) int {
	t.Helper()
	lx := lexer.New(file, lexer.Options{})
	n := 0
	for tok := lx.Next(); tok.Kind != token.EOF; tok = lx.Next() {
		if tok.Kind == token.KwLet {
			n++
		}
	}
	if lx.Err() != nil {
		t.Fatalf("fixture must lex cleanly: %v", lx.Err())
	}
	return n
}

func TestLargerFixture(t *testing.T) {
	file := loadFixture(t, "larger.js")
	bag := diag.NewBag(16)
	prog, err := ParseFile(context.Background(), file, Options{Reporter: diag.BagReporter{Bag: bag}})
	if err != nil {
		t.Fatalf("fixture failed: %v", err)
	}
	if bag.Len() != 0 {
		t.Fatalf("fixture produced diagnostics: %s", diagnosticsSummary(bag))
	}

	stats := ast.CollectStats(prog)
	if lets := countLetKeywords(t, file); stats.Lets != lets || lets != 26 {
		t.Fatalf("let declarations = %d, let keywords = %d, want 26", stats.Lets, lets)
	}
	if stats.Directives != 1 || stats.ExprStmts != 15 || prog.Len() != 42 {
		t.Errorf("stats = %+v, statements = %d", stats, prog.Len())
	}

	names := prog.LetNames()
	if names[0] != "total" || names[len(names)-1] != "z" {
		t.Errorf("let names = %v", names)
	}

	// последний let: z = (1 + 2) * (3 + 4, 7) / (5 - 6) + (7 * 8) - (9 / 10)
	want := "(let z (- (+ (/ (* (paren (+ 1 2)) (paren (, (+ 3 4) 7))) (paren (- 5 6))) (paren (* 7 8))) (paren (/ 9 10))))"
	lastLet := prog.Stmts[prog.Len()-2]
	if got := prog.Builder.StmtSExpr(lastLet); got != want {
		t.Errorf("z:\n got %s\nwant %s", got, want)
	}

	end := prog.Stmts[prog.Len()-1]
	if st := prog.Builder.Stmts.Get(end); st.Kind != ast.StmtExpr {
		t.Errorf("trailing string must be an expression statement, got %v", st.Kind)
	}
}

func TestFixtureIdempotent(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", "larger.js"))
	if err != nil {
		t.Fatal(err)
	}
	a, err := ParseProgram(string(data))
	if err != nil {
		t.Fatal(err)
	}
	b, err := ParseProgram(string(data))
	if err != nil {
		t.Fatal(err)
	}
	if !ast.Equal(a, b) {
		t.Fatal("two parses of the same input differ")
	}
	if ast.Fingerprint(a) != ast.Fingerprint(b) {
		t.Fatal("fingerprints differ between parses")
	}
	if a.SExpr() != b.SExpr() {
		t.Fatal("printed trees differ between parses")
	}
}

func TestFingerprintIgnoresLayout(t *testing.T) {
	a, err := ParseProgram("let a = 1 + 2; // note\na = a * 3;")
	if err != nil {
		t.Fatal(err)
	}
	b, err := ParseProgram("/* header */\nlet   a=1+2;\n\n\ta=a*3;")
	if err != nil {
		t.Fatal(err)
	}
	if !ast.Equal(a, b) || ast.Fingerprint(a) != ast.Fingerprint(b) {
		t.Fatal("layout changes must not affect structure")
	}
	c, err := ParseProgram("let a = (1 + 2); a = a * 3;")
	if err != nil {
		t.Fatal(err)
	}
	if ast.Equal(a, c) || ast.Fingerprint(a) == ast.Fingerprint(c) {
		t.Fatal("added parentheses are structure")
	}
}

func TestPrecedenceFixture(t *testing.T) {
	file := loadFixture(t, "precedence.js")
	prog, err := ParseFile(context.Background(), file, Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := `(directive "use strict")
(directive "use asm")
(let a (+ 1 (* 2 3)))
(let b (- (- a a) a))
(let c (= a (= b 4)))
(let d (paren (, (+ 3 4) 7)))
"not a directive"
(, (, (= d a) b) c)`
	if got := prog.SExpr(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestErrorFixtures(t *testing.T) {
	tests := map[string]ErrorKind{
		"unterminated_string.js": ErrLexical,
		"invalid_target.js":      ErrInvalidAssignmentTarget,
		"float_literal.js":       ErrLexical,
		"let_comma.js":           ErrExpectedToken,
		"unclosed_paren.js":      ErrExpectedToken,
	}
	for name, kind := range tests {
		t.Run(name, func(t *testing.T) {
			file := loadFixture(t, filepath.Join("errors", name))
			_, err := ParseFile(context.Background(), file, Options{})
			pe, ok := err.(*Error)
			if !ok || pe.Kind != kind {
				t.Fatalf("err = %v, want kind %v", err, kind)
			}
		})
	}
}

func TestSharedInterner(t *testing.T) {
	strs := source.NewInterner()
	fs := source.NewFileSet()
	f1 := fs.Get(fs.AddVirtual("a.js", []byte("let total = 1;")))
	f2 := fs.Get(fs.AddVirtual("b.js", []byte("total = 2;")))
	p1, err := ParseFile(context.Background(), f1, Options{Strings: strs})
	if err != nil {
		t.Fatal(err)
	}
	p2, err := ParseFile(context.Background(), f2, Options{Strings: strs})
	if err != nil {
		t.Fatal(err)
	}
	let, _ := p1.Builder.Stmts.Let(p1.Stmts[0])
	as, _ := p2.Builder.Exprs.Assign(p2.Builder.Stmts.Root(p2.Stmts[0]))
	target, _ := p2.Builder.Exprs.Ident(as.Target)
	if let.Name != target.Name {
		t.Errorf("shared interner must give equal IDs for equal names")
	}
}
