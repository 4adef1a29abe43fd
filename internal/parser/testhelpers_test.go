package parser

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"jsslice/internal/ast"
	"jsslice/internal/diag"
	"jsslice/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

// parseSource разбирает src через ParseFile, собирая диагностики в Bag.
func parseSource(t *testing.T, src string, opts Options) (*ast.Program, *diag.Bag, error) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.js", []byte(src)))
	bag := diag.NewBag(16)
	opts.Reporter = diag.BagReporter{Bag: bag}
	prog, err := ParseFile(context.Background(), file, opts)
	return prog, bag, err
}

// mustParse требует успешный разбор без диагностик.
func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, bag, err := parseSource(t, src, Options{})
	if err != nil {
		t.Fatalf("parse %q: %v (diags: %s)", src, err, diagnosticsSummary(bag))
	}
	if bag.Len() != 0 {
		t.Fatalf("parse %q: unexpected diagnostics: %s", src, diagnosticsSummary(bag))
	}
	if prog == nil {
		t.Fatalf("parse %q: nil program without error", src)
	}
	return prog
}

// mustFail требует ошибку и возвращает её как *Error.
func mustFail(t *testing.T, src string) (*Error, *diag.Bag) {
	t.Helper()
	prog, bag, err := parseSource(t, src, Options{})
	if err == nil {
		t.Fatalf("parse %q: expected error, got program:\n%s", src, prog.SExpr())
	}
	if prog != nil {
		t.Fatalf("parse %q: partial program escaped alongside error", src)
	}
	pe, ok := err.(*Error)
	if !ok {
		t.Fatalf("parse %q: error %T is not *parser.Error", src, err)
	}
	return pe, bag
}
