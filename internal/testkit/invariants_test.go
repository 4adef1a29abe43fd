package testkit

import (
	"strings"
	"testing"

	"jsslice/internal/parser"
	"jsslice/internal/source"
)

func parseVirtual(t *testing.T, src string) (*source.File, func() error) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.js", []byte(src)))
	prog, err := parser.ParseFile(t.Context(), file, parser.Options{})
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return file, func() error { return CheckSpanInvariants(prog, file) }
}

func TestSpanInvariantsHold(t *testing.T) {
	sources := []string{
		"",
		`"use strict"; let x = 0;`,
		"let z = (1 + 2) * (3 + 4, 7) / (5 - 6);",
		"a = b = c; a, b, c;",
		"// comment\n1 + 2;\n/* block */ x;",
	}
	for _, src := range sources {
		_, check := parseVirtual(t, src)
		if err := check(); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestSpanInvariantsDetectCorruption(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.js", []byte("1 + 2; x;")))
	prog, err := parser.ParseFile(t.Context(), file, parser.Options{})
	if err != nil {
		t.Fatal(err)
	}

	// второй оператор «наезжает» на первый
	st := prog.Builder.Stmts.Get(prog.Stmts[1])
	st.Span.Start = 2
	err = CheckSpanInvariants(prog, file)
	if err == nil || !strings.Contains(err.Error(), "overlaps previous") {
		t.Fatalf("err = %v", err)
	}

	if err := CheckSpanInvariants(nil, file); err == nil {
		t.Error("nil program accepted")
	}
}

func TestSpanInvariantsOnFixtures(t *testing.T) {
	for _, name := range []string{"larger.js", "precedence.js"} {
		t.Run(name, func(t *testing.T) {
			fs := source.NewFileSet()
			id, err := fs.Load("../../testdata/" + name)
			if err != nil {
				t.Fatal(err)
			}
			file := fs.Get(id)
			prog, err := parser.ParseFile(t.Context(), file, parser.Options{})
			if err != nil {
				t.Fatal(err)
			}
			if err := CheckSpanInvariants(prog, file); err != nil {
				t.Fatal(err)
			}
		})
	}
}
