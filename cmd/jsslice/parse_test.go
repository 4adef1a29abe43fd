package main

import (
	"bytes"
	"regexp"
	"testing"

	"jsslice/internal/parser"
)

func TestWriteProgramSummary(t *testing.T) {
	prog, err := parser.ParseProgram(`"use strict"; let x = 1 + 2 * 3; x = (x, 4);`)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := writeProgram(&buf, "summary", "a.js", prog, nil); err != nil {
		t.Fatal(err)
	}
	re := regexp.MustCompile(`^a\.js: 3 statements \(1 directive, 1 let, 1 expr\), max depth \d+, fingerprint [0-9a-f]{16}\n$`)
	if !re.MatchString(buf.String()) {
		t.Errorf("summary = %q", buf.String())
	}
}

func TestWriteProgramSExpr(t *testing.T) {
	prog, err := parser.ParseProgram("a - b - c;")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := writeProgram(&buf, "sexpr", "a.js", prog, nil); err != nil {
		t.Fatal(err)
	}
	if buf.String() != prog.SExpr()+"\n" {
		t.Errorf("sexpr = %q", buf.String())
	}
}
