package token_test

import (
	"testing"

	"jsslice/internal/source"
	"jsslice/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	for _, k := range []token.Kind{token.NumberLit, token.StringLit, token.DirectiveLit} {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.KwLet, token.Plus, token.LParen, token.EOF} {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestPunctAndKeywordClasses(t *testing.T) {
	for _, k := range token.Kinds() {
		tk := tok(k)
		classes := 0
		for _, b := range []bool{tk.IsLiteral(), tk.IsPunctOrOp(), tk.IsKeyword(), tk.IsIdent()} {
			if b {
				classes++
			}
		}
		switch k {
		case token.Invalid, token.EOF:
			if classes != 0 {
				t.Errorf("%v must not belong to any class", k)
			}
		default:
			if classes != 1 {
				t.Errorf("%v belongs to %d classes, want exactly 1", k, classes)
			}
		}
	}
}

func TestKindStringAndDescribe(t *testing.T) {
	tests := []struct {
		kind     token.Kind
		name     string
		describe string
	}{
		{token.Semicolon, "Semicolon", "';'"},
		{token.KwLet, "KwLet", "'let'"},
		{token.Ident, "Ident", "identifier"},
		{token.NumberLit, "NumberLit", "number"},
		{token.EOF, "EOF", "end of input"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.name {
			t.Errorf("String(%d) = %q, want %q", tt.kind, got, tt.name)
		}
		if got := tt.kind.Describe(); got != tt.describe {
			t.Errorf("Describe(%v) = %q, want %q", tt.kind, got, tt.describe)
		}
	}
	if got := token.Kind(200).String(); got != "Kind(?)" {
		t.Errorf("unknown kind String = %q", got)
	}
}

func TestAsDirective(t *testing.T) {
	str := token.Token{Kind: token.StringLit, Text: `"use strict"`, Span: source.Span{Start: 0, End: 12}}
	dir := str.AsDirective()
	if dir.Kind != token.DirectiveLit || dir.Text != str.Text || dir.Span != str.Span {
		t.Fatalf("AsDirective = %+v", dir)
	}
	if str.Kind != token.StringLit {
		t.Fatalf("AsDirective must not mutate the receiver")
	}
	if got := dir.StringValue(); got != "use strict" {
		t.Errorf("StringValue = %q", got)
	}
	if num := tok(token.NumberLit).AsDirective(); num.Kind != token.NumberLit {
		t.Errorf("non-string retagged to %v", num.Kind)
	}
}
