package lexer_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"jsslice/internal/diag"
	"jsslice/internal/lexer"
	"jsslice/internal/source"
	"jsslice/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
		Fixes:    fixes,
	})
}

func (r *testReporter) codes() []diag.Code {
	out := make([]diag.Code, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		out = append(out, d.Code)
	}
	return out
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.js", []byte(input)))
	reporter := &testReporter{}
	return lexer.New(file, lexer.Options{Reporter: reporter}), reporter
}

// collectAllTokens собирает все токены до EOF включительно
func collectAllTokens(lx *lexer.Lexer) []token.Token {
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

func expectTokens(t *testing.T, input string, expected ...token.Kind) []token.Token {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	tokens := collectAllTokens(lx)
	tokens = tokens[:len(tokens)-1]

	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d\ninput: %q\ntokens: %s\ndiags: %v",
			len(expected), len(tokens), input, tokensToString(tokens), reporter.codes())
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("token %d: expected %v, got %v (text %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
	return tokens
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func TestStatementTokens(t *testing.T) {
	toks := expectTokens(t, `"use strict"; let x = (a + 12) * b - c / 3, y;`,
		token.StringLit, token.Semicolon,
		token.KwLet, token.Ident, token.Assign,
		token.LParen, token.Ident, token.Plus, token.NumberLit, token.RParen,
		token.Star, token.Ident, token.Minus, token.Ident, token.Slash, token.NumberLit,
		token.Comma, token.Ident, token.Semicolon,
	)
	if toks[0].Text != `"use strict"` || toks[8].Text != "12" || toks[3].Text != "x" {
		t.Errorf("unexpected texts: %s", tokensToString(toks))
	}
}

func TestIdentifiers(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"foo", token.Ident},
		{"_private", token.Ident},
		{"$el", token.Ident},
		{"a1_$", token.Ident},
		{"let", token.KwLet},
		{"letter", token.Ident},
		{"Let", token.Ident},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks := expectTokens(t, tt.input, tt.kind)
			if toks[0].Text != tt.input {
				t.Errorf("text = %q", toks[0].Text)
			}
		})
	}
}

func TestNumbers(t *testing.T) {
	toks := expectTokens(t, "0 7 1234567890", token.NumberLit, token.NumberLit, token.NumberLit)
	if toks[2].Text != "1234567890" {
		t.Errorf("text = %q", toks[2].Text)
	}
	// "1+2": знак не часть литерала
	expectTokens(t, "1+2", token.NumberLit, token.Plus, token.NumberLit)
}

func TestUnsupportedNumbers(t *testing.T) {
	tests := []struct {
		input string
		text  string
	}{
		{"1.5", "1.5"},
		{"1.", "1."},
		{"1e3", "1e3"},
		{"2E-7", "2E-7"},
		{"0x10", "0x10"},
		{"10n", "10n"},
		{"1_000", "1_000"},
		{"3abc", "3abc"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lx, reporter := makeTestLexer(tt.input + ";")
			tok := lx.Next()
			if tok.Kind != token.Invalid || tok.Text != tt.text {
				t.Fatalf("got %v(%q), want Invalid(%q)", tok.Kind, tok.Text, tt.text)
			}
			if !errors.Is(lx.Err(), lexer.ErrUnsupportedLiteral) {
				t.Fatalf("Err = %v", lx.Err())
			}
			if next := lx.Next(); next.Kind != token.Semicolon {
				t.Errorf("lexing must resume after the literal, got %v", next.Kind)
			}
			if codes := reporter.codes(); len(codes) != 1 || codes[0] != diag.LexBadNumber {
				t.Errorf("diagnostics = %v", codes)
			}
		})
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		text  string
	}{
		{"double", `"abc"`, `"abc"`},
		{"single", `'abc'`, `'abc'`},
		{"empty", `""`, `""`},
		{"escaped quote", `"a\"b"`, `"a\"b"`},
		{"escaped backslash", `"a\\"`, `"a\\"`},
		{"other quote inside", `"it's"`, `"it's"`},
		{"raw newline", "\"a\nb\"", "\"a\nb\""},
		{"comment marker", `"// not a comment"`, `"// not a comment"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := expectTokens(t, tt.input, token.StringLit)
			if toks[0].Text != tt.text {
				t.Errorf("text = %q, want %q", toks[0].Text, tt.text)
			}
		})
	}
}

func TestUnterminatedString(t *testing.T) {
	lx, reporter := makeTestLexer("let s = \"abc;")
	toks := collectAllTokens(lx)
	kinds := []token.Kind{token.KwLet, token.Ident, token.Assign, token.Invalid, token.EOF}
	if len(toks) != len(kinds) {
		t.Fatalf("tokens: %s", tokensToString(toks))
	}
	for i, k := range kinds {
		if toks[i].Kind != k {
			t.Errorf("token %d = %v, want %v", i, toks[i].Kind, k)
		}
	}

	var lexErr *lexer.Error
	if !errors.As(lx.Err(), &lexErr) {
		t.Fatalf("Err = %v, want *lexer.Error", lx.Err())
	}
	if lexErr.Kind != lexer.ErrUnterminatedString {
		t.Fatalf("kind = %v", lexErr.Kind)
	}
	if lexErr.Pos != (source.LineCol{Line: 1, Col: 9}) || lexErr.Span.Start != 8 || lexErr.Span.End != 9 {
		t.Errorf("error position = %s span %s, want 1:9 at opening quote", lexErr.Pos, lexErr.Span)
	}
	if got := lexErr.Error(); got != "1:9: unterminated string literal" {
		t.Errorf("Error() = %q", got)
	}
	if codes := reporter.codes(); len(codes) != 1 || codes[0] != diag.LexUnterminatedString {
		t.Errorf("diagnostics = %v", codes)
	}
}

func TestUnterminatedStringOnLaterLine(t *testing.T) {
	lx, _ := makeTestLexer("let a = 1;\n\nlet s = 'x\ny;")
	collectAllTokens(lx)
	var lexErr *lexer.Error
	if !errors.As(lx.Err(), &lexErr) || lexErr.Pos.Line != 3 || lexErr.Pos.Col != 9 {
		t.Fatalf("Err = %v, want unterminated string at 3:9", lx.Err())
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	tests := []struct {
		name  string
		input string
		char  rune
		pos   source.LineCol
		width uint32
	}{
		{"hash", "let a = 1 # 2;", '#', source.LineCol{Line: 1, Col: 11}, 1},
		{"brace", "x;\n  {", '{', source.LineCol{Line: 2, Col: 3}, 1},
		{"non-ascii", "let é = 1;", 'é', source.LineCol{Line: 1, Col: 5}, 2},
		{"euro", "€", '€', source.LineCol{Line: 1, Col: 1}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, reporter := makeTestLexer(tt.input)
			var bad token.Token
			for _, tok := range collectAllTokens(lx) {
				if tok.Kind == token.Invalid {
					bad = tok
					break
				}
			}
			if bad.Span.Len() != tt.width {
				t.Errorf("invalid token width = %d, want %d", bad.Span.Len(), tt.width)
			}
			var lexErr *lexer.Error
			if !errors.As(lx.Err(), &lexErr) {
				t.Fatalf("Err = %v", lx.Err())
			}
			if lexErr.Kind != lexer.ErrUnexpectedCharacter || lexErr.Char != tt.char || lexErr.Pos != tt.pos {
				t.Errorf("error = %+v, want char %q at %s", lexErr, tt.char, tt.pos)
			}
			if !errors.Is(lx.Err(), lexer.ErrUnexpectedCharacter) {
				t.Errorf("errors.Is must match the kind sentinel")
			}
			if codes := reporter.codes(); len(codes) != 1 || codes[0] != diag.LexUnknownChar {
				t.Errorf("diagnostics = %v", codes)
			}
		})
	}
}

func TestErrKeepsFirstAndLexingContinues(t *testing.T) {
	lx, reporter := makeTestLexer("a @ b # c;")
	toks := collectAllTokens(lx)
	if len(toks) != 7 {
		t.Fatalf("tokens: %s", tokensToString(toks))
	}
	var lexErr *lexer.Error
	if !errors.As(lx.Err(), &lexErr) || lexErr.Char != '@' {
		t.Fatalf("first error = %v, want '@'", lx.Err())
	}
	if len(reporter.diagnostics) != 2 {
		t.Errorf("expected both characters reported, got %d", len(reporter.diagnostics))
	}
}

func TestCompoundOperatorsSplit(t *testing.T) {
	expectTokens(t, "a == b += c", token.Ident, token.Assign, token.Assign, token.Ident, token.Plus, token.Assign, token.Ident)
}

func TestEOFIsIdempotent(t *testing.T) {
	for _, input := range []string{"", "   ", "x", "// only a comment"} {
		lx, _ := makeTestLexer(input)
		collectAllTokens(lx)
		for i := range 3 {
			if tok := lx.Next(); tok.Kind != token.EOF {
				t.Fatalf("%q: call %d after EOF returned %v", input, i, tok.Kind)
			}
			if tok := lx.Peek(); tok.Kind != token.EOF {
				t.Fatalf("%q: Peek after EOF returned %v", input, tok.Kind)
			}
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("let x;")
	if p := lx.Peek(); p.Kind != token.KwLet {
		t.Fatalf("Peek = %v", p.Kind)
	}
	if p := lx.Peek(); p.Kind != token.KwLet {
		t.Fatalf("second Peek = %v", p.Kind)
	}
	if n := lx.Next(); n.Kind != token.KwLet {
		t.Fatalf("Next after Peek = %v", n.Kind)
	}
	if n := lx.Next(); n.Kind != token.Ident || n.Text != "x" {
		t.Fatalf("Next = %v(%q)", n.Kind, n.Text)
	}
}

func TestPositionsAcrossComments(t *testing.T) {
	input := "// header\n/* block\n   comment */ let a = 1;\n\t// trailing\nb = a;"
	lx, reporter := makeTestLexer(input)
	toks := collectAllTokens(lx)
	if len(reporter.diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics %v", reporter.codes())
	}
	want := map[string]source.LineCol{
		"let": {Line: 3, Col: 15},
		"a":   {Line: 3, Col: 19},
		"1":   {Line: 3, Col: 23},
		"b":   {Line: 5, Col: 1},
	}
	for _, tok := range toks {
		if pos, ok := want[tok.Text]; ok {
			if tok.Pos != pos {
				t.Errorf("%q at %s, want %s", tok.Text, tok.Pos, pos)
			}
			delete(want, tok.Text)
		}
	}
	if len(want) != 0 {
		t.Errorf("tokens not seen: %v", want)
	}

	leading := toks[0].Leading
	kinds := []token.TriviaKind{token.TriviaLineComment, token.TriviaNewline, token.TriviaBlockComment, token.TriviaSpace}
	if len(leading) != len(kinds) {
		t.Fatalf("leading trivia of 'let' = %+v", leading)
	}
	for i, k := range kinds {
		if leading[i].Kind != k {
			t.Errorf("trivia %d = %v, want %v", i, leading[i].Kind, k)
		}
	}
	if leading[0].Text != "// header" {
		t.Errorf("comment text = %q", leading[0].Text)
	}
}

func TestCommentAtEndOfInput(t *testing.T) {
	lx, _ := makeTestLexer("x; // no newline")
	toks := collectAllTokens(lx)
	eof := toks[len(toks)-1]
	if len(toks) != 3 || eof.Kind != token.EOF {
		t.Fatalf("tokens: %s", tokensToString(toks))
	}
	if len(eof.Leading) != 2 || eof.Leading[1].Kind != token.TriviaLineComment {
		t.Errorf("trailing comment must be kept on EOF, got %+v", eof.Leading)
	}
}

func TestWhitespaceVariants(t *testing.T) {
	expectTokens(t, "a\r\n\tb\v\fc", token.Ident, token.Ident, token.Ident)
}

func TestHashbang(t *testing.T) {
	toks := expectTokens(t, "#!/usr/bin/env node\nlet a = 1;", token.KwLet, token.Ident, token.Assign, token.NumberLit, token.Semicolon)
	if toks[0].Leading[0].Kind != token.TriviaHashbang || toks[0].Pos.Line != 2 {
		t.Errorf("hashbang not skipped as trivia: %+v", toks[0].Leading)
	}

	// не в начале файла это обычная ошибка
	lx, _ := makeTestLexer("x;\n#!bad")
	collectAllTokens(lx)
	if !errors.Is(lx.Err(), lexer.ErrUnexpectedCharacter) {
		t.Errorf("hashbang after offset 0 must fail, Err = %v", lx.Err())
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	lx, reporter := makeTestLexer("a; /* never closed")
	toks := collectAllTokens(lx)
	if len(toks) != 4 || toks[2].Kind != token.Invalid {
		t.Fatalf("tokens: %s", tokensToString(toks))
	}
	var lexErr *lexer.Error
	if !errors.As(lx.Err(), &lexErr) || lexErr.Kind != lexer.ErrUnterminatedComment {
		t.Fatalf("Err = %v", lx.Err())
	}
	if lexErr.Span.Start != 3 || lexErr.Span.Len() != 2 {
		t.Errorf("error span = %s, want the opening /*", lexErr.Span)
	}
	if codes := reporter.codes(); len(codes) != 1 || codes[0] != diag.LexUnterminatedBlockComment {
		t.Errorf("diagnostics = %v", codes)
	}
}

func TestSlashIsDivisionWhenNotComment(t *testing.T) {
	expectTokens(t, "a / b /c", token.Ident, token.Slash, token.Ident, token.Slash, token.Ident)
}

func TestNoReporterStillTracksErr(t *testing.T) {
	fs := source.NewFileSet()
	lx := lexer.New(fs.Get(fs.AddVirtual("nil.js", []byte("?"))), lexer.Options{})
	if tok := lx.Next(); tok.Kind != token.Invalid {
		t.Fatalf("got %v", tok.Kind)
	}
	if lx.Err() == nil {
		t.Fatal("Err must be set without a reporter")
	}
}
