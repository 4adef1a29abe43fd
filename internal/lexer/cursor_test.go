package lexer

import (
	"testing"

	"jsslice/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("test.js", []byte(content)))
}

func TestCursorSequentialReading(t *testing.T) {
	c := NewCursor(createFile("a\nb"))
	for _, want := range []byte("a\nb") {
		if c.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := c.Bump(); got != want {
			t.Fatalf("Bump = %q, want %q", got, want)
		}
	}
	if !c.EOF() || c.Peek() != 0 || c.Bump() != 0 {
		t.Fatalf("cursor must be exhausted at end")
	}
}

func TestCursorMarkResetSpan(t *testing.T) {
	c := NewCursor(createFile("let abc"))
	c.Advance(4)
	m := c.Mark()
	if n := c.EatWhile(isIdentContinueByte); n != 3 {
		t.Fatalf("EatWhile = %d", n)
	}
	if sp := c.SpanFrom(m); sp.Start != 4 || sp.End != 7 {
		t.Fatalf("SpanFrom = %s", sp)
	}
	c.Reset(m)
	if !c.Eat('a') || c.Eat('z') || c.Off != 5 {
		t.Fatalf("Eat misbehaves, off=%d", c.Off)
	}
	c.Advance(100)
	if c.Off != c.Limit {
		t.Fatalf("Advance must clamp to Limit, off=%d", c.Off)
	}
}

func TestCursorPeek2(t *testing.T) {
	c := NewCursor(createFile("/*"))
	if b0, b1, ok := c.Peek2(); !ok || b0 != '/' || b1 != '*' {
		t.Fatalf("Peek2 = %q %q %v", b0, b1, ok)
	}
	c.Bump()
	if _, _, ok := c.Peek2(); ok {
		t.Fatalf("Peek2 must fail with one byte left")
	}
}
