// Package token defines lexical token kinds and trivia for jsslice.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Whitespace and comments are never tokens; they travel as Token.Leading.
//   - The lexer never produces DirectiveLit: a string literal only becomes a
//     directive once the parser sees it in prologue position (Token.AsDirective).
package token
