package parser

import (
	"context"
	"strconv"

	"jsslice/internal/ast"
	"jsslice/internal/diag"
	"jsslice/internal/lexer"
	"jsslice/internal/source"
	"jsslice/internal/token"
	"jsslice/internal/trace"
)

// DefaultMaxDepth bounds expression nesting when Options.MaxDepth is unset.
const DefaultMaxDepth = 256

type Options struct {
	Reporter diag.Reporter    // может быть nil
	MaxDepth int              // вложенность скобок и цепочек присваиваний
	Strings  *source.Interner // nil: свой interner на вызов
	// MaxTokenLength is forwarded to the lexer.
	MaxTokenLength int
}

// Parser: состояние парсера на один вызов. Не переиспользуется.
type Parser struct {
	lx    *lexer.Lexer
	file  *source.File
	b     *ast.Builder
	opts  Options
	tok   token.Token // текущий токен; lx.Peek() даёт следующий
	prev  source.Span // span последнего съеденного токена
	depth int
}

// ParseProgram parses a complete in-memory source text.
func ParseProgram(src string) (*ast.Program, error) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("<input>", []byte(src)))
	return ParseFile(context.Background(), file, Options{})
}

// ParseFile parses file into a Program. On failure it returns nil and a
// *Error; no partially built tree escapes. The error is also reported to
// opts.Reporter once (lexical errors are reported by the lexer itself).
func ParseFile(ctx context.Context, file *source.File, opts Options) (*ast.Program, error) {
	span, _ := trace.Start(ctx, trace.ScopePass, "parse")
	span.WithExtra("file", file.Path)

	p := newParser(file, opts)
	prog, err := p.parseProgram()
	if err != nil {
		if pe, ok := err.(*Error); ok {
			span.WithExtra("error", pe.Kind.String())
		}
		span.End("failed")
		return nil, err
	}
	span.WithExtra("stmts", strconv.Itoa(len(prog.Stmts)))
	span.End("")
	return prog, nil
}

func newParser(file *source.File, opts Options) *Parser {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	p := &Parser{
		lx: lexer.New(file, lexer.Options{
			Reporter:       opts.Reporter,
			MaxTokenLength: opts.MaxTokenLength,
		}),
		file: file,
		b:    ast.NewBuilder(ast.HintsFor(len(file.Content)), opts.Strings),
		opts: opts,
	}
	p.prev = source.Span{File: file.ID}
	p.tok = p.lx.Next()
	return p
}

// parseProgram: основной цикл, parseStmt до EOF.
func (p *Parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{
		Span:    source.Span{File: p.file.ID, Start: 0, End: p.file.Len()},
		Builder: p.b,
	}
	for _, tv := range p.tok.Leading {
		if tv.Kind == token.TriviaHashbang {
			prog.Hashbang = tv.Text
		}
	}

	inPrologue := true
	for p.tok.Kind != token.EOF {
		id, err := p.parseStmt(&inPrologue)
		if err != nil {
			return nil, err
		}
		prog.Stmts = append(prog.Stmts, id)
	}
	return prog, nil
}
