package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"jsslice/internal/diag"
	"jsslice/internal/lexer"
	"jsslice/internal/source"
	"jsslice/internal/token"
	"jsslice/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads path and lexes it to EOF. Lexical errors become Invalid
// tokens plus diagnostics; only I/O failures are returned as errors.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  lexAll(file, diag.BagReporter{Bag: bag}),
		Bag:     bag,
	}, nil
}

func lexAll(file *source.File, r diag.Reporter) []token.Token {
	lx := lexer.New(file, lexer.Options{Reporter: r})
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

// CountLetKeywords counts `let` tokens in file without reporting errors.
func CountLetKeywords(file *source.File) int {
	lx := lexer.New(file, lexer.Options{})
	n := 0
	for tok := lx.Next(); tok.Kind != token.EOF; tok = lx.Next() {
		if tok.Kind == token.KwLet {
			n++
		}
	}
	return n
}

// TokenizeDirResult: результат токенизации одного файла.
type TokenizeDirResult struct {
	Path   string
	FileID source.FileID
	Tokens []token.Token
	Bag    *diag.Bag
}

// TokenizeDir lexes every source file under dir in parallel. Results keep
// the sorted file order.
func TokenizeDir(ctx context.Context, dir string, maxDiagnostics, jobs int) (*source.FileSet, []TokenizeDirResult, error) {
	files, err := ListSources([]string{dir}, nil)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}
	loaded := preload(fileSet, files)

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]TokenizeDirResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			span, _ := trace.Start(gctx, trace.ScopeFile, "tokenize:"+path)
			defer span.End("")

			bag := diag.NewBag(maxDiagnostics)
			results[i] = TokenizeDirResult{Path: path, Bag: bag}
			lf := loaded[i]
			results[i].FileID = lf.id
			if lf.err != nil {
				reportLoadError(bag, lf)
				return nil
			}
			results[i].Tokens = lexAll(fileSet.Get(lf.id), diag.BagReporter{Bag: bag})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

type loadedFile struct {
	id  source.FileID
	err error
}

// preload грузит файлы последовательно: FileSet не потокобезопасен на
// запись, а чтение из воркеров уже безопасно. Для нечитаемого файла
// регистрируется пустой виртуальный, чтобы у диагностики был путь.
func preload(fileSet *source.FileSet, files []string) []loadedFile {
	out := make([]loadedFile, len(files))
	for i, path := range files {
		out[i].id, out[i].err = fileSet.Load(path)
		if out[i].err != nil {
			out[i].id = fileSet.AddVirtual(path, nil)
		}
	}
	return out
}

func reportLoadError(bag *diag.Bag, lf loadedFile) {
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: lf.id}, "failed to load file: "+lf.err.Error()))
}
