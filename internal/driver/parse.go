package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"jsslice/internal/ast"
	"jsslice/internal/diag"
	"jsslice/internal/observ"
	"jsslice/internal/parser"
	"jsslice/internal/source"
	"jsslice/internal/trace"
)

type ParseOptions struct {
	MaxDiagnostics int
	MaxDepth       int  // 0: parser.DefaultMaxDepth
	Timings        bool // добавить ObsTimings в Bag
}

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Program *ast.Program // nil, если разбор не удался
	Err     error        // *parser.Error
	Bag     *diag.Bag
	Timing  *observ.Report
}

// Parse loads and parses one file. The returned error is reserved for I/O;
// parse failures land in ParseResult.Err and the Bag.
func Parse(ctx context.Context, path string, opts ParseOptions) (*ParseResult, error) {
	timer := observ.NewTimer()
	fs := source.NewFileSet()

	idx := timer.Begin("load")
	fileID, err := fs.Load(path)
	timer.End(idx, "")
	if err != nil {
		return nil, err
	}
	res := parseLoaded(ctx, fs, fs.Get(fileID), opts, timer)
	return res, nil
}

func parseLoaded(ctx context.Context, fs *source.FileSet, file *source.File, opts ParseOptions, timer *observ.Timer) *ParseResult {
	bag := diag.NewBag(opts.MaxDiagnostics)
	res := &ParseResult{FileSet: fs, File: file, Bag: bag}

	idx := timer.Begin("parse")
	res.Program, res.Err = parser.ParseFile(ctx, file, parser.Options{
		Reporter: diag.BagReporter{Bag: bag},
		MaxDepth: opts.MaxDepth,
	})
	note := ""
	if res.Err != nil {
		note = "failed"
	}
	timer.End(idx, note)

	report := timer.Report()
	res.Timing = &report
	if opts.Timings {
		appendTimingDiagnostic(bag, source.Span{File: file.ID}, timingPayload{Kind: "parse", Path: file.Path, TotalMS: report.TotalMS, Phases: report.Phases})
	}
	return res
}

// ParseDir parses every source file under dir in parallel, sharing one
// FileSet. Each file gets its own interner and builder.
func ParseDir(ctx context.Context, dir string, opts ParseOptions, jobs int) (*source.FileSet, []*ParseResult, error) {
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

	results := make([]*ParseResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			lf := loaded[i]
			file := fileSet.Get(lf.id)
			if lf.err != nil {
				bag := diag.NewBag(opts.MaxDiagnostics)
				reportLoadError(bag, lf)
				results[i] = &ParseResult{FileSet: fileSet, File: file, Bag: bag, Err: lf.err}
				return nil
			}
			span, fctx := trace.Start(gctx, trace.ScopeFile, "file:"+file.Path)
			results[i] = parseLoaded(fctx, fileSet, file, opts, observ.NewTimer())
			span.End("")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
