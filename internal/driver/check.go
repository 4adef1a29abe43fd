package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"jsslice/internal/ast"
	"jsslice/internal/diag"
	"jsslice/internal/observ"
	"jsslice/internal/parser"
	"jsslice/internal/pipeline"
	"jsslice/internal/source"
	"jsslice/internal/trace"
)

type CheckOptions struct {
	Jobs           int // 0: GOMAXPROCS
	MaxDiagnostics int // на файл
	MaxDepth       int
	// ExpectLets fails a file whose let declarations differ from its
	// `let` keyword count.
	ExpectLets bool
	Filter     *SourceFilter
	Cache      *SummaryCache
	Metrics    *observ.Collector
	Progress   pipeline.ProgressSink
	Timings    *pipeline.Timings
}

// FileSummary is the shape of one successfully parsed file.
type FileSummary struct {
	Path        string    `json:"path" yaml:"path" msgpack:"path"`
	Statements  int       `json:"statements" yaml:"statements" msgpack:"statements"`
	LetKeywords int       `json:"let_keywords" yaml:"let_keywords" msgpack:"let_keywords"`
	Fingerprint string    `json:"fingerprint" yaml:"fingerprint" msgpack:"fingerprint"`
	Directives  []string  `json:"directives,omitempty" yaml:"directives,omitempty" msgpack:"directives"`
	Stats       ast.Stats `json:"stats" yaml:"stats" msgpack:"stats"`
}

type FileResult struct {
	Path    string
	FileID  source.FileID
	Summary *FileSummary // nil, если разбор не удался
	Bag     *diag.Bag
	Err     error
	Cached  bool
	Elapsed time.Duration
}

// Failed reports whether the file produced an error diagnostic.
func (r *FileResult) Failed() bool {
	return r.Err != nil || r.Bag.HasErrors()
}

type CheckReport struct {
	RunID   string
	Started time.Time
	Elapsed time.Duration
	FileSet *source.FileSet
	Files   []FileResult
}

// Failed counts files with errors.
func (r *CheckReport) Failed() int {
	n := 0
	for i := range r.Files {
		if r.Files[i].Failed() {
			n++
		}
	}
	return n
}

// Bag merges per-file diagnostics into one sorted bag.
func (r *CheckReport) Bag() *diag.Bag {
	out := diag.NewBag(0)
	for i := range r.Files {
		out.Merge(r.Files[i].Bag)
	}
	out.Sort()
	return out
}

// Summaries returns summaries of successful files in file order.
func (r *CheckReport) Summaries() []FileSummary {
	var out []FileSummary
	for i := range r.Files {
		if s := r.Files[i].Summary; s != nil {
			out = append(out, *s)
		}
	}
	return out
}

// ErrChecksFailed is returned by callers that turn a report into an exit
// status.
var ErrChecksFailed = errors.New("check failed")

// CheckPaths parses every source file under roots and summarises it. The
// returned error covers listing failures and cancellation; per-file
// problems are in the report.
func CheckPaths(ctx context.Context, roots []string, opts CheckOptions) (*CheckReport, error) {
	report := &CheckReport{RunID: uuid.NewString(), Started: time.Now()}
	span, ctx := trace.Start(ctx, trace.ScopeDriver, "check")
	span.WithExtra("run_id", report.RunID)
	defer func() {
		report.Elapsed = time.Since(report.Started)
		span.WithExtra("files", strconv.Itoa(len(report.Files)))
		span.End("")
		opts.Metrics.RecordRun(time.Now())
	}()

	files, err := ListSources(roots, opts.Filter)
	if err != nil {
		return nil, err
	}
	report.FileSet = source.NewFileSetWithBase(baseDirFor(roots))
	report.Files = make([]FileResult, len(files))
	if len(files) == 0 {
		return report, nil
	}
	pipeline.EmitQueued(opts.Progress, files)

	loadStart := time.Now()
	loaded := preload(report.FileSet, files)
	opts.Timings.Add(pipeline.StageLoad, time.Since(loadStart))

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report.Files[i] = checkFile(gctx, report.FileSet, path, loaded[i], opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}
	return report, nil
}

func checkFile(ctx context.Context, fs *source.FileSet, path string, lf loadedFile, opts CheckOptions) FileResult {
	start := time.Now()
	res := FileResult{Path: path, FileID: lf.id, Bag: diag.NewBag(opts.MaxDiagnostics)}
	span, ctx := trace.Start(ctx, trace.ScopeFile, "file:"+path)

	finish := func(status pipeline.Status, stage pipeline.Stage, metric string) FileResult {
		res.Elapsed = time.Since(start)
		span.End(string(status))
		opts.Metrics.RecordFile(metric, res.Elapsed)
		pipeline.Emit(opts.Progress, pipeline.Event{File: path, Stage: stage, Status: status, Err: res.Err, Elapsed: res.Elapsed})
		return res
	}

	if lf.err != nil {
		res.Err = lf.err
		reportLoadError(res.Bag, lf)
		return finish(pipeline.StatusError, pipeline.StageLoad, observ.ResultIOError)
	}
	file := fs.Get(lf.id)

	var key string
	if opts.Cache != nil {
		key = CacheKey(file.Hash, opts.MaxDepth)
		cached, ok, err := opts.Cache.Get(key)
		opts.Metrics.RecordCache(ok)
		// битая запись кэша: просто промах
		if err == nil && ok {
			cached.Path = path
			res.Summary, res.Cached = cached, true
			if opts.ExpectLets && cached.Stats.Lets != cached.LetKeywords {
				reportLetMismatch(res.Bag, file, cached.Stats.Lets, cached.LetKeywords)
				return finish(pipeline.StatusError, pipeline.StageCheck, observ.ResultCheckFail)
			}
			return finish(pipeline.StatusCached, pipeline.StageCheck, observ.ResultOK)
		}
	}

	pipeline.Emit(opts.Progress, pipeline.Event{File: path, Stage: pipeline.StageLex, Status: pipeline.StatusWorking})
	lexStart := time.Now()
	letKeywords := CountLetKeywords(file)
	opts.Timings.Add(pipeline.StageLex, time.Since(lexStart))

	pipeline.Emit(opts.Progress, pipeline.Event{File: path, Stage: pipeline.StageParse, Status: pipeline.StatusWorking})
	parseStart := time.Now()
	counter := &diag.CountingReporter{Next: diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag})}
	prog, err := parser.ParseFile(ctx, file, parser.Options{
		Reporter: counter,
		MaxDepth: opts.MaxDepth,
	})
	opts.Timings.Add(pipeline.StageParse, time.Since(parseStart))
	span.WithExtra("diagnostics", strconv.Itoa(counter.Total))
	if err != nil {
		res.Err = err
		metric := observ.ResultSyntax
		if errors.Is(err, parser.ErrLexical) {
			metric = observ.ResultLexError
		}
		return finish(pipeline.StatusError, pipeline.StageParse, metric)
	}

	stats := ast.CollectStats(prog)
	opts.Metrics.RecordStatements(stats.Directives, stats.Lets, stats.ExprStmts)
	res.Summary = &FileSummary{
		Path:        path,
		Statements:  prog.Len(),
		LetKeywords: letKeywords,
		Fingerprint: fmt.Sprintf("%016x", ast.Fingerprint(prog)),
		Directives:  prog.Directives(),
		Stats:       stats,
	}
	if opts.Cache != nil {
		// ошибка записи кэша не делает файл неуспешным
		_ = opts.Cache.Put(key, res.Summary)
	}

	checkStart := time.Now()
	defer func() { opts.Timings.Add(pipeline.StageCheck, time.Since(checkStart)) }()
	if opts.ExpectLets && stats.Lets != letKeywords {
		reportLetMismatch(res.Bag, file, stats.Lets, letKeywords)
		return finish(pipeline.StatusError, pipeline.StageCheck, observ.ResultCheckFail)
	}
	return finish(pipeline.StatusDone, pipeline.StageCheck, observ.ResultOK)
}

func reportLetMismatch(bag *diag.Bag, file *source.File, lets, keywords int) {
	bag.Add(diag.NewError(diag.ChkLetCountMismatch, source.Span{File: file.ID},
		fmt.Sprintf("%d let declarations parsed, but the source has %d `let` keywords", lets, keywords)))
}
