package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"jsslice/internal/diag"
	"jsslice/internal/diagfmt"
	"jsslice/internal/driver"
	"jsslice/internal/pipeline"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path...]",
	Short: "Parse every source file under the given paths and report failures",
	Long: `Check parses every .js/.mjs file under the given files or directories
(default: [check].paths from jsslice.toml, else the working directory),
prints a per-file summary and exits with status 1 if any file fails.`,
	RunE: runCheck,
}

var checkFormats = map[string]bool{"pretty": true, "short": true, "json": true, "yaml": true}

func init() {
	f := checkCmd.Flags()
	f.Int("jobs", 0, "max parallel workers (0=auto)")
	f.StringArray("exclude", nil, "exclude paths matching this regex (repeatable, lookarounds allowed)")
	f.Bool("cache", false, "reuse summaries of unchanged files")
	f.String("cache-dir", "", "summary cache directory (default: user cache dir)")
	f.String("ui", "auto", "progress UI (auto|on|off)")
	f.String("format", "pretty", "output format (pretty|short|json|yaml)")
	f.Bool("expect-lets", false, "fail files whose let declarations differ from their let keywords")
	f.Int("max-depth", 0, "expression nesting limit (0=default)")
}

// buildCheckOptions merges check flags over the manifest.
func buildCheckOptions(cmd *cobra.Command) (driver.CheckOptions, error) {
	f := cmd.Flags()
	cfg := checkConfig{}
	m := current.manifest
	if m != nil {
		cfg = m.Config.Check
	}
	opts := driver.CheckOptions{
		MaxDiagnostics: current.maxDiagnostics,
		MaxDepth:       current.maxDepth,
	}
	var err error

	if opts.Jobs, err = f.GetInt("jobs"); err != nil {
		return opts, err
	}
	if !f.Changed("jobs") && m.defined("check", "jobs") {
		opts.Jobs = cfg.Jobs
	}
	if f.Changed("max-depth") {
		if opts.MaxDepth, err = f.GetInt("max-depth"); err != nil {
			return opts, err
		}
	}
	if opts.ExpectLets, err = f.GetBool("expect-lets"); err != nil {
		return opts, err
	}
	if !f.Changed("expect-lets") && m.defined("check", "expect_lets") {
		opts.ExpectLets = cfg.ExpectLets
	}

	// exclude из флагов дополняет манифест
	patterns, err := f.GetStringArray("exclude")
	if err != nil {
		return opts, err
	}
	patterns = append(append([]string(nil), cfg.Exclude...), patterns...)
	if opts.Filter, err = driver.NewSourceFilter(patterns); err != nil {
		return opts, err
	}

	useCache, err := f.GetBool("cache")
	if err != nil {
		return opts, err
	}
	if !f.Changed("cache") && m.defined("check", "cache") {
		useCache = cfg.Cache
	}
	if useCache {
		dir, err := f.GetString("cache-dir")
		if err != nil {
			return opts, err
		}
		if dir == "" && m.defined("check", "cache_dir") {
			dir = m.resolvePath(cfg.CacheDir)
		}
		if opts.Cache, err = driver.OpenSummaryCache(dir); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if !checkFormats[format] {
		return fmt.Errorf("unknown format: %s", format)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	opts, err := buildCheckOptions(cmd)
	if err != nil {
		return err
	}
	if current.timings {
		opts.Timings = &pipeline.Timings{}
	}
	roots := checkRoots(args)

	started := time.Now()
	var report *driver.CheckReport
	if format == "pretty" && mode.shouldUseTUI() {
		files, err := driver.ListSources(roots, opts.Filter)
		if err != nil {
			return err
		}
		report, err = runCheckWithUI(cmd.Context(), "jsslice check", files, roots, opts)
		if err != nil {
			return err
		}
	} else {
		report, err = driver.CheckPaths(cmd.Context(), roots, opts)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json", "yaml":
		err = writeCheckStructured(out, format, report)
	case "short":
		err = writeCheckShort(out, report)
	default:
		writeCheckPretty(out, report)
		for i := range report.Files {
			printDiagnostics(report.Files[i].Bag, report.FileSet)
		}
		if !current.quiet {
			writeCheckTotals(cmd.ErrOrStderr(), report)
		}
	}
	if err != nil {
		return err
	}
	if current.timings {
		printStageTimings(cmd.ErrOrStderr(), opts.Timings, time.Since(started))
	}
	if report.Failed() > 0 {
		return driver.ErrChecksFailed
	}
	return nil
}

func displayPath(report *driver.CheckReport, path string) string {
	base := report.FileSet.BaseDir()
	if base != "" {
		if abs, err := filepath.Abs(path); err == nil {
			if rel, err := filepath.Rel(base, abs); err == nil && !strings.HasPrefix(rel, "..") {
				return filepath.ToSlash(rel)
			}
		}
	}
	return filepath.ToSlash(path)
}

func fileStatus(r *driver.FileResult) string {
	switch {
	case r.Failed():
		return "FAIL"
	case r.Cached:
		return "cached"
	default:
		return "ok"
	}
}

func writeCheckPretty(w io.Writer, report *driver.CheckReport) {
	for i := range report.Files {
		r := &report.Files[i]
		line := fmt.Sprintf("%-6s %s", fileStatus(r), displayPath(report, r.Path))
		if s := r.Summary; s != nil {
			line += fmt.Sprintf("  statements=%d lets=%d/%d fp=%s", s.Statements, s.Stats.Lets, s.LetKeywords, s.Fingerprint)
		}
		fmt.Fprintln(w, line)
	}
}

func writeCheckTotals(w io.Writer, report *driver.CheckReport) {
	fmt.Fprintf(w, "checked %d file(s), %d failed in %s (run %s)\n",
		len(report.Files), report.Failed(), report.Elapsed.Round(time.Millisecond), report.RunID)
}

func writeCheckShort(w io.Writer, report *driver.CheckReport) error {
	bag := report.Bag()
	if text := diag.FormatShortDiagnostics(bag.Pointers(), report.FileSet, false); text != "" {
		if _, err := io.WriteString(w, text); err != nil {
			return err
		}
		if !strings.HasSuffix(text, "\n") {
			fmt.Fprintln(w)
		}
	}
	_, err := fmt.Fprintf(w, "%d file(s), %d failed\n", len(report.Files), report.Failed())
	return err
}

type checkFileOutput struct {
	Path    string              `json:"path" yaml:"path"`
	Status  string              `json:"status" yaml:"status"`
	Cached  bool                `json:"cached,omitempty" yaml:"cached,omitempty"`
	Summary *driver.FileSummary `json:"summary,omitempty" yaml:"summary,omitempty"`
}

type checkOutput struct {
	RunID       string                    `json:"run_id" yaml:"run_id"`
	Started     time.Time                 `json:"started" yaml:"started"`
	ElapsedMS   float64                   `json:"elapsed_ms" yaml:"elapsed_ms"`
	Files       []checkFileOutput         `json:"files" yaml:"files"`
	Failed      int                       `json:"failed" yaml:"failed"`
	Diagnostics diagfmt.DiagnosticsOutput `json:"diagnostics" yaml:"diagnostics"`
}

func buildCheckOutput(report *driver.CheckReport) checkOutput {
	out := checkOutput{
		RunID:     report.RunID,
		Started:   report.Started.UTC(),
		ElapsedMS: toMillis(report.Elapsed),
		Files:     make([]checkFileOutput, len(report.Files)),
		Failed:    report.Failed(),
		Diagnostics: diagfmt.BuildDiagnosticsOutput(report.Bag(), report.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			Max:              current.maxDiagnostics,
			IncludeNotes:     true,
			IncludeFixes:     true,
		}),
	}
	for i := range report.Files {
		r := &report.Files[i]
		out.Files[i] = checkFileOutput{
			Path:    displayPath(report, r.Path),
			Status:  strings.ToLower(fileStatus(r)),
			Cached:  r.Cached,
			Summary: r.Summary,
		}
	}
	return out
}

func writeCheckStructured(w io.Writer, format string, report *driver.CheckReport) error {
	payload := buildCheckOutput(report)
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(payload); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
