package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"jsslice/internal/ast"
	"jsslice/internal/diagfmt"
	"jsslice/internal/driver"
	"jsslice/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.js|directory>",
	Short: "Parse a source file or directory and print the AST",
	Long:  `Parse analyzes a JavaScript source file, or every .js/.mjs file in a directory, and prints the resulting AST`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

var parseFormats = map[string]bool{"tree": true, "json": true, "yaml": true, "summary": true, "sexpr": true}

func init() {
	parseCmd.Flags().String("format", "tree", "output format (tree|json|yaml|summary|sexpr)")
	parseCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	parseCmd.Flags().Int("max-depth", 0, "expression nesting limit (0=default)")
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if !parseFormats[format] {
		return fmt.Errorf("unknown format: %s", format)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	maxDepth, err := cmd.Flags().GetInt("max-depth")
	if err != nil {
		return fmt.Errorf("failed to get max-depth flag: %w", err)
	}
	if !cmd.Flags().Changed("max-depth") {
		maxDepth = current.maxDepth
	}
	opts := driver.ParseOptions{
		MaxDiagnostics: current.maxDiagnostics,
		MaxDepth:       maxDepth,
		Timings:        current.timings,
	}

	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	out := cmd.OutOrStdout()

	if !st.IsDir() {
		result, err := driver.Parse(cmd.Context(), path, opts)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		printDiagnostics(result.Bag, result.FileSet)
		if result.Program == nil {
			return errReported
		}
		return writeProgram(out, format, result.File.Path, result.Program, result.FileSet)
	}

	fs, results, err := driver.ParseDir(cmd.Context(), path, opts, jobs)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	failed := 0
	for _, r := range results {
		printDiagnostics(r.Bag, fs)
		if r.Program == nil {
			failed++
			continue
		}
		if format != "summary" {
			fmt.Fprintf(out, "== %s\n", r.File.FormatPath("relative", fs.BaseDir()))
		}
		if err := writeProgram(out, format, r.File.FormatPath("relative", fs.BaseDir()), r.Program, fs); err != nil {
			return err
		}
	}
	if failed > 0 {
		if !current.quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d file(s) failed to parse\n", failed, len(results))
		}
		return errReported
	}
	return nil
}

func writeProgram(w io.Writer, format, path string, prog *ast.Program, fs *source.FileSet) error {
	switch format {
	case "json":
		return diagfmt.FormatASTJSON(w, prog)
	case "yaml":
		return diagfmt.FormatASTYAML(w, prog)
	case "sexpr":
		_, err := fmt.Fprintln(w, prog.SExpr())
		return err
	case "summary":
		return writeProgramSummary(w, path, prog)
	default:
		return diagfmt.FormatASTTree(w, prog, fs)
	}
}

func writeProgramSummary(w io.Writer, path string, prog *ast.Program) error {
	st := ast.CollectStats(prog)
	_, err := fmt.Fprintf(w, "%s: %d statements (%d directive, %d let, %d expr), max depth %d, fingerprint %016x\n",
		path, prog.Len(), st.Directives, st.Lets, st.ExprStmts, st.MaxDepth, ast.Fingerprint(prog))
	return err
}
