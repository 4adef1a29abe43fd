package diag

import (
	"cmp"
	"fmt"
	"path"
	"slices"
	"strings"

	"jsslice/internal/source"
)

// line is one rendered row: "<sev> <code> <path>:<line>:<col> <msg>".
type line struct {
	sev  string
	code string
	path string
	pos  source.LineCol
	msg  string
}

func (l line) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.sev, l.code, l.path, l.pos.Line, l.pos.Col, l.msg)
}

func compareLines(a, b line) int {
	return cmp.Or(
		cmp.Compare(a.path, b.path),
		cmp.Compare(a.pos.Line, b.pos.Line),
		cmp.Compare(a.pos.Col, b.pos.Col),
		cmp.Compare(a.sev, b.sev),
		cmp.Compare(a.code, b.code),
		cmp.Compare(a.msg, b.msg),
	)
}

// FormatGoldenDiagnostics renders diagnostics one per line for golden files.
// Entries under node_modules are dropped; the rest are sorted deterministically.
func FormatGoldenDiagnostics(diags []*Diagnostic, fs *source.FileSet, includeNotes bool) string {
	return renderLines(diags, fs, includeNotes, func(p string) bool {
		return !underNodeModules(p)
	})
}

// FormatShortDiagnostics is the same format without path filtering; used by
// `check --format short`.
func FormatShortDiagnostics(diags []*Diagnostic, fs *source.FileSet, includeNotes bool) string {
	return renderLines(diags, fs, includeNotes, nil)
}

func renderLines(diags []*Diagnostic, fs *source.FileSet, includeNotes bool, keep func(string) bool) string {
	if fs == nil {
		return ""
	}
	var rows []line
	add := func(sev string, code Code, sp source.Span, msg string) {
		if int(sp.File) >= fs.Len() {
			return
		}
		f := fs.Get(sp.File)
		p := strings.TrimPrefix(path.Clean(f.FormatPath("relative", fs.BaseDir())), "./")
		if keep != nil && !keep(p) {
			return
		}
		rows = append(rows, line{sev: sev, code: code.ID(), path: p, pos: f.Position(sp.Start), msg: oneLine(msg)})
	}
	for _, d := range diags {
		add(d.Severity.Label(), d.Code, d.Primary, d.Message)
		if includeNotes {
			for _, n := range d.Notes {
				add("note", d.Code, n.Span, n.Msg)
			}
		}
	}
	slices.SortStableFunc(rows, compareLines)

	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.String()
	}
	return strings.Join(out, "\n")
}

func underNodeModules(p string) bool {
	p = strings.TrimLeft(p, "/")
	return strings.HasPrefix(p, "node_modules/") || strings.Contains(p, "/node_modules/")
}

// oneLine склеивает многострочное сообщение в одну строку.
func oneLine(msg string) string {
	return strings.TrimSpace(strings.Join(strings.FieldsFunc(msg, func(r rune) bool {
		return r == '\n' || r == '\r'
	}), " "))
}
