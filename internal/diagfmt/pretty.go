package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"jsslice/internal/diag"
	"jsslice/internal/source"
)

type palette struct {
	err, warn, info, code, gutter, caret, note, fix *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgCyan),
		fix:    color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.note, p.fix} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид:
//
//	path:line:col: ERROR SYN2012: expected ';', found identifier b
//	   1 | a = 1 b = 2;
//	     |       ^
//
// затем notes и fixes, если включены. Порядок: как в bag (Sort заранее).
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	items := bag.Items()
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
	}
	for i := range items {
		if err := prettyOne(w, &items[i], fs, opts, pal); err != nil {
			return err
		}
	}
	if n := bag.Len() - len(items) + bag.Dropped(); n > 0 {
		if _, err := fmt.Fprintf(w, "... and %d more diagnostic(s)\n", n); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) error {
	var sb strings.Builder
	path := formatPath(fs, d.Primary.File, opts.PathMode)
	pos, ok := resolve(fs, d.Primary)
	if ok {
		fmt.Fprintf(&sb, "%s:%s: ", path, pos)
	} else {
		fmt.Fprintf(&sb, "%s: ", path)
	}
	sb.WriteString(pal.severity(d.Severity).Sprint(d.Severity.String()))
	sb.WriteByte(' ')
	sb.WriteString(pal.code.Sprint(d.Code.ID()))
	sb.WriteString(": " + d.Message + "\n")

	if ok {
		writeSnippet(&sb, fs.Get(d.Primary.File), d.Primary, opts.Context, pal)
	}
	if opts.ShowNotes {
		for _, n := range d.Notes {
			npos, _ := resolve(fs, n.Span)
			fmt.Fprintf(&sb, "  %s %s:%s: %s\n", pal.note.Sprint("note:"),
				formatPath(fs, n.Span.File, opts.PathMode), npos, n.Msg)
		}
	}
	if opts.ShowFixes {
		for _, f := range d.Fixes {
			fmt.Fprintf(&sb, "  %s %s\n", pal.fix.Sprint("fix:"), f.Title)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func resolve(fs *source.FileSet, sp source.Span) (source.LineCol, bool) {
	if fs == nil || int(sp.File) >= fs.Len() {
		return source.LineCol{}, false
	}
	f := fs.Get(sp.File)
	if sp.Start > f.Len() {
		return source.LineCol{}, false
	}
	return f.Position(sp.Start), true
}

// writeSnippet печатает строку со span и подчёркивание ^~~~. Ширина
// считается в колонках терминала, не в байтах.
func writeSnippet(sb *strings.Builder, f *source.File, sp source.Span, ctx int, pal palette) {
	start := f.Position(sp.Start)
	end := f.Position(min(sp.End, f.Len()))
	lines, err := safecast.Conv[uint32](len(f.LineIdx) + 1)
	if err != nil {
		return
	}
	c, err := safecast.Conv[uint32](max(ctx, 0))
	if err != nil {
		c = 0
	}
	first := start.Line - min(c, start.Line-1)
	last := min(start.Line+c, lines)
	gw := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		text := strings.ReplaceAll(f.GetLine(ln), "\t", " ")
		fmt.Fprintf(sb, " %s %s\n", pal.gutter.Sprintf("%*d |", gw, ln), text)
		if ln != start.Line {
			continue
		}
		prefix := text[:min(int(start.Col-1), len(text))]
		width := 1
		if end.Line == start.Line && end.Col > start.Col {
			upto := min(int(end.Col-1), len(text))
			width = max(runewidth.StringWidth(text[len(prefix):upto]), 1)
		} else if end.Line > start.Line {
			width = max(runewidth.StringWidth(text[len(prefix):]), 1)
		}
		marker := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(sb, " %s %s%s\n", pal.gutter.Sprintf("%*s |", gw, ""),
			strings.Repeat(" ", runewidth.StringWidth(prefix)), pal.caret.Sprint(marker))
	}
}
