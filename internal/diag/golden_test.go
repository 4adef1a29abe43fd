package diag

import (
	"strings"
	"testing"

	"jsslice/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	userFile := fs.Add("/workspace/testdata/golden/sample.js", []byte("a\nb\n"), 0)
	vendored := fs.Add("/workspace/node_modules/dep/index.js", []byte("x\n"), 0)

	diags := []*Diagnostic{
		{
			Severity: SevError,
			Code:     SynUnexpectedToken,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: userFile, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: vendored, Start: 0, End: 0}, Msg: "skip me"},
				{Span: source.Span{File: userFile, Start: 2, End: 3}, Msg: "note line"},
			},
		},
		{
			Severity: SevWarning,
			Code:     ChkLetCountMismatch,
			Message:  "another",
			Primary:  source.Span{File: userFile, Start: 2, End: 3},
		},
	}

	expected := "error SYN2001 testdata/golden/sample.js:1:1 first line second\n" +
		"note SYN2001 testdata/golden/sample.js:2:1 note line\n" +
		"warning CHK5001 testdata/golden/sample.js:2:1 another"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}

	short := FormatShortDiagnostics(diags, fs, true)
	if want := "note SYN2001 node_modules/dep/index.js:1:1 skip me"; !strings.Contains(short, want) {
		t.Fatalf("short output must keep vendored paths, got:\n%s", short)
	}
}

func TestFormatGoldenDiagnosticsEmpty(t *testing.T) {
	if got := FormatGoldenDiagnostics(nil, source.NewFileSet(), false); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
	fs := source.NewFileSet()
	stray := []*Diagnostic{{Code: SynUnexpectedToken, Primary: source.Span{File: 7}}}
	if got := FormatShortDiagnostics(stray, fs, false); got != "" {
		t.Fatalf("unknown file must be skipped, got %q", got)
	}
}
