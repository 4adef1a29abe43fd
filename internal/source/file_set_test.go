package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("main.js", []byte("let a = 1;"), 0)
	id2 := fs.Add("main.js", []byte("let a = 2;"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}

	latest, ok := fs.GetLatest("main.js")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v; want %d,true", latest, ok, id2)
	}
	// старая версия остаётся доступной
	if got := string(fs.Get(id1).Content); got != "let a = 1;" {
		t.Errorf("old version content = %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Len = %d, want 2", fs.Len())
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []uint32
	}{
		{"empty", "", []uint32{}},
		{"single line", "let a = 1;", []uint32{}},
		{"trailing newline", "a;\n", []uint32{2}},
		{"three lines", "a;\nb;\nc;", []uint32{2, 5}},
		{"blank lines", "\n\n", []uint32{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := NewFileSet()
			f := fs.Get(fs.AddVirtual(tt.name, []byte(tt.content)))
			if f.Flags&FileVirtual == 0 {
				t.Errorf("expected FileVirtual flag")
			}
			if len(f.LineIdx) != len(tt.want) {
				t.Fatalf("LineIdx = %v, want %v", f.LineIdx, tt.want)
			}
			for i := range tt.want {
				if f.LineIdx[i] != tt.want[i] {
					t.Errorf("LineIdx[%d] = %d, want %d", i, f.LineIdx[i], tt.want[i])
				}
			}
		})
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("r.js", []byte("let a = 1;\n// note\nlet b = \"x\";"))

	tests := []struct {
		span       Span
		start, end LineCol
	}{
		{Span{File: id, Start: 0, End: 3}, LineCol{1, 1}, LineCol{1, 4}},
		{Span{File: id, Start: 10, End: 11}, LineCol{1, 11}, LineCol{2, 1}},
		{Span{File: id, Start: 19, End: 22}, LineCol{3, 1}, LineCol{3, 4}},
		{Span{File: id, Start: 27, End: 30}, LineCol{3, 9}, LineCol{3, 12}},
	}
	for _, tt := range tests {
		start, end := fs.Resolve(tt.span)
		if start != tt.start || end != tt.end {
			t.Errorf("Resolve(%s) = %s..%s, want %s..%s", tt.span, start, end, tt.start, tt.end)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("l.js", []byte("first;\nsecond;\n\nfourth;")))

	want := map[uint32]string{0: "", 1: "first;", 2: "second;", 3: "", 4: "fourth;", 5: ""}
	for line, text := range want {
		if got := f.GetLine(line); got != text {
			t.Errorf("GetLine(%d) = %q, want %q", line, got, text)
		}
	}
}

func TestFileText(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("t.js", []byte("let answer = 42;")))
	if got := f.Text(Span{Start: 4, End: 10}); got != "answer" {
		t.Errorf("Text = %q", got)
	}
	if got := f.Text(Span{Start: 13, End: 99}); got != "42;" {
		t.Errorf("clamped Text = %q", got)
	}
}

func TestLoadNormalization(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		raw     []byte
		content string
		flags   FileFlags
	}{
		{"plain.js", []byte("let a = 1;\n"), "let a = 1;\n", 0},
		{"bom.js", []byte("\xEF\xBB\xBFlet a = 1;"), "let a = 1;", FileHadBOM},
		{"crlf.js", []byte("a;\r\nb;\r\n"), "a;\nb;\n", FileNormalizedCRLF},
		{"lone-cr.js", []byte("a;\rb;"), "a;\rb;", 0},
		// e + combining acute → é
		{"nfc.js", []byte("let s = \"e\u0301\";"), "let s = \"\u00e9\";", FileNormalizedNFC},
		{"all.js", []byte("\xEF\xBB\xBF\"e\u0301\";\r\n"), "\"\u00e9\";\n", FileHadBOM | FileNormalizedCRLF | FileNormalizedNFC},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			if err := os.WriteFile(path, tt.raw, 0o600); err != nil {
				t.Fatal(err)
			}
			fs := NewFileSet()
			id, err := fs.Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			f := fs.Get(id)
			if string(f.Content) != tt.content {
				t.Errorf("content = %q, want %q", f.Content, tt.content)
			}
			if f.Flags != tt.flags {
				t.Errorf("flags = %b, want %b", f.Flags, tt.flags)
			}
			if got, ok := fs.GetByPath(path); !ok || got.ID != id {
				t.Errorf("GetByPath did not find loaded file")
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "nope.js")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if fs.Len() != 0 {
		t.Errorf("failed Load must not register a file")
	}
}

func TestFormatPath(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "nested", "deeply", "inside", "the", "tree", "fixture.js")
	f := &File{Path: normalizePath(path)}

	if got := f.FormatPath("basename", ""); got != "fixture.js" {
		t.Errorf("basename = %q", got)
	}
	if got := f.FormatPath("relative", base); got != "nested/deeply/inside/the/tree/fixture.js" {
		t.Errorf("relative = %q", got)
	}
	if got := f.FormatPath("unknown", ""); got != f.Path {
		t.Errorf("unknown mode = %q", got)
	}
	short := &File{Path: "a.js"}
	if got := short.FormatPath("auto", ""); got != "a.js" {
		t.Errorf("auto short = %q", got)
	}
}
