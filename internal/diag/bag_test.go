package diag

import (
	"testing"

	"jsslice/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := range 3 {
		ok := b.Add(NewError(SynUnexpectedToken, source.Span{Start: uint32(i)}, "x"))
		if want := i < 2; ok != want {
			t.Errorf("Add #%d = %v, want %v", i, ok, want)
		}
	}
	if b.Len() != 2 || b.Dropped() != 1 {
		t.Fatalf("Len=%d Dropped=%d", b.Len(), b.Dropped())
	}

	unbounded := NewBag(0)
	for range 100 {
		unbounded.Add(New(SevInfo, ObsTimings, source.Span{}, "t"))
	}
	if unbounded.Len() != 100 || unbounded.HasWarnings() {
		t.Fatalf("unbounded bag misbehaves: len=%d", unbounded.Len())
	}
}

func TestBagSortDedupMerge(t *testing.T) {
	b := NewBag(10)
	b.Add(NewError(SynExpectSemicolon, source.Span{File: 1, Start: 4, End: 5}, "b"))
	b.Add(New(SevWarning, ChkLetCountMismatch, source.Span{File: 0, Start: 9, End: 9}, "w"))
	b.Add(NewError(SynExpectSemicolon, source.Span{File: 1, Start: 4, End: 5}, "dup"))

	other := NewBag(1)
	other.Add(NewError(LexUnknownChar, source.Span{File: 0, Start: 1, End: 2}, "a"))
	b.Merge(other)

	b.Dedup()
	b.Sort()

	items := b.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 items after dedup, got %d", len(items))
	}
	wantCodes := []Code{LexUnknownChar, ChkLetCountMismatch, SynExpectSemicolon}
	for i, c := range wantCodes {
		if items[i].Code != c {
			t.Errorf("items[%d].Code = %s, want %s", i, items[i].Code.ID(), c.ID())
		}
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Errorf("severity predicates wrong")
	}
	if ptrs := b.Pointers(); ptrs[0] != &items[0] {
		t.Errorf("Pointers must alias bag storage")
	}
}

func TestReporters(t *testing.T) {
	bag := NewBag(10)
	counter := &CountingReporter{Next: NewDedupReporter(BagReporter{Bag: bag})}

	sp := source.Span{File: 0, Start: 3, End: 4}
	ReportError(counter, SynExpectSemicolon, sp, "expected ';'").
		WithNote(sp, "statement starts here").
		WithFix("insert ';'", FixEdit{Span: sp.ZeroideToEnd(), NewText: ";"}).
		Emit()
	ReportError(counter, SynExpectSemicolon, sp, "expected ';'").Emit()
	NewReportBuilder(counter, SevWarning, ChkLetCountMismatch, sp, "w").Emit()

	if counter.Total != 3 || counter.Errors != 2 {
		t.Fatalf("counter = %+v", counter)
	}
	if bag.Len() != 2 {
		t.Fatalf("dedup failed, bag has %d", bag.Len())
	}
	d := bag.Items()[0]
	if len(d.Notes) != 1 || len(d.Fixes) != 1 || d.Fixes[0].Edits[0].NewText != ";" {
		t.Fatalf("notes/fixes lost: %+v", d)
	}

	var multiA, multiB Bag
	multiA.max, multiB.max = 1, 1
	MultiReporter{BagReporter{Bag: &multiA}, nil, BagReporter{Bag: &multiB}}.
		Report(IOLoadFileError, SevError, sp, "io", nil, nil)
	if multiA.Len() != 1 || multiB.Len() != 1 {
		t.Fatalf("MultiReporter did not fan out")
	}
}

func TestCodeStrings(t *testing.T) {
	tests := []struct {
		code Code
		id   string
	}{
		{LexUnterminatedString, "LEX1002"},
		{SynExpectSemicolon, "SYN2012"},
		{IOLoadFileError, "IO4001"},
		{ChkLetCountMismatch, "CHK5001"},
		{ObsTimings, "OBS6001"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.id {
			t.Errorf("ID(%d) = %q, want %q", tt.code, got, tt.id)
		}
	}
	if got := SynInvalidAssignTarget.String(); got != "[SYN2301]: Invalid assignment target" {
		t.Errorf("String = %q", got)
	}
	if Code(1999).Title() != "Unknown error" {
		t.Errorf("unregistered code must fall back to unknown title")
	}
}
