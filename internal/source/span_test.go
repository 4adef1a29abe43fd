package source

import "testing"

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint", Span{1, 2, 4}, Span{1, 8, 10}, Span{1, 2, 10}},
		{"nested", Span{1, 0, 10}, Span{1, 3, 4}, Span{1, 0, 10}},
		{"reversed", Span{1, 8, 10}, Span{1, 2, 4}, Span{1, 2, 10}},
		{"other file", Span{1, 2, 4}, Span{2, 0, 10}, Span{1, 2, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Errorf("Cover = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSpanBasics(t *testing.T) {
	s := Span{File: 3, Start: 5, End: 9}
	if s.Empty() || s.Len() != 4 {
		t.Errorf("Len/Empty wrong for %s", s)
	}
	if s.String() != "3:5-9" {
		t.Errorf("String = %q", s.String())
	}
	if !s.Contains(5) || s.Contains(9) {
		t.Errorf("Contains must be half-open")
	}
	if z := s.ZeroideToEnd(); z.Start != 9 || !z.Empty() {
		t.Errorf("ZeroideToEnd = %s", z)
	}
	if a := s.At(7); a.File != 3 || a.Start != 7 || !a.Empty() {
		t.Errorf("At = %s", a)
	}
}
