package source

import "testing"

func TestInternerDedup(t *testing.T) {
	in := NewInterner()
	a := in.Intern("total")
	b := in.InternBytes([]byte("total"))
	c := in.Intern("acc0")
	if a != b {
		t.Errorf("same text interned twice: %d vs %d", a, b)
	}
	if a == c || a == NoStringID {
		t.Errorf("unexpected ids a=%d c=%d", a, c)
	}
	if in.Len() != 3 {
		t.Errorf("Len = %d, want 3", in.Len())
	}
	if in.Intern("") != NoStringID {
		t.Errorf("empty string must map to NoStringID")
	}
}

func TestInternerLookup(t *testing.T) {
	in := NewInterner()
	id := in.Intern("use strict")
	if s, ok := in.Lookup(id); !ok || s != "use strict" {
		t.Errorf("Lookup = %q,%v", s, ok)
	}
	if _, ok := in.Lookup(StringID(99)); ok {
		t.Errorf("Lookup of unknown id succeeded")
	}
	defer func() {
		if recover() == nil {
			t.Errorf("MustLookup did not panic")
		}
	}()
	in.MustLookup(StringID(99))
}

func TestInternerCopiesInput(t *testing.T) {
	in := NewInterner()
	buf := []byte("abc")
	id := in.InternBytes(buf)
	buf[0] = 'x'
	if got := in.MustLookup(id); got != "abc" {
		t.Errorf("interned text changed with caller buffer: %q", got)
	}
	snap := in.Snapshot()
	snap[id] = "mutated"
	if in.MustLookup(id) != "abc" {
		t.Errorf("Snapshot aliases internal storage")
	}
}
