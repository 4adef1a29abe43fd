package fuzztests

import (
	"context"
	"errors"
	"testing"
	"time"

	"jsslice/internal/ast"
	"jsslice/internal/diag"
	"jsslice/internal/parser"
	"jsslice/internal/testkit"
)

// parseTimeout: дольше этого разбор одного входа считается зависанием.
const parseTimeout = 5 * time.Second

func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		file := fuzzFile(input)
		bag := diag.NewBag(128)
		prog, err := parser.ParseFile(context.Background(), file, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
		if err != nil {
			var pe *parser.Error
			if !errors.As(err, &pe) {
				t.Fatalf("error %T is not *parser.Error", err)
			}
			if prog != nil {
				t.Fatal("partial program returned with error")
			}
			if !bag.HasErrors() {
				t.Fatalf("error %v was not reported", err)
			}
			return
		}
		if bag.HasErrors() {
			t.Fatalf("successful parse reported errors: %v", bag.Items())
		}
		if err := testkit.CheckSpanInvariants(prog, file); err != nil {
			t.Fatal(err)
		}
		again, err := parser.ParseFile(context.Background(), file, parser.Options{})
		if err != nil || !ast.Equal(prog, again) {
			t.Fatalf("re-parse differs: err=%v", err)
		}
	})
}

// FuzzParserNoHang guards against runaway recursion or loops on malformed
// input.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("let x = 1\nlet y = 2;"))
	f.Add([]byte("x + y\nlet z = 3;"))
	f.Add([]byte("a = = b;"))
	f.Add([]byte("(((((((((((((((((((((((((((((((("))
	f.Add([]byte("a = b = c = d = e = f = g = h = i = j = k;"))

	f.Fuzz(func(t *testing.T, input []byte) {
		file := fuzzFile(input)
		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = parser.ParseFile(ctx, file, parser.Options{})
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang: input (%d bytes): %q", len(input), truncateForLog(input, 200))
		}
	})
}

func truncateForLog(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
