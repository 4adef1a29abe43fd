package main

import (
	"io"
	"os"

	"jsslice/internal/diag"
	"jsslice/internal/diagfmt"
	"jsslice/internal/source"
)

// printDiagnostics renders bag to stderr in the pretty format.
func printDiagnostics(bag *diag.Bag, fs *source.FileSet) {
	writeDiagnostics(os.Stderr, bag, fs, useColor(os.Stderr))
}

func writeDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, colored bool) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	_ = diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
		Color:     colored,
		Context:   1,
		PathMode:  current.pathMode,
		ShowNotes: true,
		ShowFixes: true,
		Max:       current.maxDiagnostics,
	})
}
