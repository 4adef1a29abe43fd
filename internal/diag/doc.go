// Package diag defines the diagnostic model shared by the lexer, the parser
// and the tooling around them.
//
// A Diagnostic carries a Severity, a numeric Code with a stable string form
// (LEX1002, SYN2012, IO4001, ...), a short Message, the Primary span, optional
// Notes pointing at related spans and optional Fixes made of text edits.
//
// Producers emit through a Reporter so they never depend on storage. Phases
// typically build a report with ReportError(...).WithNote(...).Emit(), or call
// Reporter.Report directly. BagReporter collects into a Bag, which supports
// sorting, deduplication and merging of per-file results.
//
// Package diag performs no IO and no terminal formatting; rendering lives in
// internal/diagfmt. The exception is the line-oriented short/golden form in
// golden.go, which tests and the CLI share.
package diag
