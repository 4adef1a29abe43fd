// Package trace records where jsslice spends its time: the CLI run, the
// lex and parse passes, and per-file work in directory mode.
//
// Включается флагами:
//
//	jsslice check --trace=- --trace-level=phase src/
//
// Реализации Tracer:
//
//   - Nop: трассировка выключена
//   - StreamTracer: пишет события сразу (stderr или файл)
//   - RingTracer: последние N событий в памяти, дамп при падении
//   - MultiTracer: stream + ring
//
// Tracer travels in a context.Context. Start opens a span under whatever
// span the context already carries:
//
//	ctx = trace.WithTracer(ctx, tr)
//	span, ctx := trace.Start(ctx, trace.ScopePass, "parse")
//	defer span.End("")
package trace
