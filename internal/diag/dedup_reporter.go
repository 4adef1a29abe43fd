package diag

import "jsslice/internal/source"

// DedupReporter drops repeats of a diagnostic already forwarded to Next.
// Notes and fixes are not part of the identity.
type DedupReporter struct {
	Next Reporter
	seen map[dedupKey]struct{}
}

type dedupKey struct {
	code Code
	sev  Severity
	span source.Span
	msg  string
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{Next: next}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	if r == nil {
		return
	}
	k := dedupKey{code, sev, primary, msg}
	if _, dup := r.seen[k]; dup {
		return
	}
	if r.seen == nil {
		r.seen = make(map[dedupKey]struct{})
	}
	r.seen[k] = struct{}{}
	if r.Next != nil {
		r.Next.Report(code, sev, primary, msg, notes, fixes)
	}
}
