package pipeline

import (
	"sync"
	"time"
)

// Stage is a step of processing one source file.
type Stage string

const (
	StageLoad  Stage = "load"
	StageLex   Stage = "lex"
	StageParse Stage = "parse"
	StageCheck Stage = "check" // проверки поверх AST (expect-lets)
)

// Stages lists stages in processing order.
func Stages() []Stage { return []Stage{StageLoad, StageLex, StageParse, StageCheck} }

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
	StatusCached  Status = "cached"
)

// Terminal reports whether the file will get no more events.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusError || s == StatusCached
}

// Event reports progress for a file (or the whole run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// Timings accumulates per-stage durations across files. Safe for
// concurrent use.
type Timings struct {
	mu     sync.Mutex
	stages map[Stage]time.Duration
}

// Add increases the total for stage.
func (t *Timings) Add(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
	t.stages[stage] += dur
}

func (t *Timings) Has(stage Stage) bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.stages[stage]
	return ok
}

func (t *Timings) Duration(stage Stage) time.Duration {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stages[stage]
}

// Sum returns the total across stages (all stages when none given).
func (t *Timings) Sum(stages ...Stage) time.Duration {
	if len(stages) == 0 {
		stages = Stages()
	}
	var total time.Duration
	for _, s := range stages {
		total += t.Duration(s)
	}
	return total
}
