package core

import (
	"sync/atomic"
	"time"

	"github.com/huangsam/repocheck/schema"
)

// AbortState owns the cooperative abort flag for a single run. The flag's
// only legal transition is false to true, set either by a timer at the soft
// deadline or by an external Trip. It is never reset during a run; each run
// gets a fresh AbortState so concurrent runs cannot cross-talk.
type AbortState struct {
	budget  schema.AnalysisBudget
	aborted atomic.Bool
	timer   *time.Timer
}

// NewAbortState arms the soft-deadline timer and returns the run's abort state.
func NewAbortState(budget schema.AnalysisBudget) *AbortState {
	a := &AbortState{budget: budget}
	a.timer = time.AfterFunc(time.Until(budget.SoftDeadline), func() {
		a.aborted.Store(true)
	})
	return a
}

// Aborted reports whether the soft abort has tripped. Components poll this at
// bounded intervals: after each directory, each file, and each internal loop
// chunk, so overshoot stays within one file's worth of work.
func (a *AbortState) Aborted() bool {
	return a.aborted.Load()
}

// Trip sets the abort flag from an external signal. Idempotent.
func (a *AbortState) Trip() {
	a.aborted.Store(true)
}

// Budget returns the run's immutable budget.
func (a *AbortState) Budget() schema.AnalysisBudget {
	return a.budget
}

// Stop releases the soft-deadline timer once the run finishes.
func (a *AbortState) Stop() {
	a.timer.Stop()
}
