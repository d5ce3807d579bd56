package core

import (
	"sort"

	"github.com/huangsam/repocheck/schema"
)

// maxFindings bounds the finding list carried on the final report.
const maxFindings = 100

// Aggregator is the single point of mutation for a run's totals. Exactly one
// goroutine calls Merge; workers only deliver PartialResults through the
// results channel. Merging is commutative and associative, so the same set of
// results yields the same totals regardless of arrival order.
type Aggregator struct {
	metrics  schema.AggregateMetrics
	analyzed int
	skips    map[schema.SkipReason]int
}

// NewAggregator returns an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		metrics: schema.AggregateMetrics{
			Counters:   make(map[string]int64),
			ByCategory: make(map[schema.Category]int),
		},
		skips: make(map[schema.SkipReason]int),
	}
}

// Merge folds one PartialResult into the running totals. Skips land in their
// own tally and never count as analyzed.
func (a *Aggregator) Merge(result schema.PartialResult) {
	if result.Skipped() {
		a.skips[result.Skip]++
		return
	}
	a.analyzed++
	if result.Category != "" {
		a.metrics.ByCategory[result.Category]++
	}
	for name, value := range result.Counters {
		a.metrics.Counters[name] += value
	}
	a.metrics.Findings = append(a.metrics.Findings, result.Findings...)
}

// Consume drains the results channel from a dedicated goroutine and signals
// completion via the returned channel.
func (a *Aggregator) Consume(results <-chan schema.PartialResult) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for result := range results {
			a.Merge(result)
		}
	}()
	return done
}

// Finalize sorts and bounds the finding list, then returns the totals.
// Sorting happens once here so the truncated list is deterministic even
// though findings arrive in scheduling order.
func (a *Aggregator) Finalize() (schema.AggregateMetrics, int, map[schema.SkipReason]int) {
	sort.Slice(a.metrics.Findings, func(i, j int) bool {
		fi, fj := a.metrics.Findings[i], a.metrics.Findings[j]
		if fi.Path != fj.Path {
			return fi.Path < fj.Path
		}
		if fi.Line != fj.Line {
			return fi.Line < fj.Line
		}
		return fi.Message < fj.Message
	})
	if len(a.metrics.Findings) > maxFindings {
		a.metrics.Findings = a.metrics.Findings[:maxFindings]
	}
	return a.metrics, a.analyzed, a.skips
}
