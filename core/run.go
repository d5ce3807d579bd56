package core

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/repocheck/internal/contract"
	"github.com/huangsam/repocheck/schema"
)

// Run executes one check against the configured root within the run's budget.
// The returned error is reserved for setup failures (root does not exist);
// every degraded outcome — soft timeout, hard timeout, early stop, per-file
// skips — is expressed as flags and counters on a valid AnalysisReport.
func Run(ctx context.Context, cfg *contract.Config, chk *contract.Check) (*schema.AnalysisReport, error) {
	info, err := os.Stat(cfg.RootPath)
	if err != nil {
		return nil, fmt.Errorf("cannot analyze %q: %w", cfg.RootPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("cannot analyze %q: not a directory", cfg.RootPath)
	}

	start := time.Now()
	budget := cfg.Budget(start)
	abort := NewAbortState(budget)
	defer abort.Stop()

	done := make(chan *schema.AnalysisReport, 1)
	go func() {
		done <- runPipeline(ctx, cfg, chk, budget, abort)
	}()

	// The hard deadline is enforced here, outside the worker pool, so it
	// holds even if every worker is wedged inside pathological regex work.
	hardTimer := time.NewTimer(time.Until(budget.HardDeadline))
	defer hardTimer.Stop()

	select {
	case report := <-done:
		return report, nil
	case <-ctx.Done():
		abort.Trip()
		// Grace period: the pipeline stops dispatching once tripped, so give
		// in-flight work until the hard deadline to drain.
		select {
		case report := <-done:
			return report, nil
		case <-hardTimer.C:
			return hardTimeoutReport(cfg, chk, start), nil
		}
	case <-hardTimer.C:
		abort.Trip()
		return hardTimeoutReport(cfg, chk, start), nil
	}
}

// runPipeline is the cooperative portion of a run: discover, sample,
// schedule, aggregate, score. It only ever returns a valid report.
func runPipeline(ctx context.Context, cfg *contract.Config, chk *contract.Check, budget schema.AnalysisBudget, abort *AbortState) *schema.AnalysisReport {
	filter := NewPathFilter(chk, cfg)
	disc := discoverCandidates(cfg.RootPath, filter, budget, abort)

	sampled, wasSampled := sampleCandidates(disc.candidates, budget.MaxFiles)

	results := make(chan schema.PartialResult, len(sampled))
	agg := NewAggregator()
	aggDone := agg.Consume(results)

	runScheduler(ctx, cfg.RootPath, sampled, chk.Analyzer, budget, abort, cfg.Workers, results)
	close(results)
	<-aggDone

	metrics, analyzed, skips := agg.Finalize()
	breakdown := computeBreakdown(chk, &metrics, analyzed)

	// Discovery-phase skips count as discovered: the walk saw those files and
	// excluded them from the candidate list, so the tallies stay reconcilable
	// (analyzed plus skipped never exceeds discovered).
	discovered := len(disc.candidates)
	for _, n := range disc.skips {
		discovered += n
	}

	report := &schema.AnalysisReport{
		Check:           chk.Name,
		RootPath:        cfg.RootPath,
		FilesDiscovered: discovered,
		FilesAnalyzed:   analyzed,
		Sampled:         wasSampled,
		EarlyStopped:    disc.earlyStopped,
		TimedOut:        budget.SoftExpired(time.Now()),
		WallClockMs:     time.Since(budget.Start).Milliseconds(),
		Metrics:         metrics,
		Score:           breakdown.Score,
		Breakdown:       breakdown.Components,
	}
	for reason, n := range disc.skips {
		for range n {
			report.AddSkip(reason)
		}
	}
	for reason, n := range skips {
		for range n {
			report.AddSkip(reason)
		}
	}
	return report
}

// hardTimeoutReport synthesizes the minimal failure report when the
// supervisor abandons the pipeline at the hard deadline. Wedged goroutines
// are leaked until process exit; the caller still gets a structurally valid,
// mostly empty report.
func hardTimeoutReport(cfg *contract.Config, chk *contract.Check, start time.Time) *schema.AnalysisReport {
	return &schema.AnalysisReport{
		Check:        chk.Name,
		RootPath:     cfg.RootPath,
		TimedOut:     true,
		HardTimedOut: true,
		WallClockMs:  time.Since(start).Milliseconds(),
		Metrics: schema.AggregateMetrics{
			Counters: map[string]int64{},
		},
	}
}
