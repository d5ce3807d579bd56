package core

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"github.com/huangsam/repocheck/internal/contract"
	"github.com/huangsam/repocheck/schema"
)

// dispatch pairs a candidate with the timeout computed at dispatch time.
type dispatch struct {
	file    schema.CandidateFile
	timeout time.Duration
}

// runScheduler executes analyses with bounded parallelism. Workers pull from
// a channel and deliver every outcome, analyzed or skipped, to the results
// channel; nothing is dropped. Once the abort flag trips, not-yet-dispatched
// candidates are recorded as skipped and in-flight work drains on its own
// per-file deadlines.
func runScheduler(ctx context.Context, root string, candidates []schema.CandidateFile, analyzer contract.FileAnalyzer, budget schema.AnalysisBudget, abort *AbortState, workers int, results chan<- schema.PartialResult) {
	if len(candidates) == 0 {
		return
	}
	if workers > len(candidates) {
		workers = len(candidates)
	}
	if workers < 1 {
		workers = 1
	}

	fileCh := make(chan dispatch, workers)
	var wg sync.WaitGroup

	for range workers {
		wg.Go(func() {
			for d := range fileCh {
				results <- analyzeOne(ctx, root, d, analyzer)
			}
		})
	}

	for i, c := range candidates {
		if abort.Aborted() {
			for _, rest := range candidates[i:] {
				results <- schema.NewSkip(rest, schema.SkipNotStarted)
			}
			break
		}
		// Shrinks as the budget drains so one slow file cannot starve the rest.
		timeout := budget.PerFileTimeout(time.Now(), len(candidates)-i)
		fileCh <- dispatch{file: c, timeout: timeout}
	}
	close(fileCh)
	wg.Wait()
}

// analyzeOne wraps a single analyzer call with its own deadline and a panic
// boundary. The analyzer runs in its own goroutine; on timeout that goroutine
// is abandoned to finish on its own (the run's hard deadline is the backstop
// for calls that never return) and the file is recorded as skipped.
func analyzeOne(ctx context.Context, root string, d dispatch, analyzer contract.FileAnalyzer) schema.PartialResult {
	type outcome struct {
		result schema.PartialResult
		err    error
	}
	outCh := make(chan outcome, 1)

	tctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				outCh <- outcome{err: fmt.Errorf("analyzer panic: %v", r)}
			}
		}()
		result, err := analyzer.Analyze(tctx, root, d.file)
		outCh <- outcome{result: result, err: err}
	}()

	select {
	case out := <-outCh:
		if out.err != nil {
			return schema.NewSkip(d.file, classifyAnalyzeError(out.err))
		}
		return out.result
	case <-tctx.Done():
		return schema.NewSkip(d.file, schema.SkipFileTimeout)
	}
}

// classifyAnalyzeError maps analyzer failures onto skip reasons: filesystem
// trouble is a read error, everything else counts against the analyzer.
func classifyAnalyzeError(err error) schema.SkipReason {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) || errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrNotExist) {
		return schema.SkipReadError
	}
	return schema.SkipAnalyzerError
}
