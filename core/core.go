// Package core has the bounded-time analysis engine: discovery, sampling,
// scheduling, aggregation and scoring.
package core

import (
	"context"
	"sort"
	"time"

	"github.com/huangsam/repocheck/internal/contract"
	"github.com/huangsam/repocheck/internal/outwriter"
	"github.com/huangsam/repocheck/schema"
	"golang.org/x/sync/errgroup"
)

// ExecuteScan runs the selected checks against the configured root and
// prints results to stdout. It serves as the main entry point for the
// 'scan' command.
func ExecuteScan(ctx context.Context, cfg *contract.Config, checks []*contract.Check, mgr contract.StoreManager) error {
	reports, duration, err := GetScanResults(ctx, cfg, checks, mgr)
	if err != nil {
		return err
	}
	return outwriter.WriteScanResults(reports, cfg, duration)
}

// GetScanResults runs the selected checks and returns their reports without
// writing any output. Each check gets its own independent budget and abort
// state, so one slow check cannot poison another.
func GetScanResults(ctx context.Context, cfg *contract.Config, checks []*contract.Check, mgr contract.StoreManager) ([]*schema.AnalysisReport, time.Duration, error) {
	start := time.Now()

	var store contract.AnalysisStore
	if mgr != nil {
		store = mgr.GetAnalysisStore()
	}

	var runID int64
	if store != nil {
		configParams := map[string]any{
			"soft_timeout": cfg.SoftTimeout.String(),
			"max_files":    cfg.MaxFiles,
			"max_depth":    cfg.MaxDirDepth,
			"workers":      cfg.Workers,
		}
		var err error
		runID, err = store.BeginRun(cfg.RootPath, start, configParams)
		if err != nil {
			contract.LogWarn("Analysis tracking initialization failed", err)
		}
	}

	reports := make([]*schema.AnalysisReport, len(checks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.CheckParallel)

	for i, chk := range checks {
		g.Go(func() error {
			report, err := Run(gctx, cfg, chk)
			if err != nil {
				return err
			}
			reports[i] = report
			if store != nil && runID > 0 {
				if err := store.RecordCheckResult(runID, report); err != nil {
					contract.LogWarn("Analysis tracking failed for "+string(chk.Name), err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	if store != nil && runID > 0 {
		if err := store.EndRun(runID, time.Now(), len(reports)); err != nil {
			contract.LogWarn("Failed to finalize analysis tracking", err)
		}
	}

	return reports, time.Since(start), nil
}

// ExecuteChecksList prints the registered check definitions.
func ExecuteChecksList(_ context.Context, cfg *contract.Config, checks []*contract.Check) error {
	sorted := make([]*contract.Check, len(checks))
	copy(sorted, checks)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return outwriter.WriteCheckDefinitions(sorted, cfg)
}
