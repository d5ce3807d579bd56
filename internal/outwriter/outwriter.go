// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/repocheck/internal/contract"
	"github.com/huangsam/repocheck/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteScan prints scan reports using the configured output format.
func (ow *OutWriter) WriteScan(reports []*schema.AnalysisReport, cfg *contract.Config, duration time.Duration) error {
	return WriteScanResults(reports, cfg, duration)
}

// WriteChecks prints check definitions using the configured output format.
func (ow *OutWriter) WriteChecks(checks []*contract.Check, cfg *contract.Config) error {
	return WriteCheckDefinitions(checks, cfg)
}
