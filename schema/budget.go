package schema

import "time"

// Budget tuning constants.
const (
	// DiscoveryShare is the fraction of the soft budget that discovery may
	// spend before handing whatever it has collected to the scheduler.
	DiscoveryShare = 0.20

	// HardDeadlineFactor is the default hard deadline as a multiple of the
	// soft budget when no explicit hard timeout is configured.
	HardDeadlineFactor = 1.15

	// MinPerFileTimeout is the smallest per-file timeout the scheduler will
	// hand out. Below this the soft deadline is effectively spent and the
	// abort flag will trip before the file matters.
	MinPerFileTimeout = 25 * time.Millisecond
)

// AnalysisBudget carries the time and size limits for a single run.
// It is immutable once the run starts.
type AnalysisBudget struct {
	Start            time.Time     // Wall-clock start of the run
	SoftDeadline     time.Time     // Cooperative limit; components poll it
	HardDeadline     time.Time     // Preemptive backstop, strictly after SoftDeadline
	MaxFiles         int           // Sampling threshold and cap on analyzed files
	MaxFileSizeBytes int64         // Per-file size cap; larger files are skipped
	MaxDirDepth      int           // Directories deeper than this are pruned
	PerFileCeiling   time.Duration // Fixed upper bound for any single file's analysis
}

// NewAnalysisBudget derives deadlines from the given start time and timeouts.
// A zero hardTimeout defaults to softTimeout scaled by HardDeadlineFactor.
func NewAnalysisBudget(start time.Time, softTimeout, hardTimeout time.Duration, maxFiles int, maxFileSize int64, maxDepth int, perFileCeiling time.Duration) AnalysisBudget {
	if hardTimeout <= softTimeout {
		hardTimeout = time.Duration(float64(softTimeout) * HardDeadlineFactor)
	}
	return AnalysisBudget{
		Start:            start,
		SoftDeadline:     start.Add(softTimeout),
		HardDeadline:     start.Add(hardTimeout),
		MaxFiles:         maxFiles,
		MaxFileSizeBytes: maxFileSize,
		MaxDirDepth:      maxDepth,
		PerFileCeiling:   perFileCeiling,
	}
}

// DiscoveryDeadline returns the sub-deadline for the discovery phase:
// DiscoveryShare of the soft budget, never past the soft deadline itself.
func (b AnalysisBudget) DiscoveryDeadline() time.Time {
	slice := time.Duration(float64(b.SoftDeadline.Sub(b.Start)) * DiscoveryShare)
	deadline := b.Start.Add(slice)
	if deadline.After(b.SoftDeadline) {
		return b.SoftDeadline
	}
	return deadline
}

// PerFileTimeout computes the deadline for the next dispatched file:
// min(PerFileCeiling, remaining soft budget / remaining files), floored at
// MinPerFileTimeout so a nearly spent budget still yields a valid timer.
func (b AnalysisBudget) PerFileTimeout(now time.Time, remainingFiles int) time.Duration {
	if remainingFiles < 1 {
		remainingFiles = 1
	}
	remaining := b.SoftDeadline.Sub(now)
	perFile := remaining / time.Duration(remainingFiles)
	if perFile > b.PerFileCeiling {
		perFile = b.PerFileCeiling
	}
	if perFile < MinPerFileTimeout {
		perFile = MinPerFileTimeout
	}
	return perFile
}

// SoftExpired reports whether the soft deadline has passed.
func (b AnalysisBudget) SoftExpired(now time.Time) bool {
	return !now.Before(b.SoftDeadline)
}
