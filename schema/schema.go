// Package schema has configs, models and shared constants for all parts of repocheck.
package schema

// CandidateFile describes one file selected by discovery. It is created once
// by the discoverer and never mutated afterward; ownership passes to exactly
// one worker when the file is dispatched.
type CandidateFile struct {
	Path      string   // Relative path to the file, slash-separated
	SizeBytes int64    // Size at discovery time
	Category  Category // Language category derived from the file extension
}

// Finding is a bounded-size note produced by an analyzer for a single file.
type Finding struct {
	Path    string `json:"path"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

// PartialResult is the per-file output of one analyzer invocation, or a skip
// sentinel when the file could not be analyzed. A worker owns its
// PartialResult exclusively until it is handed to the aggregator.
type PartialResult struct {
	Path     string
	Category Category
	Counters map[string]int64
	Findings []Finding
	Skip     SkipReason // empty when the file was analyzed
}

// Skipped reports whether this result is a skip sentinel.
func (p *PartialResult) Skipped() bool {
	return p.Skip != ""
}

// NewSkip builds a skip sentinel for the given candidate.
func NewSkip(f CandidateFile, reason SkipReason) PartialResult {
	return PartialResult{Path: f.Path, Category: f.Category, Skip: reason}
}

// AggregateMetrics is the running sum of all delivered PartialResults.
// Merging is commutative and associative: counter values add, findings
// accumulate and are sorted once at report finalization. The aggregator is
// the only writer.
type AggregateMetrics struct {
	Counters   map[string]int64 `json:"counters"`
	Findings   []Finding        `json:"findings,omitempty"`
	ByCategory map[Category]int `json:"by_category,omitempty"` // analyzed files per category
}

// Counter returns the named counter, or zero when absent.
func (m *AggregateMetrics) Counter(name string) int64 {
	if m.Counters == nil {
		return 0
	}
	return m.Counters[name]
}

// ScoreBreakdown holds the final score and the weighted contribution of each
// component, scaled to percent like the score itself.
type ScoreBreakdown struct {
	Score      float64            `json:"score"`
	Components map[string]float64 `json:"components,omitempty"`
}

// AnalysisReport is the final immutable snapshot of one check run. Degraded
// outcomes are flags on the report, not errors: a caller always receives a
// structurally valid report.
type AnalysisReport struct {
	Check           CheckName          `json:"check"`
	RootPath        string             `json:"root_path"`
	FilesDiscovered int                `json:"files_discovered"`
	FilesAnalyzed   int                `json:"files_analyzed"`
	Skipped         map[SkipReason]int `json:"skipped,omitempty"`
	Sampled         bool               `json:"sampled"`
	EarlyStopped    bool               `json:"early_stopped"`
	TimedOut        bool               `json:"timed_out"`
	HardTimedOut    bool               `json:"hard_timed_out"`
	WallClockMs     int64              `json:"wall_clock_ms"`
	Metrics         AggregateMetrics   `json:"metrics"`
	Score           float64            `json:"score"`
	Breakdown       map[string]float64 `json:"breakdown,omitempty"`
}

// SkippedTotal returns the total number of skipped files across all reasons.
func (r *AnalysisReport) SkippedTotal() int {
	total := 0
	for _, n := range r.Skipped {
		total += n
	}
	return total
}

// AddSkip increments the tally for one skip reason.
func (r *AnalysisReport) AddSkip(reason SkipReason) {
	if r.Skipped == nil {
		r.Skipped = make(map[SkipReason]int)
	}
	r.Skipped[reason]++
}
