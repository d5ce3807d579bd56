package checks

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/huangsam/repocheck/internal/contract"
	"github.com/huangsam/repocheck/schema"
)

// Counter names produced by the test-reliability analyzer.
const (
	counterTestFiles       = "test_files"
	counterFlakyFiles      = "flaky_marker_files"
	counterRetryFiles      = "files_with_retry"
	counterDetectionFiles  = "files_with_flaky_detection"
	counterQuarantineFiles = "files_with_quarantine"
)

var (
	// testFilePattern recognizes test files across the supported language
	// families by their conventional names.
	testFilePattern = regexp.MustCompile(`(?i)(^|/)(test_[^/]+\.py|[^/]*_test\.(py|go|rb)|[^/]*test[^/]*\.java|[^/]*\.(test|spec)\.[jt]sx?|[^/]*_spec\.rb)$`)

	// flakyMarkerPattern matches the vocabulary of unreliable tests.
	flakyMarkerPattern = regexp.MustCompile(`(?i)flaky|intermittent|non-deterministic|unstable|occasionally fails|quarantine`)

	// retryMechanismPattern matches framework-level retry machinery.
	retryMechanismPattern = regexp.MustCompile(`(?i)@Retry\b|RetryRule|RetryAnalyzer|pytest-rerunfailures|--reruns|rerunfailures|retryTimes|jest-circus|mocha-retry`)

	// flakyAnnotationPattern matches explicit per-test flaky annotations,
	// evidence the project actively tracks its flaky tests.
	flakyAnnotationPattern = regexp.MustCompile(`pytest\.mark\.flaky|@FlakyTest|@Flaky\b|\.retryTimes\(`)

	// quarantinePattern matches tests parked out of the suite.
	quarantinePattern = regexp.MustCompile(`(?i)quarantine|@Disabled\b|@Ignore\b|\bxit\(|\bxdescribe\(|skip.*flaky|flaky.*skip`)
)

type reliabilityAnalyzer struct{}

func (reliabilityAnalyzer) Analyze(ctx context.Context, root string, file schema.CandidateFile) (schema.PartialResult, error) {
	counters := map[string]int64{}
	result := schema.PartialResult{Path: file.Path, Category: file.Category, Counters: counters}

	// Non-test sources carry no reliability signal but still count as analyzed.
	if !testFilePattern.MatchString(file.Path) {
		return result, nil
	}

	content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(file.Path)))
	if err != nil {
		return schema.PartialResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return schema.PartialResult{}, err
	}
	text := string(content)

	counters[counterTestFiles] = 1

	if flakyMarkerPattern.MatchString(text) {
		counters[counterFlakyFiles] = 1
		result.Findings = []schema.Finding{{
			Path:    file.Path,
			Line:    markerLine(text),
			Message: "test file carries flakiness markers",
		}}
	}
	if retryMechanismPattern.MatchString(text) {
		counters[counterRetryFiles] = 1
	}
	if flakyAnnotationPattern.MatchString(text) {
		counters[counterDetectionFiles] = 1
	}
	if quarantinePattern.MatchString(text) {
		counters[counterQuarantineFiles] = 1
	}

	return result, nil
}

// markerLine returns the 1-based line of the first flakiness marker.
func markerLine(text string) int {
	loc := flakyMarkerPattern.FindStringIndex(text)
	if loc == nil {
		return 1
	}
	return strings.Count(text[:loc[0]], "\n") + 1
}

// reliabilityScore starts from a perfect score and deducts for the share of
// test files carrying flakiness markers: a light linear penalty up to 5%, a
// steep one beyond, with partial credit restored for each mitigation the
// project has in place (annotations, retries, quarantining). A tree without
// recognizable test files keeps the full score; coverage is a different check's
// concern.
func reliabilityScore(metrics *schema.AggregateMetrics, _ int) schema.ScoreBreakdown {
	testFiles := metrics.Counter(counterTestFiles)
	if testFiles == 0 {
		return schema.ScoreBreakdown{Score: 100}
	}

	flakyShare := float64(metrics.Counter(counterFlakyFiles)) / float64(testFiles) * 100

	var penalty float64
	switch {
	case flakyShare <= 0:
		penalty = 0
	case flakyShare <= 5:
		penalty = flakyShare * 2
	default:
		penalty = 10 + (flakyShare-5)*4
	}

	var mitigation float64
	if penalty > 0 {
		if metrics.Counter(counterDetectionFiles) > 0 {
			mitigation += 5
		}
		if metrics.Counter(counterRetryFiles) > 0 {
			mitigation += 5
		}
		if metrics.Counter(counterQuarantineFiles) > 0 {
			mitigation += 5
		}
	}

	return schema.ScoreBreakdown{
		Score: 100 - penalty + mitigation,
		Components: map[string]float64{
			"flakiness_penalty": penalty,
			"mitigations":       mitigation,
		},
	}
}

var reliabilityExtensions = []string{
	".py", ".go", ".js", ".jsx", ".ts", ".tsx", ".java", ".rb",
}

var reliabilityCheck = &contract.Check{
	Name:        schema.ReliabilityCheck,
	Category:    "testing",
	Description: "Flakiness markers and retry hygiene across test files",
	Extensions:  reliabilityExtensions,
	Analyzer:    reliabilityAnalyzer{},
	Score:       reliabilityScore,
}
