package core

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/repocheck/internal/contract"
	"github.com/huangsam/repocheck/schema"
	"github.com/stretchr/testify/require"
)

// countingAnalyzer reports one "files" counter per call and echoes the
// candidate's category.
type countingAnalyzer struct{}

func (countingAnalyzer) Analyze(_ context.Context, _ string, file schema.CandidateFile) (schema.PartialResult, error) {
	return schema.PartialResult{
		Path:     file.Path,
		Category: file.Category,
		Counters: map[string]int64{"files": 1},
	}, nil
}

// sleepingAnalyzer blocks for a fixed duration before answering, ignoring ctx.
type sleepingAnalyzer struct {
	delay time.Duration
}

func (a sleepingAnalyzer) Analyze(_ context.Context, _ string, file schema.CandidateFile) (schema.PartialResult, error) {
	time.Sleep(a.delay)
	return schema.PartialResult{Path: file.Path, Category: file.Category, Counters: map[string]int64{"files": 1}}, nil
}

// panickingAnalyzer panics on every call.
type panickingAnalyzer struct{}

func (panickingAnalyzer) Analyze(context.Context, string, schema.CandidateFile) (schema.PartialResult, error) {
	panic("boom")
}

// failingAnalyzer returns a configurable error.
type failingAnalyzer struct {
	err error
}

func (a failingAnalyzer) Analyze(context.Context, string, schema.CandidateFile) (schema.PartialResult, error) {
	return schema.PartialResult{}, a.err
}

func testCheck(analyzer contract.FileAnalyzer) *contract.Check {
	return &contract.Check{
		Name:       "test-check",
		Extensions: []string{".go", ".py", ".js"},
		Analyzer:   analyzer,
		Score: func(metrics *schema.AggregateMetrics, filesAnalyzed int) schema.ScoreBreakdown {
			return schema.ScoreBreakdown{Score: float64(metrics.Counter("files")) / float64(filesAnalyzed) * 100.0}
		},
	}
}

func testConfig(root string) *contract.Config {
	return &contract.Config{
		RootPath:       root,
		SoftTimeout:    5 * time.Second,
		MaxFiles:       contract.DefaultMaxFiles,
		MaxFileSize:    1024 * 1024,
		MaxDirDepth:    contract.DefaultMaxDirDepth,
		PerFileTimeout: time.Second,
		Workers:        4,
		CheckParallel:  2,
	}
}

func testBudget(soft time.Duration, maxFiles int) schema.AnalysisBudget {
	return schema.NewAnalysisBudget(time.Now(), soft, 0, maxFiles, 1024*1024, 20, time.Second)
}

// writeTree materializes a map of relative path to content under root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

var errNotFound = &fs.PathError{Op: "open", Path: "gone.go", Err: errors.New("no such file")}
