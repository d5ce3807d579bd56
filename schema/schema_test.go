package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCategoryForPath verifies extension-to-category mapping.
func TestCategoryForPath(t *testing.T) {
	tests := []struct {
		path     string
		expected Category
	}{
		{"main.go", GoCategory},
		{"src/app.py", PythonCategory},
		{"web/App.TSX", JavaScriptCategory},
		{"lib/util.rb", RubyCategory},
		{"native/ffi.rs", RustCategory},
		{"README.md", OtherCategory},
		{"Makefile", OtherCategory},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, CategoryForPath(tt.path))
		})
	}
}

// TestPartialResultSkipped checks the skip sentinel helpers.
func TestPartialResultSkipped(t *testing.T) {
	cand := CandidateFile{Path: "a.go", SizeBytes: 42, Category: GoCategory}

	skip := NewSkip(cand, SkipTooLarge)
	assert.True(t, skip.Skipped())
	assert.Equal(t, "a.go", skip.Path)
	assert.Equal(t, GoCategory, skip.Category)
	assert.Nil(t, skip.Counters)

	analyzed := PartialResult{Path: "a.go", Counters: map[string]int64{"code_lines": 10}}
	assert.False(t, analyzed.Skipped())
}

// TestReportSkipTally checks skip accounting on the report.
func TestReportSkipTally(t *testing.T) {
	r := &AnalysisReport{}
	assert.Equal(t, 0, r.SkippedTotal())

	r.AddSkip(SkipTooLarge)
	r.AddSkip(SkipTooLarge)
	r.AddSkip(SkipFileTimeout)

	assert.Equal(t, 3, r.SkippedTotal())
	assert.Equal(t, 2, r.Skipped[SkipTooLarge])
	assert.Equal(t, 1, r.Skipped[SkipFileTimeout])
}

// TestClampRound covers score helper edge cases.
func TestClampRound(t *testing.T) {
	assert.Equal(t, 0.0, ClampScore(-3))
	assert.Equal(t, 100.0, ClampScore(150))
	assert.Equal(t, 55.5, ClampScore(55.5))

	assert.Equal(t, 66.7, RoundScore(66.666, 1))
	assert.Equal(t, 67.0, RoundScore(66.666, 0))
	assert.Equal(t, 67.0, RoundScore(66.666, -1))
}
