package checks

import (
	"context"
	"strings"
	"testing"

	"github.com/huangsam/repocheck/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplexityAnalyzePython(t *testing.T) {
	root := t.TempDir()
	file := writeFile(t, root, "calc.py", `def simple():
    return 1

def branchy(x):
    if x and x > 0:
        return x
    elif x:
        return -x
    return 0
`)

	result, err := complexityAnalyzer{}.Analyze(context.Background(), root, file)
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.Counters[counterFunctions])
	assert.Equal(t, int64(2), result.Counters[counterSimple]+result.Counters[counterModerate])
	assert.Positive(t, result.Counters[counterTotalComplexity])
	assert.Empty(t, result.Findings)
}

func TestComplexityAnalyzeFindsComplexFunction(t *testing.T) {
	root := t.TempDir()
	var sb strings.Builder
	sb.WriteString("def tangled(x):\n")
	for range 15 {
		sb.WriteString("    if x:\n        return x\n")
	}
	file := writeFile(t, root, "mess.py", sb.String())

	result, err := complexityAnalyzer{}.Analyze(context.Background(), root, file)
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.Counters[counterFunctions])
	require.Len(t, result.Findings, 1)
	assert.Contains(t, result.Findings[0].Message, "tangled")
	assert.Equal(t, 1, result.Findings[0].Line)
}

func TestComplexityAnalyzeGo(t *testing.T) {
	root := t.TempDir()
	file := writeFile(t, root, "svc.go", `package svc

func Handle(x int) int {
	if x > 0 {
		return x
	}
	return -x
}

func (s *Server) Close() error {
	return nil
}
`)

	result, err := complexityAnalyzer{}.Analyze(context.Background(), root, file)
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Counters[counterFunctions])
}

func TestComplexityAnalyzeUnknownCategory(t *testing.T) {
	root := t.TempDir()
	file := writeFile(t, root, "lib.rs", "fn main() {}\n")

	result, err := complexityAnalyzer{}.Analyze(context.Background(), root, file)
	require.NoError(t, err)
	assert.Zero(t, result.Counters[counterFunctions])
	assert.False(t, result.Skipped())
}

func TestComplexityScore(t *testing.T) {
	tests := []struct {
		name     string
		counters map[string]int64
		want     float64
	}{
		{
			name:     "no functions",
			counters: map[string]int64{},
			want:     100,
		},
		{
			name: "low average",
			counters: map[string]int64{
				counterFunctions:       10,
				counterTotalComplexity: 30, // avg 3
			},
			want: 90,
		},
		{
			name: "high average",
			counters: map[string]int64{
				counterFunctions:       10,
				counterTotalComplexity: 160, // avg 16
			},
			want: 0,
		},
		{
			name: "moderate average with very complex penalty",
			counters: map[string]int64{
				counterFunctions:       10,
				counterTotalComplexity: 70, // avg 7 -> base 80
				counterVeryComplex:     2,  // 20% -> -40
			},
			want: 40,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			breakdown := complexityScore(&schema.AggregateMetrics{Counters: tc.counters}, 10)
			assert.InDelta(t, tc.want, breakdown.Score, 0.001)
		})
	}
}
