package core

import (
	"github.com/huangsam/repocheck/internal/contract"
	"github.com/huangsam/repocheck/schema"
)

// scorePrecision is the number of decimals carried by a report's score.
// Output formatting may render fewer, but stored and exported scores are
// identical across backends.
const scorePrecision = 2

// computeBreakdown applies a check's ScoreFunc under the engine's contract:
// zero analyzed files yield the defined minimum score instead of reaching the
// check's formula, and the result is always clamped to the 0-100 range and
// rounded to scorePrecision decimals. The metrics struct is handed to the
// ScoreFunc by pointer but must not be mutated by it; determinism of the
// whole pipeline depends on that.
func computeBreakdown(chk *contract.Check, metrics *schema.AggregateMetrics, analyzed int) schema.ScoreBreakdown {
	if analyzed == 0 {
		return schema.ScoreBreakdown{Score: 0}
	}
	breakdown := chk.Score(metrics, analyzed)
	breakdown.Score = schema.RoundScore(schema.ClampScore(breakdown.Score), scorePrecision)
	return breakdown
}
