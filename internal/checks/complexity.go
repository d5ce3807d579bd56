package checks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/huangsam/repocheck/internal/contract"
	"github.com/huangsam/repocheck/schema"
)

// Counter names produced by the complexity analyzer.
const (
	counterFunctions       = "functions"
	counterTotalComplexity = "total_complexity"
	counterSimple          = "simple"       // complexity 1-5
	counterModerate        = "moderate"     // complexity 6-10
	counterComplex         = "complex"      // complexity 11-20
	counterVeryComplex     = "very_complex" // complexity 21+
)

// Per-file analysis bounds.
const (
	maxFunctionsPerFile = 100
	maxBodyBytes        = 50_000
	complexFindingBar   = 10
)

// languageRules holds the function-detection and decision-point patterns for
// one language family.
type languageRules struct {
	function *regexp.Regexp
	decision *regexp.Regexp
}

var rulesByCategory = map[schema.Category]*languageRules{
	schema.PythonCategory: {
		function: regexp.MustCompile(`(?m)^\s*def\s+(\w+)\s*\(`),
		decision: regexp.MustCompile(`\b(if|elif|else|for|while|try|except|and|or|return|raise)\b`),
	},
	schema.JavaScriptCategory: {
		function: regexp.MustCompile(`(?m)function\s+(\w+)|(\w+)\s*=\s*function\b|(\w+)\s*:\s*function\b|(\w+)\s*=\s*(?:async\s*)?\(.*?\)\s*=>`),
		decision: regexp.MustCompile(`\b(if|else|switch|case|for|while|do|try|catch|return|throw)\b|&&|\|\||\?`),
	},
	schema.JavaCategory: {
		function: regexp.MustCompile(`(?m)(?:public|private|protected|static)[\w\s<>\[\],]*\s(\w+)\s*\([^)]*\)\s*(?:throws[\w\s,]*)?\{`),
		decision: regexp.MustCompile(`\b(if|else|switch|case|for|while|do|try|catch|return|throw)\b|&&|\|\||\?`),
	},
	schema.CSharpCategory: {
		function: regexp.MustCompile(`(?m)(?:public|private|protected|static|virtual|override)[\w\s<>\[\],]*\s(\w+)\s*\([^)]*\)\s*\{`),
		decision: regexp.MustCompile(`\b(if|else|switch|case|for|while|do|try|catch|return|throw)\b|&&|\|\||\?`),
	},
	schema.GoCategory: {
		function: regexp.MustCompile(`(?m)^func\s+(?:\([^)]*\)\s*)?(\w+)\s*\(`),
		decision: regexp.MustCompile(`\b(if|else|switch|case|for|select|go|defer|return)\b|&&|\|\|`),
	},
}

// complexityExtensions are the extensions the analyzer knows how to parse.
var complexityExtensions = []string{
	".py", ".js", ".jsx", ".ts", ".tsx", ".java", ".cs", ".go",
}

type complexityAnalyzer struct{}

func (complexityAnalyzer) Analyze(ctx context.Context, root string, file schema.CandidateFile) (schema.PartialResult, error) {
	rules, ok := rulesByCategory[file.Category]
	if !ok {
		// Eligible extension but no rules; count the file without functions.
		return schema.PartialResult{Path: file.Path, Category: file.Category, Counters: map[string]int64{}}, nil
	}

	content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(file.Path)))
	if err != nil {
		return schema.PartialResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return schema.PartialResult{}, err
	}

	text := string(content)
	matches := rules.function.FindAllStringSubmatchIndex(text, maxFunctionsPerFile+1)
	if len(matches) > maxFunctionsPerFile {
		matches = matches[:maxFunctionsPerFile]
	}

	counters := map[string]int64{
		counterFunctions:       0,
		counterTotalComplexity: 0,
	}
	var findings []schema.Finding

	for i, match := range matches {
		if err := ctx.Err(); err != nil {
			return schema.PartialResult{}, err
		}

		start := match[1]
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		if end-start > maxBodyBytes {
			end = start + maxBodyBytes
		}
		body := text[start:end]

		complexity := 1 + int64(len(rules.decision.FindAllStringIndex(body, -1)))

		counters[counterFunctions]++
		counters[counterTotalComplexity] += complexity
		switch {
		case complexity <= 5:
			counters[counterSimple]++
		case complexity <= 10:
			counters[counterModerate]++
		case complexity <= 20:
			counters[counterComplex]++
		default:
			counters[counterVeryComplex]++
		}

		if complexity > complexFindingBar {
			findings = append(findings, schema.Finding{
				Path:    file.Path,
				Line:    strings.Count(text[:match[0]], "\n") + 1,
				Message: fmt.Sprintf("function %s has complexity %d", functionName(text, match), complexity),
			})
		}
	}

	return schema.PartialResult{
		Path:     file.Path,
		Category: file.Category,
		Counters: counters,
		Findings: findings,
	}, nil
}

// functionName extracts the first captured group from a function match.
func functionName(text string, match []int) string {
	for g := 2; g+1 < len(match); g += 2 {
		if match[g] >= 0 {
			return text[match[g]:match[g+1]]
		}
	}
	return "unknown"
}

// complexityScore grades average cyclomatic complexity, then deducts for a
// high share of very complex functions.
func complexityScore(metrics *schema.AggregateMetrics, _ int) schema.ScoreBreakdown {
	functions := metrics.Counter(counterFunctions)
	if functions == 0 {
		// Files without detectable functions score clean.
		return schema.ScoreBreakdown{
			Score:      100,
			Components: map[string]float64{"base": 100},
		}
	}
	average := float64(metrics.Counter(counterTotalComplexity)) / float64(functions)

	var base float64
	switch {
	case average >= 15:
		base = 0
	case average >= 12:
		base = 20
	case average >= 10:
		base = 40
	case average >= 8:
		base = 60
	case average >= 6:
		base = 80
	default:
		base = 90
	}

	var penalty float64
	veryComplexShare := float64(metrics.Counter(counterVeryComplex)) / float64(functions) * 100
	switch {
	case veryComplexShare >= 20:
		penalty = 40
	case veryComplexShare >= 10:
		penalty = 20
	case veryComplexShare >= 5:
		penalty = 10
	}

	return schema.ScoreBreakdown{
		Score: max(base-penalty, 0),
		Components: map[string]float64{
			"base":                 base,
			"very_complex_penalty": -penalty,
			"average_complexity":   average,
		},
	}
}

var complexityCheck = &contract.Check{
	Name:        schema.ComplexityCheck,
	Category:    "code_quality",
	Description: "Cyclomatic complexity estimate per function across source files",
	Extensions:  complexityExtensions,
	Analyzer:    complexityAnalyzer{},
	Score:       complexityScore,
}
