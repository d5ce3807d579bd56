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

// Counter names produced by the comments analyzer.
const (
	counterCodeLines       = "code_lines"
	counterCommentLines    = "comment_lines"
	counterCommentedFiles  = "files_with_comments"
	counterDocCommentFiles = "files_with_doc_comments"
)

// commentSyntax describes a language family's comment markers.
type commentSyntax struct {
	line       string
	blockStart string
	blockEnd   string
	docPattern *regexp.Regexp
}

var (
	pythonDocPattern = regexp.MustCompile(`(?ms)^\s*("""|''').+?("""|''')`)
	cDocPattern      = regexp.MustCompile(`(?ms)^\s*/\*\*.+?\*/`)

	hashSyntax  = commentSyntax{line: "#", docPattern: pythonDocPattern}
	slashSyntax = commentSyntax{line: "//", blockStart: "/*", blockEnd: "*/", docPattern: cDocPattern}
	rubySyntax  = commentSyntax{line: "#", blockStart: "=begin", blockEnd: "=end"}
)

// syntaxByCategory maps language categories to their comment markers.
var syntaxByCategory = map[schema.Category]commentSyntax{
	schema.PythonCategory:     {line: "#", blockStart: `"""`, blockEnd: `"""`, docPattern: pythonDocPattern},
	schema.JavaScriptCategory: slashSyntax,
	schema.JavaCategory:       slashSyntax,
	schema.CCategory:          slashSyntax,
	schema.CSharpCategory:     slashSyntax,
	schema.GoCategory:         slashSyntax,
	schema.PHPCategory:        slashSyntax,
	schema.SwiftCategory:      slashSyntax,
	schema.KotlinCategory:     slashSyntax,
	schema.ScalaCategory:      slashSyntax,
	schema.RustCategory:       slashSyntax,
	schema.RubyCategory:       rubySyntax,
}

type commentsAnalyzer struct{}

func (commentsAnalyzer) Analyze(ctx context.Context, root string, file schema.CandidateFile) (schema.PartialResult, error) {
	content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(file.Path)))
	if err != nil {
		return schema.PartialResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return schema.PartialResult{}, err
	}

	syntax, ok := syntaxByCategory[file.Category]
	if !ok {
		syntax = hashSyntax
	}

	text := string(content)
	lines := strings.Split(text, "\n")

	var codeLines, commentLines int64
	inBlock := false
	for i, line := range lines {
		if i%500 == 0 {
			if err := ctx.Err(); err != nil {
				return schema.PartialResult{}, err
			}
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		codeLines++

		if syntax.line != "" && strings.HasPrefix(trimmed, syntax.line) {
			commentLines++
			continue
		}
		if syntax.blockStart == "" {
			continue
		}
		switch {
		case inBlock:
			commentLines++
			if strings.Contains(trimmed, syntax.blockEnd) {
				inBlock = false
			}
		case strings.Contains(trimmed, syntax.blockStart):
			commentLines++
			rest := trimmed[strings.Index(trimmed, syntax.blockStart)+len(syntax.blockStart):]
			if !strings.Contains(rest, syntax.blockEnd) {
				inBlock = true
			}
		}
	}

	counters := map[string]int64{
		counterCodeLines:    codeLines,
		counterCommentLines: commentLines,
	}
	if commentLines > 0 {
		counters[counterCommentedFiles] = 1
	}
	if syntax.docPattern != nil && syntax.docPattern.MatchString(text) {
		counters[counterDocCommentFiles] = 1
	}

	return schema.PartialResult{
		Path:     file.Path,
		Category: file.Category,
		Counters: counters,
	}, nil
}

// commentsScore weighs commented-file share (30 points), the comment-to-code
// ratio (40 points, peaking in the 15-20% band) and doc-comment share (30
// points).
func commentsScore(metrics *schema.AggregateMetrics, filesAnalyzed int) schema.ScoreBreakdown {
	total := float64(filesAnalyzed)

	filesScore := min(float64(metrics.Counter(counterCommentedFiles))/total*30, 30)
	docScore := min(float64(metrics.Counter(counterDocCommentFiles))/total*30, 30)

	codeLines := metrics.Counter(counterCodeLines)
	if codeLines < 1 {
		codeLines = 1
	}
	ratio := float64(metrics.Counter(counterCommentLines)) / float64(codeLines) * 100

	var ratioScore float64
	switch {
	case ratio <= 0:
		ratioScore = 0
	case ratio < 5:
		ratioScore = ratio * 3
	case ratio < 20:
		ratioScore = 15 + (ratio-5)*1.5
	default:
		ratioScore = 35 + min((ratio-20)*0.25, 5)
	}

	return schema.ScoreBreakdown{
		Score: filesScore + ratioScore + docScore,
		Components: map[string]float64{
			"commented_files": filesScore,
			"comment_ratio":   ratioScore,
			"doc_comments":    docScore,
		},
	}
}

var commentsCheck = &contract.Check{
	Name:        schema.CommentsCheck,
	Category:    "documentation",
	Description: "Comment density and doc-comment coverage across source files",
	Analyzer:    commentsAnalyzer{},
	Score:       commentsScore,
}
