package checks

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/repocheck/internal/contract"
	"github.com/huangsam/repocheck/schema"
)

// Counter names produced by the license-headers analyzer.
const (
	counterHeaderedFiles = "files_with_headers"
	counterSPDXFiles     = "files_with_spdx"
	counterLicenseRef    = "files_with_license_ref"
	counterAuthorFiles   = "files_with_author"
	counterUpToDateFiles = "files_with_current_year"
	counterOrgFiles      = "files_with_org"
)

// headerLineLimit bounds how much of each file counts as its header.
const headerLineLimit = 20

var (
	copyrightPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)copyright\s*(?:\(c\)|©)?\s*[0-9]{4}`),
		regexp.MustCompile(`(?i)copyright\s+(?:by|owner)`),
		regexp.MustCompile(`(?i)all\s+rights\s+reserved`),
		regexp.MustCompile(`(?i)©\s*[0-9]{4}`),
		regexp.MustCompile(`(?i)\(c\)\s*[0-9]{4}`),
	}
	licenseRefPattern = regexp.MustCompile(`(?i)licensed\s+under|apache\s+license|mit\s+license|bsd\s+license|gnu\s+general\s+public\s+license|mozilla\s+public\s+license|\blgpl\b|\bgpl\b`)
	spdxPattern       = regexp.MustCompile(`(?i)SPDX-License-Identifier:\s*[\w.\-]+`)
	authorPattern     = regexp.MustCompile(`(?i)@author|author:|written by`)
	yearPattern       = regexp.MustCompile(`(19|20)\d{2}`)
	orgPattern        = regexp.MustCompile(`(?i)(?:copyright|©|\(c\))[^\n]*?(Inc|LLC|Ltd|GmbH|Corp|Corporation|Foundation|Project)\b`)
)

type licenseAnalyzer struct{}

func (licenseAnalyzer) Analyze(ctx context.Context, root string, file schema.CandidateFile) (schema.PartialResult, error) {
	f, err := os.Open(filepath.Join(root, filepath.FromSlash(file.Path)))
	if err != nil {
		return schema.PartialResult{}, err
	}
	defer func() { _ = f.Close() }()

	var sb strings.Builder
	scanner := bufio.NewScanner(f)
	for i := 0; i < headerLineLimit && scanner.Scan(); i++ {
		sb.WriteString(scanner.Text())
		sb.WriteByte('\n')
	}
	if err := ctx.Err(); err != nil {
		return schema.PartialResult{}, err
	}
	header := sb.String()

	counters := map[string]int64{}
	result := schema.PartialResult{Path: file.Path, Category: file.Category, Counters: counters}

	hasCopyright := false
	for _, p := range copyrightPatterns {
		if p.MatchString(header) {
			hasCopyright = true
			break
		}
	}
	hasSPDX := spdxPattern.MatchString(header)

	if !hasCopyright && !hasSPDX {
		result.Findings = []schema.Finding{{Path: file.Path, Line: 1, Message: "missing copyright or SPDX header"}}
		return result, nil
	}

	counters[counterHeaderedFiles] = 1
	if hasSPDX {
		counters[counterSPDXFiles] = 1
	}
	if licenseRefPattern.MatchString(header) {
		counters[counterLicenseRef] = 1
	}
	if authorPattern.MatchString(header) {
		counters[counterAuthorFiles] = 1
	}
	if orgPattern.MatchString(header) {
		counters[counterOrgFiles] = 1
	}
	if headerYearCurrent(header, time.Now().Year()) {
		counters[counterUpToDateFiles] = 1
	}
	return result, nil
}

// headerYearCurrent reports whether any year in the header is within one year
// of the current year.
func headerYearCurrent(header string, currentYear int) bool {
	for _, m := range yearPattern.FindAllString(header, -1) {
		year, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		if year >= currentYear-1 {
			return true
		}
	}
	return false
}

// licenseScore weighs header coverage (50 points) plus completeness signals
// (up to 35 points) plus a coverage-consistency bonus (15 points), floored at
// 10 like any repository that at least contains source.
func licenseScore(metrics *schema.AggregateMetrics, filesAnalyzed int) schema.ScoreBreakdown {
	total := float64(filesAnalyzed)
	headered := float64(metrics.Counter(counterHeaderedFiles))
	coverageRatio := headered / total

	coverage := min(coverageRatio*50, 50)

	var completeness float64
	if metrics.Counter(counterUpToDateFiles) > 0 {
		completeness += 10
	}
	if metrics.Counter(counterLicenseRef) > 0 {
		completeness += 10
	}
	if metrics.Counter(counterOrgFiles) > 0 {
		completeness += 5
	}
	if metrics.Counter(counterSPDXFiles) > 0 {
		completeness += 5
	}
	if metrics.Counter(counterAuthorFiles) > 0 {
		completeness += 5
	}
	completeness = min(completeness, 35)

	consistency := coverageRatio * 15
	if coverageRatio >= 0.8 {
		consistency = 15
	}

	score := coverage + completeness + consistency
	if score < 10 {
		score = 10
	}
	return schema.ScoreBreakdown{
		Score: score,
		Components: map[string]float64{
			"coverage":     coverage,
			"completeness": completeness,
			"consistency":  consistency,
		},
	}
}

var licenseCheck = &contract.Check{
	Name:        schema.LicenseCheck,
	Category:    "licensing",
	Description: "Copyright and SPDX header presence in source file headers",
	Analyzer:    licenseAnalyzer{},
	Score:       licenseScore,
}
