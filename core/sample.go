package core

import (
	"sort"

	"github.com/huangsam/repocheck/schema"
)

// sampleCandidates reduces a candidate list to at most maxFiles entries via
// stratified sampling: each category keeps a share proportional to its size,
// with a floor of one per non-empty category, and members are chosen at
// evenly spaced indices. The result is a pure function of the input list and
// maxFiles, so repeated runs over an unchanged tree select identical files.
// The second return value reports whether sampling actually reduced the list.
func sampleCandidates(candidates []schema.CandidateFile, maxFiles int) ([]schema.CandidateFile, bool) {
	if maxFiles <= 0 || len(candidates) <= maxFiles {
		return candidates, false
	}

	// Group by category, preserving discovery order within each group.
	groups := make(map[schema.Category][]schema.CandidateFile)
	for _, c := range candidates {
		groups[c.Category] = append(groups[c.Category], c)
	}
	categories := make([]schema.Category, 0, len(groups))
	for cat := range groups {
		categories = append(categories, cat)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })

	// More categories than the budget: keep one file from each of the first
	// maxFiles categories in sorted order.
	if len(categories) > maxFiles {
		picked := make([]schema.CandidateFile, 0, maxFiles)
		for _, cat := range categories[:maxFiles] {
			picked = append(picked, groups[cat][0])
		}
		sortByPath(picked)
		return picked, true
	}

	// Proportional allocation with a floor of one per category.
	total := len(candidates)
	alloc := make(map[schema.Category]int, len(categories))
	allocated := 0
	for _, cat := range categories {
		n := len(groups[cat]) * maxFiles / total
		if n < 1 {
			n = 1
		}
		alloc[cat] = n
		allocated += n
	}

	// The floor can push the sum above budget; shave the largest allocations
	// first, ties broken by category order.
	for allocated > maxFiles {
		largest := categories[0]
		for _, cat := range categories[1:] {
			if alloc[cat] > alloc[largest] {
				largest = cat
			}
		}
		alloc[largest]--
		allocated--
	}

	// Integer division leaves a remainder; hand it out round-robin to
	// categories that still have unsampled files.
	for allocated < maxFiles {
		progressed := false
		for _, cat := range categories {
			if allocated == maxFiles {
				break
			}
			if alloc[cat] < len(groups[cat]) {
				alloc[cat]++
				allocated++
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}

	// Select evenly spaced members from each group.
	picked := make([]schema.CandidateFile, 0, maxFiles)
	for _, cat := range categories {
		group := groups[cat]
		k := alloc[cat]
		for i := range k {
			picked = append(picked, group[i*len(group)/k])
		}
	}
	sortByPath(picked)
	return picked, true
}

// sortByPath orders candidates lexically for a stable dispatch order.
func sortByPath(candidates []schema.CandidateFile) {
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Path < candidates[j].Path })
}
