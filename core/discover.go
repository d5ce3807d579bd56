package core

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/repocheck/internal/contract"
	"github.com/huangsam/repocheck/schema"
)

// Discovery constraints.
const (
	// discoverPollInterval is how many files may pass between abort checks
	// inside a single directory.
	discoverPollInterval = 50

	// discoverCap bounds the candidate list outright: trees larger than this
	// are cut off and reported as early-stopped.
	discoverCap = 50000
)

// errStopWalk signals an intentional early end of the walk.
var errStopWalk = errors.New("stop walk")

// defaultSkipDirs are directory basenames that are never worth descending
// into: VCS metadata, dependency caches, and build artifacts.
var defaultSkipDirs = map[string]struct{}{
	".git":         {},
	".hg":          {},
	".svn":         {},
	"node_modules": {},
	"vendor":       {},
	"venv":         {},
	".venv":        {},
	"env":          {},
	"__pycache__":  {},
	"build":        {},
	"dist":         {},
	"target":       {},
}

// PathFilter decides which files are eligible for analysis.
type PathFilter struct {
	extensions  map[string]struct{}
	excludes    []string
	maxFileSize int64
	maxDepth    int
}

// NewPathFilter builds the eligibility filter for one check run. An empty
// extension list on the check means all known code extensions.
func NewPathFilter(chk *contract.Check, cfg *contract.Config) *PathFilter {
	exts := chk.Extensions
	if len(exts) == 0 {
		exts = schema.CodeExtensions()
	}
	extSet := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		extSet[strings.ToLower(ext)] = struct{}{}
	}
	return &PathFilter{
		extensions:  extSet,
		excludes:    cfg.Excludes,
		maxFileSize: cfg.MaxFileSize,
		maxDepth:    cfg.MaxDirDepth,
	}
}

// skipDir reports whether a directory subtree should be pruned.
func (f *PathFilter) skipDir(relPath, name string, depth int) bool {
	if depth > f.maxDepth {
		return true
	}
	if _, ok := defaultSkipDirs[name]; ok {
		return true
	}
	// Hidden directories hold tooling state, not source.
	if strings.HasPrefix(name, ".") && name != "." {
		return true
	}
	return contract.ShouldIgnore(relPath+"/", f.excludes)
}

// eligibleFile reports whether a file's name passes the allow-list and
// exclude patterns. Size is checked separately so oversized files can be
// tallied rather than silently dropped.
func (f *PathFilter) eligibleFile(relPath string) bool {
	ext := strings.ToLower(filepath.Ext(relPath))
	if _, ok := f.extensions[ext]; !ok {
		return false
	}
	return !contract.ShouldIgnore(relPath, f.excludes)
}

// discovery is the outcome of the walk phase.
type discovery struct {
	candidates   []schema.CandidateFile
	skips        map[schema.SkipReason]int
	earlyStopped bool
}

// discoverCandidates walks the tree depth-first and collects eligible files
// in lexical order, so repeated runs over an unchanged tree yield an
// identical candidate list. It polls the abort flag and its own sub-deadline
// after every directory and every discoverPollInterval files, and stops
// immediately on trip, returning whatever was collected.
func discoverCandidates(root string, filter *PathFilter, budget schema.AnalysisBudget, abort *AbortState) *discovery {
	res := &discovery{skips: make(map[schema.SkipReason]int)}
	subDeadline := budget.DiscoveryDeadline()
	filesSeen := 0

	tripped := func() bool {
		return abort.Aborted() || !time.Now().Before(subDeadline)
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are recorded, not fatal.
			res.skips[schema.SkipReadError]++
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			depth := strings.Count(rel, "/") + 1
			if filter.skipDir(rel, d.Name(), depth) {
				return fs.SkipDir
			}
			if tripped() {
				res.earlyStopped = true
				return errStopWalk
			}
			return nil
		}

		filesSeen++
		if filesSeen%discoverPollInterval == 0 && tripped() {
			res.earlyStopped = true
			return errStopWalk
		}

		if !d.Type().IsRegular() || !filter.eligibleFile(rel) {
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			res.skips[schema.SkipReadError]++
			return nil
		}
		if info.Size() > filter.maxFileSize {
			res.skips[schema.SkipTooLarge]++
			return nil
		}

		res.candidates = append(res.candidates, schema.CandidateFile{
			Path:      rel,
			SizeBytes: info.Size(),
			Category:  schema.CategoryForPath(rel),
		})
		if len(res.candidates) >= discoverCap {
			res.earlyStopped = true
			return errStopWalk
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopWalk) {
		// WalkDir errors on the root itself; treat as an empty discovery.
		res.skips[schema.SkipReadError]++
	}
	return res
}
