//go:build integration

// Package integration contains integration tests for repocheck.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags integration ./integration
// Or use: make test-integration
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scanReport mirrors the fields of the JSON scan output needed for verification.
type scanReport struct {
	Check           string `json:"check"`
	RootPath        string `json:"root_path"`
	FilesDiscovered int    `json:"files_discovered"`
	FilesAnalyzed   int    `json:"files_analyzed"`
	Sampled         bool   `json:"sampled"`
	TimedOut        bool   `json:"timed_out"`
	Score           float64
}

// TestScanCountVerification builds a synthetic tree with a known number of
// eligible files and verifies the discovered counts reported by the CLI
// against a ground-truth walk of the same tree.
func TestScanCountVerification(t *testing.T) {
	root := t.TempDir()

	// 12 Go files spread across nested directories, plus ineligible noise
	for i := 0; i < 12; i++ {
		dir := filepath.Join(root, fmt.Sprintf("pkg%d", i%3))
		require.NoError(t, os.MkdirAll(dir, 0o755))
		content := "package main\n\n// handler does work\nfunc handler() {}\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, fmt.Sprintf("file%d.go", i)), []byte(content), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte("# demo\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "data.bin"), make([]byte, 64), 0o644))

	// Ground truth: count .go files via an independent walk
	wantGoFiles := 0
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".go") {
			wantGoFiles++
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 12, wantGoFiles)

	reports := runScanJSON(t, root, "--check", "complexity")
	require.Len(t, reports, 1)

	r := reports[0]
	assert.Equal(t, "complexity", r.Check)
	assert.Equal(t, wantGoFiles, r.FilesDiscovered, "discovered count mismatch")
	assert.Equal(t, wantGoFiles, r.FilesAnalyzed, "all files fit the budget, none should be skipped")
	assert.False(t, r.Sampled)
	assert.False(t, r.TimedOut)
}

// TestScanSamplingVerification forces a small file budget and verifies that
// the reported analyzed count respects it while discovery still sees everything.
func TestScanSamplingVerification(t *testing.T) {
	root := t.TempDir()

	for i := 0; i < 40; i++ {
		content := "package main\n\nfunc run() {}\n"
		require.NoError(t, os.WriteFile(filepath.Join(root, fmt.Sprintf("gen%d.go", i)), []byte(content), 0o644))
	}

	reports := runScanJSON(t, root, "--check", "complexity", "--max-files", "10")
	require.Len(t, reports, 1)

	r := reports[0]
	assert.Equal(t, 40, r.FilesDiscovered)
	assert.Equal(t, 10, r.FilesAnalyzed)
	assert.True(t, r.Sampled, "exceeding the file budget should mark the report sampled")
}

// TestScanAllChecksVerification runs every built-in check against this
// repository and sanity-checks the reports.
func TestScanAllChecksVerification(t *testing.T) {
	repoRoot, err := filepath.Abs("..")
	require.NoError(t, err)

	reports := runScanJSON(t, repoRoot)
	require.GreaterOrEqual(t, len(reports), 4)

	seen := make(map[string]bool)
	for _, r := range reports {
		t.Run(r.Check, func(t *testing.T) {
			assert.False(t, seen[r.Check], "duplicate report for check")
			seen[r.Check] = true
			assert.Equal(t, repoRoot, r.RootPath)
			assert.Greater(t, r.FilesDiscovered, 0)
			assert.GreaterOrEqual(t, r.FilesDiscovered, r.FilesAnalyzed)
		})
	}
}

// runScanJSON builds the binary once, runs a scan with JSON output and parses the reports.
func runScanJSON(t *testing.T, root string, extraArgs ...string) []scanReport {
	t.Helper()

	repocheckPath := buildBinary(t)

	args := []string{"scan", root, "--output", "json"}
	args = append(args, extraArgs...)
	cmd := exec.Command(repocheckPath, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr
	require.NoError(t, cmd.Run())

	var reports []scanReport
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &reports), "output: %s", stdout.String())
	return reports
}

// buildBinary compiles the CLI into the test temp dir.
func buildBinary(t *testing.T) string {
	t.Helper()

	repocheckPath := filepath.Join(t.TempDir(), "repocheck")
	buildCmd := exec.Command("go", "build", "-o", repocheckPath, "./cmd/repocheck")
	buildCmd.Dir = ".." // Project root
	require.NoError(t, buildCmd.Run())
	return repocheckPath
}
