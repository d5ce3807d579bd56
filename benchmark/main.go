// Package main provides a performance benchmarking tool for the Repocheck CLI.
// It measures scan execution times across different repository sizes and budget
// profiles, running each test multiple times, treating the first successful run
// as cold and averaging the rest as warm, generating CSV output for performance
// analysis and documentation.
//
// Prerequisites:
// - repocheck binary installed and available in PATH
// - Test repositories cloned to the specified base directory
// - Repositories: csv-parser, fd, git, kubernetes
//
// Usage: go run benchmark/main.go [repo-base-dir]
//
//	repo-base-dir: Directory containing test repositories
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-tracking average, cold run and average of warm runs).
type BenchmarkResult struct {
	Repository  string
	Profile     string
	NoTrackTime string
	ColdTime    string
	WarmTime    string
}

// BudgetProfile describes a named set of scan budget flags.
type BudgetProfile struct {
	Name string
	Args string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	RepoBase    string
	Timeout     time.Duration
	NoTrackRuns int
	TrackRuns   int
	TestRepos   []string
	Profiles    []BudgetProfile
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [repo-base-dir]\n", os.Args[0])
		os.Exit(1)
	}
	repoBase := os.Args[1]

	config := BenchmarkConfig{
		RepoBase:    repoBase,
		Timeout:     5 * time.Minute,
		NoTrackRuns: 3,
		TrackRuns:   4,
		TestRepos:   []string{"csv-parser", "fd", "git", "kubernetes"},
		Profiles: []BudgetProfile{
			{Name: "strict", Args: "--soft-timeout 5 --max-files 200 --workers 4"},
			{Name: "default", Args: ""},
			{Name: "generous", Args: "--soft-timeout 120 --max-files 5000 --workers 14"},
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Clear prior tracking data so cold runs start fresh
	fmt.Printf("Clearing analysis data...\n")
	clearCmd := exec.Command("repocheck", "analysis", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear analysis data: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Analysis data cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(config, results)
}

// checkPrerequisites verifies that repocheck binary and test repositories exist
func checkPrerequisites(config BenchmarkConfig) error {
	// Check if repocheck is available
	if _, err := exec.LookPath("repocheck"); err != nil {
		return fmt.Errorf("repocheck binary not found in PATH")
	}

	// Check if repositories exist
	for _, repo := range config.TestRepos {
		repoPath := filepath.Join(config.RepoBase, repo)
		if _, err := os.Stat(repoPath); os.IsNotExist(err) {
			return fmt.Errorf("repository %s not found at %s", repo, repoPath)
		}
	}

	return nil
}

// runBenchmarks executes all benchmark tests across configured repositories
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d repos, %v timeout, no-tracking: %d runs, tracking: %d runs\n",
		len(config.TestRepos), config.Timeout, config.NoTrackRuns, config.TrackRuns)

	for _, repo := range config.TestRepos {
		fmt.Printf("Benchmarking %s\n", repo)

		repoPath := filepath.Join(config.RepoBase, repo)

		for _, profile := range config.Profiles {
			result := runBenchmarkSuite(config, repo, repoPath, profile)
			results = append(results, result)
		}
	}

	return results
}

// runBenchmarkSuite runs both no-tracking and tracking benchmarks for a budget profile
func runBenchmarkSuite(config BenchmarkConfig, repo, repoPath string, profile BudgetProfile) BenchmarkResult {
	fmt.Printf("Running %s profile on %s\n", profile.Name, repo)

	// Helper to run a benchmark phase
	runPhase := func(backend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, repoPath, profile.Args, backend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: No-tracking runs
	_, noTrackAvg := runPhase("", config.NoTrackRuns, "No-tracking")

	// Phase 2: Tracking runs
	coldTime, warmAvg := runPhase("sqlite", config.TrackRuns, "Tracking")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-tracking average: %s, Cold time: %s, Warm average: %s\n", noTrackAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Repository:  repo,
		Profile:     profile.Name,
		NoTrackTime: noTrackAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a repocheck scan multiple times with the specified analysis backend
// and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, repoPath, extraArgs, backend string, numRuns int) (coldTime float64, warmTimes []float64) {
	// Prepare command arguments
	args := []string{"scan", repoPath}
	if backend != "" {
		args = append(args, "--analysis-backend", backend)
	}
	if extraArgs != "" {
		args = append(args, parseArgs(extraArgs)...)
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("repocheck", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

func parseArgs(argsStr string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false

	for _, r := range argsStr {
		switch r {
		case '"':
			inQuotes = !inQuotes
		case ' ':
			if !inQuotes && current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			} else if inQuotes {
				current.WriteRune(r)
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	outputStr := string(output)

	return strings.Contains(outputStr, "Analysis completed in") &&
		strings.Contains(outputStr, "workers")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/repocheck_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"repo", "profile", "no_track_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Repository, result.Profile, result.NoTrackTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(config BenchmarkConfig, results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	for _, profile := range config.Profiles {
		printProfileSummary(results, profile.Name)
	}

	fmt.Printf("Benchmark script completed successfully\n")
}

// printProfileSummary displays results for a specific budget profile
func printProfileSummary(results []BenchmarkResult, profile string) {
	fmt.Printf("%s profile:\n", profile)
	for _, result := range results {
		if result.Profile == profile {
			fmt.Printf("  %-12s: No-tracking: %s, Cold: %s, Warm: %s\n", result.Repository, result.NoTrackTime, result.ColdTime, result.WarmTime)
		}
	}
}
