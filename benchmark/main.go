// Package main provides a performance benchmarking tool for the engram CLI.
// It measures analysis times across different repository sizes, running each
// configuration multiple times, treating the first successful run as cold and
// averaging the rest as warm, generating CSV output for performance tracking.
//
// Prerequisites:
// - engram binary installed and available in PATH
// - Test repositories cloned to the specified base directory
// - Git repositories: flask, fd, git, kubernetes
//
// Usage: go run benchmark/main.go [repo-base-dir]
//
//	repo-base-dir: Directory containing test repositories
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of one repository and mode combination.
type BenchmarkResult struct {
	Repository string
	Mode       string
	ColdTime   string
	WarmTime   string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	RepoBase  string
	Timeout   time.Duration
	Runs      int
	TestRepos []string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [repo-base-dir]\n", os.Args[0])
		os.Exit(1)
	}
	repoBase := os.Args[1]

	config := BenchmarkConfig{
		RepoBase:  repoBase,
		Timeout:   5 * time.Minute,
		Runs:      4,
		TestRepos: []string{"flask", "fd", "git", "kubernetes"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the engram binary and test repositories exist.
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("engram"); err != nil {
		return fmt.Errorf("engram binary not found in PATH")
	}

	for _, repo := range config.TestRepos {
		repoPath := filepath.Join(config.RepoBase, repo)
		if _, err := os.Stat(repoPath); os.IsNotExist(err) {
			return fmt.Errorf("repository %s not found at %s", repo, repoPath)
		}
	}

	return nil
}

// runBenchmarks executes all benchmark modes across configured repositories.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d repos, %v timeout, %d runs per mode\n",
		len(config.TestRepos), config.Timeout, config.Runs)

	for _, repo := range config.TestRepos {
		fmt.Printf("Benchmarking %s\n", repo)

		repoPath := filepath.Join(config.RepoBase, repo)

		// Heuristic analysis alone, then with the snapshot store writing
		// each run into a temp SQLite database.
		results = append(results, runBenchmarkSuite(config, repo, repoPath, "analyze", nil))
		results = append(results, runBenchmarkSuite(config, repo, repoPath, "analyze+store",
			[]string{"--store", "yes", "--store-backend", "sqlite"}))
	}

	return results
}

// runBenchmarkSuite runs the cold/warm cycle for one repository and mode.
func runBenchmarkSuite(config BenchmarkConfig, repo, repoPath, mode string, extraArgs []string) BenchmarkResult {
	fmt.Printf("Running %s on %s (%d runs)\n", mode, repo, config.Runs)

	coldTime, warmTimes := runBenchmark(config, repoPath, extraArgs)

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	warmAvg := "TIMEOUT"
	if len(warmTimes) > 0 {
		var sum float64
		for _, t := range warmTimes {
			sum += t
		}
		warmAvg = fmt.Sprintf("%.3fs", sum/float64(len(warmTimes)))
	}

	fmt.Printf("  Cold time: %s, Warm average: %s\n", coldTimeStr, warmAvg)

	return BenchmarkResult{
		Repository: repo,
		Mode:       mode,
		ColdTime:   coldTimeStr,
		WarmTime:   warmAvg,
	}
}

// runBenchmark executes engram analyze multiple times and returns the cold
// time plus warm times. The first run pays for the OS page cache misses on
// the git object store, so it is reported separately.
func runBenchmark(config BenchmarkConfig, repoPath string, extraArgs []string) (coldTime float64, warmTimes []float64) {
	args := []string{"analyze", ".", "--skip-model", "--provider", "none"}
	args = append(args, extraArgs...)

	var times []float64
	for run := 1; run <= config.Runs; run++ {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		start := time.Now()

		cmd := exec.CommandContext(ctx, "engram", args...)
		cmd.Dir = repoPath
		output, err := cmd.CombinedOutput()
		cancel()

		if err == nil && isSuccess(output) {
			times = append(times, time.Since(start).Seconds())
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if the output indicates a completed analysis.
func isSuccess(output []byte) bool {
	return strings.Contains(string(output), "Analysis completed in")
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/engram_benchmark_%s.csv", timestamp)

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

	if err := writer.Write([]string{"repo", "mode", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		if err := writer.Write([]string{result.Repository, result.Mode, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printModeSummary(results, "analyze", "Heuristic Analysis:")
	printModeSummary(results, "analyze+store", "Analysis With Store:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printModeSummary displays results for a specific mode.
func printModeSummary(results []BenchmarkResult, mode, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Mode == mode {
			fmt.Printf("  %-12s: Cold: %s, Warm: %s\n", result.Repository, result.ColdTime, result.WarmTime)
		}
	}
}
