// Package main provides a performance benchmarking tool for the tooldock CLI.
// It measures acquisition times for catalog tools, treating the first run
// after a cache clear as cold and averaging the remaining runs as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - tooldock binary installed and available in PATH
// - Network access to GitHub releases
//
// Usage: go run benchmark/main.go [cache-dir]
//
//	cache-dir: Directory used as the local artifact cache for the run
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	Tool     string
	Version  string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	CacheDir     string
	Timeout      time.Duration
	WarmRuns     int
	ToolVersions map[string]string
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [cache-dir]\n", os.Args[0])
		os.Exit(1)
	}
	cacheDir := os.Args[1]

	config := BenchmarkConfig{
		CacheDir: cacheDir,
		Timeout:  5 * time.Minute,
		WarmRuns: 3,
		ToolVersions: map[string]string{
			"buildx":  "latest",
			"compose": "latest",
		},
	}

	if err := checkPrerequisites(); err != nil {
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

// checkPrerequisites verifies that the tooldock binary exists
func checkPrerequisites() error {
	if _, err := exec.LookPath("tooldock"); err != nil {
		return fmt.Errorf("tooldock binary not found in PATH")
	}
	return nil
}

// runBenchmarks executes cold and warm acquisition runs for every catalog tool
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d tools, %v timeout, %d warm runs\n",
		len(config.ToolVersions), config.Timeout, config.WarmRuns)

	for tool, version := range config.ToolVersions {
		fmt.Printf("Benchmarking %s %s\n", tool, version)

		// Cold run: clear the cache first so the release is downloaded.
		if err := runTooldock(config, config.Timeout, "cache", "clear"); err != nil {
			fmt.Printf("Warning: failed to clear cache: %v\n", err)
		}

		coldTime, err := timedFetch(config, tool, version)
		coldTimeStr := "TIMEOUT"
		if err == nil {
			coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
		}

		// Warm runs: same acquisition served from the local cache tier.
		var warmTimes []float64
		for run := 1; run <= config.WarmRuns; run++ {
			warmTime, err := timedFetch(config, tool, version)
			if err != nil {
				continue
			}
			warmTimes = append(warmTimes, warmTime)
		}

		warmTimeStr := "TIMEOUT"
		if len(warmTimes) > 0 {
			var sum float64
			for _, t := range warmTimes {
				sum += t
			}
			warmTimeStr = fmt.Sprintf("%.3fs", sum/float64(len(warmTimes)))
		}

		fmt.Printf("  Cold time: %s, Warm average: %s\n", coldTimeStr, warmTimeStr)

		results = append(results, BenchmarkResult{
			Tool:     tool,
			Version:  version,
			ColdTime: coldTimeStr,
			WarmTime: warmTimeStr,
		})
	}

	return results
}

// timedFetch runs one cache-populating acquisition and returns its duration in seconds
func timedFetch(config BenchmarkConfig, tool, version string) (float64, error) {
	start := time.Now()
	if err := runTooldock(config, config.Timeout, "fetch", tool, version); err != nil {
		return 0, err
	}
	return time.Since(start).Seconds(), nil
}

// runTooldock executes a tooldock command against the benchmark cache directory
func runTooldock(config BenchmarkConfig, timeout time.Duration, args ...string) error {
	args = append(args, "--cache-dir", config.CacheDir)
	cmd := exec.Command("tooldock", args...)

	done := make(chan error, 1)
	var output []byte

	go func() {
		var cmdErr error
		output, cmdErr = cmd.CombinedOutput()
		done <- cmdErr
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("tooldock %s failed: %w\nOutput: %s", strings.Join(args, " "), err, string(output))
		}
		return nil
	case <-time.After(timeout):
		_ = cmd.Process.Kill()
		return fmt.Errorf("tooldock %s timed out after %v", strings.Join(args, " "), timeout)
	}
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/tooldock_benchmark_%s.csv", timestamp)

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
	if err := writer.Write([]string{"tool", "version", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Tool, result.Version, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %-12s: Cold: %s, Warm: %s\n", result.Tool, result.ColdTime, result.WarmTime)
	}
	fmt.Printf("Benchmark script completed successfully\n")
}
