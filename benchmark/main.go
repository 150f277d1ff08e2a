// Package main provides a performance benchmarking tool for the podpulse CLI.
// It measures report times against a local stub tracker across different
// roster sizes, running each command multiple times, treating the first
// successful cached run as cold and averaging the rest as warm, and
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - podpulse binary installed and available in PATH
//
// Usage: go run benchmark/main.go
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Scenario    string
	Command     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	Timeout     time.Duration
	Workers     int
	NoCacheRuns int
	CacheRuns   int
	Scenarios   map[string]scenario
}

// scenario describes one synthetic workload served by the stub tracker.
type scenario struct {
	pods          int
	itemsPerPod   int
	responseDelay time.Duration
}

func main() {
	config := BenchmarkConfig{
		Timeout:     2 * time.Minute,
		Workers:     8,
		NoCacheRuns: 3,
		CacheRuns:   4,
		Scenarios: map[string]scenario{
			"small":  {pods: 2, itemsPerPod: 50, responseDelay: 20 * time.Millisecond},
			"medium": {pods: 8, itemsPerPod: 300, responseDelay: 50 * time.Millisecond},
			"large":  {pods: 20, itemsPerPod: 1000, responseDelay: 100 * time.Millisecond},
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

// checkPrerequisites verifies that the podpulse binary exists.
func checkPrerequisites() error {
	if _, err := exec.LookPath("podpulse"); err != nil {
		return fmt.Errorf("podpulse binary not found in PATH")
	}
	return nil
}

// runBenchmarks executes all benchmark tests across configured scenarios.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d scenarios, %v timeout, %d workers, no-cache: %d runs, cache: %d runs\n",
		len(config.Scenarios), config.Timeout, config.Workers, config.NoCacheRuns, config.CacheRuns)

	for _, name := range []string{"small", "medium", "large"} {
		sc := config.Scenarios[name]
		fmt.Printf("Benchmarking %s (%d pods, %d items per pod, %v latency)\n",
			name, sc.pods, sc.itemsPerPod, sc.responseDelay)

		endpoint, shutdown, err := startStubTracker(sc)
		if err != nil {
			fmt.Printf("Warning: cannot start stub tracker for %s: %v\n", name, err)
			continue
		}

		workDir, err := writeScenarioConfig(name, endpoint, sc)
		if err != nil {
			fmt.Printf("Warning: cannot write config for %s: %v\n", name, err)
			shutdown()
			continue
		}

		results = append(results, runBenchmarkSuite(config, name, workDir, "kpi"))
		results = append(results, runBenchmarkSuite(config, name, workDir, "features"))

		shutdown()
		_ = os.RemoveAll(workDir)
	}

	return results
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a command.
func runBenchmarkSuite(config BenchmarkConfig, scenarioName, workDir, command string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command, scenarioName)

	// Helper to run a benchmark phase
	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, workDir, command, cacheBackend, numRuns)
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

	// Phase 1: No-cache runs
	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")

	// Phase 2: Cache runs
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Scenario:    scenarioName,
		Command:     command,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a podpulse command multiple times with the given
// cache backend and returns cold time and warm times.
func runBenchmark(config BenchmarkConfig, workDir, command, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{command, "--cache-backend", cacheBackend, "--workers", fmt.Sprintf("%d", config.Workers)}
	if cacheBackend == "sqlite" {
		args = append(args, "--cache-db-connect", filepath.Join(workDir, "bench_cache.db"))
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("podpulse", args...)
		cmd.Dir = workDir

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, command) {
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

// isSuccess checks if command output indicates successful completion.
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)
	if command == "features" {
		return strings.Contains(outputStr, "Showing") && strings.Contains(outputStr, "workers")
	}
	return strings.Contains(outputStr, "Computed in") && strings.Contains(outputStr, "workers")
}

// startStubTracker serves synthetic tracker responses for one scenario.
func startStubTracker(sc scenario) (endpoint string, shutdown func(), err error) {
	issues := buildIssuesResponse(sc.itemsPerPod)
	projects := buildProjectsResponse(sc.itemsPerPod / 10)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(sc.responseDelay)
		var req struct {
			Query string `json:"query"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")
		if strings.Contains(req.Query, "initiative(") {
			_, _ = w.Write(projects)
			return
		}
		_, _ = w.Write(issues)
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, err
	}
	srv := &http.Server{Handler: mux}
	go func() { _ = srv.Serve(ln) }()

	return "http://" + ln.Addr().String(), func() { _ = srv.Close() }, nil
}

// buildIssuesResponse renders one page of synthetic work items spread
// across the six cycle labels.
func buildIssuesResponse(count int) []byte {
	var nodes []map[string]any
	for i := range count {
		cycle := (i % 6) + 1
		node := map[string]any{
			"id":    fmt.Sprintf("item-%d", i),
			"title": fmt.Sprintf("Work item %d", i),
			"state": map[string]string{"name": "In Progress", "type": "started"},
			"labels": map[string]any{
				"nodes": []map[string]string{{"id": fmt.Sprintf("lbl-c%d", cycle), "name": fmt.Sprintf("cycle-%d", cycle)}},
			},
			"createdAt":   "2026-01-05T00:00:00Z",
			"completedAt": nil,
		}
		if i%2 == 0 {
			node["state"] = map[string]string{"name": "Done", "type": "completed"}
			node["completedAt"] = "2026-01-10T00:00:00Z"
		}
		nodes = append(nodes, node)
	}

	payload, _ := json.Marshal(map[string]any{
		"data": map[string]any{
			"issues": map[string]any{
				"nodes":    nodes,
				"pageInfo": map[string]any{"hasNextPage": false, "endCursor": ""},
			},
		},
	})
	return payload
}

// buildProjectsResponse renders one page of synthetic projects.
func buildProjectsResponse(count int) []byte {
	var nodes []map[string]any
	for i := range count {
		nodes = append(nodes, map[string]any{
			"id":         fmt.Sprintf("proj-%d", i),
			"name":       fmt.Sprintf("Project %d", i),
			"state":      "started",
			"lead":       map[string]string{"name": "Bench"},
			"targetDate": "2026-03-31",
			"updatedAt":  "2026-02-01T09:00:00Z",
		})
	}

	payload, _ := json.Marshal(map[string]any{
		"data": map[string]any{
			"initiative": map[string]any{
				"projects": map[string]any{
					"nodes":    nodes,
					"pageInfo": map[string]any{"hasNextPage": false, "endCursor": ""},
				},
			},
		},
	})
	return payload
}

// writeScenarioConfig writes a .podpulse.yaml for one scenario with today
// landing inside cycle C3.
func writeScenarioConfig(name, endpoint string, sc scenario) (string, error) {
	workDir, err := os.MkdirTemp("", "podpulse-bench-"+name+"-*")
	if err != nil {
		return "", err
	}

	var calendar strings.Builder
	base := time.Now().AddDate(0, 0, -35)
	for i := 1; i <= 6; i++ {
		start := base.AddDate(0, 0, (i-1)*14)
		end := start.AddDate(0, 0, 13)
		calendar.WriteString(fmt.Sprintf("    C%d: {start: %q, end: %q}\n",
			i, start.Format("2006-01-02"), end.Format("2006-01-02")))
	}

	var b strings.Builder
	b.WriteString("quarter: Q1-26\n")
	fmt.Fprintf(&b, "tracker-endpoint: %q\n", endpoint)
	b.WriteString("tracker-token: bench-token\n")
	b.WriteString("pods:\n")
	for i := range sc.pods {
		fmt.Fprintf(&b, "  - name: pod-%d\n    team-id: team-%d\n    initiative-id: init-%d\n", i, i, i)
	}
	b.WriteString("calendars:\n")
	for i := range sc.pods {
		fmt.Fprintf(&b, "  pod-%d:\n", i)
		b.WriteString(calendar.String())
	}
	b.WriteString("labels:\n  del: lbl-del\n  cancelled: lbl-cancelled\n  cycles:\n    Q1-26:\n")
	for i := 1; i <= 6; i++ {
		fmt.Fprintf(&b, "      C%d: lbl-c%d\n", i, i)
	}

	if err := os.WriteFile(filepath.Join(workDir, ".podpulse.yaml"), []byte(b.String()), 0o644); err != nil {
		_ = os.RemoveAll(workDir)
		return "", err
	}
	return workDir, nil
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/podpulse_benchmark_%s.csv", timestamp)

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
	if err := writer.Write([]string{"scenario", "cmd", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Scenario, result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "kpi", "KPI Aggregation:")
	printCommandSummary(results, "features", "Feature Movement:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type.
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-8s: No-cache: %s, Cold: %s, Warm: %s\n", result.Scenario, result.NoCacheTime, result.ColdTime, result.WarmTime)
		}
	}
}
