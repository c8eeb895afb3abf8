// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package report formats benchmark results as markdown tables or JSON.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/dustin/go-humanize"

	"code.hybscloud.com/membench"
)

// ErrNoResults is returned by Generate for an uncancelled run without
// samples.
var ErrNoResults = errors.New("report: no results to report")

// Run is one finished benchmark.
type Run struct {
	Config    membench.Config
	Platform  membench.Platform
	Results   []membench.TestResult
	Cancelled bool
}

// Generate writes a markdown summary of run to w.
func Generate(w io.Writer, run Run) error {
	if len(run.Results) == 0 && !run.Cancelled {
		return ErrNoResults
	}

	c := run.Config
	fmt.Fprintln(w, "## Memory Benchmark Results")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Strategy: **%s** | Operation: **%s** | Init: **%s**\n", c.Strategy, c.Operation, c.Init)
	fmt.Fprintf(w, "Threads: %d | Passes: %d | Memory: %s (%s per thread)\n",
		c.Threads, c.Passes,
		formatBytes(c.MemorySize), formatBytes(c.BufferSize(run.Platform)))
	fmt.Fprintf(w, "Page size: %s | CPU features: %s\n", formatBytes(run.Platform.PageSize), run.Platform.Features)
	fmt.Fprintln(w)

	if run.Cancelled {
		fmt.Fprintln(w, "Status: **Cancelled**")
		if len(run.Results) == 0 {
			return nil
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "| Thread | Processed | Runtime | Throughput |")
	fmt.Fprintln(w, "|--------|-----------|---------|------------|")
	for i, r := range run.Results {
		writeRow(w, fmt.Sprint(i), r)
	}

	sum := membench.Summarize(run.Results)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Aggregate | Processed | Mean Runtime | Throughput |")
	fmt.Fprintln(w, "|-----------|-----------|--------------|------------|")
	writeRow(w, "Total", sum.Total)
	writeRow(w, "Per thread", sum.PerThread)

	return nil
}

func writeRow(w io.Writer, label string, r membench.TestResult) {
	fmt.Fprintf(w, "| %s | %s | %s | %s |\n",
		label,
		formatBytes(r.MemoryProcessed),
		formatDuration(r.Runtime),
		formatRate(r.Throughput()),
	)
}

type jsonResult struct {
	membench.TestResult
	Throughput float64 `json:"throughput_bytes_per_sec"`
}

type jsonRun struct {
	Strategy   membench.Strategy  `json:"strategy"`
	Operation  membench.Operation `json:"operation"`
	Init       membench.InitType  `json:"init"`
	Threads    int                `json:"threads"`
	Passes     int                `json:"passes"`
	MemorySize int                `json:"memory_size"`
	PageSize   int                `json:"page_size"`
	Cancelled  bool               `json:"cancelled"`
	Results    []jsonResult       `json:"results"`
	Total      *jsonResult        `json:"total,omitempty"`
	PerThread  *jsonResult        `json:"per_thread,omitempty"`
}

// GenerateJSON writes run as JSON to w. Throughput values that are not
// finite are written as 0.
func GenerateJSON(w io.Writer, run Run) error {
	c := run.Config
	out := jsonRun{
		Strategy:   c.Strategy,
		Operation:  c.Operation,
		Init:       c.Init,
		Threads:    c.Threads,
		Passes:     c.Passes,
		MemorySize: c.MemorySize,
		PageSize:   run.Platform.PageSize,
		Cancelled:  run.Cancelled,
		Results:    make([]jsonResult, 0, len(run.Results)),
	}
	for _, r := range run.Results {
		out.Results = append(out.Results, withThroughput(r))
	}
	if len(run.Results) > 0 {
		sum := membench.Summarize(run.Results)
		total, per := withThroughput(sum.Total), withThroughput(sum.PerThread)
		out.Total, out.PerThread = &total, &per
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}

func withThroughput(r membench.TestResult) jsonResult {
	tp := r.Throughput()
	if math.IsNaN(tp) || math.IsInf(tp, 0) {
		tp = 0
	}
	return jsonResult{TestResult: r, Throughput: tp}
}

func formatBytes(n int) string {
	if n <= 0 {
		return "-"
	}
	return humanize.IBytes(uint64(n))
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
	}

	return fmt.Sprintf("%.2fs", d.Seconds())
}

func formatRate(bps float64) string {
	if math.IsNaN(bps) || math.IsInf(bps, 0) || bps < 0 {
		return "-"
	}

	return humanize.IBytes(uint64(bps)) + "/s"
}
