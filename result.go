// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package membench

import "time"

// TestResult is the sample one worker produces for a completed run.
type TestResult struct {
	// MemoryProcessed is the number of bytes touched across all passes.
	// For Copy, both the source and destination halves count.
	MemoryProcessed int `json:"memory_processed"`
	// Runtime covers only the operation work, not barrier waits.
	Runtime time.Duration `json:"runtime_ns"`
}

// Throughput returns bytes per second. A zero runtime yields +Inf, or NaN
// when nothing was processed.
func (r TestResult) Throughput() float64 {
	return float64(r.MemoryProcessed) / r.Runtime.Seconds()
}

// Summary aggregates the samples of one run.
type Summary struct {
	Samples int
	// Total is the sum of processed bytes with the mean runtime.
	Total TestResult
	// PerThread is Total's processed bytes divided by the sample count,
	// with the same mean runtime.
	PerThread TestResult
}

// Summarize aggregates results. An empty slice yields a zero Summary.
func Summarize(results []TestResult) Summary {
	s := Summary{Samples: len(results)}
	if len(results) == 0 {
		return s
	}
	var runtime time.Duration
	for _, r := range results {
		s.Total.MemoryProcessed += r.MemoryProcessed
		runtime += r.Runtime
	}
	n := len(results)
	s.Total.Runtime = runtime / time.Duration(n)
	s.PerThread = TestResult{
		MemoryProcessed: s.Total.MemoryProcessed / n,
		Runtime:         s.Total.Runtime,
	}
	return s
}
