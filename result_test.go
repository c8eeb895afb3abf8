// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package membench_test

import (
	"math"
	"testing"
	"time"

	"code.hybscloud.com/membench"
)

func TestThroughput(t *testing.T) {
	r := membench.TestResult{MemoryProcessed: 1 << 30, Runtime: 500 * time.Millisecond}
	if got := r.Throughput(); got != 2<<30 {
		t.Fatalf("Throughput: got %v, want %v", got, 2<<30)
	}
	if got := (membench.TestResult{}).Throughput(); !math.IsNaN(got) {
		t.Fatalf("Throughput(0/0): got %v, want NaN", got)
	}
	if got := (membench.TestResult{MemoryProcessed: 1}).Throughput(); !math.IsInf(got, 1) {
		t.Fatalf("Throughput(1/0): got %v, want +Inf", got)
	}
}

func TestSummarize(t *testing.T) {
	s := membench.Summarize([]membench.TestResult{
		{MemoryProcessed: 100, Runtime: 1 * time.Second},
		{MemoryProcessed: 200, Runtime: 2 * time.Second},
		{MemoryProcessed: 300, Runtime: 3 * time.Second},
	})
	if s.Samples != 3 {
		t.Fatalf("Samples: got %d, want 3", s.Samples)
	}
	if s.Total.MemoryProcessed != 600 || s.Total.Runtime != 2*time.Second {
		t.Fatalf("Total: got %+v", s.Total)
	}
	if s.PerThread.MemoryProcessed != 200 || s.PerThread.Runtime != 2*time.Second {
		t.Fatalf("PerThread: got %+v", s.PerThread)
	}
	if got := s.Total.Throughput(); got != 300 {
		t.Fatalf("Total throughput: got %v, want 300", got)
	}

	if got := membench.Summarize(nil); got != (membench.Summary{}) {
		t.Fatalf("Summarize(nil): got %+v", got)
	}
}
