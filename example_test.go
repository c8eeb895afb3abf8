// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !race

// These examples run workers that synchronize through atomix primitives,
// which the race detector reports as false positives.

package membench_test

import (
	"fmt"
	"sync"
	"time"

	"code.hybscloud.com/iox"

	"code.hybscloud.com/membench"
)

// ExampleNew runs a small write benchmark to completion.
func ExampleNew() {
	p := membench.DetectPlatform()

	bench, err := membench.New(16 * p.PageSize).
		Threads(4).
		Passes(2).
		Operation(membench.Write).
		Start(p)
	if err != nil {
		fmt.Println(err)
		return
	}

	results := bench.WaitForResults()
	sum := membench.Summarize(results)
	fmt.Println("samples:", sum.Samples)
	fmt.Println("pages per thread per pass:", sum.PerThread.MemoryProcessed/2/p.PageSize)
	fmt.Println(bench.Progress().Load().PhaseLabel())

	// Output:
	// samples: 4
	// pages per thread per pass: 4
	// Done
}

// ExampleBench_Progress polls the tracker until the run ends.
func ExampleBench_Progress() {
	p := membench.DetectPlatform()
	bench, _ := membench.New(8 * p.PageSize).Threads(2).Start(p)

	backoff := iox.Backoff{}
	for !bench.IsDone() {
		s := bench.Progress().Load()
		_ = s.PhaseLabel()
		backoff.Wait()
	}
	fmt.Println(len(bench.WaitForResults()))

	// Output:
	// 2
}

// ExampleTracker shows threads moving through phases in lockstep.
func ExampleTracker() {
	const threads = 3
	progress := membench.NewTracker(0, threads, membench.StateAllocating)

	var wg sync.WaitGroup
	for range threads {
		wg.Go(func() {
			progress.TransitionState(membench.ExecutingPass(1, 1), 10*threads)
			progress.Add(10)
		})
	}
	wg.Wait()

	s := progress.Load()
	fmt.Printf("%s: %d/%d\n", s.PhaseLabel(), s.Counter, s.Total)

	// Output:
	// Pass 1 of 1: 30/30
}

// ExampleSummarize aggregates per-thread samples.
func ExampleSummarize() {
	sum := membench.Summarize([]membench.TestResult{
		{MemoryProcessed: 4 << 20, Runtime: 2 * time.Millisecond},
		{MemoryProcessed: 4 << 20, Runtime: 2 * time.Millisecond},
	})
	fmt.Printf("total %.0f MiB/s, per thread %.0f MiB/s\n",
		sum.Total.Throughput()/(1<<20), sum.PerThread.Throughput()/(1<<20))

	// Output:
	// total 4000 MiB/s, per thread 2000 MiB/s
}

// ExampleParseStrategy accepts short keys and display labels.
func ExampleParseStrategy() {
	for _, name := range []string{"avx2", "64-bit", "BYTEWISE"} {
		s, _ := membench.ParseStrategy(name)
		fmt.Printf("%s → %s (%d bytes)\n", name, s, s.Width())
	}

	// Output:
	// avx2 → 256-bit AVX (32 bytes)
	// 64-bit → 64-bit (8 bytes)
	// BYTEWISE → Bytewise (1 bytes)
}
