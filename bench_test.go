// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package membench_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"code.hybscloud.com/iox"

	"code.hybscloud.com/membench"
)

func hostPlatform() membench.Platform {
	return membench.DetectPlatform()
}

// =============================================================================
// Bench - Complete Runs
// =============================================================================

func TestBenchWriteCompletes(t *testing.T) {
	if membench.RaceEnabled {
		t.Skip("skip: atomix ordering is invisible to the race detector")
	}

	p := hostPlatform()
	memory := 4 * p.PageSize
	bench, err := membench.New(memory).
		Threads(4).
		Passes(2).
		Operation(membench.Write).
		Init(membench.Zeros).
		Strategy(membench.Bytewise).
		Start(p)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	results := bench.WaitForResults()
	if len(results) != 4 {
		t.Fatalf("results: got %d, want 4", len(results))
	}
	for i, r := range results {
		if r.MemoryProcessed != memory/4*2 {
			t.Fatalf("result %d: processed %d, want %d", i, r.MemoryProcessed, memory/4*2)
		}
	}
	if !bench.IsDone() {
		t.Fatal("IsDone: got false after WaitForResults")
	}
	s := bench.Progress().Load()
	if s.PhaseLabel() != "Done" || s.Counter != 4 || s.Total != 4 {
		t.Fatalf("final snapshot: got %q %d/%d", s.PhaseLabel(), s.Counter, s.Total)
	}
}

func TestBenchAllOperationsAndStrategies(t *testing.T) {
	if membench.RaceEnabled {
		t.Skip("skip: atomix ordering is invisible to the race detector")
	}

	p := hostPlatform()
	// Five pages per thread: one full chunk plus a one-page tail.
	perThread := 5 * p.PageSize
	for _, s := range membench.EnabledStrategies(p.Features) {
		for _, op := range membench.Operations() {
			for _, it := range membench.InitTypes() {
				bench, err := membench.New(2 * perThread).
					Threads(2).
					Passes(3).
					Operation(op).
					Init(it).
					Strategy(s).
					Start(p)
				if err != nil {
					t.Fatalf("%v/%v/%v: Start: %v", s, op, it, err)
				}
				results := bench.WaitForResults()
				if len(results) != 2 {
					t.Fatalf("%v/%v/%v: got %d results, want 2", s, op, it, len(results))
				}
				for _, r := range results {
					if r.MemoryProcessed != perThread*3 {
						t.Fatalf("%v/%v/%v: processed %d, want %d", s, op, it, r.MemoryProcessed, perThread*3)
					}
					if r.Runtime <= 0 {
						t.Fatalf("%v/%v/%v: runtime %v", s, op, it, r.Runtime)
					}
				}
			}
		}
	}
}

func TestBenchStartRejectsInvalidConfig(t *testing.T) {
	p := membench.Platform{PageSize: 4096}
	_, err := membench.New(4096).Strategy(membench.AVX512).Start(p)
	if !errors.Is(err, membench.ErrUnsupportedStrategy) {
		t.Fatalf("Start: got %v, want ErrUnsupportedStrategy", err)
	}
	_, err = membench.New(4096).Threads(2).Start(p)
	if !errors.Is(err, membench.ErrInvalidConfig) {
		t.Fatalf("Start: got %v, want ErrInvalidConfig", err)
	}
}

// =============================================================================
// Bench - Cancellation
// =============================================================================

// TestBenchImmediateStop requests a stop right after Start. Scheduling may
// let a worker finish a tiny run first, so the property is checked
// statistically.
func TestBenchImmediateStop(t *testing.T) {
	if membench.RaceEnabled {
		t.Skip("skip: atomix ordering is invisible to the race detector")
	}

	const trials = 50
	p := hostPlatform()
	empty := 0
	for range trials {
		bench, err := membench.New(64 * p.PageSize).Threads(4).Passes(4).Start(p)
		if err != nil {
			t.Fatalf("Start: %v", err)
		}
		bench.Progress().RequestStop()
		if len(bench.WaitForResults()) == 0 {
			empty++
		}
		if !bench.IsDone() {
			t.Fatal("IsDone: got false after stop")
		}
		if got := bench.Progress().Load().PhaseLabel(); got != "Cancelled" {
			t.Fatalf("PhaseLabel: got %q, want Cancelled", got)
		}
	}
	if empty < trials*9/10 {
		t.Fatalf("empty results in %d of %d trials, want at least %d", empty, trials, trials*9/10)
	}
}

func TestBenchWaitContextCancel(t *testing.T) {
	if membench.RaceEnabled {
		t.Skip("skip: atomix ordering is invisible to the race detector")
	}

	p := hostPlatform()
	bench, err := membench.New(64 << 20).Threads(2).Passes(1000).Start(p)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	results, err := bench.Wait(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Wait: got %v, want DeadlineExceeded", err)
	}
	if len(results) != 0 {
		t.Fatalf("Wait: got %d results from a cancelled run", len(results))
	}
	select {
	case <-bench.Done():
	default:
		t.Fatal("Done: workers still running after Wait returned")
	}
}

func TestBenchTryResults(t *testing.T) {
	if membench.RaceEnabled {
		t.Skip("skip: atomix ordering is invisible to the race detector")
	}

	p := hostPlatform()
	bench, err := membench.New(8 * p.PageSize).Threads(2).Start(p)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	backoff := iox.Backoff{}
	deadline := time.Now().Add(10 * time.Second)
	for {
		results, err := bench.TryResults()
		if err == nil {
			if len(results) != 2 {
				t.Fatalf("TryResults: got %d results, want 2", len(results))
			}
			return
		}
		if !membench.IsWouldBlock(err) {
			t.Fatalf("TryResults: got %v, want ErrWouldBlock", err)
		}
		if time.Now().After(deadline) {
			t.Fatal("TryResults: run did not finish")
		}
		backoff.Wait()
	}
}
