// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package membench measures memory throughput with concurrent workers.
//
// A run allocates one page-aligned buffer per worker thread, fills it,
// then times a number of passes in which every worker reads, writes or
// copies its whole buffer with a chosen register width:
//
//   - Bytewise, 32-bit, 64-bit, 128-bit: general purpose registers
//   - 128-bit SSE, 256-bit AVX, 512-bit AVX: streaming (non-temporal)
//     vector loads and stores, amd64 only
//
// # Quick Start
//
//	p := membench.DetectPlatform()
//	bench, err := membench.New(1<<30).Threads(8).Strategy(membench.AVX2).Start(p)
//	if err != nil {
//	    return err
//	}
//	results := bench.WaitForResults()
//	fmt.Printf("%.2f GB/s\n", membench.Summarize(results).Total.Throughput()/1e9)
//
// # Phases
//
// Workers move through the same phases in lockstep:
//
//	Allocating Buffers → Initializing Buffers → Pass 1 of n → … → Pass n of n → Done
//
// Every phase change is a barrier. The last worker to arrive writes the new
// state and resets the progress counter; the others sleep until it has.
// Between barriers workers never wait on each other.
//
// # Progress and Cancellation
//
// [Bench.Progress] returns the shared [Tracker]. Observers poll it:
//
//	backoff := iox.Backoff{}
//	for !bench.IsDone() {
//	    s := bench.Progress().Load()
//	    fmt.Printf("%s %3.0f%%\n", s.PhaseLabel(), 100*s.Fraction())
//	    backoff.Wait()
//	}
//
// Workers update the counter and check for a stop request after every chunk
// of four pages. [Tracker.RequestStop] wakes workers waiting at a barrier;
// cancelled workers release their buffers and produce no sample.
//
//	results, err := bench.Wait(ctx) // ctx cancellation requests a stop
//
// # Results
//
// Each completed worker yields a [TestResult] with the bytes it touched and
// the time spent in operation work, excluding barrier waits. [Summarize]
// combines them: total bytes with the mean runtime, and a per-thread share.
//
// # Platform
//
// [Platform] carries the page size and the CPU features the vector
// strategies need. [DetectPlatform] reads them from the running machine;
// tests build one directly. [Config.Validate] rejects strategies the
// platform does not support, since their instructions would fault.
//
// # Error Handling
//
// Configuration errors wrap [ErrInvalidConfig] or [ErrUnsupportedStrategy].
// [ErrWouldBlock] is a control flow signal from [Bench.TryResults] and
// [Tracker.SetThreads]:
//
//	if membench.IsWouldBlock(err) {
//	    // Not yet; retry later
//	}
//
// # Barrier
//
// [Barrier] is the reusable cyclic barrier under [Tracker]. Arrival is one
// Fetch-And-Add on a word packing the party count with the arrival count,
// so exactly one caller observes the cycle complete and runs its callback.
//
// # Race Detection
//
// Tests consult [RaceEnabled] to skip concurrent tests under the race
// detector, which does not see atomix memory ordering.
package membench
