// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package membench

import (
	"context"
	"sync"
)

// Bench is a running benchmark.
//
// Each worker goroutine is locked to its own OS thread and owns its buffer.
// Workers only meet inside [Tracker.TransitionState]. Observers poll
// [Bench.Progress]; cancellation goes through [Tracker.RequestStop] or
// [Bench.Wait].
type Bench struct {
	cfg      Config
	platform Platform
	progress *Tracker[State]
	results  []TestResult
	finished []bool
	done     chan struct{}
}

// Start validates c and launches one worker per thread.
func (c Config) Start(p Platform) (*Bench, error) {
	if err := c.Validate(p); err != nil {
		return nil, err
	}

	b := &Bench{
		cfg:      c,
		platform: p,
		progress: NewTracker(uint64(c.Threads), c.Threads, StateAllocating),
		results:  make([]TestResult, c.Threads),
		finished: make([]bool, c.Threads),
		done:     make(chan struct{}),
	}

	size := c.BufferSize(p)
	var wg sync.WaitGroup
	for i := range c.Threads {
		w := &worker{cfg: c, platform: p, size: size, progress: b.progress}
		wg.Go(func() {
			b.results[i], b.finished[i] = w.run()
		})
	}
	go func() {
		wg.Wait()
		close(b.done)
	}()
	return b, nil
}

// Config returns the configuration the benchmark was started with.
func (b *Bench) Config() Config {
	return b.cfg
}

// Platform returns the platform the benchmark was started with.
func (b *Bench) Platform() Platform {
	return b.platform
}

// Progress returns the tracker shared with the workers.
func (b *Bench) Progress() *Tracker[State] {
	return b.progress
}

// IsDone reports whether the run reached [Done] or was cancelled.
// Workers may still be exiting; use [Bench.Done] to wait for them.
func (b *Bench) IsDone() bool {
	return b.progress.StopRequested() || b.progress.LoadState().Phase == Done
}

// Done returns a channel that is closed once every worker has exited.
func (b *Bench) Done() <-chan struct{} {
	return b.done
}

// WaitForResults blocks until every worker has exited and returns the
// samples of the workers that completed, ordered by worker.
func (b *Bench) WaitForResults() []TestResult {
	<-b.done
	return b.collect()
}

// TryResults returns the samples if every worker has exited, or
// [ErrWouldBlock] otherwise.
func (b *Bench) TryResults() ([]TestResult, error) {
	select {
	case <-b.done:
		return b.collect(), nil
	default:
		return nil, ErrWouldBlock
	}
}

// Wait blocks until every worker has exited or ctx is done.
//
// If ctx is done first, Wait requests a stop, still waits for the workers
// to exit, and returns the samples collected so far together with ctx.Err().
func (b *Bench) Wait(ctx context.Context) ([]TestResult, error) {
	select {
	case <-b.done:
		return b.collect(), nil
	case <-ctx.Done():
		b.progress.RequestStop()
		<-b.done
		return b.collect(), ctx.Err()
	}
}

func (b *Bench) collect() []TestResult {
	out := make([]TestResult, 0, len(b.results))
	for i, r := range b.results {
		if b.finished[i] {
			out = append(out, r)
		}
	}
	return out
}
