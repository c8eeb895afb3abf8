// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package membench

import (
	"fmt"
	"math"
	"sync"

	"code.hybscloud.com/atomix"
)

// Tracker is a progress counter shared by a fixed set of worker goroutines
// and any number of observers.
//
// Workers report work with [Tracker.Add] and move between phases with
// [Tracker.TransitionState], which doubles as a barrier: nobody proceeds
// into the next phase until every registered thread has arrived, and the
// phase change (state, total, counter) is written by exactly one of them.
//
// Observers read a consistent view with [Tracker.Load]. The counter is
// for display only.
//
// Memory ordering:
//   - Add is a plain FAA; nothing is ordered by it
//   - SetTotal and SetCounter use release stores
//   - the state is read and written under a mutex
//   - barrier arrival is an acquire-release FAA on a packed word
type Tracker[S comparable] struct {
	_       pad
	counter atomix.Uint64
	_       pad
	total   atomix.Uint64
	_       pad
	barrier Barrier
	mu      sync.Mutex
	state   S
}

// NewTracker creates a tracker for the given number of worker threads.
// Panics if threads < 1.
func NewTracker[S comparable](total uint64, threads int, state S) *Tracker[S] {
	t := &Tracker[S]{state: state}
	t.barrier.init(threads)
	t.total.StoreRelaxed(total)
	return t
}

// Add increments the progress counter.
func (t *Tracker[S]) Add(amount uint64) {
	t.counter.Add(amount)
}

// SetTotal sets the amount of work in the current phase.
func (t *Tracker[S]) SetTotal(total uint64) {
	t.total.StoreRelease(total)
}

// SetCounter overwrites the progress counter.
func (t *Tracker[S]) SetCounter(counter uint64) {
	t.counter.StoreRelease(counter)
}

// TransitionState waits for every registered thread to call
// TransitionState, then moves the tracker to next with a fresh total and
// a zero counter.
//
// The last thread to arrive performs the write; every other caller returns
// without touching the state. TransitionState returns false if the caller
// abandoned the transition because a stop was requested. Callers should
// check [Tracker.StopRequested] afterwards regardless of the result.
func (t *Tracker[S]) TransitionState(next S, total uint64) bool {
	return t.barrier.Await(func() {
		t.mu.Lock()
		t.state = next
		t.mu.Unlock()
		t.SetTotal(total)
		t.SetCounter(0)
	})
}

// RequestStop asks every worker to stop at its next checkpoint and wakes
// any worker waiting in TransitionState.
func (t *Tracker[S]) RequestStop() {
	t.barrier.Stop()
}

// StopRequested reports whether RequestStop has been called.
func (t *Tracker[S]) StopRequested() bool {
	return t.barrier.stopped.LoadAcquire()
}

// Load returns a snapshot of the tracker.
func (t *Tracker[S]) Load() Snapshot[S] {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Snapshot[S]{
		Total:     t.total.LoadAcquire(),
		Counter:   t.counter.LoadRelaxed(),
		State:     t.state,
		Waiting:   t.barrier.Waiting(),
		Cancelled: t.barrier.Stopped(),
	}
}

// LoadState returns the current state.
func (t *Tracker[S]) LoadState() S {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Threads returns the number of registered worker threads.
func (t *Tracker[S]) Threads() int {
	return t.barrier.Parties()
}

// SetThreads changes the number of registered worker threads.
// Returns [ErrWouldBlock] while a transition is in flight.
func (t *Tracker[S]) SetThreads(threads int) error {
	return t.barrier.SetParties(threads)
}

// AddThread registers one more worker thread.
// Returns [ErrWouldBlock] while a transition is in flight.
func (t *Tracker[S]) AddThread() error {
	return t.barrier.AddParty()
}

// Reset reinitializes the tracker for a new run and clears any stop
// request. No worker may be using the tracker.
func (t *Tracker[S]) Reset(total uint64, threads int, state S) {
	t.barrier.Reset(threads)
	t.mu.Lock()
	t.state = state
	t.mu.Unlock()
	t.SetTotal(total)
	t.SetCounter(0)
}

// Snapshot is a point-in-time view of a [Tracker].
type Snapshot[S comparable] struct {
	Total     uint64
	Counter   uint64
	State     S
	Waiting   int  // threads arrived at the pending transition
	Cancelled bool // a stop has been requested
}

// Fraction returns Counter/Total. It is NaN when both are zero.
func (s Snapshot[S]) Fraction() float64 {
	if s.Total == 0 {
		if s.Counter == 0 {
			return math.NaN()
		}
		return math.Inf(1)
	}
	return float64(s.Counter) / float64(s.Total)
}

// Complete reports whether the counter has reached the total.
func (s Snapshot[S]) Complete() bool {
	return s.Counter >= s.Total
}

// PhaseLabel returns "Cancelled" for a cancelled run and the state's
// label otherwise.
func (s Snapshot[S]) PhaseLabel() string {
	if s.Cancelled {
		return "Cancelled"
	}
	return fmt.Sprint(s.State)
}
