// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package membench

import (
	"math"
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

const (
	arrivedMask = 1<<32 - 1
	spinRounds  = 64
)

// Barrier is a reusable cyclic barrier for a fixed number of parties.
//
// Arrival is a single Fetch-And-Add on a word that packs the party count
// (high 32 bits) with the number of arrived callers (low 32 bits). The
// caller whose increment makes the two halves equal is the tripper: it
// runs the cycle's onTrip callback, clears the arrival count, advances the
// generation and wakes everybody else. Because exactly one increment can
// produce the equal value, exactly one caller trips each cycle.
//
// Non-tripping callers spin briefly, then sleep on a condition variable
// until the generation advances or [Barrier.Stop] is called.
//
// Stop is sticky: once stopped, Await returns false immediately until
// [Barrier.Reset]. The zero value is not usable; create barriers with
// [NewBarrier].
type Barrier struct {
	_          pad
	word       atomix.Uint64 // parties<<32 | arrived
	_          pad
	generation atomix.Uint64
	_          pad
	stopped    atomix.Bool
	_          pad
	mu         sync.Mutex
	cond       sync.Cond
}

// NewBarrier creates a barrier for the given number of parties.
// Panics if parties < 1 or parties does not fit in 32 bits.
func NewBarrier(parties int) *Barrier {
	b := &Barrier{}
	b.init(parties)
	return b
}

func (b *Barrier) init(parties int) {
	checkParties(parties)
	b.cond.L = &b.mu
	b.word.StoreRelaxed(uint64(parties) << 32)
}

// Await arrives at the barrier and waits for the remaining parties.
//
// onTrip, if non-nil, is run by the single caller that completes the cycle,
// before any other caller is released. Await returns true when the cycle
// completed (whether or not the caller was the tripper) and false when the
// caller abandoned the cycle because the barrier was stopped.
func (b *Barrier) Await(onTrip func()) bool {
	if b.stopped.LoadAcquire() {
		return false
	}

	gen := b.generation.LoadAcquire()
	w := b.word.AddAcqRel(1)
	if uint32(w) == uint32(w>>32) {
		if onTrip != nil {
			onTrip()
		}
		b.mu.Lock()
		b.word.StoreRelease(w &^ arrivedMask)
		b.generation.StoreRelease(gen + 1)
		b.cond.Broadcast()
		b.mu.Unlock()
		return true
	}

	sw := spin.Wait{}
	for range spinRounds {
		if b.generation.LoadAcquire() != gen {
			return true
		}
		if b.stopped.LoadAcquire() {
			return false
		}
		sw.Once()
	}

	b.mu.Lock()
	for b.generation.LoadAcquire() == gen && !b.stopped.LoadAcquire() {
		b.cond.Wait()
	}
	advanced := b.generation.LoadAcquire() != gen
	b.mu.Unlock()
	return advanced
}

// Stop releases every sleeping caller and makes future Await calls
// return false without arriving.
func (b *Barrier) Stop() {
	b.stopped.StoreRelease(true)
	b.mu.Lock()
	b.cond.Broadcast()
	b.mu.Unlock()
}

// Stopped reports whether Stop has been called since the last Reset.
func (b *Barrier) Stopped() bool {
	return b.stopped.LoadAcquire()
}

// Parties returns the number of callers that complete a cycle.
func (b *Barrier) Parties() int {
	return int(b.word.LoadAcquire() >> 32)
}

// Waiting returns the number of callers that have arrived in the current
// cycle. The value is advisory.
func (b *Barrier) Waiting() int {
	return int(uint32(b.word.LoadRelaxed()))
}

// Generation returns the number of completed cycles.
func (b *Barrier) Generation() uint64 {
	return b.generation.LoadAcquire()
}

// SetParties changes the number of callers that complete a cycle.
//
// Changing the party count while a cycle is in flight could strand the
// callers already waiting or trip the cycle early, so SetParties returns
// [ErrWouldBlock] whenever at least one caller has arrived. Panics if
// parties < 1 or parties does not fit in 32 bits.
func (b *Barrier) SetParties(parties int) error {
	checkParties(parties)
	return b.updateParties(func(int) int { return parties })
}

// AddParty registers one more party. It follows the rules of SetParties.
func (b *Barrier) AddParty() error {
	return b.updateParties(func(current int) int {
		checkParties(current + 1)
		return current + 1
	})
}

func (b *Barrier) updateParties(next func(current int) int) error {
	sw := spin.Wait{}
	for {
		w := b.word.LoadAcquire()
		if uint32(w) != 0 {
			return ErrWouldBlock
		}
		parties := next(int(w >> 32))
		if b.word.CompareAndSwapAcqRel(w, uint64(parties)<<32) {
			return nil
		}
		sw.Once()
	}
}

// Reset reinitializes the barrier for a new set of parties and clears the
// stop flag. No caller may be inside Await.
func (b *Barrier) Reset(parties int) {
	checkParties(parties)
	b.mu.Lock()
	b.word.StoreRelease(uint64(parties) << 32)
	b.stopped.StoreRelease(false)
	b.mu.Unlock()
}

func checkParties(parties int) {
	if parties < 1 || uint64(parties) > math.MaxUint32 {
		panic("membench: barrier parties must be in [1, 2^32-1]")
	}
}
