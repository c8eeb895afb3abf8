// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package membench

import (
	"encoding/binary"
	"math/rand/v2"
	"runtime"
	"time"
)

// worker runs the full pipeline for one thread:
// allocate, initialize, execute every pass, report.
type worker struct {
	cfg      Config
	platform Platform
	size     int
	progress *Tracker[State]
}

// run returns false when the worker abandoned the run because a stop was
// requested. The buffer is released on every path.
func (w *worker) run() (TestResult, bool) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	p := w.progress
	memory, release := allocate(w.size, w.platform.PageSize)
	defer release()

	p.Add(1)
	phaseTotal := uint64(w.size) * uint64(w.cfg.Threads)
	p.TransitionState(StateInitializing, phaseTotal)
	if p.StopRequested() {
		return TestResult{}, false
	}
	if !w.initialize(memory) {
		return TestResult{}, false
	}

	ops := w.cfg.Strategy.Ops()
	var result TestResult
	for pass := 1; pass <= w.cfg.Passes; pass++ {
		p.TransitionState(ExecutingPass(pass, w.cfg.Passes), phaseTotal)
		if p.StopRequested() {
			return TestResult{}, false
		}
		start := time.Now()
		touched, ok := w.execute(ops, memory)
		result.Runtime += time.Since(start)
		if !ok {
			return TestResult{}, false
		}
		result.MemoryProcessed += touched
	}

	p.TransitionState(StateDone, uint64(w.cfg.Threads))
	if p.StopRequested() {
		return TestResult{}, false
	}
	p.Add(1)
	return result, true
}

// chunks calls fn for consecutive chunks of memory until fn returns false
// or a stop is requested. It reports whether every chunk was visited.
func (w *worker) chunks(memory []byte, fn func(c []byte)) bool {
	size := w.platform.ChunkSize()
	for off := 0; off < len(memory); off += size {
		c := memory[off:min(off+size, len(memory))]
		fn(c)
		w.progress.Add(uint64(len(c)))
		if w.progress.StopRequested() {
			return false
		}
	}
	return true
}

func (w *worker) initialize(memory []byte) bool {
	switch w.cfg.Init {
	case Ones:
		return w.chunks(memory, func(c []byte) {
			for i := range c {
				c[i] = 0xFF
			}
		})
	case Random:
		src := rand.NewPCG(rand.Uint64(), rand.Uint64())
		return w.chunks(memory, func(c []byte) { fillRandom(c, src) })
	default:
		return w.chunks(memory, func(c []byte) { clear(c) })
	}
}

// fillRandom writes one 64-bit draw per 8 bytes of b.
func fillRandom(b []byte, src rand.Source) {
	for len(b) >= 8 {
		binary.NativeEndian.PutUint64(b, src.Uint64())
		b = b[8:]
	}
	if len(b) > 0 {
		var tail [8]byte
		binary.NativeEndian.PutUint64(tail[:], src.Uint64())
		copy(b, tail[:])
	}
}

// execute applies the operation to every chunk and returns the number of
// bytes touched.
func (w *worker) execute(ops Ops, memory []byte) (int, bool) {
	touched := 0
	var visit func(c []byte)
	switch w.cfg.Operation {
	case Read:
		visit = func(c []byte) { touched += ops.Read(c) }
	case Write:
		visit = func(c []byte) { touched += ops.Write(c) }
	case Copy:
		visit = func(c []byte) {
			half := len(c) / 2
			touched += 2 * ops.CopyNonOverlapping(c[half:2*half], c[:half])
		}
	}
	ok := w.chunks(memory, visit)
	return touched, ok
}
