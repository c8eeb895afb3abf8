// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package membench

import (
	"unsafe"

	"code.hybscloud.com/atomix"

	"code.hybscloud.com/membench/internal/chunk"
)

// readSink receives the fold of every Read so the loads stay observable.
var readSink atomix.Uint64

type word interface {
	~uint8 | ~uint32 | ~uint64
}

// wordOps touches memory one T at a time, block-unrolled up to unroll
// elements.
type wordOps[T word] struct {
	pattern T
	unroll  int
}

func (o wordOps[T]) Read(buf []byte) int {
	words := chunk.View[T](buf)
	var acc T
	chunk.Blocks(len(words), o.unroll, func(start, count int) {
		for _, w := range words[start : start+count] {
			acc ^= w
		}
	})
	readSink.StoreRelaxed(uint64(acc))
	return len(words) * int(unsafe.Sizeof(acc))
}

func (o wordOps[T]) Write(buf []byte) int {
	words := chunk.View[T](buf)
	chunk.Blocks(len(words), o.unroll, func(start, count int) {
		block := words[start : start+count]
		for i := range block {
			block[i] = o.pattern
		}
	})
	return len(words) * int(unsafe.Sizeof(o.pattern))
}

func (o wordOps[T]) CopyNonOverlapping(dst, src []byte) int {
	d, s := chunk.AlignPair(dst, src, int(unsafe.Sizeof(o.pattern)))
	to, from := chunk.View[T](d), chunk.View[T](s)
	chunk.Blocks(len(from), o.unroll, func(start, count int) {
		for i := start; i < start+count; i++ {
			to[i] = from[i]
		}
	})
	return len(d)
}

// bytewiseOps reads and writes single bytes and copies with the runtime's
// memmove.
type bytewiseOps struct{}

var bytes8 = wordOps[uint8]{pattern: writePattern, unroll: chunk.MaxUnroll}

func (bytewiseOps) Read(buf []byte) int  { return bytes8.Read(buf) }
func (bytewiseOps) Write(buf []byte) int { return bytes8.Write(buf) }

func (bytewiseOps) CopyNonOverlapping(dst, src []byte) int {
	return copy(dst, src)
}

// register128 is a 16-byte general purpose register pair.
type register128 [2]uint64

const registerUnroll = 16

// registerOps touches memory 16 bytes at a time without SIMD instructions.
type registerOps struct{}

var registerPattern = register128{0xAAAAAAAAAAAAAAAA, 0xAAAAAAAAAAAAAAAA}

func (registerOps) Read(buf []byte) int {
	regs := chunk.View[register128](buf)
	var acc register128
	chunk.Each(len(regs), registerUnroll, func(i int) {
		acc[0] ^= regs[i][0]
		acc[1] ^= regs[i][1]
	})
	readSink.StoreRelaxed(acc[0] ^ acc[1])
	return len(regs) * int(unsafe.Sizeof(acc))
}

func (registerOps) Write(buf []byte) int {
	regs := chunk.View[register128](buf)
	chunk.Each(len(regs), registerUnroll, func(i int) {
		regs[i] = registerPattern
	})
	return len(regs) * int(unsafe.Sizeof(registerPattern))
}

func (registerOps) CopyNonOverlapping(dst, src []byte) int {
	d, s := chunk.AlignPair(dst, src, int(unsafe.Sizeof(register128{})))
	to, from := chunk.View[register128](d), chunk.View[register128](s)
	chunk.Each(len(from), registerUnroll, func(i int) {
		to[i] = from[i]
	})
	return len(d)
}
