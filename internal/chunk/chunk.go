// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package chunk provides block-unrolled iteration and alignment-checked
// views over contiguous byte buffers.
//
// Iteration visits [0, n) in runs whose lengths are powers of two, starting
// from a fixed maximum and halving down to single elements:
//
//	chunk.Blocks(100, 64, fn) // fn(0, 64), fn(64, 32), fn(96, 4)
//
// Views reinterpret the aligned interior of a byte slice as registers of a
// fixed width. Bytes before the first aligned address and bytes after the
// last full register are not part of the view. Callers that need to know
// how much of a buffer was covered use the length of the returned view.
package chunk

import "unsafe"

// MaxUnroll is the largest block size accepted by [Blocks] and [Each].
const MaxUnroll = 64

// Blocks calls fn for consecutive runs covering [0, n).
//
// Run lengths are powers of two. The largest runs come first: as many runs
// of length unroll as fit, then at most one run of each smaller power of two.
// unroll must be a power of two in [1, MaxUnroll].
func Blocks(n, unroll int, fn func(start, count int)) {
	checkUnroll(unroll)
	idx := 0
	for size := unroll; size > 0; size >>= 1 {
		for idx+size <= n {
			fn(idx, size)
			idx += size
		}
	}
}

// Each calls fn once for every index in [0, n), in increasing order,
// grouped the way [Blocks] groups them.
func Each(n, unroll int, fn func(i int)) {
	Blocks(n, unroll, func(start, count int) {
		for i := start; i < start+count; i++ {
			fn(i)
		}
	})
}

// Align returns the largest sub-slice of b that starts on a width-byte
// boundary and whose length is a multiple of width.
// width must be a power of two.
func Align(b []byte, width int) []byte {
	checkWidth(width)
	head := headOf(b, width)
	if head >= len(b) {
		return b[:0]
	}
	body := (len(b) - head) / width * width
	return b[head : head+body]
}

// AlignPair returns aligned views of dst and src covering the same
// register positions. The regions must share their offset modulo width,
// otherwise AlignPair panics. Only the first min(len(dst), len(src))
// bytes are considered.
func AlignPair(dst, src []byte, width int) (alignedDst, alignedSrc []byte) {
	checkWidth(width)
	n := min(len(dst), len(src))
	dst, src = dst[:n], src[:n]
	head := headOf(dst, width)
	if n > 0 && headOf(src, width) != head {
		panic("chunk: regions are not co-aligned")
	}
	if head >= n {
		return dst[:0], src[:0]
	}
	body := (n - head) / width * width
	return dst[head : head+body], src[head : head+body]
}

// View reinterprets the aligned interior of b as a slice of T.
// Alignment is to unsafe.Sizeof(T), which must be a power of two.
func View[T any](b []byte) []T {
	var zero T
	width := int(unsafe.Sizeof(zero))
	a := Align(b, width)
	if len(a) == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(a))), len(a)/width)
}

func headOf(b []byte, width int) int {
	if len(b) == 0 {
		return 0
	}
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	return int((uintptr(width) - addr%uintptr(width)) % uintptr(width))
}

func checkWidth(width int) {
	if width <= 0 || width&(width-1) != 0 {
		panic("chunk: width must be a power of two")
	}
}

func checkUnroll(unroll int) {
	if unroll <= 0 || unroll > MaxUnroll || unroll&(unroll-1) != 0 {
		panic("chunk: unroll must be a power of two in [1, 64]")
	}
}
