// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package membench

import "code.hybscloud.com/membench/internal/chunk"

// vectorUnroll is the number of registers handed to one kernel call.
const vectorUnroll = 64

// vectorPattern is one 512-bit register of the write pattern. Narrower
// kernels use its prefix.
var vectorPattern = func() (p [64]byte) {
	for i := range p {
		p[i] = writePattern
	}
	return p
}()

// vectorOps drives the streaming kernels of one register width.
type vectorOps struct {
	width int
	load  func(base *byte, count int)
	store func(base *byte, count int, pattern *byte)
	copy  func(dst, src *byte, count int)
}

func (o vectorOps) Read(buf []byte) int {
	region := chunk.Align(buf, o.width)
	chunk.Blocks(len(region)/o.width, vectorUnroll, func(start, count int) {
		o.load(&region[start*o.width], count)
	})
	return len(region)
}

func (o vectorOps) Write(buf []byte) int {
	region := chunk.Align(buf, o.width)
	chunk.Blocks(len(region)/o.width, vectorUnroll, func(start, count int) {
		o.store(&region[start*o.width], count, &vectorPattern[0])
	})
	return len(region)
}

func (o vectorOps) CopyNonOverlapping(dst, src []byte) int {
	d, s := chunk.AlignPair(dst, src, o.width)
	chunk.Blocks(len(s)/o.width, vectorUnroll, func(start, count int) {
		off := start * o.width
		o.copy(&d[off], &s[off], count)
	})
	return len(d)
}
