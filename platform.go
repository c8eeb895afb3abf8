// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package membench

import (
	"strings"

	"golang.org/x/sys/cpu"

	"code.hybscloud.com/membench/internal/asm"
)

// MinPageSize is the smallest page size accepted by [Config.Validate].
// Copy splits each chunk into halves that must stay co-aligned for the
// widest register.
const MinPageSize = 128

// chunkPages is the number of pages processed between progress updates.
const chunkPages = 4

// Features lists the instruction set extensions the vector strategies need.
type Features struct {
	SSE41   bool
	AVX2    bool
	AVX512F bool
}

// String returns the enabled extensions separated by spaces, or "none".
func (f Features) String() string {
	var names []string
	if f.SSE41 {
		names = append(names, "sse4.1")
	}
	if f.AVX2 {
		names = append(names, "avx2")
	}
	if f.AVX512F {
		names = append(names, "avx512f")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, " ")
}

// Platform describes the machine a benchmark runs on.
//
// Platform is a plain value: [DetectPlatform] fills it from the running
// machine, tests construct it directly.
type Platform struct {
	PageSize int
	Features Features
}

// DetectPlatform queries the page size and CPU feature flags.
// Vector features are reported only where streaming kernels are compiled in.
func DetectPlatform() Platform {
	return Platform{
		PageSize: pageSize(),
		Features: Features{
			SSE41:   asm.Available && cpu.X86.HasSSE41,
			AVX2:    asm.Available && cpu.X86.HasAVX2,
			AVX512F: asm.Available && cpu.X86.HasAVX512F,
		},
	}
}

// ChunkSize returns the number of bytes processed between progress updates
// and stop checks.
func (p Platform) ChunkSize() int {
	return chunkPages * p.PageSize
}

// roundUp rounds n up to a multiple of the page size.
func (p Platform) roundUp(n int) int {
	return (n + p.PageSize - 1) / p.PageSize * p.PageSize
}
