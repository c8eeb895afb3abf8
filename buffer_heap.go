// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package membench

import "code.hybscloud.com/membench/internal/chunk"

// allocate returns size bytes starting on a page boundary, carved out of a
// heap slice one page larger than needed.
func allocate(size, pageSize int) (buf []byte, release func()) {
	raw := make([]byte, size+pageSize)
	return chunk.Align(raw, pageSize)[:size], func() {}
}
