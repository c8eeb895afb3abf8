// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !amd64

package asm

import "runtime"

// Available reports whether streaming kernels exist for this architecture.
const Available = false

func unavailable() {
	panic("asm: streaming kernels are not available on " + runtime.GOARCH)
}

// StreamLoad128 is a stub for unsupported architectures.
func StreamLoad128(base *byte, count int) { unavailable() }

// StreamStore128 is a stub for unsupported architectures.
func StreamStore128(base *byte, count int, pattern *byte) { unavailable() }

// StreamCopy128 is a stub for unsupported architectures.
func StreamCopy128(dst, src *byte, count int) { unavailable() }

// StreamLoad256 is a stub for unsupported architectures.
func StreamLoad256(base *byte, count int) { unavailable() }

// StreamStore256 is a stub for unsupported architectures.
func StreamStore256(base *byte, count int, pattern *byte) { unavailable() }

// StreamCopy256 is a stub for unsupported architectures.
func StreamCopy256(dst, src *byte, count int) { unavailable() }

// StreamLoad512 is a stub for unsupported architectures.
func StreamLoad512(base *byte, count int) { unavailable() }

// StreamStore512 is a stub for unsupported architectures.
func StreamStore512(base *byte, count int, pattern *byte) { unavailable() }

// StreamCopy512 is a stub for unsupported architectures.
func StreamCopy512(dst, src *byte, count int) { unavailable() }
