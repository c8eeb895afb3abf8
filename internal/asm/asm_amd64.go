// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build amd64

package asm

// Available reports whether streaming kernels exist for this architecture.
const Available = true

// StreamLoad128 loads count 16-byte registers from base with MOVNTDQA.
// Requires SSE4.1.
//
//go:noescape
func StreamLoad128(base *byte, count int)

// StreamStore128 stores the 16-byte pattern into count registers at base
// with MOVNTDQ. Requires SSE2.
//
//go:noescape
func StreamStore128(base *byte, count int, pattern *byte)

// StreamCopy128 copies count 16-byte registers from src to dst.
// Requires SSE4.1.
//
//go:noescape
func StreamCopy128(dst, src *byte, count int)

// StreamLoad256 loads count 32-byte registers from base with VMOVNTDQA.
// Requires AVX2.
//
//go:noescape
func StreamLoad256(base *byte, count int)

// StreamStore256 stores the 32-byte pattern into count registers at base
// with VMOVNTDQ. Requires AVX.
//
//go:noescape
func StreamStore256(base *byte, count int, pattern *byte)

// StreamCopy256 copies count 32-byte registers from src to dst.
// Requires AVX2.
//
//go:noescape
func StreamCopy256(dst, src *byte, count int)

// StreamLoad512 loads count 64-byte registers from base. Requires AVX-512F.
//
//go:noescape
func StreamLoad512(base *byte, count int)

// StreamStore512 stores the 64-byte pattern into count registers at base.
// Requires AVX-512F.
//
//go:noescape
func StreamStore512(base *byte, count int, pattern *byte)

// StreamCopy512 copies count 64-byte registers from src to dst.
// Requires AVX-512F.
//
//go:noescape
func StreamCopy512(dst, src *byte, count int)
