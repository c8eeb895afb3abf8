// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package asm provides non-temporal vector kernels for hot paths.
//
// Every kernel processes count registers starting at base. base (and src
// for copies) must be aligned to the register width: 16 bytes for the 128
// variants, 32 for 256, 64 for 512. Loads use MOVNTDQA/VMOVNTDQA and stores
// use MOVNTDQ/VMOVNTDQ followed by SFENCE, so the measured traffic goes to
// memory rather than staying in cache.
//
// Kernels do not check CPU features. Calling a kernel whose instructions
// the running CPU lacks raises SIGILL. Callers gate on the flags reported by
// golang.org/x/sys/cpu:
//
//	128: X86.HasSSE41
//	256: X86.HasAVX2
//	512: X86.HasAVX512F
//
// On architectures other than amd64 every kernel panics.
package asm
