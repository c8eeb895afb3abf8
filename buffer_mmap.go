// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package membench

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// allocate maps size bytes of private anonymous memory. The mapping is
// page-aligned by construction. Failure to map panics.
func allocate(size, _ int) (buf []byte, release func()) {
	buf, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		panic(fmt.Sprintf("membench: map %d bytes: %v", size, err))
	}
	return buf, func() { _ = unix.Munmap(buf) }
}
