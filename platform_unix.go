// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build unix

package membench

import "golang.org/x/sys/unix"

func pageSize() int {
	return unix.Getpagesize()
}
