// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package membench

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// For [Bench.TryResults]: at least one worker is still running.
// For [Barrier.SetParties] and [Tracker.SetThreads]: a barrier cycle is in
// flight (at least one caller has arrived and not yet been released).
//
// ErrWouldBlock is a control flow signal, not a failure. The caller should
// retry later rather than propagating the error.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
//
// Example:
//
//	backoff := iox.Backoff{}
//	for {
//	    results, err := bench.TryResults()
//	    if err == nil {
//	        return results
//	    }
//	    backoff.Wait()
//	}
var ErrWouldBlock = iox.ErrWouldBlock

// ErrInvalidConfig is wrapped by every [Config.Validate] failure that is
// caused by the configured values themselves.
var ErrInvalidConfig = errors.New("membench: invalid config")

// ErrUnsupportedStrategy reports a strategy whose instructions the
// platform does not provide. Invoking such a strategy would fault.
var ErrUnsupportedStrategy = errors.New("membench: strategy not supported on this platform")

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}
