// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package membench

import (
	"fmt"
	"strings"

	"code.hybscloud.com/membench/internal/asm"
)

// writePattern is the byte every strategy stores on Write.
const writePattern = 0xAA

// Ops performs one operation over a region with a fixed register width.
//
// Bytes before the first width-aligned address and trailing bytes shorter
// than one register are skipped. Each method returns the number of bytes it
// touched (for CopyNonOverlapping, the number of bytes copied).
//
// CopyNonOverlapping copies min(len(dst), len(src)) bytes. The regions must
// not overlap and must share their offset modulo the register width;
// misaligned regions cause a panic, overlap is not checked.
type Ops interface {
	Read(buf []byte) int
	Write(buf []byte) int
	CopyNonOverlapping(dst, src []byte) int
}

// Strategy selects the register width and instructions used to touch memory.
type Strategy uint8

const (
	Bytewise Strategy = iota
	Int32
	Int64
	Int128
	SSE    // 128-bit streaming loads and stores, requires SSE4.1
	AVX2   // 256-bit streaming loads and stores, requires AVX2
	AVX512 // 512-bit streaming loads and stores, requires AVX-512F
)

var strategyNames = [...]string{
	Bytewise: "Bytewise",
	Int32:    "32-bit",
	Int64:    "64-bit",
	Int128:   "128-bit",
	SSE:      "128-bit SSE",
	AVX2:     "256-bit AVX",
	AVX512:   "512-bit AVX",
}

var strategyKeys = [...]string{
	Bytewise: "bytewise",
	Int32:    "int32",
	Int64:    "int64",
	Int128:   "int128",
	SSE:      "sse",
	AVX2:     "avx2",
	AVX512:   "avx512",
}

var strategyWidths = [...]int{
	Bytewise: 1,
	Int32:    4,
	Int64:    8,
	Int128:   16,
	SSE:      16,
	AVX2:     32,
	AVX512:   64,
}

var strategyOps = [...]Ops{
	Bytewise: bytewiseOps{},
	Int32:    wordOps[uint32]{pattern: 0xAAAAAAAA, unroll: 16},
	Int64:    wordOps[uint64]{pattern: 0xAAAAAAAAAAAAAAAA, unroll: 16},
	Int128:   registerOps{},
	SSE:      vectorOps{width: 16, load: asm.StreamLoad128, store: asm.StreamStore128, copy: asm.StreamCopy128},
	AVX2:     vectorOps{width: 32, load: asm.StreamLoad256, store: asm.StreamStore256, copy: asm.StreamCopy256},
	AVX512:   vectorOps{width: 64, load: asm.StreamLoad512, store: asm.StreamStore512, copy: asm.StreamCopy512},
}

// Strategies returns every strategy, narrowest first.
func Strategies() []Strategy {
	return []Strategy{Bytewise, Int32, Int64, Int128, SSE, AVX2, AVX512}
}

// EnabledStrategies returns the strategies that can run with f.
func EnabledStrategies(f Features) []Strategy {
	var out []Strategy
	for _, s := range Strategies() {
		if s.Enabled(f) {
			out = append(out, s)
		}
	}
	return out
}

// String returns the display label, e.g. "256-bit AVX".
func (s Strategy) String() string {
	if int(s) < len(strategyNames) {
		return strategyNames[s]
	}
	return fmt.Sprintf("Strategy(%d)", uint8(s))
}

// Key returns the short identifier used on the command line, e.g. "avx2".
func (s Strategy) Key() string {
	if int(s) < len(strategyKeys) {
		return strategyKeys[s]
	}
	return s.String()
}

// Width returns the register width in bytes.
func (s Strategy) Width() int {
	return strategyWidths[s]
}

// Vector reports whether s uses streaming SIMD instructions.
func (s Strategy) Vector() bool {
	return s >= SSE && s <= AVX512
}

// Enabled reports whether the instructions s needs are present in f.
func (s Strategy) Enabled(f Features) bool {
	switch s {
	case SSE:
		return f.SSE41
	case AVX2:
		return f.AVX2
	case AVX512:
		return f.AVX512F
	default:
		return int(s) < len(strategyNames)
	}
}

func (s Strategy) requires() string {
	switch s {
	case SSE:
		return "sse4.1"
	case AVX2:
		return "avx2"
	case AVX512:
		return "avx512f"
	default:
		return "nothing"
	}
}

// Ops returns the implementation of s.
//
// Vector implementations execute their instructions unconditionally: calling
// them on a CPU that lacks the extension faults. Check [Strategy.Enabled]
// first; [Config.Validate] does.
func (s Strategy) Ops() Ops {
	return strategyOps[s]
}

// ParseStrategy accepts a key ("avx2") or a label ("256-bit AVX"),
// ignoring case.
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range Strategies() {
		if strings.EqualFold(name, s.Key()) || strings.EqualFold(name, s.String()) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, name)
}

func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.Key()), nil
}

func (s *Strategy) UnmarshalText(text []byte) error {
	v, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
