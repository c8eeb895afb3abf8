// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package membench

import (
	"fmt"
	"strings"
)

// Operation is the memory access performed on every chunk.
type Operation uint8

const (
	// Read loads every register of the buffer.
	Read Operation = iota
	// Write stores the 0xAA pattern into every register.
	Write
	// Copy copies the first half of each chunk into its second half.
	Copy
)

var operationNames = [...]string{Read: "read", Write: "write", Copy: "copy"}

// Operations returns every operation.
func Operations() []Operation {
	return []Operation{Read, Write, Copy}
}

func (o Operation) String() string {
	if int(o) < len(operationNames) {
		return operationNames[o]
	}
	return fmt.Sprintf("Operation(%d)", uint8(o))
}

// ParseOperation parses an operation name, ignoring case.
func ParseOperation(name string) (Operation, error) {
	for i, n := range operationNames {
		if strings.EqualFold(n, name) {
			return Operation(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown operation %q", ErrInvalidConfig, name)
}

func (o Operation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Operation) UnmarshalText(text []byte) error {
	v, err := ParseOperation(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// InitType is the byte pattern a buffer holds before the first pass.
type InitType uint8

const (
	Zeros InitType = iota
	Ones
	Random
)

var initNames = [...]string{Zeros: "zeros", Ones: "ones", Random: "random"}

// InitTypes returns every initialization pattern.
func InitTypes() []InitType {
	return []InitType{Zeros, Ones, Random}
}

func (t InitType) String() string {
	if int(t) < len(initNames) {
		return initNames[t]
	}
	return fmt.Sprintf("InitType(%d)", uint8(t))
}

// ParseInitType parses an initialization pattern name, ignoring case.
func ParseInitType(name string) (InitType, error) {
	for i, n := range initNames {
		if strings.EqualFold(n, name) {
			return InitType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown init type %q", ErrInvalidConfig, name)
}

func (t InitType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *InitType) UnmarshalText(text []byte) error {
	v, err := ParseInitType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Config describes one benchmark run.
//
// MemorySize is the total across all threads. Each thread gets
// MemorySize/Threads bytes rounded up to a whole number of pages.
type Config struct {
	Threads    int
	Passes     int
	MemorySize int
	Operation  Operation
	Init       InitType
	Strategy   Strategy
}

// BufferSize returns the per-thread buffer size on p.
func (c Config) BufferSize(p Platform) int {
	return p.roundUp(c.MemorySize / c.Threads)
}

// Validate reports whether c can run on p.
//
// Errors wrap [ErrInvalidConfig] or [ErrUnsupportedStrategy].
func (c Config) Validate(p Platform) error {
	switch {
	case c.Threads < 1:
		return fmt.Errorf("%w: threads must be >= 1, got %d", ErrInvalidConfig, c.Threads)
	case c.Passes < 1:
		return fmt.Errorf("%w: passes must be >= 1, got %d", ErrInvalidConfig, c.Passes)
	case p.PageSize < MinPageSize || p.PageSize&(p.PageSize-1) != 0:
		return fmt.Errorf("%w: page size must be a power of two >= %d, got %d", ErrInvalidConfig, MinPageSize, p.PageSize)
	case c.MemorySize/c.Threads < p.PageSize:
		return fmt.Errorf("%w: %d bytes over %d threads is less than one page (%d bytes) per thread",
			ErrInvalidConfig, c.MemorySize, c.Threads, p.PageSize)
	case int(c.Operation) >= len(operationNames):
		return fmt.Errorf("%w: %v", ErrInvalidConfig, c.Operation)
	case int(c.Init) >= len(initNames):
		return fmt.Errorf("%w: %v", ErrInvalidConfig, c.Init)
	case int(c.Strategy) >= len(strategyNames):
		return fmt.Errorf("%w: %v", ErrInvalidConfig, c.Strategy)
	case !c.Strategy.Enabled(p.Features):
		return fmt.Errorf("%w: %v needs %s", ErrUnsupportedStrategy, c.Strategy, c.Strategy.requires())
	}
	return nil
}
