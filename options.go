// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package membench

// Builder creates benchmark configurations with fluent configuration.
//
// Defaults: one thread, two passes, Read over zero-filled buffers with the
// Bytewise strategy.
//
// Example:
//
//	// 1 GiB over 8 threads, 256-bit streaming writes
//	bench, err := membench.New(1<<30).
//	    Threads(8).
//	    Operation(membench.Write).
//	    Strategy(membench.AVX2).
//	    Start(membench.DetectPlatform())
//
//	// Or take the Config and start it later
//	cfg := membench.New(64 << 20).Passes(5).Config()
type Builder struct {
	cfg Config
}

// New creates a builder for memorySize bytes in total.
//
// Panics if memorySize < 1. A size too small for the thread count is
// reported by [Config.Validate].
func New(memorySize int) *Builder {
	if memorySize < 1 {
		panic("membench: memory size must be >= 1")
	}
	return &Builder{cfg: Config{
		Threads:    1,
		Passes:     2,
		MemorySize: memorySize,
		Operation:  Read,
		Init:       Zeros,
		Strategy:   Bytewise,
	}}
}

// Threads sets the number of worker threads.
func (b *Builder) Threads(n int) *Builder {
	b.cfg.Threads = n
	return b
}

// Passes sets the number of timed passes over each buffer.
func (b *Builder) Passes(n int) *Builder {
	b.cfg.Passes = n
	return b
}

// Operation selects read, write or copy.
func (b *Builder) Operation(op Operation) *Builder {
	b.cfg.Operation = op
	return b
}

// Init selects the initial buffer contents.
func (b *Builder) Init(t InitType) *Builder {
	b.cfg.Init = t
	return b
}

// Strategy selects the register width and instructions.
func (b *Builder) Strategy(s Strategy) *Builder {
	b.cfg.Strategy = s
	return b
}

// Config returns the configuration built so far.
func (b *Builder) Config() Config {
	return b.cfg
}

// Start validates the configuration and launches the run on p.
func (b *Builder) Start(p Platform) (*Bench, error) {
	return b.cfg.Start(p)
}

// pad is cache line padding to prevent false sharing.
type pad [64]byte
