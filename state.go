// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package membench

import "strconv"

// Phase identifies a stage of a benchmark run.
type Phase uint8

const (
	Allocating Phase = iota
	Initializing
	Executing
	Done
)

// State is the shared run state. Transitions are forward-only:
//
//	Allocating → Initializing → Executing(1, n) → … → Executing(n, n) → Done
//
// Pass is 1-based and only meaningful while executing.
type State struct {
	Phase  Phase
	Pass   int
	Passes int
}

var (
	StateAllocating   = State{Phase: Allocating}
	StateInitializing = State{Phase: Initializing}
	StateDone         = State{Phase: Done}
)

// ExecutingPass returns the state for the given 1-based pass.
func ExecutingPass(pass, passes int) State {
	return State{Phase: Executing, Pass: pass, Passes: passes}
}

func (s State) String() string {
	switch s.Phase {
	case Allocating:
		return "Allocating Buffers"
	case Initializing:
		return "Initializing Buffers"
	case Executing:
		return "Pass " + strconv.Itoa(s.Pass) + " of " + strconv.Itoa(s.Passes)
	case Done:
		return "Done"
	default:
		return "Phase(" + strconv.Itoa(int(s.Phase)) + ")"
	}
}
