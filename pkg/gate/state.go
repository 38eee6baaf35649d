// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gate

import (
	"fmt"
)

// 📊 State is a step of a pipeline run
type State int

const (
	StateIdle State = iota
	StateResolving
	StateInvoking
	StateComparing
	StateNoOp
	StateRendering
	StateAwaitingDisclosure
	StateApplying
	StateDone
	StateFailed
	StateSkipped
)

// String returns a string representation of State
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolving:
		return "resolving"
	case StateInvoking:
		return "invoking"
	case StateComparing:
		return "comparing"
	case StateNoOp:
		return "no-op"
	case StateRendering:
		return "rendering"
	case StateAwaitingDisclosure:
		return "awaiting-disclosure"
	case StateApplying:
		return "applying"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	case StateSkipped:
		return "skipped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// IsTerminal reports whether the run has finished.
func (s State) IsTerminal() bool {
	switch s {
	case StateNoOp, StateDone, StateFailed, StateSkipped:
		return true
	default:
		return false
	}
}

func isAllowedTransition(from, to State) bool {
	switch from {
	case StateIdle:
		return to == StateResolving || to == StateSkipped
	case StateResolving:
		return to == StateInvoking
	case StateInvoking:
		return to == StateComparing || to == StateFailed
	case StateComparing:
		return to == StateNoOp || to == StateRendering || to == StateApplying
	case StateRendering:
		return to == StateAwaitingDisclosure || to == StateApplying || to == StateFailed
	case StateAwaitingDisclosure:
		return to == StateApplying
	case StateApplying:
		return to == StateDone
	default:
		return false
	}
}

// machine tracks one run and records every state it visits.
type machine struct {
	current State
	trace   []State
}

func newMachine() *machine {
	return &machine{current: StateIdle, trace: []State{StateIdle}}
}

func (m *machine) to(next State) {
	if !isAllowedTransition(m.current, next) {
		// only reachable through a bug in Process
		panic(fmt.Sprintf("disallowed transition: %s -> %s", m.current, next))
	}
	m.current = next
	m.trace = append(m.trace, next)
}
