/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package probe

// State is the lifecycle state of the probe driver.
type State uint8

const (
	StateIdle State = iota
	StateArmed
	StateFiring
	StateCooldown
	StateFault
)

// Numeric state codes exported on the status boundary. The mapping is a
// compatibility contract with the external debug encoder and must not change.
const (
	CodeIdle     uint8 = 0
	CodeArmed    uint8 = 1
	CodeFiring   uint8 = 2
	CodeCooldown uint8 = 3
	CodeFault    uint8 = 63
)

func (s State) valid() bool {
	switch s {
	case StateIdle, StateArmed, StateFiring, StateCooldown, StateFault:
		return true
	}
	return false
}

// Code returns the wire code for the state. Undefined encodings map to the
// fault code.
func (s State) Code() uint8 {
	switch s {
	case StateIdle:
		return CodeIdle
	case StateArmed:
		return CodeArmed
	case StateFiring:
		return CodeFiring
	case StateCooldown:
		return CodeCooldown
	default:
		return CodeFault
	}
}

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateArmed:
		return "ARMED"
	case StateFiring:
		return "FIRING"
	case StateCooldown:
		return "COOLDOWN"
	case StateFault:
		return "FAULT"
	default:
		return "UNDEFINED"
	}
}

// Status is the set of outputs exported to the outside world.
type Status struct {
	TrigOutActive      bool
	IntensityOutActive bool
	StateCode          uint8
}

// FaultCause identifies which safety check forced the driver into FAULT.
type FaultCause int

const (
	FaultNone FaultCause = iota
	FaultTimeout
	FaultUndefinedState
	FaultSafety
)

func (c FaultCause) String() string {
	switch c {
	case FaultNone:
		return ""
	case FaultTimeout:
		return "armed timeout"
	case FaultUndefinedState:
		return "undefined state"
	case FaultSafety:
		return "safety check"
	default:
		return "unknown"
	}
}
