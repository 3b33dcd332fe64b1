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

// Package fsmobserver projects FSM state codes onto oscilloscope-friendly
// voltages. Normal states spread linearly between VMin and VMax; a fault
// shows as the negated voltage of the last normal state, so a scope trace
// reveals both that a fault happened and where the machine was when it did.
package fsmobserver

const (
	DefaultNumStates = 5
	DefaultVMin      = 0.0
	DefaultVMax      = 2.5

	// Moku front-end full scale
	fullScaleVolts = 5.0
)

// Observer is a read-only projection of the driver's state code sequence.
// It keeps the previously held normal state so a fault can be encoded as a
// sign flip.
type Observer struct {
	numStates  int
	vMin, vMax float64
	prevNormal uint8
}

func New(numStates int, vMin, vMax float64) *Observer {
	if numStates < 2 {
		numStates = 2
	}
	return &Observer{
		numStates: numStates,
		vMin:      vMin,
		vMax:      vMax,
	}
}

func NewDefault() *Observer {
	return New(DefaultNumStates, DefaultVMin, DefaultVMax)
}

func (o *Observer) stateVoltage(code uint8) float64 {
	step := (o.vMax - o.vMin) / float64(o.numStates-1)
	return o.vMin + float64(code)*step
}

// Observe consumes the state code for one tick and returns the projected
// voltage. Codes at or above the normal-state count (the fault code 63
// included) are treated as faults and return the negated voltage of the
// previously held normal state.
func (o *Observer) Observe(code uint8) float64 {
	if code >= uint8(o.numStates) {
		return -o.stateVoltage(o.prevNormal)
	}
	o.prevNormal = code
	return o.stateVoltage(code)
}

// PrevNormal returns the last non-fault state code observed.
func (o *Observer) PrevNormal() uint8 {
	return o.prevNormal
}

// Digital converts a projected voltage to the 16-bit signed front-end
// scale, clamping at full scale.
func Digital(v float64) int16 {
	d := int(v / fullScaleVolts * 32768)
	if d > 32767 {
		d = 32767
	}
	if d < -32768 {
		d = -32768
	}
	return int16(d)
}
