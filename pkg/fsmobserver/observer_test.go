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

package fsmobserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObserveNormalStates(t *testing.T) {
	o := NewDefault()

	// 5 states over 0..2.5 V is a 0.625 V step
	assert.InDelta(t, 0.0, o.Observe(0), 1e-9)
	assert.InDelta(t, 0.625, o.Observe(1), 1e-9)
	assert.InDelta(t, 1.25, o.Observe(2), 1e-9)
	assert.InDelta(t, 1.875, o.Observe(3), 1e-9)
	assert.InDelta(t, 2.5, o.Observe(4), 1e-9)
}

func TestObserveFault(t *testing.T) {
	o := NewDefault()

	o.Observe(0)
	o.Observe(1)
	v := o.Observe(63)

	// fault projects as the negated voltage of the last normal state
	assert.InDelta(t, -0.625, v, 1e-9)
	assert.Equal(t, uint8(1), o.PrevNormal())

	// held fault keeps pointing at the same state
	assert.InDelta(t, -0.625, o.Observe(63), 1e-9)

	// recovery resumes normal projection
	assert.InDelta(t, 0.0, o.Observe(0), 1e-9)
}

func TestObserveFaultFromPowerOn(t *testing.T) {
	o := NewDefault()

	// no normal state seen yet, prev defaults to 0
	assert.InDelta(t, 0.0, o.Observe(63), 1e-9)
}

func TestDigital(t *testing.T) {
	assert.Equal(t, int16(0), Digital(0))
	assert.Equal(t, int16(16384), Digital(2.5))
	assert.Equal(t, int16(-16384), Digital(-2.5))
	assert.Equal(t, int16(32767), Digital(5.0)) // clamped from 32768
	assert.Equal(t, int16(32767), Digital(10.0))
	assert.Equal(t, int16(-32768), Digital(-10.0))
}
