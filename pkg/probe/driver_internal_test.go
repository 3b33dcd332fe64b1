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

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/forge-fi/go-probe/pkg/clock"
)

func TestUndefinedStateFaults(t *testing.T) {
	d := NewDriver(1 * clock.MHz)
	d.state = State(7)

	d.Step(Settings{}, 0)

	assert.Equal(t, StateFault, d.State())
	assert.Equal(t, FaultUndefinedState, d.FaultCause())
	assert.Equal(t, uint8(CodeFault), d.Status().StateCode)
}

func TestStateCodes(t *testing.T) {
	tests := []struct {
		state State
		code  uint8
	}{
		{StateIdle, 0},
		{StateArmed, 1},
		{StateFiring, 2},
		{StateCooldown, 3},
		{StateFault, 63},
		{State(7), 63},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, tt.state.Code())
	}
}
