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

package regmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forge-fi/go-probe/pkg/probe"
)

func TestUnpack(t *testing.T) {
	regs := map[uint16]uint32{
		RegControlFlags:          FlagArmEnable | FlagAutoRearmEnable,
		RegTrigOutVoltage:        0xfc18, // -1000 mV as 16-bit two's complement
		RegTrigOutDuration:       200,
		RegIntensityVoltage:      1500,
		RegIntensityDuration:     500,
		RegTriggerWaitTimeout:    5,
		RegCooldownInterval:      0xff000010, // upper byte must be masked off
		RegMonitorFlags:          FlagMonitorEnable | FlagMonitorExpectNegative,
		RegMonitorThreshold:      0xff38, // -200 mV
		RegMonitorWindowStart:    100,
		RegMonitorWindowDuration: 400,
	}

	s := Unpack(regs)

	assert.True(t, s.ArmEnable)
	assert.False(t, s.ExtTriggerIn)
	assert.True(t, s.AutoRearmEnable)
	assert.False(t, s.FaultClear)
	assert.Equal(t, int16(-1000), s.TrigOutVoltage)
	assert.Equal(t, uint16(200), s.TrigOutDuration)
	assert.Equal(t, int16(1500), s.IntensityVoltage)
	assert.Equal(t, uint16(500), s.IntensityDuration)
	assert.Equal(t, uint16(5), s.TriggerWaitTimeout)
	assert.Equal(t, uint32(0x10), s.CooldownInterval)
	assert.True(t, s.MonitorEnable)
	assert.True(t, s.MonitorExpectNegative)
	assert.Equal(t, int16(-200), s.MonitorThresholdVoltage)
	assert.Equal(t, uint32(100), s.MonitorWindowStart)
	assert.Equal(t, uint32(400), s.MonitorWindowDuration)
}

func TestUnpackEmpty(t *testing.T) {
	s := Unpack(map[uint16]uint32{})
	assert.Equal(t, probe.Settings{}, s)
}

func TestPackRoundTrip(t *testing.T) {
	s := probe.Settings{
		ArmEnable:               true,
		ExtTriggerIn:            true,
		FaultClear:              true,
		TriggerWaitTimeout:      5,
		AutoRearmEnable:         true,
		TrigOutVoltage:          -1000,
		IntensityVoltage:        1500,
		TrigOutDuration:         200,
		IntensityDuration:       500,
		CooldownInterval:        0x10,
		MonitorEnable:           true,
		MonitorExpectNegative:   true,
		MonitorThresholdVoltage: -200,
		MonitorWindowStart:      100,
		MonitorWindowDuration:   400,
	}

	assert.Equal(t, s, Unpack(Pack(s)))
}

func TestValid(t *testing.T) {
	for _, addr := range Addrs() {
		assert.True(t, Valid(addr))
	}
	assert.False(t, Valid(NumRegs))
	assert.False(t, Valid(0xffff))
}

func TestDescribe(t *testing.T) {
	infos, err := Describe()
	require.NoError(t, err)
	require.Len(t, infos, NumRegs)
	for i, info := range infos {
		assert.Equal(t, uint16(i), info.Addr)
		assert.NotEmpty(t, info.Name)
		assert.NotEmpty(t, info.Desc)
	}
}
