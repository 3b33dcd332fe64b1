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

// Package regmap fixes the control-register layout of the probe driver and
// converts between raw 32-bit register words and typed settings. The
// layout mirrors the FPGA wrapper's Control0..Control10 assignment.
package regmap

import (
	"github.com/forge-fi/go-probe/pkg/probe"
)

// Control register addresses.
const (
	RegControlFlags          uint16 = 0
	RegTrigOutVoltage        uint16 = 1
	RegTrigOutDuration       uint16 = 2
	RegIntensityVoltage      uint16 = 3
	RegIntensityDuration     uint16 = 4
	RegTriggerWaitTimeout    uint16 = 5
	RegCooldownInterval      uint16 = 6
	RegMonitorFlags          uint16 = 7
	RegMonitorThreshold      uint16 = 8
	RegMonitorWindowStart    uint16 = 9
	RegMonitorWindowDuration uint16 = 10

	NumRegs = 11
)

// RegControlFlags bits.
const (
	FlagArmEnable = 1 << iota
	FlagExtTriggerIn
	FlagAutoRearmEnable
	FlagFaultClear
)

// RegMonitorFlags bits.
const (
	FlagMonitorEnable = 1 << iota
	FlagMonitorExpectNegative
)

// Addrs returns all control register addresses in layout order.
func Addrs() []uint16 {
	addrs := make([]uint16, NumRegs)
	for i := range addrs {
		addrs[i] = uint16(i)
	}
	return addrs
}

// Valid reports whether addr is a defined control register.
func Valid(addr uint16) bool {
	return addr < NumRegs
}

// Unpack converts raw register words into typed settings. Missing
// registers read as zero, which is the safe default for every field.
func Unpack(regs map[uint16]uint32) probe.Settings {
	flags := regs[RegControlFlags]
	monFlags := regs[RegMonitorFlags]
	return probe.Settings{
		ArmEnable:    flags&FlagArmEnable != 0,
		ExtTriggerIn: flags&FlagExtTriggerIn != 0,
		FaultClear:   flags&FlagFaultClear != 0,

		AutoRearmEnable: flags&FlagAutoRearmEnable != 0,

		TriggerWaitTimeout: uint16(regs[RegTriggerWaitTimeout]),

		TrigOutVoltage:   int16(uint16(regs[RegTrigOutVoltage])),
		TrigOutDuration:  uint16(regs[RegTrigOutDuration]),
		IntensityVoltage: int16(uint16(regs[RegIntensityVoltage])),

		IntensityDuration: uint16(regs[RegIntensityDuration]),

		CooldownInterval: regs[RegCooldownInterval] & 0xffffff,

		MonitorEnable:           monFlags&FlagMonitorEnable != 0,
		MonitorExpectNegative:   monFlags&FlagMonitorExpectNegative != 0,
		MonitorThresholdVoltage: int16(uint16(regs[RegMonitorThreshold])),

		MonitorWindowStart:    regs[RegMonitorWindowStart],
		MonitorWindowDuration: regs[RegMonitorWindowDuration],
	}
}

// Pack converts typed settings back into raw register words.
func Pack(s probe.Settings) map[uint16]uint32 {
	var flags, monFlags uint32
	if s.ArmEnable {
		flags |= FlagArmEnable
	}
	if s.ExtTriggerIn {
		flags |= FlagExtTriggerIn
	}
	if s.AutoRearmEnable {
		flags |= FlagAutoRearmEnable
	}
	if s.FaultClear {
		flags |= FlagFaultClear
	}
	if s.MonitorEnable {
		monFlags |= FlagMonitorEnable
	}
	if s.MonitorExpectNegative {
		monFlags |= FlagMonitorExpectNegative
	}
	return map[uint16]uint32{
		RegControlFlags:          flags,
		RegTrigOutVoltage:        uint32(uint16(s.TrigOutVoltage)),
		RegTrigOutDuration:       uint32(s.TrigOutDuration),
		RegIntensityVoltage:      uint32(uint16(s.IntensityVoltage)),
		RegIntensityDuration:     uint32(s.IntensityDuration),
		RegTriggerWaitTimeout:    uint32(s.TriggerWaitTimeout),
		RegCooldownInterval:      s.CooldownInterval & 0xffffff,
		RegMonitorFlags:          monFlags,
		RegMonitorThreshold:      uint32(uint16(s.MonitorThresholdVoltage)),
		RegMonitorWindowStart:    s.MonitorWindowStart,
		RegMonitorWindowDuration: s.MonitorWindowDuration,
	}
}
