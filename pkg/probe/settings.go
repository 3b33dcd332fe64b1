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

// Settings carries the typed configuration values written by the host.
// The zero value is the safe power-on default: everything disabled, all
// durations zero.
//
// ArmEnable and ExtTriggerIn are levels sampled each tick. FaultClear is
// edge-detected by the driver.
type Settings struct {
	ArmEnable    bool
	ExtTriggerIn bool
	FaultClear   bool

	// seconds
	TriggerWaitTimeout uint16

	AutoRearmEnable bool

	// millivolts, passed through to the output stage
	TrigOutVoltage   int16
	IntensityVoltage int16

	// nanoseconds
	TrigOutDuration   uint16
	IntensityDuration uint16

	// microseconds, 24-bit on the register interface
	CooldownInterval uint32

	MonitorEnable           bool
	MonitorExpectNegative   bool
	MonitorThresholdVoltage int16 // millivolts

	// nanoseconds, counted from FIRING entry
	MonitorWindowStart    uint32
	MonitorWindowDuration uint32
}
