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
	"github.com/forge-fi/go-probe/pkg/clock"
)

// SafetyCheck is an additional fault condition evaluated every tick with
// fault priority over all other transitions. Returning true forces FAULT.
type SafetyCheck func(s Settings, feedback int16) bool

// Driver is the probe lifecycle controller: a single-threaded, tick-driven
// state machine. Exactly one Step runs per clock tick; all derived
// conditions are computed from the current tick's state before any mutation
// is committed. The driver owns its runtime state exclusively, the host
// never touches it directly.
type Driver struct {
	freq clock.Freq

	state    State
	watchdog armTimeoutWatchdog
	pulses   dualPulseGenerator
	monitor  windowComparator
	cooldown cooldownTimer

	faultClearPrev bool

	cause       FaultCause
	causeDetail string

	safetyChecks []namedSafetyCheck
}

type namedSafetyCheck struct {
	name  string
	check SafetyCheck
}

// NewDriver creates a driver in IDLE with all timers at zero. freq is the
// tick rate used to convert the host's second/microsecond/nanosecond
// settings into tick counts.
func NewDriver(freq clock.Freq) *Driver {
	return &Driver{
		freq:  freq,
		state: StateIdle,
	}
}

// AddSafetyCheck registers an extra fault condition. Only the armed timeout
// is wired by default.
func (d *Driver) AddSafetyCheck(name string, check SafetyCheck) {
	d.safetyChecks = append(d.safetyChecks, namedSafetyCheck{name: name, check: check})
}

// Reset returns the runtime state to IDLE with all timers zero. Settings
// are owned by the host and unaffected.
func (d *Driver) Reset() {
	d.enter(StateIdle)
	d.faultClearPrev = false
	d.cause = FaultNone
	d.causeDetail = ""
}

// State returns the current lifecycle state.
func (d *Driver) State() State {
	return d.state
}

// Status returns the exported outputs for the current tick. Both output
// flags track the FIRING state as a whole, not the individual channel
// timers.
func (d *Driver) Status() Status {
	return Status{
		TrigOutActive:      d.state == StateFiring,
		IntensityOutActive: d.state == StateFiring,
		StateCode:          d.state.Code(),
	}
}

// MonitorTriggered reports the sticky threshold-crossing latch. It is not
// part of the hardware status outputs; it is exported here for the API
// surface.
func (d *Driver) MonitorTriggered() bool {
	return d.monitor.triggered
}

// MonitorWindowOpen reports whether the comparator window was open on the
// last tick.
func (d *Driver) MonitorWindowOpen() bool {
	return d.monitor.windowOpen
}

// FaultCause returns the safety check that forced the current FAULT, or
// FaultNone.
func (d *Driver) FaultCause() FaultCause {
	return d.cause
}

// FaultDetail names the tripped safety check when FaultCause is FaultSafety.
func (d *Driver) FaultDetail() string {
	return d.causeDetail
}

// Step advances the controller by one tick. s holds the configuration
// values in effect for this tick, feedback the sampled monitor input in
// millivolts.
func (d *Driver) Step(s Settings, feedback int16) {
	timeoutBound := d.freq.TicksFromSeconds(s.TriggerWaitTimeout)
	trigBound := d.freq.TicksFromNanoseconds(uint32(s.TrigOutDuration))
	intensityBound := d.freq.TicksFromNanoseconds(uint32(s.IntensityDuration))
	cooldownBound := d.freq.TicksFromMicroseconds(s.CooldownInterval & 0xffffff)
	startBound := d.freq.TicksFromNanoseconds(s.MonitorWindowStart)
	windowBound := d.freq.TicksFromNanoseconds(s.MonitorWindowDuration)

	// Derived conditions, all from this tick's committed state.
	timeoutOccurred := d.state == StateArmed && d.watchdog.expired(timeoutBound)
	firingComplete := d.state == StateFiring && d.pulses.complete(trigBound, intensityBound)
	cooldownComplete := d.state == StateCooldown && d.cooldown.expired(cooldownBound)
	faultClearEdge := s.FaultClear && !d.faultClearPrev
	d.faultClearPrev = s.FaultClear

	// The comparator samples the same tick it is evaluated on, including
	// the tick FIRING completes.
	if d.state == StateFiring && s.MonitorEnable {
		d.monitor.observe(feedback, s.MonitorThresholdVoltage, s.MonitorExpectNegative,
			startBound, windowBound)
	}

	// Fault detection takes priority over every other transition.
	if d.state != StateFault {
		if cause, detail := d.checkFaults(s, feedback, timeoutOccurred); cause != FaultNone {
			d.cause = cause
			d.causeDetail = detail
			d.enter(StateFault)
			return
		}
	}

	next := d.state
	switch d.state {
	case StateIdle:
		if s.ArmEnable {
			next = StateArmed
		}
	case StateArmed:
		if s.ExtTriggerIn {
			next = StateFiring
		}
	case StateFiring:
		if firingComplete {
			next = StateCooldown
		}
	case StateCooldown:
		if cooldownComplete {
			if s.AutoRearmEnable {
				next = StateArmed
			} else {
				next = StateIdle
			}
		}
	case StateFault:
		if faultClearEdge {
			next = StateIdle
			d.cause = FaultNone
			d.causeDetail = ""
		}
	}

	if next != d.state {
		d.enter(next)
		return
	}

	switch d.state {
	case StateArmed:
		d.watchdog.tick(timeoutBound)
	case StateFiring:
		d.pulses.tick(trigBound, intensityBound)
	case StateCooldown:
		d.cooldown.tick(cooldownBound)
	}
}

func (d *Driver) checkFaults(s Settings, feedback int16, timeoutOccurred bool) (FaultCause, string) {
	if !d.state.valid() {
		return FaultUndefinedState, ""
	}
	if timeoutOccurred {
		return FaultTimeout, ""
	}
	for _, c := range d.safetyChecks {
		if c.check(s, feedback) {
			return FaultSafety, c.name
		}
	}
	return FaultNone, ""
}

// enter commits a transition, rewinding the timers of the entered state.
func (d *Driver) enter(next State) {
	switch next {
	case StateIdle:
		d.watchdog.reset()
		d.pulses.reset()
		d.cooldown.reset()
		d.monitor.reset()
		d.monitor.clear()
	case StateArmed:
		d.watchdog.reset()
		d.pulses.reset()
	case StateFiring:
		d.pulses.reset()
		d.monitor.reset()
	case StateCooldown:
		d.cooldown.reset()
		d.monitor.windowOpen = false
	}
	d.state = next
}
