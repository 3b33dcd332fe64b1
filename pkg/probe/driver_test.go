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

package probe_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/forge-fi/go-probe/pkg/clock"
	"github.com/forge-fi/go-probe/pkg/probe"
)

// stepN advances the driver n ticks with the same settings and feedback.
func stepN(d *probe.Driver, s probe.Settings, feedback int16, n int) {
	for i := 0; i < n; i++ {
		d.Step(s, feedback)
	}
}

var _ = Describe("Driver", func() {
	// At 1 MHz one tick is 1 us, so nanosecond durations divide by 1000
	// and microsecond durations map one to one.
	var (
		d *probe.Driver
		s probe.Settings
	)

	BeforeEach(func() {
		d = probe.NewDriver(1 * clock.MHz)
		s = probe.Settings{
			TriggerWaitTimeout: 10, // far beyond any test horizon
			TrigOutDuration:    2000,
			IntensityDuration:  5000,
			CooldownInterval:   3,
		}
	})

	It("should start in IDLE with inactive outputs", func() {
		Expect(d.State()).To(Equal(probe.StateIdle))
		status := d.Status()
		Expect(status.TrigOutActive).To(BeFalse())
		Expect(status.IntensityOutActive).To(BeFalse())
		Expect(status.StateCode).To(Equal(uint8(probe.CodeIdle)))
	})

	It("should stay in IDLE while arm_enable is low", func() {
		stepN(d, s, 0, 10)
		Expect(d.State()).To(Equal(probe.StateIdle))
	})

	It("should move to ARMED on the tick after arm_enable goes high", func() {
		s.ArmEnable = true
		d.Step(s, 0)
		Expect(d.State()).To(Equal(probe.StateArmed))
		Expect(d.Status().StateCode).To(Equal(uint8(probe.CodeArmed)))
	})

	Context("when armed", func() {
		BeforeEach(func() {
			s.ArmEnable = true
			d.Step(s, 0)
			Expect(d.State()).To(Equal(probe.StateArmed))
		})

		It("should fire on the tick after ext_trigger_in goes high", func() {
			s.ExtTriggerIn = true
			d.Step(s, 0)

			Expect(d.State()).To(Equal(probe.StateFiring))
			status := d.Status()
			Expect(status.TrigOutActive).To(BeTrue())
			Expect(status.IntensityOutActive).To(BeTrue())
			Expect(status.StateCode).To(Equal(uint8(probe.CodeFiring)))
		})

		It("should keep outputs inactive while waiting", func() {
			stepN(d, s, 0, 5)
			status := d.Status()
			Expect(status.TrigOutActive).To(BeFalse())
			Expect(status.IntensityOutActive).To(BeFalse())
		})
	})

	Context("when firing", func() {
		BeforeEach(func() {
			s.ArmEnable = true
			d.Step(s, 0)
			s.ExtTriggerIn = true
			d.Step(s, 0)
			Expect(d.State()).To(Equal(probe.StateFiring))
			s.ExtTriggerIn = false
		})

		It("should hold both outputs active until the longer channel completes", func() {
			// trig channel is 2 ticks, intensity 5. Both flags follow the
			// state, so trig_out stays active for the whole 5 ticks.
			for i := 0; i < 5; i++ {
				d.Step(s, 0)
				Expect(d.State()).To(Equal(probe.StateFiring))
				status := d.Status()
				Expect(status.TrigOutActive).To(BeTrue())
				Expect(status.IntensityOutActive).To(BeTrue())
			}

			d.Step(s, 0)
			Expect(d.State()).To(Equal(probe.StateCooldown))
			status := d.Status()
			Expect(status.TrigOutActive).To(BeFalse())
			Expect(status.IntensityOutActive).To(BeFalse())
			Expect(status.StateCode).To(Equal(uint8(probe.CodeCooldown)))
		})
	})

	Context("with zero pulse durations", func() {
		BeforeEach(func() {
			s.TrigOutDuration = 0
			s.IntensityDuration = 0
			s.ArmEnable = true
			d.Step(s, 0)
			s.ExtTriggerIn = true
			d.Step(s, 0)
			Expect(d.State()).To(Equal(probe.StateFiring))
		})

		It("should reach COOLDOWN on the first tick after entering FIRING", func() {
			d.Step(s, 0)
			Expect(d.State()).To(Equal(probe.StateCooldown))
		})
	})

	Context("when cooling down", func() {
		fire := func() {
			s.ArmEnable = true
			d.Step(s, 0)
			s.ExtTriggerIn = true
			d.Step(s, 0)
			s.ExtTriggerIn = false
			stepN(d, s, 0, 6)
			Expect(d.State()).To(Equal(probe.StateCooldown))
		}

		It("should return to IDLE after expiry with auto rearm off", func() {
			s.ArmEnable = false
			fire()
			stepN(d, s, 0, 3)
			Expect(d.State()).To(Equal(probe.StateCooldown))
			d.Step(s, 0)
			Expect(d.State()).To(Equal(probe.StateIdle))
		})

		It("should return to ARMED after expiry with auto rearm on", func() {
			s.AutoRearmEnable = true
			fire()
			stepN(d, s, 0, 3)
			Expect(d.State()).To(Equal(probe.StateCooldown))
			d.Step(s, 0)
			Expect(d.State()).To(Equal(probe.StateArmed))
		})

		It("should run a full second cycle after auto rearm", func() {
			s.AutoRearmEnable = true
			fire()
			stepN(d, s, 0, 4)
			Expect(d.State()).To(Equal(probe.StateArmed))

			// Timers must start from zero again, no carryover from the
			// previous cycle.
			s.ExtTriggerIn = true
			d.Step(s, 0)
			s.ExtTriggerIn = false
			Expect(d.State()).To(Equal(probe.StateFiring))
			for i := 0; i < 5; i++ {
				d.Step(s, 0)
				Expect(d.State()).To(Equal(probe.StateFiring))
			}
			d.Step(s, 0)
			Expect(d.State()).To(Equal(probe.StateCooldown))
		})
	})

	Context("with the armed timeout", func() {
		// 2 Hz makes a 2 second timeout exactly 4 ticks.
		BeforeEach(func() {
			d = probe.NewDriver(2 * clock.Hz)
			s = probe.Settings{TriggerWaitTimeout: 2}
			s.ArmEnable = true
			d.Step(s, 0)
			Expect(d.State()).To(Equal(probe.StateArmed))
		})

		It("should fault at exactly the converted bound, not before", func() {
			stepN(d, s, 0, 4)
			Expect(d.State()).To(Equal(probe.StateArmed))

			d.Step(s, 0)
			Expect(d.State()).To(Equal(probe.StateFault))
			Expect(d.Status().StateCode).To(Equal(uint8(probe.CodeFault)))
			Expect(d.FaultCause()).To(Equal(probe.FaultTimeout))
		})

		It("should prioritize the timeout over a simultaneous trigger", func() {
			stepN(d, s, 0, 4)
			s.ExtTriggerIn = true
			d.Step(s, 0)
			Expect(d.State()).To(Equal(probe.StateFault))
		})

		It("should fire instead when the trigger arrives in time", func() {
			stepN(d, s, 0, 3)
			s.ExtTriggerIn = true
			d.Step(s, 0)
			Expect(d.State()).To(Equal(probe.StateFiring))
		})
	})

	Context("when faulted", func() {
		BeforeEach(func() {
			d = probe.NewDriver(2 * clock.Hz)
			s = probe.Settings{TriggerWaitTimeout: 1}
			s.ArmEnable = true
			d.Step(s, 0)
			stepN(d, s, 0, 3)
			Expect(d.State()).To(Equal(probe.StateFault))
			s.ArmEnable = false
		})

		It("should stay faulted regardless of other inputs", func() {
			s.ArmEnable = true
			s.ExtTriggerIn = true
			stepN(d, s, 0, 10)
			Expect(d.State()).To(Equal(probe.StateFault))
		})

		It("should return to IDLE on a fault_clear rising edge", func() {
			s.FaultClear = true
			d.Step(s, 0)
			Expect(d.State()).To(Equal(probe.StateIdle))
			Expect(d.FaultCause()).To(Equal(probe.FaultNone))
		})

		It("should ignore a fault_clear level held high since before the fault", func() {
			// Re-fault with fault_clear held high the whole time.
			s.FaultClear = true
			d.Step(s, 0)
			Expect(d.State()).To(Equal(probe.StateIdle))
			s.ArmEnable = true
			d.Step(s, 0)
			stepN(d, s, 0, 3)
			Expect(d.State()).To(Equal(probe.StateFault))

			// Held level, no edge: sticky.
			stepN(d, s, 0, 5)
			Expect(d.State()).To(Equal(probe.StateFault))

			// A fresh falling-then-rising transition clears it.
			s.ArmEnable = false
			s.FaultClear = false
			d.Step(s, 0)
			Expect(d.State()).To(Equal(probe.StateFault))
			s.FaultClear = true
			d.Step(s, 0)
			Expect(d.State()).To(Equal(probe.StateIdle))
		})
	})

	Context("with a zero timeout", func() {
		It("should fault on the first armed tick", func() {
			s.TriggerWaitTimeout = 0
			s.ArmEnable = true
			d.Step(s, 0)
			Expect(d.State()).To(Equal(probe.StateArmed))
			d.Step(s, 0)
			Expect(d.State()).To(Equal(probe.StateFault))
			Expect(d.FaultCause()).To(Equal(probe.FaultTimeout))
		})
	})

	Context("with the monitor enabled", func() {
		BeforeEach(func() {
			s.MonitorEnable = true
			s.MonitorThresholdVoltage = 100
			s.MonitorWindowStart = 0
			s.MonitorWindowDuration = 5000
			s.ArmEnable = true
			d.Step(s, 0)
			s.ExtTriggerIn = true
			d.Step(s, 0)
			s.ExtTriggerIn = false
			Expect(d.State()).To(Equal(probe.StateFiring))
		})

		It("should latch a crossing above the threshold", func() {
			d.Step(s, 200)
			Expect(d.MonitorTriggered()).To(BeTrue())
		})

		It("should not latch below the threshold", func() {
			stepN(d, s, 50, 5)
			Expect(d.MonitorTriggered()).To(BeFalse())
		})

		It("should latch below the threshold with negative polarity", func() {
			s.MonitorExpectNegative = true
			s.MonitorThresholdVoltage = -100
			d.Step(s, -200)
			Expect(d.MonitorTriggered()).To(BeTrue())
			d.Step(s, 200)
			Expect(d.MonitorTriggered()).To(BeTrue())
		})

		It("should ignore crossings before the window opens", func() {
			s.MonitorWindowStart = 2000
			d.Step(s, 200)
			d.Step(s, 200)
			Expect(d.MonitorTriggered()).To(BeFalse())
			d.Step(s, 200)
			Expect(d.MonitorTriggered()).To(BeTrue())
		})

		It("should ignore crossings after the window closes", func() {
			s.MonitorWindowDuration = 2000
			stepN(d, s, 50, 2)
			d.Step(s, 200)
			Expect(d.MonitorTriggered()).To(BeFalse())
		})

		It("should hold the latch through COOLDOWN and clear it on IDLE entry", func() {
			d.Step(s, 200)
			Expect(d.MonitorTriggered()).To(BeTrue())
			s.ArmEnable = false

			stepN(d, s, 0, 5)
			Expect(d.State()).To(Equal(probe.StateCooldown))
			Expect(d.MonitorTriggered()).To(BeTrue())

			stepN(d, s, 0, 4)
			Expect(d.State()).To(Equal(probe.StateIdle))
			Expect(d.MonitorTriggered()).To(BeFalse())
		})
	})

	Context("with an additional safety check", func() {
		BeforeEach(func() {
			d.AddSafetyCheck("feedback overrange", func(s probe.Settings, feedback int16) bool {
				return feedback > 1000
			})
		})

		It("should fault with the check's name when it trips", func() {
			s.ArmEnable = true
			d.Step(s, 0)
			d.Step(s, 2000)
			Expect(d.State()).To(Equal(probe.StateFault))
			Expect(d.FaultCause()).To(Equal(probe.FaultSafety))
			Expect(d.FaultDetail()).To(Equal("feedback overrange"))
		})

		It("should not fault while the check stays quiet", func() {
			s.ArmEnable = true
			stepN(d, s, 500, 5)
			Expect(d.State()).To(Equal(probe.StateArmed))
		})
	})

	Describe("Reset", func() {
		It("should return to IDLE from FAULT with the cause cleared", func() {
			d = probe.NewDriver(2 * clock.Hz)
			s = probe.Settings{TriggerWaitTimeout: 1, ArmEnable: true}
			d.Step(s, 0)
			stepN(d, s, 0, 3)
			Expect(d.State()).To(Equal(probe.StateFault))

			d.Reset()
			Expect(d.State()).To(Equal(probe.StateIdle))
			Expect(d.FaultCause()).To(Equal(probe.FaultNone))
			Expect(d.MonitorTriggered()).To(BeFalse())
		})
	})
})
