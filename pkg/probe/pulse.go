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

// pulseChannel is a single up-counter timing one output pulse.
type pulseChannel struct {
	elapsed uint64
}

func (c *pulseChannel) done(bound uint64) bool {
	return c.elapsed >= bound
}

func (c *pulseChannel) tick(bound uint64) {
	if c.elapsed < bound {
		c.elapsed++
	}
}

func (c *pulseChannel) reset() {
	c.elapsed = 0
}

// dualPulseGenerator times the FIRING phase with two independent counters,
// one per output channel. The output-active flags are not gated here: both
// outputs are asserted for as long as the state is FIRING, so a channel
// with the shorter configured duration stays reported active until its
// sibling also finishes.
type dualPulseGenerator struct {
	trig      pulseChannel
	intensity pulseChannel
}

// complete reports whether both channels have reached their bounds. A zero
// bound is satisfied on the first firing tick.
func (g *dualPulseGenerator) complete(trigBound, intensityBound uint64) bool {
	return g.trig.done(trigBound) && g.intensity.done(intensityBound)
}

func (g *dualPulseGenerator) tick(trigBound, intensityBound uint64) {
	g.trig.tick(trigBound)
	g.intensity.tick(intensityBound)
}

func (g *dualPulseGenerator) reset() {
	g.trig.reset()
	g.intensity.reset()
}
