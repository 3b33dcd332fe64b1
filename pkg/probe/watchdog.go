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

// armTimeoutWatchdog bounds the wait for an external trigger while ARMED.
// Expiry is a fault, not a return to IDLE: a failed arm-wait must be
// acknowledged by the operator before the probe can be reused.
type armTimeoutWatchdog struct {
	elapsed uint64
}

// expired reports whether the armed wait has reached the bound. With a
// bound of zero ticks the watchdog expires on the first armed tick.
func (w *armTimeoutWatchdog) expired(bound uint64) bool {
	return w.elapsed >= bound
}

// tick advances the watchdog by one armed tick, saturating at the bound.
func (w *armTimeoutWatchdog) tick(bound uint64) {
	if w.elapsed < bound {
		w.elapsed++
	}
}

func (w *armTimeoutWatchdog) reset() {
	w.elapsed = 0
}
