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

// windowComparator watches the feedback signal during FIRING. After a
// configurable delay from FIRING entry it opens a window of configurable
// length; any threshold crossing while the window is open sets the sticky
// triggered latch. The latch survives the rest of the cycle and is cleared
// only on IDLE entry.
type windowComparator struct {
	startElapsed uint64
	openElapsed  uint64
	windowOpen   bool
	triggered    bool
}

// observe runs one firing tick of the comparator. startBound and openBound
// are the window delay and window length in ticks. With expectNegative the
// crossing condition is feedback below threshold, otherwise above.
func (m *windowComparator) observe(feedback, threshold int16, expectNegative bool, startBound, openBound uint64) {
	open := m.startElapsed >= startBound && m.openElapsed < openBound
	m.windowOpen = open
	if open {
		crossed := feedback > threshold
		if expectNegative {
			crossed = feedback < threshold
		}
		if crossed {
			m.triggered = true
		}
		m.openElapsed++
	}
	if m.startElapsed < startBound {
		m.startElapsed++
	}
}

// reset rewinds the window timers for a new firing cycle. The triggered
// latch is left alone, see clear.
func (m *windowComparator) reset() {
	m.startElapsed = 0
	m.openElapsed = 0
	m.windowOpen = false
}

// clear drops the sticky latch. Called on IDLE entry only.
func (m *windowComparator) clear() {
	m.triggered = false
}
