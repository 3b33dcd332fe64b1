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

// cooldownTimer enforces the mandatory post-firing delay before the driver
// may re-arm or return to idle.
type cooldownTimer struct {
	elapsed uint64
}

func (t *cooldownTimer) expired(bound uint64) bool {
	return t.elapsed >= bound
}

func (t *cooldownTimer) tick(bound uint64) {
	if t.elapsed < bound {
		t.elapsed++
	}
}

func (t *cooldownTimer) reset() {
	t.elapsed = 0
}
