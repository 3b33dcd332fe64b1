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

package layers

import (
	"fmt"
)

// ErrRegOpDecode returned when a register packet is not a whole number of
// register op words
type ErrRegOpDecode struct {
	Len int
}

func (e ErrRegOpDecode) Error() string {
	return fmt.Sprintf("Can not decode register ops: bad packet length: %d", e.Len)
}
