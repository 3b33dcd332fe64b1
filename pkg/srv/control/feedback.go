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

package control

import (
	"sync"
)

// FeedbackSource supplies the monitor feedback sample for each tick, in
// millivolts.
type FeedbackSource interface {
	Sample() int16
}

// FeedbackCell is a settable feedback source. Without probe hardware
// attached the feedback input is driven through the API, which lands here.
type FeedbackCell struct {
	mu sync.RWMutex
	mv int16
}

func NewFeedbackCell() *FeedbackCell {
	return &FeedbackCell{}
}

func (c *FeedbackCell) Set(mv int16) {
	c.mu.Lock()
	c.mv = mv
	c.mu.Unlock()
}

func (c *FeedbackCell) Sample() int16 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mv
}
