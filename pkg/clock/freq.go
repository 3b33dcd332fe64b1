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

package clock

import (
	"strconv"
	"strings"
	"time"
)

// Freq is the fixed tick rate of the fabric clock driving all probe timers.
type Freq float64

const (
	Hz  Freq = 1
	KHz Freq = 1e3
	MHz Freq = 1e6
	GHz Freq = 1e9
)

// TicksPerSecond returns the integer tick rate.
func (f Freq) TicksPerSecond() uint64 {
	if f <= 0 {
		return 0
	}
	return uint64(f)
}

// TicksFromSeconds converts a whole-second duration to ticks.
func (f Freq) TicksFromSeconds(s uint16) uint64 {
	return uint64(s) * f.TicksPerSecond()
}

// TicksFromMicroseconds converts a microsecond duration to ticks,
// truncating toward zero. A zero duration converts to zero ticks.
func (f Freq) TicksFromMicroseconds(us uint32) uint64 {
	return uint64(us) * f.TicksPerSecond() / 1e6
}

// TicksFromNanoseconds converts a nanosecond duration to ticks,
// truncating toward zero. A zero duration converts to zero ticks.
func (f Freq) TicksFromNanoseconds(ns uint32) uint64 {
	return uint64(ns) * f.TicksPerSecond() / 1e9
}

// Period returns the wall duration of one tick.
func (f Freq) Period() time.Duration {
	if f <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / float64(f))
}

func (f Freq) String() string {
	switch {
	case f >= GHz:
		return trimZeros(float64(f/GHz)) + "GHz"
	case f >= MHz:
		return trimZeros(float64(f/MHz)) + "MHz"
	case f >= KHz:
		return trimZeros(float64(f/KHz)) + "kHz"
	default:
		return trimZeros(float64(f)) + "Hz"
	}
}

func trimZeros(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Parse parses a frequency string such as "125MHz", "1GHz" or "500kHz".
func Parse(s string) (Freq, error) {
	units := []struct {
		suffix string
		unit   Freq
	}{
		{"GHz", GHz},
		{"MHz", MHz},
		{"kHz", KHz},
		{"KHz", KHz},
		{"Hz", Hz},
	}
	trimmed := strings.TrimSpace(s)
	for _, u := range units {
		if !strings.HasSuffix(trimmed, u.suffix) {
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(trimmed, u.suffix)), 64)
		if err != nil {
			return 0, ErrParseFreq{What: s}
		}
		if value <= 0 {
			return 0, ErrParseFreq{What: s}
		}
		return Freq(value) * u.unit, nil
	}
	return 0, ErrParseFreq{What: s}
}
