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
	"sync"
)

// UpdatePolicy selects how host configuration writes reach the tick loop.
//
// The hardware documents a state-aware update handshake but wires
// ready_for_updates permanently true, so host writes always land
// immediately. Both behaviors are kept here as explicit, selectable
// policies instead of silently picking one.
type UpdatePolicy int

const (
	// PolicyAlwaysLive reproduces the shipped hardware: the controller
	// reads whatever values are present at the instant of each tick and
	// ready_for_updates is hard-wired true.
	PolicyAlwaysLive UpdatePolicy = iota

	// PolicySnapshotOnIdle matches the documented intent: parameters are
	// latched into a snapshot while the controller is IDLE and held fixed
	// for the remainder of the operating cycle.
	PolicySnapshotOnIdle
)

func (p UpdatePolicy) String() string {
	switch p {
	case PolicyAlwaysLive:
		return "live"
	case PolicySnapshotOnIdle:
		return "snapshot"
	default:
		return "unknown"
	}
}

// ParseUpdatePolicy parses the config file spelling of a policy.
func ParseUpdatePolicy(s string) (UpdatePolicy, error) {
	switch s {
	case "live":
		return PolicyAlwaysLive, nil
	case "snapshot":
		return PolicySnapshotOnIdle, nil
	}
	return 0, ErrUnknownPolicy{What: s}
}

// SettingsStore is the concurrency boundary between the asynchronously
// writing host and the tick-driven driver. Host goroutines publish into a
// last-writer-wins cell; the tick loop reads one consistent copy per tick.
//
// Under PolicySnapshotOnIdle only the timing, voltage and monitor
// parameters are latched. The control lines (ArmEnable, ExtTriggerIn,
// FaultClear) pass live under both policies: latching them would leave
// ARMED unable to fire and FAULT unable to clear.
type SettingsStore struct {
	mu        sync.RWMutex
	policy    UpdatePolicy
	published Settings
	latched   Settings
	ready     bool
}

// NewSettingsStore creates a store holding the all-zero safe defaults. The
// controller starts in IDLE, so the store starts ready.
func NewSettingsStore(policy UpdatePolicy) *SettingsStore {
	return &SettingsStore{
		policy: policy,
		ready:  true,
	}
}

func (st *SettingsStore) Policy() UpdatePolicy {
	return st.policy
}

// Publish replaces the published settings, last writer wins. Safe to call
// from any goroutine at any time relative to the tick.
func (st *SettingsStore) Publish(s Settings) {
	st.mu.Lock()
	st.published = s
	st.mu.Unlock()
}

// Update mutates the published settings in place under the store lock, for
// hosts that write one field at a time.
func (st *SettingsStore) Update(fn func(*Settings)) {
	st.mu.Lock()
	fn(&st.published)
	st.mu.Unlock()
}

// Published returns the raw host-facing cell, regardless of policy.
func (st *SettingsStore) Published() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.published
}

// Sync is called by the tick loop once per tick with the safe-state signal
// (controller in IDLE). Under the snapshot policy it admits pending
// parameter writes while safe; under the live policy it is only
// bookkeeping for ReadyForUpdates.
func (st *SettingsStore) Sync(safe bool) {
	st.mu.Lock()
	st.ready = safe
	if st.policy == PolicySnapshotOnIdle && safe {
		st.latched = st.published
	}
	st.mu.Unlock()
}

// Snapshot returns the settings in effect for this tick.
func (st *SettingsStore) Snapshot() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	if st.policy == PolicyAlwaysLive {
		return st.published
	}
	s := st.latched
	s.ArmEnable = st.published.ArmEnable
	s.ExtTriggerIn = st.published.ExtTriggerIn
	s.FaultClear = st.published.FaultClear
	return s
}

// ReadyForUpdates tells the host whether writes are admitted immediately.
// Hard-wired true under the live policy, exactly as the hardware ships.
func (st *SettingsStore) ReadyForUpdates() bool {
	if st.policy == PolicyAlwaysLive {
		return true
	}
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.ready
}
