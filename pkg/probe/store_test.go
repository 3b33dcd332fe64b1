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

	"github.com/forge-fi/go-probe/pkg/probe"
)

var _ = Describe("SettingsStore", func() {
	Context("with the live policy", func() {
		var st *probe.SettingsStore

		BeforeEach(func() {
			st = probe.NewSettingsStore(probe.PolicyAlwaysLive)
		})

		It("should hand published writes to the very next tick", func() {
			st.Publish(probe.Settings{TrigOutDuration: 100})
			st.Sync(false)
			Expect(st.Snapshot().TrigOutDuration).To(Equal(uint16(100)))
		})

		It("should always report ready", func() {
			st.Sync(false)
			Expect(st.ReadyForUpdates()).To(BeTrue())
			st.Sync(true)
			Expect(st.ReadyForUpdates()).To(BeTrue())
		})
	})

	Context("with the snapshot policy", func() {
		var st *probe.SettingsStore

		BeforeEach(func() {
			st = probe.NewSettingsStore(probe.PolicySnapshotOnIdle)
		})

		It("should hold back parameter writes made outside the safe state", func() {
			st.Publish(probe.Settings{TrigOutDuration: 100})
			st.Sync(true)
			Expect(st.Snapshot().TrigOutDuration).To(Equal(uint16(100)))

			st.Publish(probe.Settings{TrigOutDuration: 200})
			st.Sync(false)
			Expect(st.Snapshot().TrigOutDuration).To(Equal(uint16(100)))
		})

		It("should admit held writes when the safe state returns", func() {
			st.Publish(probe.Settings{TrigOutDuration: 200})
			st.Sync(false)
			Expect(st.Snapshot().TrigOutDuration).To(Equal(uint16(0)))
			st.Sync(true)
			Expect(st.Snapshot().TrigOutDuration).To(Equal(uint16(200)))
		})

		It("should pass the control lines through live", func() {
			st.Sync(true)
			st.Sync(false)

			st.Update(func(s *probe.Settings) {
				s.ExtTriggerIn = true
				s.FaultClear = true
			})
			snap := st.Snapshot()
			Expect(snap.ExtTriggerIn).To(BeTrue())
			Expect(snap.FaultClear).To(BeTrue())
		})

		It("should track the safe state in readiness", func() {
			st.Sync(false)
			Expect(st.ReadyForUpdates()).To(BeFalse())
			st.Sync(true)
			Expect(st.ReadyForUpdates()).To(BeTrue())
		})
	})

	Describe("ParseUpdatePolicy", func() {
		It("should parse the config file spellings", func() {
			p, err := probe.ParseUpdatePolicy("live")
			Expect(err).ToNot(HaveOccurred())
			Expect(p).To(Equal(probe.PolicyAlwaysLive))

			p, err = probe.ParseUpdatePolicy("snapshot")
			Expect(err).ToNot(HaveOccurred())
			Expect(p).To(Equal(probe.PolicySnapshotOnIdle))
		})

		It("should reject unknown spellings", func() {
			_, err := probe.ParseUpdatePolicy("eventually")
			Expect(err).To(HaveOccurred())
		})
	})
})
