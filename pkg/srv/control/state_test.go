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
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forge-fi/go-probe/pkg/config"
	"github.com/forge-fi/go-probe/pkg/regmap"
)

func newTestRegFile(t *testing.T) *RegFile {
	t.Helper()
	cfg := &config.Config{
		ProbeName: "bpd-test",
		DBPath:    filepath.Join(t.TempDir(), "regs.db"),
	}
	f, err := NewRegFile(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(f.Close)
	return f
}

func TestRegFileSeedsAllRegisters(t *testing.T) {
	f := newTestRegFile(t)

	regs, err := f.All()
	require.NoError(t, err)
	require.Len(t, regs, regmap.NumRegs)
	for _, addr := range regmap.Addrs() {
		assert.Equal(t, uint32(0), regs[addr])
	}
}

func TestRegFileSetGet(t *testing.T) {
	f := newTestRegFile(t)

	require.NoError(t, f.Set(regmap.RegTrigOutDuration, 200))
	value, err := f.Get(regmap.RegTrigOutDuration)
	require.NoError(t, err)
	assert.Equal(t, uint32(200), value)
}

func TestRegFileRejectsUnknownAddr(t *testing.T) {
	f := newTestRegFile(t)

	err := f.Set(regmap.NumRegs, 1)
	assert.Error(t, err)

	_, err = f.Get(0xffff)
	assert.Error(t, err)
}

func TestRegFileSurvivesReopen(t *testing.T) {
	cfg := &config.Config{
		ProbeName: "bpd-test",
		DBPath:    filepath.Join(t.TempDir(), "regs.db"),
	}
	f, err := NewRegFile(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, f.Set(regmap.RegCooldownInterval, 0x10))
	f.Close()

	f, err = NewRegFile(context.Background(), cfg)
	require.NoError(t, err)
	defer f.Close()

	// seeding must not overwrite persisted values
	value, err := f.Get(regmap.RegCooldownInterval)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x10), value)
}

func TestFeedbackCell(t *testing.T) {
	c := NewFeedbackCell()
	assert.Equal(t, int16(0), c.Sample())
	c.Set(-200)
	assert.Equal(t, int16(-200), c.Sample())
}
