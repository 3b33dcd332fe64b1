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
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/google/gopacket"

	"github.com/forge-fi/go-probe/pkg/clock"
	"github.com/forge-fi/go-probe/pkg/config"
	"github.com/forge-fi/go-probe/pkg/fsmobserver"
	"github.com/forge-fi/go-probe/pkg/layers"
	"github.com/forge-fi/go-probe/pkg/log"
	"github.com/forge-fi/go-probe/pkg/probe"
	"github.com/forge-fi/go-probe/pkg/regmap"
	"github.com/forge-fi/go-probe/pkg/srv"
	"github.com/forge-fi/go-probe/pkg/srv/control/ifc"
)

const (
	RegPort = 33320
)

// ControlServer owns the probe driver. It admits host register writes over
// UDP and HTTP, runs the tick loop, and exposes status. The driver itself
// is stepped only by the tick loop; everything else goes through the
// settings store or the server mutex.
type ControlServer struct {
	srv.Server

	freq         clock.Freq
	tickInterval time.Duration

	driver   *probe.Driver
	store    *probe.SettingsStore
	regs     *RegFile
	observer *fsmobserver.Observer
	feedback *FeedbackCell
	api      ifc.ApiServer

	mu      sync.RWMutex // guards driver and voltage
	voltage float64
}

var _ ifc.ControlServer = &ControlServer{}

func NewControlServer(ctx context.Context, cfg *config.Config) (ifc.ControlServer, error) {
	log.Debug("Initializing control server with address: %s port: %d", cfg.IP, RegPort)

	freq, err := clock.Parse(cfg.TickRate)
	if err != nil {
		return nil, err
	}
	policy, err := probe.ParseUpdatePolicy(cfg.UpdatePolicy)
	if err != nil {
		return nil, err
	}
	tickInterval, err := time.ParseDuration(cfg.TickInterval)
	if err != nil {
		return nil, err
	}

	uaddr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", cfg.IP, RegPort))
	if err != nil {
		return nil, err
	}

	regs, err := NewRegFile(ctx, cfg)
	if err != nil {
		return nil, err
	}

	s := &ControlServer{
		Server: srv.Server{
			Context: ctx,
			Config:  cfg,
			UDPAddr: uaddr,
			ChIn:    make(chan srv.InPacket),
			ChOut:   make(chan srv.OutPacket),
		},
		freq:         freq,
		tickInterval: tickInterval,
		driver:       probe.NewDriver(freq),
		store:        probe.NewSettingsStore(policy),
		regs:         regs,
		observer:     fsmobserver.NewDefault(),
		feedback:     NewFeedbackCell(),
	}

	// reload the persisted register file so the probe comes back with its
	// last configuration
	if err := s.publishRegs(); err != nil {
		regs.Close()
		return nil, err
	}

	apiServer, err := NewApiServer(ctx, cfg, s)
	if err != nil {
		regs.Close()
		return nil, err
	}
	s.api = apiServer

	return s, nil
}

func (s *ControlServer) Run() error {
	log.Info("Starting control server: address: %s port: %d tick: %s at %s",
		s.Config.IP, RegPort, s.freq, s.tickInterval)

	conn, err := net.ListenUDP("udp", s.UDPAddr)
	if err != nil {
		return err
	}

	defer conn.Close()
	defer s.regs.Close()

	errChan := make(chan error, 1)
	buffer := make([]byte, 65536)

	// Read UDP packets from wire and put them to input queue
	go func() {
		for {
			length, addr, readErr := conn.ReadFrom(buffer)
			if readErr != nil {
				errChan <- readErr
				return
			}
			udpAddr, readErr := net.ResolveUDPAddr("udp", addr.String())
			if readErr != nil {
				errChan <- readErr
				return
			}

			captureInfo := gopacket.CaptureInfo{
				Length:        length,
				CaptureLength: length,
				Timestamp:     time.Now(),
				AncillaryData: []interface{}{udpAddr},
			}

			data := make([]byte, length)
			copy(data, buffer[:length])
			s.ChIn <- srv.InPacket{Data: data, CaptureInfo: captureInfo}
		}
	}()

	// Read captured packets from input queue, parse them and apply the
	// register operations
	go func() {
		source := gopacket.NewPacketSource(s, layers.RegLayerType)
		for packet := range source.Packets() {
			peer, packetErr := srv.GetAddrPort(packet)
			if packetErr != nil {
				log.Error(packetErr.Error())
				continue
			}
			reg := packet.Layer(layers.RegLayerType)
			if reg == nil {
				log.Debug("Drop packet. No register ops from peer: %s", peer)
				continue
			}
			if err := s.applyRegOps(reg.(*layers.RegLayer).RegOps, peer); err != nil {
				log.Error(err.Error())
			}
		}
	}()

	// Read packets from output queue and send them to wire
	go func() {
		for {
			outPacket := <-s.ChOut
			_, sendErr := conn.WriteToUDP(outPacket.Data, outPacket.UDPAddr)
			if sendErr != nil {
				errChan <- sendErr
				return
			}
		}
	}()

	go func() {
		errChan <- s.api.Run()
	}()

	go s.runLoop()

	select {
	case <-s.Context.Done():
		return s.Context.Err()
	case err := <-errChan:
		return err
	}
}

// runLoop paces the logical ticks against the wall clock. One ticker fire
// is one tick of the cycle-accurate core.
func (s *ControlServer) runLoop() {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.Context.Done():
			return
		case <-ticker.C:
			s.step()
		}
	}
}

func (s *ControlServer) step() {
	s.mu.Lock()
	s.store.Sync(s.driver.State() == probe.StateIdle)
	settings := s.store.Snapshot()
	s.driver.Step(settings, s.feedback.Sample())
	s.voltage = s.observer.Observe(s.driver.Status().StateCode)
	s.mu.Unlock()
}

// applyRegOps executes one packet worth of register operations. Writes go
// to the register file and republish the unpacked settings; reads are
// answered with the stored values in a single reply packet.
func (s *ControlServer) applyRegOps(ops []*layers.RegOp, peer *net.UDPAddr) error {
	var readbacks []*layers.RegOp
	dirty := false
	for _, op := range ops {
		if op.Read {
			value, err := s.regs.Get(op.Addr)
			if err != nil {
				return err
			}
			readbacks = append(readbacks, &layers.RegOp{Addr: op.Addr, Value: value})
			continue
		}
		if err := s.regs.Set(op.Addr, op.Value); err != nil {
			return err
		}
		dirty = true
	}
	if dirty {
		if err := s.publishRegs(); err != nil {
			return err
		}
	}
	if len(readbacks) > 0 {
		reply := &layers.RegLayer{RegOps: readbacks}
		buf := make([]byte, len(readbacks)*layers.RegOpSize)
		reply.Serialize(buf)
		s.ChOut <- srv.OutPacket{Data: buf, UDPAddr: peer}
	}
	return nil
}

// publishRegs pushes the current register file to the settings store. The
// store's update policy decides when the controller observes it.
func (s *ControlServer) publishRegs() error {
	regs, err := s.regs.All()
	if err != nil {
		return err
	}
	s.store.Publish(regmap.Unpack(regs))
	return nil
}

func (s *ControlServer) RegRead(addr uint16) (*layers.RegOp, error) {
	value, err := s.regs.Get(addr)
	if err != nil {
		return nil, err
	}
	return &layers.RegOp{Addr: addr, Value: value}, nil
}

func (s *ControlServer) RegReadAll() ([]*layers.RegOp, error) {
	var ops []*layers.RegOp
	for _, addr := range regmap.Addrs() {
		op, err := s.RegRead(addr)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func (s *ControlServer) RegWrite(op *layers.RegOp) error {
	if err := s.regs.Set(op.Addr, op.Value); err != nil {
		return err
	}
	return s.publishRegs()
}

func (s *ControlServer) setControlFlag(flag uint32, val bool) error {
	value, err := s.regs.Get(regmap.RegControlFlags)
	if err != nil {
		return err
	}
	if val {
		value |= flag
	} else {
		value &^= flag
	}
	return s.RegWrite(&layers.RegOp{Addr: regmap.RegControlFlags, Value: value})
}

func (s *ControlServer) Arm(enable bool) error {
	return s.setControlFlag(regmap.FlagArmEnable, enable)
}

func (s *ControlServer) SetAutoRearm(enable bool) error {
	return s.setControlFlag(regmap.FlagAutoRearmEnable, enable)
}

// PulseTrigger raises ext_trigger_in and drops it again after the
// controller has had a chance to sample the level.
func (s *ControlServer) PulseTrigger() error {
	return s.pulseControlFlag(regmap.FlagExtTriggerIn)
}

// ClearFault raises fault_clear and drops it again, producing the rising
// edge the driver acknowledges faults on.
func (s *ControlServer) ClearFault() error {
	return s.pulseControlFlag(regmap.FlagFaultClear)
}

func (s *ControlServer) pulseControlFlag(flag uint32) error {
	if err := s.setControlFlag(flag, true); err != nil {
		return err
	}
	time.AfterFunc(2*s.tickInterval, func() {
		if err := s.setControlFlag(flag, false); err != nil {
			log.Error(err.Error())
		}
	})
	return nil
}

func (s *ControlServer) Status() probe.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.driver.Status()
}

func (s *ControlServer) State() probe.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.driver.State()
}

func (s *ControlServer) MonitorTriggered() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.driver.MonitorTriggered()
}

func (s *ControlServer) ObserverVoltage() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.voltage
}

func (s *ControlServer) FaultCause() (probe.FaultCause, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.driver.FaultCause(), s.driver.FaultDetail()
}

func (s *ControlServer) ReadyForUpdates() bool {
	return s.store.ReadyForUpdates()
}

func (s *ControlServer) ResetDriver() {
	s.mu.Lock()
	s.driver.Reset()
	s.voltage = s.observer.Observe(s.driver.Status().StateCode)
	s.mu.Unlock()
}

func (s *ControlServer) SetFeedback(mv int16) {
	s.feedback.Set(mv)
}
