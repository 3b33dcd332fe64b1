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
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/forge-fi/go-probe/pkg/config"
	"github.com/forge-fi/go-probe/pkg/fsmobserver"
	"github.com/forge-fi/go-probe/pkg/layers"
	"github.com/forge-fi/go-probe/pkg/log"
	"github.com/forge-fi/go-probe/pkg/regmap"
	"github.com/forge-fi/go-probe/pkg/srv/control/ifc"
)

const (
	ApiPort = 8010
)

// RegHex is the hexadecimal register representation used on the API.
type RegHex struct {
	Addr  string `json:"addr"`
	Value string `json:"value"`
}

// StatusDoc is the status document served by the API. It carries the
// hardware status outputs plus the read-only extras: the monitor latch,
// the fault cause and the observer projection.
type StatusDoc struct {
	State              string  `json:"state"`
	StateCode          uint8   `json:"state_code"`
	TrigOutActive      bool    `json:"trig_out_active"`
	IntensityOutActive bool    `json:"intensity_out_active"`
	MonitorTriggered   bool    `json:"monitor_triggered"`
	FaultCause         string  `json:"fault_cause,omitempty"`
	FaultDetail        string  `json:"fault_detail,omitempty"`
	ObserverVoltage    float64 `json:"observer_voltage"`
	ObserverDigital    int16   `json:"observer_digital"`
	ReadyForUpdates    bool    `json:"ready_for_updates"`
}

type ArmSetup struct {
	Enable bool `json:"enable"`
}

type AutoRearmSetup struct {
	Enable bool `json:"enable"`
}

type FeedbackSetup struct {
	MV int16 `json:"mv"`
}

type ReadySetup struct {
	Ready bool `json:"ready"`
}

type ApiServer struct {
	context.Context
	*config.Config
	*mux.Router
	ctrl ifc.ControlServer
}

var _ ifc.ApiServer = &ApiServer{}

func NewApiServer(ctx context.Context, cfg *config.Config, ctrl ifc.ControlServer) (ifc.ApiServer, error) {
	log.Info("Initializing API server with address: %s port: %d", cfg.IP, ApiPort)

	s := &ApiServer{
		Context: ctx,
		Config:  cfg,
		ctrl:    ctrl,
	}
	return s, nil
}

func (s *ApiServer) Run() error {
	log.Info("Starting API server: address: %s port: %d", s.Config.IP, ApiPort)
	s.configureRouter()
	httpServer := &http.Server{
		Handler: s.Router,
		Addr:    fmt.Sprintf("%s:%d", s.Config.IP, ApiPort),
	}
	return httpServer.ListenAndServe()
}

func (s *ApiServer) configureRouter() {
	s.Router = mux.NewRouter()
	subRouter := s.Router.PathPrefix("/api").Subrouter()
	subRouter.HandleFunc("/status", s.handleStatus()).Methods("GET")
	subRouter.HandleFunc("/ready", s.handleReady()).Methods("GET")
	subRouter.HandleFunc("/regmap", s.handleRegMap()).Methods("GET")
	// addr must be a hexadecimal integer
	subRouter.HandleFunc("/reg/r/{addr:0x[0-9abcdef]{4}}", s.handleRegRead()).Methods("GET")
	subRouter.HandleFunc("/reg/r", s.handleRegReadAll()).Methods("GET")
	subRouter.HandleFunc("/reg/w", s.handleRegWrite()).Methods("POST")
	subRouter.HandleFunc("/arm", s.handleArm()).Methods("POST")
	subRouter.HandleFunc("/autorearm", s.handleAutoRearm()).Methods("POST")
	subRouter.HandleFunc("/trigger", s.handleTrigger()).Methods("POST")
	subRouter.HandleFunc("/clear", s.handleClear()).Methods("POST")
	subRouter.HandleFunc("/reset", s.handleReset()).Methods("POST")
	subRouter.HandleFunc("/feedback", s.handleFeedback()).Methods("POST")
}

func (s *ApiServer) statusDoc() *StatusDoc {
	status := s.ctrl.Status()
	cause, detail := s.ctrl.FaultCause()
	voltage := s.ctrl.ObserverVoltage()
	return &StatusDoc{
		State:              s.ctrl.State().String(),
		StateCode:          status.StateCode,
		TrigOutActive:      status.TrigOutActive,
		IntensityOutActive: status.IntensityOutActive,
		MonitorTriggered:   s.ctrl.MonitorTriggered(),
		FaultCause:         cause.String(),
		FaultDetail:        detail,
		ObserverVoltage:    voltage,
		ObserverDigital:    fsmobserver.Digital(voltage),
		ReadyForUpdates:    s.ctrl.ReadyForUpdates(),
	}
}

func (s *ApiServer) handleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Handling status request")
		json.NewEncoder(w).Encode(s.statusDoc())
	}
}

func (s *ApiServer) handleReady() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(&ReadySetup{Ready: s.ctrl.ReadyForUpdates()})
	}
}

func (s *ApiServer) handleRegMap() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		infos, err := regmap.Describe()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(infos)
	}
}

func (s *ApiServer) handleRegRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)

		log.Debug("Handling reg read request: addr: %s", vars["addr"])

		addr, err := strconv.ParseUint(vars["addr"], 0, 16)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		op, err := s.ctrl.RegRead(uint16(addr))
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		hexAddr, hexValue := op.Hex()
		json.NewEncoder(w).Encode(&RegHex{Addr: hexAddr, Value: hexValue})
	}
}

func (s *ApiServer) handleRegReadAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Handling reg read all request")

		ops, err := s.ctrl.RegReadAll()
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		regsHex := []*RegHex{}
		for _, op := range ops {
			hexAddr, hexValue := op.Hex()
			regsHex = append(regsHex, &RegHex{Addr: hexAddr, Value: hexValue})
		}
		json.NewEncoder(w).Encode(regsHex)
	}
}

func (s *ApiServer) handleRegWrite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		regHex := &RegHex{}
		err := json.NewDecoder(r.Body).Decode(regHex)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		log.Debug("Handling reg write request: addr: %s value: %s", regHex.Addr, regHex.Value)

		addr, err := strconv.ParseUint(regHex.Addr, 0, 16)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		value, err := strconv.ParseUint(regHex.Value, 0, 32)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		err = s.ctrl.RegWrite(&layers.RegOp{Addr: uint16(addr), Value: uint32(value)})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
	}
}

func (s *ApiServer) handleArm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setup := &ArmSetup{}
		err := json.NewDecoder(r.Body).Decode(setup)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		log.Debug("Handling arm request: enable: %t", setup.Enable)

		if err := s.ctrl.Arm(setup.Enable); err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
	}
}

func (s *ApiServer) handleAutoRearm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setup := &AutoRearmSetup{}
		err := json.NewDecoder(r.Body).Decode(setup)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := s.ctrl.SetAutoRearm(setup.Enable); err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
	}
}

func (s *ApiServer) handleTrigger() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Handling trigger request")
		if err := s.ctrl.PulseTrigger(); err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
	}
}

func (s *ApiServer) handleClear() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Handling fault clear request")
		if err := s.ctrl.ClearFault(); err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
	}
}

func (s *ApiServer) handleReset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Handling reset request")
		s.ctrl.ResetDriver()
	}
}

func (s *ApiServer) handleFeedback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setup := &FeedbackSetup{}
		err := json.NewDecoder(r.Body).Decode(setup)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.ctrl.SetFeedback(setup.MV)
	}
}
