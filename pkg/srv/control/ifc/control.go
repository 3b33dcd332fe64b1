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

package ifc

import (
	"github.com/forge-fi/go-probe/pkg/layers"
	"github.com/forge-fi/go-probe/pkg/probe"
)

type ControlServer interface {
	Run() error

	RegRead(addr uint16) (*layers.RegOp, error)
	RegReadAll() ([]*layers.RegOp, error)
	RegWrite(op *layers.RegOp) error

	Status() probe.Status
	State() probe.State
	MonitorTriggered() bool
	ObserverVoltage() float64
	FaultCause() (probe.FaultCause, string)
	ReadyForUpdates() bool

	Arm(enable bool) error
	SetAutoRearm(enable bool) error
	PulseTrigger() error
	ClearFault() error

	ResetDriver()
	SetFeedback(mv int16)
}

type ApiServer interface {
	Run() error
}
