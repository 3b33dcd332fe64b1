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

package command

import (
	"errors"
	"fmt"

	"github.com/imroc/req"

	"github.com/forge-fi/go-probe/pkg/config"
	"github.com/forge-fi/go-probe/pkg/regmap"
	"github.com/forge-fi/go-probe/pkg/srv/control"
)

type ApiClient struct {
	*config.Config
	ApiPrefix string
}

func NewApiClient(cfg *config.Config) *ApiClient {
	return &ApiClient{
		Config:    cfg,
		ApiPrefix: fmt.Sprintf("http://%s:%d/api", cfg.IP, control.ApiPort),
	}
}

// Status sends request to get the probe status document
func (c *ApiClient) Status() (*control.StatusDoc, error) {
	r, err := req.Get(fmt.Sprintf("%s/status", c.ApiPrefix))
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	status := &control.StatusDoc{}
	err = r.ToJSON(status)
	if err != nil {
		return nil, err
	}
	return status, nil
}

// RegRead sends request to get the value of a probe register
func (c *ApiClient) RegRead(addr string) (string, error) {
	r, err := req.Get(fmt.Sprintf("%s/reg/r/%s", c.ApiPrefix, addr))
	if err != nil {
		return "", err
	}
	if r.Response().StatusCode != 200 {
		return "", errors.New(r.Response().Status)
	}
	reg := &control.RegHex{}
	err = r.ToJSON(reg)
	if err != nil {
		return "", err
	}
	return reg.Value, nil
}

// RegReadAll sends request to get values of all probe registers
func (c *ApiClient) RegReadAll() (map[string]string, error) {
	r, err := req.Get(fmt.Sprintf("%s/reg/r", c.ApiPrefix))
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	var regs []*control.RegHex
	result := make(map[string]string)
	err = r.ToJSON(&regs)
	if err != nil {
		return nil, err
	}
	for _, reg := range regs {
		result[reg.Addr] = reg.Value
	}
	return result, nil
}

// RegWrite sends request to set the value of a probe register
func (c *ApiClient) RegWrite(addr, value string) error {
	reg := &control.RegHex{
		Addr:  addr,
		Value: value,
	}
	r, err := req.Post(fmt.Sprintf("%s/reg/w", c.ApiPrefix), req.BodyJSON(reg))
	if err != nil {
		return err
	}
	if r.Response().StatusCode != 200 {
		return errors.New(r.Response().Status)
	}
	return nil
}

// RegMap sends request to get the register map description
func (c *ApiClient) RegMap() ([]*regmap.RegInfo, error) {
	r, err := req.Get(fmt.Sprintf("%s/regmap", c.ApiPrefix))
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	var infos []*regmap.RegInfo
	err = r.ToJSON(&infos)
	if err != nil {
		return nil, err
	}
	return infos, nil
}

// Arm sends request to set or clear the arm enable line
func (c *ApiClient) Arm(enable bool) error {
	setup := &control.ArmSetup{Enable: enable}
	r, err := req.Post(fmt.Sprintf("%s/arm", c.ApiPrefix), req.BodyJSON(setup))
	if err != nil {
		return err
	}
	if r.Response().StatusCode != 200 {
		return errors.New(r.Response().Status)
	}
	return nil
}

// AutoRearm sends request to set or clear the auto rearm enable flag
func (c *ApiClient) AutoRearm(enable bool) error {
	setup := &control.AutoRearmSetup{Enable: enable}
	r, err := req.Post(fmt.Sprintf("%s/autorearm", c.ApiPrefix), req.BodyJSON(setup))
	if err != nil {
		return err
	}
	if r.Response().StatusCode != 200 {
		return errors.New(r.Response().Status)
	}
	return nil
}

// Trigger sends request to pulse the external trigger line
func (c *ApiClient) Trigger() error {
	r, err := req.Post(fmt.Sprintf("%s/trigger", c.ApiPrefix), req.BodyJSON(struct{}{}))
	if err != nil {
		return err
	}
	if r.Response().StatusCode != 200 {
		return errors.New(r.Response().Status)
	}
	return nil
}

// ClearFault sends request to pulse the fault clear line
func (c *ApiClient) ClearFault() error {
	r, err := req.Post(fmt.Sprintf("%s/clear", c.ApiPrefix), req.BodyJSON(struct{}{}))
	if err != nil {
		return err
	}
	if r.Response().StatusCode != 200 {
		return errors.New(r.Response().Status)
	}
	return nil
}

// Reset sends request to reset the probe driver to power-on state
func (c *ApiClient) Reset() error {
	r, err := req.Post(fmt.Sprintf("%s/reset", c.ApiPrefix), req.BodyJSON(struct{}{}))
	if err != nil {
		return err
	}
	if r.Response().StatusCode != 200 {
		return errors.New(r.Response().Status)
	}
	return nil
}

// Feedback sends request to inject a monitor feedback sample in millivolts
func (c *ApiClient) Feedback(mv int16) error {
	setup := &control.FeedbackSetup{MV: mv}
	r, err := req.Post(fmt.Sprintf("%s/feedback", c.ApiPrefix), req.BodyJSON(setup))
	if err != nil {
		return err
	}
	if r.Response().StatusCode != 200 {
		return errors.New(r.Response().Status)
	}
	return nil
}
