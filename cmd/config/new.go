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

package config

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/forge-fi/go-probe/pkg/config"
)

const (
	IPOptionName           = "ip"
	ProbeNameOptionName    = "probe-name"
	TickRateOptionName     = "tick-rate"
	TickIntervalOptionName = "tick-interval"
	UpdatePolicyOptionName = "update-policy"
	OverwriteOptionName    = "overwrite"
)

func NewNewCommand() *cobra.Command {
	var ip, probeName, tickRate, tickInterval, updatePolicy string
	var overwrite bool
	cfg := config.NewDefaultConfig()
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create configuration file with default values",
		RunE: func(cmd *cobra.Command, args []string) error {
			if ip != "" {
				parsedIP := net.ParseIP(ip)
				cfg.IP = &parsedIP
			}
			if probeName != "" {
				cfg.ProbeName = probeName
			}
			if tickRate != "" {
				cfg.TickRate = tickRate
			}
			if tickInterval != "" {
				cfg.TickInterval = tickInterval
			}
			if updatePolicy != "" {
				cfg.UpdatePolicy = updatePolicy
			}
			return cfg.Persist(overwrite)
		},
	}
	cmd.Flags().StringVar(&ip, IPOptionName, "", fmt.Sprintf("IP to bind. E.g. %s", config.DefaultIP))
	cmd.Flags().StringVar(&probeName, ProbeNameOptionName, "", fmt.Sprintf("Probe name. E.g. %s", config.DefaultProbeName))
	cmd.Flags().StringVar(&tickRate, TickRateOptionName, "", fmt.Sprintf("Probe tick rate. E.g. %s", config.DefaultTickRate))
	cmd.Flags().StringVar(&tickInterval, TickIntervalOptionName, "", fmt.Sprintf("Wall clock interval between ticks. E.g. %s", config.DefaultTickInterval))
	cmd.Flags().StringVar(&updatePolicy, UpdatePolicyOptionName, "", "Parameter update policy. Must be one of: live, snapshot")
	cmd.Flags().BoolVar(&overwrite, OverwriteOptionName, false, "Overwrite existing configuration file")

	return cmd
}
