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

package status

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forge-fi/go-probe/pkg/command"
	"github.com/forge-fi/go-probe/pkg/config"
)

// NewCommand creates a cobra command object for querying the probe status
func NewCommand() *cobra.Command {
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show probe status",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			s, err := apiClient.Status()
			if err != nil {
				return err
			}
			fmt.Printf("State: %s (code %d)\n", s.State, s.StateCode)
			fmt.Printf("Trigger output active: %t\n", s.TrigOutActive)
			fmt.Printf("Intensity output active: %t\n", s.IntensityOutActive)
			fmt.Printf("Monitor triggered: %t\n", s.MonitorTriggered)
			if s.FaultCause != "" {
				fmt.Printf("Fault cause: %s\n", s.FaultCause)
				if s.FaultDetail != "" {
					fmt.Printf("Fault detail: %s\n", s.FaultDetail)
				}
			}
			fmt.Printf("Observer voltage: %.3f V (digital %d)\n", s.ObserverVoltage, s.ObserverDigital)
			fmt.Printf("Ready for updates: %t\n", s.ReadyForUpdates)
			return nil
		},
	}
	return cmd
}
