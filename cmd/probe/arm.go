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
	"errors"

	"github.com/spf13/cobra"

	"github.com/forge-fi/go-probe/pkg/command"
	"github.com/forge-fi/go-probe/pkg/config"
)

func NewArmCommand() *cobra.Command {
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:       "arm on|off",
		Short:     "Set/clear the arm enable line",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			switch args[0] {
			case "on":
				return apiClient.Arm(true)
			case "off":
				return apiClient.Arm(false)
			default:
				return errors.New("Wrong arm command. Must be one of on/off")
			}
		},
	}
	return cmd
}
