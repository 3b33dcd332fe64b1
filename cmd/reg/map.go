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

package reg

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forge-fi/go-probe/pkg/command"
	"github.com/forge-fi/go-probe/pkg/config"
)

func NewMapCommand() *cobra.Command {
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Show register map",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			infos, err := apiClient.RegMap()
			if err != nil {
				return err
			}
			for _, info := range infos {
				unit := info.Unit
				if unit == "" {
					unit = "-"
				}
				fmt.Printf("0x%04x  %-24s %2d bit  %-6s %s\n", info.Addr, info.Name, info.Width, unit, info.Desc)
			}
			return nil
		},
	}
	return cmd
}
