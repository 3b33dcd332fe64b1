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
	"github.com/spf13/cobra"

	"github.com/forge-fi/go-probe/pkg/command"
	"github.com/forge-fi/go-probe/pkg/config"
)

const (
	MVOptionName = "mv"
)

func NewFeedbackCommand() *cobra.Command {
	var mv int16
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Inject a monitor feedback sample",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			return apiClient.Feedback(mv)
		},
	}
	cmd.Flags().Int16Var(&mv, MVOptionName, 0, "Feedback sample in millivolts")
	cmd.MarkFlagRequired(MVOptionName)

	return cmd
}
