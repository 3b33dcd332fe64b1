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

package regmap

import (
	_ "embed"

	"sigs.k8s.io/yaml"
)

//go:embed regmap.yaml
var regmapYAML []byte

// RegInfo documents one control register for the API and the CLI.
type RegInfo struct {
	Addr  uint16 `json:"addr"`
	Name  string `json:"name"`
	Width int    `json:"width"`
	Unit  string `json:"unit,omitempty"`
	Desc  string `json:"desc"`
}

// Describe returns the register map description shipped with the binary.
func Describe() ([]RegInfo, error) {
	var infos []RegInfo
	if err := yaml.Unmarshal(regmapYAML, &infos); err != nil {
		return nil, err
	}
	return infos, nil
}
