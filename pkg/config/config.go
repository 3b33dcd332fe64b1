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
	"net"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

type Config struct {
	IP           *net.IP `yaml:"ip"`
	ProbeName    string  `yaml:"probe_name"`
	DBPath       string  `yaml:"db_path"`
	LogLevel     string  `yaml:"log_level"`
	TickRate     string  `yaml:"tick_rate"`
	TickInterval string  `yaml:"tick_interval"`
	UpdatePolicy string  `yaml:"update_policy"`
	filepath     string
}

func (c *Config) Persist(overwrite bool) error {
	if _, err := os.Stat(c.filepath); err == nil && !overwrite {
		return ErrConfigFileExists{Path: c.filepath}
	}

	data, err := yaml.Marshal(&c)
	if err != nil {
		return err
	}

	dir := filepath.Dir(c.filepath)
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}

	err = os.WriteFile(c.filepath, data, 0644)
	if err != nil {
		return err
	}

	return nil
}

// Load reads the config file if it exists. Missing file is not an error,
// the defaults stay in effect.
func (c *Config) Load() error {
	data, err := os.ReadFile(c.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, c)
}

func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ConfigDir, ConfigFile)
}

func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ConfigDir, DBFile)
}

func NewDefaultConfig() *Config {
	ip := net.ParseIP(DefaultIP)
	return &Config{
		IP:           &ip,
		ProbeName:    DefaultProbeName,
		DBPath:       DefaultDBPath(),
		LogLevel:     DefaultLogLevel,
		TickRate:     DefaultTickRate,
		TickInterval: DefaultTickInterval,
		UpdatePolicy: DefaultUpdatePolicy,
		filepath:     DefaultConfigPath(),
	}
}
