// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/cybrota/arbor/shell"
	"github.com/cybrota/arbor/treemap"
)

const configFileName = ".arbor.yaml"

type MapConfig struct {
	Backend string `yaml:"backend"`
	KeyMode string `yaml:"key_mode"`
}

type BenchConfig struct {
	Operations int   `yaml:"operations"`
	KeySpace   int   `yaml:"key_space"`
	Seed       int64 `yaml:"seed"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type UIConfig struct {
	ShowMetadata bool `yaml:"show_metadata"`
}

type Config struct {
	Map   MapConfig   `yaml:"map"`
	Bench BenchConfig `yaml:"bench"`
	Log   LogConfig   `yaml:"log"`
	UI    UIConfig    `yaml:"ui"`
}

var defaultConfig = Config{
	Map: MapConfig{
		Backend: "avl",
		KeyMode: "int",
	},
	Bench: BenchConfig{
		Operations: 200000,
		KeySpace:   50000,
		Seed:       1,
	},
	Log: LogConfig{
		Level: "warning",
	},
	UI: UIConfig{
		ShowMetadata: true,
	},
}

// LoadConfig reads ~/.arbor.yaml. Any failure falls back to the defaults.
func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return defaults(), nil
	}
	return loadConfigFrom(configPath), nil
}

// loadConfigFrom parses path over a copy of the defaults, so a file that
// sets only some fields keeps the rest
func loadConfigFrom(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return defaults()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return defaults()
	}

	config := defaults()
	if err := yaml.Unmarshal(data, config); err != nil {
		logrus.WithField("path", configPath).WithError(err).Warn("ignoring malformed config")
		return defaults()
	}
	return config
}

func defaults() *Config {
	c := defaultConfig
	return &c
}

// Kind is the configured balancer
func (c *Config) Kind() (treemap.Kind, error) {
	return treemap.ParseKind(c.Map.Backend)
}

// KeyMode is the configured key type of the shell
func (c *Config) KeyMode() (shell.KeyMode, error) {
	return shell.ParseKeyMode(c.Map.KeyMode)
}

// Validate reports the first setting that cannot be used
func (c *Config) Validate() error {
	if _, err := c.Kind(); err != nil {
		return errors.Wrap(err, "map.backend")
	}
	if _, err := c.KeyMode(); err != nil {
		return errors.Wrap(err, "map.key_mode")
	}
	if c.Bench.Operations <= 0 {
		return errors.Newf("bench.operations must be positive, got %d", c.Bench.Operations)
	}
	if c.Bench.KeySpace <= 0 {
		return errors.Newf("bench.key_space must be positive, got %d", c.Bench.KeySpace)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log.level")
	}
	return nil
}

func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, configFileName), nil
}

func writeConfigFile(configPath string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}
	return nil
}

func createDefaultConfigFile() error {
	configPath, err := getConfigPath()
	if err != nil {
		return errors.Wrap(err, "failed to get config path")
	}
	return writeConfigFile(configPath, &defaultConfig)
}

func displaySettings() {
	configPath, err := getConfigPath()
	if err != nil {
		fmt.Printf("❌ Failed to get config path: %v\n", err)
		return
	}

	config, _ := LoadConfig()

	configExists := true
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configExists = false
		fmt.Printf("📝 Configuration file not found. Creating default configuration...\n\n")

		if err := createDefaultConfigFile(); err != nil {
			fmt.Printf("❌ Failed to create default config file: %v\n", err)
			return
		}
		fmt.Printf("✅ Created default configuration at: %s\n\n", configPath)
	}

	fmt.Printf("🔧 Arbor Configuration Settings\n")
	fmt.Printf("═══════════════════════════════\n\n")

	if configExists {
		fmt.Printf("📍 Config file: %s\n", configPath)
	} else {
		fmt.Printf("📍 Config file: %s (newly created)\n", configPath)
	}

	fmt.Printf("📊 Current settings:\n\n")

	fmt.Printf("🌳 %sMap:%s\n", Green, Reset)
	fmt.Printf("  • %sbackend%s: %s\n", Green, Reset, config.Map.Backend)
	fmt.Printf("    Balancer used by run and exec (avl, redblack, splay)\n")
	fmt.Printf("  • %skey_mode%s: %s\n", Green, Reset, config.Map.KeyMode)
	fmt.Printf("    Key type typed at the prompt (int, string)\n\n")

	fmt.Printf("⏱  %sBench:%s\n", Green, Reset)
	fmt.Printf("  • %soperations%s: %d\n", Green, Reset, config.Bench.Operations)
	fmt.Printf("  • %skey_space%s: %d\n", Green, Reset, config.Bench.KeySpace)
	fmt.Printf("  • %sseed%s: %d\n\n", Green, Reset, config.Bench.Seed)

	fmt.Printf("📜 %sLog:%s\n", Green, Reset)
	fmt.Printf("  • %slevel%s: %s\n\n", Green, Reset, config.Log.Level)

	fmt.Printf("🖥  %sUI:%s\n", Green, Reset)
	fmt.Printf("  • %sshow_metadata%s: %t\n", Green, Reset, config.UI.ShowMetadata)
	fmt.Printf("    Show AVL heights and red-black colors in the tree view\n\n")

	if err := config.Validate(); err != nil {
		fmt.Printf("%s⚠️  %v%s\n", Warning, err, Reset)
	}
}
