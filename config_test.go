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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybrota/arbor/shell"
	"github.com/cybrota/arbor/treemap"
)

func TestLoadConfigFrom(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		Name     string
		Content  *string
		Expected func(c *Config)
	}{
		{
			Name: "Missing File",
			Expected: func(c *Config) {
				assert.Equal(t, defaultConfig, *c)
			},
		},
		{
			Name:    "Partial File Keeps Defaults",
			Content: ptr("map:\n  backend: splay\nbench:\n  seed: 42\n"),
			Expected: func(c *Config) {
				assert.Equal(t, "splay", c.Map.Backend)
				assert.Equal(t, "int", c.Map.KeyMode)
				assert.Equal(t, int64(42), c.Bench.Seed)
				assert.Equal(t, defaultConfig.Bench.Operations, c.Bench.Operations)
				assert.True(t, c.UI.ShowMetadata)
			},
		},
		{
			Name:    "Full File",
			Content: ptr("map:\n  backend: rb\n  key_mode: string\nbench:\n  operations: 10\n  key_space: 5\n  seed: 3\nlog:\n  level: debug\nui:\n  show_metadata: false\n"),
			Expected: func(c *Config) {
				kind, err := c.Kind()
				require.NoError(t, err)
				assert.Equal(t, treemap.RedBlack, kind)
				mode, err := c.KeyMode()
				require.NoError(t, err)
				assert.Equal(t, shell.StringKeys, mode)
				assert.Equal(t, 10, c.Bench.Operations)
				assert.False(t, c.UI.ShowMetadata)
				assert.NoError(t, c.Validate())
			},
		},
		{
			Name:    "Malformed File Falls Back",
			Content: ptr("map: [unclosed\n"),
			Expected: func(c *Config) {
				assert.Equal(t, defaultConfig, *c)
			},
		},
	}

	for i, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			path := filepath.Join(dir, string(rune('a'+i))+".yaml")
			if tc.Content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tc.Content), 0644))
			}
			tc.Expected(loadConfigFrom(path))
		})
	}
}

func TestLoadConfigDoesNotShareDefaults(t *testing.T) {
	c := loadConfigFrom(filepath.Join(t.TempDir(), "none.yaml"))
	c.Map.Backend = "splay"
	assert.Equal(t, "avl", defaultConfig.Map.Backend)
}

func TestConfigValidate(t *testing.T) {
	testCases := []struct {
		Name   string
		Modify func(c *Config)
	}{
		{"Unknown Backend", func(c *Config) { c.Map.Backend = "btree" }},
		{"Unknown Key Mode", func(c *Config) { c.Map.KeyMode = "float" }},
		{"No Operations", func(c *Config) { c.Bench.Operations = 0 }},
		{"Negative Key Space", func(c *Config) { c.Bench.KeySpace = -1 }},
		{"Bad Log Level", func(c *Config) { c.Log.Level = "loud" }},
	}

	assert.NoError(t, defaults().Validate())
	for _, tc := range testCases {
		c := defaults()
		tc.Modify(c)
		assert.Error(t, c.Validate(), tc.Name)
	}
}

func TestWriteConfigFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), configFileName)
	c := defaults()
	c.Map.Backend = "redblack"
	c.Bench.KeySpace = 77
	require.NoError(t, writeConfigFile(path, c))

	got := loadConfigFrom(path)
	assert.Equal(t, *c, *got)
}

func ptr(s string) *string {
	return &s
}
