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
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	// Rendered help pages only change with the terminal width
	helpCacheExpiration = 30 * time.Minute
	// Clean up expired entries every 5 minutes
	helpCacheCleanup = 5 * time.Minute
)

// NewHelpCache creates a cache for rendered command help pages
func NewHelpCache() *cache.Cache {
	return cache.New(helpCacheExpiration, helpCacheCleanup)
}

// helpCacheKey separates renderings of the same command at different widths
func helpCacheKey(cmd string, width int) string {
	return cmd + "@" + strconv.Itoa(width)
}

func CacheHelpPage(c *cache.Cache, key string, helpTxt string) {
	// Set rather than Add, so a re-render replaces the old page
	c.Set(key, helpTxt, helpCacheExpiration)
}

func GetHelpPage(c *cache.Cache, key string) string {
	val, ok := c.Get(key)
	if !ok {
		return ""
	}
	return val.(string)
}

// GetOrRenderHelpPage returns the cached page for key, rendering and caching
// it on a miss. Failed renders are not cached.
func GetOrRenderHelpPage(c *cache.Cache, key string, render func() (string, error)) (string, error) {
	if page := GetHelpPage(c, key); page != "" {
		return page, nil
	}
	page, err := render()
	if err != nil {
		return "", err
	}
	CacheHelpPage(c, key, page)
	return page, nil
}
