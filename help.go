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
	"runtime"
	"strings"

	markdown "github.com/MichaelMure/go-term-markdown"

	"github.com/cybrota/arbor/shell"
)

func getHelpMessage() string {
	message := fmt.Sprintf(`

 **Arbor %s**

Explore ordered maps backed by self-balancing binary search trees. Type commands,
watch the tree rebalance, and compare AVL, left-leaning red-black and splay trees
side by side.

Built with Go %s

# 1. Features
* One ordered map API over three balancers (AVL, red-black, splay)
* Navigation queries: lower, floor, ceiling, higher, head, tail and sub ranges
* Live ASCII view of the tree with AVL heights and red-black colors
* Scripted sessions and bulk dataset loading
* Randomized benchmarks and invariant fuzzing across balancers

# 2. Commands
* arbor run: interactive visualizer (default)
* arbor exec <script> [--load dataset]: run commands from a file
* arbor bench [--chart]: compare balancers on a random workload
* arbor fuzz: random inserts and deletes with invariant checks after each step
* arbor settings: show or create ~/.arbor.yaml

# 3. Keys in the visualizer
* <enter>: run the typed command
* <f2>: rebuild the map under the next balancer
* <ctrl> + y: copy the map to the clipboard
* <tab>: switch focus between tree and output
* <esc> or <ctrl> + c: quit

# Please be aware
* Copy to clipboard feature on Linux or Unix requires 'xclip' or 'xsel' command to be installed

# License
Licensed under the Apache License, Version 2.0
Copyright © 2025 Naren Yellavula

`, version, runtime.Version())
	result := markdown.Render(message, 80, 3)
	return string(result)
}

// topicMarkdown describes one shell command as markdown
func topicMarkdown(t shell.Topic) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", t.Name)
	fmt.Fprintf(&sb, "`%s`\n\n", t.Usage)
	fmt.Fprintf(&sb, "%s\n", t.Summary)
	if len(t.Aliases) > 0 {
		fmt.Fprintf(&sb, "\n**Aliases:** %s\n", strings.Join(t.Aliases, ", "))
	}
	return sb.String()
}

// commandsMarkdown lists every shell command as a markdown table
func commandsMarkdown(topics []shell.Topic) string {
	var sb strings.Builder
	sb.WriteString("# Commands\n\n| usage | description |\n|---|---|\n")
	for _, t := range topics {
		fmt.Fprintf(&sb, "| `%s` | %s |\n", t.Usage, t.Summary)
	}
	return sb.String()
}
