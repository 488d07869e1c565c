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

package shell

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mattn/go-shellwords"
)

// Command represents a parsed command line
type Command struct {
	Parts []string
	Name  string
	Args  []string
	Line  string
}

// NewCommand creates a new Command from command parts
func NewCommand(parts []string) *Command {
	if len(parts) == 0 {
		return &Command{Parts: parts}
	}

	return &Command{
		Parts: parts,
		Name:  strings.ToLower(parts[0]),
		Args:  parts[1:],
		Line:  strings.Join(parts, " "),
	}
}

// ParseCommand splits a line the way a shell would, so values may be quoted
func ParseCommand(line string) (*Command, error) {
	parts, err := shellwords.Parse(line)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse command %q", line)
	}
	return NewCommand(parts), nil
}

// HasArg checks if command has at least n arguments
func (c *Command) HasArg(n int) bool {
	return len(c.Args) >= n
}

// Arg returns the nth argument (0-indexed), empty if absent
func (c *Command) Arg(n int) string {
	if n >= len(c.Args) {
		return ""
	}
	return c.Args[n]
}
