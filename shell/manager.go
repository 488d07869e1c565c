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
	"bufio"
	"cmp"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"

	"github.com/cybrota/arbor/treemap"
)

// Manager resolves command names to handlers and runs them against a session
type Manager[K cmp.Ordered] struct {
	session  *Session[K]
	handlers []Handler[K]
	byName   map[string]Handler[K]
	log      *logrus.Entry

	// StopOnError makes ExecScript return at the first failing line
	StopOnError bool
}

// ScriptStats summarises an ExecScript run
type ScriptStats struct {
	Executed int
	Failed   int
}

// NewManager creates a manager with all built-in commands registered
func NewManager[K cmp.Ordered](session *Session[K]) *Manager[K] {
	manager := &Manager[K]{
		session: session,
		byName:  make(map[string]Handler[K]),
		log:     logrus.WithField("component", "shell"),
	}

	for _, h := range builtins[K]() {
		manager.Register(h)
	}
	manager.Register(&helpHandler[K]{manager: manager})

	return manager
}

// Register adds a handler; a later handler wins a name or alias clash
func (m *Manager[K]) Register(h Handler[K]) {
	m.handlers = append(m.handlers, h)
	m.byName[strings.ToLower(h.Name())] = h
	for _, alias := range h.Aliases() {
		m.byName[strings.ToLower(alias)] = h
	}
}

// Lookup finds a handler by name or alias
func (m *Manager[K]) Lookup(name string) (Handler[K], bool) {
	h, ok := m.byName[strings.ToLower(name)]
	return h, ok
}

// Handlers lists the registered handlers sorted by name
func (m *Manager[K]) Handlers() []Handler[K] {
	hs := make([]Handler[K], len(m.handlers))
	copy(hs, m.handlers)
	sort.Slice(hs, func(i, j int) bool { return hs[i].Name() < hs[j].Name() })
	return hs
}

// Session returns the session the commands operate on
func (m *Manager[K]) Session() *Session[K] {
	return m.session
}

// Exec parses and runs one command line. Blank lines and comments do nothing.
func (m *Manager[K]) Exec(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	cmd, err := ParseCommand(line)
	if err != nil {
		return err
	}
	if cmd.Name == "" {
		return nil
	}

	h, ok := m.Lookup(cmd.Name)
	if !ok {
		return errors.Wrapf(ErrUnknownCommand, "%q (try help)", cmd.Name)
	}

	m.log.WithFields(logrus.Fields{
		"command": h.Name(),
		"args":    cmd.Args,
		"kind":    m.session.m.Kind(),
	}).Debug("exec")

	if err := h.Run(m.session, cmd); err != nil {
		return errors.Wrapf(err, "%s", h.Name())
	}
	return nil
}

// ExecScript runs every line of r. A failing line is reported on the
// session output; with StopOnError the run ends there and the error is
// returned with its line number.
func (m *Manager[K]) ExecScript(r io.Reader) (ScriptStats, error) {
	var stats ScriptStats

	scanner := bufio.NewScanner(r)
	// Allow long value lines
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		stats.Executed++
		if err := m.Exec(line); err != nil {
			stats.Failed++
			m.log.WithFields(logrus.Fields{
				"line":    lineNo,
				"command": line,
			}).WithError(err).Warn("command failed")
			fmt.Fprintf(m.session.out, "line %d: %v\n", lineNo, err)
			if m.StopOnError {
				return stats, errors.Wrapf(err, "line %d", lineNo)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return stats, errors.Wrap(err, "reading script")
	}
	return stats, nil
}

// helpHandler lists the commands, or describes one
type helpHandler[K cmp.Ordered] struct {
	manager *Manager[K]
}

func (h *helpHandler[K]) Name() string      { return "help" }
func (h *helpHandler[K]) Aliases() []string { return []string{"?"} }
func (h *helpHandler[K]) Usage() string     { return "help [command]" }
func (h *helpHandler[K]) Summary() string {
	return "List the commands, or describe one of them."
}

func (h *helpHandler[K]) Run(s *Session[K], cmd *Command) error {
	if len(cmd.Args) > 1 {
		return errors.Wrapf(ErrArity, "usage: %s", h.Usage())
	}
	if cmd.HasArg(1) {
		target, ok := h.manager.Lookup(cmd.Arg(0))
		if !ok {
			return errors.Wrapf(ErrUnknownCommand, "%q", cmd.Arg(0))
		}
		s.printf("%s\n    %s\n", target.Usage(), target.Summary())
		if aliases := target.Aliases(); len(aliases) > 0 {
			s.printf("    aliases: %s\n", strings.Join(aliases, ", "))
		}
		return nil
	}
	for _, handler := range h.manager.Handlers() {
		s.printf("%-42s %s\n", handler.Usage(), handler.Summary())
	}
	return nil
}

// Console is the key-type independent face of a Manager, used by front-ends
// that pick the key mode at run time
type Console interface {
	Exec(line string) error
	ExecScript(r io.Reader) (ScriptStats, error)
	Load(r io.Reader) (int, error)
	SetStopOnError(stop bool)
	SetOutput(w io.Writer)
	Kind() treemap.Kind
	Switch(kind treemap.Kind) error
	Len() int
	Height() int
	Diagram() string
	Render() string
	Topics() []Topic
}

// Topic is a command's help entry
type Topic struct {
	Name    string
	Aliases []string
	Usage   string
	Summary string
}

// NewConsole creates a session and manager for the given key mode
func NewConsole(mode KeyMode, kind treemap.Kind, out io.Writer) (Console, error) {
	switch mode {
	case IntKeys:
		s, err := NewSession(kind, IntKey, out)
		if err != nil {
			return nil, err
		}
		return NewManager(s), nil
	case StringKeys:
		s, err := NewSession(kind, StringKey, out)
		if err != nil {
			return nil, err
		}
		return NewManager(s), nil
	}
	return nil, errors.Wrapf(ErrUnknownKeyMode, "%d", int(mode))
}

func (m *Manager[K]) SetStopOnError(stop bool) { m.StopOnError = stop }
func (m *Manager[K]) SetOutput(w io.Writer)    { m.session.SetOutput(w) }
func (m *Manager[K]) Kind() treemap.Kind       { return m.session.m.Kind() }
func (m *Manager[K]) Len() int                 { return m.session.m.Len() }
func (m *Manager[K]) Height() int              { return m.session.m.Height() }
func (m *Manager[K]) Render() string           { return m.session.m.String() }

func (m *Manager[K]) Switch(kind treemap.Kind) error {
	if err := m.session.Switch(kind); err != nil {
		return err
	}
	m.log.WithField("kind", kind).Info("switched balancer")
	return nil
}

// Diagram draws the current tree
func (m *Manager[K]) Diagram() string {
	var sb strings.Builder
	m.session.m.Print(&sb)
	return sb.String()
}

// Topics returns the help entries sorted by name
func (m *Manager[K]) Topics() []Topic {
	var topics []Topic
	for _, h := range m.Handlers() {
		topics = append(topics, Topic{
			Name:    h.Name(),
			Aliases: h.Aliases(),
			Usage:   h.Usage(),
			Summary: h.Summary(),
		})
	}
	return topics
}

var _ Console = (*Manager[int])(nil)
