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
	"cmp"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/cybrota/arbor/treemap"
)

// KeyMode decides how command arguments are turned into map keys
type KeyMode int

const (
	IntKeys KeyMode = iota
	StringKeys
)

func (k KeyMode) String() string {
	if k == StringKeys {
		return "string"
	}
	return "int"
}

// ParseKeyMode accepts "int" or "string"
func ParseKeyMode(name string) (KeyMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "int", "integer":
		return IntKeys, nil
	case "string", "str":
		return StringKeys, nil
	}
	return 0, errors.Wrapf(ErrUnknownKeyMode, "%q", name)
}

// Session owns the map the commands operate on
type Session[K cmp.Ordered] struct {
	m        treemap.Map[K, string]
	parseKey func(string) (K, error)
	out      io.Writer
}

// NewSession creates an empty session backed by a map of the given kind
func NewSession[K cmp.Ordered](kind treemap.Kind, parseKey func(string) (K, error), out io.Writer) (*Session[K], error) {
	m, err := treemap.New[K, string](kind)
	if err != nil {
		return nil, err
	}
	return &Session[K]{m: m, parseKey: parseKey, out: out}, nil
}

// IntKey parses a decimal integer key
func IntKey(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(ErrBadKey, "%q is not an integer", s)
	}
	return n, nil
}

// StringKey uses the argument as is
func StringKey(s string) (string, error) {
	return s, nil
}

// Map returns the live map
func (s *Session[K]) Map() treemap.Map[K, string] {
	return s.m
}

// SetOutput redirects command output
func (s *Session[K]) SetOutput(w io.Writer) {
	s.out = w
}

// Switch rebuilds the map under another balancer, keeping its contents
func (s *Session[K]) Switch(kind treemap.Kind) error {
	if kind == s.m.Kind() {
		return nil
	}
	m, err := treemap.Rebuild(s.m, kind)
	if err != nil {
		return errors.Wrapf(err, "switch to %s", kind)
	}
	s.m = m
	return nil
}

func (s *Session[K]) key(arg string) (K, error) {
	return s.parseKey(arg)
}

func (s *Session[K]) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Session[K]) println(args ...any) {
	fmt.Fprintln(s.out, args...)
}
