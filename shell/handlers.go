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
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/cybrota/arbor/treemap"
)

// Handler defines the interface for a shell command
type Handler[K cmp.Ordered] interface {
	Name() string
	Aliases() []string
	Usage() string   // one line synopsis, e.g. "put <key> <value>"
	Summary() string // what the command does
	Run(s *Session[K], cmd *Command) error
}

// builtin is a Handler described by a table entry
type builtin[K cmp.Ordered] struct {
	name    string
	aliases []string
	usage   string
	summary string
	minArgs int
	maxArgs int
	run     func(s *Session[K], cmd *Command) error
}

func (b *builtin[K]) Name() string      { return b.name }
func (b *builtin[K]) Aliases() []string { return b.aliases }
func (b *builtin[K]) Usage() string     { return b.usage }
func (b *builtin[K]) Summary() string   { return b.summary }

func (b *builtin[K]) Run(s *Session[K], cmd *Command) error {
	if n := len(cmd.Args); n < b.minArgs || n > b.maxArgs {
		return errors.Wrapf(ErrArity, "usage: %s", b.usage)
	}
	return b.run(s, cmd)
}

// parseFlag reads an optional inclusive/exclusive argument
func parseFlag(cmd *Command, n int, def bool) (bool, error) {
	if !cmd.HasArg(n + 1) {
		return def, nil
	}
	switch strings.ToLower(cmd.Arg(n)) {
	case "incl", "inclusive", "true", "t", "1", "yes":
		return true, nil
	case "excl", "exclusive", "false", "f", "0", "no":
		return false, nil
	}
	return false, errors.Wrapf(ErrBadFlag, "%q, want incl or excl", cmd.Arg(n))
}

func builtins[K cmp.Ordered]() []Handler[K] {
	return []Handler[K]{
		&builtin[K]{
			name:    "put",
			aliases: []string{"set", "add"},
			usage:   "put <key> <value>",
			summary: "Insert key or overwrite its value. Prints the previous value when one was replaced.",
			minArgs: 2,
			maxArgs: 2,
			run: func(s *Session[K], cmd *Command) error {
				k, err := s.key(cmd.Arg(0))
				if err != nil {
					return err
				}
				old, replaced, err := s.m.Put(k, cmd.Arg(1))
				if err != nil {
					return errors.Wrapf(err, "put %v", k)
				}
				if replaced {
					s.printf("replaced %v=%v\n", k, old)
				} else {
					s.println("inserted")
				}
				return nil
			},
		},
		&builtin[K]{
			name:    "get",
			usage:   "get <key>",
			summary: "Print the value stored for key. On a splay tree the key moves to the root.",
			minArgs: 1,
			maxArgs: 1,
			run: func(s *Session[K], cmd *Command) error {
				k, err := s.key(cmd.Arg(0))
				if err != nil {
					return err
				}
				if v, ok := s.m.Get(k); ok {
					s.println(v)
				} else {
					s.println("(absent)")
				}
				return nil
			},
		},
		&builtin[K]{
			name:    "del",
			aliases: []string{"remove", "rm"},
			usage:   "del <key>",
			summary: "Remove key and print its value. Removing a missing key changes nothing.",
			minArgs: 1,
			maxArgs: 1,
			run: func(s *Session[K], cmd *Command) error {
				k, err := s.key(cmd.Arg(0))
				if err != nil {
					return err
				}
				if v, ok := s.m.Remove(k); ok {
					s.printf("removed %v=%v\n", k, v)
				} else {
					s.println("(absent)")
				}
				return nil
			},
		},
		&builtin[K]{
			name:    "has",
			aliases: []string{"contains"},
			usage:   "has <key>",
			summary: "Print true if key is present.",
			minArgs: 1,
			maxArgs: 1,
			run: func(s *Session[K], cmd *Command) error {
				k, err := s.key(cmd.Arg(0))
				if err != nil {
					return err
				}
				s.println(s.m.ContainsKey(k))
				return nil
			},
		},
		&builtin[K]{
			name:    "hasvalue",
			usage:   "hasvalue <value>",
			summary: "Print true if any key maps to value. Visits every entry.",
			minArgs: 1,
			maxArgs: 1,
			run: func(s *Session[K], cmd *Command) error {
				want := cmd.Arg(0)
				s.println(s.m.ContainsValue(func(v string) bool { return v == want }))
				return nil
			},
		},
		&builtin[K]{
			name:    "len",
			aliases: []string{"size"},
			usage:   "len",
			summary: "Print the number of entries.",
			run: func(s *Session[K], cmd *Command) error {
				s.println(s.m.Len())
				return nil
			},
		},
		&builtin[K]{
			name:    "clear",
			usage:   "clear",
			summary: "Remove every entry.",
			run: func(s *Session[K], cmd *Command) error {
				s.m.Clear()
				s.println("cleared")
				return nil
			},
		},
		&builtin[K]{
			name:    "first",
			usage:   "first",
			summary: "Print the lowest key. Fails on an empty map.",
			run: func(s *Session[K], cmd *Command) error {
				k, err := s.m.FirstKey()
				if err != nil {
					return errors.Wrap(err, "first")
				}
				s.println(k)
				return nil
			},
		},
		&builtin[K]{
			name:    "last",
			usage:   "last",
			summary: "Print the highest key. Fails on an empty map.",
			run: func(s *Session[K], cmd *Command) error {
				k, err := s.m.LastKey()
				if err != nil {
					return errors.Wrap(err, "last")
				}
				s.println(k)
				return nil
			},
		},
		navigation[K]("lower", "greatest key strictly less than", func(m treemap.Map[K, string], k K) (K, bool) { return m.LowerKey(k) }),
		navigation[K]("floor", "greatest key less than or equal to", func(m treemap.Map[K, string], k K) (K, bool) { return m.FloorKey(k) }),
		navigation[K]("ceil", "least key greater than or equal to", func(m treemap.Map[K, string], k K) (K, bool) { return m.CeilingKey(k) }),
		navigation[K]("higher", "least key strictly greater than", func(m treemap.Map[K, string], k K) (K, bool) { return m.HigherKey(k) }),
		&builtin[K]{
			name:    "head",
			usage:   "head <key> [incl|excl]",
			summary: "Print the entries below key. Exclusive unless incl is given.",
			minArgs: 1,
			maxArgs: 2,
			run: func(s *Session[K], cmd *Command) error {
				k, err := s.key(cmd.Arg(0))
				if err != nil {
					return err
				}
				incl, err := parseFlag(cmd, 1, false)
				if err != nil {
					return err
				}
				s.println(s.m.HeadMap(k, incl))
				return nil
			},
		},
		&builtin[K]{
			name:    "tail",
			usage:   "tail <key> [incl|excl]",
			summary: "Print the entries above key. Inclusive unless excl is given.",
			minArgs: 1,
			maxArgs: 2,
			run: func(s *Session[K], cmd *Command) error {
				k, err := s.key(cmd.Arg(0))
				if err != nil {
					return err
				}
				incl, err := parseFlag(cmd, 1, true)
				if err != nil {
					return err
				}
				s.println(s.m.TailMap(k, incl))
				return nil
			},
		},
		&builtin[K]{
			name:    "sub",
			aliases: []string{"range"},
			usage:   "sub <from> <to> [incl|excl] [incl|excl]",
			summary: "Print the entries between from and to. From is inclusive and to exclusive unless flags say otherwise.",
			minArgs: 2,
			maxArgs: 4,
			run: func(s *Session[K], cmd *Command) error {
				from, err := s.key(cmd.Arg(0))
				if err != nil {
					return err
				}
				to, err := s.key(cmd.Arg(1))
				if err != nil {
					return err
				}
				fromIncl, err := parseFlag(cmd, 2, true)
				if err != nil {
					return err
				}
				toIncl, err := parseFlag(cmd, 3, false)
				if err != nil {
					return err
				}
				s.println(s.m.SubMap(from, fromIncl, to, toIncl))
				return nil
			},
		},
		poll[K]("pollfirst", "lowest", func(m treemap.Map[K, string]) (treemap.Entry[K, string], bool) { return m.PollFirst() }),
		poll[K]("polllast", "highest", func(m treemap.Map[K, string]) (treemap.Entry[K, string], bool) { return m.PollLast() }),
		&builtin[K]{
			name:    "list",
			aliases: []string{"ls"},
			usage:   "list",
			summary: "Print every entry in ascending key order, one per line.",
			run: func(s *Session[K], cmd *Command) error {
				it := s.m.Iterator()
				for {
					e, err := it.Step()
					if errors.Is(err, treemap.ErrEndOfSequence) {
						return nil
					}
					if err != nil {
						return err
					}
					s.println(e)
				}
			},
		},
		&builtin[K]{
			name:    "rlist",
			usage:   "rlist",
			summary: "Print every entry in descending key order, one per line.",
			run: func(s *Session[K], cmd *Command) error {
				for k, v := range s.m.Backward() {
					s.printf("%v=%v\n", k, v)
				}
				return nil
			},
		},
		&builtin[K]{
			name:    "show",
			usage:   "show",
			summary: "Print the map as {key=value, ...}.",
			run: func(s *Session[K], cmd *Command) error {
				s.println(s.m)
				return nil
			},
		},
		&builtin[K]{
			name:    "print",
			aliases: []string{"tree"},
			usage:   "print",
			summary: "Draw the tree sideways with the right subtree on top. AVL nodes show their height, red-black nodes their color.",
			run: func(s *Session[K], cmd *Command) error {
				if s.m.Print(s.out) == 0 {
					s.println("(empty)")
				}
				return nil
			},
		},
		&builtin[K]{
			name:    "check",
			usage:   "check",
			summary: "Verify ordering, size and the balance rules of the current back-end.",
			run: func(s *Session[K], cmd *Command) error {
				if err := s.m.Check(); err != nil {
					return err
				}
				s.println("ok")
				return nil
			},
		},
		&builtin[K]{
			name:    "height",
			usage:   "height",
			summary: "Print the number of nodes on the longest root to leaf path.",
			run: func(s *Session[K], cmd *Command) error {
				s.println(s.m.Height())
				return nil
			},
		},
		&builtin[K]{
			name:    "switch",
			aliases: []string{"use"},
			usage:   "switch <avl|redblack|splay>",
			summary: "Rebuild the map under another balancer. Entries are kept.",
			minArgs: 1,
			maxArgs: 1,
			run: func(s *Session[K], cmd *Command) error {
				kind, err := treemap.ParseKind(cmd.Arg(0))
				if err != nil {
					return err
				}
				if err := s.Switch(kind); err != nil {
					return err
				}
				s.printf("using %s\n", kind)
				return nil
			},
		},
		&builtin[K]{
			name:    "kind",
			usage:   "kind",
			summary: "Print the current balancer.",
			run: func(s *Session[K], cmd *Command) error {
				s.println(s.m.Kind())
				return nil
			},
		},
	}
}

func navigation[K cmp.Ordered](name, what string, query func(treemap.Map[K, string], K) (K, bool)) Handler[K] {
	return &builtin[K]{
		name:    name,
		usage:   name + " <key>",
		summary: "Print the " + what + " key.",
		minArgs: 1,
		maxArgs: 1,
		run: func(s *Session[K], cmd *Command) error {
			k, err := s.key(cmd.Arg(0))
			if err != nil {
				return err
			}
			if found, ok := query(s.m, k); ok {
				s.println(found)
			} else {
				s.println("(none)")
			}
			return nil
		},
	}
}

func poll[K cmp.Ordered](name, which string, take func(treemap.Map[K, string]) (treemap.Entry[K, string], bool)) Handler[K] {
	return &builtin[K]{
		name:    name,
		usage:   name,
		summary: "Remove the " + which + " entry and print it.",
		run: func(s *Session[K], cmd *Command) error {
			if e, ok := take(s.m); ok {
				s.println(e)
			} else {
				s.println("(empty)")
			}
			return nil
		},
	}
}
