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
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybrota/arbor/shell"
	"github.com/cybrota/arbor/treemap"
)

func TestStyleDiagram(t *testing.T) {
	styles := NewStyles()
	rb := "|------+ 20=b BLACK\n       \\------+ 10=a RED\n"
	avl := "       /------+ 30=c h=1\n|------+ 20=b h=2\n"

	testCases := []struct {
		Name     string
		Diagram  string
		Kind     treemap.Kind
		ShowMeta bool
		Expected string
	}{
		{"Red-Black With Colors", rb, treemap.RedBlack, true, "|------+ 20=b BLACK\n       \\------+ 10=a RED"},
		{"Red-Black Without Colors", rb, treemap.RedBlack, false, "|------+ 20=b\n       \\------+ 10=a"},
		{"AVL Without Heights", avl, treemap.AVL, false, "       /------+ 30=c\n|------+ 20=b"},
		{"Splay Has No Metadata", "|------+ 1=x\n", treemap.Splay, false, "|------+ 1=x"},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			got := ansi.Strip(styleDiagram(tc.Diagram, tc.Kind, tc.ShowMeta, styles))
			assert.Equal(t, tc.Expected, got)
		})
	}
}

func TestMatchTopics(t *testing.T) {
	var out bytes.Buffer
	console, err := shell.NewConsole(shell.IntKeys, treemap.AVL, &out)
	require.NoError(t, err)
	topics := console.Topics()

	names := func(ts []shell.Topic) []string {
		var ns []string
		for _, t := range ts {
			ns = append(ns, t.Name)
		}
		return ns
	}

	assert.Len(t, matchTopics(topics, ""), len(topics))
	assert.Equal(t, []string{"pollfirst", "polllast"}, names(matchTopics(topics, "po")))
	assert.Equal(t, []string{"del"}, names(matchTopics(topics, "rm 5")))
	assert.Empty(t, matchTopics(topics, "zzz"))
}

func TestNextKind(t *testing.T) {
	assert.Equal(t, treemap.RedBlack, nextKind(treemap.AVL))
	assert.Equal(t, treemap.Splay, nextKind(treemap.RedBlack))
	assert.Equal(t, treemap.AVL, nextKind(treemap.Splay))
}

func TestModelRunsCommands(t *testing.T) {
	var out bytes.Buffer
	console, err := shell.NewConsole(shell.IntKeys, treemap.AVL, &out)
	require.NoError(t, err)

	var model tea.Model = InitialModel(console, &out, NewHelpCache(), defaults())
	model, _ = model.Update(tea.WindowSizeMsg{Width: 140, Height: 48})

	typeLine := func(line string) {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(line)})
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	}

	typeLine("put 20 b")
	typeLine("put 10 a")
	typeLine("bogus")
	assert.Equal(t, 2, console.Len())

	m := model.(Model)
	output := ansi.Strip(strings.Join(m.history, "\n"))
	assert.Contains(t, output, "› put 20 b\ninserted")
	assert.Contains(t, output, "unknown command")
	assert.Equal(t, "", m.commandInput.Value())

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyF2})
	assert.Equal(t, treemap.RedBlack, console.Kind())
	assert.Equal(t, "{10=a, 20=b}", console.Render())

	view := ansi.Strip(model.View())
	assert.Contains(t, view, "redblack tree")
	assert.Contains(t, view, "10=a RED")
}

func TestModelCommandsListFillsInput(t *testing.T) {
	var out bytes.Buffer
	console, err := shell.NewConsole(shell.StringKeys, treemap.Splay, &out)
	require.NoError(t, err)

	var model tea.Model = InitialModel(console, &out, NewHelpCache(), defaults())
	model, _ = model.Update(tea.WindowSizeMsg{Width: 140, Height: 48})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hei")})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m := model.(Model)
	assert.Equal(t, focusInput, m.focusIndex)
	assert.Equal(t, "height ", m.commandInput.Value())
}
