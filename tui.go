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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/cybrota/arbor/shell"
	"github.com/cybrota/arbor/treemap"
)

// maxOutputLines bounds the output pane history
const maxOutputLines = 500

// panes in focus order
const (
	focusInput = iota
	focusCommands
	focusTree
	focusOutput
	focusCount
)

// Model represents the Bubble Tea application state
type Model struct {
	ready bool

	commandInput textinput.Model
	commandsList list.Model
	helpViewport viewport.Model
	treeViewport viewport.Model
	outViewport  viewport.Model

	// Data
	console   shell.Console
	out       *bytes.Buffer
	helpCache *cache.Cache
	config    *Config
	topics    []shell.Topic

	// State
	focusIndex int
	matches    []shell.Topic
	lastQuery  string
	history    []string

	// Styling
	styles          *Styles
	glamourRenderer *glamour.TermRenderer

	// Dimensions
	width  int
	height int
}

// Styles holds all the styling for the application
type Styles struct {
	BorderFocused  lipgloss.Style
	BorderBlurred  lipgloss.Style
	Title          lipgloss.Style
	HelpKey        lipgloss.Style
	HelpDesc       lipgloss.Style
	Branch         lipgloss.Style
	RedNode        lipgloss.Style
	BlackNode      lipgloss.Style
	Prompt         lipgloss.Style
	SuccessMessage lipgloss.Style
	ErrorMessage   lipgloss.Style
}

// NewStyles creates the default styles
func NewStyles() *Styles {
	return &Styles{
		BorderFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Bold(true),
		BorderBlurred: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")),
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Padding(0, 1).
			Bold(true),
		HelpKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")),
		Branch: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		RedNode: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		BlackNode: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		Prompt: lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true),
		SuccessMessage: lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true),
		ErrorMessage: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
	}
}

// commandItem represents a shell command in the commands list
type commandItem struct {
	topic shell.Topic
}

func (i commandItem) FilterValue() string { return i.topic.Name }
func (i commandItem) Title() string       { return i.topic.Usage }
func (i commandItem) Description() string { return i.topic.Summary }

// InitialModel creates the initial model around a console whose output is
// captured in out
func InitialModel(console shell.Console, out *bytes.Buffer, hc *cache.Cache, config *Config) Model {
	ti := textinput.New()
	ti.Placeholder = "Type a command, e.g. put 10 ten"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	commandsList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	commandsList.SetShowTitle(false)
	commandsList.SetShowHelp(false)
	commandsList.SetShowStatusBar(false)
	commandsList.SetFilteringEnabled(false)

	helpViewport := viewport.New(0, 0)
	treeViewport := viewport.New(0, 0)
	outViewport := viewport.New(0, 0)

	glamourRenderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(60),
	)

	model := Model{
		commandInput:    ti,
		commandsList:    commandsList,
		helpViewport:    helpViewport,
		treeViewport:    treeViewport,
		outViewport:     outViewport,
		console:         console,
		out:             out,
		helpCache:       hc,
		config:          config,
		topics:          console.Topics(),
		focusIndex:      focusInput,
		styles:          NewStyles(),
		glamourRenderer: glamourRenderer,
	}
	model.updateMatches("")
	model.refreshTree()
	model.appendOutput(fmt.Sprintf("arbor %s, %s map with %s keys. Type help for commands.",
		version, console.Kind(), config.Map.KeyMode))
	return model
}

// Init is called when the program starts
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles all the I/O
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "f2":
			m.cycleKind()
			return m, nil
		case "ctrl+y":
			m.copyMap()
			return m, nil
		case "ctrl+l":
			m.history = nil
			m.outViewport.SetContent("")
			return m, nil
		case "tab":
			m.setFocus((m.focusIndex + 1) % focusCount)
			return m, nil
		case "shift+tab":
			m.setFocus((m.focusIndex + focusCount - 1) % focusCount)
			return m, nil
		}
		return m.updateFocused(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.refreshTree()
		m.ready = true
	}

	return m, nil
}

func (m *Model) setFocus(index int) {
	m.focusIndex = index
	if index == focusInput {
		m.commandInput.Focus()
	} else {
		m.commandInput.Blur()
	}
}

// updateFocused routes a key to the pane that has focus
func (m Model) updateFocused(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.focusIndex {
	case focusInput:
		if msg.String() == "enter" {
			m.execInput()
			return m, nil
		}
		m.commandInput, cmd = m.commandInput.Update(msg)
		if query := m.commandInput.Value(); query != m.lastQuery {
			m.updateMatches(query)
			m.lastQuery = query
		}
		return m, cmd

	case focusCommands:
		switch msg.String() {
		case "up", "k":
			m.commandsList.CursorUp()
			m.updateHelpForSelection()
		case "down", "j":
			m.commandsList.CursorDown()
			m.updateHelpForSelection()
		case "enter":
			// start typing the selected command
			if i := m.commandsList.Index(); i >= 0 && i < len(m.matches) {
				m.commandInput.SetValue(m.matches[i].Name + " ")
				m.commandInput.CursorEnd()
				m.setFocus(focusInput)
			}
		}
		return m, nil
	}

	vp := &m.treeViewport
	if m.focusIndex == focusOutput {
		vp = &m.outViewport
	}
	switch msg.String() {
	case "up", "k":
		vp.LineUp(1)
	case "down", "j":
		vp.LineDown(1)
	case "pgup":
		vp.LineUp(vp.Height)
	case "pgdown":
		vp.LineDown(vp.Height)
	case "home":
		vp.GotoTop()
	case "end":
		vp.GotoBottom()
	}
	return m, nil
}

// execInput runs the typed line through the console and shows its output
func (m *Model) execInput() {
	line := strings.TrimSpace(m.commandInput.Value())
	if line == "" {
		return
	}
	m.out.Reset()
	err := m.console.Exec(line)

	entry := m.styles.Prompt.Render("› ") + line
	if text := strings.TrimRight(m.out.String(), "\n"); text != "" {
		entry += "\n" + text
	}
	if err != nil {
		entry += "\n" + m.styles.ErrorMessage.Render("✗ "+err.Error())
		logrus.WithField("command", line).WithError(err).Debug("command failed")
	}
	m.appendOutput(entry)

	m.commandInput.SetValue("")
	m.updateMatches("")
	m.lastQuery = ""
	m.refreshTree()
}

func (m *Model) appendOutput(entry string) {
	m.history = append(m.history, strings.Split(entry, "\n")...)
	if len(m.history) > maxOutputLines {
		m.history = m.history[len(m.history)-maxOutputLines:]
	}
	m.outViewport.SetContent(strings.Join(m.history, "\n"))
	m.outViewport.GotoBottom()
}

// cycleKind rebuilds the map under the next balancer
func (m *Model) cycleKind() {
	next := nextKind(m.console.Kind())
	if err := m.console.Switch(next); err != nil {
		m.appendOutput(m.styles.ErrorMessage.Render("✗ " + err.Error()))
		return
	}
	m.appendOutput(m.styles.SuccessMessage.Render("✓ switched to " + next.String()))
	m.refreshTree()
}

// nextKind cycles avl, redblack, splay
func nextKind(kind treemap.Kind) treemap.Kind {
	kinds := treemap.Kinds()
	for i, k := range kinds {
		if k == kind {
			return kinds[(i+1)%len(kinds)]
		}
	}
	return kinds[0]
}

func (m *Model) copyMap() {
	text := m.console.Render()
	if err := copyToClipboard(text); err != nil {
		m.appendOutput(m.styles.ErrorMessage.Render("✗ copy failed: " + err.Error()))
		return
	}
	m.appendOutput(m.styles.SuccessMessage.Render(fmt.Sprintf("📋 copied %d entries", m.console.Len())))
}

// copyToClipboard copies text to clipboard
func copyToClipboard(text string) error {
	return clipboard.WriteAll(text)
}

// refreshTree redraws the tree pane from the current map
func (m *Model) refreshTree() {
	diagram := m.console.Diagram()
	if diagram == "" {
		m.treeViewport.SetContent(m.styles.HelpDesc.Render("(empty map) try: put 10 ten"))
		return
	}
	m.treeViewport.SetContent(styleDiagram(diagram, m.console.Kind(), m.config.UI.ShowMetadata, m.styles))
}

// styleDiagram colors the node labels of a tree diagram, red-black nodes by
// their color, and drops the balance metadata when showMeta is off
func styleDiagram(diagram string, kind treemap.Kind, showMeta bool, styles *Styles) string {
	lines := strings.Split(strings.TrimRight(diagram, "\n"), "\n")
	for i, line := range lines {
		cut := strings.Index(line, "+ ")
		if cut < 0 {
			continue
		}
		branch, label := line[:cut+2], line[cut+2:]

		nodeStyle := styles.BlackNode
		meta := ""
		switch kind {
		case treemap.RedBlack:
			if strings.HasSuffix(label, " RED") {
				nodeStyle = styles.RedNode
				meta = " RED"
			} else if strings.HasSuffix(label, " BLACK") {
				meta = " BLACK"
			}
		case treemap.AVL:
			if j := strings.LastIndex(label, " h="); j >= 0 {
				meta = label[j:]
			}
		}
		if meta != "" {
			label = strings.TrimSuffix(label, meta)
		}
		rendered := styles.Branch.Render(branch) + nodeStyle.Render(label)
		if showMeta && meta != "" {
			rendered += styles.HelpDesc.Render(meta)
		}
		lines[i] = rendered
	}
	return strings.Join(lines, "\n")
}

// updateMatches lists the commands whose name starts with the first word
// typed, or all of them for an empty query
func (m *Model) updateMatches(query string) {
	m.matches = matchTopics(m.topics, query)

	items := make([]list.Item, len(m.matches))
	for i, t := range m.matches {
		items[i] = commandItem{topic: t}
	}
	m.commandsList.SetItems(items)
	m.commandsList.Select(0)
	m.updateHelpForSelection()
}

func matchTopics(topics []shell.Topic, query string) []shell.Topic {
	fields := strings.Fields(strings.ToLower(query))
	if len(fields) == 0 {
		return topics
	}
	word := fields[0]

	var matches []shell.Topic
	for _, t := range topics {
		if strings.HasPrefix(t.Name, word) {
			matches = append(matches, t)
			continue
		}
		for _, alias := range t.Aliases {
			if strings.HasPrefix(alias, word) {
				matches = append(matches, t)
				break
			}
		}
	}
	return matches
}

func (m *Model) updateHelpForSelection() {
	i := m.commandsList.Index()
	if i < 0 || i >= len(m.matches) {
		m.updateHelp(commandsMarkdown(m.topics), "commands")
		return
	}
	m.updateHelp(topicMarkdown(m.matches[i]), m.matches[i].Name)
}

// updateHelp renders markdown through glamour, caching the page per command
// and pane width
func (m *Model) updateHelp(markdown, name string) {
	key := helpCacheKey(name, m.helpViewport.Width)
	page, err := GetOrRenderHelpPage(m.helpCache, key, func() (string, error) {
		if m.glamourRenderer == nil {
			return markdown, nil
		}
		return m.glamourRenderer.Render(markdown)
	})
	if err != nil {
		page = markdown
	}
	m.helpViewport.SetContent(page)
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}
	if m.width < 40 || m.height < 16 {
		return "Terminal too small. Please resize your terminal."
	}

	l := m.layout()

	m.commandInput.Width = l.leftWidth - 4
	inputBox := m.boxStyle(focusInput).
		Width(l.leftWidth).
		Height(l.inputHeight).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.Title.Width(l.leftWidth-4).Render(m.title(focusInput, "⌨  Command")),
			m.commandInput.View(),
		))

	commandsBox := m.boxStyle(focusCommands).
		Width(l.leftWidth).
		Height(l.listHeight).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.Title.Width(l.leftWidth-4).Render(m.title(focusCommands, "📋 Commands")),
			m.commandsList.View(),
		))

	helpBox := m.styles.BorderBlurred.
		Width(l.leftWidth).
		Height(l.helpHeight).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.Title.Width(l.leftWidth-4).Render("📖 Help"),
			m.helpViewport.View(),
		))

	treeTitle := fmt.Sprintf("🌳 %s tree · %d entries · height %d", m.console.Kind(), m.console.Len(), m.console.Height())
	treeBox := m.boxStyle(focusTree).
		Width(l.rightWidth).
		Height(l.treeHeight).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.Title.Width(l.rightWidth-4).Render(m.title(focusTree, treeTitle)),
			m.treeViewport.View(),
		))

	outBox := m.boxStyle(focusOutput).
		Width(l.rightWidth).
		Height(l.outHeight).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.Title.Width(l.rightWidth-4).Render(m.title(focusOutput, "💬 Output")),
			m.outViewport.View(),
		))

	leftColumn := lipgloss.JoinVertical(lipgloss.Left, inputBox, commandsBox, helpBox)
	rightColumn := lipgloss.JoinVertical(lipgloss.Left, treeBox, outBox)

	panes := lipgloss.JoinHorizontal(lipgloss.Top, leftColumn, rightColumn)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		panes,
		m.renderKeyHelp(),
	)
}

func (m Model) boxStyle(pane int) lipgloss.Style {
	if m.focusIndex == pane {
		return m.styles.BorderFocused
	}
	return m.styles.BorderBlurred
}

func (m Model) title(pane int, text string) string {
	if m.focusIndex == pane {
		return " " + text + " (Active) "
	}
	return " " + text + " "
}

type paneLayout struct {
	leftWidth, rightWidth               int
	inputHeight, listHeight, helpHeight int
	treeHeight, outHeight               int
}

func (m Model) layout() paneLayout {
	var l paneLayout
	body := m.height - 6 // key help line and borders
	l.leftWidth = (m.width * 4 / 10) - 1
	l.rightWidth = m.width - l.leftWidth - 3

	l.inputHeight = 3
	l.listHeight = (body - l.inputHeight) / 2
	l.helpHeight = body - l.inputHeight - l.listHeight - 2

	l.treeHeight = body * 2 / 3
	l.outHeight = body - l.treeHeight
	return l
}

func (m *Model) updateLayout() {
	l := m.layout()
	m.commandInput.Width = l.leftWidth - 4
	m.commandsList.SetSize(l.leftWidth-2, l.listHeight-2)
	m.helpViewport.Width = l.leftWidth - 2
	m.helpViewport.Height = l.helpHeight - 1
	m.treeViewport.Width = l.rightWidth - 2
	m.treeViewport.Height = l.treeHeight - 1
	m.outViewport.Width = l.rightWidth - 2
	m.outViewport.Height = l.outHeight - 1
	m.updateHelpForSelection()
}

func (m Model) renderKeyHelp() string {
	keys := []string{"enter", "tab", "f2", "ctrl+y", "ctrl+l", "esc"}
	descs := []string{"run command", "switch focus", "next balancer", "copy map", "clear output", "quit"}

	var helpEntries []string
	for i, key := range keys {
		helpEntries = append(helpEntries,
			fmt.Sprintf("%s %s",
				m.styles.HelpKey.Render(key),
				m.styles.HelpDesc.Render(descs[i])))
	}

	return lipgloss.NewStyle().
		Padding(1, 0, 0, 2).
		Render(strings.Join(helpEntries, " • "))
}

// runBubbleTeaApp starts the Bubble Tea application
func runBubbleTeaApp(console shell.Console, out *bytes.Buffer, hc *cache.Cache, config *Config) error {
	InitializeColors()

	// log lines would tear the alternate screen
	logrus.SetOutput(io.Discard)
	defer logrus.SetOutput(os.Stderr)

	model := InitialModel(console, out, hc, config)

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := program.Run()
	return err
}
