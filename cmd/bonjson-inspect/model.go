// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kstenerud/go-bonjson/lib/bonjson"
)

var (
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	scalarStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorStyle  = lipgloss.NewStyle().Background(lipgloss.Color("236"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("235"))
	filterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// model is the state for the document browser. It keeps the decoded
// root value and a flattened, filtered view of it rebuilt whenever the
// collapsed set or filter text changes.
type model struct {
	root      bonjson.Value
	sourceName string

	collapsed map[string]bool
	nodes     []node // current flattened, filtered view
	cursor    int
	scroll    int

	width, height int

	filtering bool
	filter    string
}

func newModel(root bonjson.Value, sourceName string) model {
	m := model{
		root:       root,
		sourceName: sourceName,
		collapsed:  make(map[string]bool),
	}
	m.rebuild()
	return m
}

func (m *model) rebuild() {
	nodes := buildTree(m.root, m.collapsed)
	if m.filter == "" {
		m.nodes = nodes
		return
	}
	filtered := make([]node, 0, len(nodes))
	for _, n := range nodes {
		if strings.Contains(strings.ToLower(n.label), strings.ToLower(m.filter)) {
			filtered = append(filtered, n)
		}
	}
	m.nodes = filtered
	if m.cursor >= len(m.nodes) {
		m.cursor = len(m.nodes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.filtering = false
		return m, nil
	case tea.KeyBackspace:
		if len(m.filter) > 0 {
			m.filter = m.filter[:len(m.filter)-1]
		}
		m.rebuild()
		return m, nil
	case tea.KeyRunes:
		m.filter += string(msg.Runes)
		m.rebuild()
		return m, nil
	}
	return m, nil
}

func (m model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg,defaultKeyMap.Quit):
		return m, tea.Quit
	case key.Matches(msg,defaultKeyMap.Up):
		m.moveCursor(-1)
	case key.Matches(msg,defaultKeyMap.Down):
		m.moveCursor(1)
	case key.Matches(msg,defaultKeyMap.PageUp):
		m.moveCursor(-m.pageSize())
	case key.Matches(msg,defaultKeyMap.PageDown):
		m.moveCursor(m.pageSize())
	case key.Matches(msg,defaultKeyMap.Home):
		m.cursor = 0
	case key.Matches(msg,defaultKeyMap.End):
		m.cursor = len(m.nodes) - 1
	case key.Matches(msg,defaultKeyMap.Toggle):
		m.toggleCursor()
	case key.Matches(msg,defaultKeyMap.Filter):
		m.filtering = true
	}
	m.clampCursor()
	m.clampScroll()
	return m, nil
}

func (m *model) moveCursor(delta int) {
	m.cursor += delta
}

func (m *model) clampCursor() {
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor > len(m.nodes)-1 {
		m.cursor = len(m.nodes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *model) pageSize() int {
	size := m.height - 2
	if size < 1 {
		size = 1
	}
	return size
}

func (m *model) clampScroll() {
	visible := m.pageSize()
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	if m.cursor >= m.scroll+visible {
		m.scroll = m.cursor - visible + 1
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

func (m *model) toggleCursor() {
	if m.cursor < 0 || m.cursor >= len(m.nodes) {
		return
	}
	n := m.nodes[m.cursor]
	if !n.container {
		return
	}
	m.collapsed[n.path] = !m.collapsed[n.path]
	m.rebuild()
}

func (m model) View() string {
	if m.height == 0 {
		return ""
	}

	visible := m.pageSize()
	var lines []string
	for i := m.scroll; i < m.scroll+visible && i < len(m.nodes); i++ {
		lines = append(lines, m.renderRow(i))
	}
	for len(lines) < visible {
		lines = append(lines, "")
	}

	bar := renderScrollbar(visible, len(m.nodes), visible, m.scroll)
	barLines := strings.Split(bar, "\n")

	var body strings.Builder
	for i, line := range lines {
		thumb := ""
		if i < len(barLines) {
			thumb = barLines[i]
		}
		fmt.Fprintf(&body, "%s %s\n", line, thumb)
	}

	status := m.renderStatus()
	return body.String() + status
}

func (m model) renderRow(i int) string {
	n := m.nodes[i]
	indent := strings.Repeat("  ", n.depth)

	var text string
	switch {
	case n.container && n.collapsed:
		text = indent + labelStyle.Render(n.label) + " " + dimStyle.Render(containerSummary(n))
	case n.container:
		text = indent + labelStyle.Render(n.label)
	default:
		text = indent + labelStyle.Render(n.label) + " " + scalarStyle.Render(scalarText(n.value))
	}

	if i == m.cursor {
		return cursorStyle.Render(padTo(text, m.width-2))
	}
	return text
}

func padTo(s string, width int) string {
	if width <= 0 {
		return s
	}
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func (m model) renderStatus() string {
	if m.filtering {
		return filterStyle.Render("/" + m.filter)
	}
	help := "j/k move  pgup/pgdn page  g/G top/bottom  enter expand  / filter  q quit"
	return statusStyle.Render(fmt.Sprintf(" %s — %d/%d  %s", m.sourceName, m.cursor+1, len(m.nodes), help))
}
