// Package search is the interactive search screen: every keystroke re-filters
// the full collection.
package search

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/bizdesk/pkg/record"
	filter "tableflip.dev/bizdesk/pkg/search"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	idStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Faint(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
	countStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	emptyStyle    = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244"))
	defaultHeight = 10
)

// Model is a bubbletea model over one collection.
type Model struct {
	title   string
	idField string
	fields  []string
	items   []record.Record
	visible []record.Record

	input  textinput.Model
	cursor int
	width  int
	height int

	selected record.Record
	quit     bool
}

// New builds the screen for items, searching fields.
func New(title string, items []record.Record, idField string, fields ...string) Model {
	ti := textinput.New()
	ti.Placeholder = "Search by " + strings.Join(fields, " or ")
	ti.Prompt = "/ "
	ti.Focus()

	m := Model{
		title:   title,
		idField: idField,
		fields:  fields,
		input:   ti,
		width:   80,
		height:  defaultHeight,
	}
	m.SetItems(items)
	return m
}

// SetItems swaps the full collection, keeping the current query.
func (m *Model) SetItems(items []record.Record) {
	m.items = items
	m.refilter()
}

func (m *Model) refilter() {
	m.visible = filter.Filter(m.items, m.input.Value(), m.fields...)
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Query is the current search text.
func (m Model) Query() string { return m.input.Value() }

// Visible is the filtered list currently shown.
func (m Model) Visible() []record.Record { return m.visible }

// Selected is the record picked with enter, nil if none.
func (m Model) Selected() record.Record { return m.selected }

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if h := msg.Height - 4; h > 0 {
			m.height = h
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quit = true
			return m, tea.Quit
		case tea.KeyEnter:
			if len(m.visible) > 0 {
				m.selected = m.visible[m.cursor]
			}
			m.quit = true
			return m, tea.Quit
		case tea.KeyUp, tea.KeyCtrlP:
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case tea.KeyDown, tea.KeyCtrlN:
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refilter()
	}
	return m, cmd
}

func (m Model) View() string {
	if m.quit {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		b.WriteString(emptyStyle.Render("  no matches"))
		b.WriteString("\n")
	}

	start := 0
	if m.cursor >= m.height {
		start = m.cursor - m.height + 1
	}
	for i := start; i < len(m.visible) && i < start+m.height; i++ {
		b.WriteString(m.row(i))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(countStyle.Render(fmt.Sprintf("%d of %d", len(m.visible), len(m.items))))
	return b.String()
}

func (m Model) row(i int) string {
	r := m.visible[i]
	values := make([]string, 0, len(m.fields))
	for _, f := range m.fields {
		if v := r.String(f); v != "" {
			values = append(values, v)
		}
	}
	line := truncate.StringWithTail(strings.Join(values, " · "), uint(maxInt(m.width-20, 10)), "…")

	prefix := "  "
	if i == m.cursor {
		prefix = cursorStyle.Render("➜ ")
		line = cursorStyle.Render(line)
	}
	return prefix + idStyle.Render(fmt.Sprintf("%-14s", r.ID(m.idField))) + " " + line
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
