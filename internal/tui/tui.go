// Package tui is the interactive scene inspector: a filterable object list
// on the left, keyframe and geometry detail for the selected object on the
// right.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/oati/spline-export/internal/export"
	"github.com/oati/spline-export/internal/scene"
)

// entry is one exportable object plus its discovered keyframes.
type entry struct {
	obj    scene.Object
	frames []int
}

type model struct {
	host    scene.Host
	all     []entry
	visible []entry

	filterInput textinput.Model
	cursor      int
	listOffset  int

	detail    viewport.Model
	detailKey string // object name last rendered, to avoid duplicate renders

	width    int
	height   int
	ready    bool
	quitting bool
	copied   string
}

// Run starts the inspector and blocks until it exits. Selecting an object
// with Enter copies its name to the clipboard.
func Run(host scene.Host) error {
	ti := textinput.New()
	ti.Placeholder = "Filter..."
	ti.Focus()
	ti.Prompt = "> "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 128

	start, end := host.AnimationRange()
	var entries []entry
	for _, obj := range export.FilterSplines(host) {
		frames := export.DiscoverKeyframes(obj, start, end, host.TicksPerFrame(), io.Discard)
		entries = append(entries, entry{obj: obj, frames: frames})
	}

	m := model{
		host:        host,
		all:         entries,
		visible:     entries,
		filterInput: ti,
		detail:      viewport.New(0, 0),
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.detail.Width = m.detailWidth() - 2
		m.detail.Height = m.panelHeight() - 2
		m.refreshDetail(true)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			m.clampScroll()
			m.refreshDetail(false)
			return m, nil

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
			m.clampScroll()
			m.refreshDetail(false)
			return m, nil

		case key.Matches(msg, keys.Enter):
			if m.cursor < len(m.visible) {
				name := m.visible[m.cursor].obj.Name()
				if err := clipboard.WriteAll(name); err == nil {
					m.copied = name
				}
			}
			return m, nil

		case key.Matches(msg, keys.DetailUp):
			m.detail.LineUp(m.panelHeight() / 2)
			return m, nil
		case key.Matches(msg, keys.DetailDn):
			m.detail.LineDown(m.panelHeight() / 2)
			return m, nil
		case key.Matches(msg, keys.PageUp):
			m.detail.LineUp(m.panelHeight())
			return m, nil
		case key.Matches(msg, keys.PageDown):
			m.detail.LineDown(m.panelHeight())
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.filterInput.Value()
	m.filterInput, cmd = m.filterInput.Update(msg)
	if m.filterInput.Value() != before {
		m.applyFilter()
		m.refreshDetail(false)
	}
	return m, cmd
}

// applyFilter narrows the visible list to entries whose name or class
// contains the filter text, case-insensitively.
func (m *model) applyFilter() {
	q := strings.ToLower(m.filterInput.Value())
	if q == "" {
		m.visible = m.all
	} else {
		m.visible = nil
		for _, e := range m.all {
			if strings.Contains(strings.ToLower(e.obj.Name()), q) ||
				strings.Contains(strings.ToLower(string(e.obj.Class())), q) {
				m.visible = append(m.visible, e)
			}
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.listOffset = 0
}

func (m *model) clampScroll() {
	h := m.panelHeight() - 2
	if h < 1 {
		h = 1
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+h {
		m.listOffset = m.cursor - h + 1
	}
}

func (m *model) listWidth() int {
	return m.width * 2 / 5
}

func (m *model) detailWidth() int {
	return m.width - m.listWidth()
}

func (m *model) panelHeight() int {
	// input line + status bar
	return m.height - 2
}

func (m model) View() string {
	if !m.ready || m.quitting {
		return ""
	}

	input := m.filterInput.View()

	list := stylePanelBorder.
		Width(m.listWidth() - 2).
		Height(m.panelHeight() - 2).
		Render(m.renderList(m.listWidth()-2, m.panelHeight()-2))

	detail := styleActiveBorder.
		Width(m.detailWidth() - 2).
		Height(m.panelHeight() - 2).
		Render(m.detail.View())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, list, detail)

	status := fmt.Sprintf("%d object(s)  |  enter: copy name  esc: quit", len(m.visible))
	if m.copied != "" {
		status = fmt.Sprintf("copied %q  |  %s", m.copied, status)
	}

	return input + "\n" + panels + "\n" + styleStatusBar.Render(status)
}
