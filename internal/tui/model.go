// Package tui shows a rendered report in a scrollable full-screen pager.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vburojevic/faultline/internal/output"
)

var highlightStyle = lipgloss.NewStyle().Background(lipgloss.Color("57")).Foreground(lipgloss.Color("230")).Bold(true)

// Model is the pager state
type Model struct {
	title       string
	lines       []string
	shown       int
	viewport    viewport.Model
	textinput   textinput.Model
	width       int
	height      int
	ready       bool
	searching   bool
	searchQuery string
}

// New creates a pager over content
func New(title, content string) Model {
	ti := textinput.New()
	ti.Placeholder = "Filter lines..."
	ti.CharLimit = 100
	ti.Width = 40

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	return Model{title: title, lines: lines, shown: len(lines), textinput: ti}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			switch msg.String() {
			case "esc":
				m.searching = false
				m.textinput.Blur()
				m.searchQuery = ""
				m.updateContent()
			case "enter":
				m.searching = false
				m.textinput.Blur()
				m.searchQuery = m.textinput.Value()
				m.updateContent()
			default:
				m.textinput, cmd = m.textinput.Update(msg)
				cmds = append(cmds, cmd)
			}
			return m, tea.Batch(cmds...)
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "/":
			m.searching = true
			m.textinput.Focus()
			return m, textinput.Blink
		case "esc":
			if m.searchQuery != "" {
				m.searchQuery = ""
				m.textinput.SetValue("")
				m.updateContent()
			}
		case "g", "home":
			m.viewport.GotoTop()
		case "G", "end":
			m.viewport.GotoBottom()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 2
		footerHeight := 2
		viewportHeight := max(m.height-headerHeight-footerHeight, 1)

		if !m.ready {
			m.viewport = viewport.New(m.width, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = viewportHeight
		}
		m.updateContent()
	}

	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return fmt.Sprintf("%s\n%s\n%s", m.renderHeader(), m.viewport.View(), m.renderFooter())
}

func (m *Model) renderHeader() string {
	header := output.Styles.Title.Width(m.width).Render("faultline: " + m.title)

	info := fmt.Sprintf("Lines: %d/%d | %3.f%%", m.shown, len(m.lines), m.viewport.ScrollPercent()*100)
	if m.searchQuery != "" {
		info += fmt.Sprintf(" | Filter: %q", m.searchQuery)
	}
	return header + "\n" + output.Styles.StatusBar.Width(m.width).Render(info)
}

func (m *Model) renderFooter() string {
	if m.searching {
		return m.textinput.View()
	}
	return output.Styles.Help.Width(m.width).Render("q:quit /:filter esc:clear g/G:top/bottom j/k:scroll pgup/pgdown:page")
}

// updateContent applies the line filter and refreshes the viewport
func (m *Model) updateContent() {
	query := strings.ToLower(m.searchQuery)
	var b strings.Builder
	m.shown = 0

	for _, line := range m.lines {
		if query != "" && !strings.Contains(strings.ToLower(line), query) {
			continue
		}
		if m.shown > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(highlight(line, m.searchQuery))
		m.shown++
	}

	if m.ready {
		m.viewport.SetContent(b.String())
		m.viewport.GotoTop()
	}
}

func highlight(s, query string) string {
	if query == "" || s == "" {
		return s
	}
	qs := strings.ToLower(query)
	ls := strings.ToLower(s)
	var b strings.Builder
	for {
		idx := strings.Index(ls, qs)
		if idx < 0 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:idx])
		b.WriteString(highlightStyle.Render(s[idx : idx+len(query)]))
		s = s[idx+len(query):]
		ls = ls[idx+len(query):]
	}
	return b.String()
}

// Run shows content full screen until the user quits
func Run(title, content string, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(New(title, content),
		tea.WithAltScreen(),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	_, err := p.Run()
	return err
}
