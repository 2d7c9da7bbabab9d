package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// LabelListModel - Interactive label selection
// =============================================================================

// LabelListModel is the bubbletea model for picking a vertex label to
// explore.
type LabelListModel struct {
	Labels   []labelCount
	Cursor   int
	Offset   int
	Height   int
	Selected string
}

// NewLabelListModel creates a label picker over counts.
func NewLabelListModel(counts []labelCount) LabelListModel {
	return LabelListModel{Labels: counts, Height: 15}
}

func (m LabelListModel) Init() tea.Cmd {
	return nil
}

func (m LabelListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Labels)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Labels) == 0 {
				return m, tea.Quit
			}
			m.Selected = m.Labels[m.Cursor].Label
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m LabelListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Label"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	width := 0
	for _, lc := range m.Labels {
		width = max(width, len(lc.Label))
	}

	end := min(m.Offset+m.Height, len(m.Labels))
	for i := m.Offset; i < end; i++ {
		lc := m.Labels[i]
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		line := fmt.Sprintf("%s%-*s  %s", cursor, width, lc.Label, listDimStyle.Render(strconv.FormatInt(lc.Count, 10)))
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	if len(m.Labels) > 0 {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Labels))))
	}
	return b.String()
}
