package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stackplot/stackplot/pkg/source"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// chartEntry is one selectable chart document in the picker.
type chartEntry struct {
	Path       string
	Title      string
	Categories int
	Err        error // decode failure; entry shown but not selectable
}

// newChartEntry probes a chart file for display metadata.
func newChartEntry(path string) chartEntry {
	e := chartEntry{Path: path}
	c, err := source.ImportFile(path)
	if err != nil {
		e.Err = err
		return e
	}
	e.Title = c.Title
	e.Categories = len(c.Categories)
	return e
}

// ChartPickerModel is the bubbletea model for interactive chart selection
// when the render command is given a directory.
type ChartPickerModel struct {
	Entries  []chartEntry
	Cursor   int
	Selected *chartEntry
}

// NewChartPickerModel creates a picker over the given chart files.
func NewChartPickerModel(paths []string) ChartPickerModel {
	entries := make([]chartEntry, len(paths))
	for i, p := range paths {
		entries[i] = newChartEntry(p)
	}
	return ChartPickerModel{Entries: entries}
}

func (m ChartPickerModel) Init() tea.Cmd {
	return nil
}

func (m ChartPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
			}
		case "enter":
			entry := m.Entries[m.Cursor]
			if entry.Err != nil {
				return m, nil
			}
			m.Selected = &entry
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ChartPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Chart"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, e := range m.Entries {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		name := filepath.Base(e.Path)
		var detail string
		if e.Err != nil {
			detail = listDimStyle.Render("invalid")
		} else {
			title := e.Title
			if title == "" {
				title = "—"
			}
			detail = listDimStyle.Render(fmt.Sprintf("%s · %d categories", title, e.Categories))
		}

		line := fmt.Sprintf("%s%-28s %s", cursor, name, detail)
		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case e.Err != nil:
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))

	return b.String()
}

// pickChart runs the interactive picker and returns the selected path.
// It returns ("", nil) if the user quits without selecting.
func pickChart(paths []string) (string, error) {
	model := NewChartPickerModel(paths)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return "", err
	}
	result, ok := final.(ChartPickerModel)
	if !ok || result.Selected == nil {
		return "", nil
	}
	return result.Selected.Path, nil
}
