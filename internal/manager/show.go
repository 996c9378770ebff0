package manager

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	showHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#54A0FF"))
	showCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Show renders the current registry contents as a table.
func (m *Manager) Show(w io.Writer) {
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return showHeaderStyle.Padding(0, 1)
			}
			return showCellStyle
		}).
		Headers("Component", "Version")

	for _, row := range m.CurrentVersions() {
		tbl.Row(row[0], row[1])
	}

	fmt.Fprintln(w, tbl.Render())
}
