package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var fieldLabels = [fieldCount]string{
	fieldYou:  "Your name",
	fieldThem: "Their name",
	fieldPath: "Chat export",
}

// viewForm renders the input screen: three labeled fields, the error
// banner while it is visible, and the status bar.
func (m model) viewForm() string {
	var rows []string
	rows = append(rows, styleTitle.Render("Romantic interest score"), "")

	for i := range m.inputs {
		label := styleLabel.Render(fieldLabels[i])
		if i == m.focus {
			label = styleLabelFocused.Render(fieldLabels[i])
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, label, m.inputs[i].View()))
	}

	rows = append(rows, "")
	switch {
	case m.busy:
		rows = append(rows, styleTitle.Render("Analyzing..."))
	case m.banner != "":
		rows = append(rows, styleBanner.Render(m.banner))
	default:
		rows = append(rows, "")
	}

	body := stylePanelBorder.
		Width(m.detailsWidth()).
		Render(strings.Join(rows, "\n"))

	status := m.statusBar("tab/S-tab move", "enter analyze", "esc quit")
	return lipgloss.JoinVertical(lipgloss.Left, body, status)
}
