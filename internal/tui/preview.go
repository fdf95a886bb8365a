package tui

import (
	"fmt"
	"strings"

	"github.com/Zuo-Peng/ris/internal/render"
	"github.com/Zuo-Peng/ris/internal/score"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// newViewport creates a new viewport model with the given dimensions.
func newViewport(width, height int) viewport.Model {
	return viewport.New(width, height)
}

// viewResults renders the gauge, one bar per signal, the verdict and a
// scrollable details panel.
func (m model) viewResults() string {
	rep := m.report

	gaugeStyle := styleGaugeLow
	switch rep.Verdict.Level {
	case score.LevelHigh:
		gaugeStyle = styleGaugeHigh
	case score.LevelModerate:
		gaugeStyle = styleGaugeModerate
	}

	var rows []string
	rows = append(rows, styleTitle.Render(fmt.Sprintf("%s → %s", rep.TheirName, rep.YourName)))
	rows = append(rows, gaugeStyle.Render(fmt.Sprintf("%s %d%%", render.Gauge(rep.Result.Final, 40), rep.Verdict.Percent)))
	for _, e := range rep.Breakdown {
		label := runewidth.FillRight(e.Label, 16)
		rows = append(rows, fmt.Sprintf("%s %s %3d%%", label, styleMetricBar.Render(render.Gauge(e.Score, 24)), score.Percent(e.Score)))
	}
	rows = append(rows, gaugeStyle.Render(rep.Verdict.Text))

	m.details.Width = m.detailsWidth()
	m.details.Height = m.detailsHeight()
	panel := styleActiveBorder.
		Width(m.detailsWidth()).
		Height(m.detailsHeight()).
		Render(m.details.View())

	status := m.statusBar("r new analysis", "c copy summary", "C-u/C-d scroll", "esc quit")
	return lipgloss.JoinVertical(lipgloss.Left, strings.Join(rows, "\n"), panel, status)
}

// detailsContent is the text report followed by every session of the chat.
func (m model) detailsContent() string {
	rep := m.report
	opts := render.Options{Width: m.detailsWidth(), Color: true}
	p := render.Participants{You: rep.YourName, Them: rep.TheirName}

	var b strings.Builder
	b.WriteString(render.Text(rep, opts))
	for _, s := range rep.Sessions {
		b.WriteString("\n")
		b.WriteString(render.Conversation(rep.Log, s, p, m.keywords, opts))
	}
	return b.String()
}
