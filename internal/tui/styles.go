package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorPrimary   = lipgloss.Color("12")  // bright blue
	colorSecondary = lipgloss.Color("10")  // bright green
	colorDim       = lipgloss.Color("240") // gray
	colorHighlight = lipgloss.Color("11")  // bright yellow
	colorBorder    = lipgloss.Color("238") // dark gray
	colorError     = lipgloss.Color("9")   // bright red

	// Form
	styleInput = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Width(16)

	styleLabelFocused = styleLabel.
				Foreground(colorHighlight).
				Bold(true)

	styleBanner = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(colorError).
			Padding(0, 1)

	// Results
	styleGaugeHigh = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	styleGaugeModerate = lipgloss.NewStyle().
				Foreground(colorHighlight).
				Bold(true)

	styleGaugeLow = lipgloss.NewStyle().
			Foreground(colorDim).
			Bold(true)

	styleMetricBar = lipgloss.NewStyle().
			Foreground(colorPrimary)

	// Panels
	stylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder)

	styleActiveBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary)

	// Status bar
	styleStatusBar = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 1)

	// Panel titles
	styleTitle = lipgloss.NewStyle().
			Foreground(colorDim).
			Bold(true)
)
