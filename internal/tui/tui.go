package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Zuo-Peng/ris/internal/analysis"
	"github.com/Zuo-Peng/ris/internal/render"
	"github.com/Zuo-Peng/ris/internal/source"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const bannerTimeout = 4 * time.Second

type screen int

const (
	screenForm screen = iota
	screenResults
)

const (
	fieldYou = iota
	fieldThem
	fieldPath
	fieldCount
)

// message types

type analyzedMsg struct {
	seq    int
	report *analysis.Report
	err    error
}

type hideBannerMsg struct {
	seq int
}

type copiedMsg struct {
	err error
}

// Prefill seeds the form fields.
type Prefill struct {
	You  string
	Them string
	Path string
}

// model

type model struct {
	analyzer *analysis.Analyzer
	loader   *source.Loader
	keywords []string

	screen  screen
	inputs  [fieldCount]textinput.Model
	focus   int
	busy    bool
	seq     int // bumped per submit, stale results are dropped
	banner  string
	bannerN int // bumped per banner, stale hide ticks are dropped
	flash   string

	report   *analysis.Report
	details  viewport.Model
	width    int
	height   int
	quitting bool
}

func newInput(placeholder, value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetValue(value)
	ti.Prompt = "> "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 256
	return ti
}

func initialModel(a *analysis.Analyzer, loader *source.Loader, keywords []string, p Prefill) model {
	m := model{
		analyzer: a,
		loader:   loader,
		keywords: keywords,
		details:  newViewport(60, 10),
	}
	m.inputs[fieldYou] = newInput("Your name, exactly as in the chat", p.You)
	m.inputs[fieldThem] = newInput("Their name, exactly as in the chat", p.Them)
	m.inputs[fieldPath] = newInput("Path to the exported .txt or .zip", p.Path)

	// start on the first empty field
	for i := range m.inputs {
		if m.inputs[i].Value() == "" {
			m.focus = i
			break
		}
	}
	m.inputs[m.focus].Focus()
	return m
}

// Run starts the TUI and blocks until it exits.
func Run(a *analysis.Analyzer, loader *source.Loader, keywords []string, p Prefill) error {
	m := initialModel(a, loader, keywords, p)
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.details = newViewport(m.detailsWidth(), m.detailsHeight())
		if m.report != nil {
			m.details.SetContent(m.detailsContent())
		}
		return m, nil

	case analyzedMsg:
		if msg.seq != m.seq {
			return m, nil // stale
		}
		m.busy = false
		if msg.err != nil {
			cmd := m.showBanner(bannerText(msg.err))
			return m, cmd
		}
		m.report = msg.report
		m.screen = screenResults
		m.banner = ""
		m.flash = ""
		m.details = newViewport(m.detailsWidth(), m.detailsHeight())
		m.details.SetContent(m.detailsContent())
		return m, nil

	case hideBannerMsg:
		if msg.seq == m.bannerN {
			m.banner = ""
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.flash = "Copy failed: " + msg.err.Error()
		} else {
			m.flash = "Summary copied to clipboard"
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.screen == screenResults {
			return m.updateResults(msg)
		}
		return m.updateForm(msg)

	case tea.MouseMsg:
		if m.screen != screenResults {
			return m, nil
		}
		if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
			var cmd tea.Cmd
			m.details, cmd = m.details.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

func (m model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Submit):
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.seq++
		return m, m.analyzeCmd(m.seq)

	case key.Matches(msg, keys.Next):
		cmd := m.setFocus((m.focus + 1) % fieldCount)
		return m, cmd

	case key.Matches(msg, keys.Prev):
		cmd := m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, cmd
	}

	// Pass remaining keys to the focused input
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Reset):
		return m.reset()

	case key.Matches(msg, keys.Copy):
		summary := render.Summary(m.report)
		return m, func() tea.Msg {
			return copiedMsg{err: clipboard.WriteAll(summary)}
		}

	case key.Matches(msg, keys.PreviewUp):
		m.details.LineUp(m.detailsHeight() / 2)

	case key.Matches(msg, keys.PreviewDn):
		m.details.LineDown(m.detailsHeight() / 2)

	case key.Matches(msg, keys.PageUp):
		m.details.LineUp(m.detailsHeight())

	case key.Matches(msg, keys.PageDown):
		m.details.LineDown(m.detailsHeight())
	}
	return m, nil
}

// reset returns to an empty form.
func (m model) reset() (tea.Model, tea.Cmd) {
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.screen = screenForm
	m.report = nil
	m.banner = ""
	m.flash = ""
	m.details.SetContent("")
	cmd := m.setFocus(fieldYou)
	return m, cmd
}

func (m *model) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[m.focus].Focus()
}

// bannerText is the error message plus, for a name mismatch, the senders
// the chat does contain.
func bannerText(err error) string {
	var verr *analysis.ValidationError
	if errors.As(err, &verr) && len(verr.Senders) > 0 {
		return verr.Message + "\nSenders in this chat: " + strings.Join(verr.Senders, ", ")
	}
	return err.Error()
}

func (m *model) showBanner(text string) tea.Cmd {
	m.bannerN++
	m.banner = text
	seq := m.bannerN
	return tea.Tick(bannerTimeout, func(time.Time) tea.Msg {
		return hideBannerMsg{seq: seq}
	})
}

func (m model) analyzeCmd(seq int) tea.Cmd {
	a, loader := m.analyzer, m.loader
	in := analysis.Input{
		YourName:  m.inputs[fieldYou].Value(),
		TheirName: m.inputs[fieldThem].Value(),
	}
	path := strings.TrimSpace(m.inputs[fieldPath].Value())
	return func() tea.Msg {
		if path != "" {
			t, err := loader.Load(path)
			if err != nil {
				return analyzedMsg{seq: seq, err: err}
			}
			in.Transcript = t.Text
		}
		rep, err := a.Analyze(in)
		return analyzedMsg{seq: seq, report: rep, err: err}
	}
}

// View renders the full TUI.
func (m model) View() string {
	if m.quitting {
		return ""
	}
	if m.screen == screenResults && m.report != nil {
		return m.viewResults()
	}
	return m.viewForm()
}

// helper methods

func (m model) detailsWidth() int {
	if m.width <= 0 {
		return 60
	}
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) detailsHeight() int {
	if m.height <= 0 {
		return 10
	}
	// Subtract header (2) + gauge block (9) + status bar (1) + borders (2)
	h := m.height - 14
	if h < 3 {
		h = 3
	}
	return h
}

func (m model) statusBar(parts ...string) string {
	line := styleStatusBar.Render(strings.Join(parts, " | "))
	if m.flash != "" {
		line = lipgloss.JoinHorizontal(lipgloss.Top, line, styleTitle.Render(m.flash))
	}
	return line
}
