package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Zuo-Peng/ris/internal/analysis"
	"github.com/Zuo-Peng/ris/internal/source"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

const evening = `3/14/23, 9:00 PM - Alex: hey how was work today
3/14/23, 9:01 PM - Sam: it was calm and quiet
3/14/23, 9:02 PM - Alex: same here long meeting
3/14/23, 9:03 PM - Sam: just got home right now
3/14/23, 9:04 PM - Alex: pasta sounds very tasty
3/14/23, 9:05 PM - Sam: making some pasta tonight`

func newModel(t *testing.T, p Prefill) model {
	t.Helper()
	a, err := analysis.New(analysis.DefaultOptions())
	require.NoError(t, err)
	return initialModel(a, source.NewLoader(nil), []string{"cute"}, p)
}

func chatFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chat.txt")
	require.NoError(t, os.WriteFile(path, []byte(evening), 0o644))
	return path
}

// send feeds msg to m and returns the updated model and command.
func send(m model, msg tea.Msg) (model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(model), cmd
}

func TestInitialFocus(t *testing.T) {
	require.Equal(t, fieldYou, newModel(t, Prefill{}).focus)
	require.Equal(t, fieldPath, newModel(t, Prefill{You: "Alex", Them: "Sam"}).focus)
}

func TestFocusCycles(t *testing.T) {
	req := require.New(t)
	m := newModel(t, Prefill{})

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab})
	req.Equal(fieldThem, m.focus)
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab})
	req.Equal(fieldYou, m.focus)
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	req.Equal(fieldPath, m.focus)
}

func TestTypingFillsFocusedField(t *testing.T) {
	m := newModel(t, Prefill{})
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Alex")})
	require.Equal(t, "Alex", m.inputs[fieldYou].Value())
}

func TestSubmitShowsResults(t *testing.T) {
	req := require.New(t)
	m := newModel(t, Prefill{You: "Alex", Them: "Sam", Path: chatFile(t)})

	m, cmd := send(m, tea.KeyMsg{Type: tea.KeyEnter})
	req.True(m.busy)
	req.NotNil(cmd)
	req.Contains(m.View(), "Analyzing...")

	m, _ = send(m, cmd())
	req.False(m.busy)
	req.Equal(screenResults, m.screen)
	req.NotNil(m.report)
	req.Equal(6, m.report.Messages)
	req.Contains(m.View(), "Response Speed")
	req.Contains(m.detailsContent(), "session opened by Alex")

	// r goes back to an empty form
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	req.Equal(screenForm, m.screen)
	req.Nil(m.report)
	req.Equal(fieldYou, m.focus)
	for i := range m.inputs {
		req.Empty(m.inputs[i].Value())
	}
}

func TestErrorBanner(t *testing.T) {
	req := require.New(t)
	m := newModel(t, Prefill{You: "Alex", Them: "Jordan", Path: chatFile(t)})

	m, cmd := send(m, tea.KeyMsg{Type: tea.KeyEnter})
	m, hide := send(m, cmd())
	req.Equal(screenForm, m.screen)
	req.NotNil(hide)
	req.Contains(m.banner, `Could not find messages from "Jordan"`)
	req.Contains(m.View(), "Jordan")
	req.Contains(m.banner, "Senders in this chat: Alex, Sam")

	// a stale hide from an older banner does nothing
	m, _ = send(m, hideBannerMsg{seq: m.bannerN - 1})
	req.NotEmpty(m.banner)

	m, _ = send(m, hideBannerMsg{seq: m.bannerN})
	req.Empty(m.banner)
}

func TestMissingInputBanner(t *testing.T) {
	m := newModel(t, Prefill{})
	m, cmd := send(m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(m, cmd())
	require.Equal(t, "Please fill in both names and upload a chat file.", m.banner)
}

func TestMissingFileBanner(t *testing.T) {
	m := newModel(t, Prefill{You: "Alex", Them: "Sam", Path: filepath.Join(t.TempDir(), "nope.txt")})
	m, cmd := send(m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(m, cmd())
	require.Contains(t, m.banner, "nope.txt")
}

func TestStaleResultIgnored(t *testing.T) {
	req := require.New(t)
	m := newModel(t, Prefill{You: "Alex", Them: "Sam", Path: chatFile(t)})
	m, cmd := send(m, tea.KeyMsg{Type: tea.KeyEnter})
	msg := cmd().(analyzedMsg)
	msg.seq = m.seq + 1

	m, _ = send(m, msg)
	req.True(m.busy)
	req.Equal(screenForm, m.screen)
}

func TestQuit(t *testing.T) {
	m := newModel(t, Prefill{})
	m, cmd := send(m, tea.KeyMsg{Type: tea.KeyEsc})
	require.True(t, m.quitting)
	require.NotNil(t, cmd)
	require.Empty(t, m.View())
}
