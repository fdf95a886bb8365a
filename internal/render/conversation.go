package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Zuo-Peng/ris/internal/metric"
	"github.com/Zuo-Peng/ris/internal/parse"
	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
)

// Participants names the two sides being compared.
type Participants struct {
	You  string
	Them string
}

func (p Participants) role(sender string) string {
	switch sender {
	case p.You:
		return "you"
	case p.Them:
		return "them"
	default:
		return "other"
	}
}

// Sessions writes one table row per conversation session.
func Sessions(w io.Writer, log parse.ChatLog, sessions []metric.Session, p Participants) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Started", "Opener", "Msgs", "Line", "First message"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	for i, s := range sessions {
		table.Append([]string{
			strconv.Itoa(i + 1),
			s.StartedAt.Format("2006-01-02 15:04"),
			fmt.Sprintf("%s (%s)", s.Opener, p.role(s.Opener)),
			strconv.Itoa(s.Len()),
			strconv.Itoa(s.Line),
			padRight(log[s.Start].Text, 40),
		})
	}
	table.Render()
}

// Conversation renders the messages of one session, coloring each side and
// highlighting keyword hits.
func Conversation(log parse.ChatLog, s metric.Session, p Participants, keywords []string, opts Options) string {
	var b strings.Builder
	writeLine := func(s string) {
		for _, wl := range wrapLine(s, opts.Width) {
			b.WriteString(wl)
			b.WriteString("\n")
		}
	}

	writeLine(opts.paint(colorDim, fmt.Sprintf("--- session opened by %s at %s (line %d) ---",
		s.Opener, s.StartedAt.Format("2006-01-02 15:04"), s.Line)))

	for _, m := range log[s.Start:s.End] {
		color := colorDim
		switch m.Sender {
		case p.You:
			color = colorYou
		case p.Them:
			color = colorThem
		}
		writeLine(fmt.Sprintf("%s %s",
			opts.paint(color, m.Sender+" >"),
			opts.paint(colorDim, m.Timestamp.Format("15:04"))))

		text := m.Text
		if opts.Color {
			text = highlightKeywords(text, keywords)
		}
		writeLine(indentLines(text, "  "))
	}
	return b.String()
}

// highlightKeywords wraps case-insensitive matches of terms in bold red
// ANSI codes. Windows are taken on the original text, one rune at a time.
func highlightKeywords(text string, terms []string) string {
	for _, term := range terms {
		n := utf8.RuneCountInString(term)
		if n == 0 {
			continue
		}
		var b strings.Builder
		for i := 0; i < len(text); {
			if end := runePrefixLen(text[i:], n); end > 0 && strings.EqualFold(text[i:i+end], term) {
				b.WriteString(colorBoldRed + text[i:i+end] + colorReset)
				i += end
				continue
			}
			_, size := utf8.DecodeRuneInString(text[i:])
			b.WriteString(text[i : i+size])
			i += size
		}
		text = b.String()
	}
	return text
}

// runePrefixLen is the byte length of the first n runes of s, or -1 when s
// holds fewer.
func runePrefixLen(s string, n int) int {
	off := 0
	for ; n > 0; n-- {
		if off >= len(s) {
			return -1
		}
		_, size := utf8.DecodeRuneInString(s[off:])
		off += size
	}
	return off
}

// indentLines prepends each line of text with the given prefix.
func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// ANSI escape sequence: ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}
	if len(result) == 0 {
		return []string{""}
	}
	return result
}
