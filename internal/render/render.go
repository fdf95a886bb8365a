package render

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/Zuo-Peng/ris/internal/analysis"
	"github.com/Zuo-Peng/ris/internal/score"
	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

const (
	colorReset   = "\033[0m"
	colorYou     = "\033[1;34m" // bold blue
	colorThem    = "\033[1;32m" // bold green
	colorDim     = "\033[2m"
	colorWarn    = "\033[1;33m" // bold yellow
	colorBoldRed = "\033[1;31m" // bold red for keyword highlights
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type Options struct {
	Format string
	Width  int  // wrap width (0 = no wrap)
	Color  bool // emit ANSI escapes
}

func (o Options) paint(color, s string) string {
	if !o.Color {
		return s
	}
	return color + s + colorReset
}

// Report writes rep in the requested format.
func Report(w io.Writer, rep *analysis.Report, opts Options) error {
	switch opts.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		_, err := io.WriteString(w, Text(rep, opts))
		return err
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", opts.Format)
	}
}

// Text renders the human-readable report: header, gauge, breakdown table
// and verdict.
func Text(rep *analysis.Report, opts Options) string {
	var b strings.Builder
	writeLine := func(s string) {
		for _, wl := range wrapLine(s, opts.Width) {
			b.WriteString(wl)
			b.WriteString("\n")
		}
	}

	writeLine(opts.paint(colorDim, fmt.Sprintf("--- %s and %s · %d messages · %d sessions · %s → %s ---",
		rep.YourName, rep.TheirName, rep.Messages, rep.SessionCount,
		rep.FirstAt.Format("2006-01-02 15:04"), rep.LastAt.Format("2006-01-02 15:04"))))
	writeLine("")
	writeLine(fmt.Sprintf("Interest level  %s %3d%%", Gauge(rep.Result.Final, 30), rep.Verdict.Percent))
	writeLine("")

	var tb strings.Builder
	table := tablewriter.NewWriter(&tb)
	table.SetHeader([]string{"Signal", "Score", "Weight", "Share", ""})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT,
	})
	for _, e := range rep.Breakdown {
		table.Append([]string{
			e.Label,
			fmt.Sprintf("%.2f", e.Score),
			fmt.Sprintf("%.0f%%", e.Weight*100),
			fmt.Sprintf("%.3f", e.Contribution),
			Gauge(e.Score, 20),
		})
	}
	table.Render()
	b.WriteString(tb.String())
	b.WriteString("\n")

	verdictColor := colorDim
	switch rep.Verdict.Level {
	case score.LevelHigh:
		verdictColor = colorThem
	case score.LevelModerate:
		verdictColor = colorWarn
	}
	writeLine(opts.paint(verdictColor, rep.Verdict.Text))

	if rep.ForeignLanguage() {
		writeLine("")
		writeLine(opts.paint(colorWarn, fmt.Sprintf(
			"WARN: %s's messages look like language %q. Sentiment and keywords only know English words.",
			rep.TheirName, rep.Language)))
	}
	return b.String()
}

// Summary is a one-line plain description of rep, for clipboards and logs.
func Summary(rep *analysis.Report) string {
	parts := make([]string, 0, len(rep.Breakdown))
	for _, e := range rep.Breakdown {
		parts = append(parts, fmt.Sprintf("%s %d%%", e.Label, score.Percent(e.Score)))
	}
	return fmt.Sprintf("%s → %s: %d%% (%s). %s",
		rep.TheirName, rep.YourName, rep.Verdict.Percent, strings.Join(parts, ", "), rep.Verdict.Text)
}

// Gauge draws v as a fixed-width bar. Values outside [0,1] are drawn at
// the nearest end.
func Gauge(v float64, width int) string {
	if width <= 0 {
		return ""
	}
	v = math.Max(0, math.Min(1, v))
	filled := int(math.Round(v * float64(width)))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// padRight pads s with spaces to width display columns.
func padRight(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}
