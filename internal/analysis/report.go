package analysis

import (
	"strings"
	"time"

	"github.com/Zuo-Peng/ris/internal/metric"
	"github.com/Zuo-Peng/ris/internal/parse"
	"github.com/Zuo-Peng/ris/internal/score"
	"github.com/abadojack/whatlanggo"
	"github.com/samber/lo"
)

// Report is the result bundle handed to presentation layers.
type Report struct {
	RunID            string        `json:"runId" yaml:"run_id"`
	YourName         string        `json:"yourName" yaml:"your_name"`
	TheirName        string        `json:"theirName" yaml:"their_name"`
	Result           score.Result  `json:"result" yaml:"result"`
	Breakdown        []score.Entry `json:"breakdown" yaml:"breakdown"`
	Verdict          score.Verdict `json:"verdict" yaml:"verdict"`
	Messages         int           `json:"messages" yaml:"messages"`
	YourMessages     int           `json:"yourMessages" yaml:"your_messages"`
	TheirMessages    int           `json:"theirMessages" yaml:"their_messages"`
	SessionCount     int           `json:"sessions" yaml:"sessions"`
	FirstAt          time.Time     `json:"firstAt" yaml:"first_at"`
	LastAt           time.Time     `json:"lastAt" yaml:"last_at"`
	Language         string        `json:"language,omitempty" yaml:"language,omitempty"`
	LanguageReliable bool          `json:"languageReliable" yaml:"language_reliable"`

	Log      parse.ChatLog    `json:"-" yaml:"-"`
	Sessions []metric.Session `json:"-" yaml:"-"`
}

// ForeignLanguage reports whether the counterpart confidently writes in a
// language other than English, where the built-in lexicon says little.
func (r *Report) ForeignLanguage() bool {
	return r.LanguageReliable && r.Language != "" && r.Language != "en"
}

// detectLanguage guesses the counterpart's language. It is a diagnostic
// only; scoring always uses the configured lexicon.
func detectLanguage(theirs parse.ChatLog) (string, bool) {
	text := strings.Join(lo.Map(theirs, func(m parse.Message, _ int) string {
		return m.Text
	}), "\n")
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	info := whatlanggo.Detect(text)
	return info.Lang.Iso6391(), info.IsReliable()
}
