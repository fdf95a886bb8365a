package score

// Metric keys, in presentation order.
const (
	KeySentiment  = "sentiment"
	KeyKeywords   = "keywords"
	KeyInitiation = "initiation"
	KeyQuestions  = "questions"
	KeyVelocity   = "velocity"
	KeyEffort     = "effort"
)

// Entry is one row of a result breakdown.
type Entry struct {
	Key          string  `json:"key" yaml:"key"`
	Label        string  `json:"label" yaml:"label"`
	Score        float64 `json:"score" yaml:"score"`
	Weight       float64 `json:"weight" yaml:"weight"`
	Contribution float64 `json:"contribution" yaml:"contribution"`
}

// Breakdown lists every signal with its label, weight and share of Final.
func Breakdown(r Result, w Weights) []Entry {
	rows := []struct {
		key, label    string
		score, weight float64
	}{
		{KeySentiment, "Sentiment", r.Sentiment, w.Sentiment},
		{KeyKeywords, "Keywords", r.Keywords, w.Keywords},
		{KeyInitiation, "Initiation", r.Initiation, w.Initiation},
		{KeyQuestions, "Questions", r.Questions, w.Questions},
		{KeyVelocity, "Response Speed", r.Velocity, w.Velocity},
		{KeyEffort, "Effort Balance", r.Effort, w.Effort},
	}
	out := make([]Entry, len(rows))
	for i, row := range rows {
		out[i] = Entry{
			Key:          row.key,
			Label:        row.label,
			Score:        row.score,
			Weight:       row.weight,
			Contribution: row.score * row.weight,
		}
	}
	return out
}

// Level buckets the final score.
type Level string

const (
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
)

type Verdict struct {
	Percent int    `json:"percent" yaml:"percent"`
	Level   Level  `json:"level" yaml:"level"`
	Text    string `json:"text" yaml:"text"`
}

// VerdictFor reads the final score as a whole percentage: above 70 is
// high, above 50 moderate, anything else low.
func VerdictFor(final float64) Verdict {
	p := Percent(final)
	switch {
	case p > 70:
		return Verdict{Percent: p, Level: LevelHigh, Text: "High probability of romantic interest. 💚"}
	case p > 50:
		return Verdict{Percent: p, Level: LevelModerate, Text: "Moderate probability of romantic interest. 🤔"}
	default:
		return Verdict{Percent: p, Level: LevelLow, Text: "Low probability of romantic interest. 🤷"}
	}
}
