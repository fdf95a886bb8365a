package metric

// Lexicon is the static word data the calculators read. It is plain data so
// tests and config files can substitute their own tables.
type Lexicon struct {
	// Sentiment maps a normalized token to a signed valence weight.
	Sentiment map[string]float64 `toml:"sentiment" json:"sentiment" yaml:"sentiment"`
	// Keywords are counted as substrings of normalized counterpart text.
	Keywords []string `toml:"keywords" json:"keywords" yaml:"keywords"`
	// Emoji glyphs survive normalization; everything else that is not a
	// word character or whitespace is stripped.
	Emoji []string `toml:"emoji" json:"emoji" yaml:"emoji"`
}

// DefaultLexicon returns a fresh copy of the built-in English tables.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Sentiment: map[string]float64{
			"love":      2,
			"amazing":   2,
			"great":     1.5,
			"beautiful": 1.5,
			"cute":      1.5,
			"happy":     1,
			"fun":       1,
			"good":      0.5,
			"nice":      0.5,
			"thanks":    1,
			"bad":       -0.5,
			"sad":       -1,
			"hate":      -2,
			"terrible":  -2,
			"shit":      -1.5,
		},
		Keywords: []string{
			"cute", "beautiful", "handsome", "gorgeous",
			"miss you", "thinking of you",
			"❤️", "😍", "😘", "🥰", "😉",
		},
		Emoji: []string{"❤️", "😍", "😘", "🥰", "😉"},
	}
}
