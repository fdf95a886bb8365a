package score

import (
	"math"

	"github.com/Zuo-Peng/ris/internal/metric"
)

// Weights is the fixed share of each signal in the final score.
type Weights struct {
	Sentiment  float64 `toml:"sentiment" json:"sentiment" yaml:"sentiment"`
	Keywords   float64 `toml:"keywords" json:"keywords" yaml:"keywords"`
	Initiation float64 `toml:"initiation" json:"initiation" yaml:"initiation"`
	Questions  float64 `toml:"questions" json:"questions" yaml:"questions"`
	Velocity   float64 `toml:"velocity" json:"velocity" yaml:"velocity"`
	Effort     float64 `toml:"effort" json:"effort" yaml:"effort"`
}

func DefaultWeights() Weights {
	return Weights{
		Sentiment:  0.15,
		Keywords:   0.25,
		Initiation: 0.15,
		Questions:  0.20,
		Velocity:   0.10,
		Effort:     0.15,
	}
}

func (w Weights) Sum() float64 {
	return w.Sentiment + w.Keywords + w.Initiation + w.Questions + w.Velocity + w.Effort
}

// Result is the outcome of one analysis run.
type Result struct {
	Sentiment  float64 `json:"sentiment" yaml:"sentiment"`
	Keywords   float64 `json:"keywords" yaml:"keywords"`
	Initiation float64 `json:"initiation" yaml:"initiation"`
	Questions  float64 `json:"questions" yaml:"questions"`
	Velocity   float64 `json:"velocity" yaml:"velocity"`
	Effort     float64 `json:"effort" yaml:"effort"`
	Final      float64 `json:"final" yaml:"final"`
}

// Aggregate combines the signals into a Result. Final is the plain
// weighted sum and is not clamped.
func Aggregate(s metric.Scores, w Weights) Result {
	return Result{
		Sentiment:  s.Sentiment,
		Keywords:   s.Keywords,
		Initiation: s.Initiation,
		Questions:  s.Questions,
		Velocity:   s.Velocity,
		Effort:     s.Effort,
		Final: w.Sentiment*s.Sentiment +
			w.Keywords*s.Keywords +
			w.Initiation*s.Initiation +
			w.Questions*s.Questions +
			w.Velocity*s.Velocity +
			w.Effort*s.Effort,
	}
}

// Percent rounds a score to a whole percentage.
func Percent(v float64) int {
	return int(math.Round(v * 100))
}
