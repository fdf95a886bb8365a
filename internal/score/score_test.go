package score

import (
	"testing"

	"github.com/Zuo-Peng/ris/internal/metric"
	"github.com/stretchr/testify/require"
)

func TestDefaultWeights_SumToOne(t *testing.T) {
	require.InDelta(t, 1.0, DefaultWeights().Sum(), 1e-9)
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name   string
		scores metric.Scores
		final  float64
	}{
		{"all half", metric.Scores{Sentiment: 0.5, Keywords: 0.5, Initiation: 0.5, Questions: 0.5, Velocity: 0.5, Effort: 0.5}, 0.5},
		{"all zero", metric.Scores{}, 0},
		{"all one", metric.Scores{Sentiment: 1, Keywords: 1, Initiation: 1, Questions: 1, Velocity: 1, Effort: 1}, 1},
		{"keywords only", metric.Scores{Keywords: 1}, 0.25},
		{"sentiment overshoot is not clamped", metric.Scores{Sentiment: 1.5, Keywords: 1, Initiation: 1, Questions: 1, Velocity: 1, Effort: 1}, 1.075},
		{"negative effort drags final down", metric.Scores{Effort: -1}, -0.15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			r := Aggregate(tt.scores, DefaultWeights())
			req.InDelta(tt.final, r.Final, 1e-9)
			req.Equal(tt.scores.Sentiment, r.Sentiment)
			req.Equal(tt.scores.Effort, r.Effort)
		})
	}
}

func TestBreakdown(t *testing.T) {
	req := require.New(t)
	r := Aggregate(metric.Scores{Sentiment: 0.5, Keywords: 1, Velocity: 0.8}, DefaultWeights())

	entries := Breakdown(r, DefaultWeights())
	req.Len(entries, 6)
	req.Equal(KeySentiment, entries[0].Key)
	req.Equal("Response Speed", entries[4].Label)
	req.InDelta(0.25, entries[1].Contribution, 1e-9)

	var total float64
	for _, e := range entries {
		total += e.Contribution
	}
	req.InDelta(r.Final, total, 1e-9)
}

func TestVerdictFor(t *testing.T) {
	tests := []struct {
		final   float64
		percent int
		level   Level
	}{
		{0.0, 0, LevelLow},
		{0.5, 50, LevelLow},
		{0.51, 51, LevelModerate},
		{0.70, 70, LevelModerate},
		{0.704, 70, LevelModerate},
		{0.71, 71, LevelHigh},
		{1.2, 120, LevelHigh},
	}
	for _, tt := range tests {
		v := VerdictFor(tt.final)
		require.Equal(t, tt.percent, v.Percent, "final=%v", tt.final)
		require.Equal(t, tt.level, v.Level, "final=%v", tt.final)
		require.NotEmpty(t, v.Text)
	}
}
