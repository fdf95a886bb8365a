package metric

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Zuo-Peng/ris/internal/parse"
	"github.com/samber/lo"
)

const (
	DefaultSessionGap      = 60 * time.Minute
	DefaultResponseHorizon = 180 * time.Minute
)

// Sentiment averages lexicon weights over every token of the counterpart's
// messages and maps the usual [-2, 2] range onto [0, 1] as (avg+2)/4.
// Lexicons with weights outside [-2, 2] can push the result outside [0, 1];
// it is not clamped.
func Sentiment(theirs parse.ChatLog, weights map[string]float64, n Normalizer) float64 {
	var total float64
	var count int
	for _, m := range theirs {
		for _, tok := range strings.Fields(n.Normalize(m.Text)) {
			total += weights[tok]
			count++
		}
	}
	avg := 0.0
	if count > 0 {
		avg = total / float64(count)
	}
	return (avg + 2) / 4
}

// Keywords is keyword occurrences per counterpart message, times five,
// capped at 1. theirs must not be empty.
func Keywords(theirs parse.ChatLog, matcher *KeywordMatcher, n Normalizer) float64 {
	hits := lo.SumBy(theirs, func(m parse.Message) int {
		return matcher.Count(n.Normalize(m.Text))
	})
	return math.Min(1.0, float64(hits)/float64(len(theirs))*5)
}

// Initiation is the share of sessions opened by them, among sessions
// opened by either participant. With no such sessions it is 0.5.
func Initiation(log parse.ChatLog, you, them string, gap time.Duration) float64 {
	var yours, theirs int
	for _, s := range Sessions(log, gap) {
		switch s.Opener {
		case you:
			yours++
		case them:
			theirs++
		}
	}
	if yours+theirs == 0 {
		return 0.5
	}
	return float64(theirs) / float64(yours+theirs)
}

// Questions is the fraction of counterpart messages containing '?', times
// three, capped at 1. theirs must not be empty.
func Questions(theirs parse.ChatLog) float64 {
	asked := lo.CountBy(theirs, func(m parse.Message) bool {
		return strings.Contains(m.Text, "?")
	})
	return math.Min(1.0, float64(asked)/float64(len(theirs))*3)
}

// Velocity looks at every place in the log where a message from you is
// immediately followed by one from them. It returns 0.5 when there is no
// such reply, otherwise 1 - mean/horizon floored at 0.
func Velocity(log parse.ChatLog, you, them string, horizon time.Duration) float64 {
	var total float64
	var replies int
	for i := 1; i < len(log); i++ {
		if log[i-1].Sender != you || log[i].Sender != them {
			continue
		}
		total += log[i].Timestamp.Sub(log[i-1].Timestamp).Seconds()
		replies++
	}
	if replies == 0 {
		return 0.5
	}
	mean := total / float64(replies)
	return math.Max(0, 1-mean/horizon.Seconds())
}

// Effort compares mean message length (in characters) of both sides:
// 1 when equal, falling as the ratio drifts, negative beyond 2x. Returns 0
// when either mean is 0.
func Effort(yours, theirs parse.ChatLog) float64 {
	yourMean := meanLength(yours)
	theirMean := meanLength(theirs)
	if yourMean == 0 || theirMean == 0 {
		return 0
	}
	return 1 - math.Abs(1-theirMean/yourMean)
}

func meanLength(log parse.ChatLog) float64 {
	if len(log) == 0 {
		return 0
	}
	total := lo.SumBy(log, func(m parse.Message) int {
		return utf8.RuneCountInString(m.Text)
	})
	return float64(total) / float64(len(log))
}
