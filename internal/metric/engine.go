package metric

import (
	"errors"
	"fmt"
	"time"

	"github.com/Zuo-Peng/ris/internal/parse"
)

// ErrNoMessages is returned when a participant has nothing in the log.
var ErrNoMessages = errors.New("no messages from participant")

// Scores holds the six independent signals, each nominally in [0, 1].
type Scores struct {
	Sentiment  float64
	Keywords   float64
	Initiation float64
	Questions  float64
	Velocity   float64
	Effort     float64
}

// Engine runs the six calculators against one log. It holds no state that
// changes after construction and is safe for concurrent use.
type Engine struct {
	lexicon         Lexicon
	normalizer      Normalizer
	matcher         *KeywordMatcher
	sessionGap      time.Duration
	responseHorizon time.Duration
}

type Option func(*Engine)

func WithSessionGap(d time.Duration) Option {
	return func(e *Engine) { e.sessionGap = d }
}

func WithResponseHorizon(d time.Duration) Option {
	return func(e *Engine) { e.responseHorizon = d }
}

func NewEngine(lex Lexicon, opts ...Option) (*Engine, error) {
	matcher, err := NewKeywordMatcher(lex.Keywords)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		lexicon:         lex,
		normalizer:      NewNormalizer(lex.Emoji),
		matcher:         matcher,
		sessionGap:      DefaultSessionGap,
		responseHorizon: DefaultResponseHorizon,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Sessions segments log with the engine's session gap.
func (e *Engine) Sessions(log parse.ChatLog) []Session {
	return Sessions(log, e.sessionGap)
}

// Compute scores them (the counterpart) relative to you. Both must have at
// least one message in log.
func (e *Engine) Compute(log parse.ChatLog, you, them string) (Scores, error) {
	yours := log.From(you)
	if len(yours) == 0 {
		return Scores{}, fmt.Errorf("%w: %q", ErrNoMessages, you)
	}
	theirs := log.From(them)
	if len(theirs) == 0 {
		return Scores{}, fmt.Errorf("%w: %q", ErrNoMessages, them)
	}

	return Scores{
		Sentiment:  Sentiment(theirs, e.lexicon.Sentiment, e.normalizer),
		Keywords:   Keywords(theirs, e.matcher, e.normalizer),
		Initiation: Initiation(log, you, them, e.sessionGap),
		Questions:  Questions(theirs),
		Velocity:   Velocity(log, you, them, e.responseHorizon),
		Effort:     Effort(yours, theirs),
	}, nil
}
