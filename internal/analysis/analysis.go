package analysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/Zuo-Peng/ris/internal/metric"
	"github.com/Zuo-Peng/ris/internal/parse"
	"github.com/Zuo-Peng/ris/internal/score"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	msgMissingInput = "Please fill in both names and upload a chat file."
	msgTooShort     = "Could not parse the chat file or the chat is too short to analyze."
)

var validate = validator.New()

// Input is everything one run needs. Names must match the sender field of
// the transcript exactly (after trimming).
type Input struct {
	YourName   string `validate:"required"`
	TheirName  string `validate:"required"`
	Transcript string `validate:"required"`
}

type Options struct {
	Location        *time.Location
	Lexicon         metric.Lexicon
	Weights         score.Weights
	MinMessages     int
	SessionGap      time.Duration
	ResponseHorizon time.Duration
}

func DefaultOptions() Options {
	return Options{
		Location:        time.UTC,
		Lexicon:         metric.DefaultLexicon(),
		Weights:         score.DefaultWeights(),
		MinMessages:     5,
		SessionGap:      metric.DefaultSessionGap,
		ResponseHorizon: metric.DefaultResponseHorizon,
	}
}

// scorer is the part of metric.Engine the analyzer depends on.
type scorer interface {
	Compute(log parse.ChatLog, you, them string) (metric.Scores, error)
	Sessions(log parse.ChatLog) []metric.Session
}

// Analyzer validates input, parses it and scores it. It keeps no state
// between runs.
type Analyzer struct {
	parser      parse.Parser
	engine      scorer
	weights     score.Weights
	minMessages int
}

// New fails when the session gap or response horizon is not positive.
func New(opts Options) (*Analyzer, error) {
	if opts.SessionGap <= 0 {
		return nil, fmt.Errorf("session gap must be positive, got %s", opts.SessionGap)
	}
	if opts.ResponseHorizon <= 0 {
		return nil, fmt.Errorf("response horizon must be positive, got %s", opts.ResponseHorizon)
	}
	engine, err := metric.NewEngine(opts.Lexicon,
		metric.WithSessionGap(opts.SessionGap),
		metric.WithResponseHorizon(opts.ResponseHorizon),
	)
	if err != nil {
		return nil, fmt.Errorf("metric engine: %w", err)
	}
	return &Analyzer{
		parser:      parse.Parser{Location: opts.Location},
		engine:      engine,
		weights:     opts.Weights,
		minMessages: opts.MinMessages,
	}, nil
}

func (a *Analyzer) Weights() score.Weights { return a.weights }

// Parse exposes the analyzer's parser so callers see the same log.
func (a *Analyzer) Parse(text string) parse.ChatLog {
	return a.parser.Parse(text)
}

// Sessions segments log the way the initiation signal does.
func (a *Analyzer) Sessions(log parse.ChatLog) []metric.Session {
	return a.engine.Sessions(log)
}

// Analyze runs the whole pipeline. Errors are *ValidationError when the
// input is unusable and *ComputationError when scoring itself failed.
func (a *Analyzer) Analyze(in Input) (*Report, error) {
	in.YourName = strings.TrimSpace(in.YourName)
	in.TheirName = strings.TrimSpace(in.TheirName)

	if err := validate.Struct(in); err != nil {
		return nil, &ValidationError{Message: msgMissingInput, Err: err}
	}

	log := a.parser.Parse(in.Transcript)
	if len(log) < a.minMessages {
		return nil, &ValidationError{Message: msgTooShort}
	}

	yours := log.From(in.YourName)
	theirs := log.From(in.TheirName)
	if len(yours) == 0 || len(theirs) == 0 {
		return nil, &ValidationError{Message: fmt.Sprintf(
			"Could not find messages from %q or %q. Check if the names match the chat file exactly.",
			in.TheirName, in.YourName,
		), Senders: log.Senders()}
	}

	scores, err := a.compute(log, in.YourName, in.TheirName)
	if err != nil {
		return nil, err
	}

	result := score.Aggregate(scores, a.weights)
	sessions := a.engine.Sessions(log)
	first, last := log.Span()
	lang, reliable := detectLanguage(theirs)

	return &Report{
		RunID:            uuid.NewString(),
		YourName:         in.YourName,
		TheirName:        in.TheirName,
		Result:           result,
		Breakdown:        score.Breakdown(result, a.weights),
		Verdict:          score.VerdictFor(result.Final),
		Messages:         len(log),
		YourMessages:     len(yours),
		TheirMessages:    len(theirs),
		SessionCount:     len(sessions),
		FirstAt:          first,
		LastAt:           last,
		Language:         lang,
		LanguageReliable: reliable,
		Log:              log,
		Sessions:         sessions,
	}, nil
}

func (a *Analyzer) compute(log parse.ChatLog, you, them string) (scores metric.Scores, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ComputationError{Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	scores, err = a.engine.Compute(log, you, them)
	if err != nil {
		return metric.Scores{}, &ComputationError{Err: err}
	}
	return scores, nil
}
