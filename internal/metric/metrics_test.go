package metric

import (
	"testing"
	"time"

	"github.com/Zuo-Peng/ris/internal/parse"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2023, time.March, 14, 9, 0, 0, 0, time.UTC)

// msg builds a message at base plus the given number of minutes.
func msg(sender, text string, minutes int) parse.Message {
	return parse.Message{Sender: sender, Text: text, Timestamp: base.Add(time.Duration(minutes) * time.Minute)}
}

func TestNormalize(t *testing.T) {
	req := require.New(t)
	emoji := DefaultLexicon().Emoji

	req.Equal("i love you ❤️  caf", Normalize("I LOVE you!!! ❤️ 😀 café", emoji))
	req.Equal("snake_case 42", Normalize("snake_case, 42.", emoji))
	req.Equal("", Normalize("?!...", emoji))
	req.Equal("a\tb", Normalize("A\tB", nil))
}

func TestSentiment(t *testing.T) {
	n := NewNormalizer(DefaultLexicon().Emoji)
	weights := DefaultLexicon().Sentiment

	tests := []struct {
		name     string
		theirs   parse.ChatLog
		weights  map[string]float64
		expected float64
	}{
		{"no lexicon hits", parse.ChatLog{msg("Sam", "see you at noon", 0)}, weights, 0.5},
		{"no tokens at all", parse.ChatLog{msg("Sam", "", 0), msg("Sam", "!!!", 1)}, weights, 0.5},
		{"all top weight", parse.ChatLog{msg("Sam", "Love, LOVE!", 0)}, weights, 1.0},
		{"negative", parse.ChatLog{msg("Sam", "I hate this", 0)}, weights, (-2.0/3 + 2) / 4},
		{"across messages", parse.ChatLog{msg("Sam", "great", 0), msg("Sam", "bad day", 1)}, weights, (1.0/3 + 2) / 4},
		{"unclamped custom lexicon", parse.ChatLog{msg("Sam", "wow", 0)}, map[string]float64{"wow": 4}, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.expected, Sentiment(tt.theirs, tt.weights, n), 1e-9)
		})
	}
}

func TestKeywordMatcher_Count(t *testing.T) {
	req := require.New(t)
	m, err := NewKeywordMatcher(DefaultLexicon().Keywords)
	req.NoError(err)

	req.Equal(0, m.Count(""))
	req.Equal(0, m.Count("hello there"))
	req.Equal(3, m.Count("cute cute handsome"))
	req.Equal(1, m.Count("i was thinking of you"))
	req.Equal(2, m.Count("miss you ❤️"))
	req.Equal(0, m.Count("❤"))

	empty, err := NewKeywordMatcher([]string{"", ""})
	req.NoError(err)
	req.Equal(0, empty.Count("cute"))
}

func TestKeywords(t *testing.T) {
	req := require.New(t)
	lex := DefaultLexicon()
	n := NewNormalizer(lex.Emoji)
	m, err := NewKeywordMatcher(lex.Keywords)
	req.NoError(err)

	var theirs parse.ChatLog
	for i := 0; i < 10; i++ {
		theirs = append(theirs, msg("Sam", "plain text", i))
	}
	req.Equal(0.0, Keywords(theirs, m, n))

	theirs[0].Text = "You're CUTE!"
	req.InDelta(0.5, Keywords(theirs, m, n), 1e-9)

	theirs[1].Text = "so gorgeous 😍😍"
	req.Equal(1.0, Keywords(theirs, m, n))
}

func TestSessions(t *testing.T) {
	req := require.New(t)
	log := parse.ChatLog{
		msg("Alex", "a", 0),
		msg("Sam", "b", 10),
		msg("Sam", "c", 70), // exactly 60 minutes: same session
		msg("Alex", "d", 131),
		msg("Sam", "e", 140),
	}

	sessions := Sessions(log, DefaultSessionGap)
	req.Len(sessions, 2)
	req.Equal(Session{Start: 0, End: 3, Opener: "Alex", StartedAt: log[0].Timestamp}, sessions[0])
	req.Equal(3, sessions[1].Start)
	req.Equal(2, sessions[1].Len())
	req.Equal("Alex", sessions[1].Opener)

	req.Empty(Sessions(nil, DefaultSessionGap))
}

func TestInitiation(t *testing.T) {
	tests := []struct {
		name     string
		log      parse.ChatLog
		expected float64
	}{
		{
			"single session opened by you",
			parse.ChatLog{msg("Alex", "hi", 0), msg("Sam", "hey", 1)},
			0,
		},
		{
			"one of three sessions opened by them",
			parse.ChatLog{
				msg("Alex", "a", 0), msg("Sam", "b", 10),
				msg("Sam", "c", 130), msg("Alex", "d", 140),
				msg("Alex", "e", 201),
			},
			1.0 / 3,
		},
		{
			"single session opened by neither",
			parse.ChatLog{msg("Kim", "hello all", 0), msg("Alex", "hi", 1), msg("Sam", "hey", 2)},
			0.5,
		},
		{
			"empty log",
			nil,
			0.5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.expected, Initiation(tt.log, "Alex", "Sam", DefaultSessionGap), 1e-9)
		})
	}
}

func TestQuestions(t *testing.T) {
	req := require.New(t)

	theirs := make(parse.ChatLog, 6)
	for i := range theirs {
		theirs[i] = msg("Sam", "ok", i)
	}
	req.Equal(0.0, Questions(theirs))

	prev := 0.0
	for i := range theirs {
		theirs[i].Text = "ok?"
		score := Questions(theirs)
		req.GreaterOrEqual(score, prev)
		prev = score
	}
	req.Equal(1.0, prev)

	req.InDelta(0.5, Questions(parse.ChatLog{
		msg("Sam", "why?", 0), msg("Sam", "a", 1), msg("Sam", "b", 2),
		msg("Sam", "c", 3), msg("Sam", "d", 4), msg("Sam", "e", 5),
	}), 1e-9)
}

func TestVelocity(t *testing.T) {
	tests := []struct {
		name     string
		log      parse.ChatLog
		expected float64
	}{
		{"no replies", parse.ChatLog{msg("Sam", "a", 0), msg("Alex", "b", 5)}, 0.5},
		{"single reply", parse.ChatLog{msg("Alex", "a", 0), msg("Sam", "b", 18)}, 0.9},
		{
			"mean of replies",
			parse.ChatLog{msg("Alex", "a", 0), msg("Sam", "b", 10), msg("Alex", "c", 20), msg("Sam", "d", 50)},
			1 - 20.0/180,
		},
		{"slow replies floor at zero", parse.ChatLog{msg("Alex", "a", 0), msg("Sam", "b", 400)}, 0},
		{"other senders break pairs", parse.ChatLog{msg("Alex", "a", 0), msg("Kim", "b", 1), msg("Sam", "c", 2)}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.expected, Velocity(tt.log, "Alex", "Sam", DefaultResponseHorizon), 1e-9)
		})
	}
}

func TestEffort(t *testing.T) {
	tests := []struct {
		name     string
		yours    parse.ChatLog
		theirs   parse.ChatLog
		expected float64
	}{
		{"equal lengths", parse.ChatLog{msg("Alex", "abcd", 0)}, parse.ChatLog{msg("Sam", "wxyz", 1)}, 1},
		{"half as long", parse.ChatLog{msg("Alex", "abcd", 0)}, parse.ChatLog{msg("Sam", "ab", 1)}, 0.5},
		{"three times as long", parse.ChatLog{msg("Alex", "abcd", 0)}, parse.ChatLog{msg("Sam", "abcdefghijkl", 1)}, -1},
		{"your mean is zero", parse.ChatLog{msg("Alex", "", 0)}, parse.ChatLog{msg("Sam", "ab", 1)}, 0},
		{"their mean is zero", parse.ChatLog{msg("Alex", "ab", 0)}, parse.ChatLog{msg("Sam", "", 1)}, 0},
		{"counts characters not bytes", parse.ChatLog{msg("Alex", "éé", 0)}, parse.ChatLog{msg("Sam", "ab", 1)}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.expected, Effort(tt.yours, tt.theirs), 1e-9)
		})
	}
}

func TestEngine_Compute(t *testing.T) {
	req := require.New(t)
	engine, err := NewEngine(DefaultLexicon(), WithSessionGap(30*time.Minute), WithResponseHorizon(60*time.Minute))
	req.NoError(err)

	log := parse.ChatLog{
		msg("Alex", "hello", 0),
		msg("Sam", "hi?", 30),
		msg("Sam", "you there", 100), // 70 minute gap, new session opened by Sam
	}

	scores, err := engine.Compute(log, "Alex", "Sam")
	req.NoError(err)
	req.InDelta(0.5, scores.Initiation, 1e-9)
	req.InDelta(0.5, scores.Velocity, 1e-9)
	req.InDelta(1.0, scores.Questions, 1e-9)
	req.Equal(0.0, scores.Keywords)
	req.InDelta(0.5, scores.Sentiment, 1e-9)
	req.Len(engine.Sessions(log), 2)
}

func TestEngine_Compute_MissingParticipant(t *testing.T) {
	req := require.New(t)
	engine, err := NewEngine(DefaultLexicon())
	req.NoError(err)

	log := parse.ChatLog{msg("Alex", "hello", 0), msg("Alex", "anyone?", 1)}
	_, err = engine.Compute(log, "Alex", "Sam")
	req.ErrorIs(err, ErrNoMessages)
	req.Contains(err.Error(), `"Sam"`)

	_, err = engine.Compute(log, "Kim", "Alex")
	req.ErrorIs(err, ErrNoMessages)
}
