package metric

import (
	"time"

	"github.com/Zuo-Peng/ris/internal/parse"
)

// Session is a run of consecutive log entries with no gap above the
// session gap. Start and End index into the log, End exclusive.
type Session struct {
	Start     int
	End       int
	Opener    string
	StartedAt time.Time
	Line      int
}

func (s Session) Len() int { return s.End - s.Start }

// Sessions splits the log, walked in its own order. A new session starts
// at the first message and whenever the time since the previous message is
// strictly greater than gap.
func Sessions(log parse.ChatLog, gap time.Duration) []Session {
	var out []Session
	for i, m := range log {
		if i == 0 || m.Timestamp.Sub(log[i-1].Timestamp) > gap {
			if len(out) > 0 {
				out[len(out)-1].End = i
			}
			out = append(out, Session{
				Start:     i,
				Opener:    m.Sender,
				StartedAt: m.Timestamp,
				Line:      m.Line,
			})
		}
	}
	if len(out) > 0 {
		out[len(out)-1].End = len(log)
	}
	return out
}
