package parse

import "time"

// Message is one parsed transcript line. Values are only produced by the
// parser; callers treat them as read-only.
type Message struct {
	Sender    string
	Text      string
	Timestamp time.Time
	Line      int // 1-based line number in the transcript
}

// ChatLog keeps messages in transcript order. It is never re-sorted by time.
type ChatLog []Message

// From returns the messages sent by sender, in log order.
func (l ChatLog) From(sender string) ChatLog {
	var out ChatLog
	for _, m := range l {
		if m.Sender == sender {
			out = append(out, m)
		}
	}
	return out
}

// Senders returns the distinct senders in first-seen order.
func (l ChatLog) Senders() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, m := range l {
		if _, ok := seen[m.Sender]; ok {
			continue
		}
		seen[m.Sender] = struct{}{}
		out = append(out, m.Sender)
	}
	return out
}

// Span returns the timestamps of the first and last message in log order.
func (l ChatLog) Span() (first, last time.Time) {
	if len(l) == 0 {
		return time.Time{}, time.Time{}
	}
	return l[0].Timestamp, l[len(l)-1].Timestamp
}
