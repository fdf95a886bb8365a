package parse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MediaOmitted is the body exporters write in place of attachments.
const MediaOmitted = "<Media omitted>"

// linePattern matches `M/D/Y, H:MM[ AM|PM] - Sender: body`.
var linePattern = regexp.MustCompile(
	`^(?P<month>\d{1,2})/(?P<day>\d{1,2})/(?P<year>\d{4}|\d{2}), ` +
		`(?P<hour>\d{1,2}):(?P<minute>\d{2})` +
		`(?:[ \x{00A0}\x{202F}]?(?P<meridiem>[AaPp][Mm]))?` +
		` - (?P<sender>[^:]+): (?P<body>.*)`,
)

var (
	groupMonth    = linePattern.SubexpIndex("month")
	groupDay      = linePattern.SubexpIndex("day")
	groupYear     = linePattern.SubexpIndex("year")
	groupHour     = linePattern.SubexpIndex("hour")
	groupMinute   = linePattern.SubexpIndex("minute")
	groupMeridiem = linePattern.SubexpIndex("meridiem")
	groupSender   = linePattern.SubexpIndex("sender")
	groupBody     = linePattern.SubexpIndex("body")
)

// Parser turns exported transcript text into a ChatLog. Transcript times
// carry no zone; Location says how to read them (UTC when nil).
type Parser struct {
	Location *time.Location
}

// Parse parses text with the zero Parser.
func Parse(text string) ChatLog {
	return Parser{}.Parse(text)
}

// Parse never fails: lines that do not match the grammar, carry an
// impossible date or time, or only hold a media placeholder are skipped.
// Continuation lines of multi-line messages are skipped too, so only the
// first line of such a message is kept.
func (p Parser) Parse(text string) ChatLog {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}

	text = strings.TrimPrefix(text, "\uFEFF")

	var log ChatLog
	for i, line := range strings.Split(text, "\n") {
		msg, ok := parseLine(strings.TrimSuffix(line, "\r"), loc)
		if !ok {
			continue
		}
		msg.Line = i + 1
		log = append(log, msg)
	}
	return log
}

func parseLine(line string, loc *time.Location) (Message, bool) {
	m := linePattern.FindStringSubmatch(line)
	if m == nil {
		return Message{}, false
	}

	sender := strings.TrimSpace(m[groupSender])
	if sender == "" {
		return Message{}, false
	}
	body := strings.TrimSpace(m[groupBody])
	if body == MediaOmitted {
		return Message{}, false
	}

	ts, ok := timestamp(m, loc)
	if !ok {
		return Message{}, false
	}

	return Message{Sender: sender, Text: body, Timestamp: ts}, true
}

// timestamp builds the instant from the captured fields and reports false
// for anything that is not a real calendar date and clock time.
func timestamp(m []string, loc *time.Location) (time.Time, bool) {
	month := atoi(m[groupMonth])
	day := atoi(m[groupDay])
	year := atoi(m[groupYear])
	hour := atoi(m[groupHour])
	minute := atoi(m[groupMinute])

	if year < 100 {
		year += 2000
	}

	if meridiem := strings.ToUpper(m[groupMeridiem]); meridiem != "" {
		switch {
		case meridiem == "AM" && hour == 12:
			hour = 0
		case meridiem == "PM" && hour < 12:
			hour += 12
		}
	}

	if month < 1 || month > 12 || day < 1 || day > daysIn(time.Month(month), year) {
		return time.Time{}, false
	}
	if hour > 23 || minute > 59 {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc), true
}

func daysIn(month time.Month, year int) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// atoi is only called on \d+ captures.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
